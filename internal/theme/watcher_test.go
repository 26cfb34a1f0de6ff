package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsCSSChanges(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "themes")
	changes := make(chan string, 4)

	w, err := NewWatcher(dir, func(name string) { changes <- name }, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "neon.css"), []byte(".igt-timer {}"), 0644))

	select {
	case name := <-changes:
		assert.Equal(t, "neon.css", name)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}
