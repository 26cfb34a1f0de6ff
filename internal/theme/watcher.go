package theme

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay coalesces the burst of events an editor produces on save.
const settleDelay = 150 * time.Millisecond

// Watcher reports changes to CSS files in a themes directory. Partials are
// included since any theme may import them.
type Watcher struct {
	dir     string
	logger  *slog.Logger
	fs      *fsnotify.Watcher
	changed func(name string)
}

// NewWatcher watches dir, creating it if needed. changed receives the base
// name of the last modified file once edits settle; it runs on the watcher
// goroutine.
func NewWatcher(dir string, changed func(name string), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create themes directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch themes directory: %w", err)
	}

	return &Watcher{dir: dir, logger: logger, fs: fsw, changed: changed}, nil
}

// Run delivers changes until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer func() { _ = w.fs.Close() }()

	var (
		pending string
		settle  = time.NewTimer(settleDelay)
	)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != ".css" {
				continue
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			pending = filepath.Base(event.Name)
			settle.Reset(settleDelay)

		case <-settle.C:
			w.logger.Debug("theme file changed", "file", pending, "dir", w.dir)
			if w.changed != nil {
				w.changed(pending)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)
		}
	}
}
