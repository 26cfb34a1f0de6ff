package input

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    Key
		wantErr bool
	}{
		{"F8", "F8", false},
		{"f10", "F10", false},
		{" F24 ", "F24", false},
		{"home", "Home", false},
		{"PAGEUP", "PageUp", false},
		{"x", "X", false},
		{"Alpha5", "Alpha5", false},
		{"F25", "", true},
		{"NotAKey", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeyOr_Fallback(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	assert.Equal(t, KeyF9, ParseKeyOr("banana", KeyF9, logger))
	assert.Contains(t, buf.String(), "invalid key")
	assert.Contains(t, buf.String(), "banana")

	buf.Reset()
	assert.Equal(t, Key("Home"), ParseKeyOr("Home", KeyF9, logger))
	assert.Empty(t, buf.String())
}

func TestKeyNames(t *testing.T) {
	assert.Equal(t, "F8", KeyF8.X11())
	assert.Equal(t, "f8", KeyF8.Terminal())
	assert.Equal(t, "Page_Up", Key("PageUp").X11())
	assert.Equal(t, "pgup", Key("PageUp").Terminal())
	assert.Equal(t, "", Key("Pause").Terminal())
	assert.Equal(t, "", Key("Bogus").X11())
}

func TestKeyFromBackends(t *testing.T) {
	k, ok := KeyFromX11("F10")
	assert.True(t, ok)
	assert.Equal(t, KeyF10, k)

	k, ok = KeyFromX11("a")
	assert.True(t, ok)
	assert.Equal(t, Key("A"), k)

	k, ok = KeyFromX11("A")
	assert.True(t, ok)
	assert.Equal(t, Key("A"), k)

	_, ok = KeyFromX11("XF86AudioPlay")
	assert.False(t, ok)

	k, ok = KeyFromTerminal("f9")
	assert.True(t, ok)
	assert.Equal(t, KeyF9, k)

	_, ok = KeyFromTerminal("ctrl+c")
	assert.False(t, ok)
}

func TestParseBindings(t *testing.T) {
	b := ParseBindings(false, "Home", "nope", "f12", nil)

	assert.Equal(t, Key("Home"), b.Toggle)
	assert.Equal(t, KeyF9, b.Move)
	assert.Equal(t, Key("F12"), b.Reset)
	assert.Equal(t, "keybinds enabled: Home=toggle, F9=move, F12=reset", b.Summary())

	b.Disabled = true
	assert.Contains(t, b.Summary(), "keybinds disabled")
}
