package input

import (
	"fmt"
	"log/slog"
	"strings"
)

// Key is a canonical key name such as "F8" or "PageUp".
type Key string

// Default overlay keys.
const (
	KeyF8  Key = "F8"
	KeyF9  Key = "F9"
	KeyF10 Key = "F10"
)

// keyNames are the per-backend spellings of a key.
type keyNames struct {
	x11  string // X keysym name, also what gdk.KeyvalName returns
	term string // bubbletea key string
}

var keyTable = map[Key]keyNames{
	"Home":        {x11: "Home", term: "home"},
	"End":         {x11: "End", term: "end"},
	"Insert":      {x11: "Insert", term: "insert"},
	"Delete":      {x11: "Delete", term: "delete"},
	"PageUp":      {x11: "Page_Up", term: "pgup"},
	"PageDown":    {x11: "Page_Down", term: "pgdown"},
	"Pause":       {x11: "Pause", term: ""},
	"ScrollLock":  {x11: "Scroll_Lock", term: ""},
	"Print":       {x11: "Print", term: ""},
	"Escape":      {x11: "Escape", term: "esc"},
	"Tab":         {x11: "Tab", term: "tab"},
	"Space":       {x11: "space", term: " "},
	"Backspace":   {x11: "BackSpace", term: "backspace"},
	"Return":      {x11: "Return", term: "enter"},
	"Up":          {x11: "Up", term: "up"},
	"Down":        {x11: "Down", term: "down"},
	"Left":        {x11: "Left", term: "left"},
	"Right":       {x11: "Right", term: "right"},
	"BackQuote":   {x11: "grave", term: "`"},
	"Minus":       {x11: "minus", term: "-"},
	"Equals":      {x11: "equal", term: "="},
	"Keypad0":     {x11: "KP_0", term: ""},
	"KeypadEnter": {x11: "KP_Enter", term: ""},
}

func init() {
	for i := 1; i <= 24; i++ {
		name := fmt.Sprintf("F%d", i)
		keyTable[Key(name)] = keyNames{x11: name, term: strings.ToLower(name)}
	}
	for c := 'A'; c <= 'Z'; c++ {
		keyTable[Key(string(c))] = keyNames{x11: strings.ToLower(string(c)), term: strings.ToLower(string(c))}
	}
	for c := '0'; c <= '9'; c++ {
		keyTable[Key("Alpha"+string(c))] = keyNames{x11: string(c), term: string(c)}
	}
}

// ParseKey parses a key name case-insensitively. Digits are spelled
// "Alpha1" and so on.
func ParseKey(name string) (Key, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("empty key name")
	}
	for k := range keyTable {
		if strings.EqualFold(string(k), trimmed) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown key %q", name)
}

// ParseKeyOr parses name, returning fallback with a warning when it is not
// a known key.
func ParseKeyOr(name string, fallback Key, logger *slog.Logger) Key {
	k, err := ParseKey(name)
	if err == nil {
		return k
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("invalid key, using fallback", "key", name, "fallback", string(fallback))
	return fallback
}

// String returns the canonical name.
func (k Key) String() string {
	return string(k)
}

// X11 returns the X keysym name, or "" for an unknown key.
func (k Key) X11() string {
	return keyTable[k].x11
}

// Terminal returns the bubbletea spelling, or "" when the terminal cannot
// report the key.
func (k Key) Terminal() string {
	return keyTable[k].term
}

// KeyFromX11 maps a keysym name (as returned by gdk.KeyvalName) back to a
// Key.
func KeyFromX11(name string) (Key, bool) {
	for k, n := range keyTable {
		if n.x11 != "" && strings.EqualFold(n.x11, name) {
			return k, true
		}
	}
	return "", false
}

// KeyFromTerminal maps a bubbletea key string back to a Key.
func KeyFromTerminal(name string) (Key, bool) {
	for k, n := range keyTable {
		if n.term != "" && n.term == name {
			return k, true
		}
	}
	return "", false
}

// Bindings are the three overlay keys after parsing.
type Bindings struct {
	Disabled bool
	Toggle   Key
	Move     Key
	Reset    Key
}

// ParseBindings resolves configured key names, falling back to F8, F9 and
// F10 for names that do not parse.
func ParseBindings(disabled bool, toggle, move, reset string, logger *slog.Logger) Bindings {
	return Bindings{
		Disabled: disabled,
		Toggle:   ParseKeyOr(toggle, KeyF8, logger),
		Move:     ParseKeyOr(move, KeyF9, logger),
		Reset:    ParseKeyOr(reset, KeyF10, logger),
	}
}

// Summary describes the bindings for the startup log.
func (b Bindings) Summary() string {
	status := "enabled"
	if b.Disabled {
		status = "disabled"
	}
	return fmt.Sprintf("keybinds %s: %s=toggle, %s=move, %s=reset", status, b.Toggle, b.Move, b.Reset)
}
