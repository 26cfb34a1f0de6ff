package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jmylchreest/igt/internal/input"
)

// KeyMap defines the preview's key bindings. The overlay keys come from the
// config and are forwarded to the input queue rather than handled here.
type KeyMap struct {
	// Overlay
	Toggle key.Binding
	Move   key.Binding
	Reset  key.Binding

	// Stopwatch
	StartPause key.Binding
	ResetClock key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.StartPause, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Move, k.Reset},
		{k.StartPause, k.ResetClock},
		{k.Help, k.Quit},
	}
}

// NewKeyMap returns the preview bindings for the given overlay keys. A key
// the terminal cannot report is disabled.
func NewKeyMap(b input.Bindings) KeyMap {
	return KeyMap{
		Toggle: overlayBinding(b.Toggle, "toggle overlay"),
		Move:   overlayBinding(b.Move, "move mode"),
		Reset:  overlayBinding(b.Reset, "reset position"),
		StartPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause"),
		),
		ResetClock: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "reset clock"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func overlayBinding(k input.Key, desc string) key.Binding {
	term := k.Terminal()
	if term == "" {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(term),
		key.WithHelp(term, desc),
	)
}
