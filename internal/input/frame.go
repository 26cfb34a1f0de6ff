package input

import (
	"time"

	"github.com/jmylchreest/igt/internal/overlay"
)

// CommandKind identifies a remote command.
type CommandKind int

const (
	CommandToggleOverlay CommandKind = iota
	CommandToggleMoveMode
	CommandResetPosition
	CommandNotify
	CommandHostReady
	CommandHostTornDown
	CommandSetElapsed
	CommandStopwatch
)

// String returns the string representation of the command kind.
func (k CommandKind) String() string {
	switch k {
	case CommandToggleOverlay:
		return "toggle-overlay"
	case CommandToggleMoveMode:
		return "toggle-move-mode"
	case CommandResetPosition:
		return "reset-position"
	case CommandNotify:
		return "notify"
	case CommandHostReady:
		return "host-ready"
	case CommandHostTornDown:
		return "host-torn-down"
	case CommandSetElapsed:
		return "set-elapsed"
	case CommandStopwatch:
		return "stopwatch"
	default:
		return "unknown"
	}
}

// Command is a request delivered to the frame callback. Which fields are
// meaningful depends on Kind.
type Command struct {
	Kind     CommandKind
	Text     string        // notification message, time source, stopwatch action
	Duration time.Duration // notification duration
	Value    float64       // elapsed seconds
}

// MouseState is the primary button as seen by one frame. Pos is in screen
// pixels with the origin at the bottom-left, y up.
type MouseState struct {
	Down bool // pressed since the last frame
	Held bool // currently pressed
	Up   bool // released since the last frame
	Pos  overlay.Vec2
}

// Frame is one poll's worth of input.
type Frame struct {
	Mouse    MouseState
	Commands []Command

	pressed map[Key]bool
}

// Pressed reports whether k went down since the last frame.
func (f Frame) Pressed(k Key) bool {
	return f.pressed[k]
}

// Source produces frames.
type Source interface {
	Poll() Frame
}
