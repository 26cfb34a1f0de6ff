package dbus

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/igt/internal/host"
	"github.com/jmylchreest/igt/internal/input"
)

// Commander accepts commands for the frame loop.
type Commander interface {
	Push(cmd input.Command)
}

// StatusFunc returns the latest overlay status.
type StatusFunc func() host.Status

// ControlServer implements the io.github.jmylchreest.igt D-Bus interface.
// Method calls arrive on the bus goroutine and are queued; nothing here
// touches the overlay directly.
type ControlServer struct {
	conn   *dbus.Conn
	logger *slog.Logger

	commands Commander
	status   StatusFunc

	mu      sync.RWMutex
	running bool
}

// NewControlServer creates a server that pushes to commands and answers
// GetStatus from status.
func NewControlServer(commands Commander, status StatusFunc, logger *slog.Logger) *ControlServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ControlServer{
		logger:   logger,
		commands: commands,
		status:   status,
	}
}

// Start connects to the session bus and exports the control service.
func (s *ControlServer) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, Path, Interface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: Path,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    Interface,
				Methods: controlMethods(),
				Signals: controlSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), Path,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken, is igtd already running?", BusName)
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus control server started", "interface", Interface, "path", Path)
	return nil
}

// Stop releases the bus name.
func (s *ControlServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(BusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		// Don't close the connection as it's shared (SessionBus)
	}

	s.logger.Info("D-Bus control server stopped")
	return nil
}

func (s *ControlServer) push(cmd input.Command) {
	s.logger.Debug("queued command", "kind", cmd.Kind.String())
	s.commands.Push(cmd)
}

// ToggleOverlay shows or hides the timer.
// D-Bus method: ToggleOverlay()
func (s *ControlServer) ToggleOverlay() *dbus.Error {
	s.push(input.Command{Kind: input.CommandToggleOverlay})
	return nil
}

// ToggleMoveMode enters or leaves move mode.
// D-Bus method: ToggleMoveMode()
func (s *ControlServer) ToggleMoveMode() *dbus.Error {
	s.push(input.Command{Kind: input.CommandToggleMoveMode})
	return nil
}

// ResetPosition moves the timer back to its default position.
// D-Bus method: ResetPosition()
func (s *ControlServer) ResetPosition() *dbus.Error {
	s.push(input.Command{Kind: input.CommandResetPosition})
	return nil
}

// ShowNotification displays message on the overlay. A duration of zero or
// less uses the default.
// D-Bus method: ShowNotification(si)
func (s *ControlServer) ShowNotification(message string, durationMs int32) *dbus.Error {
	if strings.TrimSpace(message) == "" {
		return dbus.MakeFailedError(fmt.Errorf("message must not be empty"))
	}
	s.push(input.Command{
		Kind:     input.CommandNotify,
		Text:     message,
		Duration: time.Duration(durationMs) * time.Millisecond,
	})
	return nil
}

// HostReady attaches a host using the named time source.
// D-Bus method: HostReady(s)
func (s *ControlServer) HostReady(source string) *dbus.Error {
	switch strings.ToLower(source) {
	case host.SourceStopwatch, host.SourceRemote:
	default:
		return dbus.MakeFailedError(fmt.Errorf("unknown time source %q, must be %q or %q",
			source, host.SourceStopwatch, host.SourceRemote))
	}
	s.push(input.Command{Kind: input.CommandHostReady, Text: source})
	return nil
}

// HostTornDown detaches the current host.
// D-Bus method: HostTornDown()
func (s *ControlServer) HostTornDown() *dbus.Error {
	s.push(input.Command{Kind: input.CommandHostTornDown})
	return nil
}

// SetElapsed updates the remote time source.
// D-Bus method: SetElapsed(d)
func (s *ControlServer) SetElapsed(seconds float64) *dbus.Error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return dbus.MakeFailedError(fmt.Errorf("elapsed must be finite"))
	}
	s.push(input.Command{Kind: input.CommandSetElapsed, Value: seconds})
	return nil
}

// Stopwatch starts, pauses or resets the local stopwatch.
// D-Bus method: Stopwatch(s)
func (s *ControlServer) Stopwatch(action string) *dbus.Error {
	switch strings.ToLower(action) {
	case "start", "pause", "reset":
	default:
		return dbus.MakeFailedError(fmt.Errorf("unknown stopwatch action %q", action))
	}
	s.push(input.Command{Kind: input.CommandStopwatch, Text: action})
	return nil
}

// GetStatus returns the overlay status as of the last frame.
// D-Bus method: GetStatus() -> a{sv}
func (s *ControlServer) GetStatus() (map[string]dbus.Variant, *dbus.Error) {
	if s.status == nil {
		return StatusToVariants(host.Status{}), nil
	}
	return StatusToVariants(s.status()), nil
}

// controlMethods returns the D-Bus method introspection data.
func controlMethods() []introspect.Method {
	return []introspect.Method{
		{Name: "ToggleOverlay"},
		{Name: "ToggleMoveMode"},
		{Name: "ResetPosition"},
		{
			Name: "ShowNotification",
			Args: []introspect.Arg{
				{Name: "message", Type: "s", Direction: "in"},
				{Name: "duration_ms", Type: "i", Direction: "in"},
			},
		},
		{
			Name: "HostReady",
			Args: []introspect.Arg{
				{Name: "source", Type: "s", Direction: "in"},
			},
		},
		{Name: "HostTornDown"},
		{
			Name: "SetElapsed",
			Args: []introspect.Arg{
				{Name: "seconds", Type: "d", Direction: "in"},
			},
		},
		{
			Name: "Stopwatch",
			Args: []introspect.Arg{
				{Name: "action", Type: "s", Direction: "in"},
			},
		},
		{
			Name: "GetStatus",
			Args: []introspect.Arg{
				{Name: "status", Type: "a{sv}", Direction: "out"},
			},
		},
	}
}

// controlSignals returns the D-Bus signal introspection data.
func controlSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "PositionSaved",
			Args: []introspect.Arg{
				{Name: "x", Type: "d"},
				{Name: "y", Type: "d"},
			},
		},
	}
}
