package dbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/igt/internal/host"
)

// Client calls a running igtd over the session bus.
type Client struct {
	conn   *dbus.Conn
	obj    dbus.BusObject
	logger *slog.Logger
}

// NewClient connects to the session bus. It does not check that igtd is
// running; the first call will fail if it is not.
func NewClient(logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	return &Client{
		conn:   conn,
		obj:    conn.Object(BusName, Path),
		logger: logger,
	}, nil
}

func (c *Client) call(method string, args ...any) error {
	c.logger.Debug("calling", "method", method)
	if err := c.obj.Call(Interface+"."+method, 0, args...).Err; err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

// ToggleOverlay shows or hides the timer.
func (c *Client) ToggleOverlay() error { return c.call("ToggleOverlay") }

// ToggleMoveMode enters or leaves move mode.
func (c *Client) ToggleMoveMode() error { return c.call("ToggleMoveMode") }

// ResetPosition moves the timer back to its default position.
func (c *Client) ResetPosition() error { return c.call("ResetPosition") }

// ShowNotification displays message on the overlay for durationMs.
func (c *Client) ShowNotification(message string, durationMs int32) error {
	return c.call("ShowNotification", message, durationMs)
}

// HostReady attaches a host with the named time source.
func (c *Client) HostReady(source string) error { return c.call("HostReady", source) }

// HostTornDown detaches the current host.
func (c *Client) HostTornDown() error { return c.call("HostTornDown") }

// SetElapsed pushes the elapsed time for the remote time source.
func (c *Client) SetElapsed(seconds float64) error { return c.call("SetElapsed", seconds) }

// Stopwatch starts, pauses or resets the daemon's stopwatch.
func (c *Client) Stopwatch(action string) error { return c.call("Stopwatch", action) }

// Status fetches the daemon's status.
func (c *Client) Status() (host.Status, error) {
	var m map[string]dbus.Variant
	if err := c.obj.Call(Interface+".GetStatus", 0).Store(&m); err != nil {
		return host.Status{}, fmt.Errorf("GetStatus: %w", err)
	}
	return StatusFromVariants(m), nil
}

// WatchPositionSaved calls fn for every PositionSaved signal until ctx is
// done.
func (c *Client) WatchPositionSaved(ctx context.Context, fn func(x, y float64)) error {
	opts := []dbus.MatchOption{
		dbus.WithMatchObjectPath(Path),
		dbus.WithMatchInterface(Interface),
		dbus.WithMatchMember("PositionSaved"),
	}
	if err := c.conn.AddMatchSignal(opts...); err != nil {
		return fmt.Errorf("failed to add match rule: %w", err)
	}
	defer func() {
		if err := c.conn.RemoveMatchSignal(opts...); err != nil {
			c.logger.Debug("failed to remove match rule", "error", err)
		}
	}()

	ch := make(chan *dbus.Signal, 16)
	c.conn.Signal(ch)
	defer c.conn.RemoveSignal(ch)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig, ok := <-ch:
			if !ok {
				return nil
			}
			x, y, ok := parsePositionSaved(sig)
			if !ok {
				c.logger.Warn("malformed PositionSaved signal", "body_len", len(sig.Body))
				continue
			}
			fn(x, y)
		}
	}
}

// parsePositionSaved extracts the coordinates from a PositionSaved signal.
func parsePositionSaved(sig *dbus.Signal) (float64, float64, bool) {
	if sig.Name != Interface+".PositionSaved" || len(sig.Body) < 2 {
		return 0, 0, false
	}
	x, ok := sig.Body[0].(float64)
	if !ok {
		return 0, 0, false
	}
	y, ok := sig.Body[1].(float64)
	if !ok {
		return 0, 0, false
	}
	return x, y, true
}
