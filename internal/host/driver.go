package host

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jmylchreest/igt/internal/config"
	"github.com/jmylchreest/igt/internal/input"
	"github.com/jmylchreest/igt/internal/overlay"
)

// Hooks is the host lifecycle seen by the overlay.
type Hooks interface {
	OnHostReady(ts TimeSource)
	OnHostTornDown()
}

// Positions loads and persists the timer position.
type Positions interface {
	Position() (x, y float64)
	SavePosition(x, y float64) error
}

// Status is a snapshot of the overlay published after every frame.
type Status struct {
	HostAlive      bool
	Source         string
	SessionID      string
	SessionStarted time.Time
	ShowOverlay    bool
	MoveMode       bool
	Dragging       bool
	Elapsed        float64
	Text           string
	X              float64
	Y              float64
	Notification   string
}

// Driver runs the overlay from the display's frame callback. Frame,
// OnHostReady and OnHostTornDown must be called from that callback's
// goroutine; Status, SetBindings and the callbacks setters may be called
// from anywhere.
type Driver struct {
	manager   *overlay.Manager
	positions Positions
	source    input.Source
	logger    *slog.Logger
	clock     overlay.Clock

	stopwatch *Stopwatch
	remote    *RemoteClock

	timeSource TimeSource
	sourceName string

	mu       sync.RWMutex
	bindings input.Bindings
	status   Status
	onSaved  func(x, y float64)
}

// NewDriver creates a driver for manager reading input from source.
func NewDriver(manager *overlay.Manager, positions Positions, source input.Source, bindings input.Bindings, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}

	return &Driver{
		manager:   manager,
		positions: positions,
		source:    source,
		logger:    logger,
		clock:     overlay.SystemClock,
		stopwatch: NewStopwatch(nil),
		remote:    NewRemoteClock(),
		bindings:  bindings,
	}
}

// SetClock replaces the clock used for the stopwatch and notification
// expiry while no host is alive.
func (d *Driver) SetClock(clock overlay.Clock) {
	if clock == nil {
		clock = overlay.SystemClock
	}
	d.clock = clock
	d.stopwatch = NewStopwatch(clock)
	d.manager.SetClock(clock)
}

// SetBindings replaces the keybinds, e.g. after a config reload.
func (d *Driver) SetBindings(b input.Bindings) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bindings = b
}

// Bindings returns the active keybinds.
func (d *Driver) Bindings() input.Bindings {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.bindings
}

// SetSavedCallback sets a function called after the position is saved.
func (d *Driver) SetSavedCallback(callback func(x, y float64)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onSaved = callback
}

// Stopwatch returns the local stopwatch time source.
func (d *Driver) Stopwatch() *Stopwatch {
	return d.stopwatch
}

// Remote returns the remotely driven time source.
func (d *Driver) Remote() *RemoteClock {
	return d.remote
}

// HostAlive reports whether a host is currently attached.
func (d *Driver) HostAlive() bool {
	return d.timeSource != nil
}

// OnHostReady attaches ts and builds the overlay the first time. When the
// saved position had to be clamped the corrected value is persisted.
func (d *Driver) OnHostReady(ts TimeSource) {
	if ts == nil {
		return
	}

	d.timeSource = ts
	id := d.manager.Session().Begin(d.clock.Now())
	d.logger.Info("host ready", "session", id, "source", d.sourceName)

	if d.manager.HasDisplay() {
		return
	}

	x, y := d.positions.Position()
	pos := d.manager.CreateDisplay(x, y)
	if !d.manager.HasDisplay() {
		return
	}
	if pos != (overlay.Vec2{X: x, Y: y}) {
		d.save(pos)
	}
}

// OnHostTornDown hides the timer and forgets everything tied to the host.
func (d *Driver) OnHostTornDown() {
	if d.timeSource == nil {
		return
	}

	session := d.manager.Session()
	d.logger.Info("host torn down",
		"session", session.ID(),
		"elapsed", overlay.FormatSeconds(d.timeSource.Elapsed(), false),
		"duration", d.clock.Now().Sub(session.StartedAt()).Round(time.Second),
	)

	d.manager.SetVisibility(false)
	d.manager.ClearCachedReferences()
	d.timeSource = nil
	d.sourceName = ""
	session.End()
}

// Frame processes one frame of input and refreshes the overlay.
func (d *Driver) Frame() {
	f := d.source.Poll()
	bindings := d.Bindings()

	if !bindings.Disabled {
		d.handleKeys(f, bindings)
		d.handleMouse(f.Mouse)
	}

	for _, cmd := range f.Commands {
		d.handleCommand(cmd)
	}

	if d.timeSource != nil {
		d.manager.UpdateDisplay(d.timeSource.Elapsed())
	} else {
		d.manager.RefreshNotifications(d.clock.Now())
	}

	d.publish()
}

func (d *Driver) handleKeys(f input.Frame, b input.Bindings) {
	if f.Pressed(b.Toggle) {
		d.toggleOverlay()
	}
	if f.Pressed(b.Move) {
		d.manager.ToggleMoveMode()
	}
	if f.Pressed(b.Reset) {
		d.resetPosition()
	}
}

func (d *Driver) handleMouse(m input.MouseState) {
	if !d.manager.IsMoveMode() {
		return
	}

	switch {
	case m.Down:
		d.manager.StartDrag(m.Pos)
	case m.Held:
		d.manager.UpdateDrag(m.Pos)
	}

	if m.Up && d.manager.IsDragging() {
		d.save(d.manager.EndDrag())
	}
}

func (d *Driver) handleCommand(cmd input.Command) {
	d.logger.Debug("command", "kind", cmd.Kind.String())

	switch cmd.Kind {
	case input.CommandToggleOverlay:
		d.toggleOverlay()
	case input.CommandToggleMoveMode:
		d.manager.ToggleMoveMode()
	case input.CommandResetPosition:
		d.resetPosition()
	case input.CommandNotify:
		dur := cmd.Duration
		if dur <= 0 {
			dur = overlay.DefaultNotificationDuration
		}
		d.manager.ShowNotification(cmd.Text, dur)
	case input.CommandHostReady:
		d.hostReady(cmd.Text)
	case input.CommandHostTornDown:
		d.OnHostTornDown()
	case input.CommandSetElapsed:
		d.remote.Set(cmd.Value)
	case input.CommandStopwatch:
		d.stopwatchAction(cmd.Text)
	}
}

func (d *Driver) hostReady(source string) {
	var ts TimeSource
	switch strings.ToLower(source) {
	case SourceStopwatch, "":
		ts = d.stopwatch
		source = SourceStopwatch
	case SourceRemote:
		ts = d.remote
	default:
		d.logger.Warn("unknown time source", "source", source)
		return
	}

	if d.timeSource != nil {
		d.OnHostTornDown()
	}
	d.sourceName = strings.ToLower(source)
	d.OnHostReady(ts)
}

func (d *Driver) stopwatchAction(action string) {
	switch strings.ToLower(action) {
	case "start":
		d.stopwatch.Start()
	case "pause":
		d.stopwatch.Pause()
	case "reset":
		d.stopwatch.Reset()
	default:
		d.logger.Warn("unknown stopwatch action", "action", action)
	}
}

func (d *Driver) toggleOverlay() {
	status := "HIDDEN"
	if d.manager.Session().ToggleOverlay() {
		status = "SHOWN"
	}
	d.manager.ShowNotification("OVERLAY: "+status, overlay.DefaultNotificationDuration)
	d.logger.Info("overlay " + strings.ToLower(status))
}

func (d *Driver) resetPosition() {
	if !d.manager.HasDisplay() {
		d.manager.ResetPosition(config.DefaultX, config.DefaultY)
		d.save(overlay.Vec2{X: config.DefaultX, Y: config.DefaultY})
		return
	}
	d.save(d.manager.ResetPosition(config.DefaultX, config.DefaultY))
}

func (d *Driver) save(pos overlay.Vec2) {
	if err := d.positions.SavePosition(pos.X, pos.Y); err != nil {
		d.logger.Error("failed to save position", "error", err)
		return
	}
	d.logger.Debug("position saved", "x", pos.X, "y", pos.Y)

	d.mu.RLock()
	callback := d.onSaved
	d.mu.RUnlock()

	if callback != nil {
		callback(pos.X, pos.Y)
	}
}

func (d *Driver) publish() {
	session := d.manager.Session()
	text, visible := d.manager.Notification()
	if !visible {
		text = ""
	}

	s := Status{
		HostAlive:      d.timeSource != nil,
		Source:         d.sourceName,
		SessionID:      session.ID(),
		SessionStarted: session.StartedAt(),
		ShowOverlay:    session.ShowOverlay,
		MoveMode:       d.manager.IsMoveMode(),
		Dragging:       d.manager.IsDragging(),
		Text:           d.manager.TimerText(),
		Notification:   text,
	}
	if d.timeSource != nil {
		s.Elapsed = d.timeSource.Elapsed()
	}
	if pos, ok := d.manager.TimerPosition(); ok {
		s.X, s.Y = pos.X, pos.Y
	} else {
		s.X, s.Y = d.positions.Position()
	}

	d.mu.Lock()
	d.status = s
	d.mu.Unlock()
}

// Status returns the snapshot published by the last frame.
func (d *Driver) Status() Status {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.status
}
