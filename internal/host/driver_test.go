package host

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/igt/internal/input"
	"github.com/jmylchreest/igt/internal/overlay"
	"github.com/jmylchreest/igt/internal/overlay/overlaytest"
)

type fakePositions struct {
	x, y  float64
	saves []overlay.Vec2
	err   error
}

func (p *fakePositions) Position() (float64, float64) { return p.x, p.y }

func (p *fakePositions) SavePosition(x, y float64) error {
	if p.err != nil {
		return p.err
	}
	p.x, p.y = x, y
	p.saves = append(p.saves, overlay.Vec2{X: x, Y: y})
	return nil
}

type fixture struct {
	driver    *Driver
	manager   *overlay.Manager
	substrate *overlaytest.Substrate
	queue     *input.Queue
	positions *fakePositions
	clock     *overlaytest.Clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sub := overlaytest.NewSubstrate()
	manager := overlay.NewManager(sub, overlaytest.DefaultSettings(), overlay.NewSession(), nil)
	queue := input.NewQueue()
	positions := &fakePositions{x: 20, y: -20}
	bindings := input.ParseBindings(false, "F8", "F9", "F10", nil)

	d := NewDriver(manager, positions, queue, bindings, nil)
	clock := overlaytest.NewClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	d.SetClock(clock)

	return &fixture{
		driver:    d,
		manager:   manager,
		substrate: sub,
		queue:     queue,
		positions: positions,
		clock:     clock,
	}
}

func (f *fixture) timer(t *testing.T) *overlaytest.Label {
	t.Helper()
	l := f.substrate.Label(overlay.TimerLabelName)
	require.NotNil(t, l)
	return l
}

func TestOnHostReady_CreatesDisplayOnce(t *testing.T) {
	f := newFixture(t)
	rc := NewRemoteClock()

	f.driver.OnHostReady(rc)
	assert.True(t, f.driver.HostAlive())
	assert.True(t, f.manager.HasDisplay())
	assert.NotEmpty(t, f.manager.Session().ID())
	assert.Empty(t, f.positions.saves, "in-bounds position is not re-saved")

	f.driver.OnHostTornDown()
	f.driver.OnHostReady(rc)
	assert.Len(t, f.substrate.Created, 1)
	assert.Empty(t, f.positions.saves)
}

func TestOnHostReady_SavesClampedPosition(t *testing.T) {
	f := newFixture(t)
	f.positions.x, f.positions.y = 5000, 50

	f.driver.OnHostReady(NewRemoteClock())

	require.Len(t, f.positions.saves, 1)
	assert.InDelta(t, 1920-288.7, f.positions.saves[0].X, 1e-9)
	assert.Equal(t, 0.0, f.positions.saves[0].Y)
}

func TestOnHostReady_NoSaveWhenCreationFails(t *testing.T) {
	f := newFixture(t)
	f.substrate.FontList = nil

	f.driver.OnHostReady(NewRemoteClock())

	assert.False(t, f.manager.HasDisplay())
	assert.Empty(t, f.positions.saves)
}

func TestFrame_UpdatesTimer(t *testing.T) {
	f := newFixture(t)
	rc := NewRemoteClock()
	f.driver.OnHostReady(rc)

	rc.Set(65.5)
	f.driver.Frame()

	assert.Equal(t, "01:05.50", f.timer(t).Text())
	status := f.driver.Status()
	assert.True(t, status.HostAlive)
	assert.Equal(t, "01:05.50", status.Text)
	assert.Equal(t, 65.5, status.Elapsed)
	assert.Equal(t, 20.0, status.X)
}

func TestFrame_ToggleOverlayKey(t *testing.T) {
	f := newFixture(t)
	f.driver.OnHostReady(NewRemoteClock())

	f.queue.PressKey(input.KeyF8)
	f.driver.Frame()

	assert.False(t, f.manager.Session().ShowOverlay)
	assert.False(t, f.timer(t).Visible())
	text, _ := f.manager.Notification()
	assert.Equal(t, "OVERLAY: HIDDEN", text)

	f.queue.PressKey(input.KeyF8)
	f.driver.Frame()
	assert.True(t, f.timer(t).Visible())
	text, _ = f.manager.Notification()
	assert.Equal(t, "OVERLAY: SHOWN", text)
}

func TestFrame_KeybindsDisabled(t *testing.T) {
	f := newFixture(t)
	f.driver.OnHostReady(NewRemoteClock())
	f.driver.SetBindings(input.ParseBindings(true, "F8", "F9", "F10", nil))

	f.queue.PressKey(input.KeyF8)
	f.queue.PressKey(input.KeyF9)
	f.queue.Push(input.Command{Kind: input.CommandToggleMoveMode})
	f.driver.Frame()

	assert.True(t, f.manager.Session().ShowOverlay)
	assert.True(t, f.manager.IsMoveMode(), "remote commands still apply")
}

func TestFrame_DragAndSave(t *testing.T) {
	f := newFixture(t)
	f.driver.OnHostReady(NewRemoteClock())

	var signalled []overlay.Vec2
	f.driver.SetSavedCallback(func(x, y float64) {
		signalled = append(signalled, overlay.Vec2{X: x, Y: y})
	})

	f.queue.PressKey(input.KeyF9)
	f.driver.Frame()
	require.True(t, f.manager.IsMoveMode())

	f.queue.MouseDown(overlay.Vec2{X: 100, Y: 100})
	f.driver.Frame()
	assert.True(t, f.driver.Status().Dragging)

	f.queue.MouseMove(overlay.Vec2{X: 150, Y: 80})
	f.driver.Frame()
	assert.Equal(t, overlay.Vec2{X: 70, Y: -40}, f.timer(t).Position())

	f.queue.MouseUp(overlay.Vec2{X: 150, Y: 80})
	f.driver.Frame()

	require.Len(t, f.positions.saves, 1)
	assert.Equal(t, overlay.Vec2{X: 70, Y: -40}, f.positions.saves[0])
	assert.Equal(t, f.positions.saves, signalled)
	assert.False(t, f.manager.IsDragging())
}

func TestFrame_MouseIgnoredOutsideMoveMode(t *testing.T) {
	f := newFixture(t)
	f.driver.OnHostReady(NewRemoteClock())

	f.queue.MouseDown(overlay.Vec2{X: 100, Y: 100})
	f.driver.Frame()
	f.queue.MouseUp(overlay.Vec2{X: 200, Y: 50})
	f.driver.Frame()

	assert.Empty(t, f.positions.saves)
	assert.Equal(t, overlay.Vec2{X: 20, Y: -20}, f.timer(t).Position())
}

func TestFrame_ResetKey(t *testing.T) {
	f := newFixture(t)
	f.positions.x, f.positions.y = 400, -300
	f.driver.OnHostReady(NewRemoteClock())

	f.queue.PressKey(input.KeyF10)
	f.driver.Frame()

	assert.Equal(t, overlay.Vec2{X: 20, Y: -20}, f.timer(t).Position())
	require.Len(t, f.positions.saves, 1)
	assert.Equal(t, overlay.Vec2{X: 20, Y: -20}, f.positions.saves[0])
	text, _ := f.manager.Notification()
	assert.Equal(t, overlay.MessagePositionReset, text)
}

func TestFrame_ResetWithoutDisplaySavesDefaults(t *testing.T) {
	f := newFixture(t)
	f.positions.x, f.positions.y = 400, -300

	f.queue.PressKey(input.KeyF10)
	f.driver.Frame()

	require.Len(t, f.positions.saves, 1)
	assert.Equal(t, overlay.Vec2{X: 20, Y: -20}, f.positions.saves[0])
}

func TestFrame_SaveErrorIsLogged(t *testing.T) {
	f := newFixture(t)
	f.driver.OnHostReady(NewRemoteClock())
	f.positions.err = errors.New("disk full")

	assert.NotPanics(t, func() {
		f.queue.PressKey(input.KeyF10)
		f.driver.Frame()
	})
}

func TestFrame_NotificationsExpireAfterTeardown(t *testing.T) {
	f := newFixture(t)
	f.driver.OnHostReady(NewRemoteClock())

	f.queue.PressKey(input.KeyF9)
	f.driver.Frame()
	f.driver.OnHostTornDown()

	_, visible := f.manager.Notification()
	require.True(t, visible)

	f.clock.Advance(3 * time.Second)
	f.driver.Frame()

	_, visible = f.manager.Notification()
	assert.False(t, visible)
}

func TestOnHostTornDown(t *testing.T) {
	f := newFixture(t)
	f.substrate.HostSurfaces = []overlay.SurfaceInfo{
		{Name: "game", Scaler: &overlay.Scaler{Reference: overlay.Resolution{Width: 1280, Height: 720}}},
	}
	f.driver.OnHostReady(NewRemoteClock())
	assert.Equal(t, overlay.Resolution{Width: 1280, Height: 720}, f.manager.ReferenceResolution())

	f.driver.OnHostTornDown()

	assert.False(t, f.driver.HostAlive())
	assert.False(t, f.timer(t).Visible())
	assert.Empty(t, f.manager.Session().ID())

	f.substrate.HostSurfaces = nil
	assert.Equal(t, overlay.FallbackResolution, f.manager.ReferenceResolution())

	// Frames without a host leave the timer hidden.
	f.driver.Frame()
	assert.False(t, f.timer(t).Visible())
	assert.False(t, f.driver.Status().HostAlive)
}

func TestCommands_HostLifecycle(t *testing.T) {
	f := newFixture(t)

	f.queue.Push(input.Command{Kind: input.CommandHostReady, Text: "remote"})
	f.queue.Push(input.Command{Kind: input.CommandSetElapsed, Value: 12.3456})
	f.driver.Frame()

	assert.True(t, f.driver.HostAlive())
	assert.Equal(t, "00:12.34", f.timer(t).Text())
	assert.Equal(t, SourceRemote, f.driver.Status().Source)

	f.queue.Push(input.Command{Kind: input.CommandHostTornDown})
	f.driver.Frame()
	assert.False(t, f.driver.HostAlive())

	f.queue.Push(input.Command{Kind: input.CommandHostReady, Text: "sundial"})
	f.driver.Frame()
	assert.False(t, f.driver.HostAlive())
}

func TestCommands_Stopwatch(t *testing.T) {
	f := newFixture(t)

	f.queue.Push(input.Command{Kind: input.CommandHostReady, Text: "stopwatch"})
	f.queue.Push(input.Command{Kind: input.CommandStopwatch, Text: "start"})
	f.driver.Frame()

	f.clock.Advance(90 * time.Second)
	f.driver.Frame()
	assert.Equal(t, "01:30.00", f.timer(t).Text())

	f.queue.Push(input.Command{Kind: input.CommandStopwatch, Text: "pause"})
	f.driver.Frame()
	f.clock.Advance(time.Minute)
	f.driver.Frame()
	assert.Equal(t, "01:30.00", f.timer(t).Text())

	f.queue.Push(input.Command{Kind: input.CommandStopwatch, Text: "reset"})
	f.driver.Frame()
	assert.Equal(t, "00:00.00", f.timer(t).Text())
}

func TestCommands_Notify(t *testing.T) {
	f := newFixture(t)
	f.driver.OnHostReady(NewRemoteClock())

	f.queue.Push(input.Command{Kind: input.CommandNotify, Text: "SPLIT"})
	f.driver.Frame()

	text, visible := f.manager.Notification()
	assert.Equal(t, "SPLIT", text)
	assert.True(t, visible)
	assert.Equal(t, "SPLIT", f.driver.Status().Notification)
	assert.Equal(t, f.clock.Now().Add(overlay.DefaultNotificationDuration), f.manager.NotificationExpiry())
}
