package input

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/igt/internal/overlay"
)

func TestQueue_KeyPressIsOneFrame(t *testing.T) {
	q := NewQueue()
	q.PressKey(KeyF8)

	f := q.Poll()
	assert.True(t, f.Pressed(KeyF8))
	assert.False(t, f.Pressed(KeyF9))

	f = q.Poll()
	assert.False(t, f.Pressed(KeyF8))
}

func TestQueue_MouseLifecycle(t *testing.T) {
	q := NewQueue()

	q.MouseDown(overlay.Vec2{X: 10, Y: 20})
	f := q.Poll()
	assert.True(t, f.Mouse.Down)
	assert.True(t, f.Mouse.Held)
	assert.False(t, f.Mouse.Up)
	assert.Equal(t, overlay.Vec2{X: 10, Y: 20}, f.Mouse.Pos)

	q.MouseMove(overlay.Vec2{X: 30, Y: 40})
	f = q.Poll()
	assert.False(t, f.Mouse.Down)
	assert.True(t, f.Mouse.Held)
	assert.Equal(t, overlay.Vec2{X: 30, Y: 40}, f.Mouse.Pos)

	q.MouseUp(overlay.Vec2{X: 35, Y: 45})
	f = q.Poll()
	assert.False(t, f.Mouse.Held)
	assert.True(t, f.Mouse.Up)
	assert.Equal(t, overlay.Vec2{X: 35, Y: 45}, f.Mouse.Pos)

	f = q.Poll()
	assert.False(t, f.Mouse.Up)
	assert.Equal(t, overlay.Vec2{X: 35, Y: 45}, f.Mouse.Pos, "position carries over")
}

func TestQueue_ClickWithinOneFrame(t *testing.T) {
	q := NewQueue()
	q.MouseDown(overlay.Vec2{X: 1, Y: 1})
	q.MouseUp(overlay.Vec2{X: 1, Y: 1})

	f := q.Poll()
	assert.True(t, f.Mouse.Down)
	assert.False(t, f.Mouse.Held)
	assert.True(t, f.Mouse.Up)
}

func TestQueue_StrayMouseUpIgnored(t *testing.T) {
	q := NewQueue()
	q.MouseUp(overlay.Vec2{X: 1, Y: 1})

	f := q.Poll()
	assert.False(t, f.Mouse.Up)
}

func TestQueue_Commands(t *testing.T) {
	q := NewQueue()
	q.Push(Command{Kind: CommandNotify, Text: "HI", Duration: time.Second})
	q.Push(Command{Kind: CommandSetElapsed, Value: 12.5})

	f := q.Poll()
	require.Len(t, f.Commands, 2)
	assert.Equal(t, CommandNotify, f.Commands[0].Kind)
	assert.Equal(t, "HI", f.Commands[0].Text)
	assert.Equal(t, 12.5, f.Commands[1].Value)

	assert.Empty(t, q.Poll().Commands)
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	q := NewQueue()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Push(Command{Kind: CommandToggleOverlay})
			q.PressKey(KeyF8)
		}()
	}
	wg.Wait()

	f := q.Poll()
	assert.Len(t, f.Commands, 50)
	assert.True(t, f.Pressed(KeyF8))
}

func TestCommandKind_String(t *testing.T) {
	assert.Equal(t, "notify", CommandNotify.String())
	assert.Equal(t, "stopwatch", CommandStopwatch.String())
	assert.Equal(t, "unknown", CommandKind(99).String())
}
