package input

import (
	"sync"

	"github.com/jmylchreest/igt/internal/overlay"
)

// Queue collects input between frames. Its producer methods are safe to
// call from any goroutine.
type Queue struct {
	mu sync.Mutex

	pressed  map[Key]bool
	commands []Command

	held bool
	down bool
	up   bool
	pos  overlay.Vec2
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{pressed: make(map[Key]bool)}
}

// PressKey records a key press for the next frame.
func (q *Queue) PressKey(k Key) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pressed[k] = true
}

// MouseDown records a primary button press at pos.
func (q *Queue) MouseDown(pos overlay.Vec2) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.down = true
	q.held = true
	q.pos = pos
}

// MouseMove records the pointer position.
func (q *Queue) MouseMove(pos overlay.Vec2) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pos = pos
}

// MouseUp records a primary button release at pos.
func (q *Queue) MouseUp(pos overlay.Vec2) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.held && !q.down {
		return
	}
	q.up = true
	q.held = false
	q.pos = pos
}

// Push queues a command.
func (q *Queue) Push(cmd Command) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.commands = append(q.commands, cmd)
}

// Poll returns everything recorded since the previous Poll and clears the
// edge state. The held state and pointer position carry over.
func (q *Queue) Poll() Frame {
	q.mu.Lock()
	defer q.mu.Unlock()

	f := Frame{
		Mouse: MouseState{
			Down: q.down,
			Held: q.held,
			Up:   q.up,
			Pos:  q.pos,
		},
		Commands: q.commands,
		pressed:  q.pressed,
	}

	q.pressed = make(map[Key]bool)
	q.commands = nil
	q.down = false
	q.up = false

	return f
}
