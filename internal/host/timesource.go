package host

import (
	"math"
	"sync"
	"time"

	"github.com/jmylchreest/igt/internal/overlay"
)

// TimeSource reports the elapsed time of the current run in seconds.
type TimeSource interface {
	Elapsed() float64
}

// Time source names accepted by the control interface.
const (
	SourceStopwatch = "stopwatch"
	SourceRemote    = "remote"
)

// Stopwatch is a local time source that can be started, paused and reset.
type Stopwatch struct {
	mu          sync.Mutex
	clock       overlay.Clock
	running     bool
	startedAt   time.Time
	accumulated time.Duration
}

// NewStopwatch creates a stopped stopwatch. A nil clock uses the system
// clock.
func NewStopwatch(clock overlay.Clock) *Stopwatch {
	if clock == nil {
		clock = overlay.SystemClock
	}
	return &Stopwatch{clock: clock}
}

// Start starts or resumes the stopwatch.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.startedAt = s.clock.Now()
}

// Pause stops the stopwatch, keeping the elapsed time.
func (s *Stopwatch) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.accumulated += s.clock.Now().Sub(s.startedAt)
	s.running = false
}

// Reset stops the stopwatch and clears the elapsed time.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.accumulated = 0
}

// Running reports whether the stopwatch is counting.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Elapsed implements TimeSource.
func (s *Stopwatch) Elapsed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := s.accumulated
	if s.running {
		total += s.clock.Now().Sub(s.startedAt)
	}
	return total.Seconds()
}

// RemoteClock is a time source whose value is pushed by the host.
type RemoteClock struct {
	mu      sync.Mutex
	elapsed float64
}

// NewRemoteClock creates a remote clock at zero.
func NewRemoteClock() *RemoteClock {
	return &RemoteClock{}
}

// Set records the host's elapsed time. Non-finite values are ignored.
func (r *RemoteClock) Set(seconds float64) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elapsed = seconds
}

// Elapsed implements TimeSource.
func (r *RemoteClock) Elapsed() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.elapsed
}
