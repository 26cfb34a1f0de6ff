package overlay

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Session holds the state that lives beyond a single display session but
// not beyond the process: the user's show/hide choice and the id of the
// current display session.
type Session struct {
	// ShowOverlay is toggled by the user and starts true. It is not saved.
	ShowOverlay bool

	id        string
	startedAt time.Time
}

// NewSession creates a session with the overlay shown.
func NewSession() *Session {
	return &Session{ShowOverlay: true}
}

// Begin starts a new display session and returns its id.
func (s *Session) Begin(now time.Time) string {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		s.id = ""
	} else {
		s.id = id.String()
	}
	s.startedAt = now
	return s.id
}

// End closes the current display session.
func (s *Session) End() {
	s.id = ""
	s.startedAt = time.Time{}
}

// ID returns the current display session id, empty between sessions.
func (s *Session) ID() string {
	return s.id
}

// StartedAt returns when the current display session began.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// ToggleOverlay flips ShowOverlay and returns the new value.
func (s *Session) ToggleOverlay() bool {
	s.ShowOverlay = !s.ShowOverlay
	return s.ShowOverlay
}
