// Package overlaytest provides an in-memory overlay.Substrate for tests of
// code that drives an overlay.Manager.
package overlaytest

import (
	"sync"
	"time"

	"github.com/jmylchreest/igt/internal/overlay"
)

// Substrate is an in-memory host with no surfaces of its own and a single
// "Monospace" font unless told otherwise. It counts lookups and can be told
// to fail.
type Substrate struct {
	HostSurfaces []overlay.SurfaceInfo
	FontList     []overlay.Font
	CreateErr    error

	// LabelErr is returned by the LabelErrAt-th NewLabel call on a surface.
	LabelErr   error
	LabelErrAt int
	// PanicCreate makes CreateSurface panic.
	PanicCreate bool

	SurfaceCalls int
	FontCalls    int

	Created []*Surface
}

// NewSubstrate returns a substrate with the default font.
func NewSubstrate() *Substrate {
	return &Substrate{FontList: []overlay.Font{{Name: "Monospace"}}}
}

func (s *Substrate) Surfaces() []overlay.SurfaceInfo {
	s.SurfaceCalls++
	return s.HostSurfaces
}

func (s *Substrate) Fonts() []overlay.Font {
	s.FontCalls++
	return s.FontList
}

func (s *Substrate) CreateSurface(spec overlay.SurfaceSpec) (overlay.Surface, error) {
	if s.PanicCreate {
		panic("surface exploded")
	}
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	surface := &Surface{Spec: spec, parent: s}
	s.Created = append(s.Created, surface)
	return surface, nil
}

// Last returns the most recently created surface, or nil.
func (s *Substrate) Last() *Surface {
	if len(s.Created) == 0 {
		return nil
	}
	return s.Created[len(s.Created)-1]
}

// Label returns the named label on the most recent surface.
func (s *Substrate) Label(name string) *Label {
	surface := s.Last()
	if surface == nil {
		return nil
	}
	return surface.Label(name)
}

// Surface records labels and activation.
type Surface struct {
	Spec   overlay.SurfaceSpec
	Active bool
	Labels []*Label

	parent *Substrate
}

func (s *Surface) Name() string { return s.Spec.Name }

func (s *Surface) NewLabel(spec overlay.LabelSpec) (overlay.Label, error) {
	if s.parent != nil && s.parent.LabelErr != nil && len(s.Labels) == s.parent.LabelErrAt {
		return nil, s.parent.LabelErr
	}
	l := &Label{Spec: spec, text: spec.Text, visible: spec.Visible, pos: spec.Position}
	s.Labels = append(s.Labels, l)
	return l, nil
}

// Label returns the named label, or nil.
func (s *Surface) Label(name string) *Label {
	for _, l := range s.Labels {
		if l.Spec.Name == name {
			return l
		}
	}
	return nil
}

// ScreenToLocal is the identity.
func (s *Surface) ScreenToLocal(p overlay.Vec2) overlay.Vec2 { return p }

func (s *Surface) SetActive(active bool) { s.Active = active }

// Label is an in-memory label.
type Label struct {
	Spec overlay.LabelSpec

	text    string
	visible bool
	pos     overlay.Vec2
	color   overlay.ColorState
}

func (l *Label) SetText(text string)                { l.text = text }
func (l *Label) Text() string                       { return l.text }
func (l *Label) SetVisible(v bool)                  { l.visible = v }
func (l *Label) Visible() bool                      { return l.visible }
func (l *Label) SetPosition(p overlay.Vec2)         { l.pos = p }
func (l *Label) Position() overlay.Vec2             { return l.pos }
func (l *Label) SetColorState(c overlay.ColorState) { l.color = c }
func (l *Label) ColorState() overlay.ColorState     { return l.color }

// Settings is a fixed overlay.Settings.
type Settings struct {
	Size   float64
	Short  bool
	Family string
}

// DefaultSettings mirrors the default configuration.
func DefaultSettings() *Settings {
	return &Settings{Size: 72, Short: true, Family: "Monospace"}
}

func (s *Settings) FontSize() float64  { return s.Size }
func (s *Settings) Compact() bool      { return s.Short }
func (s *Settings) FontFamily() string { return s.Family }

// Clock is a manually advanced overlay.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock stopped at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
