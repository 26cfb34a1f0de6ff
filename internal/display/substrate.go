package display

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"

	"github.com/jmylchreest/igt/internal/input"
	"github.com/jmylchreest/igt/internal/overlay"
	"github.com/jmylchreest/igt/internal/theme"
)

// Substrate implements overlay.Substrate on GTK. All methods must run on
// the GTK main thread.
type Substrate struct {
	app    *gtk.Application
	screen *Screen
	queue  *input.Queue
	themes *theme.Loader
	logger *slog.Logger

	rules map[string]string // widget name -> generated CSS
}

// NewSubstrate creates a substrate whose windows belong to app. Pointer and
// key events on overlay windows are pushed to queue.
func NewSubstrate(app *gtk.Application, screen *Screen, queue *input.Queue, themes *theme.Loader, logger *slog.Logger) *Substrate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Substrate{
		app:    app,
		screen: screen,
		queue:  queue,
		themes: themes,
		logger: logger,
		rules:  make(map[string]string),
	}
}

// Surfaces returns nothing: a desktop has no host canvas to mirror, so the
// overlay uses the 1080p reference scaled to the monitor.
func (s *Substrate) Surfaces() []overlay.SurfaceInfo {
	return nil
}

// Fonts lists the font families pango can render.
func (s *Substrate) Fonts() []overlay.Font {
	scratch := gtk.NewLabel("")
	families := scratch.PangoContext().ListFamilies()

	fonts := make([]overlay.Font, 0, len(families))
	for _, f := range families {
		fonts = append(fonts, overlay.Font{Name: pango.BaseFontFamily(f).Name()})
	}
	// Stable order so the fallback font is the same on every run.
	sort.Slice(fonts, func(i, j int) bool {
		return strings.ToLower(fonts[i].Name) < strings.ToLower(fonts[j].Name)
	})
	return fonts
}

// CreateSurface sizes a canvas for the current monitor. Windows are created
// per label.
func (s *Substrate) CreateSurface(spec overlay.SurfaceSpec) (overlay.Surface, error) {
	if gdk.DisplayGetDefault() == nil {
		return nil, &overlay.DisplayError{Message: "no display available"}
	}

	size := s.screen.Size()
	surf := &surface{
		sub:    s,
		name:   spec.Name,
		screen: size,
		factor: spec.Scaler.Factor(size),
	}
	s.logger.Debug("created overlay surface",
		"name", spec.Name,
		"width", size.Width,
		"height", size.Height,
		"scale", surf.factor,
	)
	return surf, nil
}

// setRule installs generated CSS for one widget name.
func (s *Substrate) setRule(name, css string) {
	s.rules[name] = css
	if s.themes == nil {
		return
	}

	names := make([]string, 0, len(s.rules))
	for n := range s.rules {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, n := range names {
		b.WriteString(s.rules[n])
	}
	s.themes.SetLabelRules(b.String())
}
