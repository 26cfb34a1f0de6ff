package theme

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Loader owns the CSS providers installed on the GTK display: one for the
// theme and one for generated per-label rules, which take precedence.
type Loader struct {
	mu       sync.Mutex
	logger   *slog.Logger
	dir      string
	theme    *Theme
	provider *gtk.CSSProvider
	labels   *gtk.CSSProvider
	onReload func(name string, err error)
}

// NewLoader creates a loader resolving user themes from dir.
func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:   logger,
		dir:      dir,
		provider: gtk.NewCSSProvider(),
		labels:   gtk.NewCSSProvider(),
	}
}

// SetReloadCallback sets a function called after every hot reload attempt.
// It runs on the GTK main thread.
func (l *Loader) SetReloadCallback(fn func(name string, err error)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onReload = fn
}

// Load resolves and installs a theme. An unknown or unreadable theme falls
// back to the default, and the error is still returned so callers can
// surface it.
func (l *Loader) Load(name string) error {
	t, err := Resolve(name, l.dir)
	if err != nil {
		l.logger.Warn("theme unavailable, using default", "theme", name, "error", err)
		t = Default()
	}

	l.mu.Lock()
	l.theme = t
	l.mu.Unlock()

	l.provider.LoadFromString(t.CSS)
	if t.Bundled() {
		l.logger.Info("loaded bundled theme", "name", t.Name)
	} else {
		l.logger.Info("loaded user theme", "name", t.Name, "path", t.Path)
	}
	return err
}

// Current returns the installed theme.
func (l *Loader) Current() *Theme {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.theme
}

// SetLabelRules replaces the generated per-label CSS.
func (l *Loader) SetLabelRules(css string) {
	l.labels.LoadFromString(css)
}

// Apply installs both providers on display, or on the default display when
// display is nil.
func (l *Loader) Apply(display *gdk.Display) {
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}

	gtk.StyleContextAddProviderForDisplay(display, l.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	gtk.StyleContextAddProviderForDisplay(display, l.labels, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION+1)
}

// StartHotReload watches the user themes directory until ctx is done.
func (l *Loader) StartHotReload(ctx context.Context) error {
	w, err := NewWatcher(l.dir, func(file string) {
		glib.IdleAdd(func() { l.fileChanged(file) })
	}, l.logger)
	if err != nil {
		return err
	}
	go w.Run(ctx)
	return nil
}

// fileChanged reloads the current theme when file could affect it: the
// theme's own file, or any partial it may import.
func (l *Loader) fileChanged(file string) {
	l.mu.Lock()
	current := l.theme
	callback := l.onReload
	l.mu.Unlock()
	if current == nil {
		return
	}

	if file != current.Name+".css" && !strings.HasPrefix(file, "_") {
		return
	}

	err := l.Load(current.Name)
	if err == nil {
		l.logger.Info("hot-reloaded theme", "name", current.Name)
	}
	if callback != nil {
		callback(current.Name, err)
	}
}
