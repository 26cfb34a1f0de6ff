package daemon

import (
	"log/slog"

	"github.com/jmylchreest/igt/internal/config"
	"github.com/jmylchreest/igt/internal/input"
)

// BindingsSetter receives new keybinds. The frame driver and the global
// hotkey grabber both implement it.
type BindingsSetter interface {
	SetBindings(b input.Bindings)
}

// ChimeConfigurer receives new notification sound settings.
type ChimeConfigurer interface {
	Configure(cfg config.NotificationsConfig)
}

// ThemeLoader installs a theme by name.
type ThemeLoader interface {
	Load(name string) error
}

// Reloader applies a reloaded configuration to the running daemon. Timer
// placement and size are read from the config store at use time and need
// no action here.
type Reloader struct {
	logger   *slog.Logger
	bindings []BindingsSetter
	chime    ChimeConfigurer
	themes   ThemeLoader
	alerts   *Alerts
	current  config.Config
}

// NewReloader creates a reloader starting from cfg. Any collaborator may be
// nil.
func NewReloader(cfg config.Config, chime ChimeConfigurer, themes ThemeLoader, alerts *Alerts, logger *slog.Logger, bindings ...BindingsSetter) *Reloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reloader{
		logger:   logger,
		bindings: bindings,
		chime:    chime,
		themes:   themes,
		alerts:   alerts,
		current:  cfg,
	}
}

// Apply pushes the parts of cfg that changed to their consumers. The
// reload alert is sent only when something other than the saved timer
// position changed.
func (r *Reloader) Apply(cfg *config.Config) {
	if cfg == nil {
		return
	}
	prev := r.current
	r.current = *cfg

	changed := timerAppearance(cfg.Timer) != timerAppearance(prev.Timer)

	if cfg.Keybinds != prev.Keybinds {
		changed = true
		kb := cfg.Keybinds
		b := input.ParseBindings(kb.Disabled, kb.Toggle, kb.Move, kb.Reset, r.logger)
		for _, s := range r.bindings {
			s.SetBindings(b)
		}
		r.logger.Info(b.Summary())
	}

	if cfg.Notifications != prev.Notifications {
		changed = true
		if r.chime != nil {
			r.chime.Configure(cfg.Notifications)
		}
	}

	if cfg.Theme.Name != prev.Theme.Name {
		changed = true
		if r.themes != nil {
			if err := r.themes.Load(cfg.Theme.Name); err != nil && r.alerts != nil {
				r.alerts.ThemeError(err)
			}
		}
	}

	if cfg.Display != prev.Display {
		changed = true
		r.logger.Warn("display settings changed, restart igtd to apply",
			"monitor", cfg.Display.Monitor, "frame_interval", cfg.Display.FrameInterval.Duration())
	}

	if !changed {
		r.logger.Debug("config reload changed only the timer position")
		return
	}
	if r.alerts != nil {
		r.alerts.ConfigReloaded()
	}
}

// timerAppearance strips the position, which the overlay saves itself.
func timerAppearance(t config.TimerConfig) config.TimerConfig {
	t.X, t.Y = 0, 0
	return t
}

// Failed reports a reload that could not be applied.
func (r *Reloader) Failed(err error) {
	if r.alerts != nil {
		r.alerts.ConfigError(err)
	}
}
