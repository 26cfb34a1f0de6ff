package daemon

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/igt/internal/dbus"
)

// AlertLevel is the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
	AlertError
)

func (l AlertLevel) urgency() byte {
	switch l {
	case AlertInfo:
		return dbus.UrgencyLow
	case AlertError:
		return dbus.UrgencyCritical
	default:
		return dbus.UrgencyNormal
	}
}

func (l AlertLevel) icon() string {
	switch l {
	case AlertInfo:
		return "dialog-information"
	case AlertError:
		return "dialog-error"
	default:
		return "dialog-warning"
	}
}

// Sender delivers a desktop alert. *dbus.DesktopNotifier implements it.
type Sender interface {
	Send(alert dbus.DesktopAlert) (uint32, error)
}

// Alerts sends desktop notifications about igtd's own state. The same key
// is not repeated within the minimum interval.
type Alerts struct {
	mu     sync.Mutex
	logger *slog.Logger
	sender Sender
	now    func() time.Time

	last        map[string]time.Time
	minInterval time.Duration
	enabled     bool
}

// NewAlerts creates alerts delivered through sender. A nil sender logs only.
func NewAlerts(sender Sender, logger *slog.Logger) *Alerts {
	if logger == nil {
		logger = slog.Default()
	}
	return &Alerts{
		logger:      logger,
		sender:      sender,
		now:         time.Now,
		last:        make(map[string]time.Time),
		minInterval: 5 * time.Second,
		enabled:     true,
	}
}

// SetEnabled turns delivery on or off.
func (a *Alerts) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// SetMinInterval sets how long a key stays suppressed after delivery.
func (a *Alerts) SetMinInterval(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.minInterval = d
}

// Notify sends an alert unless key was sent recently. It reports whether
// the alert was handed to the sender.
func (a *Alerts) Notify(key, summary, body string, level AlertLevel) bool {
	a.mu.Lock()
	if !a.enabled || a.sender == nil {
		a.mu.Unlock()
		a.logger.Debug("alert skipped", "key", key, "summary", summary)
		return false
	}
	now := a.now()
	if last, ok := a.last[key]; ok && now.Sub(last) < a.minInterval {
		a.mu.Unlock()
		a.logger.Debug("alert rate-limited", "key", key)
		return false
	}
	a.last[key] = now
	sender := a.sender
	a.mu.Unlock()

	_, err := sender.Send(dbus.DesktopAlert{
		Summary: summary,
		Body:    body,
		Icon:    level.icon(),
		Urgency: level.urgency(),
	})
	if err != nil {
		a.logger.Warn("failed to send alert", "key", key, "error", err)
		return false
	}
	a.logger.Debug("alert sent", "key", key, "summary", summary)
	return true
}

// ConfigReloaded reports a successful config reload.
func (a *Alerts) ConfigReloaded() {
	a.Notify("config-reload", "Configuration Reloaded", "igt configuration has been reloaded.", AlertInfo)
}

// ConfigError reports a config file that failed to load.
func (a *Alerts) ConfigError(err error) {
	a.Notify("config-error", "Configuration Error", "Failed to reload configuration: "+err.Error(), AlertWarning)
}

// ThemeReloaded reports a hot-reloaded theme.
func (a *Alerts) ThemeReloaded(name string) {
	a.Notify("theme-reload", "Theme Reloaded", "Theme '"+name+"' has been reloaded.", AlertInfo)
}

// ThemeError reports a theme that could not be loaded.
func (a *Alerts) ThemeError(err error) {
	a.Notify("theme-error", "Theme Error", "Failed to load theme: "+err.Error(), AlertWarning)
}

// AudioError reports a chime that failed to play.
func (a *Alerts) AudioError(err error) {
	a.Notify("audio-error", "Audio Error", "Failed to play notification sound: "+err.Error(), AlertWarning)
}
