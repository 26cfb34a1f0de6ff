package daemon

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/igt/internal/dbus"
)

type fakeSender struct {
	mu     sync.Mutex
	alerts []dbus.DesktopAlert
	err    error
}

func (s *fakeSender) Send(alert dbus.DesktopAlert) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.alerts = append(s.alerts, alert)
	return uint32(len(s.alerts)), nil
}

func (s *fakeSender) sent() []dbus.DesktopAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dbus.DesktopAlert(nil), s.alerts...)
}

func newTestAlerts() (*Alerts, *fakeSender, *time.Time) {
	sender := &fakeSender{}
	a := NewAlerts(sender, nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return now }
	return a, sender, &now
}

func TestAlerts_Levels(t *testing.T) {
	tests := []struct {
		level   AlertLevel
		urgency byte
		icon    string
	}{
		{AlertInfo, dbus.UrgencyLow, "dialog-information"},
		{AlertWarning, dbus.UrgencyNormal, "dialog-warning"},
		{AlertError, dbus.UrgencyCritical, "dialog-error"},
	}

	for _, tt := range tests {
		a, sender, _ := newTestAlerts()
		require.True(t, a.Notify("k", "summary", "body", tt.level))

		sent := sender.sent()
		require.Len(t, sent, 1)
		assert.Equal(t, tt.urgency, sent[0].Urgency)
		assert.Equal(t, tt.icon, sent[0].Icon)
		assert.Equal(t, "summary", sent[0].Summary)
	}
}

func TestAlerts_RateLimitsPerKey(t *testing.T) {
	a, sender, now := newTestAlerts()

	assert.True(t, a.Notify("config-reload", "a", "", AlertInfo))
	assert.False(t, a.Notify("config-reload", "a", "", AlertInfo))
	assert.True(t, a.Notify("theme-reload", "b", "", AlertInfo))

	*now = now.Add(5 * time.Second)
	assert.True(t, a.Notify("config-reload", "a", "", AlertInfo))

	assert.Len(t, sender.sent(), 3)
}

func TestAlerts_DisabledAndNilSender(t *testing.T) {
	a, sender, _ := newTestAlerts()
	a.SetEnabled(false)
	assert.False(t, a.Notify("k", "s", "b", AlertInfo))
	assert.Empty(t, sender.sent())

	assert.False(t, NewAlerts(nil, nil).Notify("k", "s", "b", AlertInfo))
}

func TestAlerts_SendFailure(t *testing.T) {
	a, sender, _ := newTestAlerts()
	sender.err = errors.New("no notification daemon")

	assert.False(t, a.Notify("k", "s", "b", AlertWarning))
}

func TestAlerts_Helpers(t *testing.T) {
	a, sender, _ := newTestAlerts()

	a.ConfigError(errors.New("bad toml"))
	a.ThemeError(errors.New("unknown theme"))
	a.AudioError(errors.New("no device"))
	a.ThemeReloaded("neon")
	a.ConfigReloaded()

	sent := sender.sent()
	require.Len(t, sent, 5)
	assert.Equal(t, "Failed to reload configuration: bad toml", sent[0].Body)
	assert.Equal(t, "Failed to load theme: unknown theme", sent[1].Body)
	assert.Contains(t, sent[2].Body, "no device")
	assert.Contains(t, sent[3].Body, "'neon'")
	assert.Equal(t, "Configuration Reloaded", sent[4].Summary)
}
