package overlay

import "time"

// DefaultNotificationDuration is how long a notification stays up.
const DefaultNotificationDuration = 2 * time.Second

// ShowNotification displays message in the centre of the overlay until d
// has passed. A new message replaces the current one.
func (m *Manager) ShowNotification(message string, d time.Duration) {
	if m.notification == nil {
		return
	}

	m.notification.SetText(message)
	m.notification.SetVisible(true)
	m.hideAt = m.clock.Now().Add(d)

	if m.onNotify != nil {
		m.onNotify(message)
	}
}

// RefreshNotifications hides the notification once now reaches its expiry.
func (m *Manager) RefreshNotifications(now time.Time) {
	if m.notification == nil {
		return
	}

	if m.notification.Visible() && !now.Before(m.hideAt) {
		m.notification.SetVisible(false)
		m.notification.SetText("")
	}
}

// Notification returns the current notification text and whether it is
// shown.
func (m *Manager) Notification() (string, bool) {
	if m.notification == nil {
		return "", false
	}
	return m.notification.Text(), m.notification.Visible()
}

// NotificationExpiry returns when the current notification hides.
func (m *Manager) NotificationExpiry() time.Time {
	return m.hideAt
}
