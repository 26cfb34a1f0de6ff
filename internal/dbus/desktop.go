package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsName = "org.freedesktop.Notifications"
	notificationsPath = "/org/freedesktop/Notifications"
)

// Urgency levels understood by org.freedesktop.Notifications.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// DesktopAlert is a desktop notification sent by igtd about itself.
type DesktopAlert struct {
	Summary string
	Body    string
	Icon    string
	Urgency byte
}

// DesktopNotifier sends alerts to the user's notification daemon.
type DesktopNotifier struct {
	conn    *dbus.Conn
	appName string
}

// NewDesktopNotifier connects to the session bus.
func NewDesktopNotifier(appName string) (*DesktopNotifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &DesktopNotifier{conn: conn, appName: appName}, nil
}

// Send delivers alert and returns the notification id.
func (n *DesktopNotifier) Send(alert DesktopAlert) (uint32, error) {
	obj := n.conn.Object(notificationsName, notificationsPath)

	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(alert.Urgency),
		"category":      dbus.MakeVariant("device"),
		"transient":     dbus.MakeVariant(true),
		"desktop-entry": dbus.MakeVariant(n.appName),
	}

	var id uint32
	err := obj.Call(notificationsName+".Notify", 0,
		n.appName,
		uint32(0),
		alert.Icon,
		alert.Summary,
		alert.Body,
		[]string{},
		hints,
		int32(5000),
	).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to send desktop notification: %w", err)
	}
	return id, nil
}
