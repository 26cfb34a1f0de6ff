package dbus

import (
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/igt/internal/host"
)

const (
	// Interface is the control interface name.
	Interface = "io.github.jmylchreest.igt"
	// Path is the control object path.
	Path = "/io/github/jmylchreest/igt"
	// BusName is the bus name to claim.
	BusName = "io.github.jmylchreest.igt"
)

// Status property keys returned by GetStatus.
const (
	keyHostAlive      = "host_alive"
	keySource         = "source"
	keySessionID      = "session_id"
	keySessionStarted = "session_started"
	keyShowOverlay    = "show_overlay"
	keyMoveMode       = "move_mode"
	keyDragging       = "dragging"
	keyElapsed        = "elapsed"
	keyText           = "text"
	keyX              = "x"
	keyY              = "y"
	keyNotification   = "notification"
)

// StatusToVariants encodes a status for the a{sv} GetStatus reply.
// The session start is sent as Unix milliseconds, zero between sessions.
func StatusToVariants(s host.Status) map[string]dbus.Variant {
	var started int64
	if !s.SessionStarted.IsZero() {
		started = s.SessionStarted.UnixMilli()
	}

	return map[string]dbus.Variant{
		keyHostAlive:      dbus.MakeVariant(s.HostAlive),
		keySource:         dbus.MakeVariant(s.Source),
		keySessionID:      dbus.MakeVariant(s.SessionID),
		keySessionStarted: dbus.MakeVariant(started),
		keyShowOverlay:    dbus.MakeVariant(s.ShowOverlay),
		keyMoveMode:       dbus.MakeVariant(s.MoveMode),
		keyDragging:       dbus.MakeVariant(s.Dragging),
		keyElapsed:        dbus.MakeVariant(s.Elapsed),
		keyText:           dbus.MakeVariant(s.Text),
		keyX:              dbus.MakeVariant(s.X),
		keyY:              dbus.MakeVariant(s.Y),
		keyNotification:   dbus.MakeVariant(s.Notification),
	}
}

// StatusFromVariants decodes a GetStatus reply. Missing or mistyped keys
// are left at their zero value.
func StatusFromVariants(m map[string]dbus.Variant) host.Status {
	var s host.Status

	s.HostAlive = variantBool(m, keyHostAlive)
	s.Source = variantString(m, keySource)
	s.SessionID = variantString(m, keySessionID)
	if ms, ok := m[keySessionStarted].Value().(int64); ok && ms != 0 {
		s.SessionStarted = time.UnixMilli(ms)
	}
	s.ShowOverlay = variantBool(m, keyShowOverlay)
	s.MoveMode = variantBool(m, keyMoveMode)
	s.Dragging = variantBool(m, keyDragging)
	s.Elapsed = variantFloat(m, keyElapsed)
	s.Text = variantString(m, keyText)
	s.X = variantFloat(m, keyX)
	s.Y = variantFloat(m, keyY)
	s.Notification = variantString(m, keyNotification)

	return s
}

func variantBool(m map[string]dbus.Variant, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	b, _ := v.Value().(bool)
	return b
}

func variantString(m map[string]dbus.Variant, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, _ := v.Value().(string)
	return s
}

func variantFloat(m map[string]dbus.Variant, key string) float64 {
	v, ok := m[key]
	if !ok {
		return 0
	}
	f, _ := v.Value().(float64)
	return f
}
