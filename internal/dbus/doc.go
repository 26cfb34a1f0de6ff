// Package dbus implements the igt control interface on the session bus.
// The daemon exports a ControlServer that turns method calls into input
// commands for the frame loop; the igt CLI talks to it through Client.
// DesktopNotifier sends alerts through org.freedesktop.Notifications.
package dbus
