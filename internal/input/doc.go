// Package input turns keyboard, mouse and remote commands from several
// producers into per-frame snapshots.
//
// Producers (GTK event controllers, X11 global hotkeys, the terminal
// preview and the D-Bus control interface) write into a Queue from any
// goroutine. The frame callback calls Poll once per frame and sees edge
// events the way a game loop does: a key counts as pressed on exactly one
// frame.
package input
