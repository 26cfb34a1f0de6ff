// Package overlay owns the on-screen timer overlay: layout and clamping,
// lazily resolved host resources, the move/drag interaction, transient
// notifications and the per-frame update entry point.
// It renders through a Substrate and never touches a toolkit directly.
package overlay
