// Package host connects the overlay to whatever is being timed.
//
// A host announces itself with OnHostReady, supplying a TimeSource, and
// goes away with OnHostTornDown. Between those the Driver's Frame method,
// called once per display frame, applies keybinds, mouse drags and remote
// commands and pushes the elapsed time to the overlay.
package host
