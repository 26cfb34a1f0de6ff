// Package display renders the overlay with GTK4 layer-shell windows, one
// per label, and feeds pointer and key events into the input queue.
package display
