// Package audio plays the optional notification chime.
package audio
