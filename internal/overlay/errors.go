package overlay

import "errors"

// ErrNotImplemented is returned by features that are deliberately stubbed.
var ErrNotImplemented = errors.New("not implemented")

// DisplayError represents a failure while building the overlay.
type DisplayError struct {
	Message string
	Cause   error
}

func (e *DisplayError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DisplayError) Unwrap() error {
	return e.Cause
}
