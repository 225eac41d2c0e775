package keybind

import "errors"

// Engine errors
var (
	// ErrEngineClosed is returned when registering on a closed engine.
	ErrEngineClosed = errors.New("engine is closed")

	// ErrRegistrationNotFound is returned when an id names no live
	// registration.
	ErrRegistrationNotFound = errors.New("registration not found")

	// ErrNilCallback is returned when registering without a callback.
	ErrNilCallback = errors.New("callback must not be nil")
)
