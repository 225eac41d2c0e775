package scheme

import "errors"

var (
	// ErrInvalidJSON is returned when scheme data is not valid JSON.
	ErrInvalidJSON = errors.New("invalid scheme JSON")

	// ErrInvalidScheme is returned when a scheme document is structurally
	// wrong, such as a binding without keys or an action.
	ErrInvalidScheme = errors.New("invalid scheme")

	// ErrNilEngine is returned by Apply and Watch when no engine is given.
	ErrNilEngine = errors.New("nil engine")

	// ErrNilScheme is returned by Apply when no scheme is given.
	ErrNilScheme = errors.New("nil scheme")
)
