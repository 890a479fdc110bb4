package scene

import "errors"

var (
	// ErrValidation is returned when required text is empty.
	ErrValidation = errors.New("validation error")
	// ErrConfig is returned for a connection type outside the type table.
	ErrConfig = errors.New("unknown connection type")
	// ErrIndex is returned when a connection index is out of range.
	ErrIndex = errors.New("connection index out of range")
)
