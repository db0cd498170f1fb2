package lang

import "errors"

var (
	// ErrUnknownLanguage is returned when no table matches a name or path.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrInvalidTable is returned when a table cannot be registered.
	ErrInvalidTable = errors.New("invalid language table")
)
