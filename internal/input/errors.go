package input

import "errors"

// Keymap errors.
var (
	// ErrInvalidKey indicates key notation that cannot be parsed.
	ErrInvalidKey = errors.New("input: invalid key notation")

	// ErrEmptyAction indicates a binding without an action name.
	ErrEmptyAction = errors.New("input: empty action")
)
