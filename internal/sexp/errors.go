package sexp

import "errors"

// Errors reported by operations built on the scanner.
var (
	// ErrNotFound indicates a delimiter, form or element could not be
	// located before a buffer boundary. Unbalanced input reports this too.
	ErrNotFound = errors.New("not found")

	// ErrEmptyRegion indicates a lookup produced a zero-length span, such as
	// the interior of "()".
	ErrEmptyRegion = errors.New("empty region")
)
