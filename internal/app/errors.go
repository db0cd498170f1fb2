package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrUnknownAction indicates an action name no handler accepts.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnsavedChanges indicates a quit with modified text.
	ErrUnsavedChanges = errors.New("unsaved changes")

	// ErrPositionOutOfRange indicates a cursor offset outside the buffer.
	ErrPositionOutOfRange = errors.New("position out of range")
)

// InitError reports which component failed during startup.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// FileError wraps a failure to read or write the edited file.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
