package paredit

import "errors"

// ErrUnknownCursorBehavior is returned for an unrecognized cursor policy
// name.
var ErrUnknownCursorBehavior = errors.New("unknown cursor behavior")
