package paredit

import (
	"fmt"
	"strings"

	"github.com/waddie/paredit.hx/internal/sexp"
)

// DefaultTolerance is the distance from a moved delimiter within which
// CursorAuto makes the cursor follow it.
const DefaultTolerance = 2

// Document is the host buffer an Editor reads and edits.
type Document interface {
	sexp.Text
	TextRange(start, end int64) string
	Replace(start, end int64, text string) (int64, error)
}

// CursorBehavior selects where the cursor goes after a delimiter moves.
type CursorBehavior uint8

const (
	// CursorAuto follows the delimiter when the cursor was near it and
	// otherwise keeps the cursor on the same character.
	CursorAuto CursorBehavior = iota
	// CursorRemain keeps the cursor offset unchanged.
	CursorRemain
	// CursorFollow puts the cursor on the moved delimiter.
	CursorFollow
)

// String returns the configuration name of the behavior.
func (b CursorBehavior) String() string {
	switch b {
	case CursorRemain:
		return "remain"
	case CursorFollow:
		return "follow"
	default:
		return "auto"
	}
}

// ParseCursorBehavior parses a configuration name.
func ParseCursorBehavior(s string) (CursorBehavior, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return CursorAuto, nil
	case "remain":
		return CursorRemain, nil
	case "follow":
		return CursorFollow, nil
	}
	return CursorAuto, fmt.Errorf("%w: %q", ErrUnknownCursorBehavior, s)
}

// Editor runs structural operations with one rule set and cursor policy.
// An Editor holds no document state and may be shared.
type Editor struct {
	rules     sexp.Rules
	behavior  CursorBehavior
	tolerance int64
}

// Option configures an Editor.
type Option func(*Editor)

// WithRules sets the dialect rules. Nil selects sexp.Plain.
func WithRules(r sexp.Rules) Option {
	return func(e *Editor) {
		e.rules = r
	}
}

// WithCursorBehavior sets the cursor policy for slurp and barf.
func WithCursorBehavior(b CursorBehavior) Option {
	return func(e *Editor) {
		e.behavior = b
	}
}

// WithTolerance sets the CursorAuto follow distance. Negative values are
// treated as zero.
func WithTolerance(n int) Option {
	return func(e *Editor) {
		e.tolerance = int64(max(n, 0))
	}
}

// New creates an Editor.
func New(opts ...Option) *Editor {
	e := &Editor{
		behavior:  CursorAuto,
		tolerance: DefaultTolerance,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the editor's rule set.
func (e *Editor) Rules() sexp.Rules {
	return e.rules
}

// CursorBehavior returns the editor's cursor policy.
func (e *Editor) CursorBehavior() CursorBehavior {
	return e.behavior
}

// Tolerance returns the CursorAuto follow distance.
func (e *Editor) Tolerance() int {
	return int(e.tolerance)
}

func (e *Editor) scanner(t sexp.Text) *sexp.Scanner {
	return sexp.NewScanner(t, e.rules)
}
