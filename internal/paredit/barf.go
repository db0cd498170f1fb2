package paredit

import (
	"fmt"

	"github.com/waddie/paredit.hx/internal/sexp"
)

// BarfForward ejects the last element of the form enclosing cursor. The
// closing delimiter lands right after the preceding code, so whitespace
// and comments before the element leave the form with it.
func (e *Editor) BarfForward(doc Document, cursor int64) (Result, error) {
	s := e.scanner(doc)
	f, ok := s.EnclosingForm(cursor)
	if !ok {
		return Result{}, fmt.Errorf("barf forward: enclosing form: %w", sexp.ErrNotFound)
	}
	last, ok := s.ElementBefore(f.Close)
	if !ok || last.Start <= f.Open {
		return Result{}, fmt.Errorf("barf forward: last element: %w", sexp.ErrNotFound)
	}
	to := s.SkipBackward(last.Start-1) + 1
	return e.apply(doc, Move{From: f.Close, To: to, Delim: f.Kind.Close()}, cursor)
}

// BarfBackward ejects the first element of the form enclosing cursor. The
// opening delimiter lands right before the following code.
func (e *Editor) BarfBackward(doc Document, cursor int64) (Result, error) {
	s := e.scanner(doc)
	f, ok := s.EnclosingForm(cursor)
	if !ok {
		return Result{}, fmt.Errorf("barf backward: enclosing form: %w", sexp.ErrNotFound)
	}
	first, ok := s.ElementAt(f.Open + 1)
	if !ok || first.End > f.Close {
		return Result{}, fmt.Errorf("barf backward: first element: %w", sexp.ErrNotFound)
	}
	to := s.SkipForward(first.End) - 1
	return e.apply(doc, Move{From: f.Open, To: to, Delim: f.Kind.Open()}, cursor)
}
