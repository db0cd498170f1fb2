package paredit

import (
	"fmt"

	"github.com/waddie/paredit.hx/internal/sexp"
)

// SlurpForward extends the form enclosing cursor to swallow the element
// that follows it. A following cursor ends up just past the new closing
// delimiter.
func (e *Editor) SlurpForward(doc Document, cursor int64) (Result, error) {
	s := e.scanner(doc)
	f, ok := s.EnclosingForm(cursor)
	if !ok {
		return Result{}, fmt.Errorf("slurp forward: enclosing form: %w", sexp.ErrNotFound)
	}
	next, ok := s.ElementAt(f.Close + 1)
	if !ok {
		return Result{}, fmt.Errorf("slurp forward: element after form: %w", sexp.ErrNotFound)
	}
	return e.apply(doc, Move{From: f.Close, To: next.End - 1, Delim: f.Kind.Close(), Past: true}, cursor)
}

// SlurpBackward extends the form enclosing cursor to swallow the element
// that precedes it. The opening delimiter always moves to the start of that
// element, even when the element is itself a form: pulling the parent's
// opening delimiter instead would unbalance [(x) (a)].
func (e *Editor) SlurpBackward(doc Document, cursor int64) (Result, error) {
	s := e.scanner(doc)
	f, ok := s.EnclosingForm(cursor)
	if !ok {
		return Result{}, fmt.Errorf("slurp backward: enclosing form: %w", sexp.ErrNotFound)
	}
	prev, ok := s.ElementBefore(s.FormElement(f).Start)
	if !ok {
		return Result{}, fmt.Errorf("slurp backward: element before form: %w", sexp.ErrNotFound)
	}
	return e.apply(doc, Move{From: f.Open, To: prev.Start, Delim: f.Kind.Open()}, cursor)
}
