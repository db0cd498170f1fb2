package paredit

import (
	"fmt"

	"github.com/waddie/paredit.hx/internal/sexp"
)

// SelectAroundForm returns the form under pos including its delimiters.
func (e *Editor) SelectAroundForm(t sexp.Text, pos int64) (sexp.Range, error) {
	f, ok := e.scanner(t).FormAt(pos)
	if !ok {
		return sexp.Range{}, fmt.Errorf("select around form: %w", sexp.ErrNotFound)
	}
	return f.Outer(), nil
}

// SelectInForm returns the interior of the form under pos.
func (e *Editor) SelectInForm(t sexp.Text, pos int64) (sexp.Range, error) {
	f, ok := e.scanner(t).FormAt(pos)
	if !ok {
		return sexp.Range{}, fmt.Errorf("select in form: %w", sexp.ErrNotFound)
	}
	if f.IsEmpty() {
		return sexp.Range{}, fmt.Errorf("select in form: %w", sexp.ErrEmptyRegion)
	}
	return f.Inner(), nil
}

// SelectElement returns the element under pos.
func (e *Editor) SelectElement(t sexp.Text, pos int64) (sexp.Range, error) {
	el, ok := e.scanner(t).CurrentElement(pos)
	if !ok {
		return sexp.Range{}, fmt.Errorf("select element: %w", sexp.ErrNotFound)
	}
	return el.Range, nil
}

// SelectTopLevelForm returns the outermost form containing pos, or the
// top-level form whose delimiter is under pos.
func (e *Editor) SelectTopLevelForm(t sexp.Text, pos int64) (sexp.Range, error) {
	s := e.scanner(t)
	f, ok := s.FormAt(pos)
	if !ok {
		return sexp.Range{}, fmt.Errorf("select top-level form: %w", sexp.ErrNotFound)
	}
	if top, ok := s.TopLevelForm(f.Open); ok {
		f = top
	}
	return f.Outer(), nil
}
