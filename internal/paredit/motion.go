package paredit

import (
	"fmt"

	"github.com/waddie/paredit.hx/internal/sexp"
)

// NextElementHead returns the start of the element after the one under
// pos.
func (e *Editor) NextElementHead(t sexp.Text, pos int64) (int64, error) {
	next, ok := e.scanner(t).NextElement(pos)
	if !ok {
		return pos, fmt.Errorf("next element: %w", sexp.ErrNotFound)
	}
	return next.Start, nil
}

// NextElementTail returns the last byte of the element under pos, or of
// the next element when pos is already there.
func (e *Editor) NextElementTail(t sexp.Text, pos int64) (int64, error) {
	s := e.scanner(t)
	if cur, ok := s.CurrentElement(pos); ok && pos < cur.End-1 {
		return cur.End - 1, nil
	}
	next, ok := s.NextElement(pos)
	if !ok {
		return pos, fmt.Errorf("next element: %w", sexp.ErrNotFound)
	}
	return next.End - 1, nil
}

// PrevElementHead returns the start of the element under pos, or of the
// previous element when pos is already there.
func (e *Editor) PrevElementHead(t sexp.Text, pos int64) (int64, error) {
	s := e.scanner(t)
	if cur, ok := s.CurrentElement(pos); ok && cur.Contains(pos) && pos > cur.Start {
		return cur.Start, nil
	}
	prev, ok := s.PreviousElement(pos)
	if !ok {
		return pos, fmt.Errorf("previous element: %w", sexp.ErrNotFound)
	}
	return prev.Start, nil
}

// PrevElementTail returns the last byte of the element before the one
// under pos.
func (e *Editor) PrevElementTail(t sexp.Text, pos int64) (int64, error) {
	prev, ok := e.scanner(t).PreviousElement(pos)
	if !ok {
		return pos, fmt.Errorf("previous element: %w", sexp.ErrNotFound)
	}
	return prev.End - 1, nil
}

// ParentFormStart returns the opening delimiter of the form enclosing pos.
// From an opening delimiter it climbs to the parent.
func (e *Editor) ParentFormStart(t sexp.Text, pos int64) (int64, error) {
	f, ok := e.scanner(t).EnclosingForm(pos)
	if !ok {
		return pos, fmt.Errorf("parent form: %w", sexp.ErrNotFound)
	}
	return f.Open, nil
}

// ParentFormEnd returns the closing delimiter of the form enclosing pos.
// From a closing delimiter it climbs to the parent.
func (e *Editor) ParentFormEnd(t sexp.Text, pos int64) (int64, error) {
	s := e.scanner(t)
	f, ok := s.EnclosingForm(pos)
	if ok && f.Close == pos {
		f, ok = s.EnclosingForm(f.Open)
	}
	if !ok {
		return pos, fmt.Errorf("parent form: %w", sexp.ErrNotFound)
	}
	return f.Close, nil
}

// NextSiblingFormStart returns the opening delimiter of the next form at
// the level of the form under pos. Outside any form it finds the next
// top-level form.
func (e *Editor) NextSiblingFormStart(t sexp.Text, pos int64) (int64, error) {
	s := e.scanner(t)
	if f, ok := s.FormAt(pos); ok {
		if next, ok := s.NextSiblingForm(f); ok {
			return next.Open, nil
		}
		return pos, fmt.Errorf("next sibling form: %w", sexp.ErrNotFound)
	}
	for p := pos; ; {
		el, ok := s.ElementAt(p)
		if !ok {
			return pos, fmt.Errorf("next sibling form: %w", sexp.ErrNotFound)
		}
		if f, ok := s.FormOf(el); ok && f.Open > pos {
			return f.Open, nil
		}
		p = el.End
	}
}

// PrevSiblingFormStart returns the opening delimiter of the previous form
// at the level of the form under pos.
func (e *Editor) PrevSiblingFormStart(t sexp.Text, pos int64) (int64, error) {
	s := e.scanner(t)
	if f, ok := s.FormAt(pos); ok {
		if prev, ok := s.PrevSiblingForm(f); ok {
			return prev.Open, nil
		}
		return pos, fmt.Errorf("previous sibling form: %w", sexp.ErrNotFound)
	}
	for p := pos; ; {
		el, ok := s.ElementBefore(p)
		if !ok {
			return pos, fmt.Errorf("previous sibling form: %w", sexp.ErrNotFound)
		}
		if f, ok := s.FormOf(el); ok {
			return f.Open, nil
		}
		p = el.Start
	}
}
