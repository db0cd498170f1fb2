package sexp

// Form is a delimited form. Close is the offset of the closing delimiter
// itself. Depth counts the forms enclosing this one; top-level forms have
// depth 0.
type Form struct {
	Open  int64
	Close int64
	Depth int
	Kind  DelimKind
}

// Outer returns the range covering both delimiters.
func (f Form) Outer() Range {
	return NewRange(f.Open, f.Close+1)
}

// Inner returns the range between the delimiters.
func (f Form) Inner() Range {
	return NewRange(f.Open+1, f.Close)
}

// IsEmpty reports whether the form has nothing between its delimiters.
func (f Form) IsEmpty() bool {
	return f.Close == f.Open+1
}

// FormAt returns the form whose delimiter is at pos, or the form enclosing
// pos when pos is not on a delimiter.
func (s *Scanner) FormAt(pos int64) (Form, bool) {
	c, ok := s.codeByte(pos)
	if ok {
		switch {
		case IsOpen(c):
			if close, ok := s.MatchingDelimiter(pos, +1); ok {
				return s.formAt(pos, close), true
			}
			return Form{}, false
		case IsClose(c):
			if open, ok := s.MatchingDelimiter(pos, -1); ok {
				return s.formAt(open, pos), true
			}
			return Form{}, false
		}
	}
	return s.EnclosingForm(pos)
}

// FormOf returns the form of a form element. The element may begin
// with reader prefixes, so the form is found from its closing delimiter.
func (s *Scanner) FormOf(e Element) (Form, bool) {
	if e.Kind != ElementForm || e.IsEmpty() {
		return Form{}, false
	}
	close := e.End - 1
	open, ok := s.MatchingDelimiter(close, -1)
	if !ok {
		return Form{}, false
	}
	return s.formAt(open, close), true
}

// NextSiblingForm returns the first form after f at the same level,
// skipping atoms and strings.
func (s *Scanner) NextSiblingForm(f Form) (Form, bool) {
	for p := f.Close + 1; ; {
		e, ok := s.ElementAt(p)
		if !ok {
			return Form{}, false
		}
		if next, ok := s.FormOf(e); ok {
			return next, true
		}
		p = e.End
	}
}

// PrevSiblingForm returns the last form before f at the same level.
func (s *Scanner) PrevSiblingForm(f Form) (Form, bool) {
	for p := s.FormElement(f).Start; ; {
		e, ok := s.ElementBefore(p)
		if !ok {
			return Form{}, false
		}
		if prev, ok := s.FormOf(e); ok {
			return prev, true
		}
		p = e.Start
	}
}

// FormElement returns f as an element, including any reader prefixes
// attached to its opening delimiter and any metadata or discard marker
// applied to it.
func (s *Scanner) FormElement(f Form) Element {
	e := Element{Range: NewRange(s.attachedStart(f.Open), f.Close+1), Kind: ElementForm}
	return s.withAnnotations(e)
}
