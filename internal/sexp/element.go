package sexp

// ElementKind classifies an element.
type ElementKind uint8

const (
	ElementAtom ElementKind = iota
	ElementString
	ElementChar
	ElementForm
)

// String returns the kind name.
func (k ElementKind) String() string {
	switch k {
	case ElementString:
		return "string"
	case ElementChar:
		return "char"
	case ElementForm:
		return "form"
	default:
		return "atom"
	}
}

// Element is one syntactic unit: an atom, a string, a character literal or
// a whole form, including any reader prefixes attached to it.
type Element struct {
	Range
	Kind ElementKind
}

func (s *Scanner) isBoundary(c byte) bool {
	return s.isSpace(c) || IsDelimiter(c) || c == quoteChar || c == commentChar
}

// atomByte reports whether i is a code offset that can continue an atom.
func (s *Scanner) atomByte(i int64) bool {
	c, ok := s.text.ByteAt(i)
	if !ok || s.isBoundary(c) || c == escapeChar {
		return false
	}
	return s.StateAt(i).Kind == LexCode
}

// SkipForward returns the first offset at or after i that is neither
// whitespace nor inside a line comment.
func (s *Scanner) SkipForward(i int64) int64 {
	for i < s.n {
		st := s.StateAt(i)
		switch {
		case st.Kind == LexComment:
			i = st.End
		case st.Kind == LexCode && s.isSpace(s.at(i)):
			i++
		default:
			return i
		}
	}
	return i
}

// SkipBackward returns the last offset at or before i that is neither
// whitespace nor inside a line comment, or -1.
func (s *Scanner) SkipBackward(i int64) int64 {
	if i >= s.n {
		i = s.n - 1
	}
	for i >= 0 {
		st := s.StateAt(i)
		switch {
		case st.Kind == LexComment:
			i = st.Start - 1
		case st.Kind == LexCode && s.isSpace(s.at(i)):
			i--
		default:
			return i
		}
	}
	return i
}

// attachedStart extends p backward over an atom run glued to it when that
// run is a prefix of the element starting at p, as in '( #{ #"re" or #?(.
func (s *Scanner) attachedStart(p int64) int64 {
	start := p
	for start > 0 && s.atomByte(start-1) {
		start--
	}
	if start == p {
		return p
	}
	if e, ok := s.elementFrom(start); ok && e.End > p {
		return start
	}
	return p
}

// elementFrom reads the element starting exactly at start.
func (s *Scanner) elementFrom(start int64) (Element, bool) {
	q := start
	nsMap := false
	for q < s.n {
		if role, w := s.rules.Dispatch(s.text, q); role != DispatchNone && w > 0 {
			q += int64(w)
			switch role {
			case DispatchNamespacedMap:
				nsMap = true
			case DispatchMeta:
				return s.annotated(start, q, true)
			case DispatchDiscard:
				return s.annotated(start, q, false)
			}
			if !role.Skippable() {
				break
			}
			continue
		}
		switch s.rules.ReaderPrefix(s.at(q)) {
		case PrefixNone:
		case PrefixMeta:
			return s.annotated(start, q+1, true)
		default:
			q++
			continue
		}
		break
	}
	if q >= s.n {
		if q > start {
			return Element{Range: NewRange(start, s.n), Kind: ElementAtom}, true
		}
		return Element{}, false
	}

	c := s.at(q)
	switch {
	case IsOpen(c):
		close, ok := s.MatchingDelimiter(q, +1)
		if !ok {
			return Element{}, false
		}
		return Element{Range: NewRange(start, close+1), Kind: ElementForm}, true
	case c == quoteChar:
		end, ok := stringEnd(s.text, q)
		if !ok {
			return Element{}, false
		}
		return Element{Range: NewRange(start, end), Kind: ElementString}, true
	case c == escapeChar:
		return Element{Range: NewRange(start, charLiteralEnd(s.text, q)), Kind: ElementChar}, true
	case s.isBoundary(c):
		if q > start {
			return Element{Range: NewRange(start, q), Kind: ElementAtom}, true
		}
		return Element{}, false
	}

	end := q
	for end < s.n && s.atomByte(end) {
		end++
	}
	if nsMap && end < s.n && IsOpen(s.at(end)) {
		if close, ok := s.MatchingDelimiter(end, +1); ok {
			return Element{Range: NewRange(start, close+1), Kind: ElementForm}, true
		}
	}
	return Element{Range: NewRange(start, end), Kind: ElementAtom}, true
}

// annotated reads the element introduced by a metadata or discard marker
// ending at q. Metadata carries its own operand first. The marker, the
// operand and the element they apply to form one element; without a
// following element the marker stands alone.
func (s *Scanner) annotated(start, q int64, meta bool) (Element, bool) {
	bare := Element{Range: NewRange(start, q), Kind: ElementAtom}
	if meta {
		md, ok := s.elementFrom(q)
		if !ok {
			return bare, true
		}
		bare.End = md.End
		q = md.End
	}
	target, ok := s.elementFrom(s.SkipForward(q))
	if !ok {
		return bare, true
	}
	return Element{Range: NewRange(start, target.End), Kind: target.Kind}, true
}

// withAnnotations extends e backward over metadata and discard markers
// that apply to it, as in ^:private foo or #_ (x).
func (s *Scanner) withAnnotations(e Element) Element {
	for {
		p := s.SkipBackward(e.Start - 1)
		if p < 0 {
			return e
		}
		prev, ok := s.elementEndingAt(p)
		if !ok || prev.Start >= e.Start || prev.End < e.End {
			return e
		}
		e = prev
	}
}

// elementEndingAt returns the element containing the code offset p, read
// from its start.
func (s *Scanner) elementEndingAt(p int64) (Element, bool) {
	if c, ok := s.codeByte(p); ok {
		switch {
		case IsOpen(c):
			return Element{}, false
		case IsClose(c):
			open, ok := s.MatchingDelimiter(p, -1)
			if !ok {
				return Element{}, false
			}
			return s.elementFrom(s.attachedStart(open))
		}
	}
	return s.currentElement(p)
}

// CurrentElement returns the element under pos. Inside a string or
// character literal it is that token; on whitespace or in a comment it is
// the next element at the same level. It reports false on a closing
// delimiter and at the end of the text. Metadata and discard markers
// belong to the element they apply to.
func (s *Scanner) CurrentElement(pos int64) (Element, bool) {
	e, ok := s.currentElement(pos)
	if !ok {
		return Element{}, false
	}
	return s.withAnnotations(e), true
}

func (s *Scanner) currentElement(pos int64) (Element, bool) {
	if pos < 0 || pos >= s.n {
		return Element{}, false
	}
	if st := s.StateAt(pos); st.Kind == LexString || st.Kind == LexChar {
		return s.elementFrom(s.attachedStart(st.Start))
	}
	p := s.SkipForward(pos)
	if p >= s.n {
		return Element{}, false
	}
	if st := s.StateAt(p); st.Kind != LexCode {
		return s.elementFrom(s.attachedStart(st.Start))
	}
	c := s.at(p)
	switch {
	case IsClose(c):
		return Element{}, false
	case IsOpen(c):
		return s.elementFrom(s.attachedStart(p))
	}
	start := p
	for start > 0 && s.atomByte(start-1) {
		start--
	}
	return s.elementFrom(start)
}

// ElementAt returns the first element starting at or after pos, skipping
// whitespace and comments. It reports false when a closing delimiter or the
// end of the text comes first.
func (s *Scanner) ElementAt(pos int64) (Element, bool) {
	if pos < 0 {
		pos = 0
	}
	p := s.SkipForward(pos)
	if p >= s.n {
		return Element{}, false
	}
	if c, ok := s.codeByte(p); ok && IsClose(c) {
		return Element{}, false
	}
	return s.CurrentElement(p)
}

// ElementBefore returns the last element ending at or before pos, skipping
// whitespace and comments. It reports false when an opening delimiter or
// the start of the text comes first.
func (s *Scanner) ElementBefore(pos int64) (Element, bool) {
	p := s.SkipBackward(pos - 1)
	if p < 0 {
		return Element{}, false
	}
	if c, ok := s.codeByte(p); ok {
		switch {
		case IsOpen(c):
			return Element{}, false
		case IsClose(c):
			open, ok := s.MatchingDelimiter(p, -1)
			if !ok {
				return Element{}, false
			}
			e := Element{Range: NewRange(s.attachedStart(open), p+1), Kind: ElementForm}
			return s.withAnnotations(e), true
		}
	}
	return s.CurrentElement(p)
}

// NextElement returns the element after the one under pos, or the next
// element when pos is between elements.
func (s *Scanner) NextElement(pos int64) (Element, bool) {
	p := pos
	if cur, ok := s.CurrentElement(pos); ok && cur.Contains(pos) {
		p = cur.End
	}
	return s.ElementAt(p)
}

// PreviousElement returns the element before the one under pos, or the
// previous element when pos is between elements.
func (s *Scanner) PreviousElement(pos int64) (Element, bool) {
	p := pos
	if cur, ok := s.CurrentElement(pos); ok && cur.Contains(pos) {
		p = cur.Start
	}
	return s.ElementBefore(p)
}
