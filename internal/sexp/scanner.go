package sexp

// Scanner answers structural queries over a Text. It caches the lexical
// map of the text, so a Scanner must not outlive the revision it was
// created for.
type Scanner struct {
	text  Text
	rules Rules
	n     int64

	toks  []token
	lexed bool
}

// NewScanner creates a scanner over t. A nil rules value selects Plain.
func NewScanner(t Text, rules Rules) *Scanner {
	if rules == nil {
		rules = Plain{}
	}
	return &Scanner{text: t, rules: rules, n: t.Len()}
}

// Len returns the length of the scanned text.
func (s *Scanner) Len() int64 {
	return s.n
}

// Rules returns the scanner's rule set.
func (s *Scanner) Rules() Rules {
	return s.rules
}

// Text returns the scanned text.
func (s *Scanner) Text() Text {
	return s.text
}

func (s *Scanner) at(i int64) byte {
	c, _ := s.text.ByteAt(i)
	return c
}

func (s *Scanner) isSpace(c byte) bool {
	return IsSpace(c) || s.rules.IsWhitespace(c)
}

// codeByte returns the byte at i when i is a code offset.
func (s *Scanner) codeByte(i int64) (byte, bool) {
	c, ok := s.text.ByteAt(i)
	if !ok || s.StateAt(i).Kind != LexCode {
		return 0, false
	}
	return c, true
}

// MatchingDelimiter returns the offset of the delimiter paired with the one
// at pos. dir must be +1 for an opening delimiter and -1 for a closing one.
func (s *Scanner) MatchingDelimiter(pos int64, dir int) (int64, bool) {
	c, ok := s.codeByte(pos)
	if !ok {
		return 0, false
	}
	pair, ok := Pair(c)
	if !ok {
		return 0, false
	}
	switch {
	case dir > 0 && IsOpen(c):
		return s.matchForward(pos, c, pair)
	case dir < 0 && IsClose(c):
		return s.matchBackward(pos, c, pair)
	}
	return 0, false
}

func (s *Scanner) matchForward(pos int64, open, close byte) (int64, bool) {
	var (
		depth    int
		inString bool
		escaped  bool
	)
	for i := pos; i < s.n; i++ {
		c := s.at(i)
		switch {
		case escaped:
			escaped = false
		case inString:
			if c == escapeChar {
				escaped = true
			} else if c == quoteChar {
				inString = false
			}
		case c == escapeChar:
			i = charLiteralEnd(s.text, i) - 1
		case c == quoteChar:
			inString = true
		case c == commentChar:
			i = lineEnd(s.text, i) - 1
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func (s *Scanner) matchBackward(pos int64, close, open byte) (int64, bool) {
	depth := 0
	found := int64(-1)
	s.walkBackward(pos, func(i int64, c byte) bool {
		switch c {
		case close:
			depth++
		case open:
			depth--
			if depth == 0 {
				found = i
				return false
			}
		}
		return true
	})
	return found, found >= 0
}

// scanFrom returns the offset a backward structural scan for pos starts
// at: just before pos, or just before the token containing pos.
func (s *Scanner) scanFrom(pos int64) int64 {
	if pos > s.n {
		pos = s.n
	}
	if pos < s.n {
		if st := s.StateAt(pos); st.Kind != LexCode {
			return st.Start - 1
		}
	}
	return pos - 1
}

// unmatchedOpen walks backward from `from` and returns the first opening
// delimiter not closed before it.
func (s *Scanner) unmatchedOpen(from int64) (int64, bool) {
	depth := 0
	found := int64(-1)
	s.walkBackward(from, func(i int64, c byte) bool {
		switch {
		case IsClose(c):
			depth++
		case IsOpen(c):
			if depth == 0 {
				found = i
				return false
			}
			depth--
		}
		return true
	})
	return found, found >= 0
}

// EnclosingForm returns the innermost form containing pos. A position on
// an opening delimiter is outside the form it opens; a position on a
// closing delimiter is inside its form.
func (s *Scanner) EnclosingForm(pos int64) (Form, bool) {
	if pos < 0 {
		return Form{}, false
	}
	open, ok := s.unmatchedOpen(s.scanFrom(pos))
	if !ok {
		return Form{}, false
	}
	close, ok := s.MatchingDelimiter(open, +1)
	if !ok || close < min(pos, s.n-1) {
		return Form{}, false
	}
	return s.formAt(open, close), true
}

// TopLevelForm returns the outermost form containing pos.
func (s *Scanner) TopLevelForm(pos int64) (Form, bool) {
	f, ok := s.EnclosingForm(pos)
	if !ok {
		return Form{}, false
	}
	for {
		parent, ok := s.EnclosingForm(f.Open)
		if !ok {
			return f, true
		}
		f = parent
	}
}

// Depth returns the number of forms enclosing pos.
func (s *Scanner) Depth(pos int64) int {
	if pos < 0 {
		return 0
	}
	return s.depthFrom(s.scanFrom(pos))
}

func (s *Scanner) depthFrom(from int64) int {
	depth, pending := 0, 0
	s.walkBackward(from, func(_ int64, c byte) bool {
		switch {
		case IsClose(c):
			pending++
		case IsOpen(c):
			if pending == 0 {
				depth++
			} else {
				pending--
			}
		}
		return true
	})
	return depth
}

func (s *Scanner) formAt(open, close int64) Form {
	kind, _ := KindOf(s.at(open))
	return Form{
		Open:  open,
		Close: close,
		Depth: s.depthFrom(open - 1),
		Kind:  kind,
	}
}
