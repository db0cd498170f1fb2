package sexp

import "sort"

// Lexical is the lexical class of an offset.
type Lexical uint8

const (
	LexCode Lexical = iota
	LexString
	LexComment
	LexChar
)

// String returns the class name.
func (l Lexical) String() string {
	switch l {
	case LexString:
		return "string"
	case LexComment:
		return "comment"
	case LexChar:
		return "char"
	default:
		return "code"
	}
}

// State is the lexical token containing an offset. For code, the token is
// the single byte at the offset.
type State struct {
	Kind  Lexical
	Start int64
	End   int64
}

// InCode reports whether the offset is structural code.
func (s State) InCode() bool {
	return s.Kind == LexCode
}

// token is a non-code span [start, end).
type token struct {
	kind       Lexical
	start, end int64
}

// lex classifies the whole text in one forward pass and returns the
// strings, comments and character literals in order. Everything between
// tokens is code.
func lex(t Text) []token {
	n := t.Len()
	var toks []token
	for i := int64(0); i < n; {
		c, _ := t.ByteAt(i)
		switch c {
		case quoteChar:
			end, _ := stringEnd(t, i)
			toks = append(toks, token{LexString, i, end})
			i = end
		case commentChar:
			end := lineEnd(t, i)
			toks = append(toks, token{LexComment, i, end})
			i = end
		case escapeChar:
			end := charLiteralEnd(t, i)
			toks = append(toks, token{LexChar, i, end})
			i = end
		default:
			i++
		}
	}
	return toks
}

// stringEnd returns the offset just past the string opening at i. An
// unterminated string runs to the end of the text and reports false.
func stringEnd(t Text, i int64) (int64, bool) {
	n := t.Len()
	for j := i + 1; j < n; {
		c, _ := t.ByteAt(j)
		switch c {
		case escapeChar:
			j += 2
		case quoteChar:
			return j + 1, true
		default:
			j++
		}
	}
	return n, false
}

// lineEnd returns the offset of the newline ending the line containing i,
// or the text length.
func lineEnd(t Text, i int64) int64 {
	n := t.Len()
	for ; i < n; i++ {
		if c, _ := t.ByteAt(i); c == '\n' {
			return i
		}
	}
	return n
}

// charLiteralEnd returns the offset just past the character literal whose
// escape is at i. Named literals (\newline, é) extend over the
// alphanumeric run; a non-ASCII literal covers the whole rune.
func charLiteralEnd(t Text, i int64) int64 {
	n := t.Len()
	if i+1 >= n {
		return n
	}
	c, _ := t.ByteAt(i + 1)
	j := i + 2
	switch {
	case isAlnum(c):
		for j < n {
			if d, _ := t.ByteAt(j); !isAlnum(d) {
				break
			}
			j++
		}
	case c >= 0x80:
		for j < n {
			if d, _ := t.ByteAt(j); d&0xC0 != 0x80 {
				break
			}
			j++
		}
	}
	return j
}

func (s *Scanner) tokens() []token {
	if !s.lexed {
		s.toks = lex(s.text)
		s.lexed = true
	}
	return s.toks
}

// StateAt returns the lexical token containing pos.
func (s *Scanner) StateAt(pos int64) State {
	toks := s.tokens()
	i := sort.Search(len(toks), func(i int) bool { return toks[i].end > pos })
	if i < len(toks) && toks[i].start <= pos {
		return State{Kind: toks[i].kind, Start: toks[i].start, End: toks[i].end}
	}
	return State{Kind: LexCode, Start: pos, End: pos + 1}
}

// walkBackward calls fn for each code offset from `from` down to 0,
// skipping strings, comments and character literals. It stops when fn
// returns false.
func (s *Scanner) walkBackward(from int64, fn func(i int64, c byte) bool) {
	toks := s.tokens()
	k := sort.Search(len(toks), func(i int) bool { return toks[i].start > from }) - 1
	for i := from; i >= 0; {
		for k >= 0 && toks[k].start > i {
			k--
		}
		if k >= 0 && i < toks[k].end {
			i = toks[k].start - 1
			k--
			continue
		}
		if !fn(i, s.at(i)) {
			return
		}
		i--
	}
}

// walkForward is the forward counterpart of walkBackward.
func (s *Scanner) walkForward(from int64, fn func(i int64, c byte) bool) {
	toks := s.tokens()
	k := sort.Search(len(toks), func(i int) bool { return toks[i].end > from })
	for i := from; i < s.n; {
		for k < len(toks) && toks[k].end <= i {
			k++
		}
		if k < len(toks) && toks[k].start <= i {
			i = toks[k].end
			k++
			continue
		}
		if !fn(i, s.at(i)) {
			return
		}
		i++
	}
}
