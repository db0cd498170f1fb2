package sexp

// Lexical characters shared by every supported dialect.
const (
	quoteChar   byte = '"'
	escapeChar  byte = '\\'
	commentChar byte = ';'
)

// DelimKind identifies a delimiter pair.
type DelimKind uint8

const (
	Round  DelimKind = iota // ( )
	Square                  // [ ]
	Curly                   // { }
)

// String returns the name of the delimiter kind.
func (k DelimKind) String() string {
	switch k {
	case Round:
		return "round"
	case Square:
		return "square"
	case Curly:
		return "curly"
	default:
		return "unknown"
	}
}

// Open returns the opening delimiter character.
func (k DelimKind) Open() byte {
	switch k {
	case Square:
		return '['
	case Curly:
		return '{'
	default:
		return '('
	}
}

// Close returns the closing delimiter character.
func (k DelimKind) Close() byte {
	switch k {
	case Square:
		return ']'
	case Curly:
		return '}'
	default:
		return ')'
	}
}

// IsSpace reports whether c is ASCII whitespace.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// IsOpen reports whether c opens a form.
func IsOpen(c byte) bool {
	return c == '(' || c == '[' || c == '{'
}

// IsClose reports whether c closes a form.
func IsClose(c byte) bool {
	return c == ')' || c == ']' || c == '}'
}

// IsDelimiter reports whether c opens or closes a form.
func IsDelimiter(c byte) bool {
	return IsOpen(c) || IsClose(c)
}

// Pair returns the delimiter that pairs with c.
func Pair(c byte) (byte, bool) {
	switch c {
	case '(':
		return ')', true
	case ')':
		return '(', true
	case '[':
		return ']', true
	case ']':
		return '[', true
	case '{':
		return '}', true
	case '}':
		return '{', true
	}
	return 0, false
}

// KindOf returns the delimiter kind of an opening or closing character.
func KindOf(c byte) (DelimKind, bool) {
	switch c {
	case '(', ')':
		return Round, true
	case '[', ']':
		return Square, true
	case '{', '}':
		return Curly, true
	}
	return 0, false
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
