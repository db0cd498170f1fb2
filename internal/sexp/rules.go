package sexp

// PrefixRole classifies a single-character reader prefix.
type PrefixRole uint8

const (
	PrefixNone PrefixRole = iota
	PrefixQuote
	PrefixSyntaxQuote
	PrefixUnquote
	PrefixDeref
	PrefixMeta
)

// String returns the role name.
func (r PrefixRole) String() string {
	switch r {
	case PrefixQuote:
		return "quote"
	case PrefixSyntaxQuote:
		return "syntax-quote"
	case PrefixUnquote:
		return "unquote"
	case PrefixDeref:
		return "deref"
	case PrefixMeta:
		return "meta"
	default:
		return "none"
	}
}

// ParsePrefixRole returns the role with the given name.
func ParsePrefixRole(name string) (PrefixRole, bool) {
	for r := PrefixQuote; r <= PrefixMeta; r++ {
		if r.String() == name {
			return r, true
		}
	}
	return PrefixNone, false
}

// DispatchRole classifies a multi-character dispatch sequence, usually
// introduced by '#'.
type DispatchRole uint8

const (
	DispatchNone DispatchRole = iota
	DispatchFn
	DispatchSet
	DispatchRegex
	DispatchDiscard
	DispatchVarQuote
	DispatchConditional
	DispatchNamespacedMap
	DispatchSymbolic
	DispatchMeta
	DispatchCharLiteral
)

var dispatchNames = [...]string{
	DispatchNone:          "none",
	DispatchFn:            "fn",
	DispatchSet:           "set",
	DispatchRegex:         "regex",
	DispatchDiscard:       "discard",
	DispatchVarQuote:      "var-quote",
	DispatchConditional:   "conditional",
	DispatchNamespacedMap: "namespaced-map",
	DispatchSymbolic:      "symbolic",
	DispatchMeta:          "meta",
	DispatchCharLiteral:   "char-literal",
}

// String returns the role name.
func (r DispatchRole) String() string {
	if int(r) < len(dispatchNames) {
		return dispatchNames[r]
	}
	return "none"
}

// ParseDispatchRole returns the role with the given name.
func ParseDispatchRole(name string) (DispatchRole, bool) {
	for r := DispatchFn; int(r) < len(dispatchNames); r++ {
		if dispatchNames[r] == name {
			return r, true
		}
	}
	return DispatchNone, false
}

// Skippable reports whether the element detector keeps consuming prefixes
// after a sequence with this role. Non-skippable roles are glued to the
// opener that follows them (the "(" of "#(", the quote of "#\"").
func (r DispatchRole) Skippable() bool {
	switch r {
	case DispatchDiscard, DispatchVarQuote, DispatchSymbolic,
		DispatchMeta, DispatchConditional, DispatchNamespacedMap:
		return true
	}
	return false
}

// Rules describes the lexical details that differ between dialects.
type Rules interface {
	// Name returns the dialect name.
	Name() string

	// IsWhitespace reports extra whitespace characters beyond ASCII space.
	IsWhitespace(c byte) bool

	// ReaderPrefix classifies a single-character prefix.
	ReaderPrefix(c byte) PrefixRole

	// Dispatch classifies the sequence starting at pos. The int is the
	// number of bytes the sequence occupies.
	Dispatch(t Text, pos int64) (DispatchRole, int)

	// IsCommentForm reports whether the form opening at pos is a comment
	// form such as (comment ...).
	IsCommentForm(t Text, pos int64) bool
}

// Plain is the rule set with no extra whitespace, prefixes or dispatch
// sequences. It is used when a Scanner is created with nil rules.
type Plain struct{}

func (Plain) Name() string { return "plain" }
func (Plain) IsWhitespace(byte) bool { return false }
func (Plain) ReaderPrefix(byte) PrefixRole { return PrefixNone }
func (Plain) Dispatch(Text, int64) (DispatchRole, int) { return DispatchNone, 0 }
func (Plain) IsCommentForm(Text, int64) bool { return false }

// HeadSymbol returns the first atom inside the form opening at pos. It
// reports false when pos is not an opening delimiter or the form does not
// start with an atom. isSpace reports whitespace beyond ASCII space and may
// be nil.
func HeadSymbol(t Text, pos int64, isSpace func(byte) bool) (string, bool) {
	space := func(c byte) bool {
		return IsSpace(c) || (isSpace != nil && isSpace(c))
	}
	c, ok := t.ByteAt(pos)
	if !ok || !IsOpen(c) {
		return "", false
	}
	i := pos + 1
	for {
		c, ok = t.ByteAt(i)
		if !ok || !space(c) {
			break
		}
		i++
	}
	start := i
	for {
		c, ok = t.ByteAt(i)
		if !ok || space(c) || IsDelimiter(c) || c == quoteChar || c == commentChar || c == escapeChar {
			break
		}
		i++
	}
	if i == start {
		return "", false
	}
	buf := make([]byte, 0, i-start)
	for j := start; j < i; j++ {
		c, _ = t.ByteAt(j)
		buf = append(buf, c)
	}
	return string(buf), true
}
