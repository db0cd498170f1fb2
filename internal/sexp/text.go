package sexp

import "github.com/waddie/paredit.hx/internal/engine/buffer"

// Range is a half-open byte range [Start, End).
type Range = buffer.Range

// NewRange builds a Range from two offsets in either order.
func NewRange(a, b int64) Range {
	return buffer.NewRange(a, b)
}

// Text is the read side of a host buffer: random byte access and length.
// *buffer.Buffer and *buffer.Snapshot both satisfy it.
type Text interface {
	ByteAt(offset int64) (byte, bool)
	Len() int64
}

// String adapts a Go string to Text.
type String string

// ByteAt implements Text.
func (s String) ByteAt(offset int64) (byte, bool) {
	if offset < 0 || offset >= int64(len(s)) {
		return 0, false
	}
	return s[offset], true
}

// Len implements Text.
func (s String) Len() int64 {
	return int64(len(s))
}
