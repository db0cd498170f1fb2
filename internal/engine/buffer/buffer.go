package buffer

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrReadOnly         = errors.New("buffer is read-only")
)

// Buffer holds the document text and provides the read and replace
// primitives used by the editing engine.
// All methods are thread-safe.
type Buffer struct {
	mu            sync.RWMutex
	text          string
	lineStarts    []ByteOffset // nil until first line query after an edit
	revisionID    RevisionID
	normalizeCRLF bool
	readOnly      bool
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{revisionID: NewRevisionID()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.text = b.normalize(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

func (b *Buffer) normalize(s string) string {
	if !b.normalizeCRLF {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// TextRange returns text in the given byte range, clamped to the buffer.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return sliceClamped(b.text, start, end)
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// ByteAt returns the byte at the given offset.
// The second result is false when offset is outside the buffer.
func (b *Buffer) ByteAt(offset ByteOffset) (byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset >= ByteOffset(len(b.text)) {
		return 0, false
	}
	return b.text[offset], true
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint32(len(b.lines()))
}

// LineStartOffset returns the byte offset of the start of a line.
// Lines past the end map to the buffer length.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	b.mu.Lock()
	defer b.mu.Unlock()
	starts := b.lines()
	if int(line) >= len(starts) {
		return ByteOffset(len(b.text))
	}
	return starts[line]
}

// LineEndOffset returns the byte offset of the end of a line (before newline).
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	b.mu.Lock()
	defer b.mu.Unlock()
	starts := b.lines()
	if int(line)+1 >= len(starts) {
		return ByteOffset(len(b.text))
	}
	return starts[line+1] - 1
}

// LineText returns the text of a specific line (without newline).
func (b *Buffer) LineText(line uint32) string {
	start := b.LineStartOffset(line)
	end := b.LineEndOffset(line)
	return b.TextRange(start, end)
}

// OffsetToPoint converts a byte offset to a line/column position.
// Offsets outside the buffer are clamped.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.Lock()
	defer b.mu.Unlock()
	return offsetToPoint(b.lines(), ByteOffset(len(b.text)), offset)
}

// PointToOffset converts a line/column position to a byte offset.
// Columns past the end of the line are clamped to the line end.
func (b *Buffer) PointToOffset(p Point) ByteOffset {
	b.mu.Lock()
	defer b.mu.Unlock()
	return pointToOffset(b.lines(), ByteOffset(len(b.text)), p)
}

// lines returns the cached line start index, rebuilding it if needed.
// Caller must hold the write lock.
func (b *Buffer) lines() []ByteOffset {
	if b.lineStarts == nil {
		b.lineStarts = computeLineStarts(b.text)
	}
	return b.lineStarts
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	return b.Replace(offset, offset, text)
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	_, err := b.Replace(start, end, "")
	return err
}

// Replace replaces text in the given range with new text as one atomic
// edit. Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	res, err := b.ApplyEdit(Edit{Range: Range{Start: start, End: end}, NewText: text})
	if err != nil {
		return 0, err
	}
	return res.NewRange.End, nil
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return EditResult{}, ErrReadOnly
	}
	r := edit.Range
	if r.Start < 0 || r.Start > r.End || r.End > ByteOffset(len(b.text)) {
		return EditResult{}, ErrRangeInvalid
	}

	oldText := b.text[r.Start:r.End]
	newText := b.normalize(edit.NewText)

	var sb strings.Builder
	sb.Grow(len(b.text) - len(oldText) + len(newText))
	sb.WriteString(b.text[:r.Start])
	sb.WriteString(newText)
	sb.WriteString(b.text[r.End:])

	b.text = sb.String()
	b.lineStarts = nil
	b.revisionID = NewRevisionID()

	return EditResult{
		OldRange: r,
		NewRange: Range{Start: r.Start, End: r.Start + ByteOffset(len(newText))},
		OldText:  oldText,
		Delta:    int64(len(newText)) - int64(r.Len()),
	}, nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsReadOnly reports whether writes are rejected.
func (b *Buffer) IsReadOnly() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readOnly
}

// Snapshot returns a read-only snapshot of the current buffer state.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return &Snapshot{
		text:       b.text, // strings are immutable, safe to share
		lineStarts: b.lines(),
		revisionID: b.revisionID,
	}
}

// Helpers shared by Buffer and Snapshot.

func computeLineStarts(text string) []ByteOffset {
	starts := []ByteOffset{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	return starts
}

func sliceClamped(text string, start, end ByteOffset) string {
	n := ByteOffset(len(text))
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return ""
	}
	return text[start:end]
}

func offsetToPoint(starts []ByteOffset, n, offset ByteOffset) Point {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	// Last line whose start is <= offset.
	line := sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return Point{Line: uint32(line), Column: uint32(offset - starts[line])}
}

func pointToOffset(starts []ByteOffset, n ByteOffset, p Point) ByteOffset {
	if int(p.Line) >= len(starts) {
		return n
	}
	start := starts[p.Line]
	end := n
	if int(p.Line)+1 < len(starts) {
		end = starts[p.Line+1] - 1
	}
	offset := start + ByteOffset(p.Column)
	if offset > end {
		offset = end
	}
	return offset
}
