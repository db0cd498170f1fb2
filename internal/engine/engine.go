package engine

import (
	"errors"
	"io"
	"sync"

	"github.com/waddie/paredit.hx/internal/engine/buffer"
	"github.com/waddie/paredit.hx/internal/engine/cursor"
	"github.com/waddie/paredit.hx/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Point represents a line/column position.
	Point = buffer.Point

	// Range represents a byte range in the buffer.
	Range = buffer.Range

	// Selection represents a cursor selection.
	Selection = cursor.Selection

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID
)

// Engine combines a buffer, one selection and undo history.
type Engine struct {
	mu sync.RWMutex

	buf     *buffer.Buffer
	sel     Selection
	history *history.History

	maxUndoEntries int
	normalizeCRLF  bool
	readOnly       bool
	initContent    string

	amendNext bool
}

func newEngine(opts []Option) *Engine {
	e := &Engine{maxUndoEntries: DefaultMaxUndoEntries}
	for _, opt := range opts {
		opt(e)
	}
	e.history = history.New(e.maxUndoEntries)
	return e
}

func (e *Engine) bufferOptions() []buffer.Option {
	var opts []buffer.Option
	if e.normalizeCRLF {
		opts = append(opts, buffer.WithCRLFNormalization())
	}
	return opts
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	e.buf = buffer.NewBufferFromString(e.initContent, e.bufferOptions()...)
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)
	buf, err := buffer.NewBufferFromReader(r, e.bufferOptions()...)
	if err != nil {
		return nil, err
	}
	e.buf = buf
	return e, nil
}

// Read Operations

// Text returns the full buffer content.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// TextRange returns text in the given byte range.
func (e *Engine) TextRange(start, end ByteOffset) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.TextRange(start, end)
}

// Len returns the total byte length of the buffer.
func (e *Engine) Len() ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Len()
}

// ByteAt returns the byte at the given offset.
func (e *Engine) ByteAt(offset ByteOffset) (byte, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.ByteAt(offset)
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() uint32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineCount()
}

// LineText returns the text of a specific line (without newline).
func (e *Engine) LineText(line uint32) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineText(line)
}

// LineStartOffset returns the byte offset of the start of a line.
func (e *Engine) LineStartOffset(line uint32) ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineStartOffset(line)
}

// OffsetToPoint converts a byte offset to line/column.
func (e *Engine) OffsetToPoint(offset ByteOffset) Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.OffsetToPoint(offset)
}

// PointToOffset converts line/column to byte offset.
func (e *Engine) PointToOffset(point Point) ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.PointToOffset(point)
}

// Snapshot returns a read-only snapshot of the current buffer state.
func (e *Engine) Snapshot() *buffer.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Snapshot()
}

// RevisionID returns the current buffer revision.
func (e *Engine) RevisionID() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.RevisionID()
}

// IsReadOnly returns true if the engine rejects writes.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (e *Engine) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	return e.Replace(offset, offset, text)
}

// Delete removes text in the given range.
func (e *Engine) Delete(start, end ByteOffset) error {
	_, err := e.Replace(start, end, "")
	return err
}

// Replace replaces text in the given range as one undoable edit.
// Returns the end position of the new text.
func (e *Engine) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}

	edit := buffer.NewEdit(buffer.Range{Start: start, End: end}, text)
	res, err := e.buf.ApplyEdit(edit)
	if err != nil {
		return 0, err
	}

	before := e.sel
	e.sel = cursor.TransformSelection(e.sel, edit)
	e.history.Push(history.NewEntry(buffer.ChangeFromResult(edit, res), before, e.sel))
	e.amendNext = true

	return res.NewRange.End, nil
}

// SetContent replaces the whole buffer and clears history.
func (e *Engine) SetContent(content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if _, err := e.buf.Replace(0, e.buf.Len(), content); err != nil {
		return err
	}
	e.history.Clear()
	e.amendNext = false
	e.sel = e.sel.Clamp(e.buf.Len())
	return nil
}

// Undo/Redo

// Undo reverts the last edit and restores the selection before it.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sel, err := e.history.Undo(e.buf)
	if errors.Is(err, history.ErrNothingToUndo) {
		return ErrNothingToUndo
	}
	if err != nil {
		return err
	}
	e.sel = sel.Clamp(e.buf.Len())
	e.amendNext = false
	return nil
}

// Redo reapplies the last undone edit.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sel, err := e.history.Redo(e.buf)
	if errors.Is(err, history.ErrNothingToRedo) {
		return ErrNothingToRedo
	}
	if err != nil {
		return err
	}
	e.sel = sel.Clamp(e.buf.Len())
	e.amendNext = false
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// UndoCount returns the number of undo entries.
func (e *Engine) UndoCount() int { return e.history.UndoCount() }

// ClearHistory removes all undo/redo history.
func (e *Engine) ClearHistory() { e.history.Clear() }

// Cursor and Selection

// Cursor returns the cursor offset (the selection head).
func (e *Engine) Cursor() ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel.Head
}

// SetCursor collapses the selection to offset, clamped to the buffer.
func (e *Engine) SetCursor(offset ByteOffset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setSelectionLocked(cursor.NewCursorSelection(offset))
}

// Selection returns the current selection.
func (e *Engine) Selection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel
}

// SelectedRange returns the selected range, or false for a bare cursor.
func (e *Engine) SelectedRange() (Range, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.sel.IsEmpty() {
		return Range{}, false
	}
	return e.sel.Range(), true
}

// SetSelection selects [start, end) with the cursor at end.
func (e *Engine) SetSelection(start, end ByteOffset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setSelectionLocked(cursor.NewSelection(start, end))
}

// setSelectionLocked sets the selection. The first move after an edit is
// recorded as that edit's redo selection.
func (e *Engine) setSelectionLocked(sel Selection) {
	e.sel = sel.Clamp(e.buf.Len())
	if e.amendNext {
		e.history.AmendLast(e.sel)
		e.amendNext = false
	}
}
