package history

import (
	"errors"
	"testing"

	"github.com/waddie/paredit.hx/internal/engine/buffer"
	"github.com/waddie/paredit.hx/internal/engine/cursor"
)

// apply edits buf and returns an entry describing the edit.
func apply(t *testing.T, buf *buffer.Buffer, edit buffer.Edit, before, after cursor.Selection) Entry {
	t.Helper()
	res, err := buf.ApplyEdit(edit)
	if err != nil {
		t.Fatalf("ApplyEdit(%v): %v", edit, err)
	}
	return NewEntry(buffer.ChangeFromResult(edit, res), before, after)
}

func TestUndoRedo(t *testing.T) {
	buf := buffer.NewBufferFromString("((a) b)")
	h := New(10)

	e := apply(t, buf, buffer.NewEdit(buffer.NewRange(3, 6), " b)"),
		cursor.NewCursorSelection(2), cursor.NewCursorSelection(5))
	h.Push(e)

	if buf.Text() != "((a b))" {
		t.Fatalf("after edit: %q", buf.Text())
	}

	sel, err := h.Undo(buf)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if buf.Text() != "((a) b)" {
		t.Errorf("after undo: %q", buf.Text())
	}
	if sel.Head != 2 {
		t.Errorf("undo selection = %v, want cursor 2", sel)
	}
	if !h.CanRedo() || h.CanUndo() {
		t.Error("expected only redo to be available")
	}

	sel, err = h.Redo(buf)
	if err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if buf.Text() != "((a b))" {
		t.Errorf("after redo: %q", buf.Text())
	}
	if sel.Head != 5 {
		t.Errorf("redo selection = %v, want cursor 5", sel)
	}
}

func TestUndoRedoLengthChange(t *testing.T) {
	buf := buffer.NewBufferFromString("(a)")
	h := New(10)

	h.Push(apply(t, buf, buffer.NewInsert(2, " bcd"), cursor.Selection{}, cursor.Selection{}))
	h.Push(apply(t, buf, buffer.NewDelete(0, 1), cursor.Selection{}, cursor.Selection{}))

	if buf.Text() != "a bcd)" {
		t.Fatalf("after edits: %q", buf.Text())
	}
	for i := 0; i < 2; i++ {
		if _, err := h.Undo(buf); err != nil {
			t.Fatalf("Undo %d: %v", i, err)
		}
	}
	if buf.Text() != "(a)" {
		t.Errorf("after undo: %q", buf.Text())
	}
	if _, err := h.Undo(buf); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo on empty stack: %v", err)
	}
}

func TestPushClearsRedo(t *testing.T) {
	buf := buffer.NewBufferFromString("ab")
	h := New(10)

	h.Push(apply(t, buf, buffer.NewInsert(2, "c"), cursor.Selection{}, cursor.Selection{}))
	if _, err := h.Undo(buf); err != nil {
		t.Fatal(err)
	}
	h.Push(apply(t, buf, buffer.NewInsert(0, "x"), cursor.Selection{}, cursor.Selection{}))

	if h.CanRedo() {
		t.Error("push should clear the redo stack")
	}
	if _, err := h.Redo(buf); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo: %v", err)
	}
}

func TestMaxEntries(t *testing.T) {
	buf := buffer.NewBufferFromString("")
	h := New(3)

	for i := 0; i < 5; i++ {
		h.Push(apply(t, buf, buffer.NewInsert(0, "x"), cursor.Selection{}, cursor.Selection{}))
	}
	if h.UndoCount() != 3 {
		t.Errorf("UndoCount() = %d, want 3", h.UndoCount())
	}
	if New(0).MaxEntries() != DefaultMaxEntries {
		t.Error("non-positive limit should use the default")
	}
}

func TestAmendLastAndPeek(t *testing.T) {
	buf := buffer.NewBufferFromString("(a)")
	h := New(10)

	if _, ok := h.PeekUndo(); ok {
		t.Fatal("PeekUndo on empty history")
	}
	h.Push(apply(t, buf, buffer.NewDelete(1, 2), cursor.NewCursorSelection(1), cursor.NewCursorSelection(1)))
	h.AmendLast(cursor.NewCursorSelection(0))

	e, ok := h.PeekUndo()
	if !ok || e.After.Head != 0 {
		t.Errorf("PeekUndo() = %+v, %v", e, ok)
	}
	if e.Description() != "Delete" {
		t.Errorf("Description() = %q", e.Description())
	}

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("Clear should empty both stacks")
	}
}
