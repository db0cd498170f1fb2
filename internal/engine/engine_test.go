package engine

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	e := New()
	if e.Len() != 0 || e.Text() != "" {
		t.Errorf("expected empty engine, got %q", e.Text())
	}
	if e.Cursor() != 0 {
		t.Errorf("cursor = %d", e.Cursor())
	}
}

func TestNewFromReader(t *testing.T) {
	e, err := NewFromReader(strings.NewReader("(a\r\n b)"), WithCRLFNormalization())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Text() != "(a\n b)" {
		t.Errorf("got %q", e.Text())
	}
	if e.LineCount() != 2 || e.LineText(1) != " b)" {
		t.Errorf("lines: %d %q", e.LineCount(), e.LineText(1))
	}
}

func TestReplaceTransformsSelection(t *testing.T) {
	e := New(WithContent("(a b)"))
	e.SetCursor(3)

	end, err := e.Replace(0, 0, "(x ")
	if err != nil {
		t.Fatal(err)
	}
	if end != 3 {
		t.Errorf("end = %d", end)
	}
	if e.Cursor() != 6 {
		t.Errorf("cursor = %d, want 6", e.Cursor())
	}
}

func TestUndoRedoRestoresCursor(t *testing.T) {
	e := New(WithContent("((a) b)"))
	e.SetCursor(3)

	if _, err := e.Replace(3, 6, " b)"); err != nil {
		t.Fatal(err)
	}
	e.SetCursor(5)
	e.SetCursor(1)

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "((a) b)" || e.Cursor() != 3 {
		t.Errorf("after undo: %q cursor %d", e.Text(), e.Cursor())
	}

	if err := e.Redo(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "((a b))" || e.Cursor() != 5 {
		t.Errorf("after redo: %q cursor %d", e.Text(), e.Cursor())
	}

	if err := e.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo = %v", err)
	}
	e.ClearHistory()
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo = %v", err)
	}
}

func TestSelection(t *testing.T) {
	e := New(WithContent("(a b c)"))

	if _, ok := e.SelectedRange(); ok {
		t.Error("bare cursor should have no selected range")
	}
	e.SetSelection(1, 6)
	r, ok := e.SelectedRange()
	if !ok || r.Start != 1 || r.End != 6 {
		t.Errorf("SelectedRange() = %v, %v", r, ok)
	}
	if e.Cursor() != 6 {
		t.Errorf("cursor = %d", e.Cursor())
	}

	e.SetCursor(99)
	if e.Cursor() != 7 {
		t.Errorf("cursor should clamp to 7, got %d", e.Cursor())
	}
}

func TestReadOnly(t *testing.T) {
	e := New(WithContent("(a)"), WithReadOnly())
	if _, err := e.Replace(0, 1, ""); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Replace = %v", err)
	}
	if err := e.SetContent("x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("SetContent = %v", err)
	}
	if !e.IsReadOnly() {
		t.Error("IsReadOnly() = false")
	}
}

func TestSetContent(t *testing.T) {
	e := New(WithContent("(a b c)"))
	e.SetCursor(6)
	if _, err := e.Insert(0, "x"); err != nil {
		t.Fatal(err)
	}
	if err := e.SetContent("()"); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "()" || e.CanUndo() || e.Cursor() != 2 {
		t.Errorf("got %q undo=%v cursor=%d", e.Text(), e.CanUndo(), e.Cursor())
	}
}

func TestConcurrentReads(t *testing.T) {
	e := New(WithContent("(defn f [x] x)"))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := int64(0); j < e.Len(); j++ {
				if _, ok := e.ByteAt(j); !ok {
					t.Errorf("ByteAt(%d) failed", j)
				}
			}
		}()
	}
	wg.Wait()
}
