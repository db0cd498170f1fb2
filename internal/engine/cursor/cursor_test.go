package cursor

import (
	"testing"

	"github.com/waddie/paredit.hx/internal/engine/buffer"
)

func TestSelectionBounds(t *testing.T) {
	tests := []struct {
		name       string
		sel        Selection
		start, end ByteOffset
		empty      bool
		backward   bool
	}{
		{"cursor", NewCursorSelection(5), 5, 5, true, false},
		{"forward", NewSelection(2, 8), 2, 8, false, false},
		{"backward", NewSelection(8, 2), 2, 8, false, true},
		{"from range", NewRangeSelection(buffer.NewRange(9, 3)), 3, 9, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.sel.Start() != tt.start || tt.sel.End() != tt.end {
				t.Errorf("bounds = [%d, %d), want [%d, %d)", tt.sel.Start(), tt.sel.End(), tt.start, tt.end)
			}
			if tt.sel.IsEmpty() != tt.empty {
				t.Errorf("IsEmpty() = %v", tt.sel.IsEmpty())
			}
			if tt.sel.IsBackward() != tt.backward {
				t.Errorf("IsBackward() = %v", tt.sel.IsBackward())
			}
			if r := tt.sel.Range(); r.Start != tt.start || r.End != tt.end {
				t.Errorf("Range() = %v", r)
			}
			if tt.sel.Len() != tt.end-tt.start {
				t.Errorf("Len() = %d", tt.sel.Len())
			}
		})
	}
}

func TestSelectionMoves(t *testing.T) {
	sel := NewCursorSelection(10).Extend(20)
	if sel.Anchor != 10 || sel.Head != 20 {
		t.Fatalf("Extend: %v", sel)
	}
	if f := sel.Flip(); f.Anchor != 20 || f.Head != 10 {
		t.Errorf("Flip: %v", f)
	}
	if c := sel.Collapse(); !c.IsEmpty() || c.Head != 20 {
		t.Errorf("Collapse: %v", c)
	}
	if m := sel.MoveTo(3); m.Anchor != 3 || m.Head != 3 {
		t.Errorf("MoveTo: %v", m)
	}
	if c := NewSelection(-4, 40).Clamp(30); c.Anchor != 0 || c.Head != 30 {
		t.Errorf("Clamp: %v", c)
	}
}

func TestSelectionString(t *testing.T) {
	if got := NewCursorSelection(4).String(); got != "Cursor(4)" {
		t.Errorf("got %q", got)
	}
	if got := NewSelection(4, 1).String(); got != "Selection(4←1)" {
		t.Errorf("got %q", got)
	}
}

func TestTransformOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset ByteOffset
		edit   buffer.Edit
		want   ByteOffset
	}{
		{"insert before", 10, buffer.NewInsert(5, "abc"), 13},
		{"insert at", 10, buffer.NewInsert(10, "abc"), 13},
		{"insert after", 10, buffer.NewInsert(15, "abc"), 10},
		{"delete before", 10, buffer.NewDelete(2, 5), 7},
		{"delete spanning", 10, buffer.NewDelete(8, 12), 8},
		{"replace spanning", 10, buffer.NewEdit(buffer.NewRange(8, 12), "xy"), 10},
		{"same length replace before", 10, buffer.NewEdit(buffer.NewRange(3, 6), "xyz"), 10},
	}

	for _, tt := range tests {
		if got := TransformOffset(tt.offset, tt.edit); got != tt.want {
			t.Errorf("%s: TransformOffset(%d, %v) = %d, want %d", tt.name, tt.offset, tt.edit, got, tt.want)
		}
	}
}

func TestTransformSelection(t *testing.T) {
	sel := NewSelection(4, 12)
	got := TransformSelection(sel, buffer.NewInsert(0, "((("))
	if got.Anchor != 7 || got.Head != 15 {
		t.Errorf("got %v", got)
	}
}
