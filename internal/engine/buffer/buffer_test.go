package buffer

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
}

func TestNewBufferFromReader(t *testing.T) {
	b, err := NewBufferFromReader(strings.NewReader("(defn f [x]\r\n  x)"), WithCRLFNormalization())
	if err != nil {
		t.Fatalf("NewBufferFromReader() error = %v", err)
	}
	if got, want := b.Text(), "(defn f [x]\n  x)"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestBufferByteAt(t *testing.T) {
	b := NewBufferFromString("(a)")

	tests := []struct {
		offset ByteOffset
		want   byte
		ok     bool
	}{
		{0, '(', true},
		{1, 'a', true},
		{2, ')', true},
		{3, 0, false},
		{-1, 0, false},
	}

	for _, tt := range tests {
		got, ok := b.ByteAt(tt.offset)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ByteAt(%d) = (%q, %v), want (%q, %v)", tt.offset, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBufferReplace(t *testing.T) {
	b := NewBufferFromString("((a) b)")
	rev := b.RevisionID()

	end, err := b.Replace(3, 6, " b)")
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if end != 6 {
		t.Errorf("Replace() end = %d, want 6", end)
	}
	if got := b.Text(); got != "((a b))" {
		t.Errorf("Text() = %q, want %q", got, "((a b))")
	}
	if b.RevisionID() == rev {
		t.Error("RevisionID() should change after an edit")
	}
}

func TestBufferReplaceInvalid(t *testing.T) {
	b := NewBufferFromString("abc")

	tests := []struct {
		name       string
		start, end ByteOffset
	}{
		{"negative start", -1, 1},
		{"inverted", 2, 1},
		{"past end", 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.Replace(tt.start, tt.end, "x"); !errors.Is(err, ErrRangeInvalid) {
				t.Errorf("Replace(%d, %d) error = %v, want ErrRangeInvalid", tt.start, tt.end, err)
			}
		})
	}
	if b.Text() != "abc" {
		t.Errorf("failed edits must not mutate; Text() = %q", b.Text())
	}
}

func TestBufferReadOnly(t *testing.T) {
	b := NewBufferFromString("abc", WithReadOnly())
	if _, err := b.Insert(0, "x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Insert() error = %v, want ErrReadOnly", err)
	}
}

func TestBufferApplyEdit(t *testing.T) {
	b := NewBufferFromString("(a b)")

	res, err := b.ApplyEdit(NewEdit(Range{Start: 2, End: 5}, ") b"))
	if err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}
	if res.OldText != " b)" {
		t.Errorf("OldText = %q, want %q", res.OldText, " b)")
	}
	if res.Delta != 0 {
		t.Errorf("Delta = %d, want 0", res.Delta)
	}

	change := ChangeFromResult(NewEdit(Range{Start: 2, End: 5}, ") b"), res)
	if _, err := b.ApplyEdit(change.Invert().ToEdit()); err != nil {
		t.Fatalf("ApplyEdit(inverse) error = %v", err)
	}
	if b.Text() != "(a b)" {
		t.Errorf("after inverse Text() = %q, want %q", b.Text(), "(a b)")
	}
}

func TestBufferLines(t *testing.T) {
	b := NewBufferFromString("(ns a)\n\n(def x 1)")

	if b.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", b.LineCount())
	}
	if got := b.LineText(2); got != "(def x 1)" {
		t.Errorf("LineText(2) = %q", got)
	}
	if got := b.LineText(1); got != "" {
		t.Errorf("LineText(1) = %q, want empty", got)
	}

	p := b.OffsetToPoint(9)
	if p != (Point{Line: 2, Column: 1}) {
		t.Errorf("OffsetToPoint(9) = %v, want (2:1)", p)
	}
	if off := b.PointToOffset(Point{Line: 2, Column: 1}); off != 9 {
		t.Errorf("PointToOffset((2:1)) = %d, want 9", off)
	}
	if off := b.PointToOffset(Point{Line: 0, Column: 99}); off != 6 {
		t.Errorf("PointToOffset clamps to line end: got %d, want 6", off)
	}
}

func TestNewRangeSorts(t *testing.T) {
	r := NewRange(7, 3)
	if r.Start != 3 || r.End != 7 {
		t.Errorf("NewRange(7, 3) = %v, want [3:7)", r)
	}
	if !r.IsValid() || r.Len() != 4 {
		t.Errorf("range %v should be valid with length 4", r)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	b := NewBufferFromString("(a)")
	snap := b.Snapshot()

	if _, err := b.Insert(2, " b"); err != nil {
		t.Fatal(err)
	}
	if snap.Text() != "(a)" {
		t.Errorf("snapshot changed: %q", snap.Text())
	}
	if c, ok := snap.ByteAt(2); !ok || c != ')' {
		t.Errorf("snapshot ByteAt(2) = %q, %v", c, ok)
	}
}

func TestBufferConcurrentReads(t *testing.T) {
	b := NewBufferFromString(strings.Repeat("(a b) ", 100))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := ByteOffset(0); j < b.Len(); j++ {
				b.ByteAt(j)
			}
		}()
	}
	wg.Wait()
}
