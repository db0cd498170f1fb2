package paredit_test

import (
	"errors"
	"testing"

	"github.com/waddie/paredit.hx/internal/dispatcher/execctx"
	"github.com/waddie/paredit.hx/internal/dispatcher/handler"
	phandler "github.com/waddie/paredit.hx/internal/dispatcher/handlers/paredit"
	"github.com/waddie/paredit.hx/internal/engine"
	"github.com/waddie/paredit.hx/internal/engine/cursor"
	"github.com/waddie/paredit.hx/internal/input"
	"github.com/waddie/paredit.hx/internal/lang"
	"github.com/waddie/paredit.hx/internal/paredit"
)

func newContext(text string, pos int64, behavior paredit.CursorBehavior) (*engine.Engine, *execctx.ExecutionContext) {
	e := engine.New(engine.WithContent(text))
	e.SetCursor(pos)
	ed := paredit.New(paredit.WithRules(lang.Clojure()), paredit.WithCursorBehavior(behavior))
	return e, execctx.New().WithEngine(e).WithEditor(ed)
}

func TestCanHandle(t *testing.T) {
	h := phandler.NewHandler()
	if h.Namespace() != "paredit" {
		t.Errorf("Namespace() = %q", h.Namespace())
	}
	for _, name := range phandler.Actions() {
		if !h.CanHandle(name) {
			t.Errorf("CanHandle(%q) = false", name)
		}
	}
	if len(phandler.Actions()) != 16 {
		t.Errorf("Actions() has %d entries, want 16", len(phandler.Actions()))
	}
	if h.CanHandle("paredit.raise") {
		t.Error("CanHandle(paredit.raise) = true")
	}
	if !phandler.IsEdit(phandler.ActionBarfBackward) || phandler.IsEdit(phandler.ActionSelectElement) {
		t.Error("IsEdit mismatch")
	}
}

func TestEdits(t *testing.T) {
	tests := []struct {
		name     string
		action   string
		text     string
		pos      int64
		count    int
		behavior paredit.CursorBehavior
		want     string
		cursor   int64
		edits    int
	}{
		{"slurp forward remain", phandler.ActionSlurpForward, "(a) b", 1, 1, paredit.CursorRemain, "(a b)", 1, 1},
		{"slurp forward follow", phandler.ActionSlurpForward, "(a) b", 1, 1, paredit.CursorFollow, "(a b)", 5, 1},
		{"slurp forward follow twice", phandler.ActionSlurpForward, "(a) b c", 1, 2, paredit.CursorFollow, "(a b c)", 7, 2},
		{"barf forward follow twice", phandler.ActionBarfForward, "(a b c)", 5, 2, paredit.CursorFollow, "(a) b c", 2, 2},
		{"slurp forward twice", phandler.ActionSlurpForward, "(a) b c", 1, 2, paredit.CursorRemain, "(a b c)", 1, 2},
		{"count stops early", phandler.ActionSlurpForward, "(a) b", 1, 5, paredit.CursorRemain, "(a b)", 1, 1},
		{"slurp backward", phandler.ActionSlurpBackward, "a (b)", 3, 1, paredit.CursorRemain, "(a b)", 3, 1},
		{"barf forward", phandler.ActionBarfForward, "(a b)", 1, 1, paredit.CursorRemain, "(a) b", 1, 1},
		{"barf backward", phandler.ActionBarfBackward, "(a b)", 3, 1, paredit.CursorRemain, "a (b)", 3, 1},
	}

	h := phandler.NewHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ctx := newContext(tt.text, tt.pos, tt.behavior)
			ctx.WithCount(tt.count)

			result := h.HandleAction(input.Action{Name: tt.action}, ctx)
			if !result.IsOK() {
				t.Fatalf("status = %v (%v %s)", result.Status, result.Error, result.Message)
			}
			if got := e.Text(); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
			if got := e.Cursor(); got != tt.cursor {
				t.Errorf("cursor = %d, want %d", got, tt.cursor)
			}
			if len(result.Edits) != tt.edits {
				t.Errorf("edits = %d, want %d", len(result.Edits), tt.edits)
			}
			if e.UndoCount() != tt.edits {
				t.Errorf("undo entries = %d, want %d", e.UndoCount(), tt.edits)
			}
		})
	}
}

func TestEditNoOp(t *testing.T) {
	e, ctx := newContext("(a)", 1, paredit.CursorAuto)
	h := phandler.NewHandler()

	for _, name := range []string{
		phandler.ActionSlurpForward,
		phandler.ActionSlurpBackward,
	} {
		result := h.HandleAction(input.Action{Name: name}, ctx)
		if result.Status != handler.StatusNoOp {
			t.Errorf("%s status = %v, want no-op", name, result.Status)
		}
		if result.Message == "" {
			t.Errorf("%s: expected a message", name)
		}
	}
	if e.Text() != "(a)" || e.CanUndo() {
		t.Errorf("no-op changed engine: %q undo=%v", e.Text(), e.CanUndo())
	}

	e, ctx = newContext("()", 1, paredit.CursorAuto)
	if r := h.HandleAction(input.Action{Name: phandler.ActionBarfForward}, ctx); r.Status != handler.StatusNoOp {
		t.Errorf("barf on empty form status = %v", r.Status)
	}
	if e.Text() != "()" {
		t.Errorf("text = %q", e.Text())
	}
}

func TestEditUndo(t *testing.T) {
	e, ctx := newContext("((a) b)", 2, paredit.CursorFollow)
	h := phandler.NewHandler()

	if r := h.HandleAction(input.Action{Name: phandler.ActionSlurpForward}, ctx); !r.IsOK() {
		t.Fatalf("slurp status = %v", r.Status)
	}
	if e.Text() != "((a b))" {
		t.Fatalf("text = %q", e.Text())
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if e.Text() != "((a) b)" || e.Cursor() != 2 {
		t.Errorf("after undo: %q cursor %d", e.Text(), e.Cursor())
	}
	if err := e.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if e.Text() != "((a b))" || e.Cursor() != 6 {
		t.Errorf("after redo: %q cursor %d", e.Text(), e.Cursor())
	}
}

func TestMotions(t *testing.T) {
	tests := []struct {
		name   string
		action string
		text   string
		pos    int64
		count  int
		want   int64
	}{
		{"next sibling", phandler.ActionNextSiblingForm, "(a b) (c)", 0, 1, 6},
		{"prev sibling", phandler.ActionPrevSiblingForm, "(a b) (c)", 6, 1, 0},
		{"parent start", phandler.ActionParentFormStart, "(a (b c))", 4, 1, 3},
		{"parent start twice", phandler.ActionParentFormStart, "(a (b c))", 4, 2, 0},
		{"parent end", phandler.ActionParentFormEnd, "(a (b c))", 4, 1, 7},
		{"next element head", phandler.ActionNextElementHead, "(foo bar)", 1, 1, 5},
		{"prev element head", phandler.ActionPrevElementHead, "(foo bar)", 5, 1, 1},
	}

	h := phandler.NewHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ctx := newContext(tt.text, tt.pos, paredit.CursorAuto)
			ctx.WithCount(tt.count)

			result := h.HandleAction(input.Action{Name: tt.action}, ctx)
			if !result.IsOK() {
				t.Fatalf("status = %v (%s)", result.Status, result.Message)
			}
			if got := e.Cursor(); got != tt.want {
				t.Errorf("cursor = %d, want %d", got, tt.want)
			}
			if result.CursorDelta != tt.want-tt.pos {
				t.Errorf("CursorDelta = %d, want %d", result.CursorDelta, tt.want-tt.pos)
			}
		})
	}
}

func TestMotionNoOp(t *testing.T) {
	e, ctx := newContext("a b", 0, paredit.CursorAuto)
	r := phandler.NewHandler().HandleAction(input.Action{Name: phandler.ActionParentFormStart}, ctx)
	if r.Status != handler.StatusNoOp {
		t.Errorf("status = %v, want no-op", r.Status)
	}
	if e.Cursor() != 0 {
		t.Errorf("cursor moved to %d", e.Cursor())
	}
}

func TestSelectObjects(t *testing.T) {
	tests := []struct {
		name       string
		action     string
		text       string
		pos        int64
		start, end int64
	}{
		{"around", phandler.ActionSelectAroundForm, "x (a b)", 3, 2, 7},
		{"in", phandler.ActionSelectInForm, "x (a b)", 3, 3, 6},
		{"element", phandler.ActionSelectElement, "(foo bar)", 6, 5, 8},
		{"top level", phandler.ActionSelectTopLevelForm, "(a (b (c)))", 7, 0, 11},
	}

	h := phandler.NewHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ctx := newContext(tt.text, tt.pos, paredit.CursorAuto)

			if r := h.HandleAction(input.Action{Name: tt.action}, ctx); !r.IsOK() {
				t.Fatalf("status = %v (%s)", r.Status, r.Message)
			}
			rng, ok := e.SelectedRange()
			if !ok {
				t.Fatal("no selection")
			}
			if rng.Start != tt.start || rng.End != tt.end {
				t.Errorf("selection = [%d,%d), want [%d,%d)", rng.Start, rng.End, tt.start, tt.end)
			}
		})
	}
}

func TestSelectInEmptyForm(t *testing.T) {
	_, ctx := newContext("()", 0, paredit.CursorAuto)
	r := phandler.NewHandler().HandleAction(input.Action{Name: phandler.ActionSelectInForm}, ctx)
	if r.Status != handler.StatusNoOp || r.Message != "form is empty" {
		t.Errorf("result = %v %q", r.Status, r.Message)
	}
}

func TestMotionAfterSelection(t *testing.T) {
	e, ctx := newContext("(foo bar)", 1, paredit.CursorAuto)
	h := phandler.NewHandler()

	h.HandleAction(input.Action{Name: phandler.ActionSelectElement}, ctx)
	if r := h.HandleAction(input.Action{Name: phandler.ActionNextElementHead}, ctx); !r.IsOK() {
		t.Fatalf("status = %v", r.Status)
	}
	if e.Cursor() != 5 {
		t.Errorf("cursor = %d, want 5", e.Cursor())
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		sel  cursor.Selection
		want int64
	}{
		{cursor.NewCursorSelection(4), 4},
		{cursor.NewSelection(1, 4), 3},
		{cursor.NewSelection(4, 1), 1},
	}
	for _, tt := range tests {
		if got := phandler.Position(tt.sel); got != tt.want {
			t.Errorf("Position(%v) = %d, want %d", tt.sel, got, tt.want)
		}
	}
}

func TestValidation(t *testing.T) {
	h := phandler.NewHandler()

	r := h.HandleAction(input.Action{Name: phandler.ActionSlurpForward}, execctx.New())
	if !errors.Is(r.Error, execctx.ErrMissingEngine) {
		t.Errorf("missing engine error = %v", r.Error)
	}

	ctx := execctx.New().WithEngine(engine.New(engine.WithContent("(a) b")))
	r = h.HandleAction(input.Action{Name: phandler.ActionSlurpForward}, ctx)
	if !errors.Is(r.Error, execctx.ErrMissingEditor) {
		t.Errorf("missing editor error = %v", r.Error)
	}

	ro := engine.New(engine.WithContent("(a) b"), engine.WithReadOnly())
	ctx = execctx.New().WithEngine(ro).WithEditor(paredit.New())
	r = h.HandleAction(input.Action{Name: phandler.ActionSlurpForward}, ctx)
	if !errors.Is(r.Error, execctx.ErrReadOnly) {
		t.Errorf("read-only error = %v", r.Error)
	}
	if r := h.HandleAction(input.Action{Name: phandler.ActionSelectElement}, ctx); r.IsError() {
		t.Errorf("selection on read-only buffer failed: %v", r.Error)
	}
}
