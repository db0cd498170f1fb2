package cursor_test

import (
	"testing"

	"github.com/waddie/paredit.hx/internal/dispatcher/execctx"
	cursorhandler "github.com/waddie/paredit.hx/internal/dispatcher/handlers/cursor"
	"github.com/waddie/paredit.hx/internal/engine"
	"github.com/waddie/paredit.hx/internal/input"
)

func TestMovement(t *testing.T) {
	const text = "(défn f\n  [x]\n  x)"
	tests := []struct {
		name   string
		action string
		pos    int64
		count  int
		want   int64
	}{
		{"left", cursorhandler.ActionMoveLeft, 2, 1, 1},
		{"left over rune", cursorhandler.ActionMoveLeft, 4, 1, 2},
		{"left clamps", cursorhandler.ActionMoveLeft, 1, 5, 0},
		{"right over rune", cursorhandler.ActionMoveRight, 2, 1, 4},
		{"right count", cursorhandler.ActionMoveRight, 0, 3, 4},
		{"right clamps", cursorhandler.ActionMoveRight, 18, 4, 19},
		{"down", cursorhandler.ActionMoveDown, 1, 1, 10},
		{"down clamps column", cursorhandler.ActionMoveDown, 7, 1, 14},
		{"down past end", cursorhandler.ActionMoveDown, 1, 9, 16},
		{"up", cursorhandler.ActionMoveUp, 17, 1, 11},
		{"line start", cursorhandler.ActionMoveLineStart, 12, 1, 9},
		{"line end", cursorhandler.ActionMoveLineEnd, 9, 1, 14},
	}

	h := cursorhandler.NewHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := engine.New(engine.WithContent(text))
			e.SetCursor(tt.pos)
			ctx := execctx.New().WithEngine(e).WithCount(tt.count)

			if r := h.HandleAction(input.Action{Name: tt.action}, ctx); !r.IsOK() {
				t.Fatalf("status = %v", r.Status)
			}
			if got := e.Cursor(); got != tt.want {
				t.Errorf("cursor = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCollapse(t *testing.T) {
	e := engine.New(engine.WithContent("(a b)"))
	ctx := execctx.New().WithEngine(e)
	h := cursorhandler.NewHandler()

	if r := h.HandleAction(input.Action{Name: cursorhandler.ActionCollapse}, ctx); !r.IsNoOp() {
		t.Errorf("collapse of bare cursor status = %v", r.Status)
	}

	e.SetSelection(1, 4)
	if r := h.HandleAction(input.Action{Name: cursorhandler.ActionCollapse}, ctx); !r.IsOK() {
		t.Fatalf("collapse status = %v", r.Status)
	}
	if !e.Selection().IsEmpty() || e.Cursor() != 4 {
		t.Errorf("selection after collapse = %v", e.Selection())
	}
}

func TestCanHandle(t *testing.T) {
	h := cursorhandler.NewHandler()
	if !h.CanHandle(cursorhandler.ActionMoveDown) || h.CanHandle("cursor.teleport") {
		t.Error("CanHandle mismatch")
	}
}
