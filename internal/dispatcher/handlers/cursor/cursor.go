// Package cursor provides handlers for plain cursor movement.
package cursor

import (
	"unicode/utf8"

	"github.com/waddie/paredit.hx/internal/dispatcher/execctx"
	"github.com/waddie/paredit.hx/internal/dispatcher/handler"
	"github.com/waddie/paredit.hx/internal/engine/buffer"
	"github.com/waddie/paredit.hx/internal/input"
)

// Action names for cursor movements.
const (
	ActionMoveLeft      = "cursor.moveLeft"
	ActionMoveRight     = "cursor.moveRight"
	ActionMoveUp        = "cursor.moveUp"
	ActionMoveDown      = "cursor.moveDown"
	ActionMoveLineStart = "cursor.moveLineStart"
	ActionMoveLineEnd   = "cursor.moveLineEnd"
	ActionCollapse      = "cursor.collapse"
)

// Handler implements namespace-based cursor movement handling.
type Handler struct{}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the cursor namespace.
func (h *Handler) Namespace() string {
	return "cursor"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionMoveLeft, ActionMoveRight, ActionMoveUp, ActionMoveDown,
		ActionMoveLineStart, ActionMoveLineEnd, ActionCollapse:
		return true
	}
	return false
}

// HandleAction processes a cursor action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	count := ctx.GetCount()
	head := ctx.Engine.Selection().Head

	var target buffer.ByteOffset
	switch action.Name {
	case ActionMoveLeft:
		target = h.left(ctx, head, count)
	case ActionMoveRight:
		target = h.right(ctx, head, count)
	case ActionMoveUp:
		target = h.vertical(ctx, head, -count)
	case ActionMoveDown:
		target = h.vertical(ctx, head, count)
	case ActionMoveLineStart:
		target = ctx.Engine.LineStartOffset(ctx.Engine.OffsetToPoint(head).Line)
	case ActionMoveLineEnd:
		line := ctx.Engine.OffsetToPoint(head).Line
		target = ctx.Engine.LineStartOffset(line) + buffer.ByteOffset(len(ctx.Engine.LineText(line)))
	case ActionCollapse:
		if ctx.Engine.Selection().IsEmpty() {
			return handler.NoOp()
		}
		ctx.Engine.SetCursor(head)
		return handler.Success().WithRedraw()
	default:
		return handler.Errorf("unknown cursor action: %s", action.Name)
	}

	ctx.Engine.SetCursor(target)
	return handler.Success().WithRedraw().WithCursorDelta(target - head)
}

// left moves back count runes.
func (h *Handler) left(ctx *execctx.ExecutionContext, pos buffer.ByteOffset, count int) buffer.ByteOffset {
	for i := 0; i < count && pos > 0; i++ {
		from := max(pos-utf8.UTFMax, 0)
		_, size := utf8.DecodeLastRuneInString(ctx.Engine.TextRange(from, pos))
		pos -= buffer.ByteOffset(max(size, 1))
	}
	return pos
}

// right moves forward count runes.
func (h *Handler) right(ctx *execctx.ExecutionContext, pos buffer.ByteOffset, count int) buffer.ByteOffset {
	n := ctx.Engine.Len()
	for i := 0; i < count && pos < n; i++ {
		to := min(pos+utf8.UTFMax, n)
		_, size := utf8.DecodeRuneInString(ctx.Engine.TextRange(pos, to))
		pos += buffer.ByteOffset(max(size, 1))
	}
	return pos
}

// vertical moves delta lines keeping the byte column where the target
// line is long enough.
func (h *Handler) vertical(ctx *execctx.ExecutionContext, pos buffer.ByteOffset, delta int) buffer.ByteOffset {
	p := ctx.Engine.OffsetToPoint(pos)
	line := int64(p.Line) + int64(delta)
	last := int64(ctx.Engine.LineCount()) - 1
	line = max(0, min(line, last))
	return ctx.Engine.PointToOffset(buffer.Point{Line: uint32(line), Column: p.Column})
}
