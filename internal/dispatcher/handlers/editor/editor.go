package editor

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/waddie/paredit.hx/internal/dispatcher/execctx"
	"github.com/waddie/paredit.hx/internal/dispatcher/handler"
	"github.com/waddie/paredit.hx/internal/engine"
	"github.com/waddie/paredit.hx/internal/engine/buffer"
	"github.com/waddie/paredit.hx/internal/input"
)

// Action names for editor operations.
const (
	ActionInsertText     = "editor.insertText"
	ActionNewline        = "editor.newline"
	ActionDeleteBackward = "editor.deleteBackward"
	ActionDeleteForward  = "editor.deleteForward"
	ActionUndo           = "editor.undo"
	ActionRedo           = "editor.redo"
	ActionSave           = "editor.save"
	ActionQuit           = "editor.quit"
)

// DataQuit is the result data key set by ActionQuit.
const DataQuit = "quit"

// ErrNoFilePath indicates a save without a target file.
var ErrNoFilePath = errors.New("editor: buffer has no file path")

// Handler implements the editor namespace.
type Handler struct {
	*handler.BaseNamespaceHandler
}

// NewHandler creates a new editor handler.
func NewHandler() *Handler {
	h := &Handler{BaseNamespaceHandler: handler.NewBaseNamespaceHandler("editor")}
	h.Register(ActionInsertText, editing(insertText))
	h.Register(ActionNewline, editing(func(a input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return insertText(a.WithText("\n"), ctx)
	}))
	h.Register(ActionDeleteBackward, editing(deleteBackward))
	h.Register(ActionDeleteForward, editing(deleteForward))
	h.Register(ActionUndo, editing(undo))
	h.Register(ActionRedo, editing(redo))
	h.Register(ActionSave, save)
	h.Register(ActionQuit, func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithData(DataQuit, true)
	})
	return h
}

// editing wraps fn with the checks every mutating action needs.
func editing(fn handler.ActionFunc) handler.ActionFunc {
	return func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		if err := ctx.ValidateForEdit(); err != nil {
			return handler.Error(err)
		}
		return fn(action, ctx)
	}
}

// insertText replaces the selection (or inserts at the cursor) with
// count copies of the action text.
func insertText(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if action.Text == "" {
		return handler.NoOp()
	}
	text := action.Text
	for i := 1; i < ctx.GetCount(); i++ {
		text += action.Text
	}

	r := ctx.Engine.Selection().Range()
	end, err := ctx.Engine.Replace(r.Start, r.End, text)
	if err != nil {
		return handler.Error(err)
	}
	ctx.Engine.SetCursor(end)
	return handler.Success().WithRedraw().WithEdit(handler.Edit{
		Range:   r,
		NewText: text,
	})
}

// deleteBackward deletes the selection, or count runes before the cursor.
func deleteBackward(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	r, ok := deletionRange(ctx, -1)
	if !ok {
		return handler.NoOp()
	}
	return deleteRange(ctx, r)
}

// deleteForward deletes the selection, or count runes after the cursor.
func deleteForward(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	r, ok := deletionRange(ctx, 1)
	if !ok {
		return handler.NoOp()
	}
	return deleteRange(ctx, r)
}

func deletionRange(ctx *execctx.ExecutionContext, dir int) (buffer.Range, bool) {
	sel := ctx.Engine.Selection()
	if !sel.IsEmpty() {
		return sel.Range(), true
	}

	pos := sel.Head
	n := ctx.Engine.Len()
	end := pos
	for i := 0; i < ctx.GetCount(); i++ {
		if dir < 0 {
			if pos == 0 {
				break
			}
			_, size := utf8.DecodeLastRuneInString(ctx.Engine.TextRange(max(pos-utf8.UTFMax, 0), pos))
			pos -= buffer.ByteOffset(max(size, 1))
		} else {
			if end >= n {
				break
			}
			_, size := utf8.DecodeRuneInString(ctx.Engine.TextRange(end, min(end+utf8.UTFMax, n)))
			end += buffer.ByteOffset(max(size, 1))
		}
	}
	if pos == end {
		return buffer.Range{}, false
	}
	return buffer.Range{Start: pos, End: end}, true
}

func deleteRange(ctx *execctx.ExecutionContext, r buffer.Range) handler.Result {
	old := ctx.Engine.TextRange(r.Start, r.End)
	if err := ctx.Engine.Delete(r.Start, r.End); err != nil {
		return handler.Error(err)
	}
	ctx.Engine.SetCursor(r.Start)
	return handler.Success().WithRedraw().WithEdit(handler.Edit{Range: r, OldText: old})
}

func undo(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	for i := 0; i < ctx.GetCount(); i++ {
		if err := ctx.Engine.Undo(); err != nil {
			if errors.Is(err, engine.ErrNothingToUndo) {
				if i == 0 {
					return handler.NoOpWithMessage("nothing to undo")
				}
				break
			}
			return handler.Error(err)
		}
	}
	return handler.Success().WithRedraw()
}

func redo(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	for i := 0; i < ctx.GetCount(); i++ {
		if err := ctx.Engine.Redo(); err != nil {
			if errors.Is(err, engine.ErrNothingToRedo) {
				if i == 0 {
					return handler.NoOpWithMessage("nothing to redo")
				}
				break
			}
			return handler.Error(err)
		}
	}
	return handler.Success().WithRedraw()
}

// save writes the buffer to the context's file path.
func save(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	if ctx.FilePath == "" {
		return handler.Error(ErrNoFilePath)
	}
	text := ctx.Engine.Text()
	if err := os.WriteFile(ctx.FilePath, []byte(text), 0o644); err != nil {
		return handler.Error(fmt.Errorf("saving %s: %w", ctx.FilePath, err))
	}
	return handler.SuccessWithMessage(fmt.Sprintf("wrote %d bytes to %s", len(text), ctx.FilePath))
}
