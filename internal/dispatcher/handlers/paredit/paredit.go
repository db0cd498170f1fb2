package paredit

import (
	"errors"

	"github.com/waddie/paredit.hx/internal/dispatcher/execctx"
	"github.com/waddie/paredit.hx/internal/dispatcher/handler"
	"github.com/waddie/paredit.hx/internal/engine/cursor"
	"github.com/waddie/paredit.hx/internal/input"
	"github.com/waddie/paredit.hx/internal/paredit"
	"github.com/waddie/paredit.hx/internal/sexp"
)

// Action names for structural edits.
const (
	ActionSlurpForward  = "paredit.slurpForward"
	ActionSlurpBackward = "paredit.slurpBackward"
	ActionBarfForward   = "paredit.barfForward"
	ActionBarfBackward  = "paredit.barfBackward"
)

// Action names for structural motions.
const (
	ActionNextElementHead = "paredit.nextElementHead"
	ActionNextElementTail = "paredit.nextElementTail"
	ActionPrevElementHead = "paredit.prevElementHead"
	ActionPrevElementTail = "paredit.prevElementTail"
	ActionParentFormStart = "paredit.parentFormStart"
	ActionParentFormEnd   = "paredit.parentFormEnd"
	ActionNextSiblingForm = "paredit.nextSiblingForm"
	ActionPrevSiblingForm = "paredit.prevSiblingForm"
)

// Action names for structural text objects.
const (
	ActionSelectAroundForm   = "paredit.selectAroundForm"
	ActionSelectInForm       = "paredit.selectInForm"
	ActionSelectElement      = "paredit.selectElement"
	ActionSelectTopLevelForm = "paredit.selectTopLevelForm"
)

type (
	editFunc   func(e *paredit.Editor, doc paredit.Document, pos int64) (paredit.Result, error)
	motionFunc func(e *paredit.Editor, t sexp.Text, pos int64) (int64, error)
	objectFunc func(e *paredit.Editor, t sexp.Text, pos int64) (sexp.Range, error)
)

var edits = map[string]editFunc{
	ActionSlurpForward:  (*paredit.Editor).SlurpForward,
	ActionSlurpBackward: (*paredit.Editor).SlurpBackward,
	ActionBarfForward:   (*paredit.Editor).BarfForward,
	ActionBarfBackward:  (*paredit.Editor).BarfBackward,
}

var motions = map[string]motionFunc{
	ActionNextElementHead: (*paredit.Editor).NextElementHead,
	ActionNextElementTail: (*paredit.Editor).NextElementTail,
	ActionPrevElementHead: (*paredit.Editor).PrevElementHead,
	ActionPrevElementTail: (*paredit.Editor).PrevElementTail,
	ActionParentFormStart: (*paredit.Editor).ParentFormStart,
	ActionParentFormEnd:   (*paredit.Editor).ParentFormEnd,
	ActionNextSiblingForm: (*paredit.Editor).NextSiblingFormStart,
	ActionPrevSiblingForm: (*paredit.Editor).PrevSiblingFormStart,
}

var objects = map[string]objectFunc{
	ActionSelectAroundForm:   (*paredit.Editor).SelectAroundForm,
	ActionSelectInForm:       (*paredit.Editor).SelectInForm,
	ActionSelectElement:      (*paredit.Editor).SelectElement,
	ActionSelectTopLevelForm: (*paredit.Editor).SelectTopLevelForm,
}

// Actions returns every action name this package handles.
func Actions() []string {
	return []string{
		ActionSlurpForward, ActionSlurpBackward, ActionBarfForward, ActionBarfBackward,
		ActionNextElementHead, ActionNextElementTail, ActionPrevElementHead, ActionPrevElementTail,
		ActionParentFormStart, ActionParentFormEnd, ActionNextSiblingForm, ActionPrevSiblingForm,
		ActionSelectAroundForm, ActionSelectInForm, ActionSelectElement, ActionSelectTopLevelForm,
	}
}

// IsEdit reports whether the action modifies text.
func IsEdit(actionName string) bool {
	_, ok := edits[actionName]
	return ok
}

// Handler implements namespace-based structural editing.
type Handler struct{}

// NewHandler creates a new structural editing handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the paredit namespace.
func (h *Handler) Namespace() string {
	return "paredit"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	if _, ok := edits[actionName]; ok {
		return true
	}
	if _, ok := motions[actionName]; ok {
		return true
	}
	_, ok := objects[actionName]
	return ok
}

// HandleAction processes a structural action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForStructure(); err != nil {
		return handler.Error(err)
	}

	if fn, ok := edits[action.Name]; ok {
		if err := ctx.ValidateForEdit(); err != nil {
			return handler.Error(err)
		}
		return h.edit(ctx, fn, ctx.GetCount())
	}
	if fn, ok := motions[action.Name]; ok {
		return h.move(ctx, fn, ctx.GetCount())
	}
	if fn, ok := objects[action.Name]; ok {
		return h.selectObject(ctx, fn)
	}
	return handler.Errorf("unknown paredit action: %s", action.Name)
}

// edit applies fn count times, stopping early when there is nothing left
// to move.
func (h *Handler) edit(ctx *execctx.ExecutionContext, fn editFunc, count int) handler.Result {
	start := Position(ctx.Engine.Selection())
	pos, cur := start, start
	result := handler.Success().WithRedraw()

	for i := 0; i < count; i++ {
		res, err := fn(ctx.Editor, ctx.Engine, pos)
		if err != nil {
			if i == 0 {
				return fromError(err)
			}
			break
		}
		pos, cur = res.Resume, res.Cursor
		ctx.Engine.SetCursor(cur)
		result = result.WithEdit(handler.Edit{
			Range:   res.Span,
			NewText: ctx.Engine.TextRange(res.Span.Start, res.Span.End),
		})
	}
	return result.WithCursorDelta(cur - start)
}

// move applies fn count times from the cursor.
func (h *Handler) move(ctx *execctx.ExecutionContext, fn motionFunc, count int) handler.Result {
	start := Position(ctx.Engine.Selection())
	pos := start

	for i := 0; i < count; i++ {
		next, err := fn(ctx.Editor, ctx.Engine, pos)
		if err != nil {
			if i == 0 {
				return fromError(err)
			}
			break
		}
		pos = next
	}
	if pos == start {
		return handler.NoOpWithMessage("already there")
	}
	ctx.Engine.SetCursor(pos)
	return handler.Success().WithRedraw().WithCursorDelta(pos - start)
}

// selectObject selects the range fn reports around the cursor.
func (h *Handler) selectObject(ctx *execctx.ExecutionContext, fn objectFunc) handler.Result {
	r, err := fn(ctx.Editor, ctx.Engine, Position(ctx.Engine.Selection()))
	if err != nil {
		return fromError(err)
	}
	ctx.Engine.SetSelection(r.Start, r.End)
	return handler.Success().WithRedraw()
}

// Position is the byte a structural command treats as "under the cursor":
// the head of a bare cursor, or the last selected byte of a forward
// selection.
func Position(sel cursor.Selection) int64 {
	if !sel.IsEmpty() && !sel.IsBackward() {
		return sel.Head - 1
	}
	return sel.Head
}

// fromError maps lookup failures to no-ops and everything else to errors.
func fromError(err error) handler.Result {
	switch {
	case errors.Is(err, sexp.ErrEmptyRegion):
		return handler.NoOpWithMessage("form is empty")
	case errors.Is(err, sexp.ErrNotFound):
		return handler.NoOpWithMessage(err.Error())
	default:
		return handler.Error(err)
	}
}
