package dispatcher

import (
	"github.com/waddie/paredit.hx/internal/dispatcher/execctx"
	"github.com/waddie/paredit.hx/internal/dispatcher/handler"
	"github.com/waddie/paredit.hx/internal/input"
)

// PreDispatchHook is called before an action is dispatched.
type PreDispatchHook interface {
	// PreDispatch may modify the action or context.
	// Returns false to cancel the dispatch.
	PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool
}

// PostDispatchHook is called after an action is dispatched.
type PostDispatchHook interface {
	// PostDispatch may inspect or modify the result.
	PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)
}

// PreDispatchFunc is a function adapter for PreDispatchHook.
type PreDispatchFunc func(action *input.Action, ctx *execctx.ExecutionContext) bool

// PreDispatch implements PreDispatchHook.
func (f PreDispatchFunc) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	return f(action, ctx)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	f(action, ctx, result)
}

// LoggingHook reports every dispatch through LogFunc.
type LoggingHook struct {
	// LogFunc is called with log messages.
	LogFunc func(format string, args ...any)
}

// PreDispatch implements PreDispatchHook.
func (h *LoggingHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	if h.LogFunc != nil {
		h.LogFunc("dispatch %s count=%d", action.Name, ctx.GetCount())
	}
	return true
}

// PostDispatch implements PostDispatchHook.
func (h *LoggingHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if h.LogFunc == nil {
		return
	}
	switch {
	case result.Error != nil:
		h.LogFunc("%s: %s: %v", action.Name, result.Status, result.Error)
	case result.Message != "":
		h.LogFunc("%s: %s: %s", action.Name, result.Status, result.Message)
	default:
		h.LogFunc("%s: %s", action.Name, result.Status)
	}
}

// ReadOnlyGuard cancels actions whose names are listed as mutating when
// the engine is read-only.
type ReadOnlyGuard struct {
	Mutating map[string]bool
}

// PreDispatch implements PreDispatchHook.
func (g *ReadOnlyGuard) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	return !(g.Mutating[action.Name] && ctx.IsReadOnly())
}
