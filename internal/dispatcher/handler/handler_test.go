package handler_test

import (
	"errors"
	"testing"

	"github.com/waddie/paredit.hx/internal/dispatcher/execctx"
	"github.com/waddie/paredit.hx/internal/dispatcher/handler"
	"github.com/waddie/paredit.hx/internal/engine/buffer"
	"github.com/waddie/paredit.hx/internal/input"
)

func TestHandlerFunc(t *testing.T) {
	called := false
	fn := handler.NewHandlerFunc(func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})

	result := fn.Handle(input.Action{Name: "test"}, execctx.New())

	if !called {
		t.Error("expected handler func to be called")
	}
	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}
	if !fn.CanHandle("anything") {
		t.Error("expected CanHandle to return true")
	}
	if fn.Priority() != 0 {
		t.Errorf("expected priority 0, got %d", fn.Priority())
	}
}

func TestHandlerFuncNil(t *testing.T) {
	fn := &handler.HandlerFunc{}
	result := fn.Handle(input.Action{Name: "test"}, execctx.New())

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for nil func, got %v", result.Status)
	}
}

func TestHandlerFuncWithPriority(t *testing.T) {
	fn := handler.NewHandlerFuncWithPriority(func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success()
	}, 50)

	if fn.Priority() != 50 {
		t.Errorf("expected priority 50, got %d", fn.Priority())
	}
}

func TestBaseNamespaceHandler(t *testing.T) {
	h := handler.NewBaseNamespaceHandler("paredit")
	h.Register("paredit.b", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.NoOpWithMessage("b")
	})
	h.Register("paredit.a", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithMessage("a")
	})

	if h.Namespace() != "paredit" {
		t.Errorf("Namespace() = %q", h.Namespace())
	}
	if !h.CanHandle("paredit.a") || h.CanHandle("paredit.c") {
		t.Error("CanHandle mismatch")
	}
	if got := h.Actions(); len(got) != 2 || got[0] != "paredit.a" || got[1] != "paredit.b" {
		t.Errorf("Actions() = %v", got)
	}

	adapted := handler.NewNamespaceAdapter(h)
	if r := adapted.Handle(input.Action{Name: "paredit.a"}, execctx.New()); r.Message != "a" || !r.IsOK() {
		t.Errorf("adapted result = %+v", r)
	}
	if r := h.HandleAction(input.Action{Name: "paredit.c"}, execctx.New()); !r.IsError() {
		t.Errorf("unknown action should error, got %v", r.Status)
	}
}

func TestResultStatus(t *testing.T) {
	tests := []struct {
		status   handler.ResultStatus
		expected string
	}{
		{handler.StatusOK, "ok"},
		{handler.StatusNoOp, "no-op"},
		{handler.StatusError, "error"},
		{handler.StatusCancelled, "cancelled"},
		{handler.ResultStatus(99), "unknown"},
	}

	for _, tc := range tests {
		if tc.status.String() != tc.expected {
			t.Errorf("ResultStatus(%d).String() = %q, want %q", tc.status, tc.status.String(), tc.expected)
		}
	}
}

func TestResultConstructors(t *testing.T) {
	sentinel := errors.New("boom")
	tests := []struct {
		name   string
		result handler.Result
		status handler.ResultStatus
		msg    string
	}{
		{"success", handler.Success(), handler.StatusOK, ""},
		{"success message", handler.SuccessWithMessage("done"), handler.StatusOK, "done"},
		{"noop", handler.NoOp(), handler.StatusNoOp, ""},
		{"noop message", handler.NoOpWithMessage("nothing"), handler.StatusNoOp, "nothing"},
		{"error", handler.Error(sentinel), handler.StatusError, ""},
		{"cancelled", handler.CancelledWithMessage("stop"), handler.StatusCancelled, "stop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result.Status != tt.status {
				t.Errorf("Status = %v, want %v", tt.result.Status, tt.status)
			}
			if tt.result.Message != tt.msg {
				t.Errorf("Message = %q, want %q", tt.result.Message, tt.msg)
			}
		})
	}

	if r := handler.Errorf("wrap: %w", sentinel); !errors.Is(r.Error, sentinel) {
		t.Errorf("Errorf should wrap, got %v", r.Error)
	}
}

func TestResultBuilders(t *testing.T) {
	r := handler.Success().
		WithMessage("moved").
		WithRedraw().
		WithCursorDelta(2).
		WithEdit(handler.Edit{Range: buffer.Range{Start: 1, End: 3}, NewText: "x"}).
		WithData("quit", true)

	if r.Message != "moved" || !r.Redraw || r.CursorDelta != 2 {
		t.Errorf("builders lost fields: %+v", r)
	}
	if len(r.Edits) != 1 || r.Edits[0].NewText != "x" {
		t.Errorf("Edits = %+v", r.Edits)
	}
	if !r.GetDataBool("quit") {
		t.Error("GetDataBool(quit) = false")
	}
	if _, ok := handler.NoOp().GetData("quit"); ok {
		t.Error("GetData on empty result should fail")
	}
}
