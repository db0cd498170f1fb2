// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/waddie/paredit.hx/internal/engine/buffer"
	"github.com/waddie/paredit.hx/internal/engine/cursor"
	"github.com/waddie/paredit.hx/internal/paredit"
)

// EngineInterface abstracts the text engine for handlers.
type EngineInterface interface {
	// Structural editing surface
	paredit.Document

	// Text operations
	Text() string
	Insert(offset buffer.ByteOffset, text string) (buffer.ByteOffset, error)
	Delete(start, end buffer.ByteOffset) error

	// Line operations
	LineCount() uint32
	LineText(line uint32) string
	LineStartOffset(line uint32) buffer.ByteOffset

	// Position conversion
	OffsetToPoint(offset buffer.ByteOffset) buffer.Point
	PointToOffset(point buffer.Point) buffer.ByteOffset

	RevisionID() buffer.RevisionID
	IsReadOnly() bool

	// Cursor and selection
	Cursor() buffer.ByteOffset
	SetCursor(offset buffer.ByteOffset)
	Selection() cursor.Selection
	SetSelection(start, end buffer.ByteOffset)

	// Undo/redo
	Undo() error
	Redo() error
	CanUndo() bool
	CanRedo() bool
}

// ExecutionContext provides context for action execution.
type ExecutionContext struct {
	// Engine provides access to the text buffer and selection.
	Engine EngineInterface

	// Editor performs structural edits with the active language rules.
	Editor *paredit.Editor

	// Buffer metadata
	FilePath string
	Language string

	// Count is the repeat count (1 if not specified).
	Count int

	// Data holds handler-specific context data.
	Data map[string]any
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Count: 1,
		Data:  make(map[string]any),
	}
}

// WithEngine returns the context with the engine set.
func (ctx *ExecutionContext) WithEngine(engine EngineInterface) *ExecutionContext {
	ctx.Engine = engine
	return ctx
}

// WithEditor returns the context with the structural editor set.
func (ctx *ExecutionContext) WithEditor(editor *paredit.Editor) *ExecutionContext {
	ctx.Editor = editor
	return ctx
}

// WithCount returns the context with repeat count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// IsReadOnly returns true if the engine rejects writes.
func (ctx *ExecutionContext) IsReadOnly() bool {
	return ctx.Engine != nil && ctx.Engine.IsReadOnly()
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value any) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]any)
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (any, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from context data.
func (ctx *ExecutionContext) GetDataString(key string) string {
	if v, ok := ctx.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}

// ValidateForStructure checks that structural commands can run.
func (ctx *ExecutionContext) ValidateForStructure() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.Editor == nil {
		return ErrMissingEditor
	}
	return nil
}

// ValidateForEdit checks that the context is valid for editing operations.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.IsReadOnly() {
		return ErrReadOnly
	}
	return nil
}
