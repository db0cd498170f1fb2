// Package cursor provides the selection model used by the engine.
//
// Selections use an anchor/head model:
//   - Anchor: the position where the selection started
//   - Head: the cursor position
//
// When Anchor == Head the selection is a bare cursor. Structural
// operations read the head as their position and report text objects as
// forward selections.
//
//	sel := cursor.NewCursorSelection(10)
//	sel = sel.Extend(20)
//	sel = cursor.TransformSelection(sel, edit)
//
// Selection is an immutable value type and safe for concurrent use.
package cursor
