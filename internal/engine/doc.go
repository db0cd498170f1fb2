// Package engine is the host side of structural editing: a buffer, the
// current selection and an undo history behind one thread-safe facade.
//
// Engine satisfies paredit.Document, so structural operations read and
// edit it directly:
//
//	e := engine.New(engine.WithContent("((a) b)"))
//	e.SetCursor(3)
//	res, err := editor.SlurpForward(e, e.Cursor())
//	if err == nil {
//		e.SetCursor(res.Cursor)
//	}
//	e.Undo()
//
// Every Replace is recorded as one undo entry, and the selection is
// transformed through the edit. Hosts that move the cursor as part of an
// edit call SetCursor afterwards; the new position is remembered for redo.
//
// # Thread Safety
//
// All Engine operations are thread-safe. Reads take a shared lock; writes
// are serialized.
package engine
