// Package history provides undo/redo for the engine.
//
// Each Entry records one applied buffer.Change together with the
// selection before and after it. Undo applies the inverted change and
// returns the selection to restore; Redo reapplies the change.
//
//	h := history.New(1000)
//	h.Push(history.NewEntry(change, before, after))
//	sel, err := h.Undo(buf)
//
// Pushing a new entry clears the redo stack. The oldest entries are
// dropped once the stack exceeds its limit.
package history
