package history

import (
	"time"

	"github.com/waddie/paredit.hx/internal/engine/buffer"
	"github.com/waddie/paredit.hx/internal/engine/cursor"
)

// Entry is one undoable edit.
type Entry struct {
	Change buffer.Change
	Before cursor.Selection
	After  cursor.Selection
	Time   time.Time
}

// NewEntry creates an entry stamped with the current time.
func NewEntry(c buffer.Change, before, after cursor.Selection) Entry {
	return Entry{Change: c, Before: before, After: after, Time: time.Now()}
}

// Description returns a short human-readable description.
func (e Entry) Description() string {
	switch {
	case e.Change.Range.IsEmpty():
		return "Insert"
	case e.Change.NewText == "":
		return "Delete"
	default:
		return "Replace"
	}
}
