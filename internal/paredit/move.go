package paredit

import (
	"fmt"

	"github.com/waddie/paredit.hx/internal/sexp"
)

// Move relocates one delimiter. Delim is at From before the edit and at To
// after it; everything between shifts by one toward From. A cursor that
// follows a Past move lands just after the delimiter instead of on it.
type Move struct {
	From  int64
	To    int64
	Delim byte
	Past  bool
}

// Forward reports whether the delimiter moves toward the end of the text.
func (m Move) Forward() bool {
	return m.To > m.From
}

// Span returns the range the move rewrites.
func (m Move) Span() sexp.Range {
	if m.Forward() {
		return sexp.NewRange(m.From, m.To+1)
	}
	return sexp.NewRange(m.To, m.From+1)
}

// Replacement returns the text that replaces Span, given its current
// contents.
func (m Move) Replacement(old string) string {
	if len(old) == 0 {
		return old
	}
	if m.Forward() {
		return old[1:] + string(m.Delim)
	}
	return string(m.Delim) + old[:len(old)-1]
}

// MapCursor returns where a cursor at x ends up after the move.
func (m Move) MapCursor(x int64, b CursorBehavior, tolerance int64) int64 {
	if m.follows(x, b, tolerance) {
		return m.landing()
	}
	if b == CursorRemain {
		return x
	}
	return m.shift(x)
}

// follows reports whether a cursor at x travels with the delimiter.
func (m Move) follows(x int64, b CursorBehavior, tolerance int64) bool {
	switch b {
	case CursorRemain:
		return false
	case CursorFollow:
		return true
	}
	d := x - m.From
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

func (m Move) landing() int64 {
	if m.Past {
		return m.To + 1
	}
	return m.To
}

// shift maps x so that it stays on the same character.
func (m Move) shift(x int64) int64 {
	switch {
	case x == m.From:
		return m.To
	case m.Forward() && x > m.From && x <= m.To:
		return x - 1
	case !m.Forward() && x >= m.To && x < m.From:
		return x + 1
	}
	return x
}

// Result describes a completed delimiter move. Resume is where a repeated
// operation should look for its form next: the delimiter itself when the
// cursor followed it, otherwise the cursor.
type Result struct {
	Move   Move
	Span   sexp.Range
	Cursor int64
	Resume int64
}

// apply performs the move as one Replace and maps the cursor.
func (e *Editor) apply(doc Document, m Move, cursor int64) (Result, error) {
	span := m.Span()
	old := doc.TextRange(span.Start, span.End)
	if int64(len(old)) != span.Len() || old[m.From-span.Start] != m.Delim {
		return Result{}, fmt.Errorf("move %q from %d: %w", m.Delim, m.From, sexp.ErrNotFound)
	}
	if _, err := doc.Replace(span.Start, span.End, m.Replacement(old)); err != nil {
		return Result{}, fmt.Errorf("move %q from %d to %d: %w", m.Delim, m.From, m.To, err)
	}
	res := Result{
		Move:   m,
		Span:   span,
		Cursor: m.MapCursor(cursor, e.behavior, e.tolerance),
	}
	res.Resume = res.Cursor
	if m.follows(cursor, e.behavior, e.tolerance) {
		res.Resume = m.To
	}
	return res, nil
}
