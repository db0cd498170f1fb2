package engine_test

import (
	"testing"

	"github.com/waddie/paredit.hx/internal/engine"
	"github.com/waddie/paredit.hx/internal/lang"
	"github.com/waddie/paredit.hx/internal/paredit"
)

func TestEngineAsDocument(t *testing.T) {
	e := engine.New(engine.WithContent("((a) b)"))
	e.SetCursor(3)
	ed := paredit.New(paredit.WithRules(lang.Clojure()), paredit.WithCursorBehavior(paredit.CursorFollow))

	res, err := ed.SlurpForward(e, e.Cursor())
	if err != nil {
		t.Fatal(err)
	}
	e.SetCursor(res.Cursor)

	if e.Text() != "((a b))" || e.Cursor() != 6 {
		t.Fatalf("after slurp: %q cursor %d", e.Text(), e.Cursor())
	}
	if e.UndoCount() != 1 {
		t.Errorf("slurp should be one undo entry, got %d", e.UndoCount())
	}

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "((a) b)" || e.Cursor() != 3 {
		t.Errorf("after undo: %q cursor %d", e.Text(), e.Cursor())
	}
}
