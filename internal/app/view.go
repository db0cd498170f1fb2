package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/waddie/paredit.hx/internal/dispatcher/handler"
	edithandler "github.com/waddie/paredit.hx/internal/dispatcher/handlers/editor"
	"github.com/waddie/paredit.hx/internal/engine"
)

const tabWidth = 4

var (
	styleText      = tcell.StyleDefault
	styleSelection = tcell.StyleDefault.Reverse(true)
	styleStatus    = tcell.StyleDefault.Reverse(true)
)

// View is the interactive terminal front end.
type View struct {
	app    *Application
	screen tcell.Screen

	top       int
	count     int
	status    string
	quitArmed bool
	done      bool
}

// NewView creates a view drawing on screen. The screen must not be
// initialized yet; Run does that.
func NewView(app *Application, screen tcell.Screen) *View {
	return &View{app: app, screen: screen}
}

// Run draws the document and handles input until the user quits.
func (v *View) Run() error {
	if err := v.screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer v.screen.Fini()

	v.app.SetNotifier(func(msg string) {
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(msg))
	})
	defer v.app.SetNotifier(nil)

	v.status = v.helpLine()
	return v.loop()
}

type stopRequest struct{}

// Stop ends Run from another goroutine.
func (v *View) Stop() {
	_ = v.screen.PostEvent(tcell.NewEventInterrupt(stopRequest{}))
}

func (v *View) loop() error {
	for !v.done {
		v.draw()
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		v.handleEvent(ev)
	}
	return nil
}

func (v *View) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case string:
			v.status = data
		case stopRequest:
			v.done = true
		}
	case *tcell.EventKey:
		v.handleKey(ev)
	}
}

func (v *View) handleKey(ev *tcell.EventKey) {
	if d, ok := countDigit(ev); ok {
		v.count = v.count*10 + d
		v.status = fmt.Sprintf("count: %d", v.count)
		return
	}

	count := v.count
	v.count = 0

	keys, text := KeyNotation(ev)
	switch {
	case text != "":
		v.quitArmed = false
		v.report(v.app.InsertText(text))
	case keys != "":
		result, ok := v.app.HandleKeys(keys, count)
		if !ok {
			v.status = keys + " is not bound"
			return
		}
		if result.GetDataBool(edithandler.DataQuit) {
			v.quit()
			return
		}
		v.quitArmed = false
		v.report(result)
	}
}

// quit stops the loop. With unsaved changes the first request only warns.
func (v *View) quit() {
	if v.app.Document().IsModified() && !v.quitArmed && !v.app.Engine().IsReadOnly() {
		v.quitArmed = true
		v.status = ErrUnsavedChanges.Error() + "; quit again to discard"
		return
	}
	v.done = true
}

func (v *View) report(r handler.Result) {
	switch {
	case r.Error != nil:
		v.status = r.Error.Error()
	case r.Message != "":
		v.status = r.Message
	case r.IsNoOp():
		v.status = "nothing to do"
	default:
		v.status = ""
	}
}

func (v *View) helpLine() string {
	km := v.app.Keymap()
	var parts []string
	for _, action := range []string{"paredit.slurpForward", "paredit.barfForward", edithandler.ActionSave, edithandler.ActionQuit} {
		if keys := km.KeysFor(action); len(keys) > 0 {
			short := strings.TrimPrefix(strings.TrimPrefix(action, "paredit."), "editor.")
			parts = append(parts, keys[0]+" "+short)
		}
	}
	return strings.Join(parts, "  ")
}

func (v *View) draw() {
	s := v.screen
	s.Clear()
	width, height := s.Size()
	rows := height - 1
	if rows < 1 || width < 1 {
		s.Show()
		return
	}

	eng := v.app.Engine()
	cur := eng.OffsetToPoint(eng.Cursor())
	v.scrollTo(int(cur.Line), rows)

	sel, hasSel := eng.SelectedRange()
	lines := int(eng.LineCount())
	cursorX, cursorY := -1, -1

	for row := 0; row < rows && v.top+row < lines; row++ {
		line := uint32(v.top + row)
		text := eng.LineText(line)
		base := eng.LineStartOffset(line)

		x := 0
		for i := 0; i <= len(text); {
			if uint32(i) == cur.Column && line == cur.Line {
				cursorX, cursorY = x, row
			}
			if i == len(text) {
				break
			}
			r, size := utf8.DecodeRuneInString(text[i:])
			off := base + engine.ByteOffset(i)
			style := styleText
			if hasSel && off >= sel.Start && off < sel.End {
				style = styleSelection
			}
			if r == '\t' {
				for n := tabWidth - x%tabWidth; n > 0; n-- {
					v.put(x, row, ' ', style, width)
					x++
				}
			} else {
				v.put(x, row, r, style, width)
				x++
			}
			i += size
		}
	}

	v.drawStatus(width, height-1, cur)
	if cursorX >= 0 && cursorX < width {
		s.ShowCursor(cursorX, cursorY)
	} else {
		s.HideCursor()
	}
	s.Show()
}

func (v *View) put(x, y int, r rune, style tcell.Style, width int) {
	if x < width {
		v.screen.SetContent(x, y, r, nil, style)
	}
}

func (v *View) scrollTo(line, rows int) {
	if line < v.top {
		v.top = line
	}
	if line >= v.top+rows {
		v.top = line - rows + 1
	}
}

func (v *View) drawStatus(width, y int, cur engine.Point) {
	doc := v.app.Document()
	mark := ""
	if doc.IsModified() {
		mark = " [+]"
	}
	left := fmt.Sprintf(" %s%s  %s  %d:%d", doc.Name, mark, v.app.Language().Name(), cur.Line+1, cur.Column+1)
	if v.status != "" {
		left += "  " + v.status
	}

	x := 0
	for _, r := range left {
		if x >= width {
			break
		}
		v.screen.SetContent(x, y, r, nil, styleStatus)
		x++
	}
	for ; x < width; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
}
