package app

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

var tcellNames = map[tcell.Key]string{
	tcell.KeyLeft:      "Left",
	tcell.KeyRight:     "Right",
	tcell.KeyUp:        "Up",
	tcell.KeyDown:      "Down",
	tcell.KeyHome:      "Home",
	tcell.KeyEnd:       "End",
	tcell.KeyPgUp:      "PgUp",
	tcell.KeyPgDn:      "PgDn",
	tcell.KeyEnter:     "Enter",
	tcell.KeyTab:       "Tab",
	tcell.KeyBackspace: "Backspace",
	tcell.KeyDelete:    "Delete",
	tcell.KeyEscape:    "Esc",
	tcell.KeyInsert:    "Insert",
}

// KeyNotation converts a key event to the notation used by keymaps, for
// example "C-z", "M-Left" or "Enter". text is set instead when the event
// is a plain character to insert.
func KeyNotation(ev *tcell.EventKey) (keys string, text string) {
	mod := ev.Modifiers()
	k := ev.Key()

	if k == tcell.KeyBackspace2 {
		k = tcell.KeyBackspace
	}

	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		name := string(rune('a' + (k - tcell.KeyCtrlA)))
		return modPrefix(mod|tcell.ModCtrl, false) + name, ""
	}

	if k == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' && mod&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return modPrefix(mod, false) + "Space", ""
		}
		if mod&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			if !unicode.IsPrint(r) {
				return "", ""
			}
			return "", string(r)
		}
		// Shift is already folded into the rune.
		return modPrefix(mod, false) + string(r), ""
	}

	if name, ok := tcellNames[k]; ok {
		return modPrefix(mod, true) + name, ""
	}
	return "", ""
}

func modPrefix(mod tcell.ModMask, shift bool) string {
	var s string
	if mod&tcell.ModCtrl != 0 {
		s += "C-"
	}
	if mod&tcell.ModAlt != 0 || mod&tcell.ModMeta != 0 {
		s += "M-"
	}
	if shift && mod&tcell.ModShift != 0 {
		s += "S-"
	}
	return s
}

// countDigit reports the digit of an Alt+digit press, which builds a
// repeat count for the next action.
func countDigit(ev *tcell.EventKey) (int, bool) {
	if ev.Key() != tcell.KeyRune || ev.Modifiers()&tcell.ModAlt == 0 || ev.Modifiers()&tcell.ModCtrl != 0 {
		return 0, false
	}
	r := ev.Rune()
	if r < '0' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}
