// Package input turns key presses into editor actions.
//
// An Action names a command ("paredit.slurpForward", "editor.undo") and
// carries an optional repeat count. A Keymap maps normalized key notation
// to action names:
//
//	km := input.DefaultKeymap()
//	if b, ok := km.Lookup("C-Right"); ok {
//	    result := dispatcher.Dispatch(input.Action{Name: b.Action})
//	}
//
// Key notation is a dash-separated list of modifiers followed by a key
// name: "C-s", "M-Left", "C-M-f". Modifiers are normalized to the order
// C (control), M (meta/alt), S (shift). Aliases such as "Ctrl+Shift+a"
// are accepted.
package input
