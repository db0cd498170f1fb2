package input

// defaultBindings maps key notation to action names for the interactive view.
var defaultBindings = []Binding{
	{Keys: "C-Right", Action: "paredit.slurpForward", Description: "Slurp next element into form"},
	{Keys: "C-Left", Action: "paredit.barfForward", Description: "Barf last element out of form"},
	{Keys: "M-Left", Action: "paredit.slurpBackward", Description: "Slurp previous element into form"},
	{Keys: "M-Right", Action: "paredit.barfBackward", Description: "Barf first element out of form"},
	{Keys: "M-w", Action: "paredit.nextElementHead", Description: "Next element start"},
	{Keys: "M-e", Action: "paredit.nextElementTail", Description: "Next element end"},
	{Keys: "M-b", Action: "paredit.prevElementHead", Description: "Previous element start"},
	{Keys: "M-g", Action: "paredit.prevElementTail", Description: "Previous element end"},
	{Keys: "M-u", Action: "paredit.parentFormStart", Description: "Parent form start"},
	{Keys: "M-d", Action: "paredit.parentFormEnd", Description: "Parent form end"},
	{Keys: "M-n", Action: "paredit.nextSiblingForm", Description: "Next sibling form"},
	{Keys: "M-p", Action: "paredit.prevSiblingForm", Description: "Previous sibling form"},
	{Keys: "M-a", Action: "paredit.selectAroundForm", Description: "Select form with delimiters"},
	{Keys: "M-i", Action: "paredit.selectInForm", Description: "Select form contents"},
	{Keys: "M-s", Action: "paredit.selectElement", Description: "Select element"},
	{Keys: "M-t", Action: "paredit.selectTopLevelForm", Description: "Select top-level form"},

	{Keys: "Left", Action: "cursor.moveLeft"},
	{Keys: "Right", Action: "cursor.moveRight"},
	{Keys: "Up", Action: "cursor.moveUp"},
	{Keys: "Down", Action: "cursor.moveDown"},
	{Keys: "Home", Action: "cursor.moveLineStart"},
	{Keys: "End", Action: "cursor.moveLineEnd"},
	{Keys: "Esc", Action: "cursor.collapse"},

	{Keys: "Backspace", Action: "editor.deleteBackward"},
	{Keys: "Delete", Action: "editor.deleteForward"},
	{Keys: "Enter", Action: "editor.newline"},
	{Keys: "C-z", Action: "editor.undo", Description: "Undo"},
	{Keys: "C-y", Action: "editor.redo", Description: "Redo"},
	{Keys: "C-s", Action: "editor.save", Description: "Write buffer to file"},
	{Keys: "C-q", Action: "editor.quit", Description: "Quit"},
}

// DefaultKeymap returns a fresh keymap with the built-in bindings.
func DefaultKeymap() *Keymap {
	km := NewKeymap("default")
	for _, b := range defaultBindings {
		if err := km.AddBinding(b); err != nil {
			panic(err)
		}
	}
	return km
}
