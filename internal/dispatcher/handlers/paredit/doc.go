// Package paredit provides handlers for the structural editing actions.
//
// Every action reads the cursor from the engine, asks the structural
// editor for a target and applies it: edits go through one engine Replace
// each (so each repetition is one undo step), motions move the cursor and
// text objects set the selection. A lookup that finds nothing is reported
// as a no-op with a short message rather than an error.
package paredit
