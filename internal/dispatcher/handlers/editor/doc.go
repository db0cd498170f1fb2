// Package editor provides handlers for text entry, deletion, undo/redo
// and buffer lifecycle actions.
package editor
