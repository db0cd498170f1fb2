// Package buffer provides the thread-safe text buffer that structural
// editing operations read from and write to.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - O(1) byte access by offset, which the s-expression scanner relies on
//   - A single atomic range-replace primitive for edits
//   - Coordinate conversion between byte offsets and line/column positions
//   - Read-only snapshots for concurrent access
//   - Revision tracking for change management
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("(a b) c")
//
//	// Move the closing paren past "c" in one edit
//	buf.Replace(4, 7, " c)") // "(a b c)"
//
//	// Read a byte
//	c, ok := buf.ByteAt(0) // '(', true
//
// Offsets are byte offsets into UTF-8 text. Ranges are half-open:
// [Start, End).
package buffer
