package buffer

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	text       string
	lineStarts []ByteOffset
	revisionID RevisionID
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return s.text
}

// TextRange returns text in the given byte range, clamped to the snapshot.
func (s *Snapshot) TextRange(start, end ByteOffset) string {
	return sliceClamped(s.text, start, end)
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return ByteOffset(len(s.text))
}

// ByteAt returns the byte at the given offset.
func (s *Snapshot) ByteAt(offset ByteOffset) (byte, bool) {
	if offset < 0 || offset >= ByteOffset(len(s.text)) {
		return 0, false
	}
	return s.text[offset], true
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() uint32 {
	return uint32(len(s.lineStarts))
}

// OffsetToPoint converts a byte offset to a line/column position.
func (s *Snapshot) OffsetToPoint(offset ByteOffset) Point {
	return offsetToPoint(s.lineStarts, s.Len(), offset)
}

// PointToOffset converts a line/column position to a byte offset.
func (s *Snapshot) PointToOffset(p Point) ByteOffset {
	return pointToOffset(s.lineStarts, s.Len(), p)
}

// RevisionID returns the revision this snapshot was taken at.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}
