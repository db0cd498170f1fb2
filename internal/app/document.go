package app

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/waddie/paredit.hx/internal/engine"
)

// Document is the text being edited together with where it came from.
type Document struct {
	// Path is the file path; empty for text read from a stream.
	Path string

	// Name is the display name.
	Name string

	// Engine holds the text, selection and undo history.
	Engine *engine.Engine

	// savedRevision is the revision last written to or read from disk.
	savedRevision atomic.Uint64
}

// OpenDocument reads path into a new document. A missing file yields an
// empty document that saves to path.
func OpenDocument(path string, opts ...engine.Option) (*Document, error) {
	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return newDocument(path, engine.New(opts...)), nil
	case err != nil:
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	eng, err := engine.NewFromReader(f, opts...)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	return newDocument(path, eng), nil
}

// ReadDocument reads a whole stream into a new unnamed document. path,
// when not empty, is where a save will write.
func ReadDocument(r io.Reader, path string, opts ...engine.Option) (*Document, error) {
	eng, err := engine.NewFromReader(r, opts...)
	if err != nil {
		return nil, &FileError{Op: "read", Path: "<stdin>", Err: err}
	}
	return newDocument(path, eng), nil
}

func newDocument(path string, eng *engine.Engine) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "[stdin]"
	}
	d := &Document{Path: path, Name: name, Engine: eng}
	d.MarkSaved()
	return d
}

// IsModified reports whether the text changed since the last save.
func (d *Document) IsModified() bool {
	return uint64(d.Engine.RevisionID()) != d.savedRevision.Load()
}

// MarkSaved records the current revision as the saved one.
func (d *Document) MarkSaved() {
	d.savedRevision.Store(uint64(d.Engine.RevisionID()))
}
