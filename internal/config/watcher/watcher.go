// Package watcher provides file watching for configuration live reload.
//
// The watcher follows single files and glob patterns inside directories.
// It subscribes to the parent directory through fsnotify so that editors
// which save by rename still produce events, and coalesces bursts of
// events per path before calling handlers.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned when the watcher has been closed.
var ErrClosed = errors.New("watcher closed")

// Op describes what happened to a file. Debounced events may carry
// several operations.
type Op uint8

const (
	// OpCreate indicates a new file was created.
	OpCreate Op = 1 << iota

	// OpWrite indicates the file was modified.
	OpWrite

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed away.
	OpRename
)

// Has reports whether op includes o.
func (op Op) Has(o Op) bool { return op&o != 0 }

// String returns the operation names joined by "|".
func (op Op) String() string {
	if op == 0 {
		return "none"
	}
	var names []string
	for _, n := range []struct {
		op   Op
		name string
	}{
		{OpCreate, "create"},
		{OpWrite, "write"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
	} {
		if op.Has(n.op) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the set of operations seen for Path.
	Op Op

	// Time is when the last underlying event arrived.
	Time time.Time
}

// Handler is called when a file change is detected.
type Handler func(event Event)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long a path must stay quiet before its events are
// delivered. Zero delivers every event immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler sets the function receiving fsnotify errors.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher monitors files for changes.
type Watcher struct {
	mu sync.RWMutex

	fsw *fsnotify.Watcher

	// Absolute file paths watched individually.
	files map[string]bool

	// Directory -> glob patterns matched against base names.
	patterns map[string][]string

	// Number of subscriptions per directory registered with fsnotify.
	dirRefs map[string]int

	handlers []Handler
	onError  func(error)

	debounce  time.Duration
	pendingMu sync.Mutex
	pending   map[string]*pendingEvent

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

type pendingEvent struct {
	op    Op
	time  time.Time
	timer *time.Timer
}

// New creates a watcher and starts its event loop.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		patterns: make(map[string][]string),
		dirRefs:  make(map[string]int),
		debounce: 100 * time.Millisecond,
		pending:  make(map[string]*pendingEvent),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Watch follows a single file. The file need not exist yet; its
// directory must.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.files[absPath] {
		return nil
	}
	if err := w.addDir(filepath.Dir(absPath)); err != nil {
		return err
	}
	w.files[absPath] = true
	return nil
}

// WatchDir follows every file in dir whose base name matches pattern.
func (w *Watcher) WatchDir(dir, pattern string) error {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("watch pattern %q: %w", pattern, err)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	for _, p := range w.patterns[absDir] {
		if p == pattern {
			return nil
		}
	}
	if err := w.addDir(absDir); err != nil {
		return err
	}
	w.patterns[absDir] = append(w.patterns[absDir], pattern)
	return nil
}

// Unwatch stops following a single file.
func (w *Watcher) Unwatch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if !w.files[absPath] {
		return nil
	}
	delete(w.files, absPath)
	return w.removeDir(filepath.Dir(absPath))
}

// addDir must be called with mu held.
func (w *Watcher) addDir(dir string) error {
	if w.dirRefs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	w.dirRefs[dir]++
	return nil
}

// removeDir must be called with mu held.
func (w *Watcher) removeDir(dir string) error {
	w.dirRefs[dir]--
	if w.dirRefs[dir] > 0 {
		return nil
	}
	delete(w.dirRefs, dir)
	return w.fsw.Remove(dir)
}

// OnChange registers a handler for file change events.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// WatchedFiles returns the individually watched files, sorted.
func (w *Watcher) WatchedFiles() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	files := make([]string, 0, len(w.files))
	for path := range w.files {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// Close stops the watcher. Pending debounced events are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()

	w.pendingMu.Lock()
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.pendingMu.Unlock()

	return w.fsw.Close()
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	op := convertOp(fsEvent.Op)
	if op == 0 {
		return
	}
	path := filepath.Clean(fsEvent.Name)
	if !w.matches(path) {
		return
	}
	w.queue(Event{Path: path, Op: op, Time: time.Now()})
}

// matches reports whether path is followed directly or by a pattern.
func (w *Watcher) matches(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.files[path] {
		return true
	}
	base := filepath.Base(path)
	for _, pattern := range w.patterns[filepath.Dir(path)] {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// queue delivers event after the path has been quiet for the debounce
// window, merging operations seen in the meantime.
func (w *Watcher) queue(event Event) {
	if w.debounce == 0 {
		w.emit(event)
		return
	}

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if p, ok := w.pending[event.Path]; ok {
		p.op |= event.Op
		p.time = event.Time
		p.timer.Reset(w.debounce)
		return
	}

	path := event.Path
	w.pending[path] = &pendingEvent{
		op:   event.Op,
		time: event.Time,
		timer: time.AfterFunc(w.debounce, func() {
			w.fire(path)
		}),
	}
}

func (w *Watcher) fire(path string) {
	w.pendingMu.Lock()
	p, ok := w.pending[path]
	if ok {
		delete(w.pending, path)
	}
	w.pendingMu.Unlock()

	if ok {
		w.emit(Event{Path: path, Op: p.op, Time: p.time})
	}
}

func (w *Watcher) emit(event Event) {
	w.mu.RLock()
	if w.closed {
		w.mu.RUnlock()
		return
	}
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}

// convertOp converts fsnotify.Op to Op. Chmod alone is ignored.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
