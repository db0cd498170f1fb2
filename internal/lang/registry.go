package lang

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
)

// Registry maps language names and file extensions to tables.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Table
	byExt  map[string]*Table
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Table),
		byExt:  make(map[string]*Table),
	}
}

// DefaultRegistry creates a registry holding the built-in tables.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, t := range Builtin() {
		// Built-in tables are valid by construction.
		_ = r.Register(t)
	}
	return r
}

// Register adds or replaces a table. Extensions claimed by an earlier
// table move to the new one.
func (r *Registry) Register(t *Table) error {
	if t == nil {
		return fmt.Errorf("%w: nil table", ErrInvalidTable)
	}
	if err := t.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byName[t.name]; ok {
		for _, ext := range old.extensions {
			if r.byExt[ext] == old {
				delete(r.byExt, ext)
			}
		}
	}
	r.byName[t.name] = t
	for _, ext := range t.extensions {
		r.byExt[ext] = t
	}
	return nil
}

// Lookup returns the table registered under name.
func (r *Registry) Lookup(name string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.byName[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

// MapExtension routes ext to the table registered under name.
func (r *Registry) MapExtension(ext, name string) error {
	key := normalizeExt(ext)
	if key == "" {
		return fmt.Errorf("%w: empty extension", ErrInvalidTable)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
	}
	r.byExt[key] = t
	return nil
}

// ForExtension returns the table for a file extension, with or without
// the leading dot.
func (r *Registry) ForExtension(ext string) (*Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byExt[normalizeExt(ext)]
	return t, ok
}

// ForPath returns the table for a file path, by extension.
func (r *Registry) ForPath(path string) (*Table, bool) {
	return r.ForExtension(filepath.Ext(path))
}

// Resolve picks a table: an explicit name wins, then the path extension,
// then the fallback name.
func (r *Registry) Resolve(name, path, fallback string) (*Table, error) {
	if name != "" {
		return r.Lookup(name)
	}
	if path != "" {
		if t, ok := r.ForPath(path); ok {
			return t, nil
		}
	}
	return r.Lookup(fallback)
}

// Names returns the registered language names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
