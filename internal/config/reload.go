package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/waddie/paredit.hx/internal/config/watcher"
)

// ReloadFunc receives the outcome of a reload. On error cfg is nil and
// the previous configuration stays current.
type ReloadFunc func(cfg *Config, err error)

// Reloader reloads a config file whenever it changes on disk.
type Reloader struct {
	mu       sync.RWMutex
	path     string
	opts     []LoadOption
	current  *Config
	onReload ReloadFunc
	w        *watcher.Watcher
}

// NewReloader starts watching path. current is returned by Current until
// the first successful reload.
func NewReloader(path string, current *Config, onReload ReloadFunc, opts ...LoadOption) (*Reloader, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no path to watch", ErrFileNotFound)
	}

	w, err := watcher.New(watcher.WithDebounce(100 * time.Millisecond))
	if err != nil {
		return nil, err
	}

	r := &Reloader{
		path:     path,
		opts:     opts,
		current:  current,
		onReload: onReload,
		w:        w,
	}
	w.OnChange(r.handle)

	if err := w.Watch(path); err != nil {
		_ = w.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reloader) handle(ev watcher.Event) {
	if ev.Op.Has(watcher.OpRemove) || ev.Op.Has(watcher.OpRename) {
		// Editors that save by rename recreate the file right away.
		if _, err := os.Stat(r.path); err != nil {
			return
		}
	}
	r.Reload()
}

// Reload reads the file now and reports the outcome.
func (r *Reloader) Reload() {
	cfg, err := Load(r.path, r.opts...)
	if err == nil {
		r.mu.Lock()
		r.current = cfg
		r.mu.Unlock()
	}
	if r.onReload != nil {
		r.onReload(cfg, err)
	}
}

// Current returns the last successfully loaded configuration.
func (r *Reloader) Current() *Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Close stops watching.
func (r *Reloader) Close() error {
	return r.w.Close()
}
