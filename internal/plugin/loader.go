package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/waddie/paredit.hx/internal/lang"
	"github.com/waddie/paredit.hx/internal/plugin/lua"
)

// ErrNoLanguages is recorded for a plugin that defines no language.
var ErrNoLanguages = errors.New("plugin defines no language")

// Loader discovers and loads plugins from the filesystem.
type Loader struct {
	// Search paths for plugins (checked in order)
	paths []string

	timeout time.Duration
	print   func(plugin, msg string)
}

// PluginInfo describes the outcome of loading one plugin file.
type PluginInfo struct {
	Name      string
	Path      string
	Languages []string
	Error     error
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithPaths sets the plugin search paths.
func WithPaths(paths ...string) LoaderOption {
	return func(l *Loader) {
		l.paths = paths
	}
}

// WithTimeout bounds each plugin run.
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithPrint receives output of the Lua print function, tagged with the
// plugin name.
func WithPrint(fn func(plugin, msg string)) LoaderOption {
	return func(l *Loader) {
		l.print = fn
	}
}

// NewLoader creates a new plugin loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		timeout: lua.DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Paths returns the configured search paths.
func (l *Loader) Paths() []string {
	return l.paths
}

// Discover returns the plugin files in the search paths. A name found in
// an earlier path shadows the same name in later ones. The result is
// sorted by plugin name.
func (l *Loader) Discover() ([]*PluginInfo, error) {
	found := make(map[string]*PluginInfo)

	for _, dir := range l.paths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading plugin dir %s: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), ".lua")
			if _, ok := found[name]; ok {
				continue
			}
			found[name] = &PluginInfo{
				Name: name,
				Path: filepath.Join(dir, entry.Name()),
			}
		}
	}

	plugins := make([]*PluginInfo, 0, len(found))
	for _, info := range found {
		plugins = append(plugins, info)
	}
	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Name < plugins[j].Name
	})
	return plugins, nil
}

// LoadInto discovers plugins and registers their languages in reg. A
// failing plugin is recorded in its PluginInfo and does not stop the
// others.
func (l *Loader) LoadInto(reg *lang.Registry) ([]*PluginInfo, error) {
	plugins, err := l.Discover()
	if err != nil {
		return nil, err
	}
	for _, info := range plugins {
		l.loadOne(reg, info)
	}
	return plugins, nil
}

// LoadFile runs a single plugin file and registers its languages.
func (l *Loader) LoadFile(reg *lang.Registry, path string) *PluginInfo {
	info := &PluginInfo{
		Name: strings.TrimSuffix(filepath.Base(path), ".lua"),
		Path: path,
	}
	l.loadOne(reg, info)
	return info
}

func (l *Loader) loadOne(reg *lang.Registry, info *PluginInfo) {
	opts := []lua.StateOption{lua.WithExecutionTimeout(l.timeout)}
	if l.print != nil {
		name := info.Name
		opts = append(opts, lua.WithPrint(func(msg string) { l.print(name, msg) }))
	}

	langs, err := lua.LoadFile(info.Path, opts...)
	if err != nil {
		info.Error = err
		return
	}
	if len(langs) == 0 {
		info.Error = ErrNoLanguages
		return
	}

	for _, def := range langs {
		if err := reg.Register(def.Table()); err != nil {
			info.Error = errors.Join(info.Error, err)
			continue
		}
		info.Languages = append(info.Languages, def.Name)
	}
}
