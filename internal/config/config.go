package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/waddie/paredit.hx/internal/config/loader"
	"github.com/waddie/paredit.hx/internal/input"
	"github.com/waddie/paredit.hx/internal/paredit"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "PAREDIT_"

// Config is the complete editor configuration.
type Config struct {
	Paredit    PareditConfig
	Logging    LoggingConfig
	Plugins    PluginsConfig
	Dispatcher DispatcherConfig

	// Extensions maps file extensions to language names, on top of the
	// extensions each language declares.
	Extensions map[string]string

	// Keys overrides key bindings. An empty action or "none" unbinds.
	Keys map[string]string

	// Source is the file the configuration was read from, if any.
	Source string
}

// PareditConfig holds structural editing settings.
type PareditConfig struct {
	// CursorBehavior is "auto", "remain" or "follow".
	CursorBehavior string

	// AutoTolerance is the distance in bytes from a moved delimiter within
	// which the auto behavior follows it.
	AutoTolerance int

	// DefaultLanguage is used when neither a flag nor the file extension
	// selects a language.
	DefaultLanguage string
}

// Behavior parses CursorBehavior.
func (p PareditConfig) Behavior() (paredit.CursorBehavior, error) {
	return paredit.ParseCursorBehavior(p.CursorBehavior)
}

// EditorOptions returns the paredit options these settings describe.
func (p PareditConfig) EditorOptions() ([]paredit.Option, error) {
	b, err := p.Behavior()
	if err != nil {
		return nil, err
	}
	return []paredit.Option{
		paredit.WithCursorBehavior(b),
		paredit.WithTolerance(p.AutoTolerance),
	}, nil
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string

	// File receives log output. Empty means stderr.
	File string
}

// PluginsConfig holds Lua language plugin settings.
type PluginsConfig struct {
	Enabled bool

	// Dir holds *.lua language definitions. Empty means the "languages"
	// directory next to the user config file. A leading "~/" expands to
	// the home directory.
	Dir string
}

// DispatcherConfig holds action dispatch settings.
type DispatcherConfig struct {
	Metrics   bool
	MaxRepeat int

	// RecoverPanics turns a panicking handler into an error result.
	RecoverPanics bool
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Paredit: PareditConfig{
			CursorBehavior:  "auto",
			AutoTolerance:   2,
			DefaultLanguage: "clojure",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Plugins: PluginsConfig{
			Enabled: true,
		},
		Dispatcher: DispatcherConfig{
			MaxRepeat:     1000,
			RecoverPanics: true,
		},
		Extensions: make(map[string]string),
		Keys:       make(map[string]string),
	}
}

// UserDir returns the per-user configuration directory.
func UserDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "paredit"), nil
}

// Locate returns the user config file, if one exists.
func Locate() (string, bool) {
	dir, err := UserDir()
	if err != nil {
		return "", false
	}
	return loader.Find(loader.DefaultFS(), dir, "config")
}

// PluginDir returns the expanded plugin directory.
func (c *Config) PluginDir() (string, error) {
	dir := c.Plugins.Dir
	if dir == "" {
		base, err := UserDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(base, "languages"), nil
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, dir[1:])
	}
	return dir, nil
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	fs  loader.FileSystem
	env loader.Loader
}

// WithFS reads config files from fsys.
func WithFS(fsys loader.FileSystem) LoadOption {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnv replaces the environment source. Nil disables it.
func WithEnv(l loader.Loader) LoadOption {
	return func(o *loadOptions) {
		o.env = l
	}
}

// Load builds the configuration from defaults, the file at path when
// path is not empty, and the environment. The result is validated.
func Load(path string, opts ...LoadOption) (*Config, error) {
	o := loadOptions{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(EnvPrefix),
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := make(map[string]any)

	if path != "" {
		l, err := loader.ForPath(o.fs, path)
		if err != nil {
			return nil, err
		}
		data, err := l.LoadFrom(path)
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		merged = loader.DeepMerge(merged, data)
	}

	if o.env != nil {
		data, err := o.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, data)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return nil, err
	}
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var logLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Validate checks every setting and reports all failures joined.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path string, value any, code ValidationErrorCode, msg string) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value, Code: code})
	}

	if _, err := c.Paredit.Behavior(); err != nil {
		fail("paredit.cursorBehavior", c.Paredit.CursorBehavior, ErrCodeInvalidEnum,
			"must be auto, remain or follow")
	}
	if c.Paredit.AutoTolerance < 0 {
		fail("paredit.autoTolerance", c.Paredit.AutoTolerance, ErrCodeOutOfRange, "must not be negative")
	}
	if strings.TrimSpace(c.Paredit.DefaultLanguage) == "" {
		fail("paredit.defaultLanguage", c.Paredit.DefaultLanguage, ErrCodePatternMismatch, "must not be empty")
	}
	if !logLevels[strings.ToLower(c.Logging.Level)] {
		fail("logging.level", c.Logging.Level, ErrCodeInvalidEnum, "must be debug, info, warn or error")
	}
	if c.Dispatcher.MaxRepeat < 1 {
		fail("dispatcher.maxRepeat", c.Dispatcher.MaxRepeat, ErrCodeOutOfRange, "must be at least 1")
	}

	for _, ext := range sortedKeys(c.Extensions) {
		if strings.Trim(ext, ".") == "" {
			fail("extensions", ext, ErrCodePatternMismatch, "extension must not be empty")
		}
		if strings.TrimSpace(c.Extensions[ext]) == "" {
			fail("extensions."+ext, c.Extensions[ext], ErrCodePatternMismatch, "language must not be empty")
		}
	}

	for _, keys := range sortedKeys(c.Keys) {
		if _, err := input.NormalizeKeys(keys); err != nil {
			fail("keys", keys, ErrCodePatternMismatch, err.Error())
			continue
		}
		action := c.Keys[keys]
		if action == "" || action == "none" {
			continue
		}
		if !strings.Contains(action, ".") || strings.ContainsAny(action, " \t") {
			fail("keys."+keys, action, ErrCodePatternMismatch, "action must be namespace.name")
		}
	}

	return errors.Join(errs...)
}
