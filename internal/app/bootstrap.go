package app

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/waddie/paredit.hx/internal/config"
	"github.com/waddie/paredit.hx/internal/dispatcher"
	"github.com/waddie/paredit.hx/internal/dispatcher/execctx"
	"github.com/waddie/paredit.hx/internal/dispatcher/handler"
	cursorhandler "github.com/waddie/paredit.hx/internal/dispatcher/handlers/cursor"
	edithandler "github.com/waddie/paredit.hx/internal/dispatcher/handlers/editor"
	parhandler "github.com/waddie/paredit.hx/internal/dispatcher/handlers/paredit"
	"github.com/waddie/paredit.hx/internal/engine"
	"github.com/waddie/paredit.hx/internal/input"
	"github.com/waddie/paredit.hx/internal/lang"
	"github.com/waddie/paredit.hx/internal/paredit"
	"github.com/waddie/paredit.hx/internal/plugin"
)

// bootstrapper initializes components in dependency order and undoes
// what it started when a later step fails.
type bootstrapper struct {
	app *Application
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{app: app}
}

func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"config", b.initConfig},
		{"logger", b.initLogger},
		{"languages", b.initLanguages},
		{"document", b.initDocument},
		{"dispatcher", b.initDispatcher},
		{"keymap", b.initKeymap},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			b.cleanup()
			return &InitError{Component: step.name, Err: err}
		}
	}
	b.app.logger.Debug("session ready: language=%s file=%q", b.app.table.Name(), b.app.doc.Path)
	return nil
}

func (b *bootstrapper) initConfig() error {
	opts := b.app.opts
	cfg, err := config.Load(opts.ConfigPath, opts.ConfigOptions...)
	if err != nil {
		return err
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.CursorBehavior != "" {
		cfg.Paredit.CursorBehavior = opts.CursorBehavior
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	b.app.config = cfg
	return nil
}

func (b *bootstrapper) initLogger() error {
	cfg := b.app.config
	out, closeFn, err := OpenLogOutput(cfg.Logging.File)
	if err != nil {
		return err
	}
	b.app.closeLog = closeFn
	if cfg.Logging.File == "" && b.app.opts.LogOutput != nil {
		out = b.app.opts.LogOutput
	}

	b.app.sessionID = uuid.NewString()
	root := NewLogger(LoggerConfig{
		Level:  ParseLogLevel(cfg.Logging.Level),
		Output: out,
		Prefix: "paredit",
	})
	b.app.logger = root.WithField("session", b.app.sessionID[:8])
	if cfg.Source != "" {
		b.app.logger.Debug("config loaded from %s", cfg.Source)
	}
	return nil
}

func (b *bootstrapper) initLanguages() error {
	app := b.app
	cfg := app.config
	app.registry = lang.DefaultRegistry()

	if cfg.Plugins.Enabled {
		dir, err := cfg.PluginDir()
		if err != nil {
			return err
		}
		log := app.logger.WithComponent("plugins")
		app.loader = plugin.NewLoader(
			plugin.WithPaths(dir),
			plugin.WithPrint(func(name, msg string) {
				log.WithField("plugin", name).Info("%s", msg)
			}),
		)
		plugins, err := app.loader.LoadInto(app.registry)
		if err != nil {
			return err
		}
		for _, p := range plugins {
			if p.Error != nil {
				log.Warn("plugin %s: %v", p.Name, p.Error)
				continue
			}
			log.Debug("plugin %s: %v", p.Name, p.Languages)
		}
		app.plugins = plugins
	}

	if err := mapExtensions(app.registry, cfg.Extensions); err != nil {
		return err
	}

	table, err := app.registry.Resolve(app.opts.Language, app.opts.FilePath, cfg.Paredit.DefaultLanguage)
	if err != nil {
		return err
	}
	app.table = table
	return nil
}

func mapExtensions(reg *lang.Registry, exts map[string]string) error {
	for _, ext := range sortedKeys(exts) {
		if err := reg.MapExtension(ext, exts[ext]); err != nil {
			return fmt.Errorf("extensions.%s: %w", ext, err)
		}
	}
	return nil
}

func (b *bootstrapper) initDocument() error {
	opts := b.app.opts
	var engineOpts []engine.Option
	if opts.ReadOnly {
		engineOpts = append(engineOpts, engine.WithReadOnly())
	}

	var (
		doc *Document
		err error
	)
	switch {
	case opts.Input != nil:
		doc, err = ReadDocument(opts.Input, opts.FilePath, engineOpts...)
	case opts.FilePath != "":
		doc, err = OpenDocument(opts.FilePath, engineOpts...)
	default:
		doc = newDocument("", engine.New(engineOpts...))
	}
	if err != nil {
		return err
	}
	b.app.doc = doc
	return nil
}

func (b *bootstrapper) initDispatcher() error {
	app := b.app
	cfg := app.config

	dcfg := dispatcher.DefaultConfig().
		WithMaxRepeatCount(cfg.Dispatcher.MaxRepeat).
		WithPanicRecovery(cfg.Dispatcher.RecoverPanics)
	if cfg.Dispatcher.Metrics {
		dcfg = dcfg.WithMetrics()
	}
	d := dispatcher.New(dcfg)

	editor, err := buildEditor(cfg, app.table)
	if err != nil {
		return err
	}
	d.SetEngine(app.doc.Engine)
	d.SetEditor(editor)
	d.SetBufferInfo(app.doc.Path, app.table.Name())

	d.RegisterNamespace(parhandler.NewHandler())
	d.RegisterNamespace(cursorhandler.NewHandler())
	d.RegisterNamespace(edithandler.NewHandler())

	log := app.logger.WithComponent("dispatcher")
	hook := &dispatcher.LoggingHook{LogFunc: log.Printf}
	d.RegisterPreHook(hook)
	d.RegisterPostHook(hook)
	if app.opts.ReadOnly {
		d.RegisterPreHook(&dispatcher.ReadOnlyGuard{Mutating: mutatingActions()})
	}
	d.RegisterPostHook(dispatcher.PostDispatchFunc(
		func(action *input.Action, _ *execctx.ExecutionContext, result *handler.Result) {
			if action.Name == edithandler.ActionSave && result.IsOK() {
				app.doc.MarkSaved()
			}
		}))

	app.dispatcher = d
	return nil
}

func (b *bootstrapper) initKeymap() error {
	km, err := buildKeymap(b.app.config)
	if err != nil {
		return err
	}
	b.app.keymap = km
	return nil
}

// cleanup releases resources acquired by the steps that succeeded.
func (b *bootstrapper) cleanup() {
	if b.app.closeLog != nil {
		_ = b.app.closeLog()
		b.app.closeLog = nil
	}
}

// buildEditor creates a structural editor for table using the cursor
// settings in cfg.
func buildEditor(cfg *config.Config, table *lang.Table) (*paredit.Editor, error) {
	opts, err := cfg.Paredit.EditorOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, paredit.WithRules(table))
	return paredit.New(opts...), nil
}

// buildKeymap applies the configured overrides to the default bindings.
func buildKeymap(cfg *config.Config) (*input.Keymap, error) {
	km := input.DefaultKeymap()
	if err := km.Merge(cfg.Keys); err != nil {
		return nil, err
	}
	return km, nil
}

func mutatingActions() map[string]bool {
	m := map[string]bool{
		edithandler.ActionInsertText:     true,
		edithandler.ActionNewline:        true,
		edithandler.ActionDeleteBackward: true,
		edithandler.ActionDeleteForward:  true,
		edithandler.ActionUndo:           true,
		edithandler.ActionRedo:           true,
	}
	for _, name := range parhandler.Actions() {
		if parhandler.IsEdit(name) {
			m[name] = true
		}
	}
	return m
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
