package app

import (
	"errors"
	"io/fs"
	"os"

	"github.com/waddie/paredit.hx/internal/config"
	"github.com/waddie/paredit.hx/internal/config/watcher"
	"github.com/waddie/paredit.hx/internal/lang"
)

// WatchConfig reloads the configuration file whenever it changes. Cursor
// settings, extension mappings, key bindings and the log level take
// effect immediately. Without a config file it does nothing.
func (app *Application) WatchConfig() error {
	path := app.Config().Source
	if path == "" {
		return nil
	}
	r, err := config.NewReloader(path, app.Config(), app.applyConfig, app.opts.ConfigOptions...)
	if err != nil {
		return err
	}
	app.mu.Lock()
	app.reloader = r
	app.mu.Unlock()
	app.logger.Debug("watching %s", path)
	return nil
}

func (app *Application) applyConfig(cfg *config.Config, err error) {
	log := app.logger.WithComponent("config")
	if err != nil {
		log.Warn("reload failed: %v", err)
		app.notifyf("config error: %v", err)
		return
	}

	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}
	if app.opts.CursorBehavior != "" {
		cfg.Paredit.CursorBehavior = app.opts.CursorBehavior
	}

	if err := mapExtensions(app.registry, cfg.Extensions); err != nil {
		log.Warn("reload: %v", err)
	}
	km, err := buildKeymap(cfg)
	if err != nil {
		log.Warn("reload: keys: %v", err)
		km = nil
	}

	app.mu.Lock()
	app.config = cfg
	if km != nil {
		app.keymap = km
	}
	table := app.table
	app.mu.Unlock()

	app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	if err := app.rebuildEditor(cfg, table); err != nil {
		log.Warn("reload: %v", err)
	}
	log.Info("reloaded %s", cfg.Source)
	app.notifyf("config reloaded")
}

// WatchPlugins re-runs language plugins when files in the plugin
// directory change. A redefined active language replaces the rule set
// in use. Removing a plugin file keeps its languages until restart.
func (app *Application) WatchPlugins() error {
	cfg := app.Config()
	if !cfg.Plugins.Enabled || app.loader == nil {
		return nil
	}
	dir, err := cfg.PluginDir()
	if err != nil {
		return err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}

	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		app.logger.WithComponent("plugins").Warn("watch: %v", err)
	}))
	if err != nil {
		return err
	}
	w.OnChange(app.handlePluginChange)
	if err := w.WatchDir(dir, "*.lua"); err != nil {
		_ = w.Close()
		return err
	}

	app.mu.Lock()
	app.pluginWatcher = w
	app.mu.Unlock()
	app.logger.Debug("watching plugins in %s", dir)
	return nil
}

func (app *Application) handlePluginChange(ev watcher.Event) {
	log := app.logger.WithComponent("plugins")
	if _, err := os.Stat(ev.Path); errors.Is(err, fs.ErrNotExist) {
		log.Info("%s removed; its languages stay registered until restart", ev.Path)
		return
	}

	info := app.loader.LoadFile(app.registry, ev.Path)
	if info.Error != nil {
		log.Warn("plugin %s: %v", info.Name, info.Error)
		app.notifyf("plugin %s: %v", info.Name, info.Error)
		return
	}
	log.Info("plugin %s reloaded: %v", info.Name, info.Languages)

	current := app.Language()
	table, err := app.registry.Lookup(current.Name())
	if err != nil || table == current {
		app.notifyf("plugin %s reloaded", info.Name)
		return
	}

	app.mu.Lock()
	app.table = table
	cfg := app.config
	app.mu.Unlock()
	if err := app.rebuildEditor(cfg, table); err != nil {
		log.Warn("plugin %s: %v", info.Name, err)
		return
	}
	app.notifyf("language %s updated by plugin %s", table.Name(), info.Name)
}

func (app *Application) rebuildEditor(cfg *config.Config, table *lang.Table) error {
	editor, err := buildEditor(cfg, table)
	if err != nil {
		return err
	}
	app.dispatcher.SetEditor(editor)
	return nil
}
