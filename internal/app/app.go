// Package app wires configuration, language tables, plugins, the text
// engine and the action dispatcher into one editing session, and drives
// it from the command line or a terminal view.
package app

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/waddie/paredit.hx/internal/config"
	"github.com/waddie/paredit.hx/internal/config/watcher"
	"github.com/waddie/paredit.hx/internal/dispatcher"
	"github.com/waddie/paredit.hx/internal/dispatcher/handler"
	edithandler "github.com/waddie/paredit.hx/internal/dispatcher/handlers/editor"
	"github.com/waddie/paredit.hx/internal/engine"
	"github.com/waddie/paredit.hx/internal/input"
	"github.com/waddie/paredit.hx/internal/lang"
	"github.com/waddie/paredit.hx/internal/paredit"
	"github.com/waddie/paredit.hx/internal/plugin"
)

// Application owns every component of an editing session.
type Application struct {
	mu sync.RWMutex

	opts Options

	config    *config.Config
	logger    *Logger
	closeLog  func() error
	sessionID string

	registry *lang.Registry
	loader   *plugin.Loader
	plugins  []*plugin.PluginInfo
	table    *lang.Table

	doc        *Document
	dispatcher *dispatcher.Dispatcher
	keymap     *input.Keymap

	reloader      *config.Reloader
	pluginWatcher *watcher.Watcher
	notify        func(msg string)
}

// Options configures the application. Non-empty fields override the
// matching configuration setting.
type Options struct {
	// ConfigPath is the configuration file. Empty means defaults and
	// environment only.
	ConfigPath string

	// ConfigOptions are passed to every config load.
	ConfigOptions []config.LoadOption

	// FilePath is the file to edit. It is also the save target when
	// Input is set.
	FilePath string

	// Input, when set, supplies the text instead of FilePath.
	Input io.Reader

	// Language names the rule set, bypassing extension detection.
	Language string

	// CursorBehavior overrides paredit.cursorBehavior.
	CursorBehavior string

	// LogLevel overrides logging.level.
	LogLevel string

	// LogOutput receives log lines when logging.file is empty. Defaults
	// to stderr.
	LogOutput io.Writer

	// ReadOnly rejects every edit.
	ReadOnly bool
}

// New creates an Application and initializes all components.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// Logger returns the session logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// SessionID returns the identifier attached to every log line.
func (app *Application) SessionID() string {
	return app.sessionID
}

// Registry returns the language registry, built-ins plus plugins.
func (app *Application) Registry() *lang.Registry {
	return app.registry
}

// Plugins returns the plugins found at startup.
func (app *Application) Plugins() []*plugin.PluginInfo {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.plugins
}

// Language returns the active rule set.
func (app *Application) Language() *lang.Table {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.table
}

// Document returns the edited document.
func (app *Application) Document() *Document {
	return app.doc
}

// Engine returns the document's engine.
func (app *Application) Engine() *engine.Engine {
	return app.doc.Engine
}

// Editor returns the structural editor currently in use.
func (app *Application) Editor() *paredit.Editor {
	return app.dispatcher.Editor()
}

// Dispatcher returns the action dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Keymap returns the active key bindings.
func (app *Application) Keymap() *input.Keymap {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.keymap
}

// SetNotifier registers fn to receive status messages produced outside
// of a dispatch, such as config and plugin reloads.
func (app *Application) SetNotifier(fn func(msg string)) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.notify = fn
}

func (app *Application) notifyf(format string, args ...any) {
	app.mu.RLock()
	fn := app.notify
	app.mu.RUnlock()
	if fn != nil {
		fn(fmt.Sprintf(format, args...))
	}
}

// SetCursor places the cursor at a byte offset.
func (app *Application) SetCursor(pos int64) error {
	eng := app.doc.Engine
	if pos < 0 || pos > int64(eng.Len()) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrPositionOutOfRange, pos, eng.Len())
	}
	eng.SetCursor(engine.ByteOffset(pos))
	return nil
}

// Execute dispatches a named action count times. An unroutable name is
// reported as ErrUnknownAction.
func (app *Application) Execute(name string, count int) handler.Result {
	if !app.dispatcher.CanDispatch(name) {
		return handler.Error(fmt.Errorf("%w: %s", ErrUnknownAction, name))
	}
	return app.dispatcher.Dispatch(input.NewAction(name).WithCount(count))
}

// HandleKeys dispatches the action bound to keys. ok is false when the
// keys are unbound.
func (app *Application) HandleKeys(keys string, count int) (result handler.Result, ok bool) {
	b, ok := app.Keymap().Lookup(keys)
	if !ok {
		return handler.Result{}, false
	}
	action := input.NewAction(b.Action).WithCount(count).WithSource(input.SourceKeyboard)
	return app.dispatcher.Dispatch(action), true
}

// InsertText types text at the cursor.
func (app *Application) InsertText(text string) handler.Result {
	action := input.NewAction(edithandler.ActionInsertText).WithText(text).WithSource(input.SourceKeyboard)
	return app.dispatcher.Dispatch(action)
}

// Close stops the watchers and flushes the log.
func (app *Application) Close() error {
	app.mu.Lock()
	reloader, pw := app.reloader, app.pluginWatcher
	app.reloader, app.pluginWatcher = nil, nil
	app.mu.Unlock()

	var errs []error
	if reloader != nil {
		errs = append(errs, reloader.Close())
	}
	if pw != nil {
		errs = append(errs, pw.Close())
	}

	if m := app.dispatcher.Metrics(); m != nil {
		s := m.Snapshot()
		app.logger.Info("dispatch stats: total=%d noop=%d errors=%d panics=%d avg=%s",
			s.TotalDispatches, s.TotalNoOps, s.TotalErrors, s.TotalPanics, s.AverageDuration)
	}
	app.logger.Debug("session closed")

	if app.closeLog != nil {
		errs = append(errs, app.closeLog())
	}
	return errors.Join(errs...)
}
