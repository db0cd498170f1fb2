package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/waddie/paredit.hx/internal/config"
	"github.com/waddie/paredit.hx/internal/config/watcher"
	"github.com/waddie/paredit.hx/internal/lang"
	"github.com/waddie/paredit.hx/internal/paredit"
)

func newTestApp(t *testing.T, opts Options) (*Application, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	opts.LogOutput = &buf
	opts.ConfigOptions = append(opts.ConfigOptions, config.WithEnv(nil))
	a, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a, &buf
}

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew_Input(t *testing.T) {
	a, _ := newTestApp(t, Options{Input: strings.NewReader("(a b) c")})

	if got := a.Language().Name(); got != "clojure" {
		t.Errorf("language = %q, want the default clojure", got)
	}
	if a.Editor().CursorBehavior() != paredit.CursorAuto || a.Editor().Tolerance() != 2 {
		t.Errorf("editor = %v/%d", a.Editor().CursorBehavior(), a.Editor().Tolerance())
	}
	if len(a.SessionID()) != 36 {
		t.Errorf("session id = %q", a.SessionID())
	}
	if a.Document().IsModified() {
		t.Error("fresh document reports modified")
	}

	if err := a.SetCursor(1); err != nil {
		t.Fatal(err)
	}
	if r := a.Execute("paredit.slurpForward", 1); !r.IsOK() {
		t.Fatalf("slurpForward = %+v", r)
	}
	if got := a.Engine().Text(); got != "(a b c)" {
		t.Errorf("text = %q", got)
	}
	if !a.Document().IsModified() {
		t.Error("edit not reported as modification")
	}
}

func TestExecute_Errors(t *testing.T) {
	a, _ := newTestApp(t, Options{Input: strings.NewReader("x")})

	if r := a.Execute("paredit.fly", 1); !errors.Is(r.Error, ErrUnknownAction) {
		t.Errorf("unknown action error = %v", r.Error)
	}
	if err := a.SetCursor(2); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("SetCursor(2) = %v", err)
	}
	if err := a.SetCursor(-1); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("SetCursor(-1) = %v", err)
	}
	if r := a.Execute("paredit.barfForward", 1); r.IsOK() {
		t.Errorf("barf outside a form = %+v", r)
	}
}

func TestNew_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTemp(t, dir, "config.toml", `
[paredit]
cursorBehavior = "remain"

[extensions]
".jnk" = "scheme"

[keys]
"C-t" = "paredit.selectTopLevelForm"
"C-Right" = "none"
`)
	file := writeTemp(t, dir, "code.jnk", "(define x 1)")

	a, _ := newTestApp(t, Options{ConfigPath: cfgPath, FilePath: file})

	if got := a.Language().Name(); got != "scheme" {
		t.Errorf("language = %q, want scheme via the extension mapping", got)
	}
	if a.Editor().CursorBehavior() != paredit.CursorRemain {
		t.Errorf("cursor behavior = %v", a.Editor().CursorBehavior())
	}
	if b, ok := a.Keymap().Lookup("C-t"); !ok || b.Action != "paredit.selectTopLevelForm" {
		t.Errorf("C-t = %+v, %v", b, ok)
	}
	if _, ok := a.Keymap().Lookup("C-Right"); ok {
		t.Error("C-Right still bound")
	}
	if a.Document().Name != "code.jnk" || a.Engine().Text() != "(define x 1)" {
		t.Errorf("document = %q %q", a.Document().Name, a.Engine().Text())
	}
}

func TestNew_OptionOverrides(t *testing.T) {
	a, buf := newTestApp(t, Options{
		Input:          strings.NewReader("(a)"),
		Language:       "scheme",
		CursorBehavior: "follow",
		LogLevel:       "debug",
	})

	if a.Language().Name() != "scheme" {
		t.Errorf("language = %q", a.Language().Name())
	}
	if a.Editor().CursorBehavior() != paredit.CursorFollow {
		t.Errorf("cursor behavior = %v", a.Editor().CursorBehavior())
	}
	a.Execute("cursor.moveRight", 1)
	if !strings.Contains(buf.String(), "dispatch cursor.moveRight") {
		t.Errorf("debug log missing dispatch line: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "session="+a.SessionID()[:8]) {
		t.Errorf("log lines lack the session field: %q", buf.String())
	}
}

func TestNew_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := writeTemp(t, dir, "bad.toml", "[paredit]\ncursorBehavior = \"sideways\"\n")

	tests := []struct {
		name      string
		opts      Options
		component string
		target    error
	}{
		{"invalid config", Options{ConfigPath: bad}, "config", config.ErrValidationFailed},
		{"missing config", Options{ConfigPath: filepath.Join(dir, "none.toml")}, "config", config.ErrFileNotFound},
		{"unknown language", Options{Language: "cobol"}, "languages", lang.ErrUnknownLanguage},
		{"bad cursor flag", Options{CursorBehavior: "sideways"}, "config", config.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			tt.opts.LogOutput = &bytes.Buffer{}
			tt.opts.ConfigOptions = []config.LoadOption{config.WithEnv(nil)}
			_, err := New(tt.opts)

			var ie *InitError
			if !errors.As(err, &ie) || ie.Component != tt.component {
				t.Fatalf("New() error = %v, want init %s failure", err, tt.component)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("New() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestSaveMarksDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.clj")
	a, _ := newTestApp(t, Options{FilePath: path})

	if a.Engine().Len() != 0 {
		t.Fatalf("missing file should open empty, got %q", a.Engine().Text())
	}
	a.InsertText("(x)")
	if !a.Document().IsModified() {
		t.Fatal("insert not reported as modification")
	}
	if r := a.Execute("editor.save", 0); !r.IsOK() {
		t.Fatalf("save = %+v", r)
	}
	if a.Document().IsModified() {
		t.Error("document still modified after save")
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "(x)" {
		t.Errorf("saved %q, %v", data, err)
	}
}

func TestReadOnly(t *testing.T) {
	a, _ := newTestApp(t, Options{Input: strings.NewReader("(a) b"), ReadOnly: true})
	_ = a.SetCursor(1)

	if r := a.Execute("paredit.slurpForward", 1); r.IsOK() {
		t.Errorf("slurp in read-only buffer = %+v", r)
	}
	if r := a.Execute("paredit.selectAroundForm", 1); !r.IsOK() {
		t.Errorf("selection in read-only buffer = %+v", r)
	}
	if got := a.Engine().Text(); got != "(a) b" {
		t.Errorf("text = %q", got)
	}
}

func TestDispatcherFollowsConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "config.toml", "[dispatcher]\nrecoverPanics = false\nmaxRepeat = 9\n")
	a, _ := newTestApp(t, Options{ConfigPath: path, Input: strings.NewReader("(a)")})

	cfg := a.Dispatcher().Config()
	if cfg.RecoverFromPanic || cfg.MaxRepeatCount != 9 {
		t.Errorf("dispatcher config = %+v", cfg)
	}
}

func TestApplyConfig(t *testing.T) {
	a, _ := newTestApp(t, Options{Input: strings.NewReader("(a) b")})
	var msgs []string
	a.SetNotifier(func(msg string) { msgs = append(msgs, msg) })

	cfg := config.Default()
	cfg.Paredit.CursorBehavior = "follow"
	cfg.Paredit.AutoTolerance = 0
	cfg.Logging.Level = "error"
	cfg.Keys["C-t"] = "paredit.selectTopLevelForm"
	cfg.Extensions[".jnk"] = "scheme"
	a.applyConfig(cfg, nil)

	if a.Editor().CursorBehavior() != paredit.CursorFollow || a.Editor().Tolerance() != 0 {
		t.Errorf("editor = %v/%d", a.Editor().CursorBehavior(), a.Editor().Tolerance())
	}
	if a.Editor().Rules() != a.Language() {
		t.Error("rebuilt editor lost the active rules")
	}
	if _, ok := a.Keymap().Lookup("C-t"); !ok {
		t.Error("new binding missing")
	}
	if tbl, ok := a.Registry().ForExtension(".jnk"); !ok || tbl.Name() != "scheme" {
		t.Error("extension mapping not applied")
	}
	if a.Logger().Level() != LogLevelError {
		t.Errorf("log level = %v", a.Logger().Level())
	}
	if a.Config() != cfg {
		t.Error("Config() not replaced")
	}

	a.applyConfig(nil, errors.New("boom"))
	if a.Config() != cfg {
		t.Error("failed reload replaced the config")
	}
	if len(msgs) != 2 || msgs[0] != "config reloaded" || !strings.Contains(msgs[1], "boom") {
		t.Errorf("notifications = %q", msgs)
	}
}

const janetPlugin = `
language {
    name = "janet",
    extensions = { ".janet" },
    prefixes = { ["'"] = "quote" },
}
`

func TestPluginsAndReload(t *testing.T) {
	dir := t.TempDir()
	plugins := filepath.Join(dir, "languages")
	if err := os.Mkdir(plugins, 0755); err != nil {
		t.Fatal(err)
	}
	pluginPath := writeTemp(t, plugins, "janet.lua", janetPlugin)
	writeTemp(t, plugins, "broken.lua", "language {")
	cfgPath := writeTemp(t, dir, "config.yaml", "plugins:\n  dir: "+plugins+"\n")
	file := writeTemp(t, dir, "main.janet", "(print 'x)")

	a, buf := newTestApp(t, Options{ConfigPath: cfgPath, FilePath: file})

	if got := a.Language().Name(); got != "janet" {
		t.Fatalf("language = %q", got)
	}
	if len(a.Plugins()) != 2 {
		t.Fatalf("plugins = %d", len(a.Plugins()))
	}
	if !strings.Contains(buf.String(), "plugin broken") {
		t.Errorf("broken plugin not logged: %q", buf.String())
	}

	before := a.Language()
	writeTemp(t, plugins, "janet.lua", strings.Replace(janetPlugin, `["'"] = "quote"`, `["'"] = "quote", ["~"] = "syntax-quote"`, 1))
	var msgs []string
	a.SetNotifier(func(msg string) { msgs = append(msgs, msg) })
	a.handlePluginChange(watcher.Event{Path: pluginPath, Op: watcher.OpWrite})

	after := a.Language()
	if after == before {
		t.Fatal("active language not replaced")
	}
	if a.Editor().Rules() != after {
		t.Error("editor still uses the old rules")
	}
	if len(msgs) != 1 || !strings.Contains(msgs[0], "janet updated") {
		t.Errorf("notifications = %q", msgs)
	}

	if err := os.Remove(pluginPath); err != nil {
		t.Fatal(err)
	}
	a.handlePluginChange(watcher.Event{Path: pluginPath, Op: watcher.OpRemove})
	if a.Language() != after {
		t.Error("removing the plugin file changed the language")
	}
}

func TestWatchWithoutSources(t *testing.T) {
	a, _ := newTestApp(t, Options{Input: strings.NewReader("")})
	if err := a.WatchConfig(); err != nil {
		t.Errorf("WatchConfig() without a file = %v", err)
	}
	if err := a.WatchPlugins(); err != nil {
		t.Errorf("WatchPlugins() without a directory = %v", err)
	}
}

func TestWatchPlugins(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTemp(t, dir, "config.toml", "[plugins]\ndir = \""+filepath.ToSlash(dir)+"\"\n")
	a, _ := newTestApp(t, Options{ConfigPath: cfgPath, Input: strings.NewReader("")})

	if err := a.WatchPlugins(); err != nil {
		t.Fatalf("WatchPlugins() = %v", err)
	}
	if err := a.WatchConfig(); err != nil {
		t.Fatalf("WatchConfig() = %v", err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
