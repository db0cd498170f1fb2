package plugin_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/waddie/paredit.hx/internal/lang"
	"github.com/waddie/paredit.hx/internal/plugin"
)

func writePlugin(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoaderDiscover(t *testing.T) {
	user := t.TempDir()
	project := t.TempDir()
	writePlugin(t, user, "janet.lua", "")
	writePlugin(t, user, "notes.txt", "")
	writePlugin(t, project, "janet.lua", "")
	writePlugin(t, project, "hy.lua", "")
	if err := os.Mkdir(filepath.Join(project, "dir.lua"), 0755); err != nil {
		t.Fatal(err)
	}

	l := plugin.NewLoader(plugin.WithPaths(user, filepath.Join(user, "missing"), project))
	plugins, err := l.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	var names, paths []string
	for _, p := range plugins {
		names = append(names, p.Name)
		paths = append(paths, p.Path)
	}
	if want := []string{"hy", "janet"}; !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
	if paths[1] != filepath.Join(user, "janet.lua") {
		t.Errorf("janet path = %q, want the first search path", paths[1])
	}
}

func TestLoaderLoadInto(t *testing.T) {
	dir := t.TempDir()
	writePlugin(t, dir, "janet.lua", `
language {
    name = "janet",
    extensions = { ".janet" },
    prefixes = { ["'"] = "quote", ["~"] = "syntax-quote", [","] = "unquote" },
    dispatch = { { "@(", "fn" }, { "@[", "fn" }, { "@{", "set" } },
}
`)
	writePlugin(t, dir, "broken.lua", `language { name = `)
	writePlugin(t, dir, "empty.lua", `local x = 1`)
	writePlugin(t, dir, "override.lua", `language { name = "scheme", extensions = { ".scm" } }`)

	var printed []string
	reg := lang.DefaultRegistry()
	l := plugin.NewLoader(
		plugin.WithPaths(dir),
		plugin.WithPrint(func(p, msg string) { printed = append(printed, p+": "+msg) }),
	)
	plugins, err := l.LoadInto(reg)
	if err != nil {
		t.Fatalf("LoadInto() error = %v", err)
	}

	byName := make(map[string]*plugin.PluginInfo)
	for _, p := range plugins {
		byName[p.Name] = p
	}

	if p := byName["janet"]; p.Error != nil || !reflect.DeepEqual(p.Languages, []string{"janet"}) {
		t.Errorf("janet = %+v", p)
	}
	if p := byName["broken"]; p.Error == nil {
		t.Error("broken plugin loaded without error")
	}
	if p := byName["empty"]; !errors.Is(p.Error, plugin.ErrNoLanguages) {
		t.Errorf("empty plugin error = %v", p.Error)
	}

	tbl, ok := reg.ForPath("src/main.janet")
	if !ok || tbl.Name() != "janet" {
		t.Fatalf("ForPath(main.janet) = %v, %v", tbl, ok)
	}
	if tbl, _ := reg.Lookup("scheme"); len(tbl.Dispatches()) != 0 {
		t.Error("plugin did not replace the built-in scheme table")
	}
	if len(printed) != 0 {
		t.Errorf("unexpected output %v", printed)
	}
}

func TestLoaderLoadFilePrint(t *testing.T) {
	dir := t.TempDir()
	path := writePlugin(t, dir, "hy.lua", `
print("defining hy")
language { name = "hy", extensions = { ".hy" } }
`)

	var printed []string
	l := plugin.NewLoader(plugin.WithPrint(func(p, msg string) { printed = append(printed, p+": "+msg) }))
	info := l.LoadFile(lang.NewRegistry(), path)

	if info.Error != nil || info.Name != "hy" {
		t.Fatalf("LoadFile() = %+v", info)
	}
	if !reflect.DeepEqual(printed, []string{"hy: defining hy"}) {
		t.Errorf("printed = %v", printed)
	}
}
