// Package plugin discovers language plugins and registers the dialects
// they define.
//
// A plugin is a single *.lua file in one of the loader's search paths.
// Files are run in name order, each in its own sandboxed state (see the
// lua sub-package), so a later file can replace a language defined by an
// earlier one or by the built-in set.
package plugin
