// Package config loads the editor configuration.
//
// Settings come from three sources, later ones overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← PAREDIT_SECTION_SETTING_NAME
//	├─────────────────────────────┤
//	│  2. Config File             │  ← config.toml, config.yaml or config.yml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// Files and environment variables are read into generic maps by the
// loader sub-package, merged, and decoded into a Config. Unknown settings
// and values of the wrong type are reported, not ignored.
//
// # File Layout
//
//	[paredit]
//	cursorBehavior = "auto"      # auto, remain or follow
//	autoTolerance = 2
//	defaultLanguage = "clojure"
//
//	[logging]
//	level = "info"
//	file = ""                    # empty logs to stderr
//
//	[plugins]
//	enabled = true
//	dir = "~/.config/paredit/languages"
//
//	[dispatcher]
//	metrics = false
//	maxRepeat = 1000
//	recoverPanics = true
//
//	[extensions]                 # file extension -> language name
//	".bb" = "clojure"
//
//	[keys]                       # key -> action; "none" unbinds
//	"C-Right" = "paredit.slurpForward"
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment loading, map merging
//   - watcher: fsnotify-based file watching with debounce
package config
