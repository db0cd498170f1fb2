package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

type setter func(c *Config, path string, v any) error

func stringSetting(field func(*Config) *string) setter {
	return func(c *Config, path string, v any) error {
		s, ok := v.(string)
		if !ok {
			return &TypeError{Path: path, Expected: "string", Actual: fmt.Sprintf("%T", v)}
		}
		*field(c) = s
		return nil
	}
}

func intSetting(field func(*Config) *int) setter {
	return func(c *Config, path string, v any) error {
		n, ok := toInt(v)
		if !ok {
			return &TypeError{Path: path, Expected: "integer", Actual: fmt.Sprintf("%T", v)}
		}
		*field(c) = n
		return nil
	}
}

func boolSetting(field func(*Config) *bool) setter {
	return func(c *Config, path string, v any) error {
		b, ok := v.(bool)
		if !ok {
			return &TypeError{Path: path, Expected: "bool", Actual: fmt.Sprintf("%T", v)}
		}
		*field(c) = b
		return nil
	}
}

var settings = map[string]setter{
	"paredit.cursorBehavior":   stringSetting(func(c *Config) *string { return &c.Paredit.CursorBehavior }),
	"paredit.autoTolerance":    intSetting(func(c *Config) *int { return &c.Paredit.AutoTolerance }),
	"paredit.defaultLanguage":  stringSetting(func(c *Config) *string { return &c.Paredit.DefaultLanguage }),
	"logging.level":            stringSetting(func(c *Config) *string { return &c.Logging.Level }),
	"logging.file":             stringSetting(func(c *Config) *string { return &c.Logging.File }),
	"plugins.enabled":          boolSetting(func(c *Config) *bool { return &c.Plugins.Enabled }),
	"plugins.dir":              stringSetting(func(c *Config) *string { return &c.Plugins.Dir }),
	"dispatcher.metrics":       boolSetting(func(c *Config) *bool { return &c.Dispatcher.Metrics }),
	"dispatcher.maxRepeat":     intSetting(func(c *Config) *int { return &c.Dispatcher.MaxRepeat }),
	"dispatcher.recoverPanics": boolSetting(func(c *Config) *bool { return &c.Dispatcher.RecoverPanics }),
}

// String tables whose keys are user data rather than setting names.
var tables = map[string]func(*Config) map[string]string{
	"extensions": func(c *Config) map[string]string { return c.Extensions },
	"keys":       func(c *Config) map[string]string { return c.Keys },
}

// FromMap decodes a merged settings map on top of the defaults. Errors
// for every bad entry are joined; Validate is not run.
func FromMap(m map[string]any) (*Config, error) {
	c := Default()
	var errs []error

	for _, section := range sortedKeys(m) {
		raw := m[section]

		if table, ok := tables[section]; ok {
			errs = append(errs, decodeTable(table(c), section, raw)...)
			continue
		}

		values, ok := raw.(map[string]any)
		if !ok {
			errs = append(errs, &ValidationError{
				Path: section, Message: "unknown setting", Value: raw, Code: ErrCodeUnknownSetting,
			})
			continue
		}
		for _, key := range sortedKeys(values) {
			path := section + "." + key
			set, ok := settings[path]
			if !ok {
				errs = append(errs, &ValidationError{
					Path: path, Message: "unknown setting", Value: values[key], Code: ErrCodeUnknownSetting,
				})
				continue
			}
			if err := set(c, path, values[key]); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeTable(dst map[string]string, section string, raw any) []error {
	values, ok := raw.(map[string]any)
	if !ok {
		return []error{&TypeError{Path: section, Expected: "table", Actual: fmt.Sprintf("%T", raw)}}
	}
	var errs []error
	for _, key := range sortedKeys(values) {
		s, ok := values[key].(string)
		if !ok {
			errs = append(errs, &TypeError{
				Path: section + "." + key, Expected: "string", Actual: fmt.Sprintf("%T", values[key]),
			})
			continue
		}
		dst[key] = s
	}
	return errs
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	}
	return 0, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
