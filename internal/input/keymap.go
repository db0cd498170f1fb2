package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the normalized key notation (e.g., "C-Right").
	Keys string

	// Action is the command to execute.
	Action string

	// Description provides documentation for the binding.
	Description string
}

// Keymap maps normalized key notation to bindings.
type Keymap struct {
	mu       sync.RWMutex
	name     string
	bindings map[string]Binding
}

// NewKeymap creates an empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		name:     name,
		bindings: make(map[string]Binding),
	}
}

// Name returns the keymap name.
func (k *Keymap) Name() string {
	return k.name
}

// Add binds keys to action, replacing any existing binding for keys.
func (k *Keymap) Add(keys, action string) error {
	return k.AddBinding(Binding{Keys: keys, Action: action})
}

// AddBinding adds a binding after normalizing its keys.
func (k *Keymap) AddBinding(b Binding) error {
	if b.Action == "" {
		return fmt.Errorf("%w: %q", ErrEmptyAction, b.Keys)
	}
	norm, err := NormalizeKeys(b.Keys)
	if err != nil {
		return err
	}
	b.Keys = norm

	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings[norm] = b
	return nil
}

// Remove deletes the binding for keys, if any.
func (k *Keymap) Remove(keys string) {
	norm, err := NormalizeKeys(keys)
	if err != nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.bindings, norm)
}

// Lookup returns the binding for keys.
func (k *Keymap) Lookup(keys string) (Binding, bool) {
	norm, err := NormalizeKeys(keys)
	if err != nil {
		return Binding{}, false
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	b, ok := k.bindings[norm]
	return b, ok
}

// KeysFor returns every key bound to action, sorted.
func (k *Keymap) KeysFor(action string) []string {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var keys []string
	for _, b := range k.bindings {
		if b.Action == action {
			keys = append(keys, b.Keys)
		}
	}
	sort.Strings(keys)
	return keys
}

// Bindings returns all bindings sorted by action, then keys.
func (k *Keymap) Bindings() []Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]Binding, 0, len(k.bindings))
	for _, b := range k.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Action != out[j].Action {
			return out[i].Action < out[j].Action
		}
		return out[i].Keys < out[j].Keys
	})
	return out
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.bindings)
}

// Merge applies user overrides. An empty action or "none" unbinds the key.
// Invalid entries are skipped and reported together.
func (k *Keymap) Merge(overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		action := overrides[key]
		if action == "" || action == "none" {
			if _, err := NormalizeKeys(key); err != nil {
				errs = append(errs, err)
				continue
			}
			k.Remove(key)
			continue
		}
		if err := k.Add(key, action); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var namedKeys = map[string]string{
	"left":      "Left",
	"right":     "Right",
	"up":        "Up",
	"down":      "Down",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PgUp",
	"pageup":    "PgUp",
	"pgdn":      "PgDn",
	"pagedown":  "PgDn",
	"enter":     "Enter",
	"return":    "Enter",
	"tab":       "Tab",
	"backspace": "Backspace",
	"bs":        "Backspace",
	"delete":    "Delete",
	"del":       "Delete",
	"esc":       "Esc",
	"escape":    "Esc",
	"space":     "Space",
	"insert":    "Insert",
}

func isKeySep(c byte) bool {
	return c == '-' || c == '+'
}

// NormalizeKeys converts key notation to its canonical form.
func NormalizeKeys(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidKey)
	}

	var mods, name string
	switch i := strings.LastIndexAny(s, "-+"); {
	case len(s) == 1 || i < 0:
		name = s
	case i == len(s)-1:
		// "C--" binds the dash key itself.
		if !isKeySep(s[i-1]) {
			return "", fmt.Errorf("%w: %q", ErrInvalidKey, s)
		}
		mods, name = s[:i-1], s[i:]
	default:
		mods, name = s[:i], s[i+1:]
	}

	var ctrl, meta, shift bool
	for _, m := range strings.FieldsFunc(mods, func(r rune) bool { return r == '-' || r == '+' }) {
		switch strings.ToLower(m) {
		case "c", "ctrl", "control":
			ctrl = true
		case "m", "a", "alt", "meta":
			meta = true
		case "s", "shift":
			shift = true
		default:
			return "", fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidKey, m, s)
		}
	}

	if utf8.RuneCountInString(name) != 1 {
		canon, ok := namedKeys[strings.ToLower(name)]
		if !ok {
			return "", fmt.Errorf("%w: unknown key %q in %q", ErrInvalidKey, name, s)
		}
		name = canon
	}

	var sb strings.Builder
	if ctrl {
		sb.WriteString("C-")
	}
	if meta {
		sb.WriteString("M-")
	}
	if shift {
		sb.WriteString("S-")
	}
	sb.WriteString(name)
	return sb.String(), nil
}
