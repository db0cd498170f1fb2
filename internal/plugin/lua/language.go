package lua

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/waddie/paredit.hx/internal/lang"
	"github.com/waddie/paredit.hx/internal/sexp"
)

// Language is a dialect definition read from a script.
type Language struct {
	Name         string
	Extensions   []string
	Whitespace   string
	Prefixes     map[byte]sexp.PrefixRole
	Dispatch     []lang.DispatchEntry
	CommentForms []string
}

// Table builds the rule table for the definition.
func (l Language) Table() *lang.Table {
	opts := []lang.Option{
		lang.WithExtensions(l.Extensions...),
		lang.WithWhitespace(l.Whitespace),
		lang.WithCommentForms(l.CommentForms...),
	}

	chars := make([]int, 0, len(l.Prefixes))
	for c := range l.Prefixes {
		chars = append(chars, int(c))
	}
	sort.Ints(chars)
	for _, c := range chars {
		opts = append(opts, lang.WithPrefix(byte(c), l.Prefixes[byte(c)]))
	}

	for _, d := range l.Dispatch {
		opts = append(opts, lang.WithDispatch(d.Seq, d.Role, d.Width))
	}
	return lang.NewTable(l.Name, opts...)
}

var languageFields = map[string]bool{
	"name": true, "extensions": true, "whitespace": true,
	"prefixes": true, "dispatch": true, "comment_forms": true,
}

// defineLanguage implements the language builtin.
func (s *State) defineLanguage(L *lua.LState) int {
	def := L.CheckTable(1)

	l, err := decodeLanguage(def)
	if err == nil {
		err = l.Table().Validate()
	}
	if err != nil {
		L.RaiseError("language: %v", err)
		return 0
	}

	for i := range s.languages {
		if s.languages[i].Name == l.Name {
			s.languages[i] = l
			return 0
		}
	}
	s.languages = append(s.languages, l)
	return 0
}

func decodeLanguage(t *lua.LTable) (Language, error) {
	var l Language

	var unknown []string
	t.ForEach(func(k, _ lua.LValue) {
		if ks, ok := k.(lua.LString); !ok || !languageFields[string(ks)] {
			unknown = append(unknown, k.String())
		}
	})
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return l, fmt.Errorf("%w: unknown field %q", ErrInvalidLanguage, unknown[0])
	}

	name, ok := t.RawGetString("name").(lua.LString)
	if !ok || name == "" {
		return l, fmt.Errorf("%w: name must be a non-empty string", ErrInvalidLanguage)
	}
	l.Name = string(name)

	var err error
	if l.Extensions, err = stringList(t, "extensions"); err != nil {
		return l, err
	}
	if l.CommentForms, err = stringList(t, "comment_forms"); err != nil {
		return l, err
	}

	switch ws := t.RawGetString("whitespace").(type) {
	case *lua.LNilType:
	case lua.LString:
		l.Whitespace = string(ws)
	default:
		return l, fmt.Errorf("%w: whitespace must be a string", ErrInvalidLanguage)
	}

	if l.Prefixes, err = decodePrefixes(t.RawGetString("prefixes")); err != nil {
		return l, err
	}
	if l.Dispatch, err = decodeDispatch(t.RawGetString("dispatch")); err != nil {
		return l, err
	}
	return l, nil
}

func stringList(t *lua.LTable, field string) ([]string, error) {
	v := t.RawGetString(field)
	if v == lua.LNil {
		return nil, nil
	}
	list, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a list of strings", ErrInvalidLanguage, field)
	}

	out := make([]string, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		s, ok := list.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be a string", ErrInvalidLanguage, field, i)
		}
		out = append(out, string(s))
	}
	return out, nil
}

func decodePrefixes(v lua.LValue) (map[byte]sexp.PrefixRole, error) {
	if v == lua.LNil {
		return nil, nil
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: prefixes must be a table", ErrInvalidLanguage)
	}

	out := make(map[byte]sexp.PrefixRole)
	var err error
	t.ForEach(func(k, val lua.LValue) {
		if err != nil {
			return
		}
		c, ok := k.(lua.LString)
		if !ok || len(c) != 1 {
			err = fmt.Errorf("%w: prefix key %q must be one character", ErrInvalidLanguage, k.String())
			return
		}
		name, ok := val.(lua.LString)
		role, known := sexp.ParsePrefixRole(string(name))
		if !ok || !known {
			err = fmt.Errorf("%w: prefix %q has unknown role %q", ErrInvalidLanguage, string(c), val.String())
			return
		}
		out[c[0]] = role
	})
	return out, err
}

func decodeDispatch(v lua.LValue) ([]lang.DispatchEntry, error) {
	if v == lua.LNil {
		return nil, nil
	}
	list, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: dispatch must be a list", ErrInvalidLanguage)
	}

	out := make([]lang.DispatchEntry, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		entry, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("%w: dispatch[%d] must be a table", ErrInvalidLanguage, i)
		}

		seq, ok := field(entry, "seq", 1).(lua.LString)
		if !ok || len(seq) < 2 {
			return nil, fmt.Errorf("%w: dispatch[%d] seq must have at least two characters", ErrInvalidLanguage, i)
		}
		name, _ := field(entry, "role", 2).(lua.LString)
		role, known := sexp.ParseDispatchRole(string(name))
		if !known {
			return nil, fmt.Errorf("%w: dispatch[%d] has unknown role %q", ErrInvalidLanguage, i, string(name))
		}

		width := defaultWidth(string(seq))
		switch w := field(entry, "width", 3).(type) {
		case *lua.LNilType:
		case lua.LNumber:
			width = int(w)
		default:
			return nil, fmt.Errorf("%w: dispatch[%d] width must be a number", ErrInvalidLanguage, i)
		}

		out = append(out, lang.DispatchEntry{Seq: string(seq), Role: role, Width: width})
	}
	return out, nil
}

// field reads a named field, falling back to a positional one.
func field(t *lua.LTable, name string, pos int) lua.LValue {
	if v := t.RawGetString(name); v != lua.LNil {
		return v
	}
	return t.RawGetInt(pos)
}

// defaultWidth leaves a trailing opener, string quote or escape to the
// element detector.
func defaultWidth(seq string) int {
	switch last := seq[len(seq)-1]; {
	case sexp.IsOpen(last), last == '"', last == '\\':
		return len(seq) - 1
	}
	return len(seq)
}
