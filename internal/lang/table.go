package lang

import (
	"fmt"
	"sort"
	"strings"

	"github.com/waddie/paredit.hx/internal/sexp"
)

// DispatchEntry maps a literal character sequence to a dispatch role.
// Width is the number of bytes the element detector consumes for it, which
// can be shorter than Seq when the sequence ends with an opener.
type DispatchEntry struct {
	Seq   string
	Role  sexp.DispatchRole
	Width int
}

// Table is a data-driven implementation of sexp.Rules.
type Table struct {
	name         string
	extensions   []string
	whitespace   [256]bool
	prefixes     [256]sexp.PrefixRole
	dispatch     []DispatchEntry // longest sequence first
	commentForms map[string]bool
}

// Option configures a Table.
type Option func(*Table)

// WithExtensions sets the file extensions the table is selected for.
func WithExtensions(exts ...string) Option {
	return func(t *Table) {
		for _, ext := range exts {
			t.extensions = append(t.extensions, normalizeExt(ext))
		}
	}
}

// WithWhitespace marks extra characters as whitespace.
func WithWhitespace(chars string) Option {
	return func(t *Table) {
		for i := 0; i < len(chars); i++ {
			t.whitespace[chars[i]] = true
		}
	}
}

// WithPrefix registers a single-character reader prefix.
func WithPrefix(c byte, role sexp.PrefixRole) Option {
	return func(t *Table) {
		t.prefixes[c] = role
	}
}

// WithDispatch registers a dispatch sequence.
func WithDispatch(seq string, role sexp.DispatchRole, width int) Option {
	return func(t *Table) {
		t.dispatch = append(t.dispatch, DispatchEntry{Seq: seq, Role: role, Width: width})
	}
}

// WithCommentForms sets the head symbols that mark comment forms.
func WithCommentForms(names ...string) Option {
	return func(t *Table) {
		for _, n := range names {
			t.commentForms[n] = true
		}
	}
}

// NewTable builds a rule table.
func NewTable(name string, opts ...Option) *Table {
	t := &Table{
		name:         name,
		commentForms: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(t)
	}
	sort.SliceStable(t.dispatch, func(i, j int) bool {
		return len(t.dispatch[i].Seq) > len(t.dispatch[j].Seq)
	})
	return t
}

// Validate checks that the table can be used by a scanner.
func (t *Table) Validate() error {
	if t.name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTable)
	}
	for _, d := range t.dispatch {
		if d.Seq == "" || d.Width <= 0 || d.Width > len(d.Seq) {
			return fmt.Errorf("%w: %s: bad dispatch %q width %d", ErrInvalidTable, t.name, d.Seq, d.Width)
		}
		if d.Role == sexp.DispatchNone {
			return fmt.Errorf("%w: %s: dispatch %q has no role", ErrInvalidTable, t.name, d.Seq)
		}
	}
	for c, ws := range t.whitespace {
		if ws && structural(byte(c)) {
			return fmt.Errorf("%w: %s: %q cannot be whitespace", ErrInvalidTable, t.name, rune(c))
		}
	}
	for c, role := range t.prefixes {
		if role != sexp.PrefixNone && (structural(byte(c)) || t.whitespace[c]) {
			return fmt.Errorf("%w: %s: %q cannot be a prefix", ErrInvalidTable, t.name, rune(c))
		}
	}
	return nil
}

func structural(c byte) bool {
	return sexp.IsDelimiter(c) || c == '"' || c == '\\' || c == ';'
}

// Name implements sexp.Rules.
func (t *Table) Name() string { return t.name }

// Extensions returns the file extensions of the table, each with a
// leading dot.
func (t *Table) Extensions() []string {
	out := make([]string, len(t.extensions))
	copy(out, t.extensions)
	return out
}

// Dispatches returns the dispatch entries, longest sequence first.
func (t *Table) Dispatches() []DispatchEntry {
	out := make([]DispatchEntry, len(t.dispatch))
	copy(out, t.dispatch)
	return out
}

// IsWhitespace implements sexp.Rules.
func (t *Table) IsWhitespace(c byte) bool { return t.whitespace[c] }

// ReaderPrefix implements sexp.Rules.
func (t *Table) ReaderPrefix(c byte) sexp.PrefixRole { return t.prefixes[c] }

// Dispatch implements sexp.Rules.
func (t *Table) Dispatch(text sexp.Text, pos int64) (sexp.DispatchRole, int) {
	first, ok := text.ByteAt(pos)
	if !ok {
		return sexp.DispatchNone, 0
	}
	for _, d := range t.dispatch {
		if d.Seq[0] == first && hasSeq(text, pos, d.Seq) {
			return d.Role, d.Width
		}
	}
	return sexp.DispatchNone, 0
}

// IsCommentForm implements sexp.Rules.
func (t *Table) IsCommentForm(text sexp.Text, pos int64) bool {
	if len(t.commentForms) == 0 {
		return false
	}
	head, ok := sexp.HeadSymbol(text, pos, t.IsWhitespace)
	return ok && t.commentForms[head]
}

func hasSeq(text sexp.Text, pos int64, seq string) bool {
	for i := 0; i < len(seq); i++ {
		c, ok := text.ByteAt(pos + int64(i))
		if !ok || c != seq[i] {
			return false
		}
	}
	return true
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
