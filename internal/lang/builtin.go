package lang

import "github.com/waddie/paredit.hx/internal/sexp"

// Clojure returns the rule set for Clojure, ClojureScript and EDN.
func Clojure() *Table {
	return NewTable("clojure",
		WithExtensions(".clj", ".cljs", ".cljc", ".edn", ".bb"),
		WithWhitespace(","),
		WithPrefix('\'', sexp.PrefixQuote),
		WithPrefix('`', sexp.PrefixSyntaxQuote),
		WithPrefix('~', sexp.PrefixUnquote),
		WithPrefix('@', sexp.PrefixDeref),
		WithPrefix('^', sexp.PrefixMeta),
		WithDispatch("#(", sexp.DispatchFn, 1),
		WithDispatch("#{", sexp.DispatchSet, 1),
		WithDispatch(`#"`, sexp.DispatchRegex, 1),
		WithDispatch("#_", sexp.DispatchDiscard, 2),
		WithDispatch("#'", sexp.DispatchVarQuote, 2),
		WithDispatch("#?@(", sexp.DispatchConditional, 3),
		WithDispatch("#?(", sexp.DispatchConditional, 2),
		WithDispatch("#:", sexp.DispatchNamespacedMap, 2),
		WithDispatch("##", sexp.DispatchSymbolic, 2),
		WithDispatch("#^", sexp.DispatchMeta, 2),
		WithDispatch(`#\`, sexp.DispatchCharLiteral, 1),
		WithCommentForms("comment"),
	)
}

// Scheme returns the rule set for R7RS Scheme.
func Scheme() *Table {
	return NewTable("scheme",
		WithExtensions(".scm", ".ss", ".sld", ".sls"),
		WithPrefix('\'', sexp.PrefixQuote),
		WithPrefix('`', sexp.PrefixSyntaxQuote),
		WithPrefix(',', sexp.PrefixUnquote),
		WithPrefix('@', sexp.PrefixUnquote),
		WithDispatch("#(", sexp.DispatchFn, 1),
		WithDispatch(`#\`, sexp.DispatchCharLiteral, 1),
		WithDispatch("#'", sexp.DispatchVarQuote, 2),
	)
}

// Racket returns the rule set for Racket.
func Racket() *Table {
	return NewTable("racket",
		WithExtensions(".rkt", ".rktl"),
		WithPrefix('\'', sexp.PrefixQuote),
		WithPrefix('`', sexp.PrefixSyntaxQuote),
		WithPrefix(',', sexp.PrefixUnquote),
		WithPrefix('@', sexp.PrefixUnquote),
		WithDispatch("#(", sexp.DispatchFn, 1),
		WithDispatch("#[", sexp.DispatchFn, 1),
		WithDispatch("#{", sexp.DispatchSet, 1),
		WithDispatch(`#\`, sexp.DispatchCharLiteral, 1),
		WithDispatch("#'", sexp.DispatchVarQuote, 2),
		WithDispatch("#`", sexp.DispatchVarQuote, 2),
		WithDispatch("#,@", sexp.DispatchVarQuote, 3),
		WithDispatch("#,", sexp.DispatchVarQuote, 2),
	)
}

// CommonLisp returns the rule set for Common Lisp.
func CommonLisp() *Table {
	return NewTable("commonlisp",
		WithExtensions(".lisp", ".lsp", ".cl", ".asd"),
		WithPrefix('\'', sexp.PrefixQuote),
		WithPrefix('`', sexp.PrefixSyntaxQuote),
		WithPrefix(',', sexp.PrefixUnquote),
		WithPrefix('@', sexp.PrefixUnquote),
		WithDispatch("#'", sexp.DispatchVarQuote, 2),
		WithDispatch("#(", sexp.DispatchFn, 1),
		WithDispatch(`#\`, sexp.DispatchCharLiteral, 1),
	)
}

// Fennel returns the rule set for Fennel.
func Fennel() *Table {
	return NewTable("fennel",
		WithExtensions(".fnl"),
		WithPrefix('\'', sexp.PrefixQuote),
		WithPrefix('`', sexp.PrefixSyntaxQuote),
		WithPrefix(',', sexp.PrefixUnquote),
		WithDispatch("#(", sexp.DispatchFn, 1),
		WithCommentForms("comment"),
	)
}

// Generic returns a rule set with only the shared lexical rules.
func Generic() *Table {
	return NewTable("generic")
}

// Builtin returns fresh instances of every built-in table.
func Builtin() []*Table {
	return []*Table{Clojure(), Scheme(), Racket(), CommonLisp(), Fennel(), Generic()}
}
