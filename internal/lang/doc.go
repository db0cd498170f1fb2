// Package lang provides the built-in dialect rule sets for the sexp
// scanner and a registry that resolves them by name or file extension.
//
// A Table is immutable once built. Tables are assembled with NewTable and
// functional options, which is also how Lua plugins describe new dialects:
//
//	t := lang.NewTable("mylisp",
//		lang.WithExtensions(".ml"),
//		lang.WithPrefix('\'', sexp.PrefixQuote),
//		lang.WithDispatch("#(", sexp.DispatchFn, 1),
//	)
package lang
