// Package lua runs language definition scripts.
//
// A script describes a dialect with the language builtin:
//
//	language {
//	    name = "janet",
//	    extensions = { ".janet", ".jdn" },
//	    prefixes = { ["'"] = "quote", ["~"] = "syntax-quote", [","] = "unquote" },
//	    dispatch = {
//	        { "@(", "fn" },
//	        { seq = "@{", role = "set", width = 1 },
//	    },
//	    comment_forms = { "comment" },
//	}
//
// Fields:
//   - name: required language name
//   - extensions: file extensions selecting the language
//   - whitespace: string of extra whitespace characters
//   - prefixes: single character -> quote, syntax-quote, unquote, deref or meta
//   - dispatch: entries of seq, role and optional width; the width defaults
//     to the sequence length minus a trailing opener, quote or backslash
//   - comment_forms: head symbols of comment forms
//
// Scripts run in a sandbox: only the base, table, string and math
// libraries are open, and file loading functions are removed. Each run is
// bounded by a timeout enforced through the state's context.
package lua
