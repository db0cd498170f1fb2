// Package paredit implements structural editing over Lisp-family text:
// slurp and barf, element and form motions, and form text objects.
//
// Every operation re-scans the document through a fresh sexp.Scanner, so
// results never depend on state left over from an earlier edit. Edits
// resolve all offsets first and then apply a single Replace, so a failed
// lookup leaves the document untouched.
//
// Lookups that find nothing return an error wrapping sexp.ErrNotFound (or
// sexp.ErrEmptyRegion for the interior of an empty form). Callers treat
// both as "nothing to do" rather than as failures.
package paredit
