// Package sexp locates syntactic units in Lisp-family source text by
// scanning characters directly, without building a syntax tree.
//
// A Scanner is created for one query or one edit over a caller-owned
// Text and a language Rules table. It answers three kinds of question:
//
//   - Lexical: is an offset in code, a string, a line comment or a
//     character literal (StateAt), and where is the delimiter matching
//     the one at an offset (MatchingDelimiter).
//   - Elements: the atom, string, character literal or whole form at,
//     after or before an offset (CurrentElement, NextElement,
//     PreviousElement, ElementAt, ElementBefore).
//   - Forms: the form enclosing an offset, the top-level form, and sibling
//     forms (EnclosingForm, TopLevelForm, FormAt, NextSiblingForm,
//     PrevSiblingForm).
//
// Results are plain offsets into the Text and become stale as soon as
// the text changes. Create a new Scanner after every edit.
//
// Lookups that find nothing report false. Unbalanced delimiters and
// unterminated strings are not diagnosed; they simply make the relevant
// lookup fail.
package sexp
