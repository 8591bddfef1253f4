// Package steno provides the core steno vocabulary shared across the
// console: strokes, system (key layout) definitions, translation text
// unescaping, and suggestion formatting.
//
// A System describes a steno key layout: the canonical ordered key set,
// the mapping from letter keys to their numeral aliases, and the numeric
// indicator key. Systems are normally supplied by plugins; the English
// Stenotype system ships built in.
package steno
