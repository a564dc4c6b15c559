// Package store handles the local JSON files that pass meeting data between
// the fetch commands and the converter.
//
// The filesystem is the only handoff mechanism between commands, so this
// package owns the conventions that make it reliable: deterministic
// filenames derived from a document's creation date and sanitized title,
// whole-file atomic writes (temp file plus rename), and the on-disk record
// schemas for both fetch categories.
package store
