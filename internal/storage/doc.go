// Package storage defines the persistence interfaces backing the content
// stores and settings.
//
// It provides a high-level abstraction for storing notes, Bible highlights,
// Bible notes, commentaries, and setting blobs. The SQLite implementation of
// these interfaces lives in the sqlite subpackage.
//
// The package defines ErrNotFound, returned by patch and delete operations
// when no record matches the owner and id.
package storage
