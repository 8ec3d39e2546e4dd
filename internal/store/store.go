// Package store provides a keyed JSON document store backed by SQLite.
// Documents are addressed by a hierarchical (namespace, owner, path) key and
// written as full-document replaces, so a record is either fully present or
// absent, never a mix of old and new fields.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the addressed document does not exist.
var ErrNotFound = errors.New("document not found")

// Namespaces for the two ownership domains.
const (
	NamespaceCourses = "courses" // shared, keyed by identity key
	NamespaceUsers   = "users"   // per-user, keyed by user ID
)

// Key addresses one document.
type Key struct {
	Namespace string // "courses" or "users"
	Owner     string // identity key or user ID
	Path      string // e.g. "roadmap.json", "courses/abc123/days/day_1.json"
}

// Store is the minimal document-store contract. Implementations must offer
// read-after-write consistency per key; versioned callers layer their own
// read-modify-write serialization on top.
type Store interface {
	// Read returns the document bytes, or ErrNotFound.
	Read(ctx context.Context, key Key) ([]byte, error)

	// Write upserts the full document.
	Write(ctx context.Context, key Key, data []byte) error

	// Exists reports whether the document is present.
	Exists(ctx context.Context, key Key) (bool, error)

	// Delete removes the document. Deleting an absent document is not an error.
	Delete(ctx context.Context, key Key) error

	// List returns the paths of documents under a namespace/owner pair whose
	// path starts with pathPrefix, sorted by path.
	List(ctx context.Context, namespace, owner, pathPrefix string) ([]string, error)

	// Close releases resources.
	Close() error
}
