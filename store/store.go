// Package store provides key-value snapshot persistence for the advisory
// core: journal exports, insight exports, and warehouse datasets. Keys are
// /-separated hierarchical paths and values are raw bytes. Implementations
// are stateless and perform I/O on each call without caching.
package store

import (
	"context"
	"errors"
)

// Top-level namespace conventions for the snapshot key hierarchy.
const (
	NamespaceJournal  = "journal"
	NamespaceInsights = "insights"
	NamespaceDatasets = "datasets"
)

// Entry is a key-value pair in the snapshot namespace.
type Entry struct {
	Key   string
	Value []byte
}

// Store translates between external storage and the snapshot namespace.
type Store interface {
	// List returns all available keys in the store.
	List(ctx context.Context) ([]string, error)
	// Load retrieves entries for the specified keys.
	Load(ctx context.Context, keys ...string) ([]Entry, error)
	// Save persists entries, creating or overwriting as needed.
	Save(ctx context.Context, entries ...Entry) error
	// Delete removes entries. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// Sentinel errors for store operations.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrLoadFailed  = errors.New("load failed")
	ErrSaveFailed  = errors.New("save failed")
)
