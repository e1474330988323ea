// Package store defines the ordered key-value boundary the trizip index is
// persisted through, together with three implementations: an in-memory
// B-tree, a bbolt-backed store, and a badger-backed store.
//
// The index requires nothing beyond this contract: single-key reads and
// writes plus predecessor/successor lookups over lexicographically ordered
// byte-string keys. No multi-key transactions, no custom page format.
// Consistency under concurrent external writers is entirely the engine's
// responsibility; the index neither retries nor interprets engine errors.
package store

import "context"

// Entry is one key-value pair. Both slices are owned by the caller; store
// implementations copy on write and return copies on read.
type Entry struct {
	Key   []byte
	Value []byte
}

// Store is an ordered byte-string-keyed store. All operations take a context
// (an engine may block on I/O) and are fallible; engine errors propagate
// unchanged.
//
// Absence is not an error: Get, Delete and the find operations return a nil
// result when nothing matches.
type Store interface {
	// Insert stores a key-value pair and returns the previous value for the
	// key, or nil if there was none. The mutation need not be durable until
	// Flush, but all subsequent reads observe it.
	Insert(ctx context.Context, key, value []byte) ([]byte, error)

	// Delete removes a key and returns its previous value, or nil if the key
	// was absent.
	Delete(ctx context.Context, key []byte) ([]byte, error)

	// Get returns the value for key, or nil if the key is absent.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// FindLTE returns the entry with the greatest key less than or equal to
	// key, or nil if every key is greater.
	FindLTE(ctx context.Context, key []byte) (*Entry, error)

	// FindGTE returns the entry with the least key greater than or equal to
	// key, or nil if every key is smaller.
	FindGTE(ctx context.Context, key []byte) (*Entry, error)

	// Flush makes all prior mutations durable.
	Flush(ctx context.Context) error

	// Close releases engine resources. The store is unusable afterwards.
	Close() error
}
