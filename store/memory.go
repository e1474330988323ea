package store

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/google/btree"
)

// btreeDegree balances node fan-out against copy cost for small byte-string
// entries.
const btreeDegree = 32

// MemoryStore is an in-memory Store backed by a google/btree B-tree. It is
// safe for concurrent use and is the engine of choice for tests and for
// indexes that fit in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[Entry]
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tree: btree.NewG(btreeDegree, func(a, b Entry) bool {
			return bytes.Compare(a.Key, b.Key) < 0
		}),
	}
}

// Insert stores a copy of the key-value pair and returns the previous value,
// if any.
func (s *MemoryStore) Insert(ctx context.Context, key, value []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, had := s.tree.ReplaceOrInsert(Entry{Key: slices.Clone(key), Value: slices.Clone(value)})
	if !had {
		return nil, nil
	}

	return old.Value, nil
}

// Delete removes key and returns its previous value, if any.
func (s *MemoryStore) Delete(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, had := s.tree.Delete(Entry{Key: key})
	if !had {
		return nil, nil
	}

	return old.Value, nil
}

// Get returns the value for key, or nil if absent.
func (s *MemoryStore) Get(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, had := s.tree.Get(Entry{Key: key})
	if !had {
		return nil, nil
	}

	return slices.Clone(e.Value), nil
}

// FindLTE returns the entry with the greatest key <= key, or nil.
func (s *MemoryStore) FindLTE(ctx context.Context, key []byte) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *Entry
	s.tree.DescendLessOrEqual(Entry{Key: key}, func(e Entry) bool {
		found = &Entry{Key: slices.Clone(e.Key), Value: slices.Clone(e.Value)}
		return false
	})

	return found, nil
}

// FindGTE returns the entry with the least key >= key, or nil.
func (s *MemoryStore) FindGTE(ctx context.Context, key []byte) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *Entry
	s.tree.AscendGreaterOrEqual(Entry{Key: key}, func(e Entry) bool {
		found = &Entry{Key: slices.Clone(e.Key), Value: slices.Clone(e.Value)}
		return false
	})

	return found, nil
}

// Flush is a no-op: the store is memory-resident.
func (s *MemoryStore) Flush(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

// Len returns the number of entries, mainly for tests.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tree.Len()
}
