package store

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	bbolt "go.etcd.io/bbolt"
)

var boltBucket = []byte("trizip")

// BoltStore is a Store backed by a single-file bbolt database. All entries
// live in one bucket; bbolt keeps bucket keys in lexicographic order, which
// gives predecessor/successor lookups directly through a cursor.
//
// The database is opened with NoSync set: individual mutations are not
// synced, and Flush performs the fsync. This matches the Store contract's
// delayed-durability model.
type BoltStore struct {
	db *bbolt.DB
}

var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens (creating if needed) a bbolt database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bbolt database %s: %w", path, err)
	}
	db.NoSync = true

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Insert(ctx context.Context, key, value []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var old []byte
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(boltBucket)
		if prev := b.Get(key); prev != nil {
			old = slices.Clone(prev)
		}

		return b.Put(key, value)
	})
	if err != nil {
		return nil, err
	}

	return old, nil
}

func (s *BoltStore) Delete(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var old []byte
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(boltBucket)
		if prev := b.Get(key); prev != nil {
			old = slices.Clone(prev)
		}

		return b.Delete(key)
	})
	if err != nil {
		return nil, err
	}

	return old, nil
}

func (s *BoltStore) Get(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(boltBucket).Get(key); v != nil {
			value = slices.Clone(v)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *BoltStore) FindLTE(ctx context.Context, key []byte) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var found *Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(boltBucket).Cursor()

		// Seek positions at the first key >= target, so step back unless it
		// landed exactly on the target.
		k, v := c.Seek(key)
		if k == nil {
			k, v = c.Last()
		} else if !bytes.Equal(k, key) {
			k, v = c.Prev()
		}
		if k != nil {
			found = &Entry{Key: slices.Clone(k), Value: slices.Clone(v)}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

func (s *BoltStore) FindGTE(ctx context.Context, key []byte) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var found *Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(boltBucket).Cursor()
		if k, v := c.Seek(key); k != nil {
			found = &Entry{Key: slices.Clone(k), Value: slices.Clone(v)}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

// Flush fsyncs the database file.
func (s *BoltStore) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Sync()
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
