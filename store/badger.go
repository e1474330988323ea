package store

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// BadgerStore is a Store backed by a badger LSM database. It trades bbolt's
// single-file simplicity for better write throughput on large bulk loads.
type BadgerStore struct {
	db *badger.DB
}

var _ Store = (*BadgerStore)(nil)

// OpenBadgerStore opens (creating if needed) a badger database in dir.
// Badger's own log output is routed through the given zerolog logger; pass
// zerolog.Nop() to silence it.
func OpenBadgerStore(dir string, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).
		WithSyncWrites(false).
		WithLogger(badgerLogger{log: logger})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database %s: %w", dir, err)
	}

	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Insert(ctx context.Context, key, value []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var old []byte
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case err == nil:
			if old, err = item.ValueCopy(nil); err != nil {
				return err
			}
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		return txn.Set(key, value)
	})
	if err != nil {
		return nil, err
	}

	return old, nil
}

func (s *BadgerStore) Delete(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var old []byte
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			return nil
		case err != nil:
			return err
		}
		if old, err = item.ValueCopy(nil); err != nil {
			return err
		}

		return txn.Delete(key)
	})
	if err != nil {
		return nil, err
	}

	return old, nil
}

func (s *BadgerStore) Get(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			return nil
		case err != nil:
			return err
		}
		value, err = item.ValueCopy(nil)

		return err
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *BadgerStore) FindLTE(ctx context.Context, key []byte) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var found *Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// In reverse mode Seek positions at the greatest key <= target.
		it.Seek(key)
		if !it.Valid() {
			return nil
		}

		return copyItem(it.Item(), &found)
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

func (s *BadgerStore) FindGTE(ctx context.Context, key []byte) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var found *Entry
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		it.Seek(key)
		if !it.Valid() {
			return nil
		}

		return copyItem(it.Item(), &found)
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

func copyItem(item *badger.Item, dst **Entry) error {
	value, err := item.ValueCopy(nil)
	if err != nil {
		return err
	}
	*dst = &Entry{Key: item.KeyCopy(nil), Value: value}

	return nil
}

// Flush syncs badger's value log and memtables to disk.
func (s *BadgerStore) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Sync()
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger adapts zerolog to badger's Logger interface.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any)   { l.log.Error().Msgf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...any) { l.log.Warn().Msgf(format, args...) }
func (l badgerLogger) Infof(format string, args ...any)    { l.log.Info().Msgf(format, args...) }
func (l badgerLogger) Debugf(format string, args ...any)   { l.log.Debug().Msgf(format, args...) }
