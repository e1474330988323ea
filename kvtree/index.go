// Package kvtree maps a built 3D-ish zip-tree onto entries of an ordered
// key-value store and rediscovers parent/child structure from nothing but
// key comparisons.
//
// Each vertex becomes one entry. The key is the vertex's rank byte followed
// by its point encoded under the rank-selected ordering, so that within one
// rank all keys sort exactly as that ordering sorts points. The value holds
// the rank, both child ranks, the user value, and the subtree summary, with
// the payload section optionally compressed.
//
// Child discovery needs no stored pointers: given a parent's point and a
// child's rank cr, the left child is the greatest key strictly below
// (cr, enc(parent)) and the right child is the least key strictly above it.
// The tree's separation invariants guarantee the nearest key on the correct
// side is the child itself, never a cousin.
package kvtree

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/arloliu/trizip/compress"
	"github.com/arloliu/trizip/errs"
	"github.com/arloliu/trizip/format"
	"github.com/arloliu/trizip/internal/options"
	"github.com/arloliu/trizip/point"
	"github.com/arloliu/trizip/store"
)

// Vertex is one tree vertex as read back from the store. Child vertices are
// not embedded; resolve them with Index.LeftChild and Index.RightChild.
type Vertex[X, Y, Z, V, M any] struct {
	Point   point.Point[X, Y, Z]
	Rank    uint8
	Value   V
	Count   uint64
	Summary M

	// LeftRank and RightRank are the child ranks recorded in the entry,
	// NoChild when the corresponding child is absent.
	LeftRank  uint8
	RightRank uint8
}

// HasLeft reports whether the vertex has a left child.
func (v *Vertex[X, Y, Z, V, M]) HasLeft() bool { return v.LeftRank != NoChild }

// HasRight reports whether the vertex has a right child.
func (v *Vertex[X, Y, Z, V, M]) HasRight() bool { return v.RightRank != NoChild }

type config struct {
	compression format.CompressionType
	logger      zerolog.Logger
	parallelism int
}

// Option configures an Index.
type Option = options.Option[*config]

// WithCompression selects the compression codec applied to each vertex
// entry's payload section. The default is CompressionNone.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *config) error {
		if !ct.Valid() {
			return fmt.Errorf("compression type %d: %w", ct, errs.ErrInvalidCompression)
		}
		c.compression = ct

		return nil
	})
}

// WithLogger sets the logger used by bulk operations. The default is
// zerolog.Nop().
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(c *config) {
		c.logger = logger
	})
}

// WithParallelism bounds the number of goroutines encoding entries during
// Load. The default is runtime.GOMAXPROCS(0).
func WithParallelism(n int) Option {
	return options.New(func(c *config) error {
		if n < 1 {
			return fmt.Errorf("parallelism must be at least 1, got %d", n)
		}
		c.parallelism = n

		return nil
	})
}

// Index is a 3D-ish zip-tree resident in an ordered key-value store.
//
// An Index does not own its Store: the caller opens and closes the engine.
// All methods are safe for concurrent readers; Load and Delete must not run
// concurrently with anything else on the same Index.
type Index[X, Y, Z, V, M any] struct {
	store        store.Store
	space        *point.Space[X, Y, Z]
	valueCodec   PayloadCodec[V]
	summaryCodec PayloadCodec[M]

	compression format.CompressionType
	compressor  compress.Codec
	logger      zerolog.Logger
	parallelism int
}

// New creates an Index over the given store and point space. The value and
// summary codecs must match the tree type the index will hold.
func New[X, Y, Z, V, M any](
	s store.Store,
	space *point.Space[X, Y, Z],
	valueCodec PayloadCodec[V],
	summaryCodec PayloadCodec[M],
	opts ...Option,
) (*Index[X, Y, Z, V, M], error) {
	cfg := &config{
		compression: format.CompressionNone,
		logger:      zerolog.Nop(),
		parallelism: runtime.GOMAXPROCS(0),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	compressor, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	return &Index[X, Y, Z, V, M]{
		store:        s,
		space:        space,
		valueCodec:   valueCodec,
		summaryCodec: summaryCodec,
		compression:  cfg.compression,
		compressor:   compressor,
		logger:       cfg.logger,
		parallelism:  cfg.parallelism,
	}, nil
}

// Root returns the root vertex, or nil if the index holds no tree.
func (idx *Index[X, Y, Z, V, M]) Root(ctx context.Context) (*Vertex[X, Y, Z, V, M], error) {
	rootKey, err := idx.store.Get(ctx, rootPointerKey)
	if err != nil {
		return nil, err
	}
	if rootKey == nil {
		return nil, nil
	}

	value, err := idx.store.Get(ctx, rootKey)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, fmt.Errorf("root pointer references missing vertex: %w", errs.ErrCorruptIndex)
	}

	return idx.decodeEntry(rootKey, value)
}

// Vertex looks up the vertex stored under (rank, p), or nil if absent.
func (idx *Index[X, Y, Z, V, M]) Vertex(ctx context.Context, rank uint8, p point.Point[X, Y, Z]) (*Vertex[X, Y, Z, V, M], error) {
	key := AppendKey(nil, idx.space, rank, p)
	value, err := idx.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}

	return idx.decodeEntry(key, value)
}

// LeftChild resolves v's left child via a predecessor query, or returns nil
// if v has none.
//
// The probe key is the parent's point encoded at the child's rank. That key
// cannot itself exist (left child ranks are strictly below the parent's, and
// points are unique), so the greatest key at or below it is the strict
// predecessor: the left child.
func (idx *Index[X, Y, Z, V, M]) LeftChild(ctx context.Context, v *Vertex[X, Y, Z, V, M]) (*Vertex[X, Y, Z, V, M], error) {
	if !v.HasLeft() {
		return nil, nil
	}

	probe := AppendKey(nil, idx.space, v.LeftRank, v.Point)
	entry, err := idx.store.FindLTE(ctx, probe)
	if err != nil {
		return nil, err
	}
	if entry == nil || bytes.Equal(entry.Key, probe) || entry.Key[0] != v.LeftRank {
		return nil, fmt.Errorf("left child of rank-%d vertex not found at rank %d: %w",
			v.Rank, v.LeftRank, errs.ErrCorruptIndex)
	}

	return idx.decodeEntry(entry.Key, entry.Value)
}

// RightChild resolves v's right child via a successor query, or returns nil
// if v has none.
//
// Appending a zero byte to the probe key turns the store's non-strict
// successor query into a strict one: nothing sorts between a key and that
// key plus 0x00.
func (idx *Index[X, Y, Z, V, M]) RightChild(ctx context.Context, v *Vertex[X, Y, Z, V, M]) (*Vertex[X, Y, Z, V, M], error) {
	if !v.HasRight() {
		return nil, nil
	}

	probe := AppendKey(nil, idx.space, v.RightRank, v.Point)
	probe = append(probe, 0x00)
	entry, err := idx.store.FindGTE(ctx, probe)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.Key[0] != v.RightRank {
		return nil, fmt.Errorf("right child of rank-%d vertex not found at rank %d: %w",
			v.Rank, v.RightRank, errs.ErrCorruptIndex)
	}

	return idx.decodeEntry(entry.Key, entry.Value)
}
