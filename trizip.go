// Package trizip indexes three-dimensional points in an ordered key-value
// store through a deterministic, rank-driven binary search tree (a "3D-ish
// zip-tree") and order-homomorphic byte encodings.
//
// Trizip is built on one property: for every dimension codec, byte-wise
// lexicographic comparison of encodings agrees with the dimension's value
// order. Composite point encodings under three rotating orderings (xyz, yzx,
// zxy) inherit the property, so the store's plain byte comparator is enough
// to navigate the tree — a vertex's children are found with nothing but
// predecessor/successor queries, no stored pointers.
//
// # Core Pieces
//
//   - Order-homomorphic dimension codecs and the composite point space
//     (fixed-width big-endian, variable-width unary) — package point
//   - Commutative monoid subtree summaries (trivial, counting) — package
//     monoid
//   - The tree model: deterministic construction, invariant verifier,
//     hash-derived ranks — package tree
//   - The KV mapping: key layout, entry payloads with optional compression,
//     child discovery, bulk load — package kvtree
//   - Ordered store engines: in-memory (btree), bbolt, badger — package
//     store
//
// # Basic Usage
//
// Building a tree and loading it into a store:
//
//	import "github.com/arloliu/trizip"
//
//	space := trizip.NewUint64Space()
//	items := []trizip.Uint64Item{
//	    {Point: trizip.Uint64Point{X: 1, Y: 2, Z: 3}, Value: 100},
//	    {Point: trizip.Uint64Point{X: 4, Y: 5, Z: 6}, Value: 200},
//	}
//	for i := range items {
//	    items[i].Rank = tree.RankFor(space, items[i].Point)
//	}
//
//	tr, _ := trizip.BuildCounted(space, items)
//
//	s := store.NewMemoryStore()
//	idx, _ := trizip.NewCountedIndex(s, space)
//	_ = idx.Load(context.Background(), tr)
//
// Reading it back:
//
//	root, _ := idx.Root(ctx)
//	left, _ := idx.LeftChild(ctx, root)
//
// # Package Structure
//
// This package provides convenient top-level wrappers for the common
// uint64-dimension, counting-summary configuration. For custom dimension
// codecs, monoids, or payload codecs, use the point, monoid, tree, and
// kvtree packages directly.
package trizip

import (
	"github.com/arloliu/trizip/kvtree"
	"github.com/arloliu/trizip/monoid"
	"github.com/arloliu/trizip/point"
	"github.com/arloliu/trizip/store"
	"github.com/arloliu/trizip/tree"
)

// Uint64Point is a point with three uint64 dimensions, the recommended
// production configuration.
type Uint64Point = point.Point[uint64, uint64, uint64]

// Uint64Item is a construction input for a uint64-dimension tree carrying a
// uint64 value.
type Uint64Item = tree.Item[uint64, uint64, uint64, uint64]

// Uint64Pair is the (point, value) element type seen by summary monoids over
// uint64-dimension trees.
type Uint64Pair = tree.Pair[uint64, uint64, uint64, uint64]

// Uint64Tree is a uint64-dimension tree with counting summaries.
type Uint64Tree = tree.Tree[uint64, uint64, uint64, uint64, uint64]

// Uint64Index is a store-resident uint64-dimension tree with counting
// summaries.
type Uint64Index = kvtree.Index[uint64, uint64, uint64, uint64, uint64]

// NewUint64Space returns a point space of three fixed-width big-endian
// uint64 dimensions.
func NewUint64Space() *point.Space[uint64, uint64, uint64] {
	return point.NewSpace[uint64, uint64, uint64](
		point.Uint64Codec{}, point.Uint64Codec{}, point.Uint64Codec{})
}

// BuildCounted builds the deterministic tree for items with the counting
// monoid, so every vertex's summary is its subtree size.
//
// Points must be unique and ranks at most tree.MaxRank; violations surface
// as errs.ErrDuplicatePoint and errs.ErrRankOutOfRange.
func BuildCounted(space *point.Space[uint64, uint64, uint64], items []Uint64Item) (*Uint64Tree, error) {
	return tree.Build(space, monoid.Count[Uint64Pair]{}, items)
}

// NewCountedIndex creates a KV index for trees built by BuildCounted.
//
// Options configure payload compression, logging, and load parallelism; see
// the kvtree package.
func NewCountedIndex(s store.Store, space *point.Space[uint64, uint64, uint64], opts ...kvtree.Option) (*Uint64Index, error) {
	return kvtree.New(s, space, kvtree.Uint64Codec{}, kvtree.Uint64Codec{}, opts...)
}
