package tree

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/trizip/errs"
	"github.com/arloliu/trizip/monoid"
	"github.com/arloliu/trizip/point"
)

// Build constructs the unique 3D-ish zip-tree for the given items.
//
// The items are sorted by descending rank, breaking ties within a rank by
// ascending order under that rank's selected ordering, and then inserted
// sequentially with plain rank-agnostic BST descent. The sort order is
// exactly what makes rebalancing unnecessary: a later item can never need to
// sit above an earlier one. The result is a deterministic function of the
// item multiset; any permutation of items yields a structurally identical
// tree.
//
// Points must be unique. A duplicate point is a caller error and yields
// errs.ErrDuplicatePoint; it is never silently tolerated. Ranks above
// MaxRank yield errs.ErrRankOutOfRange.
func Build[X, Y, Z, V, M any](
	space *point.Space[X, Y, Z],
	m monoid.Monoid[Pair[X, Y, Z, V], M],
	items []Item[X, Y, Z, V],
) (*Tree[X, Y, Z, V, M], error) {
	t := &Tree[X, Y, Z, V, M]{space: space, monoid: m}

	for _, it := range items {
		if it.Rank > MaxRank {
			return nil, fmt.Errorf("rank %d exceeds %d: %w", it.Rank, MaxRank, errs.ErrRankOutOfRange)
		}
	}

	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b Item[X, Y, Z, V]) int {
		if a.Rank != b.Rank {
			return cmp.Compare(b.Rank, a.Rank)
		}

		return space.CompareAtRank(a.Rank, a.Point, b.Point)
	})

	for i, it := range sorted {
		// Equal-rank duplicates sort adjacent; cross-rank duplicates are
		// caught by the equal comparison during descent.
		if i > 0 && sorted[i-1].Rank == it.Rank &&
			space.CompareAtRank(it.Rank, sorted[i-1].Point, it.Point) == 0 {
			return nil, fmt.Errorf("build: %w", errs.ErrDuplicatePoint)
		}

		if err := t.insert(it); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// insert adds an item as a new leaf, updating the count and summary of every
// ancestor. The sorted insertion sequence guarantees the leaf position is the
// item's final position.
func (t *Tree[X, Y, Z, V, M]) insert(it Item[X, Y, Z, V]) error {
	lifted := t.monoid.Lift(Pair[X, Y, Z, V]{Point: it.Point, Value: it.Value})

	return t.insertAt(&t.root, it, lifted)
}

func (t *Tree[X, Y, Z, V, M]) insertAt(slot **Node[X, Y, Z, V, M], it Item[X, Y, Z, V], lifted M) error {
	node := *slot
	if node == nil {
		*slot = &Node[X, Y, Z, V, M]{
			Point:   it.Point,
			Rank:    it.Rank,
			Value:   it.Value,
			Count:   1,
			Summary: lifted,
		}

		return nil
	}

	var child **Node[X, Y, Z, V, M]
	switch c := t.space.CompareAtRank(node.Rank, it.Point, node.Point); {
	case c == 0:
		return fmt.Errorf("insert at rank %d: %w", node.Rank, errs.ErrDuplicatePoint)
	case c < 0:
		child = &node.Left
	default:
		child = &node.Right
	}

	if err := t.insertAt(child, it, lifted); err != nil {
		return err
	}

	node.Count++
	node.Summary = t.monoid.Combine(node.Summary, lifted)

	return nil
}
