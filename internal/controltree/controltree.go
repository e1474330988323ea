// Package controltree holds a deliberately naive reference implementation of
// the 3D-ish zip-tree, used as a testing oracle.
//
// It re-derives the tree from first principles with its own sorting and
// recursive insertion, sharing no code with the production tree package
// beyond the point and monoid contracts. It must only ever be imported from
// test files; production code paths never touch it.
package controltree

import (
	"slices"

	"github.com/arloliu/trizip/monoid"
	"github.com/arloliu/trizip/point"
)

// Entry is one input to the control tree: a point, its value, and its rank.
type Entry[X, Y, Z, V any] struct {
	Point point.Point[X, Y, Z]
	Value V
	Rank  uint8
}

// Node is a vertex of the control tree. A nil *Node is the empty tree.
type Node[X, Y, Z, V, M any] struct {
	Point   point.Point[X, Y, Z]
	Rank    uint8
	Value   V
	Left    *Node[X, Y, Z, V, M]
	Right   *Node[X, Y, Z, V, M]
	Count   int
	Summary M
}

// From builds a control tree from entries. In case of duplicate points it
// silently keeps the first occurrence, mirroring the historical reference
// behavior; callers that care must not submit duplicates.
func From[X, Y, Z, V, M any](
	space *point.Space[X, Y, Z],
	m monoid.Monoid[Pair[X, Y, Z, V], M],
	entries []Entry[X, Y, Z, V],
) *Node[X, Y, Z, V, M] {
	unique := make([]Entry[X, Y, Z, V], 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		key := string(space.AppendEncode(point.OrderXYZ, nil, e.Point))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, e)
	}

	// Descending rank; ascending under the rank-selected ordering within a
	// rank group.
	slices.SortFunc(unique, func(a, b Entry[X, Y, Z, V]) int {
		if a.Rank != b.Rank {
			if a.Rank > b.Rank {
				return -1
			}

			return 1
		}

		return space.CompareAtRank(a.Rank, a.Point, b.Point)
	})

	var root *Node[X, Y, Z, V, M]
	for _, e := range unique {
		root = insert(space, m, root, e)
	}

	return root
}

// Pair mirrors the element type the monoid lifts.
type Pair[X, Y, Z, V any] struct {
	Point point.Point[X, Y, Z]
	Value V
}

func insert[X, Y, Z, V, M any](
	space *point.Space[X, Y, Z],
	m monoid.Monoid[Pair[X, Y, Z, V], M],
	n *Node[X, Y, Z, V, M],
	e Entry[X, Y, Z, V],
) *Node[X, Y, Z, V, M] {
	lifted := m.Lift(Pair[X, Y, Z, V]{Point: e.Point, Value: e.Value})

	if n == nil {
		return &Node[X, Y, Z, V, M]{
			Point:   e.Point,
			Rank:    e.Rank,
			Value:   e.Value,
			Count:   1,
			Summary: lifted,
		}
	}

	switch c := space.CompareAtRank(n.Rank, e.Point, n.Point); {
	case c == 0:
		panic("controltree: duplicate point inserted")
	case c < 0:
		n.Left = insert(space, m, n.Left, e)
	default:
		n.Right = insert(space, m, n.Right, e)
	}

	n.Count++
	n.Summary = m.Combine(n.Summary, lifted)

	return n
}
