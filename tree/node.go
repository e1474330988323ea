// Package tree implements the 3D-ish zip-tree: a binary search tree over
// ranked three-dimensional points whose separating order at each vertex is
// selected by the vertex's rank rather than its depth.
//
// For a vertex of rank r:
//
//   - the left child's rank is strictly less than r, the right child's rank
//     is less than or equal to r (zip-tree rank rules), and
//   - the subtrees are separated by the point ordering selected by r mod 3
//     (xyz for remainder 2, yzx for remainder 1, zxy for remainder 0): every
//     point in the left subtree is strictly less than the vertex's point in
//     that ordering, every point in the right subtree strictly greater.
//
// These invariants determine the tree uniquely for a given assignment of
// ranks to points, so the shape is a pure function of the (point, value,
// rank) multiset: Build produces bit-identical trees regardless of input
// order. Each vertex additionally carries its subtree element count and a
// monoid summary over the subtree's (point, value) pairs.
package tree

import (
	"github.com/arloliu/trizip/monoid"
	"github.com/arloliu/trizip/point"
)

// MaxRank is the largest rank a tree vertex may carry. Rank 255 is reserved
// as the "no child" sentinel in the KV entry layout.
const MaxRank uint8 = 254

// Pair is a (point, value) element as seen by the summary monoid.
type Pair[X, Y, Z, V any] struct {
	Point point.Point[X, Y, Z]
	Value V
}

// Item is one construction input: a point, its mapped value, and its
// caller-assigned rank.
type Item[X, Y, Z, V any] struct {
	Point point.Point[X, Y, Z]
	Value V
	Rank  uint8
}

// Node is one tree vertex. A node exclusively owns its two subtrees; there
// is no sharing between subtrees and no cycle.
//
// Fields are exported so that verifiers and tests can inspect and construct
// arbitrary trees, legal or not. Production code builds nodes only through
// Build.
type Node[X, Y, Z, V, M any] struct {
	Point point.Point[X, Y, Z]
	Rank  uint8
	Value V

	Left  *Node[X, Y, Z, V, M]
	Right *Node[X, Y, Z, V, M]

	// Count is the number of vertices in the subtree rooted here, itself
	// included.
	Count int

	// Summary is the monoid combination of the lifted (point, value) pairs
	// in the subtree rooted here.
	Summary M
}

// Tree is a 3D-ish zip-tree built once from a finite item set. It is
// immutable after construction.
type Tree[X, Y, Z, V, M any] struct {
	space  *point.Space[X, Y, Z]
	monoid monoid.Monoid[Pair[X, Y, Z, V], M]
	root   *Node[X, Y, Z, V, M]
}

// Root returns the root vertex, or nil for the empty tree.
func (t *Tree[X, Y, Z, V, M]) Root() *Node[X, Y, Z, V, M] {
	return t.root
}

// Space returns the point space the tree orders its vertices by.
func (t *Tree[X, Y, Z, V, M]) Space() *point.Space[X, Y, Z] {
	return t.space
}

// Count returns the total number of vertices.
func (t *Tree[X, Y, Z, V, M]) Count() int {
	if t.root == nil {
		return 0
	}

	return t.root.Count
}

// Summary returns the monoid summary over the whole tree, or the neutral
// element for the empty tree.
func (t *Tree[X, Y, Z, V, M]) Summary() M {
	if t.root == nil {
		return t.monoid.Neutral()
	}

	return t.root.Summary
}

// Walk visits every vertex in pre-order, stopping early if fn returns false.
func (t *Tree[X, Y, Z, V, M]) Walk(fn func(*Node[X, Y, Z, V, M]) bool) {
	walkNode(t.root, fn)
}

func walkNode[X, Y, Z, V, M any](n *Node[X, Y, Z, V, M], fn func(*Node[X, Y, Z, V, M]) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	if !walkNode(n.Left, fn) {
		return false
	}

	return walkNode(n.Right, fn)
}
