package tree

import (
	"fmt"

	"github.com/arloliu/trizip/point"
)

// Verify checks that the tree rooted at root satisfies every structural
// invariant: child rank rules, subtree separation under each vertex's
// rank-selected ordering, and count consistency.
//
// Verify walks bottom-up, propagating each subtree's minimum and maximum
// point under all three orderings, so every separation check is against the
// extreme point of the whole subtree rather than the child vertex alone.
//
// It runs against arbitrary trees, not only ones produced by Build. A
// verification failure on a Build-produced tree indicates a defect in the
// construction or in the order homomorphism of a dimension codec, never a
// recoverable user error.
func Verify[X, Y, Z, V, M any](space *point.Space[X, Y, Z], root *Node[X, Y, Z, V, M]) error {
	_, err := verifyNode(space, root)
	return err
}

var verifyOrderings = []point.Ordering{point.OrderXYZ, point.OrderYZX, point.OrderZXY}

// subtreeStats carries a verified subtree's extremes under each ordering,
// indexed by point.Ordering, plus its root rank and vertex count.
type subtreeStats[X, Y, Z any] struct {
	min   [3]point.Point[X, Y, Z]
	max   [3]point.Point[X, Y, Z]
	rank  uint8
	count int
}

func verifyNode[X, Y, Z, V, M any](
	space *point.Space[X, Y, Z],
	n *Node[X, Y, Z, V, M],
) (*subtreeStats[X, Y, Z], error) {
	if n == nil {
		// The empty tree is valid; nothing to check.
		return nil, nil
	}

	left, err := verifyNode(space, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := verifyNode(space, n.Right)
	if err != nil {
		return nil, err
	}

	if left != nil && left.rank >= n.Rank {
		return nil, fmt.Errorf("tree: left child rank %d not below parent rank %d", left.rank, n.Rank)
	}
	if right != nil && right.rank > n.Rank {
		return nil, fmt.Errorf("tree: right child rank %d above parent rank %d", right.rank, n.Rank)
	}

	ord := point.OrderForRank(n.Rank)
	if left != nil && space.Compare(ord, left.max[ord], n.Point) >= 0 {
		return nil, fmt.Errorf("tree: left subtree not strictly below parent in %s order at rank %d", ord, n.Rank)
	}
	if right != nil && space.Compare(ord, right.min[ord], n.Point) <= 0 {
		return nil, fmt.Errorf("tree: right subtree not strictly above parent in %s order at rank %d", ord, n.Rank)
	}

	count := 1
	if left != nil {
		count += left.count
	}
	if right != nil {
		count += right.count
	}
	if n.Count != count {
		return nil, fmt.Errorf("tree: vertex count %d, subtree holds %d vertices", n.Count, count)
	}

	stats := &subtreeStats[X, Y, Z]{rank: n.Rank, count: count}
	for _, o := range verifyOrderings {
		mn, mx := n.Point, n.Point
		for _, child := range []*subtreeStats[X, Y, Z]{left, right} {
			if child == nil {
				continue
			}
			if space.Compare(o, child.min[o], mn) < 0 {
				mn = child.min[o]
			}
			if space.Compare(o, child.max[o], mx) > 0 {
				mx = child.max[o]
			}
		}
		stats.min[o] = mn
		stats.max[o] = mx
	}

	return stats, nil
}
