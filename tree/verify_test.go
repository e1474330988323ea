package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type u8Node = Node[uint8, uint8, uint8, int, uint64]

func leaf(x, y, z, rank uint8) *u8Node {
	return &u8Node{
		Point:   u8Point{X: x, Y: y, Z: z},
		Rank:    rank,
		Count:   1,
		Summary: 1,
	}
}

func withChildren(n *u8Node, left, right *u8Node) *u8Node {
	n.Left = left
	n.Right = right
	n.Count = 1
	n.Summary = 1
	for _, c := range []*u8Node{left, right} {
		if c != nil {
			n.Count += c.Count
			n.Summary += c.Summary
		}
	}

	return n
}

func TestVerify_AcceptsLegalTree(t *testing.T) {
	// Rank 2 root separates by xyz; left rank 1 separates by yzx.
	root := withChildren(leaf(5, 5, 5, 2),
		withChildren(leaf(3, 3, 3, 1), leaf(2, 1, 1, 0), leaf(4, 9, 9, 1)),
		leaf(9, 0, 0, 2),
	)
	require.NoError(t, Verify(u8Space(), root))
}

func TestVerify_RejectsLeftChildRankEqualToParent(t *testing.T) {
	root := withChildren(leaf(5, 5, 5, 2), leaf(3, 3, 3, 2), nil)
	err := Verify(u8Space(), root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "left child rank")
}

func TestVerify_RejectsRightChildRankAboveParent(t *testing.T) {
	root := withChildren(leaf(5, 5, 5, 2), nil, leaf(9, 9, 9, 3))
	err := Verify(u8Space(), root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "right child rank")
}

func TestVerify_RejectsMisplacedChild(t *testing.T) {
	// Rank 2 separates by xyz; x=9 on the left violates separation.
	root := withChildren(leaf(5, 5, 5, 2), leaf(9, 0, 0, 1), nil)
	err := Verify(u8Space(), root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "left subtree")
}

func TestVerify_RejectsDeepSeparationViolation(t *testing.T) {
	// The grandchild (6,0,0) is legally placed relative to its rank-1 parent
	// (yzx order) but exceeds the rank-2 root (5,5,5) in xyz order while
	// sitting in the root's left subtree. Only min/max propagation through
	// the intermediate vertex catches this.
	grandchild := leaf(6, 0, 0, 0)
	left := withChildren(leaf(3, 0, 0, 1), nil, grandchild)
	root := withChildren(leaf(5, 5, 5, 2), left, nil)

	err := Verify(u8Space(), root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "left subtree")
}

func TestVerify_RejectsWrongCount(t *testing.T) {
	root := withChildren(leaf(5, 5, 5, 2), leaf(3, 3, 3, 1), nil)
	root.Count = 7
	err := Verify(u8Space(), root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "count")
}

func TestVerify_RejectsDuplicatePointInSubtree(t *testing.T) {
	// Same point as the root placed as a child: separation cannot be strict.
	root := withChildren(leaf(5, 5, 5, 2), leaf(5, 5, 5, 1), nil)
	require.Error(t, Verify(u8Space(), root))
}

func TestVerify_EmptyTree(t *testing.T) {
	require.NoError(t, Verify[uint8, uint8, uint8, int, uint64](u8Space(), nil))
}
