package kvtree

import (
	"github.com/arloliu/trizip/point"
)

// NoChild is the child-rank sentinel stored in a vertex entry when the
// corresponding child is absent. It is outside the valid rank range
// (tree.MaxRank == 254), so no vertex key ever begins with it.
const NoChild uint8 = 255

// rootPointerKey is the reserved key whose value is the key of the root
// vertex. Its leading byte equals NoChild, so it sorts after every vertex
// key and never collides with one.
var rootPointerKey = []byte{NoChild}

// AppendKey appends the store key for a vertex of the given rank and point:
// the rank byte followed by the point's encoding under the ordering selected
// by that rank. Within one rank byte, keys order exactly as the rank-selected
// point ordering does, which is what makes predecessor/successor child
// discovery work.
func AppendKey[X, Y, Z any](dst []byte, space *point.Space[X, Y, Z], rank uint8, p point.Point[X, Y, Z]) []byte {
	dst = append(dst, rank)

	return space.AppendEncode(point.OrderForRank(rank), dst, p)
}
