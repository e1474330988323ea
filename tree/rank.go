package tree

import (
	"math/bits"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/trizip/point"
)

// RankFor derives a rank for p from the xxHash64 of its xyz encoding.
//
// The rank is the number of trailing zero bits of the hash, which follows a
// geometric distribution with parameter 1/2 — the standard zip-tree choice
// for probabilistic balance. The same point always receives the same rank,
// so independently built trees over overlapping point sets agree on vertex
// placement.
//
// TrailingZeros64 returns at most 64 (for a zero hash), well below MaxRank.
func RankFor[X, Y, Z any](space *point.Space[X, Y, Z], p point.Point[X, Y, Z]) uint8 {
	buf := make([]byte, space.MaxLen(point.OrderXYZ))
	n := space.Encode(point.OrderXYZ, p, buf)

	return uint8(bits.TrailingZeros64(xxhash.Sum64(buf[:n])))
}
