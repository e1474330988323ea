package point

// Point is an immutable point in three-dimensional space.
//
// A point has no intrinsic single order. The three total orders a Space
// defines over points (xyz, yzx, zxy) each compare one permutation of the
// fields with the remaining two as tie-breakers in rotated order.
type Point[X, Y, Z any] struct {
	X X
	Y Y
	Z Z
}
