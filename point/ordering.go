package point

// Ordering selects one of the three total orders over points. Each ordering
// compares the three dimensions lexicographically in a cyclic rotation.
type Ordering uint8

const (
	// OrderXYZ compares x first, then y, then z.
	OrderXYZ Ordering = iota
	// OrderYZX compares y first, then z, then x.
	OrderYZX
	// OrderZXY compares z first, then x, then y.
	OrderZXY
)

func (o Ordering) String() string {
	switch o {
	case OrderXYZ:
		return "xyz"
	case OrderYZX:
		return "yzx"
	case OrderZXY:
		return "zxy"
	default:
		return "invalid"
	}
}

// OrderForRank returns the ordering a tree vertex of the given rank uses to
// separate its subtrees: remainder 2 selects xyz, remainder 1 selects yzx,
// remainder 0 selects zxy.
func OrderForRank(rank uint8) Ordering {
	switch rank % 3 {
	case 2:
		return OrderXYZ
	case 1:
		return OrderYZX
	default:
		return OrderZXY
	}
}
