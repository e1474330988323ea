package point

import (
	"fmt"
	"slices"

	"github.com/arloliu/trizip/errs"
)

// delimiterLen is the length of the 0x00 0x00 field delimiter that follows a
// variable-width field inside a composite encoding. The delimiter is
// unambiguous because variable-width dimension encodings never contain two
// consecutive zero bytes.
const delimiterLen = 2

// Space combines three dimension codecs into composite, order-homomorphic
// point encodings under the three orderings.
//
// A Space is immutable after construction and safe for concurrent use as long
// as its codecs are.
type Space[X, Y, Z any] struct {
	x Codec[X]
	y Codec[Y]
	z Codec[Z]

	maxLen     [3]int
	fixedWidth bool
}

// NewSpace creates a Space from one codec per dimension.
func NewSpace[X, Y, Z any](x Codec[X], y Codec[Y], z Codec[Z]) *Space[X, Y, Z] {
	s := &Space[X, Y, Z]{
		x:          x,
		y:          y,
		z:          z,
		fixedWidth: x.FixedWidth() && y.FixedWidth() && z.FixedWidth(),
	}

	xLen, xPad := fieldWidth(x)
	yLen, yPad := fieldWidth(y)
	zLen, zPad := fieldWidth(z)

	// The last field of an ordering never carries a delimiter.
	s.maxLen[OrderXYZ] = xLen + xPad + yLen + yPad + zLen
	s.maxLen[OrderYZX] = yLen + yPad + zLen + zPad + xLen
	s.maxLen[OrderZXY] = zLen + zPad + xLen + xPad + yLen

	return s
}

func fieldWidth[D any](c Codec[D]) (maxLen, pad int) {
	maxLen = c.MaxLen()
	if !c.FixedWidth() {
		pad = delimiterLen
	}

	return maxLen, pad
}

// MaxLen returns the maximum composite encoding length under the given
// ordering, including delimiters.
func (s *Space[X, Y, Z]) MaxLen(o Ordering) int {
	return s.maxLen[o]
}

// FixedWidth reports whether all three dimensions are fixed-width, in which
// case every composite encoding occupies exactly MaxLen bytes.
func (s *Space[X, Y, Z]) FixedWidth() bool {
	return s.fixedWidth
}

// Encode writes the composite encoding of p under ordering o into buf and
// returns the number of bytes written. Panics if buf is shorter than the
// encoding requires; size buf with MaxLen(o).
func (s *Space[X, Y, Z]) Encode(o Ordering, p Point[X, Y, Z], buf []byte) int {
	n := 0
	switch o {
	case OrderXYZ:
		n += encodeField(s.x, p.X, buf[n:], true)
		n += encodeField(s.y, p.Y, buf[n:], true)
		n += encodeField(s.z, p.Z, buf[n:], false)
	case OrderYZX:
		n += encodeField(s.y, p.Y, buf[n:], true)
		n += encodeField(s.z, p.Z, buf[n:], true)
		n += encodeField(s.x, p.X, buf[n:], false)
	case OrderZXY:
		n += encodeField(s.z, p.Z, buf[n:], true)
		n += encodeField(s.x, p.X, buf[n:], true)
		n += encodeField(s.y, p.Y, buf[n:], false)
	default:
		panic(fmt.Sprintf("point: invalid ordering %d", o))
	}

	return n
}

// AppendEncode appends the composite encoding of p under ordering o to dst
// and returns the extended slice.
func (s *Space[X, Y, Z]) AppendEncode(o Ordering, dst []byte, p Point[X, Y, Z]) []byte {
	start := len(dst)
	dst = slices.Grow(dst, s.maxLen[o])
	n := s.Encode(o, p, dst[start:start+s.maxLen[o]])

	return dst[:start+n]
}

// Decode parses a composite encoding under ordering o from the start of buf
// and returns the point and the number of bytes consumed.
func (s *Space[X, Y, Z]) Decode(o Ordering, buf []byte) (Point[X, Y, Z], int, error) {
	var (
		p   Point[X, Y, Z]
		n   int
		m   int
		err error
	)

	switch o {
	case OrderXYZ:
		if p.X, m, err = decodeField(s.x, buf[n:], true); err == nil {
			n += m
			if p.Y, m, err = decodeField(s.y, buf[n:], true); err == nil {
				n += m
				p.Z, m, err = decodeField(s.z, buf[n:], false)
				n += m
			}
		}
	case OrderYZX:
		if p.Y, m, err = decodeField(s.y, buf[n:], true); err == nil {
			n += m
			if p.Z, m, err = decodeField(s.z, buf[n:], true); err == nil {
				n += m
				p.X, m, err = decodeField(s.x, buf[n:], false)
				n += m
			}
		}
	case OrderZXY:
		if p.Z, m, err = decodeField(s.z, buf[n:], true); err == nil {
			n += m
			if p.X, m, err = decodeField(s.x, buf[n:], true); err == nil {
				n += m
				p.Y, m, err = decodeField(s.y, buf[n:], false)
				n += m
			}
		}
	default:
		panic(fmt.Sprintf("point: invalid ordering %d", o))
	}

	if err != nil {
		return Point[X, Y, Z]{}, 0, fmt.Errorf("decode %s point: %w", o, err)
	}

	return p, n, nil
}

// Compare compares two points under ordering o, returning -1, 0, or 1.
//
// The homomorphism law ties Compare to Encode: for every pair of points and
// every ordering, Compare agrees with bytes.Compare of the two encodings.
func (s *Space[X, Y, Z]) Compare(o Ordering, a, b Point[X, Y, Z]) int {
	switch o {
	case OrderXYZ:
		if c := s.x.Compare(a.X, b.X); c != 0 {
			return c
		}
		if c := s.y.Compare(a.Y, b.Y); c != 0 {
			return c
		}

		return s.z.Compare(a.Z, b.Z)
	case OrderYZX:
		if c := s.y.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		if c := s.z.Compare(a.Z, b.Z); c != 0 {
			return c
		}

		return s.x.Compare(a.X, b.X)
	case OrderZXY:
		if c := s.z.Compare(a.Z, b.Z); c != 0 {
			return c
		}
		if c := s.x.Compare(a.X, b.X); c != 0 {
			return c
		}

		return s.y.Compare(a.Y, b.Y)
	default:
		panic(fmt.Sprintf("point: invalid ordering %d", o))
	}
}

// CompareAtRank compares two points under the ordering selected by rank.
func (s *Space[X, Y, Z]) CompareAtRank(rank uint8, a, b Point[X, Y, Z]) int {
	return s.Compare(OrderForRank(rank), a, b)
}

// encodeField writes one field's encoding, followed by the delimiter when the
// field is variable-width and not the last field of the ordering.
func encodeField[D any](c Codec[D], v D, buf []byte, delimited bool) int {
	n := c.Encode(v, buf)
	if delimited && !c.FixedWidth() {
		if len(buf) < n+delimiterLen {
			capacityPanic("composite point", n+delimiterLen, len(buf))
		}
		buf[n] = 0x00
		buf[n+1] = 0x00
		n += delimiterLen
	}

	return n
}

// decodeField parses one field's encoding and, when the field is
// variable-width and not the last field, the trailing delimiter.
func decodeField[D any](c Codec[D], buf []byte, delimited bool) (D, int, error) {
	v, n, err := c.Decode(buf)
	if err != nil {
		var zero D
		return zero, 0, err
	}

	if delimited && !c.FixedWidth() {
		if len(buf) < n+delimiterLen {
			var zero D
			return zero, 0, fmt.Errorf("field delimiter: %w", errs.ErrTruncatedEncoding)
		}
		if buf[n] != 0x00 || buf[n+1] != 0x00 {
			var zero D
			return zero, 0, fmt.Errorf("bytes 0x%02x 0x%02x at field boundary: %w",
				buf[n], buf[n+1], errs.ErrMissingDelimiter)
		}
		n += delimiterLen
	}

	return v, n, nil
}
