// Package point defines three-dimensional points, their three rotating total
// orders (xyz, yzx, zxy), and order-homomorphic byte encodings for each.
//
// An order-homomorphic encoding maps a value to bytes such that comparing two
// encodings lexicographically yields the same result as comparing the values
// themselves. This property is what lets a flat, lexicographically ordered
// key-value store act as a search tree over points: the store only ever
// compares raw key bytes.
//
// # Dimension codecs
//
// Each axis of a point is encoded by a Codec. Codecs come in two regimes:
//
//   - Fixed-width: every value encodes to exactly MaxLen bytes. Raw
//     big-endian integer bytes are the canonical example; byte order equals
//     numeric order with no further work.
//   - Variable-width: encoded length depends on the value. Variable-width
//     encodings must never contain two consecutive zero bytes: the byte pair
//     0x00 0x00 is reserved as the field delimiter in composite encodings
//     (see Space).
//
// # Composite encodings
//
// Space combines three dimension codecs into composite point encodings, one
// per ordering. Fields are concatenated in the ordering's precedence order; a
// 0x00 0x00 delimiter follows every variable-width field that is not the last
// field, so the decoder can locate field boundaries unambiguously.
package point

import "fmt"

// Codec is the encoding contract for a single dimension.
//
// Encode panics when the destination buffer is too small: buffer sizes are
// statically computable from MaxLen, so a short buffer is a programming
// error, never a runtime condition. Decode, by contrast, consumes untrusted
// bytes and reports malformed input as an error.
type Codec[D any] interface {
	// MaxLen returns the upper bound on encoded byte length.
	MaxLen() int

	// FixedWidth reports whether every value encodes to exactly MaxLen bytes.
	FixedWidth() bool

	// Encode writes the order-homomorphic encoding of v into buf and returns
	// the number of bytes written. For all v1 <= v2, Encode(v1) is
	// lexicographically <= Encode(v2). Panics if buf is shorter than the
	// encoding requires.
	Encode(v D, buf []byte) int

	// Decode parses the encoding at the start of buf and returns the value
	// and the number of bytes consumed. Decode(Encode(v)) yields (v, n)
	// where n is what Encode returned.
	Decode(buf []byte) (D, int, error)

	// Compare returns -1, 0, or 1 per the dimension's total order.
	Compare(a, b D) int
}

// capacityPanic reports a destination buffer too small for an encoding.
// Encoding capacity is a static property of the codec, so this is always a
// caller bug.
func capacityPanic(what string, need, have int) {
	panic(fmt.Sprintf("point: buffer too small for %s encoding: need %d bytes, have %d", what, need, have))
}
