package point

import (
	"cmp"
	"fmt"

	"github.com/arloliu/trizip/endian"
	"github.com/arloliu/trizip/errs"
)

var bigEndian = endian.GetBigEndianEngine()

// Uint64Codec encodes a uint64 as 8 big-endian bytes. Big-endian byte order
// makes lexicographic comparison agree with numeric comparison, so the
// encoding is order-homomorphic with no transformation.
//
// This is the practical production dimension for coordinates that fit an
// unsigned 64-bit integer (identifiers, versions, scaled coordinates).
type Uint64Codec struct{}

var _ Codec[uint64] = Uint64Codec{}

func (Uint64Codec) MaxLen() int { return 8 }

func (Uint64Codec) FixedWidth() bool { return true }

func (Uint64Codec) Encode(v uint64, buf []byte) int {
	if len(buf) < 8 {
		capacityPanic("uint64", 8, len(buf))
	}
	bigEndian.PutUint64(buf, v)

	return 8
}

func (Uint64Codec) Decode(buf []byte) (uint64, int, error) {
	if len(buf) < 8 {
		return 0, 0, fmt.Errorf("uint64: %w", errs.ErrTruncatedEncoding)
	}

	return bigEndian.Uint64(buf), 8, nil
}

func (Uint64Codec) Compare(a, b uint64) int { return cmp.Compare(a, b) }
