package point

import (
	"cmp"
	"fmt"

	"github.com/arloliu/trizip/errs"
)

// Uint8Codec encodes a uint8 as its single raw byte. Raw byte value order
// equals numeric order, so the encoding is trivially order-homomorphic.
type Uint8Codec struct{}

var _ Codec[uint8] = Uint8Codec{}

func (Uint8Codec) MaxLen() int { return 1 }

func (Uint8Codec) FixedWidth() bool { return true }

func (Uint8Codec) Encode(v uint8, buf []byte) int {
	if len(buf) < 1 {
		capacityPanic("uint8", 1, len(buf))
	}
	buf[0] = v

	return 1
}

func (Uint8Codec) Decode(buf []byte) (uint8, int, error) {
	if len(buf) < 1 {
		return 0, 0, fmt.Errorf("uint8: %w", errs.ErrTruncatedEncoding)
	}

	return buf[0], 1, nil
}

func (Uint8Codec) Compare(a, b uint8) int { return cmp.Compare(a, b) }

const (
	unaryRun  = 0x02 // repeated once per unit of the encoded value
	unaryTerm = 0x01 // terminates the run
)

// Uint8UnaryCodec encodes a uint8 n as n repetitions of 0x02 followed by a
// single 0x01. A larger n has more 0x02 bytes before its terminator, so the
// encodings compare lexicographically in numeric order: at the first position
// where the two differ, the smaller value's 0x01 loses to the larger value's
// 0x02.
//
// The encoding uses no zero bytes at all, satisfying the
// no-consecutive-zero-bytes rule for variable-width codecs.
type Uint8UnaryCodec struct{}

var _ Codec[uint8] = Uint8UnaryCodec{}

// MaxLen is 256: the maximum value 255 encodes to 255 run bytes plus the
// terminator.
func (Uint8UnaryCodec) MaxLen() int { return 256 }

func (Uint8UnaryCodec) FixedWidth() bool { return false }

func (Uint8UnaryCodec) Encode(v uint8, buf []byte) int {
	n := int(v)
	if len(buf) < n+1 {
		capacityPanic("uint8 unary", n+1, len(buf))
	}
	for i := range n {
		buf[i] = unaryRun
	}
	buf[n] = unaryTerm

	return n + 1
}

func (Uint8UnaryCodec) Decode(buf []byte) (uint8, int, error) {
	for i := range buf {
		if i > 255 {
			// A run longer than 255 bytes cannot encode any uint8.
			return 0, 0, fmt.Errorf("uint8 unary: %w", errs.ErrUnterminatedEncoding)
		}
		switch buf[i] {
		case unaryTerm:
			return uint8(i), i + 1, nil
		case unaryRun:
		default:
			return 0, 0, fmt.Errorf("uint8 unary: byte 0x%02x at offset %d: %w",
				buf[i], i, errs.ErrUnexpectedByte)
		}
	}

	return 0, 0, fmt.Errorf("uint8 unary: %w", errs.ErrTruncatedEncoding)
}

func (Uint8UnaryCodec) Compare(a, b uint8) int { return cmp.Compare(a, b) }
