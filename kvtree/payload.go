package kvtree

import (
	"fmt"

	"github.com/arloliu/trizip/endian"
	"github.com/arloliu/trizip/errs"
)

// PayloadCodec serializes a vertex's value or summary into the entry
// payload. Unlike point codecs, payload bytes never participate in key
// ordering, so the encoding only needs to round-trip, not to be
// order-homomorphic.
//
// Decode receives exactly the bytes Append produced (the entry layout
// length-prefixes the value section and hands the summary codec the
// remainder), so a codec never needs to find its own end.
type PayloadCodec[T any] interface {
	// Append appends the encoding of v to dst and returns the extended slice.
	Append(dst []byte, v T) []byte

	// Decode parses buf, which holds exactly one encoded value.
	Decode(buf []byte) (T, error)
}

// BytesCodec stores a raw byte slice as-is. Decode copies, so the returned
// slice does not alias store-owned memory.
type BytesCodec struct{}

var _ PayloadCodec[[]byte] = BytesCodec{}

func (BytesCodec) Append(dst []byte, v []byte) []byte {
	return append(dst, v...)
}

func (BytesCodec) Decode(buf []byte) ([]byte, error) {
	out := make([]byte, len(buf))
	copy(out, buf)

	return out, nil
}

// Uint64Codec stores a uint64 as 8 big-endian bytes. It serves the counting
// monoid's summaries as well as plain numeric vertex values.
type Uint64Codec struct{}

var _ PayloadCodec[uint64] = Uint64Codec{}

var payloadEndian = endian.GetBigEndianEngine()

func (Uint64Codec) Append(dst []byte, v uint64) []byte {
	return payloadEndian.AppendUint64(dst, v)
}

func (Uint64Codec) Decode(buf []byte) (uint64, error) {
	if len(buf) != 8 {
		return 0, fmt.Errorf("uint64 payload is %d bytes, want 8: %w", len(buf), errs.ErrInvalidEntry)
	}

	return payloadEndian.Uint64(buf), nil
}

// EmptyCodec stores nothing. It pairs with the trivial monoid, whose
// summaries carry no information.
type EmptyCodec struct{}

var _ PayloadCodec[struct{}] = EmptyCodec{}

func (EmptyCodec) Append(dst []byte, _ struct{}) []byte {
	return dst
}

func (EmptyCodec) Decode(buf []byte) (struct{}, error) {
	if len(buf) != 0 {
		return struct{}{}, fmt.Errorf("empty payload carries %d bytes: %w", len(buf), errs.ErrInvalidEntry)
	}

	return struct{}{}, nil
}
