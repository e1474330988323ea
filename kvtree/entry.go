package kvtree

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/trizip/compress"
	"github.com/arloliu/trizip/errs"
	"github.com/arloliu/trizip/format"
	"github.com/arloliu/trizip/internal/pool"
	"github.com/arloliu/trizip/point"
	"github.com/arloliu/trizip/tree"
)

// Vertex entry layout:
//
//	offset 0  rank (1 byte)
//	offset 1  left child rank, NoChild if absent (1 byte)
//	offset 2  right child rank, NoChild if absent (1 byte)
//	offset 3  compression type (1 byte)
//	offset 4  payload, compressed per byte 3:
//	            uvarint subtree count
//	            uvarint value length, value bytes
//	            summary bytes (to end of payload)
//
// The header stays uncompressed so child discovery can read child ranks
// without touching a decompressor.
const entryHeaderLen = 4

// appendEntry serializes one tree vertex into dst.
func (idx *Index[X, Y, Z, V, M]) appendEntry(dst []byte, n *tree.Node[X, Y, Z, V, M]) ([]byte, error) {
	bb := pool.GetEntryBuffer()
	defer pool.PutEntryBuffer(bb)
	vb := pool.GetEntryBuffer()
	defer pool.PutEntryBuffer(vb)

	valueBytes := idx.valueCodec.Append(vb.Bytes()[:0], n.Value)
	vb.B = valueBytes

	payload := bb.Bytes()[:0]
	payload = binary.AppendUvarint(payload, uint64(n.Count))
	payload = binary.AppendUvarint(payload, uint64(len(valueBytes)))
	payload = append(payload, valueBytes...)
	payload = idx.summaryCodec.Append(payload, n.Summary)
	bb.B = payload

	compressed, err := idx.compressor.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compress vertex payload: %w", err)
	}

	dst = append(dst, n.Rank, childRank(n.Left), childRank(n.Right), byte(idx.compression))
	dst = append(dst, compressed...)

	return dst, nil
}

func childRank[X, Y, Z, V, M any](n *tree.Node[X, Y, Z, V, M]) uint8 {
	if n == nil {
		return NoChild
	}

	return n.Rank
}

// decodeEntry reconstructs a Vertex from a store entry. The point is
// recovered from the key, everything else from the value.
func (idx *Index[X, Y, Z, V, M]) decodeEntry(key, value []byte) (*Vertex[X, Y, Z, V, M], error) {
	if len(key) < 2 {
		return nil, fmt.Errorf("vertex key is %d bytes: %w", len(key), errs.ErrInvalidEntry)
	}
	if len(value) < entryHeaderLen {
		return nil, fmt.Errorf("vertex entry is %d bytes, want at least %d: %w",
			len(value), entryHeaderLen, errs.ErrInvalidEntry)
	}

	rank := value[0]
	if rank != key[0] {
		return nil, fmt.Errorf("entry rank %d does not match key rank byte %d: %w",
			rank, key[0], errs.ErrCorruptIndex)
	}

	p, consumed, err := idx.space.Decode(point.OrderForRank(rank), key[1:])
	if err != nil {
		return nil, fmt.Errorf("decode vertex key point: %w", err)
	}
	if consumed != len(key)-1 {
		return nil, fmt.Errorf("vertex key has %d trailing bytes: %w",
			len(key)-1-consumed, errs.ErrCorruptIndex)
	}

	ct := format.CompressionType(value[3])
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, fmt.Errorf("vertex entry compression byte 0x%02x: %w", value[3], errs.ErrInvalidCompression)
	}

	payload, err := codec.Decompress(value[entryHeaderLen:])
	if err != nil {
		return nil, fmt.Errorf("decompress vertex payload: %w", err)
	}

	count, n := binary.Uvarint(payload)
	if n <= 0 {
		return nil, fmt.Errorf("vertex count varint: %w", errs.ErrInvalidEntry)
	}
	payload = payload[n:]

	valueLen, n := binary.Uvarint(payload)
	if n <= 0 || uint64(len(payload)-n) < valueLen {
		return nil, fmt.Errorf("vertex value length varint: %w", errs.ErrInvalidEntry)
	}
	payload = payload[n:]

	v, err := idx.valueCodec.Decode(payload[:valueLen])
	if err != nil {
		return nil, fmt.Errorf("decode vertex value: %w", err)
	}

	summary, err := idx.summaryCodec.Decode(payload[valueLen:])
	if err != nil {
		return nil, fmt.Errorf("decode vertex summary: %w", err)
	}

	return &Vertex[X, Y, Z, V, M]{
		Point:     p,
		Rank:      rank,
		Value:     v,
		Count:     count,
		Summary:   summary,
		LeftRank:  value[1],
		RightRank: value[2],
	}, nil
}
