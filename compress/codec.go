// Package compress provides compression codecs for trizip vertex entry
// payloads.
//
// Only the value/summary section of a vertex entry is ever compressed. Key
// bytes are never compressed: the index depends on the lexicographic order of
// raw keys, and compression does not preserve byte order.
//
// Four codecs are available, selected by format.CompressionType:
//   - None: bypass, the default. Vertex payloads are often tiny.
//   - S2: fastest real compression, good for bulk loads.
//   - LZ4: fast with slightly better ratios on structured values.
//   - Zstd: best ratio, for large user values.
package compress

import (
	"fmt"

	"github.com/arloliu/trizip/format"
)

// Compressor compresses a vertex payload.
//
// Memory management:
//   - The returned slice is newly allocated and owned by the caller
//     (except for the no-op codec, which returns the input slice).
//   - The input slice is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor. The input must have been produced by
// the matching Compress; corrupted or mismatched data yields an error.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
// All built-in codecs are stateless values, safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
//
// Returns errs-wrapped error for unknown types; decoding paths surface this
// when an entry carries a compression byte this build does not know.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
