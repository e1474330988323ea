package compress

// ZstdCompressor compresses vertex payloads with Zstandard. It has the best
// compression ratio of the built-in codecs and suits indexes whose user
// values are large (documents, feature blobs).
//
// Two implementations are provided, selected by build tag: a cgo binding
// (valyala/gozstd) when cgo is available, and a pure-Go fallback
// (klauspost/compress/zstd) otherwise. Both produce interchangeable frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
