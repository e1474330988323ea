// Package errs defines the sentinel error values shared across trizip packages.
//
// All errors are created with errors.New and are intended to be matched with
// errors.Is. Packages wrap them with fmt.Errorf("...: %w", ...) to attach
// context while keeping the sentinel matchable.
package errs

import "errors"

// Decode errors. These are recoverable: they indicate malformed or truncated
// input bytes handed to a decoder, never an internal defect.
var (
	// ErrTruncatedEncoding indicates that a decoder ran out of input bytes
	// before the encoding was complete.
	ErrTruncatedEncoding = errors.New("truncated encoding")

	// ErrUnterminatedEncoding indicates that a variable-width encoding
	// exceeded its maximum length without reaching its terminator byte.
	ErrUnterminatedEncoding = errors.New("unterminated variable-width encoding")

	// ErrUnexpectedByte indicates a byte value that the decoder does not
	// recognize at the current position.
	ErrUnexpectedByte = errors.New("unexpected byte in encoding")

	// ErrMissingDelimiter indicates that the two-zero-byte field delimiter
	// expected after a variable-width field was absent.
	ErrMissingDelimiter = errors.New("missing field delimiter")
)

// Tree construction errors.
var (
	// ErrDuplicatePoint indicates that two items with the same point were
	// submitted to tree construction. Unique points are a caller obligation.
	ErrDuplicatePoint = errors.New("duplicate point")

	// ErrRankOutOfRange indicates a rank greater than tree.MaxRank.
	ErrRankOutOfRange = errors.New("rank out of range")
)

// KV index errors.
var (
	// ErrInvalidEntry indicates a vertex entry payload that is too short or
	// otherwise malformed.
	ErrInvalidEntry = errors.New("invalid vertex entry")

	// ErrInvalidCompression indicates an unknown compression type byte in a
	// vertex entry, or an unsupported compression option.
	ErrInvalidCompression = errors.New("invalid compression type")

	// ErrCorruptIndex indicates that a store lookup returned an entry that a
	// well-formed index could not contain, e.g. a child probe that landed on
	// a key with the wrong rank byte.
	ErrCorruptIndex = errors.New("corrupt index")
)
