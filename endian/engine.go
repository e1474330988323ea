// Package endian provides byte order utilities for binary encoding and decoding.
//
// It combines the ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single EndianEngine interface, satisfied by binary.BigEndian and
// binary.LittleEndian.
//
// Order-homomorphic fixed-width codecs must use the big-endian engine: only
// big-endian byte order makes lexicographic byte comparison agree with numeric
// comparison of unsigned integers. The little-endian engine is provided for
// payload sections whose bytes never participate in key comparisons.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
//
// The engine instances are immutable and stateless, and safe for concurrent
// use.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine. This is the engine used
// for all key material, since big-endian integer bytes sort lexicographically
// in numeric order.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
