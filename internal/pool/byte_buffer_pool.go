// Package pool provides pooled byte buffers for encoding key and entry bytes.
package pool

import "sync"

const (
	// EntryBufferDefaultSize covers a full vertex entry (header, compressed
	// payload) and any composite key for typical dimension widths.
	EntryBufferDefaultSize = 512

	// EntryBufferMaxThreshold discards returned buffers above this capacity
	// to keep oversized user values from pinning memory in the pool.
	EntryBufferMaxThreshold = 64 * 1024
)

// ByteBuffer is a reusable byte slice wrapper handed out by a ByteBufferPool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for
// reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// ExtendTo sets the buffer length to n, growing capacity if necessary.
// Existing bytes are preserved; new bytes are unspecified.
func (bb *ByteBuffer) ExtendTo(n int) {
	if cap(bb.B) < n {
		newBuf := make([]byte, n, max(n, 2*cap(bb.B)))
		copy(newBuf, bb.B)
		bb.B = newBuf

		return
	}
	bb.B = bb.B[:n]
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally. Buffers whose capacity grew past the
// configured threshold are dropped instead of being returned to the pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the
// specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var entryDefaultPool = NewByteBufferPool(EntryBufferDefaultSize, EntryBufferMaxThreshold)

// GetEntryBuffer retrieves a ByteBuffer from the default entry pool.
func GetEntryBuffer() *ByteBuffer {
	return entryDefaultPool.Get()
}

// PutEntryBuffer returns a ByteBuffer to the default entry pool.
func PutEntryBuffer(bb *ByteBuffer) {
	entryDefaultPool.Put(bb)
}
