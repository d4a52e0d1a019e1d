// Package pool provides pooled scratch buffers for the DataBlock serializers.
package pool

import (
	"sync"

	"github.com/arloliu/datablock/bytebuf"
)

const (
	BinaryBufferDefaultSize  = 1024 * 16       // 16KiB
	BinaryBufferMaxThreshold = 1024 * 1024     // 1MiB
	TextBufferDefaultSize    = 1024 * 32       // 32KiB
	TextBufferMaxThreshold   = 1024 * 1024 * 2 // 2MiB
)

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// Buffers whose capacity grew beyond maxThreshold are dropped on Put instead
// of being retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return bytebuf.NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (p *ByteBufferPool) Get() *bytebuf.ByteBuffer {
	bb, _ := p.pool.Get().(*bytebuf.ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (p *ByteBufferPool) Put(bb *bytebuf.ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && bb.Cap() > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var (
	binaryPool = NewByteBufferPool(BinaryBufferDefaultSize, BinaryBufferMaxThreshold)
	textPool   = NewByteBufferPool(TextBufferDefaultSize, TextBufferMaxThreshold)
)

// GetBinaryBuffer retrieves a scratch buffer for binary encoding.
func GetBinaryBuffer() *bytebuf.ByteBuffer {
	return binaryPool.Get()
}

// PutBinaryBuffer returns a scratch buffer obtained from GetBinaryBuffer.
func PutBinaryBuffer(bb *bytebuf.ByteBuffer) {
	binaryPool.Put(bb)
}

// GetTextBuffer retrieves a scratch buffer for text encoding.
func GetTextBuffer() *bytebuf.ByteBuffer {
	return textPool.Get()
}

// PutTextBuffer returns a scratch buffer obtained from GetTextBuffer.
func PutTextBuffer(bb *bytebuf.ByteBuffer) {
	textPool.Put(bb)
}
