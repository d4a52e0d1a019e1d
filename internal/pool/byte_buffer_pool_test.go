package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/datablock/bytebuf"
)

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(64, 1024)

	bb := p.Get()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 64)

	bb.Append([]byte("scratch"))
	p.Put(bb)

	again := p.Get()
	assert.Equal(t, 0, again.Len(), "pooled buffers come back empty")
}

func TestByteBufferPool_DropsOversized(t *testing.T) {
	p := NewByteBufferPool(16, 32)

	big := bytebuf.NewByteBuffer(128)
	big.Append([]byte("keep"))
	p.Put(big)

	// Oversized buffers are not reset, which shows they were not recycled.
	assert.Equal(t, 4, big.Len())

	p.Put(nil)
}

func TestDefaultPools_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for range 100 {
				bb := GetBinaryBuffer()
				bb.Append([]byte{byte(i)})
				PutBinaryBuffer(bb)

				tb := GetTextBuffer()
				_, _ = tb.WriteString("x")
				PutTextBuffer(tb)
			}
		}(i)
	}
	wg.Wait()
}
