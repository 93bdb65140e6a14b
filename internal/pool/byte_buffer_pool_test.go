package pool

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(8)

	n, err := fmt.Fprintf(bb, "table=%s rows=%d", "ItemList", 3)
	require.NoError(t, err)
	assert.Equal(t, n, bb.Len())
	assert.Equal(t, "table=ItemList rows=3", string(bb.Bytes()))

	originalCap := cap(bb.B)
	bb.Reset()
	assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(64)
		bb.Grow(32)
		assert.Equal(t, 64, cap(bb.B))
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(4)
		_, _ = bb.Write([]byte("abcd"))
		bb.Grow(1)
		assert.Equal(t, 4+CodecBufferDefaultSize, cap(bb.B))
		assert.Equal(t, []byte("abcd"), bb.Bytes())
	})

	t.Run("large request", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(CodecBufferDefaultSize * 2)
		assert.GreaterOrEqual(t, cap(bb.B), CodecBufferDefaultSize*2)
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * CodecBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.B = bb.B[:size]
		bb.Grow(1)
		assert.Equal(t, size+size/4, cap(bb.B))
	})
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	_, _ = bb.Write([]byte("payload"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "payload", out.String())
}

func TestByteBufferPool(t *testing.T) {
	t.Run("reuses reset buffers", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		bb := p.Get()
		require.NotNil(t, bb)
		_, _ = bb.Write([]byte("x"))
		p.Put(bb)

		again := p.Get()
		assert.Equal(t, 0, again.Len())
	})

	t.Run("drops oversized buffers", func(t *testing.T) {
		p := NewByteBufferPool(32, 64)
		bb := NewByteBuffer(128)
		p.Put(bb)
		assert.Equal(t, 128, cap(bb.B), "oversized buffer is left untouched")
	})

	t.Run("nil is ignored", func(t *testing.T) {
		p := NewByteBufferPool(32, 64)
		assert.NotPanics(t, func() { p.Put(nil) })
	})
}

func TestDefaultPools_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			doc := GetDocumentBuffer()
			codec := GetCodecBuffer()
			fmt.Fprintf(doc, "doc-%d", i)
			fmt.Fprintf(codec, "codec-%d", i)
			assert.Equal(t, fmt.Sprintf("doc-%d", i), string(doc.Bytes()))
			PutDocumentBuffer(doc)
			PutCodecBuffer(codec)
		}(i)
	}
	wg.Wait()
}
