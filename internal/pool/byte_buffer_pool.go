// Package pool keeps reusable byte buffers for rendering export documents and for the
// streaming compressors.
package pool

import (
	"io"
	"sync"
)

const (
	DocumentBufferDefaultSize  = 64 << 10 // a rendered table set of moderate size
	DocumentBufferMaxThreshold = 8 << 20  // larger document buffers are not retained
	CodecBufferDefaultSize     = 16 << 10
	CodecBufferMaxThreshold    = 4 << 20
)

// ByteBuffer is an append-only byte slice that implements io.Writer.
type ByteBuffer struct {
	B []byte
}

var (
	_ io.Writer   = (*ByteBuffer)(nil)
	_ io.WriterTo = (*ByteBuffer)(nil)
)

// NewByteBuffer creates an empty buffer with the given capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the written bytes. The slice aliases the buffer until the next Reset.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Len returns the number of written bytes.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Reset empties the buffer and keeps its capacity.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Grow makes room for n more bytes.
//
// Buffers up to four codec buffers in capacity grow by CodecBufferDefaultSize, larger
// ones by a quarter of their capacity. The step is never smaller than n.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	step := CodecBufferDefaultSize
	if c := cap(bb.B); c > 4*CodecBufferDefaultSize {
		step = c / 4
	}
	step = max(step, n)

	grown := make([]byte, len(bb.B), len(bb.B)+step)
	copy(grown, bb.B)
	bb.B = grown
}

// Write appends p. It never fails.
func (bb *ByteBuffer) Write(p []byte) (int, error) {
	bb.Grow(len(p))
	bb.B = append(bb.B, p...)

	return len(p), nil
}

// WriteTo writes the buffered bytes to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool recycles ByteBuffers through a sync.Pool.
//
// Buffers whose capacity exceeds the pool's threshold are dropped on Put so that one
// huge document does not pin its memory for the life of the process. A threshold of
// zero keeps every buffer.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers starting at defaultSize capacity.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	p := &ByteBufferPool{maxThreshold: maxThreshold}
	p.pool.New = func() any { return NewByteBuffer(defaultSize) }

	return p
}

// Get returns an empty buffer.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put recycles bb. bb must not be used afterwards.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil || (p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold) {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var (
	documentPool = NewByteBufferPool(DocumentBufferDefaultSize, DocumentBufferMaxThreshold)
	codecPool    = NewByteBufferPool(CodecBufferDefaultSize, CodecBufferMaxThreshold)
)

// GetDocumentBuffer returns a buffer for rendering an export document.
func GetDocumentBuffer() *ByteBuffer { return documentPool.Get() }

// PutDocumentBuffer recycles a buffer obtained from GetDocumentBuffer.
func PutDocumentBuffer(bb *ByteBuffer) { documentPool.Put(bb) }

// GetCodecBuffer returns a buffer for streaming compressor output.
func GetCodecBuffer() *ByteBuffer { return codecPool.Get() }

// PutCodecBuffer recycles a buffer obtained from GetCodecBuffer.
func PutCodecBuffer(bb *ByteBuffer) { codecPool.Put(bb) }
