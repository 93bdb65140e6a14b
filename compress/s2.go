package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/cfgbin/internal/pool"
)

var s2WriterPool = sync.Pool{
	New: func() any {
		return s2.NewWriter(nil, s2.WriterBetterCompression(), s2.WriterConcurrency(1))
	},
}

// S2Compressor writes S2 streams.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data into an S2 stream.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)

	w, _ := s2WriterPool.Get().(*s2.Writer)
	defer s2WriterPool.Put(w)
	w.Reset(buf)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("s2 compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("s2 compression failed: %w", err)
	}

	return bytes.Clone(buf.Bytes()), nil
}

// Decompress decompresses an S2 stream.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := io.ReadAll(s2.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
