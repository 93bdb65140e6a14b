// Package cursor provides the sequential, random-access byte reader every container
// decoder is built on.
//
// A Reader wraps an immutable byte slice and a mutable read position. Fixed-width reads
// consume exactly their width and advance the position. Reads are unchecked: reading
// past the end of the buffer is a caller contract violation and panics. Decoders are
// expected to validate header-derived offsets (see Reader.InRange) before seeking.
//
// The Reader never copies or mutates the underlying buffer. Several Readers may share one
// buffer across goroutines, but a single Reader must not be used concurrently.
package cursor

import (
	"bytes"
	"math"

	"github.com/arloliu/cfgbin/endian"
	"github.com/arloliu/cfgbin/errs"
)

// Reader is a little-endian cursor over a byte buffer.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader creates a Reader positioned at offset 0.
//
// Parameters:
//   - data: Buffer to read; the Reader borrows it for its whole lifetime
//
// Returns:
//   - *Reader: New reader using the little-endian engine
func NewReader(data []byte) *Reader {
	return &Reader{
		data:   data,
		engine: endian.GetLittleEndianEngine(),
	}
}

// Fork returns an independent Reader over the same buffer at the same position.
//
// Speculative passes run on a fork so the parent position never changes, whatever the
// outcome of the pass.
func (r *Reader) Fork() *Reader {
	fork := *r
	return &fork
}

// Engine returns the byte order engine used by the reader.
func (r *Reader) Engine() endian.EndianEngine {
	return r.engine
}

// ReadUint32 reads a 32-bit unsigned integer.
func (r *Reader) ReadUint32() uint32 {
	v := r.engine.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4

	return v
}

// ReadInt32 reads a 32-bit signed integer.
func (r *Reader) ReadInt32() int32 {
	return int32(r.ReadUint32()) //nolint:gosec
}

// ReadInt64 reads a 64-bit signed integer.
func (r *Reader) ReadInt64() int64 {
	v := r.engine.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8

	return int64(v) //nolint:gosec
}

// ReadInt16 reads a 16-bit signed integer.
func (r *Reader) ReadInt16() int16 {
	v := r.engine.Uint16(r.data[r.pos : r.pos+2])
	r.pos += 2

	return int16(v) //nolint:gosec
}

// ReadFloat32 reads an IEEE-754 single precision float.
func (r *Reader) ReadFloat32() float32 {
	return math.Float32frombits(r.ReadUint32())
}

// ReadBool reads a 32-bit integer and reports whether it is non-zero.
func (r *Reader) ReadBool() bool {
	return r.ReadInt32() != 0
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() uint8 {
	v := r.data[r.pos]
	r.pos++

	return v
}

// ReadBytes reads the next n bytes.
//
// The returned slice aliases the underlying buffer; callers that keep it beyond the
// buffer's lifetime must copy it.
func (r *Reader) ReadBytes(n int) []byte {
	v := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n

	return v
}

// Slice returns length bytes starting at the absolute offset without moving the
// position. Like ReadBytes, the result aliases the buffer.
func (r *Reader) Slice(offset, length int) []byte {
	return r.data[offset : offset+length : offset+length]
}

// Skip advances the position by n bytes without reading.
func (r *Reader) Skip(n int) {
	r.pos += n
}

// SeekAlignment advances the position to the next multiple of align.
// It is a no-op when the position is already aligned.
func (r *Reader) SeekAlignment(align int) {
	if rem := r.pos % align; rem != 0 {
		r.pos += align - rem
	}
}

// SetPosition moves the cursor to an absolute offset.
func (r *Reader) SetPosition(pos int) {
	r.pos = pos
}

// Position returns the absolute read position.
func (r *Reader) Position() int {
	return r.pos
}

// Size returns the total buffer length.
func (r *Reader) Size() int {
	return len(r.data)
}

// InRange reports whether the byte range [offset, offset+length) lies inside the buffer.
func (r *Reader) InRange(offset, length int) bool {
	return offset >= 0 && length >= 0 && offset <= len(r.data) && length <= len(r.data)-offset
}

// CStringAt returns the NUL-terminated string starting at the absolute offset.
//
// The position is left unchanged. Unlike the fixed-width reads, this is bounds checked
// because string offsets come from data rather than from validated headers.
//
// Returns:
//   - string: Bytes up to (not including) the terminator, copied out of the buffer
//   - error: ErrOffsetOutOfRange if offset is outside the buffer,
//     ErrUnterminatedString if no terminator follows it
func (r *Reader) CStringAt(offset int) (string, error) {
	return CString(r.data, offset)
}

// CString returns the NUL-terminated string starting at offset in data.
func CString(data []byte, offset int) (string, error) {
	if offset < 0 || offset >= len(data) {
		return "", errs.ErrOffsetOutOfRange
	}

	end := bytes.IndexByte(data[offset:], 0)
	if end < 0 {
		return "", errs.ErrUnterminatedString
	}

	return string(data[offset : offset+end]), nil
}
