// Package endian provides the byte order engine shared by the cfg.bin decoders.
//
// Both RDBN and T2B containers are little-endian on disk. The decoders never hard-code
// binary.LittleEndian directly; they go through an EndianEngine so the fixed-record
// parsers in package section and the cursor reader agree on one byte order.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	magic := engine.Uint32(data[0:4])
//	count := endian.Int16(engine, data[38:40])
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. EndianEngine values are
// immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine is a byte order that can both decode and append.
//
// binary.LittleEndian and binary.BigEndian satisfy it. The append half is used by the
// test fixture builders that lay out synthetic containers.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by both container formats.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Int16 decodes a two's complement 16-bit integer from b.
func Int16(engine EndianEngine, b []byte) int16 {
	return int16(engine.Uint16(b)) //nolint:gosec
}

// Int32 decodes a two's complement 32-bit integer from b.
func Int32(engine EndianEngine, b []byte) int32 {
	return int32(engine.Uint32(b)) //nolint:gosec
}

// PutInt16 encodes v into b.
func PutInt16(engine EndianEngine, b []byte, v int16) {
	engine.PutUint16(b, uint16(v)) //nolint:gosec
}

// PutInt32 encodes v into b.
func PutInt32(engine EndianEngine, b []byte, v int32) {
	engine.PutUint32(b, uint32(v)) //nolint:gosec
}
