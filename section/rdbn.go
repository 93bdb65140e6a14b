package section

import (
	"github.com/arloliu/cfgbin/endian"
	"github.com/arloliu/cfgbin/errs"
)

// RdbnHeader is the fixed 0x3C byte header at the start of an RDBN container.
//
// Section offsets are stored as counts of 4-byte words relative to the data section;
// use SectionOffset to turn them into absolute byte offsets.
type RdbnHeader struct {
	Magic      uint32 // byte offset 0-3
	HeaderSize int16  // byte offset 4-5
	Version    int32  // byte offset 6-9
	DataOffset int16  // byte offset 10-11, word offset of the data section
	DataSize   int32  // byte offset 12-15

	// byte offset 16-35 reserved

	TypeOffset          int16 // byte offset 36-37
	TypeCount           int16 // byte offset 38-39
	FieldOffset         int16 // byte offset 40-41
	FieldCount          int16 // byte offset 42-43
	RootOffset          int16 // byte offset 44-45
	RootCount           int16 // byte offset 46-47
	StringHashOffset    int16 // byte offset 48-49
	StringOffsetsOffset int16 // byte offset 50-51
	HashCount           int16 // byte offset 52-53
	ValueOffset         int16 // byte offset 54-55
	StringOffset        int32 // byte offset 56-59, string blob offset relative to the data section
}

// ParseRdbnHeader parses an RdbnHeader from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 0x3C bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - RdbnHeader: Parsed header; the magic is not validated here
//   - error: ErrInvalidHeaderSize if data is too short
func ParseRdbnHeader(data []byte, engine endian.EndianEngine) (RdbnHeader, error) {
	if len(data) < RdbnHeaderSize {
		return RdbnHeader{}, errs.ErrInvalidHeaderSize
	}

	return RdbnHeader{
		Magic:               engine.Uint32(data[0:4]),
		HeaderSize:          endian.Int16(engine, data[4:6]),
		Version:             endian.Int32(engine, data[6:10]),
		DataOffset:          endian.Int16(engine, data[10:12]),
		DataSize:            endian.Int32(engine, data[12:16]),
		TypeOffset:          endian.Int16(engine, data[36:38]),
		TypeCount:           endian.Int16(engine, data[38:40]),
		FieldOffset:         endian.Int16(engine, data[40:42]),
		FieldCount:          endian.Int16(engine, data[42:44]),
		RootOffset:          endian.Int16(engine, data[44:46]),
		RootCount:           endian.Int16(engine, data[46:48]),
		StringHashOffset:    endian.Int16(engine, data[48:50]),
		StringOffsetsOffset: endian.Int16(engine, data[50:52]),
		HashCount:           endian.Int16(engine, data[52:54]),
		ValueOffset:         endian.Int16(engine, data[54:56]),
		StringOffset:        endian.Int32(engine, data[56:60]),
	}, nil
}

// Bytes serializes the header into a 0x3C byte slice.
func (h RdbnHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, RdbnHeaderSize)
	engine.PutUint32(b[0:4], h.Magic)
	endian.PutInt16(engine, b[4:6], h.HeaderSize)
	endian.PutInt32(engine, b[6:10], h.Version)
	endian.PutInt16(engine, b[10:12], h.DataOffset)
	endian.PutInt32(engine, b[12:16], h.DataSize)

	endian.PutInt16(engine, b[36:38], h.TypeOffset)
	endian.PutInt16(engine, b[38:40], h.TypeCount)
	endian.PutInt16(engine, b[40:42], h.FieldOffset)
	endian.PutInt16(engine, b[42:44], h.FieldCount)
	endian.PutInt16(engine, b[44:46], h.RootOffset)
	endian.PutInt16(engine, b[46:48], h.RootCount)
	endian.PutInt16(engine, b[48:50], h.StringHashOffset)
	endian.PutInt16(engine, b[50:52], h.StringOffsetsOffset)
	endian.PutInt16(engine, b[52:54], h.HashCount)
	endian.PutInt16(engine, b[54:56], h.ValueOffset)
	endian.PutInt32(engine, b[56:60], h.StringOffset)

	return b
}

// DataBase returns the absolute byte offset of the data section.
func (h RdbnHeader) DataBase() int {
	return int(h.DataOffset) << RdbnWordShift
}

// SectionOffset converts a word offset relative to the data section into an absolute
// byte offset.
func (h RdbnHeader) SectionOffset(words int16) int {
	return int(words)<<RdbnWordShift + h.DataBase()
}

// StringBase returns the absolute byte offset of the string blob.
func (h RdbnHeader) StringBase() int {
	return int(h.StringOffset) + h.DataBase()
}

// RootEntry describes one exposed table: its type, row stride, row count and rows.
type RootEntry struct {
	TypeIndex   int16  // byte offset 0-1
	Unknown     int16  // byte offset 2-3
	ValueOffset int32  // byte offset 4-7, row array offset relative to the value section
	ValueSize   int32  // byte offset 8-11, row stride
	ValueCount  int32  // byte offset 12-15, row count
	NameHash    uint32 // byte offset 16-19
}

// ParseRootEntry parses a RootEntry from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the record (must be at least 20 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - RootEntry: Parsed record
//   - error: ErrInvalidRecordSize if data is too short
func ParseRootEntry(data []byte, engine endian.EndianEngine) (RootEntry, error) {
	if len(data) < RootEntrySize {
		return RootEntry{}, errs.ErrInvalidRecordSize
	}

	return RootEntry{
		TypeIndex:   endian.Int16(engine, data[0:2]),
		Unknown:     endian.Int16(engine, data[2:4]),
		ValueOffset: endian.Int32(engine, data[4:8]),
		ValueSize:   endian.Int32(engine, data[8:12]),
		ValueCount:  endian.Int32(engine, data[12:16]),
		NameHash:    engine.Uint32(data[16:20]),
	}, nil
}

// Bytes serializes the record padded to the 32-byte record stride.
func (e RootEntry) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, RdbnRecordStride)
	endian.PutInt16(engine, b[0:2], e.TypeIndex)
	endian.PutInt16(engine, b[2:4], e.Unknown)
	endian.PutInt32(engine, b[4:8], e.ValueOffset)
	endian.PutInt32(engine, b[8:12], e.ValueSize)
	endian.PutInt32(engine, b[12:16], e.ValueCount)
	engine.PutUint32(b[16:20], e.NameHash)

	return b
}

// TypeEntry describes a row layout as a run of field records.
type TypeEntry struct {
	NameHash    uint32 // byte offset 0-3
	UnknownHash uint32 // byte offset 4-7
	FieldIndex  int16  // byte offset 8-9, first field record
	FieldCount  int16  // byte offset 10-11
}

// ParseTypeEntry parses a TypeEntry from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the record (must be at least 12 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - TypeEntry: Parsed record
//   - error: ErrInvalidRecordSize if data is too short
func ParseTypeEntry(data []byte, engine endian.EndianEngine) (TypeEntry, error) {
	if len(data) < TypeEntrySize {
		return TypeEntry{}, errs.ErrInvalidRecordSize
	}

	return TypeEntry{
		NameHash:    engine.Uint32(data[0:4]),
		UnknownHash: engine.Uint32(data[4:8]),
		FieldIndex:  endian.Int16(engine, data[8:10]),
		FieldCount:  endian.Int16(engine, data[10:12]),
	}, nil
}

// Bytes serializes the record padded to the 32-byte record stride.
func (e TypeEntry) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, RdbnRecordStride)
	engine.PutUint32(b[0:4], e.NameHash)
	engine.PutUint32(b[4:8], e.UnknownHash)
	endian.PutInt16(engine, b[8:10], e.FieldIndex)
	endian.PutInt16(engine, b[10:12], e.FieldCount)

	return b
}

// FieldEntry describes one column of a row layout.
//
// ValueOffset and ValueSize are authoritative: the byte layout of a field is never
// derived from its type tag.
type FieldEntry struct {
	NameHash     uint32 // byte offset 0-3
	Type         int16  // byte offset 4-5
	TypeCategory int16  // byte offset 6-7
	ValueSize    int32  // byte offset 8-11, size of one value
	ValueOffset  int32  // byte offset 12-15, offset inside the row
	ValueCount   int32  // byte offset 16-19, values per row
}

// ParseFieldEntry parses a FieldEntry from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the record (must be at least 20 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - FieldEntry: Parsed record
//   - error: ErrInvalidRecordSize if data is too short
func ParseFieldEntry(data []byte, engine endian.EndianEngine) (FieldEntry, error) {
	if len(data) < FieldEntrySize {
		return FieldEntry{}, errs.ErrInvalidRecordSize
	}

	return FieldEntry{
		NameHash:     engine.Uint32(data[0:4]),
		Type:         endian.Int16(engine, data[4:6]),
		TypeCategory: endian.Int16(engine, data[6:8]),
		ValueSize:    endian.Int32(engine, data[8:12]),
		ValueOffset:  endian.Int32(engine, data[12:16]),
		ValueCount:   endian.Int32(engine, data[16:20]),
	}, nil
}

// Bytes serializes the record padded to the 32-byte record stride.
func (e FieldEntry) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, RdbnRecordStride)
	engine.PutUint32(b[0:4], e.NameHash)
	endian.PutInt16(engine, b[4:6], e.Type)
	endian.PutInt16(engine, b[6:8], e.TypeCategory)
	endian.PutInt32(engine, b[8:12], e.ValueSize)
	endian.PutInt32(engine, b[12:16], e.ValueOffset)
	endian.PutInt32(engine, b[16:20], e.ValueCount)

	return b
}
