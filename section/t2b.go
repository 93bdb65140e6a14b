package section

import (
	"github.com/arloliu/cfgbin/endian"
	"github.com/arloliu/cfgbin/errs"
)

// T2bFooter is the trailing record located 0x10 bytes before the end of a T2B file.
// It is the T2B format signature.
type T2bFooter struct {
	Magic    uint32 // byte offset 0-3
	Unknown1 int16  // byte offset 4-5
	Encoding int16  // byte offset 6-7, string encoding id
	Unknown2 int16  // byte offset 8-9
}

// ParseT2bFooter parses a T2bFooter from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the footer (must be at least 10 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - T2bFooter: Parsed footer; the magic is not validated here
//   - error: ErrInvalidRecordSize if data is too short
func ParseT2bFooter(data []byte, engine endian.EndianEngine) (T2bFooter, error) {
	if len(data) < T2bFooterRecordSize {
		return T2bFooter{}, errs.ErrInvalidRecordSize
	}

	return T2bFooter{
		Magic:    engine.Uint32(data[0:4]),
		Unknown1: endian.Int16(engine, data[4:6]),
		Encoding: endian.Int16(engine, data[6:8]),
		Unknown2: endian.Int16(engine, data[8:10]),
	}, nil
}

// Bytes serializes the footer into its 16-byte slot.
func (f T2bFooter) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, T2bFooterSize)
	engine.PutUint32(b[0:4], f.Magic)
	endian.PutInt16(engine, b[4:6], f.Unknown1)
	endian.PutInt16(engine, b[6:8], f.Encoding)
	endian.PutInt16(engine, b[8:10], f.Unknown2)

	return b
}

// EntryHeader opens the T2B entry section at offset 0.
type EntryHeader struct {
	EntryCount       uint32 // byte offset 0-3
	StringDataOffset uint32 // byte offset 4-7, value string blob, relative to the section
	StringDataLength uint32 // byte offset 8-11
	StringDataCount  uint32 // byte offset 12-15
}

// ParseEntryHeader parses an EntryHeader from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 16 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - EntryHeader: Parsed header
//   - error: ErrInvalidHeaderSize if data is too short
func ParseEntryHeader(data []byte, engine endian.EndianEngine) (EntryHeader, error) {
	if len(data) < EntryHeaderSize {
		return EntryHeader{}, errs.ErrInvalidHeaderSize
	}

	return EntryHeader{
		EntryCount:       engine.Uint32(data[0:4]),
		StringDataOffset: engine.Uint32(data[4:8]),
		StringDataLength: engine.Uint32(data[8:12]),
		StringDataCount:  engine.Uint32(data[12:16]),
	}, nil
}

// Bytes serializes the header.
func (h EntryHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, EntryHeaderSize)
	engine.PutUint32(b[0:4], h.EntryCount)
	engine.PutUint32(b[4:8], h.StringDataOffset)
	engine.PutUint32(b[8:12], h.StringDataLength)
	engine.PutUint32(b[12:16], h.StringDataCount)

	return b
}

// ChecksumHeader opens the T2B checksum section.
type ChecksumHeader struct {
	Size         uint32 // byte offset 0-3
	Count        uint32 // byte offset 4-7
	StringOffset uint32 // byte offset 8-11, name string blob, relative to the section
	StringSize   uint32 // byte offset 12-15
}

// ParseChecksumHeader parses a ChecksumHeader from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 16 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - ChecksumHeader: Parsed header
//   - error: ErrInvalidHeaderSize if data is too short
func ParseChecksumHeader(data []byte, engine endian.EndianEngine) (ChecksumHeader, error) {
	if len(data) < ChecksumHeaderSize {
		return ChecksumHeader{}, errs.ErrInvalidHeaderSize
	}

	return ChecksumHeader{
		Size:         engine.Uint32(data[0:4]),
		Count:        engine.Uint32(data[4:8]),
		StringOffset: engine.Uint32(data[8:12]),
		StringSize:   engine.Uint32(data[12:16]),
	}, nil
}

// Bytes serializes the header.
func (h ChecksumHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, ChecksumHeaderSize)
	engine.PutUint32(b[0:4], h.Size)
	engine.PutUint32(b[4:8], h.Count)
	engine.PutUint32(b[8:12], h.StringOffset)
	engine.PutUint32(b[12:16], h.StringSize)

	return b
}

// ChecksumEntry maps a name checksum to the offset of its text in the name blob.
type ChecksumEntry struct {
	Checksum     uint32 // byte offset 0-3
	StringOffset uint32 // byte offset 4-7
}

// ParseChecksumEntry parses a ChecksumEntry from a byte slice.
func ParseChecksumEntry(data []byte, engine endian.EndianEngine) (ChecksumEntry, error) {
	if len(data) < ChecksumEntrySize {
		return ChecksumEntry{}, errs.ErrInvalidRecordSize
	}

	return ChecksumEntry{
		Checksum:     engine.Uint32(data[0:4]),
		StringOffset: engine.Uint32(data[4:8]),
	}, nil
}

// Bytes serializes the pair.
func (e ChecksumEntry) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, ChecksumEntrySize)
	engine.PutUint32(b[0:4], e.Checksum)
	engine.PutUint32(b[4:8], e.StringOffset)

	return b
}
