// Package fixture builds synthetic cfg.bin containers for tests.
//
// The builders lay containers out the way the decoders expect to find them, using the
// section package record encoders, so tests can describe a file by its logical content
// and corrupt specific bytes afterwards.
package fixture

import (
	"github.com/arloliu/cfgbin/endian"
	"github.com/arloliu/cfgbin/internal/hash"
	"github.com/arloliu/cfgbin/section"
)

// rdbnDataBase is the absolute offset of the data section in built RDBN files.
const rdbnDataBase = 0x40

// RdbnField describes one field record.
type RdbnField struct {
	Name     string
	Type     int16
	Category int16
	Size     int32
	Offset   int32
	Count    int32
}

// RdbnType describes one type record and its field run.
type RdbnType struct {
	Name        string
	UnknownHash uint32
	Fields      []RdbnField
}

// RdbnList describes one root entry and its rows.
type RdbnList struct {
	Name      string
	TypeIndex int16
	RowSize   int32
	Rows      [][]byte // each row is padded or truncated to RowSize
}

// Rdbn is an RDBN container description.
type Rdbn struct {
	Types []RdbnType
	Lists []RdbnList
	// Strings are extra blob strings, e.g. targets of string-typed field values.
	Strings []string
}

// NameHash returns the hash the builder stores for name.
func NameHash(name string) uint32 {
	return hash.Crc32Standard([]byte(name))
}

// strings returns the blob strings in layout order without duplicates.
func (b *Rdbn) strings() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, l := range b.Lists {
		add(l.Name)
	}
	for _, t := range b.Types {
		add(t.Name)
		for _, f := range t.Fields {
			add(f.Name)
		}
	}
	for _, s := range b.Strings {
		add(s)
	}

	return out
}

// StringOffset returns the offset of s relative to the string blob, the value a
// string-typed field stores to reference it. It returns -1 if s is not in the blob.
func (b *Rdbn) StringOffset(s string) int32 {
	offset := int32(0)
	for _, str := range b.strings() {
		if str == s {
			return offset
		}
		offset += int32(len(str)) + 1 //nolint:gosec
	}

	return -1
}

// Build serializes the container.
func (b *Rdbn) Build() []byte {
	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, rdbnDataBase)

	rel := func() int { return len(buf) - rdbnDataBase }
	words := func(n int) int16 { return int16(n >> section.RdbnWordShift) } //nolint:gosec

	rootOffset := rel()
	for _, l := range b.Lists {
		buf = append(buf, section.RootEntry{
			TypeIndex:  l.TypeIndex,
			ValueSize:  l.RowSize,
			ValueCount: int32(len(l.Rows)), //nolint:gosec
			NameHash:   NameHash(l.Name),
		}.Bytes(engine)...)
	}

	typeOffset := rel()
	var fields []section.FieldEntry
	for _, t := range b.Types {
		buf = append(buf, section.TypeEntry{
			NameHash:    NameHash(t.Name),
			UnknownHash: t.UnknownHash,
			FieldIndex:  int16(len(fields)),   //nolint:gosec
			FieldCount:  int16(len(t.Fields)), //nolint:gosec
		}.Bytes(engine)...)

		for _, f := range t.Fields {
			fields = append(fields, section.FieldEntry{
				NameHash:     NameHash(f.Name),
				Type:         f.Type,
				TypeCategory: f.Category,
				ValueSize:    f.Size,
				ValueOffset:  f.Offset,
				ValueCount:   f.Count,
			})
		}
	}

	fieldOffset := rel()
	for _, f := range fields {
		buf = append(buf, f.Bytes(engine)...)
	}

	strs := b.strings()

	hashOffset := rel()
	for _, s := range strs {
		buf = engine.AppendUint32(buf, NameHash(s))
	}

	offsetsOffset := rel()
	for _, s := range strs {
		buf = engine.AppendUint32(buf, uint32(b.StringOffset(s))) //nolint:gosec
	}

	valueOffset := rel()
	rowOffsets := make([]int32, len(b.Lists))
	for i, l := range b.Lists {
		rowOffsets[i] = int32(rel() - valueOffset) //nolint:gosec
		for _, row := range l.Rows {
			padded := make([]byte, l.RowSize)
			copy(padded, row)
			buf = append(buf, padded...)
		}
		for len(buf)%4 != 0 {
			buf = append(buf, 0)
		}
	}

	stringOffset := rel()
	for _, s := range strs {
		buf = append(buf, s...)
		buf = append(buf, 0)
	}

	// Root records were written before the value layout was known.
	for i := range b.Lists {
		pos := rdbnDataBase + rootOffset + i*section.RdbnRecordStride + 4
		engine.PutUint32(buf[pos:pos+4], uint32(rowOffsets[i])) //nolint:gosec
	}

	header := section.RdbnHeader{
		Magic:               section.MagicRDBN,
		HeaderSize:          section.RdbnHeaderSize,
		Version:             1,
		DataOffset:          words(rdbnDataBase),
		DataSize:            int32(len(buf) - rdbnDataBase), //nolint:gosec
		TypeOffset:          words(typeOffset),
		TypeCount:           int16(len(b.Types)), //nolint:gosec
		FieldOffset:         words(fieldOffset),
		FieldCount:          int16(len(fields)), //nolint:gosec
		RootOffset:          words(rootOffset),
		RootCount:           int16(len(b.Lists)), //nolint:gosec
		StringHashOffset:    words(hashOffset),
		StringOffsetsOffset: words(offsetsOffset),
		HashCount:           int16(len(strs)), //nolint:gosec
		ValueOffset:         words(valueOffset),
		StringOffset:        int32(stringOffset), //nolint:gosec
	}
	copy(buf, header.Bytes(engine))

	return buf
}

// Int32 encodes little-endian 32-bit values back to back, for building rows.
func Int32(values ...int32) []byte {
	engine := endian.GetLittleEndianEngine()
	b := make([]byte, 0, 4*len(values))
	for _, v := range values {
		b = engine.AppendUint32(b, uint32(v)) //nolint:gosec
	}

	return b
}
