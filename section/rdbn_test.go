package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cfgbin/endian"
	"github.com/arloliu/cfgbin/errs"
)

func TestRdbnHeaderParseBytes(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	header := RdbnHeader{
		Magic:               MagicRDBN,
		HeaderSize:          RdbnHeaderSize,
		Version:             3,
		DataOffset:          0x10,
		DataSize:            0x200,
		TypeOffset:          0x08,
		TypeCount:           1,
		FieldOffset:         0x10,
		FieldCount:          2,
		RootOffset:          0,
		RootCount:           1,
		StringHashOffset:    0x20,
		StringOffsetsOffset: 0x22,
		HashCount:           4,
		ValueOffset:         0x24,
		StringOffset:        0xA0,
	}

	data := header.Bytes(engine)
	require.Len(t, data, RdbnHeaderSize)
	require.Equal(t, []byte("RDBN"), data[0:4])

	parsed, err := ParseRdbnHeader(data, engine)
	require.NoError(t, err)
	require.Equal(t, header, parsed)

	require.Equal(t, 0x40, parsed.DataBase())
	require.Equal(t, 0x40+0x20, parsed.SectionOffset(parsed.TypeOffset))
	require.Equal(t, 0x40, parsed.SectionOffset(parsed.RootOffset))
	require.Equal(t, 0x40+0xA0, parsed.StringBase())
}

func TestParseRdbnHeaderTooShort(t *testing.T) {
	_, err := ParseRdbnHeader(make([]byte, RdbnHeaderSize-1), endian.GetLittleEndianEngine())
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestRdbnRecords(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	t.Run("RootEntry", func(t *testing.T) {
		entry := RootEntry{TypeIndex: 2, Unknown: -1, ValueOffset: 0x30, ValueSize: 8, ValueCount: 5, NameHash: 0xDEADBEEF}
		data := entry.Bytes(engine)
		require.Len(t, data, RdbnRecordStride)

		parsed, err := ParseRootEntry(data, engine)
		require.NoError(t, err)
		require.Equal(t, entry, parsed)

		_, err = ParseRootEntry(data[:RootEntrySize-1], engine)
		require.ErrorIs(t, err, errs.ErrInvalidRecordSize)
	})

	t.Run("TypeEntry", func(t *testing.T) {
		entry := TypeEntry{NameHash: 1, UnknownHash: 2, FieldIndex: 3, FieldCount: 4}
		parsed, err := ParseTypeEntry(entry.Bytes(engine), engine)
		require.NoError(t, err)
		require.Equal(t, entry, parsed)

		_, err = ParseTypeEntry(make([]byte, TypeEntrySize-1), engine)
		require.ErrorIs(t, err, errs.ErrInvalidRecordSize)
	})

	t.Run("FieldEntry", func(t *testing.T) {
		entry := FieldEntry{NameHash: 7, Type: 0x14, TypeCategory: 2, ValueSize: 4, ValueOffset: 12, ValueCount: 3}
		parsed, err := ParseFieldEntry(entry.Bytes(engine), engine)
		require.NoError(t, err)
		require.Equal(t, entry, parsed)

		_, err = ParseFieldEntry(make([]byte, FieldEntrySize-1), engine)
		require.ErrorIs(t, err, errs.ErrInvalidRecordSize)
	})
}
