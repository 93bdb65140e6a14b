package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cfgbin/endian"
	"github.com/arloliu/cfgbin/errs"
)

func TestT2bFooter(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	footer := T2bFooter{Magic: MagicT2B, Unknown1: 0x1FE, Encoding: 1, Unknown2: 0}
	data := footer.Bytes(engine)
	require.Len(t, data, T2bFooterSize)
	require.Equal(t, []byte{0x01, 0x74, 0x32, 0x62}, data[0:4])

	parsed, err := ParseT2bFooter(data, engine)
	require.NoError(t, err)
	require.Equal(t, footer, parsed)

	_, err = ParseT2bFooter(data[:T2bFooterRecordSize-1], engine)
	require.ErrorIs(t, err, errs.ErrInvalidRecordSize)
}

func TestEntryHeader(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	header := EntryHeader{EntryCount: 3, StringDataOffset: 0x40, StringDataLength: 0x10, StringDataCount: 2}
	parsed, err := ParseEntryHeader(header.Bytes(engine), engine)
	require.NoError(t, err)
	require.Equal(t, header, parsed)

	_, err = ParseEntryHeader(make([]byte, EntryHeaderSize-1), engine)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestChecksumRecords(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	header := ChecksumHeader{Size: 0x30, Count: 2, StringOffset: 0x20, StringSize: 0x10}
	parsedHeader, err := ParseChecksumHeader(header.Bytes(engine), engine)
	require.NoError(t, err)
	require.Equal(t, header, parsedHeader)

	entry := ChecksumEntry{Checksum: 0xCAFEBABE, StringOffset: 6}
	data := entry.Bytes(engine)
	require.Len(t, data, ChecksumEntrySize)

	parsedEntry, err := ParseChecksumEntry(data, engine)
	require.NoError(t, err)
	require.Equal(t, entry, parsedEntry)

	_, err = ParseChecksumEntry(data[:4], engine)
	require.ErrorIs(t, err, errs.ErrInvalidRecordSize)
	_, err = ParseChecksumHeader(data, engine)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}
