package t2b

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cfgbin/cursor"
	"github.com/arloliu/cfgbin/endian"
	"github.com/arloliu/cfgbin/errs"
	"github.com/arloliu/cfgbin/format"
	"github.com/arloliu/cfgbin/internal/fixture"
	"github.com/arloliu/cfgbin/internal/hash"
	"github.com/arloliu/cfgbin/section"
)

const markerName = "CFG_FILE_SIZE"

func marker(values ...fixture.T2bValue) fixture.T2bEntry {
	if len(values) == 0 {
		values = []fixture.T2bValue{fixture.IntValue(0x40)}
	}

	return fixture.T2bEntry{Name: markerName, Values: values}
}

func speedFile() *fixture.T2b {
	return &fixture.T2b{
		Entries: []fixture.T2bEntry{
			marker(),
			{Name: "Speed", Values: []fixture.T2bValue{fixture.IntValue(250)}},
		},
	}
}

func TestDecode_Speed(t *testing.T) {
	require := require.New(t)

	file, err := Decode(speedFile().Build())
	require.NoError(err)

	require.Equal(format.ValueLengthInt, file.ValueLength)
	require.Equal(format.HashCrc32Standard, file.HashType)
	require.Equal([]Entry{{
		Name:   "Speed",
		Values: []EntryValue{{Type: ValueInteger, Value: Integer(250)}},
	}}, file.Entries)
}

func TestDecode_ValueLength(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		b := speedFile()
		b.Entries = append(b.Entries, fixture.T2bEntry{Name: "Wide", Values: []fixture.T2bValue{
			fixture.IntValue(1), fixture.IntValue(2), fixture.IntValue(3), fixture.IntValue(4), fixture.IntValue(5),
		}})

		file, err := Decode(b.Build())
		require.NoError(t, err)
		require.Equal(t, format.ValueLengthInt, file.ValueLength)
		require.Len(t, file.Entries, 2)
		require.Len(t, file.Entries[1].Values, 5)
		require.Equal(t, Integer(5), file.Entries[1].Values[4].Value)
	})

	t.Run("long", func(t *testing.T) {
		// The marker's second value reads as an invalid tag byte under 4-byte values.
		b := &fixture.T2b{
			Long: true,
			Entries: []fixture.T2bEntry{
				marker(fixture.IntValue(0), fixture.IntValue(0x0000030100000000)),
				{Name: "Speed", Values: []fixture.T2bValue{fixture.IntValue(250)}},
			},
		}

		file, err := Decode(b.Build())
		require.NoError(t, err)
		require.Equal(t, format.ValueLengthLong, file.ValueLength)
		require.Equal(t, []EntryValue{{Type: ValueInteger, Value: Long(250)}}, file.Entries[0].Values)
	})

	t.Run("unsatisfiable", func(t *testing.T) {
		b := speedFile()
		b.EntryPadding = 32

		_, err := Decode(b.Build())
		require.ErrorIs(t, err, errs.ErrFormatMismatch)
		require.ErrorIs(t, err, errs.ErrValueLengthUndetected)
	})
}

func TestDetectValueLength_KeepsPosition(t *testing.T) {
	require := require.New(t)

	data := speedFile().Build()
	r := cursorAtEntries(data)

	length, ok := detectValueLength(r, 2, int(endian.GetLittleEndianEngine().Uint32(data[4:8])))
	require.True(ok)
	require.Equal(format.ValueLengthInt, length)
	require.Equal(section.EntryHeaderSize, r.Position())
}

func TestDetectHashType(t *testing.T) {
	require := require.New(t)

	name := "ChrParam"

	got, ok := detectHashType(hash.Crc32Standard([]byte(name)), name)
	require.True(ok)
	require.Equal(format.HashCrc32Standard, got)

	got, ok = detectHashType(hash.Crc32Jam([]byte(name)), name)
	require.True(ok)
	require.Equal(format.HashCrc32Jam, got)

	_, ok = detectHashType(0x12345678, name)
	require.False(ok)
}

func TestDecode_JamFile(t *testing.T) {
	require := require.New(t)

	b := speedFile()
	b.Jam = true

	file, err := Decode(b.Build())
	require.NoError(err)
	require.Equal(format.HashCrc32Jam, file.HashType)
	require.Equal("Speed", file.Entries[0].Name)
}

func TestDecode_ValueKinds(t *testing.T) {
	t.Run("int width", func(t *testing.T) {
		b := &fixture.T2b{
			Encoding: 1,
			Entries: []fixture.T2bEntry{
				marker(),
				{Name: "Text", Values: []fixture.T2bValue{
					fixture.StringValue("hello"),
					fixture.EmptyStringValue(),
					fixture.FloatValue(1.5),
					fixture.IntValue(-7),
				}},
			},
		}

		file, err := Decode(b.Build())
		require.NoError(t, err)
		require.Equal(t, int16(1), file.Encoding)
		require.Equal(t, []EntryValue{
			{Type: ValueString, Value: String("hello")},
			{Type: ValueString, Value: String("")},
			{Type: ValueFloat, Value: Float32(1.5)},
			{Type: ValueInteger, Value: Integer(-7)},
		}, file.Entries[0].Values)
	})

	t.Run("long width", func(t *testing.T) {
		b := &fixture.T2b{
			Long: true,
			Entries: []fixture.T2bEntry{
				marker(fixture.IntValue(0), fixture.IntValue(0x0000030100000000)),
				{Name: "Mixed", Values: []fixture.T2bValue{
					fixture.FloatValue(2.25),
					fixture.StringValue("world"),
					fixture.IntValue(1 << 40),
				}},
			},
		}

		file, err := Decode(b.Build())
		require.NoError(t, err)
		require.Equal(t, []EntryValue{
			{Type: ValueFloat, Value: Float64(2.25)},
			{Type: ValueString, Value: String("world")},
			{Type: ValueInteger, Value: Long(1 << 40)},
		}, file.Entries[0].Values)
	})
}

func TestDecode_RebasedNameOffsets(t *testing.T) {
	require := require.New(t)

	b := speedFile()
	b.NameBase = 0x100

	file, err := Decode(b.Build())
	require.NoError(err)
	require.Equal("Speed", file.Entries[0].Name)
}

func TestDecode_NoEntries(t *testing.T) {
	require := require.New(t)

	b := &fixture.T2b{Entries: []fixture.T2bEntry{marker()}}

	file, err := Decode(b.Build())
	require.NoError(err)
	require.Empty(file.Entries)
	require.Empty(file.Groups())
}

func TestFile_Groups(t *testing.T) {
	require := require.New(t)

	b := &fixture.T2b{Entries: []fixture.T2bEntry{
		marker(),
		{Name: "Beta", Values: []fixture.T2bValue{fixture.IntValue(1)}},
		{Name: "Alpha", Values: []fixture.T2bValue{fixture.IntValue(2)}},
		{Name: "Beta", Values: []fixture.T2bValue{fixture.IntValue(3), fixture.IntValue(4)}},
	}}

	file, err := Decode(b.Build())
	require.NoError(err)

	groups := file.Groups()
	require.Len(groups, 2)
	require.Equal("Beta", groups[0].Name)
	require.Len(groups[0].Entries, 2)
	require.Len(groups[0].Entries[1].Values, 2)
	require.Equal("Alpha", groups[1].Name)
	require.Len(groups[1].Entries, 1)
}

func TestDecode_Rejections(t *testing.T) {
	t.Run("short buffer", func(t *testing.T) {
		_, err := Decode(make([]byte, section.T2bMinimumSize-1))
		require.ErrorIs(t, err, errs.ErrFormatMismatch)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("footer mismatch", func(t *testing.T) {
		data := speedFile().Build()
		data[len(data)-section.T2bFooterSize] ^= 0xFF

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrFormatMismatch)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("empty checksum section", func(t *testing.T) {
		_, err := Decode((&fixture.T2b{}).Build())
		require.ErrorIs(t, err, errs.ErrFormatMismatch)
		require.ErrorIs(t, err, errs.ErrEmptyChecksumSection)
	})

	t.Run("value strings beyond buffer", func(t *testing.T) {
		data := speedFile().Build()
		endian.GetLittleEndianEngine().PutUint32(data[4:8], uint32(len(data)+1)) //nolint:gosec

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrFormatMismatch)
		require.ErrorIs(t, err, errs.ErrOffsetOutOfRange)
	})

	t.Run("hash undetected", func(t *testing.T) {
		data := speedFile().Build()

		crc := endian.GetLittleEndianEngine().AppendUint32(nil, hash.Crc32Standard([]byte(markerName)))
		pos := bytes.LastIndex(data, crc)
		require.Positive(t, pos)
		data[pos] ^= 0xFF

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrFormatMismatch)
		require.ErrorIs(t, err, errs.ErrHashTypeUndetected)
	})
}

// Entry records of speedFile: the marker at 0x10, "Speed" at 0x1C with its value at 0x24.
func TestDecode_Fatal(t *testing.T) {
	t.Run("unknown checksum", func(t *testing.T) {
		data := speedFile().Build()
		endian.GetLittleEndianEngine().PutUint32(data[0x1C:0x20], 0xCAFEBABE)

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrUnknownChecksum)
		require.False(t, errs.IsMismatch(err))
	})

	t.Run("string value beyond blob", func(t *testing.T) {
		b := &fixture.T2b{Entries: []fixture.T2bEntry{
			marker(),
			{Name: "Speed", Values: []fixture.T2bValue{fixture.StringValue("fast")}},
		}}
		data := b.Build()
		endian.GetLittleEndianEngine().PutUint32(data[0x24:0x28], 0x7FFF)

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrOffsetOutOfRange)
		require.False(t, errs.IsMismatch(err))
	})
}

func TestValueType_String(t *testing.T) {
	require := require.New(t)

	require.Equal("String", ValueString.String())
	require.Equal("FloatingPoint", ValueFloat.String())
	require.Equal("Invalid", ValueInvalid.String())
	require.Equal("Unknown(7)", ValueType(7).String())
}

func cursorAtEntries(data []byte) *cursor.Reader {
	r := cursor.NewReader(data)
	r.SetPosition(section.EntryHeaderSize)

	return r
}
