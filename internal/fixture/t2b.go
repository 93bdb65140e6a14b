package fixture

import (
	"math"

	"github.com/arloliu/cfgbin/endian"
	"github.com/arloliu/cfgbin/internal/hash"
	"github.com/arloliu/cfgbin/section"
)

// T2B value type tags.
const (
	T2bString  uint8 = 0
	T2bInteger uint8 = 1
	T2bFloat   uint8 = 2
	T2bInvalid uint8 = 3
)

// T2bValue describes one entry value.
type T2bValue struct {
	Type  uint8
	Int   int64   // integer value, or the raw value of an invalid tag
	Float float64 // stored as float32 bits in 4-byte files
	Str   string
	Empty bool // string value stored as a negative offset
}

// IntValue returns an integer value.
func IntValue(v int64) T2bValue { return T2bValue{Type: T2bInteger, Int: v} }

// FloatValue returns a floating point value.
func FloatValue(v float64) T2bValue { return T2bValue{Type: T2bFloat, Float: v} }

// StringValue returns a string value stored in the value blob.
func StringValue(s string) T2bValue { return T2bValue{Type: T2bString, Str: s} }

// EmptyStringValue returns a string value with a negative offset.
func EmptyStringValue() T2bValue { return T2bValue{Type: T2bString, Empty: true} }

// T2bEntry describes one entry record.
type T2bEntry struct {
	Name   string
	Values []T2bValue
}

// T2b is a T2B container description. Entries[0] is written as is, so tests supply the
// file-size marker themselves.
type T2b struct {
	Entries  []T2bEntry
	Long     bool // 8-byte values
	Jam      bool // CRC-32/JAMCRC name checksums
	Encoding int16
	// EntryPadding is the number of zero bytes between the last entry and the value strings.
	EntryPadding int
	// NameBase is the name offset stored for the first checksum entry; the others follow it.
	NameBase uint32
}

func (b *T2b) checksum(name string) uint32 {
	if b.Jam {
		return hash.Crc32Jam([]byte(name))
	}

	return hash.Crc32Standard([]byte(name))
}

func pad(buf []byte, align int) []byte {
	for len(buf)%align != 0 {
		buf = append(buf, 0)
	}

	return buf
}

// Build serializes the container.
func (b *T2b) Build() []byte {
	engine := endian.GetLittleEndianEngine()

	// Value strings, deduplicated in order of use.
	var valueBlob []byte
	valueOffsets := make(map[string]int)
	for _, e := range b.Entries {
		for _, v := range e.Values {
			if v.Type != T2bString || v.Empty {
				continue
			}
			if _, ok := valueOffsets[v.Str]; !ok {
				valueOffsets[v.Str] = len(valueBlob)
				valueBlob = append(valueBlob, v.Str...)
				valueBlob = append(valueBlob, 0)
			}
		}
	}

	buf := make([]byte, section.EntryHeaderSize)
	for _, e := range b.Entries {
		buf = engine.AppendUint32(buf, b.checksum(e.Name))
		buf = append(buf, byte(len(e.Values)))

		for j := 0; j < len(e.Values); j += section.T2bTypesPerByte {
			var chunk byte
			for h := 0; h < section.T2bTypesPerByte && j+h < len(e.Values); h++ {
				chunk |= (e.Values[j+h].Type & 0x3) << (2 * h)
			}
			buf = append(buf, chunk)
		}
		buf = pad(buf, section.T2bEntryAlignment)

		for _, v := range e.Values {
			buf = b.appendValue(buf, v, valueOffsets)
		}
	}
	buf = append(buf, make([]byte, b.EntryPadding)...)

	valueStart := len(buf)
	buf = append(buf, valueBlob...)

	copy(buf, section.EntryHeader{
		EntryCount:       uint32(len(b.Entries)),    //nolint:gosec
		StringDataOffset: uint32(valueStart),        //nolint:gosec
		StringDataLength: uint32(len(valueBlob)),    //nolint:gosec
		StringDataCount:  uint32(len(valueOffsets)), //nolint:gosec
	}.Bytes(engine))

	buf = pad(buf, section.T2bSectionAlignment)
	buf = append(buf, b.checksumSection()...)
	buf = pad(buf, section.T2bSectionAlignment)

	return append(buf, section.T2bFooter{Magic: section.MagicT2B, Unknown1: 1, Encoding: b.Encoding}.Bytes(engine)...)
}

func (b *T2b) appendValue(buf []byte, v T2bValue, valueOffsets map[string]int) []byte {
	engine := endian.GetLittleEndianEngine()

	var raw int64
	switch v.Type {
	case T2bString:
		raw = -1
		if !v.Empty {
			raw = int64(valueOffsets[v.Str])
		}
	case T2bFloat:
		if b.Long {
			raw = int64(math.Float64bits(v.Float)) //nolint:gosec
		} else {
			raw = int64(math.Float32bits(float32(v.Float)))
		}
	default:
		raw = v.Int
	}

	if b.Long {
		return engine.AppendUint64(buf, uint64(raw)) //nolint:gosec
	}

	return engine.AppendUint32(buf, uint32(raw)) //nolint:gosec
}

func (b *T2b) checksumSection() []byte {
	engine := endian.GetLittleEndianEngine()

	var names []string
	seen := make(map[string]struct{})
	for _, e := range b.Entries {
		if _, ok := seen[e.Name]; !ok {
			seen[e.Name] = struct{}{}
			names = append(names, e.Name)
		}
	}

	var blob []byte
	pairs := make([]byte, 0, len(names)*section.ChecksumEntrySize)
	for _, name := range names {
		pairs = append(pairs, section.ChecksumEntry{
			Checksum:     b.checksum(name),
			StringOffset: b.NameBase + uint32(len(blob)), //nolint:gosec
		}.Bytes(engine)...)
		blob = append(blob, name...)
		blob = append(blob, 0)
	}

	stringOffset := section.ChecksumHeaderSize + len(pairs)
	out := section.ChecksumHeader{
		Size:         uint32(stringOffset + len(blob)), //nolint:gosec
		Count:        uint32(len(names)),               //nolint:gosec
		StringOffset: uint32(stringOffset),             //nolint:gosec
		StringSize:   uint32(len(blob)),                //nolint:gosec
	}.Bytes(engine)
	out = append(out, pairs...)

	return append(out, blob...)
}
