package t2b

import (
	"fmt"
	"math"

	"github.com/arloliu/cfgbin/cursor"
	"github.com/arloliu/cfgbin/errs"
	"github.com/arloliu/cfgbin/format"
	"github.com/arloliu/cfgbin/section"
)

// File is a decoded T2B container.
type File struct {
	// Entries holds every entry in file order, without the leading file-size marker.
	Entries []Entry
	// Encoding is the footer's string encoding id. Strings are always decoded as raw
	// bytes whatever its value.
	Encoding    int16
	ValueLength format.ValueLength
	HashType    format.HashType
}

// Groups returns the entries grouped by name, in order of each name's first appearance.
func (f *File) Groups() []Group {
	index := make(map[string]int)
	var groups []Group

	for _, entry := range f.Entries {
		i, ok := index[entry.Name]
		if !ok {
			i = len(groups)
			index[entry.Name] = i
			groups = append(groups, Group{Name: entry.Name})
		}
		groups[i].Entries = append(groups[i].Entries, entry)
	}

	return groups
}

// rawEntry is an entry record before name and string resolution.
type rawEntry struct {
	checksum uint32
	types    []ValueType
	values   []int64
}

// Decode parses a T2B container.
//
// The input buffer is only borrowed: every string in the result is copied out of it.
//
// Parameters:
//   - data: Complete container bytes
//
// Returns:
//   - *File: Decoded entries and the detected layout properties
//   - error: An error wrapping errs.ErrFormatMismatch if data is not a T2B container,
//     any other error if the container is recognized but cannot be decoded
func Decode(data []byte) (*File, error) {
	if len(data) < section.T2bMinimumSize {
		return nil, errs.Mismatch(errs.ErrInvalidHeaderSize, "%d bytes", len(data))
	}

	r := cursor.NewReader(data)
	engine := r.Engine()

	r.SetPosition(len(data) - section.T2bFooterSize)
	footer, err := section.ParseT2bFooter(r.ReadBytes(section.T2bFooterRecordSize), engine)
	if err != nil {
		return nil, errs.Mismatch(err, "footer")
	}

	if footer.Magic != section.MagicT2B {
		return nil, errs.Mismatch(errs.ErrInvalidMagicNumber, "got 0x%08X", footer.Magic)
	}

	r.SetPosition(0)
	header, err := section.ParseEntryHeader(r.ReadBytes(section.EntryHeaderSize), engine)
	if err != nil {
		return nil, errs.Mismatch(err, "entry header")
	}

	valueStart := int(header.StringDataOffset)
	if !r.InRange(valueStart, int(header.StringDataLength)) {
		return nil, errs.Mismatch(errs.ErrOffsetOutOfRange, "value strings [0x%X, +0x%X)",
			valueStart, header.StringDataLength)
	}

	valueLength := format.ValueLengthInt
	var raw []rawEntry
	if header.EntryCount > 0 {
		length, ok := detectValueLength(r, header.EntryCount, valueStart)
		if !ok {
			return nil, errs.Mismatch(errs.ErrValueLengthUndetected, "%d entries", header.EntryCount)
		}

		valueLength = length
		raw = readEntries(r, header.EntryCount, valueLength)
	}

	valueStrings := data[valueStart : valueStart+int(header.StringDataLength)]
	if header.StringDataLength > 0 {
		r.SetPosition(valueStart + int(header.StringDataLength))
	}
	r.SeekAlignment(section.T2bSectionAlignment)

	names, err := readChecksumSection(r)
	if err != nil {
		return nil, err
	}

	// The first checksum entry decides the CRC variant of the file. Its rebased name
	// offset is always zero.
	first, err := cursor.CString(names.blob, 0)
	if err != nil {
		return nil, errs.Mismatch(err, "first checksum name")
	}

	hashType, ok := detectHashType(names.entries[0].Checksum, first)
	if !ok {
		return nil, errs.Mismatch(errs.ErrHashTypeUndetected, "checksum 0x%08X for %q", names.entries[0].Checksum, first)
	}

	entries, err := resolveEntries(raw, names, valueStrings, valueLength)
	if err != nil {
		return nil, err
	}

	return &File{
		Entries:     entries,
		Encoding:    footer.Encoding,
		ValueLength: valueLength,
		HashType:    hashType,
	}, nil
}

func readEntries(r *cursor.Reader, count uint32, length format.ValueLength) []rawEntry {
	entries := make([]rawEntry, count)

	for i := range entries {
		checksum := r.ReadUint32()
		valueCount := int(r.ReadUint8())
		types := readValueTypes(r, valueCount)

		values := make([]int64, valueCount)
		for j := range values {
			if length == format.ValueLengthLong {
				values[j] = r.ReadInt64()
			} else {
				values[j] = int64(r.ReadInt32())
			}
		}

		entries[i] = rawEntry{checksum: checksum, types: types, values: values}
	}

	return entries
}

// nameTable resolves entry checksums through the checksum section.
type nameTable struct {
	entries []section.ChecksumEntry
	offsets map[uint32]uint32 // checksum -> offset into blob
	blob    []byte
}

func (t *nameTable) name(checksum uint32) (string, error) {
	offset, ok := t.offsets[checksum]
	if !ok {
		return "", fmt.Errorf("%w: 0x%08X", errs.ErrUnknownChecksum, checksum)
	}

	name, err := cursor.CString(t.blob, int(offset))
	if err != nil {
		return "", fmt.Errorf("name of checksum 0x%08X at 0x%X: %w", checksum, offset, err)
	}

	return name, nil
}

// readChecksumSection parses the checksum section at the reader's position.
//
// Name offsets are stored relative to the first entry's offset; the table keeps them
// rebased so they index the name blob directly.
func readChecksumSection(r *cursor.Reader) (*nameTable, error) {
	engine := r.Engine()
	start := r.Position()

	if !r.InRange(start, section.ChecksumHeaderSize) {
		return nil, errs.Mismatch(errs.ErrOffsetOutOfRange, "checksum header at 0x%X", start)
	}

	header, err := section.ParseChecksumHeader(r.ReadBytes(section.ChecksumHeaderSize), engine)
	if err != nil {
		return nil, errs.Mismatch(err, "checksum header")
	}

	if header.Count == 0 {
		return nil, errs.Mismatch(errs.ErrEmptyChecksumSection, "at 0x%X", start)
	}

	if !r.InRange(r.Position(), int(header.Count)*section.ChecksumEntrySize) {
		return nil, errs.Mismatch(errs.ErrOffsetOutOfRange, "%d checksum entries at 0x%X", header.Count, r.Position())
	}

	entries := make([]section.ChecksumEntry, header.Count)
	for i := range entries {
		entry, err := section.ParseChecksumEntry(r.ReadBytes(section.ChecksumEntrySize), engine)
		if err != nil {
			return nil, errs.Mismatch(err, "checksum entry %d", i)
		}
		entries[i] = entry
	}

	blobStart := start + int(header.StringOffset)
	if !r.InRange(blobStart, int(header.StringSize)) {
		return nil, errs.Mismatch(errs.ErrOffsetOutOfRange, "checksum strings [0x%X, +0x%X)", blobStart, header.StringSize)
	}

	base := entries[0].StringOffset
	offsets := make(map[uint32]uint32, len(entries))
	for _, entry := range entries {
		offsets[entry.Checksum] = entry.StringOffset - base
	}

	return &nameTable{
		entries: entries,
		offsets: offsets,
		blob:    r.Slice(blobStart, int(header.StringSize)),
	}, nil
}

func resolveEntries(raw []rawEntry, names *nameTable, valueStrings []byte, length format.ValueLength) ([]Entry, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	// The leading entry is the file-size marker.
	raw = raw[1:]
	entries := make([]Entry, len(raw))

	for i, re := range raw {
		name, err := names.name(re.checksum)
		if err != nil {
			return nil, err
		}

		values := make([]EntryValue, len(re.values))
		for j, v := range re.values {
			value, err := convertValue(re.types[j], v, valueStrings, length)
			if err != nil {
				return nil, fmt.Errorf("entry %q value %d: %w", name, j, err)
			}
			values[j] = EntryValue{Type: re.types[j], Value: value}
		}

		entries[i] = Entry{Name: name, Values: values}
	}

	return entries, nil
}

// convertValue reinterprets a raw value according to its tag and the file's value width.
func convertValue(t ValueType, raw int64, valueStrings []byte, length format.ValueLength) (Value, error) {
	long := length == format.ValueLengthLong

	switch t {
	case ValueString:
		if raw < 0 {
			return String(""), nil
		}

		s, err := cursor.CString(valueStrings, int(raw))
		if err != nil {
			return nil, err
		}

		return String(s), nil
	case ValueInteger:
		if long {
			return Long(raw), nil
		}

		return Integer(int32(raw)), nil //nolint:gosec
	case ValueFloat:
		if long {
			return Float64(math.Float64frombits(uint64(raw))), nil //nolint:gosec
		}

		return Float32(math.Float32frombits(uint32(raw))), nil //nolint:gosec
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidValueType, t)
	}
}
