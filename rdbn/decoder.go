package rdbn

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/arloliu/cfgbin/cursor"
	"github.com/arloliu/cfgbin/errs"
	"github.com/arloliu/cfgbin/internal/collision"
	"github.com/arloliu/cfgbin/section"
)

// File is a decoded RDBN container.
type File struct {
	// Types holds the distinct row layouts in first-seen order.
	Types []TypeDeclaration
	// Lists holds one entry per root entry, in file order.
	Lists []ListEntry
	// Collisions lists name hashes the string table mapped to more than one string.
	// The last mapping in table order wins.
	Collisions []uint32
}

// Decode parses an RDBN container.
//
// The input buffer is only borrowed: every string and byte block in the result is
// copied out of it.
//
// Parameters:
//   - data: Complete container bytes
//
// Returns:
//   - *File: Decoded tables and distinct row layouts
//   - error: An error wrapping errs.ErrFormatMismatch if data is not an RDBN container,
//     any other error if the container is recognized but cannot be decoded
func Decode(data []byte) (*File, error) {
	if len(data) < section.RdbnHeaderSize {
		return nil, errs.Mismatch(errs.ErrInvalidHeaderSize, "%d bytes", len(data))
	}

	r := cursor.NewReader(data)
	header, err := section.ParseRdbnHeader(r.ReadBytes(section.RdbnHeaderSize), r.Engine())
	if err != nil {
		return nil, errs.Mismatch(err, "")
	}

	if header.Magic != section.MagicRDBN {
		return nil, errs.Mismatch(errs.ErrInvalidMagicNumber, "got 0x%08X", header.Magic)
	}

	d := &decoder{r: r, header: header}

	return d.decode()
}

type decoder struct {
	r      *cursor.Reader
	header section.RdbnHeader

	roots  []section.RootEntry
	types  []section.TypeEntry
	fields []section.FieldEntry
	names  *collision.Tracker
}

func (d *decoder) decode() (*File, error) {
	// Structural pass: everything here is a rejection.
	if err := d.readRecords(); err != nil {
		return nil, err
	}

	if err := d.readStringTable(); err != nil {
		return nil, err
	}

	if err := d.validateIndexes(); err != nil {
		return nil, err
	}

	// The container is identified from here on; failures are fatal.
	decls, err := d.resolveTypes()
	if err != nil {
		return nil, err
	}

	distinct, canonical := deduplicate(decls)

	lists := make([]ListEntry, 0, len(d.roots))
	for _, root := range d.roots {
		list, err := d.decodeList(root, decls[root.TypeIndex])
		if err != nil {
			return nil, err
		}

		list.TypeIndex = canonical[root.TypeIndex]
		lists = append(lists, list)
	}

	return &File{
		Types:      distinct,
		Lists:      lists,
		Collisions: d.collisions(),
	}, nil
}

// recordSpan returns the bytes needed by count records of size bytes laid out on the
// record stride. The last record is not padded.
func recordSpan(count int16, size int) int {
	if count <= 0 {
		return 0
	}

	return (int(count)-1)*section.RdbnRecordStride + size
}

func (d *decoder) checkSection(name string, offset int16, count int16, span int) error {
	if count < 0 {
		return errs.Mismatch(errs.ErrInvalidCount, "%s count %d", name, count)
	}

	if count == 0 {
		return nil
	}

	start := d.header.SectionOffset(offset)
	if !d.r.InRange(start, span) {
		return errs.Mismatch(errs.ErrOffsetOutOfRange, "%s section [0x%X, +0x%X) exceeds %d bytes",
			name, start, span, d.r.Size())
	}

	d.r.SetPosition(start)

	return nil
}

func (d *decoder) readRecords() error {
	h := d.header
	engine := d.r.Engine()

	if err := d.checkSection("root", h.RootOffset, h.RootCount, recordSpan(h.RootCount, section.RootEntrySize)); err != nil {
		return err
	}
	d.roots = make([]section.RootEntry, h.RootCount)
	for i := range d.roots {
		entry, err := section.ParseRootEntry(d.r.ReadBytes(section.RootEntrySize), engine)
		if err != nil {
			return errs.Mismatch(err, "root %d", i)
		}
		d.roots[i] = entry
		d.r.Skip(section.RdbnRecordStride - section.RootEntrySize)
	}

	if err := d.checkSection("type", h.TypeOffset, h.TypeCount, recordSpan(h.TypeCount, section.TypeEntrySize)); err != nil {
		return err
	}
	d.types = make([]section.TypeEntry, h.TypeCount)
	for i := range d.types {
		entry, err := section.ParseTypeEntry(d.r.ReadBytes(section.TypeEntrySize), engine)
		if err != nil {
			return errs.Mismatch(err, "type %d", i)
		}
		d.types[i] = entry
		d.r.Skip(section.RdbnRecordStride - section.TypeEntrySize)
	}

	if err := d.checkSection("field", h.FieldOffset, h.FieldCount, recordSpan(h.FieldCount, section.FieldEntrySize)); err != nil {
		return err
	}
	d.fields = make([]section.FieldEntry, h.FieldCount)
	for i := range d.fields {
		entry, err := section.ParseFieldEntry(d.r.ReadBytes(section.FieldEntrySize), engine)
		if err != nil {
			return errs.Mismatch(err, "field %d", i)
		}
		d.fields[i] = entry
		d.r.Skip(section.RdbnRecordStride - section.FieldEntrySize)
	}

	return nil
}

// readStringTable resolves the parallel hash and offset arrays into a name table.
func (d *decoder) readStringTable() error {
	h := d.header
	span := int(h.HashCount) * section.RdbnStringHashSize

	if err := d.checkSection("string hash", h.StringHashOffset, h.HashCount, span); err != nil {
		return err
	}
	hashes := make([]uint32, h.HashCount)
	for i := range hashes {
		hashes[i] = d.r.ReadUint32()
	}

	if err := d.checkSection("string offset", h.StringOffsetsOffset, h.HashCount, span); err != nil {
		return err
	}

	base := h.StringBase()
	d.names = collision.NewTracker(len(hashes))
	for _, hash := range hashes {
		offset := base + int(d.r.ReadInt32())

		name, err := d.r.CStringAt(offset)
		if err != nil {
			return errs.Mismatch(err, "string 0x%08X at 0x%X", hash, offset)
		}

		d.names.Track(hash, name)
	}

	return nil
}

func (d *decoder) validateIndexes() error {
	for i, entry := range d.types {
		if entry.FieldIndex < 0 || entry.FieldCount < 0 || int(entry.FieldIndex)+int(entry.FieldCount) > len(d.fields) {
			return errs.Mismatch(errs.ErrIndexOutOfRange, "type %d fields [%d, +%d) of %d",
				i, entry.FieldIndex, entry.FieldCount, len(d.fields))
		}
	}

	for i, root := range d.roots {
		if root.TypeIndex < 0 || int(root.TypeIndex) >= len(d.types) {
			return errs.Mismatch(errs.ErrIndexOutOfRange, "root %d type %d of %d", i, root.TypeIndex, len(d.types))
		}

		if root.ValueCount < 0 || root.ValueSize < 0 {
			return errs.Mismatch(errs.ErrInvalidCount, "root %d rows %d stride %d", i, root.ValueCount, root.ValueSize)
		}
	}

	return nil
}

func (d *decoder) lookup(hash uint32, what string) (string, error) {
	name, ok := d.names.Lookup(hash)
	if !ok {
		return "", fmt.Errorf("%w: %s 0x%08X", errs.ErrUnknownStringHash, what, hash)
	}

	return name, nil
}

// collisions returns the string table hashes shared by several names, nil if none.
func (d *decoder) collisions() []uint32 {
	if !d.names.HasCollision() {
		return nil
	}

	return slices.Clone(d.names.Collisions())
}

// resolveTypes builds one declaration per type entry, index aligned with the type section.
func (d *decoder) resolveTypes() ([]TypeDeclaration, error) {
	decls := make([]TypeDeclaration, len(d.types))

	for i, entry := range d.types {
		name, err := d.lookup(entry.NameHash, "type")
		if err != nil {
			return nil, err
		}

		run := d.fields[entry.FieldIndex : int(entry.FieldIndex)+int(entry.FieldCount)]
		fields := make([]FieldDeclaration, len(run))
		for j, field := range run {
			fieldName, err := d.lookup(field.NameHash, "field")
			if err != nil {
				return nil, err
			}

			fieldType, err := ParseFieldType(field.Type)
			if err != nil {
				return nil, fmt.Errorf("type %q field %q: %w", name, fieldName, err)
			}

			fields[j] = FieldDeclaration{
				Name:     fieldName,
				Type:     fieldType,
				Category: FieldTypeCategory(field.TypeCategory),
				Offset:   field.ValueOffset,
				Size:     field.ValueSize,
				Count:    field.ValueCount,
			}
		}

		decls[i] = TypeDeclaration{
			Name:        name,
			UnknownHash: entry.UnknownHash,
			Fields:      fields,
		}
	}

	return decls, nil
}

func (d *decoder) decodeList(root section.RootEntry, decl TypeDeclaration) (ListEntry, error) {
	name, err := d.lookup(root.NameHash, "list")
	if err != nil {
		return ListEntry{}, err
	}

	valueBase := d.header.SectionOffset(d.header.ValueOffset)
	rowsBase := valueBase + int(root.ValueOffset)

	// Every row must start inside the buffer before any row is allocated. A zero stride
	// places all rows at one offset, so the count is capped by the buffer size instead.
	count, stride := int(root.ValueCount), int(root.ValueSize)
	if count < 0 || stride < 0 || count > d.r.Size() ||
		(count > 0 && !d.r.InRange(rowsBase, (count-1)*stride)) {
		return ListEntry{}, fmt.Errorf("%w: list %q has %d rows of %d bytes at 0x%X",
			errs.ErrOffsetOutOfRange, name, count, stride, rowsBase)
	}

	rows := make([]Row, count)
	for j := range rows {
		rowBase := rowsBase + j*int(root.ValueSize)

		row := make(Row, len(decl.Fields))
		for h, field := range decl.Fields {
			width := field.Type.Width(field.Size)
			start := rowBase + int(field.Offset)

			if field.Count < 0 || width < 0 || int(field.Count) > d.r.Size() ||
				!d.r.InRange(start, int(field.Count)*width) {
				return ListEntry{}, fmt.Errorf("%w: list %q row %d field %q at 0x%X",
					errs.ErrOffsetOutOfRange, name, j, field.Name, start)
			}

			values := make([]Value, field.Count)
			for k := range values {
				d.r.SetPosition(start + k*width)
				values[k] = d.readValue(field.Type, width)
			}
			row[h] = values
		}
		rows[j] = row
	}

	return ListEntry{Name: name, Rows: rows}, nil
}

// readValue decodes one value at the current position. The range has been validated.
func (d *decoder) readValue(fieldType FieldType, width int) Value {
	r := d.r

	switch fieldType {
	case FieldAbilityData, FieldEnhanceData, FieldStatusRate:
		return Bytes(bytes.Clone(r.ReadBytes(width)))
	case FieldBool:
		return Bool(r.ReadBool())
	case FieldByte:
		return Byte(r.ReadUint8())
	case FieldShort, FieldActType:
		return Short(r.ReadInt16())
	case FieldInt, FieldFlag:
		return Int(r.ReadInt32())
	case FieldFloat:
		return Float(r.ReadFloat32())
	case FieldHash:
		return Uint(r.ReadUint32())
	case FieldRateMatrix, FieldPosition:
		return Float4{r.ReadFloat32(), r.ReadFloat32(), r.ReadFloat32(), r.ReadFloat32()}
	case FieldString:
		return d.readCondition(r.ReadUint32())
	case FieldDataTuple:
		return Short2{r.ReadInt16(), r.ReadInt16()}
	default:
		// ParseFieldType admits only the tags above.
		panic(fmt.Sprintf("rdbn: unhandled field type %s", fieldType))
	}
}

// readCondition interprets a string-typed field. The same tag carries either an offset
// into the string blob or a plain identifier; a value landing outside the buffer (or on
// bytes with no terminator) is an identifier.
func (d *decoder) readCondition(v uint32) Value {
	offset := d.header.StringBase() + int(v)
	if offset >= d.r.Size() {
		return Uint(v)
	}

	s, err := d.r.CStringAt(offset)
	if err != nil {
		return Uint(v)
	}

	return String(s)
}
