package t2b

import (
	"github.com/arloliu/cfgbin/cursor"
	"github.com/arloliu/cfgbin/format"
	"github.com/arloliu/cfgbin/internal/hash"
	"github.com/arloliu/cfgbin/section"
)

// valueLengths are the candidate value widths, in trial order.
var valueLengths = []format.ValueLength{format.ValueLengthInt, format.ValueLengthLong}

// detectValueLength finds the value width at which count entries, read from the
// reader's position, end just before the value string blob at end.
//
// Each candidate is tried on its own fork of r, so r is never moved.
//
// Parameters:
//   - r: Reader positioned at the first entry record
//   - count: Number of entry records
//   - end: Absolute offset of the value string blob; must lie inside the buffer
//
// Returns:
//   - format.ValueLength: The first width whose trial pass succeeds
//   - bool: false if no width fits
func detectValueLength(r *cursor.Reader, count uint32, end int) (format.ValueLength, bool) {
	for _, length := range valueLengths {
		if tryValueLength(r.Fork(), count, end, length.Bytes()) {
			return length, true
		}
	}

	return 0, false
}

// tryValueLength walks the entry records assuming width-byte values. The walk fails
// as soon as a record would start past end, its tag bytes would cross end, or a tag
// is invalid. The pass succeeds if the records end less than 0x10 bytes before end.
func tryValueLength(r *cursor.Reader, count uint32, end int, width int) bool {
	for i := uint32(0); i < count; i++ {
		if r.Position()+section.T2bEntryMinimumSize > end {
			return false
		}

		r.Skip(4) // checksum
		valueCount := int(r.ReadUint8())

		tagBytes := (valueCount + section.T2bTypesPerByte - 1) / section.T2bTypesPerByte
		if r.Position()+tagBytes > end {
			return false
		}

		types := readValueTypes(r, valueCount)
		if r.Position() > end {
			return false
		}

		for _, t := range types {
			if t == ValueInvalid {
				return false
			}
		}

		r.Skip(valueCount * width)
	}

	pos := r.Position()

	return pos <= end && end-pos < section.T2bStringSlackMaximum
}

// readValueTypes unpacks count 2-bit tags, least significant bits first, and aligns the
// reader to the value array that follows.
func readValueTypes(r *cursor.Reader, count int) []ValueType {
	types := make([]ValueType, 0, count)

	for j := 0; j < count; j += section.T2bTypesPerByte {
		chunk := r.ReadUint8()
		for h := 0; h < section.T2bTypesPerByte && j+h < count; h++ {
			types = append(types, ValueType((chunk>>(2*h))&0x3))
		}
	}

	r.SeekAlignment(section.T2bEntryAlignment)

	return types
}

// hashTypes are the candidate checksum variants, in trial order.
var hashTypes = []format.HashType{format.HashCrc32Standard, format.HashCrc32Jam}

// detectHashType returns the CRC-32 variant under which name hashes to checksum.
func detectHashType(checksum uint32, name string) (format.HashType, bool) {
	for _, hashType := range hashTypes {
		if hash.Crc32(hashType, []byte(name)) == checksum {
			return hashType, true
		}
	}

	return 0, false
}
