package hash

import (
	"hash/crc32"

	"github.com/arloliu/cfgbin/format"
)

// Crc32Standard computes CRC-32/ISO-HDLC: reflected, initial value and final XOR 0xFFFFFFFF.
func Crc32Standard(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// Crc32Jam computes CRC-32/JAMCRC, the standard parameterization without the final XOR.
func Crc32Jam(data []byte) uint32 {
	return ^crc32.ChecksumIEEE(data)
}

// Crc32 computes the checksum of data with the given parameterization.
// Unknown hash types fall back to the standard variant.
func Crc32(hashType format.HashType, data []byte) uint32 {
	if hashType == format.HashCrc32Jam {
		return Crc32Jam(data)
	}

	return Crc32Standard(data)
}
