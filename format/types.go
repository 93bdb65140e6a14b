// Package format defines the enumerations shared across the decoders, the unified model
// and the exporters.
package format

import (
	"fmt"
	"strings"
)

type (
	// Source identifies which container decoder produced a database.
	Source uint8
	// ValueLength is the raw width in bytes of a T2B entry value.
	ValueLength uint8
	// HashType is the CRC-32 parameterization a T2B file uses for name checksums.
	HashType uint8
	// CompressionType selects the codec applied to an exported document.
	CompressionType uint8
	// ExportFormat selects the document encoding of an exported database.
	ExportFormat uint8
)

const (
	SourceRDBN Source = 0x1 // SourceRDBN marks a database decoded from an RDBN container.
	SourceT2B  Source = 0x2 // SourceT2B marks a database decoded from a T2B container.

	ValueLengthInt  ValueLength = 4 // ValueLengthInt means 32-bit entry values.
	ValueLengthLong ValueLength = 8 // ValueLengthLong means 64-bit entry values.

	HashCrc32Standard HashType = 0x1 // HashCrc32Standard is CRC-32/ISO-HDLC (final XOR 0xFFFFFFFF).
	HashCrc32Jam      HashType = 0x2 // HashCrc32Jam is CRC-32/JAMCRC (no final XOR).

	CompressionNone CompressionType = 0x1 // CompressionNone writes the document as is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.

	ExportJSON ExportFormat = 0x1 // ExportJSON renders the document as indented JSON.
	ExportYAML ExportFormat = 0x2 // ExportYAML renders the document as YAML.
	ExportCBOR ExportFormat = 0x3 // ExportCBOR renders the document as deterministic CBOR.
)

func (s Source) String() string {
	switch s {
	case SourceRDBN:
		return "RDBN"
	case SourceT2B:
		return "T2B"
	default:
		return "Unknown"
	}
}

func (l ValueLength) String() string {
	switch l {
	case ValueLengthInt:
		return "Int"
	case ValueLengthLong:
		return "Long"
	default:
		return "Unknown"
	}
}

// Bytes returns the value width in bytes.
func (l ValueLength) Bytes() int {
	return int(l)
}

func (h HashType) String() string {
	switch h {
	case HashCrc32Standard:
		return "Crc32Standard"
	case HashCrc32Jam:
		return "Crc32Jam"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the file name suffix appended to compressed output, empty for none.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

func (e ExportFormat) String() string {
	switch e {
	case ExportJSON:
		return "JSON"
	case ExportYAML:
		return "YAML"
	case ExportCBOR:
		return "CBOR"
	default:
		return "Unknown"
	}
}

// Extension returns the file name suffix of the export format.
func (e ExportFormat) Extension() string {
	switch e {
	case ExportYAML:
		return ".yaml"
	case ExportCBOR:
		return ".cbor"
	default:
		return ".json"
	}
}

// ParseCompressionType parses a case-insensitive codec name.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}

// ParseExportFormat parses a case-insensitive export format name.
func ParseExportFormat(name string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return ExportJSON, nil
	case "yaml", "yml":
		return ExportYAML, nil
	case "cbor":
		return ExportCBOR, nil
	default:
		return 0, fmt.Errorf("unknown export format %q", name)
	}
}
