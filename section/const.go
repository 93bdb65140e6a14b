package section

// Magic numbers
const (
	MagicRDBN = 0x4E424452 // "RDBN" read as a little-endian uint32 at offset 0.
	MagicT2B  = 0x62327401 // T2B footer magic, little-endian at file end - 0x10.
)

// RDBN record sizes, in bytes.
const (
	RdbnHeaderSize     = 0x3C // fixed header size, also the minimum RDBN file size
	RdbnReservedSize   = 0x14 // unknown bytes between data_size and the section table
	RdbnRecordStride   = 0x20 // root/type/field records are each padded to 32 bytes
	RootEntrySize      = 20   // meaningful bytes of a root record
	TypeEntrySize      = 12   // meaningful bytes of a type record
	FieldEntrySize     = 20   // meaningful bytes of a field record
	RdbnWordShift      = 2    // section offsets are counts of 4-byte words
	RdbnStringHashSize = 4    // one hash in the string hash array
)

// T2B record sizes, in bytes.
const (
	T2bMinimumSize        = 0x30 // smallest buffer that can hold a T2B container
	T2bFooterSize         = 0x10 // footer slot at the end of the file
	T2bFooterRecordSize   = 10   // meaningful bytes of the footer
	EntryHeaderSize       = 0x10 // entry section header
	ChecksumHeaderSize    = 0x10 // checksum section header
	ChecksumEntrySize     = 8    // one (checksum, string offset) pair
	T2bSectionAlignment   = 0x10 // the checksum section starts on a 16-byte boundary
	T2bEntryAlignment     = 4    // entry values start on a 4-byte boundary
	T2bEntryMinimumSize   = 8    // checksum + count + at least the alignment padding
	T2bStringSlackMaximum = 0x10 // entries end less than this many bytes before the strings
	T2bTypesPerByte       = 4    // 2-bit value type tags packed per byte
)
