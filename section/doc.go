// Package section defines the fixed-size binary records of the RDBN and T2B containers.
//
// Each record type has a Parse function reading it from a byte slice and a Bytes method
// writing it back. Parsing only checks that enough bytes are present; magic numbers,
// offsets and counts are validated by the decoders, which know the surrounding buffer.
// All values are little-endian.
//
// # RDBN Layout
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (0x3C bytes)                                     │
//	│  - Magic "RDBN", data offset and size                   │
//	│  - Section table: word offsets and counts               │
//	├─────────────────────────────────────────────────────────┤
//	│ Data section                                            │
//	│  - Root records (32-byte stride): one per table         │
//	│  - Type records (32-byte stride): row layouts           │
//	│  - Field records (32-byte stride): columns              │
//	│  - String hash and string offset arrays                 │
//	│  - Row values                                           │
//	│  - String blob (NUL-terminated)                         │
//	└─────────────────────────────────────────────────────────┘
//
// # T2B Layout
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Entry header (16 bytes)                                 │
//	│ Entries: checksum, count, 2-bit type tags, values       │
//	│ Value string blob                                       │
//	├──────────────── 16-byte boundary ───────────────────────┤
//	│ Checksum header (16 bytes)                              │
//	│ (checksum, name offset) pairs                           │
//	│ Name blob                                               │
//	├──────────────── 16-byte boundary ───────────────────────┤
//	│ Footer (16 bytes): magic, encoding                      │
//	└─────────────────────────────────────────────────────────┘
package section
