// Package t2b decodes T2B configuration containers.
//
// A T2B file is identified by the ".t2b" footer magic 0x10 bytes before its end. The
// body holds, in order:
//
//   - an entry section: a header, then one record per entry (name checksum, value count,
//     2-bit packed value type tags, values)
//   - the value string blob referenced by string-typed values
//   - a 16-byte aligned checksum section mapping name checksums to names
//
// Two properties of a file are not recorded anywhere and are recovered by trial:
// the width of entry values (4 or 8 bytes, see detectValueLength) and the CRC-32
// variant used for name checksums (see detectHashType). Failing either detection is a
// rejection, like a footer mismatch or an out-of-range section; a name checksum missing
// from the checksum section or a string offset outside its blob is fatal.
//
// The first entry of every file is a file-size marker and is dropped from the result.
package t2b
