// Package rdbn decodes RDBN configuration containers.
//
// An RDBN file starts with a fixed 0x3C byte header carrying the "RDBN" magic and a
// table of section offsets. The sections describe:
//
//   - root entries: one per exposed table (type, row stride, row count, row array)
//   - type entries: a row layout, owning a contiguous run of field entries
//   - field entries: one column (type tag, byte offset in the row, value size, arity)
//   - a string table: parallel hash and offset arrays over a NUL-terminated string blob
//
// Every name is stored as a 32-bit hash and resolved through the string table.
//
// # Rejection and failure
//
// Decode distinguishes "this is not an RDBN file" from "this RDBN file is broken".
// Anything detected before a row is touched (short buffer, magic mismatch, section or
// string offsets outside the buffer, record indexes out of range) is a rejection and
// wraps errs.ErrFormatMismatch. An unknown field type tag, a name hash missing from the
// string table, or a row reaching past the end of the buffer is fatal.
//
// # Type deduplication
//
// Many tables share one row layout. Structurally identical type declarations (same
// name, same ordered field declarations) collapse into a single canonical entry, and
// every ListEntry refers to its layout by canonical index. Deduplication only compacts
// File.Types; row values are always decoded from the layout the root entry names.
package rdbn
