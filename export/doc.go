// Package export renders a decoded database as a self-describing document.
//
// A Document lists every table with its schema and rows. Rows are positional: the n-th
// element of a row is the n-th schema field. Columns with arity 1 render as a scalar
// and wider columns as an array, so a typical table reads like a spreadsheet.
//
// Value rendering:
//
//   - opaque byte blocks are lowercase hex strings
//   - hash ids are "0x%08X" strings
//   - float vectors and short pairs are arrays
//   - NaN and infinities are the strings "NaN", "+Inf" and "-Inf"
//
// The Exporter encodes documents as JSON, YAML or deterministic CBOR and optionally
// compresses the result with one of the codecs in package compress.
package export
