// Package database is the format-agnostic tabular model both cfg.bin decoders
// project into.
//
// A Database is an ordered list of Tables. Each Table has a Schema (one Field per
// column) and ordered Rows; every Row holds one value slice per column, as long as the
// column's arity. The model owns all its strings and byte blocks and does not
// reference the decoded buffer, so it may outlive a memory-mapped source file.
package database

import (
	"fmt"
	"maps"

	"github.com/arloliu/cfgbin/format"
	"github.com/arloliu/cfgbin/rdbn"
	"github.com/arloliu/cfgbin/t2b"
)

// ValueType is the source-specific type tag of a column: an rdbn.FieldType for RDBN
// databases, a t2b.ValueType for T2B databases.
type ValueType struct {
	Source format.Source
	Code   int
}

func (t ValueType) String() string {
	switch t.Source {
	case format.SourceRDBN:
		return rdbn.FieldType(t.Code).String() //nolint:gosec
	case format.SourceT2B:
		return t2b.ValueType(t.Code).String() //nolint:gosec
	default:
		return fmt.Sprintf("Unknown(%d)", t.Code)
	}
}

// Field describes one column.
type Field struct {
	// Name is empty for T2B columns; T2B files do not record column names.
	Name  string
	Type  ValueType
	Count int // values per row
}

// Schema is the ordered list of columns of a table.
type Schema struct {
	Fields []Field
}

// Len returns the number of columns.
func (s Schema) Len() int {
	return len(s.Fields)
}

// Row holds one value slice per column.
type Row struct {
	Columns [][]Value
}

// Column returns the values of column i, or nil if the row has no such column.
func (r Row) Column(i int) []Value {
	if i < 0 || i >= len(r.Columns) {
		return nil
	}

	return r.Columns[i]
}

// Table is one named table.
type Table struct {
	name   string
	schema Schema
	rows   []Row
}

// NewTable creates a table.
func NewTable(name string, schema Schema, rows []Row) *Table {
	return &Table{name: name, schema: schema, rows: rows}
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) Schema() Schema {
	return t.schema
}

// Rows returns the rows of the table. The slice is shared with the table so editing
// tools can modify rows in place.
func (t *Table) Rows() []Row {
	return t.rows
}

// Annotation keys set by the conversions.
const (
	AnnotationTypeCount      = "rdbn.type_count"      // distinct row layouts
	AnnotationHashCollisions = "rdbn.hash_collisions" // string table hashes with several names
	AnnotationEncoding       = "t2b.encoding"         // footer string encoding id
	AnnotationValueLength    = "t2b.value_length"     // detected value width
	AnnotationHashType       = "t2b.hash_type"        // detected name checksum variant
)

// Database is a decoded container.
type Database struct {
	source      format.Source
	tables      []*Table
	annotations map[string]string
}

// New creates a database.
func New(source format.Source, tables []*Table) *Database {
	return &Database{source: source, tables: tables, annotations: make(map[string]string)}
}

// Annotate records a decoder diagnostic under key.
func (d *Database) Annotate(key, value string) {
	d.annotations[key] = value
}

// Annotation returns the diagnostic recorded under key.
func (d *Database) Annotation(key string) (string, bool) {
	v, ok := d.annotations[key]
	return v, ok
}

// Annotations returns a copy of all recorded diagnostics.
func (d *Database) Annotations() map[string]string {
	return maps.Clone(d.annotations)
}

// Source returns the container format the database was decoded from.
func (d *Database) Source() format.Source {
	return d.source
}

// Tables returns the tables in decode order.
func (d *Database) Tables() []*Table {
	return d.tables
}

// Table returns the first table with the given name.
func (d *Database) Table(name string) (*Table, bool) {
	for _, t := range d.tables {
		if t.name == name {
			return t, true
		}
	}

	return nil, false
}
