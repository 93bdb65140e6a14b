package export

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/cfgbin/database"
	"github.com/arloliu/cfgbin/internal/hash"
)

// Document is the serializable form of a database.
type Document struct {
	Source      string            `json:"source" yaml:"source"`
	Input       string            `json:"input,omitempty" yaml:"input,omitempty"`
	Digest      string            `json:"digest,omitempty" yaml:"digest,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Tables      []Table           `json:"tables" yaml:"tables"`
}

// Table is the serializable form of one table.
type Table struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
	Rows   [][]any `json:"rows" yaml:"rows"`
}

// Field describes one column.
type Field struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Type  string `json:"type" yaml:"type"`
	Count int    `json:"count" yaml:"count"`
}

// NewDocument builds the document of db.
//
// Parameters:
//   - db: The decoded database
//   - input: Name recorded as the document's input, usually the source path
//   - data: Source bytes; when non-nil their BLAKE3 digest is recorded
//
// Returns:
//   - *Document: The document, ready to be encoded
func NewDocument(db *database.Database, input string, data []byte) *Document {
	doc := &Document{
		Source: db.Source().String(),
		Input:  input,
		Tables: make([]Table, 0, len(db.Tables())),
	}

	if data != nil {
		doc.Digest = hash.Digest(data)
	}

	if annotations := db.Annotations(); len(annotations) > 0 {
		doc.Annotations = annotations
	}

	for _, table := range db.Tables() {
		doc.Tables = append(doc.Tables, newTable(table))
	}

	return doc
}

func newTable(table *database.Table) Table {
	schema := table.Schema()

	out := Table{
		Name:   table.Name(),
		Fields: make([]Field, len(schema.Fields)),
		Rows:   make([][]any, len(table.Rows())),
	}

	for i, f := range schema.Fields {
		out.Fields[i] = Field{Name: f.Name, Type: f.Type.String(), Count: f.Count}
	}

	for i, row := range table.Rows() {
		rendered := make([]any, len(row.Columns))
		for j, column := range row.Columns {
			scalar := j < len(schema.Fields) && schema.Fields[j].Count == 1
			rendered[j] = renderColumn(column, scalar)
		}
		out.Rows[i] = rendered
	}

	return out
}

func renderColumn(column []database.Value, scalar bool) any {
	if scalar && len(column) == 1 {
		return renderValue(column[0])
	}

	values := make([]any, len(column))
	for i, v := range column {
		values[i] = renderValue(v)
	}

	return values
}

func renderValue(v database.Value) any {
	switch v.Kind() {
	case database.KindBool:
		b, _ := v.Bool()
		return b
	case database.KindByte:
		b, _ := v.Byte()
		return b
	case database.KindShort:
		s, _ := v.Short()
		return s
	case database.KindInt:
		i, _ := v.Int()
		return i
	case database.KindUInt:
		u, _ := v.UInt()
		return u
	case database.KindLong:
		l, _ := v.Long()
		return l
	case database.KindHash:
		h, _ := v.Hash()
		return fmt.Sprintf("0x%08X", h)
	case database.KindFloat:
		f, _ := v.Float()
		return renderFloat32(f)
	case database.KindDouble:
		d, _ := v.Double()
		return renderFloat64(d)
	case database.KindString:
		s, _ := v.Text()
		return s
	case database.KindBytes:
		b, _ := v.Bytes()
		return hex.EncodeToString(b)
	case database.KindVec4F32:
		vec, _ := v.Vec4()
		out := make([]any, len(vec))
		for i, f := range vec {
			out[i] = renderFloat32(f)
		}

		return out
	case database.KindTuple2I16:
		pair, _ := v.Tuple2()
		return []any{pair[0], pair[1]}
	default:
		return nil
	}
}

// renderFloat32 widens f through its shortest decimal form so 1.1 stays 1.1 instead
// of 1.100000023841858.
func renderFloat32(f float32) any {
	wide := float64(f)
	if math.IsNaN(wide) || math.IsInf(wide, 0) {
		return renderFloat64(wide)
	}

	shortest, err := strconv.ParseFloat(strconv.FormatFloat(wide, 'g', -1, 32), 64)
	if err != nil {
		return wide
	}

	return shortest
}

func renderFloat64(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	default:
		return f
	}
}
