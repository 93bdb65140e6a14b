package database

import (
	"strconv"

	"github.com/arloliu/cfgbin/format"
	"github.com/arloliu/cfgbin/rdbn"
	"github.com/arloliu/cfgbin/t2b"
)

// FromRdbn converts a decoded RDBN file: one table per list, with the schema taken
// from the list's canonical type declaration.
//
// Unsigned values of Hash-typed fields become raw hash ids.
func FromRdbn(file *rdbn.File) *Database {
	tables := make([]*Table, 0, len(file.Lists))

	for _, list := range file.Lists {
		decl := file.Types[list.TypeIndex]

		fields := make([]Field, len(decl.Fields))
		for i, f := range decl.Fields {
			fields[i] = Field{
				Name:  f.Name,
				Type:  ValueType{Source: format.SourceRDBN, Code: int(f.Type)},
				Count: int(f.Count),
			}
		}

		rows := make([]Row, len(list.Rows))
		for i, row := range list.Rows {
			columns := make([][]Value, len(row))
			for j, values := range row {
				hashField := j < len(decl.Fields) && decl.Fields[j].Type == rdbn.FieldHash

				column := make([]Value, len(values))
				for k, v := range values {
					column[k] = fromRdbnValue(v, hashField)
				}
				columns[j] = column
			}
			rows[i] = Row{Columns: columns}
		}

		tables = append(tables, NewTable(list.Name, Schema{Fields: fields}, rows))
	}

	db := New(format.SourceRDBN, tables)
	db.Annotate(AnnotationTypeCount, strconv.Itoa(len(file.Types)))
	if len(file.Collisions) > 0 {
		db.Annotate(AnnotationHashCollisions, strconv.Itoa(len(file.Collisions)))
	}

	return db
}

func fromRdbnValue(v rdbn.Value, hashField bool) Value {
	switch v := v.(type) {
	case rdbn.Bool:
		return BoolValue(bool(v))
	case rdbn.Byte:
		return ByteValue(uint8(v))
	case rdbn.Short:
		return ShortValue(int16(v))
	case rdbn.Int:
		return IntValue(int32(v))
	case rdbn.Uint:
		if hashField {
			return HashValue(uint32(v))
		}

		return UIntValue(uint32(v))
	case rdbn.Float:
		return FloatValue(float32(v))
	case rdbn.String:
		return StringValue(string(v))
	case rdbn.Bytes:
		return Value{kind: KindBytes, raw: v} // already owned by the decoder result
	case rdbn.Float4:
		return Vec4Value(v)
	case rdbn.Short2:
		return Tuple2Value(v)
	default:
		return Value{}
	}
}

// FromT2b converts a decoded T2B file: one table per entry name, one row per entry.
//
// Every column has arity 1 and an empty name. Entries of one name may carry different
// value counts; the schema is as wide as the widest entry and each column takes its
// type from the first entry that has it.
func FromT2b(file *t2b.File) *Database {
	groups := file.Groups()
	tables := make([]*Table, 0, len(groups))

	for _, group := range groups {
		var fields []Field
		rows := make([]Row, len(group.Entries))

		for i, entry := range group.Entries {
			columns := make([][]Value, len(entry.Values))
			for j, ev := range entry.Values {
				if j == len(fields) {
					fields = append(fields, Field{
						Type:  ValueType{Source: format.SourceT2B, Code: int(ev.Type)},
						Count: 1,
					})
				}
				columns[j] = []Value{fromT2bValue(ev.Value)}
			}
			rows[i] = Row{Columns: columns}
		}

		tables = append(tables, NewTable(group.Name, Schema{Fields: fields}, rows))
	}

	db := New(format.SourceT2B, tables)
	db.Annotate(AnnotationEncoding, strconv.Itoa(int(file.Encoding)))
	db.Annotate(AnnotationValueLength, file.ValueLength.String())
	db.Annotate(AnnotationHashType, file.HashType.String())

	return db
}

func fromT2bValue(v t2b.Value) Value {
	switch v := v.(type) {
	case t2b.String:
		return StringValue(string(v))
	case t2b.Integer:
		return IntValue(int32(v))
	case t2b.Long:
		return LongValue(int64(v))
	case t2b.Float32:
		return FloatValue(float32(v))
	case t2b.Float64:
		return DoubleValue(float64(v))
	default:
		return Value{}
	}
}
