package t2b

import "fmt"

// ValueType is the 2-bit type tag of a T2B entry value.
type ValueType uint8

const (
	ValueString  ValueType = 0
	ValueInteger ValueType = 1
	ValueFloat   ValueType = 2
	ValueInvalid ValueType = 3
)

func (t ValueType) String() string {
	switch t {
	case ValueString:
		return "String"
	case ValueInteger:
		return "Integer"
	case ValueFloat:
		return "FloatingPoint"
	case ValueInvalid:
		return "Invalid"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// Value is one decoded T2B value. The set of implementations is closed:
// String, Integer, Long, Float32 and Float64. Integer and Float32 appear in 4-byte
// files, Long and Float64 in 8-byte files.
type Value interface {
	t2bValue()
}

type (
	String  string
	Integer int32
	Long    int64
	Float32 float32
	Float64 float64
)

func (String) t2bValue()  {}
func (Integer) t2bValue() {}
func (Long) t2bValue()    {}
func (Float32) t2bValue() {}
func (Float64) t2bValue() {}

// EntryValue is a value together with its type tag.
type EntryValue struct {
	Type  ValueType
	Value Value
}

// Entry is one decoded entry record.
type Entry struct {
	Name   string
	Values []EntryValue
}

// Group collects the entries sharing one name, in file order.
type Group struct {
	Name    string
	Entries []Entry
}
