package rdbn

// Value is one decoded RDBN value. The set of implementations is closed:
// Bool, Byte, Short, Int, Uint, Float, String, Bytes, Float4 and Short2.
type Value interface {
	rdbnValue()
}

type (
	Bool   bool
	Byte   uint8
	Short  int16
	Int    int32
	Uint   uint32
	Float  float32
	String string
	// Bytes is an opaque block of the field's declared size, owned by the value.
	Bytes  []byte
	Float4 [4]float32
	Short2 [2]int16
)

func (Bool) rdbnValue()   {}
func (Byte) rdbnValue()   {}
func (Short) rdbnValue()  {}
func (Int) rdbnValue()    {}
func (Uint) rdbnValue()   {}
func (Float) rdbnValue()  {}
func (String) rdbnValue() {}
func (Bytes) rdbnValue()  {}
func (Float4) rdbnValue() {}
func (Short2) rdbnValue() {}

// Row holds the values of one table row: one slice per field, each holding as many
// values as the field's arity.
type Row [][]Value

// ListEntry is one decoded table.
type ListEntry struct {
	Name string
	// TypeIndex is the canonical index into File.Types.
	TypeIndex int
	Rows      []Row
}
