package database

import (
	"fmt"
	"math"
	"slices"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindByte
	KindShort
	KindInt
	KindUInt
	KindFloat
	KindDouble
	KindLong
	KindString
	KindBytes
	KindVec4F32
	KindTuple2I16
	KindHash
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindByte:
		return "Byte"
	case KindShort:
		return "Short"
	case KindInt:
		return "Int"
	case KindUInt:
		return "UInt"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindLong:
		return "Long"
	case KindString:
		return "String"
	case KindBytes:
		return "Bytes"
	case KindVec4F32:
		return "Vec4F32"
	case KindTuple2I16:
		return "Tuple2I16"
	case KindHash:
		return "Hash"
	default:
		return "Invalid"
	}
}

// Value is a tagged union over every scalar and composite kind the decoders produce.
//
// Scalars share one 64-bit slot: integers are stored sign- or zero-extended, floats as
// their IEEE-754 bits. The zero Value has KindInvalid.
type Value struct {
	kind Kind
	bits uint64
	str  string
	raw  []byte
	vec  [4]float32
	pair [2]int16
}

// BoolValue returns a Bool value.
func BoolValue(v bool) Value {
	var bits uint64
	if v {
		bits = 1
	}

	return Value{kind: KindBool, bits: bits}
}

// ByteValue returns a Byte value.
func ByteValue(v uint8) Value {
	return Value{kind: KindByte, bits: uint64(v)}
}

// ShortValue returns a Short value.
func ShortValue(v int16) Value {
	return Value{kind: KindShort, bits: uint64(int64(v))} //nolint:gosec
}

// IntValue returns an Int value.
func IntValue(v int32) Value {
	return Value{kind: KindInt, bits: uint64(int64(v))} //nolint:gosec
}

// UIntValue returns a UInt value.
func UIntValue(v uint32) Value {
	return Value{kind: KindUInt, bits: uint64(v)}
}

// LongValue returns a Long value.
func LongValue(v int64) Value {
	return Value{kind: KindLong, bits: uint64(v)} //nolint:gosec
}

// HashValue returns a raw hash id.
func HashValue(v uint32) Value {
	return Value{kind: KindHash, bits: uint64(v)}
}

// FloatValue returns a Float value.
func FloatValue(v float32) Value {
	return Value{kind: KindFloat, bits: uint64(math.Float32bits(v))}
}

// DoubleValue returns a Double value.
func DoubleValue(v float64) Value {
	return Value{kind: KindDouble, bits: math.Float64bits(v)}
}

// StringValue returns a String value.
func StringValue(v string) Value {
	return Value{kind: KindString, str: v}
}

// BytesValue returns an opaque byte block. The value keeps its own copy of v.
func BytesValue(v []byte) Value {
	return Value{kind: KindBytes, raw: slices.Clone(v)}
}

// Vec4Value returns a four float vector.
func Vec4Value(v [4]float32) Value {
	return Value{kind: KindVec4F32, vec: v}
}

// Tuple2Value returns a pair of shorts.
func Tuple2Value(v [2]int16) Value {
	return Value{kind: KindTuple2I16, pair: v}
}

// Kind returns the variant held by the value.
func (v Value) Kind() Kind {
	return v.kind
}

// The typed accessors below return the content and whether the value holds that kind.

func (v Value) Bool() (bool, bool) {
	return v.bits != 0, v.kind == KindBool
}

func (v Value) Byte() (uint8, bool) {
	return uint8(v.bits), v.kind == KindByte //nolint:gosec
}

func (v Value) Short() (int16, bool) {
	return int16(v.bits), v.kind == KindShort //nolint:gosec
}

func (v Value) Int() (int32, bool) {
	return int32(v.bits), v.kind == KindInt //nolint:gosec
}

func (v Value) UInt() (uint32, bool) {
	return uint32(v.bits), v.kind == KindUInt //nolint:gosec
}

func (v Value) Long() (int64, bool) {
	return int64(v.bits), v.kind == KindLong //nolint:gosec
}

func (v Value) Hash() (uint32, bool) {
	return uint32(v.bits), v.kind == KindHash //nolint:gosec
}

func (v Value) Float() (float32, bool) {
	return math.Float32frombits(uint32(v.bits)), v.kind == KindFloat //nolint:gosec
}

func (v Value) Double() (float64, bool) {
	return math.Float64frombits(v.bits), v.kind == KindDouble
}

func (v Value) Text() (string, bool) {
	return v.str, v.kind == KindString
}

func (v Value) Bytes() ([]byte, bool) {
	return v.raw, v.kind == KindBytes
}

func (v Value) Vec4() ([4]float32, bool) {
	return v.vec, v.kind == KindVec4F32
}

func (v Value) Tuple2() ([2]int16, bool) {
	return v.pair, v.kind == KindTuple2I16
}

// Interface returns the value as its natural Go type: bool, uint8, int16, int32,
// uint32, float32, float64, int64, string, []byte, [4]float32 or [2]int16. Hash ids
// are returned as uint32. It returns nil for the zero Value.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		b, _ := v.Bool()
		return b
	case KindByte:
		b, _ := v.Byte()
		return b
	case KindShort:
		s, _ := v.Short()
		return s
	case KindInt:
		i, _ := v.Int()
		return i
	case KindUInt:
		u, _ := v.UInt()
		return u
	case KindHash:
		h, _ := v.Hash()
		return h
	case KindLong:
		l, _ := v.Long()
		return l
	case KindFloat:
		f, _ := v.Float()
		return f
	case KindDouble:
		d, _ := v.Double()
		return d
	case KindString:
		return v.str
	case KindBytes:
		return v.raw
	case KindVec4F32:
		return v.vec
	case KindTuple2I16:
		return v.pair
	default:
		return nil
	}
}

// Equal reports whether two values hold the same kind and content. Floats compare by
// bit pattern, so a NaN equals itself.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindBytes:
		return slices.Equal(v.raw, other.raw)
	case KindVec4F32:
		for i := range v.vec {
			if math.Float32bits(v.vec[i]) != math.Float32bits(other.vec[i]) {
				return false
			}
		}

		return true
	case KindTuple2I16:
		return v.pair == other.pair
	default:
		return v.bits == other.bits
	}
}

// GoString renders the value for test failure messages and debugging.
func (v Value) GoString() string {
	return fmt.Sprintf("%s(%v)", v.kind, v.Interface())
}
