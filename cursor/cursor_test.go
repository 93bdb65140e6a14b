package cursor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cfgbin/errs"
)

func TestReaderScalars(t *testing.T) {
	require := require.New(t)

	data := []byte{
		0x78, 0x56, 0x34, 0x12, // uint32
		0xFE, 0xFF, 0xFF, 0xFF, // int32 -2
		0x34, 0x12, // int16
		0x00, 0x00, 0x80, 0x3F, // float32 1.0
		0x01, 0x00, 0x00, 0x00, // bool
		0xAB,                   // byte
		0x01, 0x02, 0x03,       // bytes
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, // int64 -1
	}

	r := NewReader(data)
	require.Equal(len(data), r.Size())
	require.Equal(uint32(0x12345678), r.ReadUint32())
	require.Equal(int32(-2), r.ReadInt32())
	require.Equal(int16(0x1234), r.ReadInt16())
	require.Equal(float32(1.0), r.ReadFloat32())
	require.True(r.ReadBool())
	require.Equal(byte(0xAB), r.ReadUint8())
	require.Equal([]byte{1, 2, 3}, r.ReadBytes(3))
	require.Equal(int64(-1), r.ReadInt64())
	require.Equal(len(data), r.Position())
}

func TestReaderFloatBits(t *testing.T) {
	r := NewReader([]byte{0x00, 0x00, 0xC0, 0x7F})
	require.True(t, math.IsNaN(float64(r.ReadFloat32())))
}

func TestSeekAlignment(t *testing.T) {
	r := NewReader(make([]byte, 0x40))

	r.SetPosition(0x08)
	r.SeekAlignment(0x10)
	require.Equal(t, 0x10, r.Position())

	r.SeekAlignment(0x10)
	require.Equal(t, 0x10, r.Position(), "aligned position must not move")

	r.SetPosition(0x15)
	r.SeekAlignment(4)
	require.Equal(t, 0x18, r.Position())

	r.SetPosition(0)
	r.SeekAlignment(0x20)
	require.Equal(t, 0, r.Position())
}

func TestSkipAndSetPosition(t *testing.T) {
	r := NewReader([]byte{0, 1, 2, 3, 4, 5})
	r.Skip(2)
	require.Equal(t, byte(2), r.ReadUint8())

	r.SetPosition(5)
	require.Equal(t, byte(5), r.ReadUint8())
}

func TestFork(t *testing.T) {
	r := NewReader([]byte{1, 0, 0, 0, 2, 0, 0, 0})
	fork := r.Fork()

	require.Equal(t, uint32(1), fork.ReadUint32())
	require.Equal(t, 4, fork.Position())
	require.Equal(t, 0, r.Position(), "parent position must be untouched")
	require.Equal(t, uint32(1), r.ReadUint32())
}

func TestReadPastEndPanics(t *testing.T) {
	r := NewReader([]byte{1, 2})
	require.Panics(t, func() { r.ReadUint32() })
}

func TestInRange(t *testing.T) {
	r := NewReader(make([]byte, 16))

	require.True(t, r.InRange(0, 16))
	require.True(t, r.InRange(16, 0))
	require.True(t, r.InRange(8, 8))
	require.False(t, r.InRange(8, 9))
	require.False(t, r.InRange(17, 0))
	require.False(t, r.InRange(-1, 1))
	require.False(t, r.InRange(0, -1))
}

func TestCStringAt(t *testing.T) {
	r := NewReader([]byte("abc\x00de\x00fg"))

	s, err := r.CStringAt(0)
	require.NoError(t, err)
	require.Equal(t, "abc", s)

	s, err = r.CStringAt(3)
	require.NoError(t, err)
	require.Equal(t, "", s)

	s, err = r.CStringAt(4)
	require.NoError(t, err)
	require.Equal(t, "de", s)

	_, err = r.CStringAt(7)
	require.ErrorIs(t, err, errs.ErrUnterminatedString)

	_, err = r.CStringAt(100)
	require.ErrorIs(t, err, errs.ErrOffsetOutOfRange)
	require.Equal(t, 0, r.Position())
}

func TestSlice(t *testing.T) {
	require := require.New(t)

	r := NewReader([]byte{1, 2, 3, 4, 5})
	r.SetPosition(1)

	s := r.Slice(2, 2)
	require.Equal([]byte{3, 4}, s)
	require.Equal(2, cap(s))
	require.Equal(1, r.Position())
}
