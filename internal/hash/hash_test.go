package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/cfgbin/format"
)

func TestFingerprint(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, uint64(0xef46db3751d8e999), NewFingerprint().Sum())
	})

	t.Run("Deterministic", func(t *testing.T) {
		a := NewFingerprint().AddString("Row").AddInt(6).AddInt(4).Sum()
		b := NewFingerprint().AddString("Row").AddInt(6).AddInt(4).Sum()
		require.Equal(t, a, b)
	})

	t.Run("LengthPrefixed", func(t *testing.T) {
		a := NewFingerprint().AddString("ab").AddString("c").Sum()
		b := NewFingerprint().AddString("a").AddString("bc").Sum()
		require.NotEqual(t, a, b)
	})

	t.Run("OrderSensitive", func(t *testing.T) {
		a := NewFingerprint().AddInt(1).AddInt(2).Sum()
		b := NewFingerprint().AddInt(2).AddInt(1).Sum()
		require.NotEqual(t, a, b)
	})
}

func TestCrc32(t *testing.T) {
	check := []byte("123456789")

	require.Equal(t, uint32(0xCBF43926), Crc32Standard(check))
	require.Equal(t, uint32(0x340BC6D9), Crc32Jam(check))
	require.Equal(t, Crc32Standard(check), Crc32(format.HashCrc32Standard, check))
	require.Equal(t, Crc32Jam(check), Crc32(format.HashCrc32Jam, check))

	require.Equal(t, uint32(0), Crc32Standard(nil))
	require.Equal(t, uint32(0xFFFFFFFF), Crc32Jam(nil))
}

func TestDigest(t *testing.T) {
	require.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", Digest(nil))

	a := Digest([]byte("RDBN"))
	require.Len(t, a, 64)
	require.NotEqual(t, a, Digest([]byte("RDBM")))
}

func BenchmarkFingerprint(b *testing.B) {
	for i := 0; i < b.N; i++ {
		NewFingerprint().AddString("ability_data").AddInt(6).AddInt(4).AddInt(0).Sum()
	}
}
