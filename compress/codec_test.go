package compress

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cfgbin/errs"
	"github.com/arloliu/cfgbin/format"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"LZ4":  NewLZ4Compressor(),
		"S2":   NewS2Compressor(),
		"Zstd": NewZstdCompressor(),
	}
}

// sampleDocument resembles an exported table set.
func sampleDocument(rows int) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"source":"RDBN","tables":[{"name":"ItemList","rows":[`)
	for i := 0; i < rows; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"Id":%d,"Name":"item_%04d","Price":%d.5}`, i, i, i*10)
	}
	buf.WriteString(`]}]}`)

	return buf.Bytes()
}

func TestGetCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)
			require.NotNil(t, codec)
		})
	}

	_, err := GetCodec(format.CompressionType(0x7F))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: []byte{}},
		{name: "single_byte", data: []byte{0x42}},
		{name: "small_document", data: sampleDocument(3)},
		{name: "large_document", data: sampleDocument(5000)},
		{name: "binary_data", data: []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD, 0xFC}},
		{name: "highly_compressible", data: make([]byte, 1024*1024)},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Len(t, decompressed, len(tc.data))
					if len(tc.data) > 0 {
						require.Equal(t, tc.data, decompressed, "Decompressed data must match original")
					}
				})
			}
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := map[string][]byte{
		"random_bytes":       {0xFF, 0xFF, 0xFF, 0xFF},
		"text_as_compressed": []byte("this is not compressed data"),
	}

	for codecName, codec := range getAllCodecs() {
		if codecName == "NoOp" {
			continue
		}

		t.Run(codecName, func(t *testing.T) {
			for name, data := range invalidInputs {
				t.Run(name, func(t *testing.T) {
					_, err := codec.Decompress(data)
					require.Error(t, err, "Should return error for invalid compressed data")
				})
			}
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 20
	data := sampleDocument(200)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			done := make(chan error, numGoroutines)

			for i := 0; i < numGoroutines; i++ {
				go func() {
					compressed, err := codec.Compress(data)
					if err != nil {
						done <- err
						return
					}

					decompressed, err := codec.Decompress(compressed)
					if err != nil {
						done <- err
						return
					}

					if !bytes.Equal(data, decompressed) {
						done <- fmt.Errorf("%s round trip mismatch", codecName)
						return
					}
					done <- nil
				}()
			}

			for i := 0; i < numGoroutines; i++ {
				require.NoError(t, <-done)
			}
		})
	}
}

func TestCompress_Stats(t *testing.T) {
	require := require.New(t)

	data := sampleDocument(1000)

	compressed, stats, err := Compress(format.CompressionZstd, data)
	require.NoError(err)
	require.Equal(format.CompressionZstd, stats.Algorithm)
	require.Equal(int64(len(data)), stats.OriginalSize)
	require.Equal(int64(len(compressed)), stats.CompressedSize)
	require.Less(stats.CompressionRatio(), 1.0)
	require.Greater(stats.SpaceSavings(), 0.0)

	_, stats, err = Compress(format.CompressionNone, data)
	require.NoError(err)
	require.InDelta(1.0, stats.CompressionRatio(), 1e-9)

	_, _, err = Compress(format.CompressionType(0), data)
	require.ErrorIs(err, errs.ErrUnsupportedCompression)

	require.Zero(Stats{}.CompressionRatio())
	require.Zero(Stats{}.SpaceSavings())
}

func TestNoOpCompressor_SharesInput(t *testing.T) {
	data := []byte("as is")

	out, err := NewNoOpCompressor().Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}
