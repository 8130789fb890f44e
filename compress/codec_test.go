package compress

import (
	"encoding/binary"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skypress/skypress/format"
)

// makeValuePayload builds a raw float64 payload resembling retained wavelet
// coefficients: smooth large approximation values followed by small details.
func makeValuePayload(n int) []byte {
	rng := rand.New(rand.NewSource(42)) //nolint:gosec
	buf := make([]byte, 0, n*8)
	for i := range n {
		v := math.Sin(float64(i)/10) * 100
		if i > n/4 {
			v = rng.NormFloat64() * 0.01
		}
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}

	return buf
}

// makeMaskPayload builds a delta-varint payload resembling a selection mask.
func makeMaskPayload(count int) []byte {
	buf := binary.AppendUvarint(nil, uint64(count))
	for i := range count {
		buf = binary.AppendUvarint(buf, uint64(i%7+1))
	}

	return buf
}

func allCodecs(t *testing.T) map[format.CompressionType]Codec {
	t.Helper()

	codecs := make(map[format.CompressionType]Codec)
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		codecs[ct] = codec
	}

	return codecs
}

func TestCodecRoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"ValuePayload": makeValuePayload(1024),
		"MaskPayload":  makeMaskPayload(512),
		"SingleByte":   {0x42},
	}

	for ct, codec := range allCodecs(t) {
		for name, payload := range payloads {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(payload)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, payload, decompressed)
			})
		}
	}
}

func TestCodecEmptyInput(t *testing.T) {
	for ct, codec := range allCodecs(t) {
		t.Run(ct.String(), func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestCodecCompressesRedundantPayloads(t *testing.T) {
	// Mask payloads are tiny varint gaps; every real codec should shrink them.
	payload := makeMaskPayload(4096)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(payload),
				"%s should compress a repetitive mask payload", ct)
		})
	}
}

func TestCodecDetectsCorruption(t *testing.T) {
	payload := makeValuePayload(256)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			// Truncate the frame; decoding must not silently succeed with
			// wrong content.
			truncated := compressed[:len(compressed)/2]
			decompressed, err := codec.Decompress(truncated)
			if err == nil {
				require.NotEqual(t, payload, decompressed)
			}
		})
	}
}

func TestCreateCodec(t *testing.T) {
	t.Run("AllSupportedTypes", func(t *testing.T) {
		for _, ct := range []format.CompressionType{
			format.CompressionNone,
			format.CompressionZstd,
			format.CompressionS2,
			format.CompressionLZ4,
		} {
			codec, err := CreateCodec(ct, "value")
			require.NoError(t, err)
			require.NotNil(t, codec)
		}
	})

	t.Run("InvalidType", func(t *testing.T) {
		_, err := CreateCodec(format.CompressionType(0xFF), "value")
		require.Error(t, err)
		require.Contains(t, err.Error(), "value")
	})
}

func TestGetCodec(t *testing.T) {
	codec, err := GetCodec(format.CompressionZstd)
	require.NoError(t, err)
	require.NotNil(t, codec)

	// Built-in codecs are shared instances.
	again, err := GetCodec(format.CompressionZstd)
	require.NoError(t, err)
	require.Equal(t, codec, again)

	_, err = GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestNoOpReturnsInputUnchanged(t *testing.T) {
	codec := NewNoOpCompressor()
	payload := makeValuePayload(16)

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, payload, compressed)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
}
