package compress

import (
	"testing"

	"github.com/skypress/skypress/format"
)

func benchCodec(b *testing.B, ct format.CompressionType, payload []byte) {
	codec, err := GetCodec(ct)
	if err != nil {
		b.Fatal(err)
	}

	compressed, err := codec.Compress(payload)
	if err != nil {
		b.Fatal(err)
	}

	b.Run("Compress", func(b *testing.B) {
		b.SetBytes(int64(len(payload)))
		for b.Loop() {
			if _, err := codec.Compress(payload); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Decompress", func(b *testing.B) {
		b.SetBytes(int64(len(payload)))
		for b.Loop() {
			if _, err := codec.Decompress(compressed); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkCodecs_ValuePayload(b *testing.B) {
	// Retained coefficients for an nside=32 map at ratio 0.1.
	payload := makeValuePayload(1229)

	b.Run("Zstd", func(b *testing.B) { benchCodec(b, format.CompressionZstd, payload) })
	b.Run("S2", func(b *testing.B) { benchCodec(b, format.CompressionS2, payload) })
	b.Run("LZ4", func(b *testing.B) { benchCodec(b, format.CompressionLZ4, payload) })
	b.Run("None", func(b *testing.B) { benchCodec(b, format.CompressionNone, payload) })
}

func BenchmarkCodecs_MaskPayload(b *testing.B) {
	payload := makeMaskPayload(1229)

	b.Run("Zstd", func(b *testing.B) { benchCodec(b, format.CompressionZstd, payload) })
	b.Run("S2", func(b *testing.B) { benchCodec(b, format.CompressionS2, payload) })
	b.Run("LZ4", func(b *testing.B) { benchCodec(b, format.CompressionLZ4, payload) })
}
