package compress

// ZstdCompressor provides Zstandard compression for artifact payloads.
//
// This compressor is the default for compressed representations, aimed at
// scenarios where compression ratio matters more than compression speed:
//   - Archival of large map ensembles
//   - Network transmission of compressed maps where bandwidth is limited
//   - Batch pipelines where decompression happens rarely
//
// Performance characteristics:
//   - Compression: ~5-20 ns/byte (depending on compression level)
//   - Decompression: ~2-5 ns/byte
//   - Compression ratio: 2-4x on delta-encoded mask payloads
//   - Memory usage: Moderate (pooled encoder/decoder instances)
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(maskPayload)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
