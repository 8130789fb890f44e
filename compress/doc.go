// Package compress provides compression and decompression codecs for the
// payloads of a serialized compressed sky-map representation.
//
// This package implements the second of two size-reduction stages:
//
//  1. **Selection/encoding**: The transform and selector drop and quantize
//     coefficients, and the encoding package serializes what remains
//     (delta-varint masks, raw or quantized values, basis vectors).
//  2. **Compression**: General-purpose byte codecs squeeze the encoded
//     payloads further before they are assembled into the artifact.
//
// Supported algorithms:
//   - None: No compression (fastest, largest)
//   - Zstd: Excellent compression ratio, moderate speed (the default)
//   - S2: Balanced compression and speed
//   - LZ4: Fast decompression, moderate compression
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Codecs are obtained through the factory functions rather than constructed
// at call sites:
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "payload")
//	compressed, err := codec.Compress(maskPayload)
//
// # Algorithm Selection Guide
//
// | Workload                     | Recommended | Reason                    |
// |------------------------------|-------------|---------------------------|
// | Archival of map ensembles    | Zstd        | Best compression ratio    |
// | Interactive compress/inspect | S2          | Balanced speed and ratio  |
// | Read-heavy reconstruction    | LZ4         | Fastest decompression     |
// | Size experiments, baselines  | None        | No codec noise            |
//
// Mask payloads (sorted index gaps) compress very well with every algorithm;
// raw float64 value payloads and basis vectors benefit most from Zstd.
// Quantized value payloads at aggressive ratios are already dense and gain
// little beyond S2.
//
// # Zstandard Variants
//
// The default Zstd codec is the pure-Go klauspost implementation. Building
// with the gozstd tag swaps in the cgo-backed libzstd bindings for
// deployments that prefer them; the wire format is identical.
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use. Stateful resources
// (zstd encoders/decoders, lz4 compressors) are managed through internal
// sync.Pool instances.
//
// # Error Handling
//
// Compression errors are rare. Decompression errors indicate corrupted
// payload bytes or a codec/flag mismatch; the blob package detects most
// corruption earlier through the artifact checksum.
package compress
