// Package encoding provides low-level payload encoders and decoders for
// compressed sky map artifacts.
//
// This package defines the generic ColumnarEncoder and ColumnarDecoder
// interfaces and the concrete implementations that serialize the two columns
// of a retained coefficient set: the coefficient values and the selection
// mask indices. The blob package assembles these payloads, together with the
// transform side data, into the final self-describing artifact.
//
// # Usage Guidance
//
// This package is designed for advanced use cases and defining custom
// encoders. Most users should use the high-level blob package instead, which
// provides:
//   - Automatic encoder selection based on the configured precision
//   - Integrated byte compression and artifact formatting
//   - Simpler API for common operations
//
// Use this package directly only when:
//   - Implementing custom payload encodings for specialized coefficient patterns
//   - Inspecting raw artifact payloads without full decompression
//   - Understanding the internal payload layout
//
// For typical use cases, see: github.com/skypress/skypress/blob
//
// # Architecture
//
// The package is organized around the ColumnarEncoder and ColumnarDecoder
// interfaces:
//
//	type ColumnarEncoder[T comparable] interface {
//	    Write(data T)           // Encode single value
//	    WriteSlice(data []T)    // Encode multiple values (more efficient)
//	    Bytes() []byte          // Get encoded data
//	    Len() int               // Number of values encoded
//	    Size() int              // Size in bytes
//	    Reset()                 // Clear state but keep buffer
//	    Finish()                // Finalize and release resources
//	}
//
//	type ColumnarDecoder[T comparable] interface {
//	    All(data []byte, count int) iter.Seq[T]     // Sequential iteration
//	    At(data []byte, index, count int) (T, bool) // Random access (if supported)
//	}
//
// # Coefficient Value Encoding
//
// CoefficientRawEncoder/Decoder - Full-precision float64 coefficients:
//
//	encoder := encoding.NewCoefficientRawEncoder(endian.GetLittleEndianEngine())
//	encoder.WriteSlice(retained)   // 8 bytes per coefficient
//	data := encoder.Bytes()
//
// Use when:
//   - Reconstruction must be bit-exact at full retention
//   - Coefficient magnitudes span many orders (quantization would clip detail)
//   - Random access into the value payload is required
//
// CoefficientQuantizedEncoder/Decoder - Affine integer quantization:
//
//	encoder := encoding.NewCoefficientQuantizedEncoder(engine, scale, 0, 16)
//	encoder.WriteSlice(retained)   // 2 bytes per coefficient + 16-byte header
//	data := encoder.Bytes()
//
// The payload begins with a 16-byte parameter header (scale, offset) followed
// by one signed fixed-width code per coefficient. Decoding applies the inverse
// mapping v = code*scale + offset.
//
// Compression characteristics:
//   - 16-bit codes: 4x smaller value payload, error bounded by scale/2
//   - 8-bit codes: 8x smaller value payload, error bounded by scale/2
//
// Use when:
//   - The retained coefficients share a bounded magnitude range
//   - Artifact size matters more than exact reconstruction
//
// # Mask Index Encoding
//
// MaskIndexEncoder/Decoder - Delta-varint selection mask:
//
//	encoder := encoding.NewMaskIndexEncoder()
//	encoder.WriteSlice([]int{0, 3, 4, 9})  // gaps: 0, 3, 1, 5
//	data := encoder.Bytes()                // 4 bytes vs 16 bytes as uint32
//
// Indices must be strictly ascending; each index is stored as the varint gap
// from its predecessor. Dense masks cost about one byte per index.
//
// # Memory Usage
//
// Encoders use internal buffer pools to minimize allocations:
//   - Buffers are reused across encoder instances
//   - Automatic growth for large retained sets
//   - Finish() must be called to return buffers to the pool
//
// Decoders have minimal memory overhead:
//   - No allocations for sequential iteration (uses iter.Seq)
//   - Stateless value types, safe to copy
//
// # Thread Safety
//
// Encoders: Not thread-safe. Use one encoder per goroutine.
//
// Decoders: Thread-safe for concurrent reads from different goroutines.
//
// Buffer Pool: Thread-safe with internal synchronization.
//
// # Choosing Encodings
//
// For coefficient values:
//   - Lossless archival, ratio 1.0 round-trips: Raw encoding
//   - Bandwidth-constrained transfer: 16-bit quantized
//   - Previews and thumbnails: 8-bit quantized
//
// For mask indices:
//   - Always delta-varint; the encoder exploits the sorted order that
//     selection guarantees
//
// Byte-level compression of the encoded payloads (zstd, s2, lz4) happens one
// layer up, in the compress package.
package encoding
