// Package blob provides the high-level API for compressing sky maps into
// self-describing binary artifacts and decompressing them back.
//
// This package is the primary interface of the module. It wires the
// coefficient transforms, the magnitude selector, the payload encoders and
// the byte codecs into two operations: Compress and Decompress.
//
// # Core Types
//
//   - Engine: Immutable configuration plus the Compress/Decompress pipeline.
//     One engine serves many maps concurrently.
//   - Representation: An immutable compressed artifact. Self-describing: a
//     fixed header followed by three independently compressed payloads
//     (selection mask, coefficient values, transform side data).
//
// # Compression Workflow
//
//	eng, err := blob.NewEngine(
//	    blob.WithMethod(format.MethodWavelet),
//	    blob.WithRatio(0.1),
//	)
//
//	rep, err := eng.Compress(pixels, nside)
//	data := rep.Bytes() // serialized artifact for storage or transport
//
// # Decompression Workflow
//
//	rep, err := blob.Parse(data)       // validate header and checksum
//	pixels, err := eng.Decompress(rep) // reconstruct the pixel array
//
//	// or in one call:
//	pixels, err := eng.DecompressBytes(data)
//
// # Artifact Layout
//
// Byte layout of a serialized Representation:
//
//	┌──────────────┬──────────────┬───────────────┬──────────────┐
//	│ Header (40B) │ Mask payload │ Value payload │ Side payload │
//	└──────────────┴──────────────┴───────────────┴──────────────┘
//
// The header records the method, precision, codec, byte order, resolution,
// retained count, payload sizes and a checksum over the compressed payloads.
// Wavelet artifacts use the mask payload for retained coefficient indices;
// pca and svd artifacts leave it empty and store their factor matrices (or a
// shared-basis fingerprint) in the side payload.
//
// # Concurrency
//
// Engines hold no per-call state. Compress and Decompress are pure functions
// of their inputs and the engine configuration, so a single engine may be
// shared by any number of goroutines, typically one map per goroutine for
// batch compression.
package blob
