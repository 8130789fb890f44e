// Package skypress provides a compact, self-describing binary format for storing
// scalar fields sampled on a sphere (HEALPix-style pixelized sky maps).
//
// Skypress compresses full-resolution pixel arrays down to an explicit target
// ratio by transforming them into a sparse coefficient domain (wavelet, PCA, or
// SVD), keeping only the largest coefficients, and packaging the result as a
// checksummed byte blob that decompresses without any out-of-band metadata.
//
// # Core Features
//
//   - Three transform strategies: multi-level wavelet, PCA, and SVD
//   - Explicit retention ratio: keep round(ratio * coefficients), clamped to >= 1
//   - Optional coefficient quantization (float64, uint16, uint8)
//   - Optional payload compression (None, Zstd, S2, LZ4)
//   - Self-describing 40-byte header with magic number and xxHash64 checksum
//   - Shared PCA bases identified by fingerprint for fleets of same-sky maps
//   - Deterministic output: identical inputs produce bit-identical artifacts
//
// # Basic Usage
//
// Compressing and decompressing a pixel array:
//
//	import "github.com/skypress/skypress"
//
//	// Compress a map with nside=64 (49152 pixels), keeping 10% of coefficients
//	data, _ := skypress.Compress(pixels, 64, "wavelet", 0.1)
//
//	// Decompress back to the full-resolution pixel array
//	restored, _ := skypress.Decompress(data)
//
// Inspecting an artifact without decompressing it:
//
//	rep, _ := skypress.Parse(data)
//	fmt.Printf("method=%s nside=%d retained=%d size=%d\n",
//	    rep.Method(), rep.NSide(), rep.Retained(), rep.Size())
//
// Measuring round-trip quality:
//
//	report, _ := skypress.Report(pixels, restored, data)
//	fmt.Printf("saved %.1f%% at RMSE %.4f\n", report.SpaceSavings(), report.RMSE)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the blob package,
// simplifying the most common use cases. For advanced usage and fine-grained
// control (custom precisions, payload codecs, endianness, shared bases), use
// the blob package directly.
package skypress

import (
	"github.com/skypress/skypress/blob"
	"github.com/skypress/skypress/format"
	"github.com/skypress/skypress/skymap"
	"github.com/skypress/skypress/stats"
)

// Compress compresses a HEALPix pixel array into a self-describing artifact.
//
// This is the simplest entry point: it builds a default engine (float64
// coefficients, zstd payloads, little-endian) and runs one compression with
// the named method and retention ratio.
//
// Parameters:
//   - pixels: Pixel array of length 12*nside^2
//   - nside: Resolution parameter, a positive power of two
//   - method: Transform name, one of "wavelet", "pca", "svd" (case-insensitive)
//   - ratio: Fraction of coefficients to retain, in (0, 1]
//
// Returns:
//   - []byte: The serialized artifact (header + compressed payloads)
//   - error: ErrUnknownMethod for an unrecognized method name, ErrInvalidRatio
//     for a ratio outside (0, 1], ErrUnsupportedResolution for a bad nside or
//     mismatched pixel count
//
// The input slice is never mutated.
//
// Example:
//
//	data, err := skypress.Compress(m.Pixels, m.NSide, "svd", 0.25)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("map.skp", data, 0o644)
func Compress(pixels []float64, nside int, method string, ratio float64) ([]byte, error) {
	m, err := format.ParseMethod(method)
	if err != nil {
		return nil, err
	}

	engine, err := blob.NewEngine()
	if err != nil {
		return nil, err
	}

	rep, err := engine.CompressMethod(pixels, nside, m, ratio)
	if err != nil {
		return nil, err
	}

	return rep.Bytes(), nil
}

// CompressMap compresses a skymap.Map into a self-describing artifact.
//
// Identical to Compress but takes the map value type, so callers working
// with skymap.Map never unpack it by hand.
//
// Parameters:
//   - m: The sky map to compress
//   - method: Transform name, one of "wavelet", "pca", "svd" (case-insensitive)
//   - ratio: Fraction of coefficients to retain, in (0, 1]
//
// Returns:
//   - []byte: The serialized artifact
//   - error: See Compress
func CompressMap(m *skymap.Map, method string, ratio float64) ([]byte, error) {
	return Compress(m.Pixels, m.NSide, method, ratio)
}

// Decompress reconstructs the full-resolution pixel array from an artifact.
//
// The artifact is self-describing: the method, resolution, precision, payload
// codec, and byte order are all read from its header, so the blob produced by
// any configuration decompresses with no further arguments. Artifacts
// carrying a shared-basis fingerprint instead of inline basis data are the
// one exception; those need an engine configured with the same basis (see
// blob.WithSharedBasis).
//
// Parameters:
//   - data: The raw artifact bytes (from Compress or storage)
//
// Returns:
//   - []float64: Reconstructed pixel array of length 12*nside^2
//   - error: Header validation errors (ErrInvalidHeaderSize,
//     ErrInvalidMagicNumber, ErrInvalidHeaderFlags), ErrInvalidPayloadSize for
//     truncated blobs, ErrChecksumMismatch for corrupted payloads, or
//     ErrBasisMismatch for a shared-basis artifact
//
// Example:
//
//	restored, err := skypress.Decompress(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("restored %d pixels\n", len(restored))
func Decompress(data []byte) ([]float64, error) {
	engine, err := blob.NewEngine()
	if err != nil {
		return nil, err
	}

	return engine.DecompressBytes(data)
}

// DecompressMap reconstructs a skymap.Map from an artifact.
//
// Identical to Decompress but wraps the reconstructed pixels together with
// the resolution read from the artifact header.
//
// Parameters:
//   - data: The raw artifact bytes
//
// Returns:
//   - *skymap.Map: Reconstructed map with Nside and Pixels populated
//   - error: See Decompress
func DecompressMap(data []byte) (*skymap.Map, error) {
	rep, err := blob.Parse(data)
	if err != nil {
		return nil, err
	}

	engine, err := blob.NewEngine()
	if err != nil {
		return nil, err
	}

	pixels, err := engine.Decompress(rep)
	if err != nil {
		return nil, err
	}

	return skymap.FromPixels(pixels, rep.NSide())
}

// Parse validates an artifact and returns its parsed representation.
//
// Parsing verifies the magic number, header flags, payload sizes, and the
// payload checksum without decompressing anything, so it is cheap enough to
// run on every blob read from storage. The representation exposes the
// artifact's metadata (method, resolution, retained count, payload sizes)
// through accessor methods.
//
// Parameters:
//   - data: The raw artifact bytes
//
// Returns:
//   - *blob.Representation: The parsed, immutable artifact
//   - error: Header or checksum validation errors (see Decompress)
//
// Example:
//
//	rep, err := skypress.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s artifact, nside=%d, %d of %d coefficients\n",
//	    rep.Method(), rep.NSide(), rep.Retained(), rep.PixelCount())
func Parse(data []byte) (*blob.Representation, error) {
	return blob.Parse(data)
}

// Report measures the quality of a compression round trip.
//
// It compares the original and reconstructed pixel arrays and relates the
// artifact size to the raw pixel storage (8 bytes per float64 pixel).
//
// Parameters:
//   - original: The pixel array that was compressed
//   - reconstructed: The pixel array that came back from Decompress
//   - data: The serialized artifact the round trip produced
//
// Returns:
//   - *stats.CompressionStats: Achieved ratio, space savings, RMSE, and
//     max-abs error
//   - error: ErrLengthMismatch if the arrays differ in length
//
// Example:
//
//	report, err := skypress.Report(m.Pixels, restored, data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("ratio=%.3f savings=%.1f%% rmse=%.4f max=%.4f\n",
//	    report.CompressionRatio(), report.SpaceSavings(), report.RMSE, report.MaxAbsError)
func Report(original, reconstructed []float64, data []byte) (*stats.CompressionStats, error) {
	return stats.Report(original, reconstructed, len(data), 8*len(original))
}

// NewEngine creates a reusable compression engine with custom options.
//
// Use this when the one-call helpers are not enough: quantized precisions,
// alternate payload codecs, big-endian artifacts, wavelet level overrides,
// or shared PCA bases. The engine is safe for concurrent use and amortizes
// its configuration across calls.
//
// Parameters:
//   - opts: Optional configuration functions (see blob.EngineOption)
//
// Returns:
//   - *blob.Engine: The created engine.
//   - error: An error if the configuration is invalid.
//
// Available options:
//   - blob.WithMethod(format.MethodWavelet|MethodPCA|MethodSVD)
//   - blob.WithRatio(0.1)
//   - blob.WithPrecision(format.PrecisionFloat64|PrecisionUint16|PrecisionUint8)
//   - blob.WithPayloadCodec(format.CompressionNone|Zstd|S2|LZ4)
//   - blob.WithLittleEndian() / blob.WithBigEndian()
//   - blob.WithWaveletLevels(n)
//   - blob.WithSharedBasis(basis)
//
// Example:
//
//	engine, err := skypress.NewEngine(
//	    blob.WithMethod(format.MethodPCA),
//	    blob.WithPrecision(format.PrecisionUint16),
//	)
func NewEngine(opts ...blob.EngineOption) (*blob.Engine, error) {
	return blob.NewEngine(opts...)
}
