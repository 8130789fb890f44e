// Package errs defines sentinel errors shared across skypress packages.
//
// Callers should match errors with errors.Is rather than string comparison,
// since most call sites wrap these sentinels with additional context:
//
//	if errors.Is(err, errs.ErrInvalidRatio) { ... }
package errs

import "errors"

// Compression contract errors. These are the failures a caller of
// Compress/Decompress/Report can act on (skip the map, retry with a
// different ratio, refit a basis).
var (
	// ErrInvalidRatio indicates a compression ratio outside the half-open
	// interval (0, 1].
	ErrInvalidRatio = errors.New("invalid compression ratio")

	// ErrUnknownMethod indicates a method tag or name outside the supported
	// set (wavelet, pca, svd).
	ErrUnknownMethod = errors.New("unknown compression method")

	// ErrUnsupportedResolution indicates a resolution parameter that is not
	// a positive power of two, or a pixel array whose length disagrees with
	// the resolution parameter.
	ErrUnsupportedResolution = errors.New("unsupported map resolution")

	// ErrBasisMismatch indicates transform side data whose dimensions
	// disagree with the expected pixel count, or a shared-basis fingerprint
	// that does not match the configured basis.
	ErrBasisMismatch = errors.New("basis mismatch")

	// ErrLengthMismatch indicates original and reconstructed arrays of
	// different lengths passed to quality reporting.
	ErrLengthMismatch = errors.New("array length mismatch")
)

// Serialization errors raised while parsing or validating a compressed
// representation.
var (
	// ErrInvalidMagicNumber indicates header bytes that do not start with
	// the expected magic number.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidHeaderSize indicates a blob shorter than the fixed header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidHeaderFlags indicates a header flag word with an unknown
	// version, method, codec or precision, or reserved bits set.
	ErrInvalidHeaderFlags = errors.New("invalid header flags")

	// ErrInvalidPayloadSize indicates payload sizes recorded in the header
	// that disagree with the actual blob length.
	ErrInvalidPayloadSize = errors.New("invalid payload size")

	// ErrInvalidPrecision indicates a coefficient precision tag outside the
	// supported set.
	ErrInvalidPrecision = errors.New("invalid coefficient precision")

	// ErrChecksumMismatch indicates payload bytes whose checksum disagrees
	// with the header, i.e. a corrupted or truncated artifact.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")
)
