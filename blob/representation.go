package blob

import (
	"fmt"

	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/format"
	"github.com/skypress/skypress/healpix"
	"github.com/skypress/skypress/internal/hash"
	"github.com/skypress/skypress/section"
)

// Representation is a compressed sky map artifact: a fixed header followed by
// three independently compressed payloads (selection mask, coefficient
// values, transform side data).
//
// A Representation is self-describing and immutable. Everything Decompress
// needs travels inside it, except a shared PCA basis, which is referenced by
// fingerprint. Values are safe for concurrent use.
type Representation struct {
	header section.Header

	// data is the full serialized artifact; the payload fields below are
	// views into it.
	data         []byte
	maskPayload  []byte
	valuePayload []byte
	sidePayload  []byte
}

// Parse parses and validates a serialized artifact.
//
// Validation covers the magic number, flag enums, the resolution cross-check,
// the payload sizes against the actual length, and the payload checksum. The
// returned Representation keeps a reference to data, so the caller must not
// modify the slice afterwards.
//
// Parameters:
//   - data: Complete artifact bytes, exactly header plus payloads
//
// Returns:
//   - *Representation: Parsed artifact
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber, ErrInvalidHeaderFlags,
//     ErrUnsupportedResolution, ErrInvalidPayloadSize, or ErrChecksumMismatch
func Parse(data []byte) (*Representation, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	if err := healpix.Validate(int(header.PixelCount), int(header.NSide)); err != nil {
		return nil, err
	}
	if header.Retained < 1 || header.Retained > header.PixelCount {
		return nil, fmt.Errorf("%w: retained count %d outside [1, %d]",
			errs.ErrInvalidPayloadSize, header.Retained, header.PixelCount)
	}
	if len(data) != header.ArtifactSize() {
		return nil, fmt.Errorf("%w: artifact is %d bytes, header describes %d",
			errs.ErrInvalidPayloadSize, len(data), header.ArtifactSize())
	}

	maskEnd := section.HeaderSize + int(header.MaskPayloadSize)
	valueEnd := maskEnd + int(header.ValuePayloadSize)
	rep := &Representation{
		header:       header,
		data:         data,
		maskPayload:  data[section.HeaderSize:maskEnd],
		valuePayload: data[maskEnd:valueEnd],
		sidePayload:  data[valueEnd:],
	}

	if sum := payloadChecksum(rep.maskPayload, rep.valuePayload, rep.sidePayload); sum != header.Checksum {
		return nil, fmt.Errorf("%w: computed 0x%016x, header has 0x%016x",
			errs.ErrChecksumMismatch, sum, header.Checksum)
	}

	return rep, nil
}

// Bytes returns the serialized artifact.
//
// The returned slice is the representation's backing storage, not a copy;
// callers must not modify it.
func (r *Representation) Bytes() []byte {
	return r.data
}

// Size returns the total artifact size in bytes.
func (r *Representation) Size() int {
	return len(r.data)
}

// Header returns a copy of the parsed artifact header.
func (r *Representation) Header() section.Header {
	return r.header
}

// Method returns the transform method that produced the artifact.
func (r *Representation) Method() format.Method {
	return r.header.Flag.Method()
}

// Precision returns how coefficient values are stored.
func (r *Representation) Precision() format.Precision {
	return r.header.Flag.Precision()
}

// Codec returns the byte codec applied to the payloads.
func (r *Representation) Codec() format.CompressionType {
	return r.header.Flag.Codec()
}

// NSide returns the resolution parameter of the compressed map.
func (r *Representation) NSide() int {
	return int(r.header.NSide)
}

// PixelCount returns the pixel count of the compressed map.
func (r *Representation) PixelCount() int {
	return int(r.header.PixelCount)
}

// Retained returns the retained coefficient count for wavelet artifacts, or
// the factor rank for pca and svd artifacts.
func (r *Representation) Retained() int {
	return int(r.header.Retained)
}

// WaveletLevels returns the wavelet decomposition depth, zero for pca and
// svd artifacts.
func (r *Representation) WaveletLevels() int {
	return int(r.header.WaveletLevels)
}

// HasSharedBasis reports whether the artifact references a shared PCA basis
// by fingerprint instead of carrying its vectors inline.
func (r *Representation) HasSharedBasis() bool {
	return r.header.Flag.HasSharedBasis()
}

// payloadChecksum hashes the three compressed payloads in artifact order.
func payloadChecksum(mask, values, side []byte) uint64 {
	dg := hash.NewDigest()
	dg.Write(mask)
	dg.Write(values)
	dg.Write(side)

	return dg.Sum64()
}
