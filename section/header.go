package section

import (
	"github.com/skypress/skypress/errs"
)

// Header represents the fixed-size header section at the start of a compressed
// sky map artifact.
//
// The header is self-describing: together with the Flag it carries everything a
// decoder needs to locate and interpret the three payloads that follow it
// (mask, values, side data).
type Header struct {
	// NSide is the HEALPix resolution parameter of the source map.
	NSide uint32 // byte offset 4-7
	// PixelCount is the number of pixels in the source map (12 * NSide^2).
	// Stored explicitly so a decoder can cross-check the resolution.
	PixelCount uint32 // byte offset 8-11
	// Retained is the number of retained coefficients for the wavelet method,
	// or the factor rank for the pca and svd methods.
	Retained uint32 // byte offset 12-15
	// MaskPayloadSize is the size in bytes of the compressed mask payload.
	MaskPayloadSize uint32 // byte offset 16-19
	// ValuePayloadSize is the size in bytes of the compressed value payload.
	ValuePayloadSize uint32 // byte offset 20-23
	// SidePayloadSize is the size in bytes of the compressed side payload.
	SidePayloadSize uint32 // byte offset 24-27
	// WaveletLevels is the number of decomposition levels for the wavelet
	// method. Zero for pca and svd.
	WaveletLevels uint16 // byte offset 28-29
	// Checksum is the 64-bit hash of the three compressed payloads in
	// artifact order (mask, values, side data).
	Checksum uint64 // byte offset 32-39

	// Flag is a packed field for enums, options and the magic number.
	Flag Flag // byte offset 0-3
}

// NewHeader creates a new Header with the given resolution and pixel count.
// The retained count, payload sizes and checksum are set when the artifact
// packager finishes.
func NewHeader(nside, pixelCount uint32) *Header {
	return &Header{
		Flag:       NewFlag(),
		NSide:      nside,
		PixelCount: pixelCount,
	}
}

// Parse parses the header from a byte slice.
//
// The Options field is always read little-endian; it carries the endianness
// bit that selects the engine for the remaining fields.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 40 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 40 bytes, or flag validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.MethodPrecision = data[2]
	h.Flag.CodecVersion = data[3]

	engine := h.Flag.GetEndianEngine()

	h.NSide = engine.Uint32(data[4:8])
	h.PixelCount = engine.Uint32(data[8:12])
	h.Retained = engine.Uint32(data[12:16])
	h.MaskPayloadSize = engine.Uint32(data[16:20])
	h.ValuePayloadSize = engine.Uint32(data[20:24])
	h.SidePayloadSize = engine.Uint32(data[24:28])
	h.WaveletLevels = engine.Uint16(data[28:30])

	if engine.Uint16(data[30:32]) != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	h.Checksum = engine.Uint64(data[32:40])

	return h.Flag.Validate()
}

// Bytes serializes the Header into a byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	// Options is always written little-endian so Parse can bootstrap the engine
	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.MethodPrecision
	b[3] = h.Flag.CodecVersion

	engine.PutUint32(b[4:8], h.NSide)
	engine.PutUint32(b[8:12], h.PixelCount)
	engine.PutUint32(b[12:16], h.Retained)
	engine.PutUint32(b[16:20], h.MaskPayloadSize)
	engine.PutUint32(b[20:24], h.ValuePayloadSize)
	engine.PutUint32(b[24:28], h.SidePayloadSize)
	engine.PutUint16(b[28:30], h.WaveletLevels)
	engine.PutUint16(b[30:32], 0)
	engine.PutUint64(b[32:40], h.Checksum)

	return b
}

// PayloadSize returns the total size in bytes of the three compressed payloads.
func (h *Header) PayloadSize() int {
	return int(h.MaskPayloadSize) + int(h.ValuePayloadSize) + int(h.SidePayloadSize)
}

// ArtifactSize returns the total artifact size in bytes: header plus payloads.
func (h *Header) ArtifactSize() int {
	return HeaderSize + h.PayloadSize()
}

// ParseHeader parses a Header from a byte slice.
//
// Unlike Header.Parse, trailing bytes after the fixed header are allowed, so
// this can be called directly on a full artifact.
//
// Parameters:
//   - data: Byte slice starting with a header (must be at least 40 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
