package section

import "math"

const (
	// Bit masks for the packed Options field
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0)
	SharedBasisMask  = 0x0002 // Mask for shared-basis bit (bit 1)
	ReservedBitsMask = 0x000C // Mask for reserved bits (bits 2-3), must be 0
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic number (bits 4-15)
	MagicSkyV1Opt = 0x5CA0 // MagicSkyV1Opt is the magic number for the sky map artifact format.

	// FormatVersion is the current artifact format version, stored in the high
	// nibble of the CodecVersion flag byte.
	FormatVersion = 0x1
)

// offsets and section sizes in the artifact
const (
	HeaderSize        = 40             // fixed header size in bytes
	MaskPayloadOffset = HeaderSize     // byte offset where the mask payload starts
	MaxPayloadSize    = math.MaxUint32 // maximum size of a single compressed payload
)
