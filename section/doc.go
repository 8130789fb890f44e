// Package section defines the low-level binary structures and constants for
// the compressed sky map artifact format.
//
// This package provides the foundational types that define the physical layout
// of artifacts. It handles binary serialization and deserialization of the
// header and its packed flag field, ensuring a consistent byte-level
// representation across platforms.
//
// # Artifact Structure
//
// An artifact consists of a fixed-size header followed by three variable-size
// payloads, each independently compressed by the codec named in the flag:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (40 bytes, fixed)                                │
//	│  - Flag (4 bytes): method, precision, codec, options    │
//	│  - Resolution (8 bytes): nside, pixel count             │
//	│  - Retained count / rank (4 bytes)                      │
//	│  - Payload sizes (12 bytes): mask, values, side data    │
//	│  - Wavelet levels (2 bytes) + reserved (2 bytes)        │
//	│  - Checksum (8 bytes)                                   │
//	├─────────────────────────────────────────────────────────┤
//	│ Mask Payload (variable)                                 │
//	│  - Delta-varint retained indices (wavelet)              │
//	│  - Empty (pca, svd: the rank in the header suffices)    │
//	├─────────────────────────────────────────────────────────┤
//	│ Value Payload (variable)                                │
//	│  - Raw or quantized retained coefficients               │
//	├─────────────────────────────────────────────────────────┤
//	│ Side Payload (variable)                                 │
//	│  - Empty (wavelet)                                      │
//	│  - Mean vector + components, or fingerprint (pca)       │
//	│  - U and V factor matrices (svd)                        │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
// Header (40 bytes):
//
//	Bytes  | Field            | Type   | Description
//	-------|------------------|--------|------------------------------------------
//	0-3    | Flag             | uint32 | Method, precision, codec, options, magic
//	4-7    | NSide            | uint32 | HEALPix resolution parameter
//	8-11   | PixelCount       | uint32 | Number of pixels (12 * NSide^2)
//	12-15  | Retained         | uint32 | Retained coefficient count or factor rank
//	16-19  | MaskPayloadSize  | uint32 | Compressed mask payload size in bytes
//	20-23  | ValuePayloadSize | uint32 | Compressed value payload size in bytes
//	24-27  | SidePayloadSize  | uint32 | Compressed side payload size in bytes
//	28-29  | WaveletLevels    | uint16 | Decomposition levels (wavelet only)
//	30-31  | Reserved         | uint16 | Must be zero
//	32-39  | Checksum         | uint64 | Hash of the three compressed payloads
//
// # Flag Format
//
// Flags are packed into 4 bytes (32 bits):
//
//	Byte 0-1 (Options, 16 bits, always little-endian):
//	  Bit 0:     Endianness of remaining fields (0=little, 1=big)
//	  Bit 1:     Shared basis (0=full factors in side payload, 1=fingerprint)
//	  Bits 2-3:  Reserved, must be 0
//	  Bits 4-15: Magic number 0x5CA0
//
//	Byte 2 (MethodPrecision):
//	  Bits 0-3: Transform method (1=wavelet, 2=pca, 3=svd)
//	  Bits 4-7: Coefficient precision (1=float64, 2=uint16, 3=uint8)
//
//	Byte 3 (CodecVersion):
//	  Bits 0-3: Payload codec (1=none, 2=zstd, 3=s2, 4=lz4)
//	  Bits 4-7: Format version (currently 1)
//
// The Options field itself is always serialized little-endian: a parser must
// read it before it knows the artifact's byte order, so the field that carries
// the endianness bit cannot depend on it.
//
// # Usage
//
// Most users never touch this package directly; the blob package assembles and
// parses artifacts. Direct parsing is useful for inspecting an artifact
// without decompressing its payloads:
//
//	header, err := section.ParseHeader(data)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("method=%v nside=%d retained=%d\n",
//	    header.Flag.Method(), header.NSide, header.Retained)
package section
