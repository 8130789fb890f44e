package section

import (
	"github.com/skypress/skypress/endian"
	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/format"
)

// Flag represents the packed field for various flags in the artifact header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 0 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 1 is the shared-basis flag, 0 means the side payload carries the full
	// transform factors, 1 means it carries only a basis fingerprint.
	// Bits 2-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are the magic number identifying the artifact format:
	//   - 0x5CA0 (0b0101_1100_1010_0000): sky map artifact format
	Options uint16

	// MethodPrecision is a packed enum byte.
	// Bits 0-3 hold the transform method, bits 4-7 hold the coefficient precision.
	MethodPrecision uint8
	// CodecVersion is a packed enum byte.
	// Bits 0-3 hold the payload compression codec, bits 4-7 hold the format version.
	CodecVersion uint8
}

// NewFlag creates a new Flag with default settings: little-endian byte order,
// wavelet transform, full float64 precision, zstd payload compression and the
// current format version.
func NewFlag() Flag {
	flag := Flag{
		Options:         MagicSkyV1Opt,
		MethodPrecision: uint8(format.MethodWavelet) | uint8(format.PrecisionFloat64)<<4,
		CodecVersion:    uint8(format.CompressionZstd) | FormatVersion<<4,
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the artifact data is little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the artifact data is big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// HasSharedBasis returns whether the side payload stores a basis fingerprint
// instead of the full transform factors.
func (f Flag) HasSharedBasis() bool {
	return (f.Options & SharedBasisMask) != 0
}

// SetSharedBasis enables or disables the shared-basis flag.
func (f *Flag) SetSharedBasis(enabled bool) {
	if enabled {
		f.Options |= SharedBasisMask
	} else {
		f.Options &^= SharedBasisMask
	}
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Method returns the transform method from bits 0-3 of MethodPrecision.
func (f Flag) Method() format.Method {
	return format.Method(f.MethodPrecision & 0x0F)
}

// SetMethod sets the transform method in bits 0-3 of MethodPrecision.
func (f *Flag) SetMethod(method format.Method) {
	f.MethodPrecision &^= 0x0F // Clear bits 0-3
	f.MethodPrecision |= uint8(method) & 0x0F
}

// Precision returns the coefficient precision from bits 4-7 of MethodPrecision.
func (f Flag) Precision() format.Precision {
	return format.Precision((f.MethodPrecision >> 4) & 0x0F)
}

// SetPrecision sets the coefficient precision in bits 4-7 of MethodPrecision.
func (f *Flag) SetPrecision(precision format.Precision) {
	f.MethodPrecision &^= 0xF0 // Clear bits 4-7
	f.MethodPrecision |= (uint8(precision) & 0x0F) << 4
}

// Codec returns the payload compression codec from bits 0-3 of CodecVersion.
func (f Flag) Codec() format.CompressionType {
	return format.CompressionType(f.CodecVersion & 0x0F)
}

// SetCodec sets the payload compression codec in bits 0-3 of CodecVersion.
func (f *Flag) SetCodec(codec format.CompressionType) {
	f.CodecVersion &^= 0x0F // Clear bits 0-3
	f.CodecVersion |= uint8(codec) & 0x0F
}

// Version returns the format version from bits 4-7 of CodecVersion.
func (f Flag) Version() uint8 {
	return (f.CodecVersion >> 4) & 0x0F
}

// IsValidMagicNumber checks if the magic number is valid.
func (f Flag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicSkyV1Opt
}

// IsValidEnums checks if the method, precision and codec enums are all valid.
func (f Flag) IsValidEnums() bool {
	return f.Method().IsValid() && f.Precision().IsValid() && f.Codec().IsValid()
}

// Validate checks if the flag contains valid values.
func (f Flag) Validate() error {
	if !f.IsValidMagicNumber() {
		return errs.ErrInvalidMagicNumber
	}

	if f.Options&ReservedBitsMask != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if f.Version() != FormatVersion {
		return errs.ErrInvalidHeaderFlags
	}

	if !f.IsValidEnums() {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
