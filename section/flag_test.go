package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skypress/skypress/endian"
	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/format"
)

func TestNewFlag(t *testing.T) {
	flag := NewFlag()

	require.True(t, flag.IsValidMagicNumber())
	require.True(t, flag.IsLittleEndian())
	require.False(t, flag.HasSharedBasis())
	require.Equal(t, format.MethodWavelet, flag.Method())
	require.Equal(t, format.PrecisionFloat64, flag.Precision())
	require.Equal(t, format.CompressionZstd, flag.Codec())
	require.Equal(t, uint8(FormatVersion), flag.Version())
	require.NoError(t, flag.Validate())
}

func TestFlag_Endianness(t *testing.T) {
	flag := NewFlag()

	require.True(t, flag.IsLittleEndian())
	require.False(t, flag.IsBigEndian())
	require.Equal(t, endian.GetLittleEndianEngine(), flag.GetEndianEngine())

	flag.WithBigEndian()
	require.False(t, flag.IsLittleEndian())
	require.True(t, flag.IsBigEndian())
	require.Equal(t, endian.GetBigEndianEngine(), flag.GetEndianEngine())

	// Toggling endianness must not disturb the magic number
	require.True(t, flag.IsValidMagicNumber())

	flag.WithLittleEndian()
	require.True(t, flag.IsLittleEndian())
}

func TestFlag_SharedBasis(t *testing.T) {
	flag := NewFlag()

	flag.SetSharedBasis(true)
	require.True(t, flag.HasSharedBasis())
	require.True(t, flag.IsValidMagicNumber())
	require.NoError(t, flag.Validate())

	flag.SetSharedBasis(false)
	require.False(t, flag.HasSharedBasis())
}

func TestFlag_MethodPrecisionPacking(t *testing.T) {
	flag := NewFlag()

	flag.SetMethod(format.MethodSVD)
	flag.SetPrecision(format.PrecisionUint8)
	require.Equal(t, format.MethodSVD, flag.Method())
	require.Equal(t, format.PrecisionUint8, flag.Precision())

	// Setting one nibble must not disturb the other
	flag.SetMethod(format.MethodPCA)
	require.Equal(t, format.MethodPCA, flag.Method())
	require.Equal(t, format.PrecisionUint8, flag.Precision())

	flag.SetPrecision(format.PrecisionUint16)
	require.Equal(t, format.MethodPCA, flag.Method())
	require.Equal(t, format.PrecisionUint16, flag.Precision())
}

func TestFlag_CodecVersionPacking(t *testing.T) {
	flag := NewFlag()

	flag.SetCodec(format.CompressionLZ4)
	require.Equal(t, format.CompressionLZ4, flag.Codec())
	require.Equal(t, uint8(FormatVersion), flag.Version(), "codec change must not disturb version")

	flag.SetCodec(format.CompressionNone)
	require.Equal(t, format.CompressionNone, flag.Codec())
}

func TestFlag_Validate(t *testing.T) {
	t.Run("Invalid magic number", func(t *testing.T) {
		flag := NewFlag()
		flag.Options = 0x1230 | (flag.Options & ^uint16(MagicNumberMask))

		err := flag.Validate()
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("Reserved bits set", func(t *testing.T) {
		flag := NewFlag()
		flag.Options |= 0x0004

		err := flag.Validate()
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Unknown version", func(t *testing.T) {
		flag := NewFlag()
		flag.CodecVersion = uint8(format.CompressionZstd) | 0x2<<4

		err := flag.Validate()
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Invalid method", func(t *testing.T) {
		flag := NewFlag()
		flag.MethodPrecision = 0x0F | uint8(format.PrecisionFloat64)<<4

		err := flag.Validate()
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Invalid precision", func(t *testing.T) {
		flag := NewFlag()
		flag.MethodPrecision = uint8(format.MethodWavelet) | 0x0F<<4

		err := flag.Validate()
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Invalid codec", func(t *testing.T) {
		flag := NewFlag()
		flag.CodecVersion = 0x0F | FormatVersion<<4

		err := flag.Validate()
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})
}
