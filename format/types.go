package format

import (
	"fmt"
	"strings"

	"github.com/skypress/skypress/errs"
)

type (
	Method          uint8
	Precision       uint8
	CompressionType uint8
)

const (
	MethodWavelet Method = 0x1 // MethodWavelet represents multi-level wavelet decomposition.
	MethodPCA     Method = 0x2 // MethodPCA represents principal component analysis.
	MethodSVD     Method = 0x3 // MethodSVD represents singular value decomposition.

	PrecisionFloat64 Precision = 0x1 // PrecisionFloat64 stores retained coefficients as raw IEEE-754 bits.
	PrecisionUint16  Precision = 0x2 // PrecisionUint16 stores retained coefficients as 16-bit quantized codes.
	PrecisionUint8   Precision = 0x3 // PrecisionUint8 stores retained coefficients as 8-bit quantized codes.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no payload compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard payload compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 payload compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 payload compression.
)

func (m Method) String() string {
	switch m {
	case MethodWavelet:
		return "wavelet"
	case MethodPCA:
		return "pca"
	case MethodSVD:
		return "svd"
	default:
		return "unknown"
	}
}

// IsValid reports whether the method tag is one of the supported strategies.
func (m Method) IsValid() bool {
	switch m {
	case MethodWavelet, MethodPCA, MethodSVD:
		return true
	default:
		return false
	}
}

// ParseMethod converts a method name into its Method tag.
// Matching is case-insensitive. Unknown names return errs.ErrUnknownMethod.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(name) {
	case "wavelet":
		return MethodWavelet, nil
	case "pca":
		return MethodPCA, nil
	case "svd":
		return MethodSVD, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownMethod, name)
	}
}

func (p Precision) String() string {
	switch p {
	case PrecisionFloat64:
		return "float64"
	case PrecisionUint16:
		return "uint16"
	case PrecisionUint8:
		return "uint8"
	default:
		return "unknown"
	}
}

// IsValid reports whether the precision tag is one of the supported depths.
func (p Precision) IsValid() bool {
	switch p {
	case PrecisionFloat64, PrecisionUint16, PrecisionUint8:
		return true
	default:
		return false
	}
}

// Bits returns the storage width of one retained coefficient.
func (p Precision) Bits() int {
	switch p {
	case PrecisionUint16:
		return 16
	case PrecisionUint8:
		return 8
	default:
		return 64
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether the compression tag is one of the supported codecs.
func (c CompressionType) IsValid() bool {
	switch c {
	case CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4:
		return true
	default:
		return false
	}
}
