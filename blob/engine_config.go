package blob

import (
	"fmt"

	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/format"
	"github.com/skypress/skypress/internal/options"
	"github.com/skypress/skypress/selector"
	"github.com/skypress/skypress/transform"
)

// DefaultRatio is the retention ratio an engine uses when none is configured:
// keep the top tenth of the coefficients.
const DefaultRatio = 0.1

// Configuration setter methods - these handle all the common engine options

// setMethod sets the default transform method.
func (e *Engine) setMethod(method format.Method) error {
	if !method.IsValid() {
		return fmt.Errorf("%w: 0x%02X", errs.ErrUnknownMethod, uint8(method))
	}
	e.flag.SetMethod(method)

	return nil
}

// setRatio sets the default retention ratio.
func (e *Engine) setRatio(ratio float64) error {
	if err := selector.ValidateRatio(ratio); err != nil {
		return err
	}
	e.ratio = ratio

	return nil
}

// setPrecision sets the stored coefficient precision.
func (e *Engine) setPrecision(precision format.Precision) error {
	if !precision.IsValid() {
		return fmt.Errorf("%w: 0x%02X", errs.ErrInvalidPrecision, uint8(precision))
	}
	e.flag.SetPrecision(precision)

	return nil
}

// setPayloadCodec sets the byte codec applied to each payload.
func (e *Engine) setPayloadCodec(codec format.CompressionType) error {
	switch codec {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		e.flag.SetCodec(codec)
		return nil
	default:
		return fmt.Errorf("invalid payload compression: %v", codec)
	}
}

// setEndianess sets the endianness option.
func (e *Engine) setEndianess(endiness endianness) {
	switch endiness {
	case littleEndianOpt:
		e.flag.WithLittleEndian()
	case bigEndianOpt:
		e.flag.WithBigEndian()
	default:
		e.flag.WithLittleEndian()
	}

	// Update the engine after changing endianness
	e.engine = e.flag.GetEndianEngine()
}

// setWaveletLevels stores the wavelet depth override.
func (e *Engine) setWaveletLevels(levels int) {
	e.waveletLevels = levels
}

// setSharedBasis stores the shared PCA basis.
func (e *Engine) setSharedBasis(basis *transform.Basis) {
	e.basis = basis
}

// endianness represents the byte order configuration option.
type endianness uint8

const (
	littleEndianOpt endianness = iota
	bigEndianOpt    endianness = iota
)

// EngineOption represents a functional option for configuring the Engine.
// This is a type alias for the generic Option interface specialized for Engine.
type EngineOption = options.Option[*Engine]

// WithMethod sets the default transform method used by Compress.
// CompressMethod overrides it per call. The default is the wavelet method.
func WithMethod(method format.Method) EngineOption {
	return options.New(func(e *Engine) error {
		return e.setMethod(method)
	})
}

// WithRatio sets the default retention ratio used by Compress.
// CompressMethod overrides it per call. The default is DefaultRatio.
func WithRatio(ratio float64) EngineOption {
	return options.New(func(e *Engine) error {
		return e.setRatio(ratio)
	})
}

// WithPrecision sets how retained coefficient values are stored: raw float64
// bits (the default), or 16-bit or 8-bit quantized codes.
func WithPrecision(precision format.Precision) EngineOption {
	return options.New(func(e *Engine) error {
		return e.setPrecision(precision)
	})
}

// WithPayloadCodec sets the byte codec applied independently to each payload.
// The default is Zstd.
func WithPayloadCodec(codec format.CompressionType) EngineOption {
	return options.New(func(e *Engine) error {
		return e.setPayloadCodec(codec)
	})
}

// WithLittleEndian sets the engine to use little-endian byte order.
// It is the default option.
func WithLittleEndian() EngineOption {
	return options.NoError(func(e *Engine) {
		e.setEndianess(littleEndianOpt)
	})
}

// WithBigEndian sets the engine to use big-endian byte order.
// It rarely needs to be used unless interoperability with big-endian systems is required.
func WithBigEndian() EngineOption {
	return options.NoError(func(e *Engine) {
		e.setEndianess(bigEndianOpt)
	})
}

// WithWaveletLevels overrides the wavelet decomposition depth. Zero or
// negative derives the deepest useful depth from the pixel count, which is
// the default. Values past the supported depth are clamped.
func WithWaveletLevels(levels int) EngineOption {
	return options.NoError(func(e *Engine) {
		e.setWaveletLevels(levels)
	})
}

// WithSharedBasis makes pca compression project onto the given fitted basis
// instead of fitting one per map. Artifacts then carry only the basis
// fingerprint, and Decompress requires an engine configured with the same
// basis.
func WithSharedBasis(basis *transform.Basis) EngineOption {
	return options.NoError(func(e *Engine) {
		e.setSharedBasis(basis)
	})
}
