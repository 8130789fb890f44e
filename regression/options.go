package regression

import (
	"github.com/skypress/skypress/format"
	"github.com/skypress/skypress/internal/options"
)

// AnalyzeConfig holds configuration for the round trips Analyze samples.
type AnalyzeConfig struct {
	Method    format.Method
	Precision format.Precision
	Codec     format.CompressionType
	Ratios    []float64
}

// defaultAnalyzeConfig returns the default config: wavelet method, float64
// coefficients, zstd payloads, and the standard ratio grid.
func defaultAnalyzeConfig() AnalyzeConfig {
	return AnalyzeConfig{
		Method:    format.MethodWavelet,
		Precision: format.PrecisionFloat64,
		Codec:     format.CompressionZstd,
		Ratios:    defaultSampleRatios,
	}
}

// AnalyzeOption is a functional option for AnalyzeConfig.
type AnalyzeOption = options.Option[*AnalyzeConfig]

// WithMethod sets the transform method the error curve is sampled with.
func WithMethod(method format.Method) AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.Method = method
	})
}

// WithPrecision sets the coefficient precision of the sampled round trips,
// so the fitted curve includes quantization error.
func WithPrecision(precision format.Precision) AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.Precision = precision
	})
}

// WithPayloadCodec sets the payload codec of the sampled round trips. The
// codec never changes reconstruction error, only the sampling cost.
func WithPayloadCodec(codec format.CompressionType) AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.Codec = codec
	})
}

// WithRatios overrides the retention ratio grid to sample.
func WithRatios(ratios []float64) AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.Ratios = ratios
	})
}
