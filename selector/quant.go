package selector

import (
	"math"

	"github.com/skypress/skypress/format"
)

// Quantization holds fitted affine quantization parameters for a retained
// coefficient set.
//
// A coefficient v maps to the integer code round((v - Offset) / Scale); the
// inverse mapping is v = code*Scale + Offset. The fit is symmetric around
// zero (Offset is always 0) because transform coefficients are signed and
// centered: the largest finite magnitude lands exactly on the edge of the
// code range.
type Quantization struct {
	// Scale is the quantization step size, always positive.
	Scale float64
	// Offset is the value mapped to code 0. Zero for the symmetric fit.
	Offset float64
}

// FitQuantization fits quantization parameters to the given values for the
// given precision.
//
// For PrecisionFloat64 the identity parameters (scale 1, offset 0) are
// returned; the raw encoder stores full bit patterns and never applies them.
// For PrecisionUint16 and PrecisionUint8 the scale is maxAbs/range with range
// 32767 and 127 respectively, where maxAbs is the largest finite magnitude in
// values. When every value is zero or non-finite the scale degenerates to 1,
// keeping the mapping invertible.
//
// Parameters:
//   - values: Retained coefficients to fit (non-finite entries are ignored)
//   - precision: Target coefficient precision
//
// Returns:
//   - Quantization: Fitted parameters, Scale > 0 in all cases
func FitQuantization(values []float64, precision format.Precision) Quantization {
	if precision == format.PrecisionFloat64 {
		return Quantization{Scale: 1, Offset: 0}
	}

	codeRange := float64(int(1)<<(precision.Bits()-1) - 1)

	maxAbs := 0.0
	for _, v := range values {
		m := math.Abs(v)
		if math.IsInf(m, 1) || math.IsNaN(m) {
			continue
		}
		if m > maxAbs {
			maxAbs = m
		}
	}

	if maxAbs == 0 {
		return Quantization{Scale: 1, Offset: 0}
	}

	return Quantization{Scale: maxAbs / codeRange, Offset: 0}
}
