// Package transform implements the coefficient transforms behind sky map
// compression: a multi-level CDF 9/7 wavelet decomposition along the pixel
// ordering, and two rank-reducing factorizations (PCA and SVD) over the
// map's 2-D matrix view.
//
// All transforms are pure: Forward and Inverse never modify their inputs,
// and the same input always produces the same output. A Transform value is
// safe for concurrent use because it carries only immutable configuration.
package transform

import (
	"fmt"

	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/format"
	"github.com/skypress/skypress/internal/options"
	"github.com/skypress/skypress/selector"
	"gonum.org/v1/gonum/mat"
)

// Transform maps pixel arrays into a coefficient domain and back.
//
// Forward produces a CoefficientSet holding the coefficient values plus the
// side data the method needs for reconstruction. Inverse consumes such a set
// and returns the reconstructed pixel array. Implementations validate the
// pixel count against the HEALPix geometry and fail with
// errs.ErrUnsupportedResolution when it does not describe a valid map.
type Transform interface {
	// Method returns the method tag stamped into artifact headers.
	Method() format.Method

	// Forward maps pixels into the coefficient domain. The input is not
	// modified.
	Forward(pixels []float64) (*CoefficientSet, error)

	// Inverse reconstructs a pixel array from a coefficient set. The set is
	// not modified.
	Inverse(set *CoefficientSet) ([]float64, error)
}

// CoefficientSet carries the output of a forward transform: the coefficient
// values subject to selection and encoding, plus the side data the inverse
// needs. Which fields are populated depends on the method:
//
//	wavelet: Coeffs holds one coefficient per pixel, Levels the
//	         decomposition depth. All other fields are zero.
//	pca:     Coeffs holds the projection scores (Rows x Rank, row-major),
//	         Basis the fitted or shared basis, Rows/Cols the matrix view.
//	svd:     Coeffs holds the Rank singular values in descending order,
//	         LeftVectors/RightVectors the truncated U (Rows x Rank) and
//	         V (Cols x Rank) factors, row-major.
type CoefficientSet struct {
	Method format.Method

	// Coeffs is the flat coefficient sequence. See the per-method layout
	// above.
	Coeffs []float64

	// Levels is the wavelet decomposition depth. Zero means the transform
	// was the identity (the map is too small to split).
	Levels int

	// Rank is the retained factor rank for pca and svd.
	Rank int

	// Rows and Cols are the matrix view dimensions for pca and svd.
	Rows, Cols int

	// Basis is the PCA basis used to produce the scores.
	Basis *Basis

	// LeftVectors and RightVectors are the truncated SVD factors.
	LeftVectors  []float64
	RightVectors []float64
}

// NPix returns the pixel count the set reconstructs to.
func (s *CoefficientSet) NPix() int {
	switch s.Method {
	case format.MethodPCA, format.MethodSVD:
		return s.Rows * s.Cols
	default:
		return len(s.Coeffs)
	}
}

type config struct {
	ratio         float64
	waveletLevels int
	basis         *Basis
}

// Option configures a transform created through CreateTransform.
type Option = options.Option[*config]

// WithRatio sets the retention ratio used by the rank-reducing methods to
// pick their rank. The wavelet method ignores it because wavelet retention
// happens downstream, after coefficient selection.
// Ratios outside (0, 1] fail with errs.ErrInvalidRatio.
func WithRatio(ratio float64) Option {
	return options.New(func(cfg *config) error {
		if err := selector.ValidateRatio(ratio); err != nil {
			return err
		}
		cfg.ratio = ratio

		return nil
	})
}

// WithWaveletLevels overrides the wavelet decomposition depth. Zero or
// negative restores the default, which derives the deepest useful depth from
// the pixel count. Requests deeper than the pixel count supports are clamped.
func WithWaveletLevels(levels int) Option {
	return options.NoError(func(cfg *config) {
		cfg.waveletLevels = levels
	})
}

// WithBasis makes the pca method project onto the given shared basis instead
// of fitting a fresh one per call. The other methods ignore it.
func WithBasis(basis *Basis) Option {
	return options.NoError(func(cfg *config) {
		cfg.basis = basis
	})
}

// CreateTransform is a factory function that creates a Transform for the
// specified method tag.
//
// Parameters:
//   - method: Transform method (Wavelet, PCA, or SVD)
//   - opts: Optional configuration (ratio, wavelet depth, shared basis)
//
// Returns:
//   - Transform: Transform instance for the specified method
//   - error: errs.ErrUnknownMethod for an unrecognized tag, or an option error
func CreateTransform(method format.Method, opts ...Option) (Transform, error) {
	cfg := &config{ratio: 1.0}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	switch method {
	case format.MethodWavelet:
		return NewWaveletTransform(cfg.waveletLevels), nil
	case format.MethodPCA:
		if cfg.basis != nil {
			return NewPCATransformWithBasis(cfg.basis), nil
		}

		return NewPCATransform(cfg.ratio), nil
	case format.MethodSVD:
		return NewSVDTransform(cfg.ratio), nil
	default:
		return nil, fmt.Errorf("%w: 0x%02X", errs.ErrUnknownMethod, uint8(method))
	}
}

// flattenDense copies a dense matrix into a freshly allocated row-major
// slice. The result length is rows*cols regardless of the matrix stride.
func flattenDense(m *mat.Dense) []float64 {
	rows, cols := m.Dims()
	out := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		copy(out[i*cols:(i+1)*cols], m.RawRowView(i))
	}

	return out
}
