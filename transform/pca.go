package transform

import (
	"fmt"

	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/format"
	"github.com/skypress/skypress/healpix"
	"github.com/skypress/skypress/selector"
)

// PCATransform compresses a map by projecting its matrix view onto a PCA
// basis. Without a shared basis it fits a fresh basis per Forward call, with
// the rank derived from the configured ratio; with one it projects onto the
// shared basis and the ratio is ignored.
type PCATransform struct {
	ratio float64
	basis *Basis
}

// NewPCATransform creates a pca transform that fits a per-map basis with
// rank round(ratio * min(rows, cols)), clamped to at least one component.
func NewPCATransform(ratio float64) *PCATransform {
	return &PCATransform{ratio: ratio}
}

// NewPCATransformWithBasis creates a pca transform that projects every map
// onto the given shared basis.
func NewPCATransformWithBasis(basis *Basis) *PCATransform {
	return &PCATransform{basis: basis}
}

// Method returns format.MethodPCA.
func (t *PCATransform) Method() format.Method {
	return format.MethodPCA
}

// Forward projects pixels onto the basis and returns the projection scores.
//
// Fails with errs.ErrUnsupportedResolution for a bad pixel count,
// errs.ErrInvalidRatio for a ratio outside (0, 1], and errs.ErrBasisMismatch
// when a shared basis was fitted for a different resolution.
func (t *PCATransform) Forward(pixels []float64) (*CoefficientSet, error) {
	nside, err := healpix.NSideForPixels(len(pixels))
	if err != nil {
		return nil, err
	}

	basis := t.basis
	if basis == nil {
		rows, cols := healpix.MatrixDims(nside)
		rank, rankErr := selector.RetainCount(min(rows, cols), t.ratio)
		if rankErr != nil {
			return nil, rankErr
		}

		basis, err = FitBasis(pixels, nside, rank)
		if err != nil {
			return nil, err
		}
	} else if basis.NSide() != nside {
		return nil, fmt.Errorf("%w: basis fitted for nside %d, map has nside %d",
			errs.ErrBasisMismatch, basis.NSide(), nside)
	}

	scores, err := basis.Project(pixels)
	if err != nil {
		return nil, err
	}

	rows, cols := basis.Dims()

	return &CoefficientSet{
		Method: format.MethodPCA,
		Coeffs: scores,
		Rank:   basis.Rank(),
		Rows:   rows,
		Cols:   cols,
		Basis:  basis,
	}, nil
}

// Inverse reconstructs the pixel array from projection scores via the
// basis carried by the set.
func (t *PCATransform) Inverse(set *CoefficientSet) ([]float64, error) {
	if set.Basis == nil {
		return nil, fmt.Errorf("%w: coefficient set carries no basis", errs.ErrBasisMismatch)
	}

	return set.Basis.Reconstruct(set.Coeffs)
}
