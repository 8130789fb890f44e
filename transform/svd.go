package transform

import (
	"fmt"

	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/format"
	"github.com/skypress/skypress/healpix"
	"github.com/skypress/skypress/selector"
	"gonum.org/v1/gonum/mat"
)

// SVDTransform compresses a map by truncated singular value decomposition of
// its matrix view: the top-r singular triplets by descending singular value,
// with r = round(ratio * min(rows, cols)) clamped to at least one.
type SVDTransform struct {
	ratio float64
}

// NewSVDTransform creates an svd transform with the given retention ratio.
func NewSVDTransform(ratio float64) *SVDTransform {
	return &SVDTransform{ratio: ratio}
}

// Method returns format.MethodSVD.
func (t *SVDTransform) Method() format.Method {
	return format.MethodSVD
}

// Forward factorizes the matrix view and keeps the top-r triplets.
//
// The set's Coeffs are the r singular values in descending order; the U and
// V factors land in LeftVectors and RightVectors at full precision.
func (t *SVDTransform) Forward(pixels []float64) (*CoefficientSet, error) {
	nside, err := healpix.NSideForPixels(len(pixels))
	if err != nil {
		return nil, err
	}

	rows, cols := healpix.MatrixDims(nside)
	rank, err := selector.RetainCount(min(rows, cols), t.ratio)
	if err != nil {
		return nil, err
	}

	var svd mat.SVD
	if !svd.Factorize(mat.NewDense(rows, cols, pixels), mat.SVDThin) {
		return nil, fmt.Errorf("svd for nside %d did not converge", nside)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	coeffs := append([]float64(nil), svd.Values(nil)[:rank]...)

	left := make([]float64, rows*rank)
	for i := 0; i < rows; i++ {
		for k := 0; k < rank; k++ {
			left[i*rank+k] = u.At(i, k)
		}
	}
	right := make([]float64, cols*rank)
	for j := 0; j < cols; j++ {
		for k := 0; k < rank; k++ {
			right[j*rank+k] = v.At(j, k)
		}
	}

	return &CoefficientSet{
		Method:       format.MethodSVD,
		Coeffs:       coeffs,
		Rank:         rank,
		Rows:         rows,
		Cols:         cols,
		LeftVectors:  left,
		RightVectors: right,
	}, nil
}

// Inverse reconstructs the matrix view as U * diag(s) * V^T and flattens it
// back to pixel order.
func (t *SVDTransform) Inverse(set *CoefficientSet) ([]float64, error) {
	if set.Rank < 1 || len(set.Coeffs) != set.Rank {
		return nil, fmt.Errorf("%w: %d singular values for rank %d",
			errs.ErrBasisMismatch, len(set.Coeffs), set.Rank)
	}
	if len(set.LeftVectors) != set.Rows*set.Rank || len(set.RightVectors) != set.Cols*set.Rank {
		return nil, fmt.Errorf("%w: factor dims %dx%d disagree with %dx%d rank %d",
			errs.ErrBasisMismatch, len(set.LeftVectors), len(set.RightVectors),
			set.Rows, set.Cols, set.Rank)
	}

	var us, m mat.Dense
	us.Mul(
		mat.NewDense(set.Rows, set.Rank, set.LeftVectors),
		mat.NewDiagDense(set.Rank, set.Coeffs),
	)
	m.Mul(&us, mat.NewDense(set.Cols, set.Rank, set.RightVectors).T())

	return flattenDense(&m), nil
}
