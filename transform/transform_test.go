package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/format"
)

func TestCreateTransform_Dispatch(t *testing.T) {
	for _, method := range []format.Method{
		format.MethodWavelet,
		format.MethodPCA,
		format.MethodSVD,
	} {
		tr, err := CreateTransform(method)
		require.NoError(t, err)
		require.Equal(t, method, tr.Method())
	}
}

func TestCreateTransform_UnknownMethod(t *testing.T) {
	_, err := CreateTransform(format.Method(0x9))
	require.ErrorIs(t, err, errs.ErrUnknownMethod)

	_, err = CreateTransform(format.Method(0))
	require.ErrorIs(t, err, errs.ErrUnknownMethod)
}

func TestCreateTransform_InvalidRatioOption(t *testing.T) {
	_, err := CreateTransform(format.MethodSVD, WithRatio(1.5))
	require.ErrorIs(t, err, errs.ErrInvalidRatio)

	_, err = CreateTransform(format.MethodPCA, WithRatio(0))
	require.ErrorIs(t, err, errs.ErrInvalidRatio)
}

func TestCreateTransform_RatioReachesRank(t *testing.T) {
	tr, err := CreateTransform(format.MethodSVD, WithRatio(0.5))
	require.NoError(t, err)

	set, err := tr.Forward(randomPixels(12, 70))
	require.NoError(t, err)
	require.Equal(t, 2, set.Rank)
}

func TestCreateTransform_WaveletLevelsOption(t *testing.T) {
	tr, err := CreateTransform(format.MethodWavelet, WithWaveletLevels(1))
	require.NoError(t, err)

	set, err := tr.Forward(randomPixels(192, 71))
	require.NoError(t, err)
	require.Equal(t, 1, set.Levels)
}

func TestCreateTransform_SharedBasisOption(t *testing.T) {
	basis, err := FitBasis(randomPixels(12, 72), 1, 2)
	require.NoError(t, err)

	tr, err := CreateTransform(format.MethodPCA, WithBasis(basis))
	require.NoError(t, err)

	set, err := tr.Forward(randomPixels(12, 73))
	require.NoError(t, err)
	require.Same(t, basis, set.Basis)

	// Non-pca methods ignore the basis.
	_, err = CreateTransform(format.MethodWavelet, WithBasis(basis))
	require.NoError(t, err)
}

func TestCoefficientSet_NPix(t *testing.T) {
	wavelet := &CoefficientSet{Method: format.MethodWavelet, Coeffs: make([]float64, 48)}
	require.Equal(t, 48, wavelet.NPix())

	pca := &CoefficientSet{Method: format.MethodPCA, Rows: 3, Cols: 4}
	require.Equal(t, 12, pca.NPix())

	svd := &CoefficientSet{Method: format.MethodSVD, Rows: 6, Cols: 8}
	require.Equal(t, 48, svd.NPix())
}
