package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skypress/skypress/blob"
	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/healpix"
)

func TestReport(t *testing.T) {
	t.Run("Exact reconstruction", func(t *testing.T) {
		pixels := []float64{1, 2, 3, 4}

		s, err := Report(pixels, pixels, 2500, 10000)
		require.NoError(t, err)
		require.Equal(t, 2500, s.CompressedBytes)
		require.Equal(t, 10000, s.OriginalBytes)
		require.Zero(t, s.RMSE)
		require.Zero(t, s.MaxAbsError)
		require.InDelta(t, 0.25, s.CompressionRatio(), 1e-12)
		require.InDelta(t, 75.0, s.SpaceSavings(), 1e-12)
	})

	t.Run("Known error figures", func(t *testing.T) {
		original := []float64{3, -4, 0}
		reconstructed := []float64{0, 0, 0}

		s, err := Report(original, reconstructed, 100, 100)
		require.NoError(t, err)
		require.InDelta(t, math.Sqrt(25.0/3.0), s.RMSE, 1e-12)
		require.InDelta(t, 4.0, s.MaxAbsError, 1e-12)
		require.InDelta(t, 1.0, s.CompressionRatio(), 1e-12)
		require.Zero(t, s.SpaceSavings())
	})

	t.Run("Length mismatch", func(t *testing.T) {
		_, err := Report([]float64{1, 2}, []float64{1}, 10, 20)
		require.ErrorIs(t, err, errs.ErrLengthMismatch)
	})

	t.Run("Empty arrays", func(t *testing.T) {
		s, err := Report(nil, nil, 40, 0)
		require.NoError(t, err)
		require.Zero(t, s.RMSE)
		require.Zero(t, s.MaxAbsError)
	})

	t.Run("Negative savings when artifact grows", func(t *testing.T) {
		s, err := Report([]float64{1}, []float64{1}, 120, 100)
		require.NoError(t, err)
		require.InDelta(t, 1.2, s.CompressionRatio(), 1e-12)
		require.InDelta(t, -20.0, s.SpaceSavings(), 1e-12)
	})
}

func TestRMSE(t *testing.T) {
	rmse, err := RMSE([]float64{1, 2, 3}, []float64{1, 2, 4})
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(1.0/3.0), rmse, 1e-12)

	_, err = RMSE([]float64{1}, []float64{1, 2})
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

func TestMaxAbsError(t *testing.T) {
	maxAbs, err := MaxAbsError([]float64{1, -5, 3}, []float64{2, 5, 3})
	require.NoError(t, err)
	require.InDelta(t, 10.0, maxAbs, 1e-12)

	_, err = MaxAbsError(nil, []float64{1})
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

func TestReport_EngineRoundTrip(t *testing.T) {
	const nside = 8
	npix := healpix.NPix(nside)

	// A smooth map compresses well, so the reported ratio must land far
	// below one at a low retention ratio.
	pixels := make([]float64, npix)
	for i := range pixels {
		x := float64(i) / float64(npix)
		pixels[i] = math.Sin(9*x) + 0.25*math.Cos(40*x)
	}

	engine, err := blob.NewEngine(blob.WithRatio(0.2))
	require.NoError(t, err)

	rep, err := engine.Compress(pixels, nside)
	require.NoError(t, err)

	reconstructed, err := engine.Decompress(rep)
	require.NoError(t, err)

	s, err := Report(pixels, reconstructed, rep.Size(), 8*npix)
	require.NoError(t, err)
	require.Less(t, s.CompressionRatio(), 1.0)
	require.Greater(t, s.SpaceSavings(), 0.0)
	require.Greater(t, s.RMSE, 0.0)
	require.GreaterOrEqual(t, s.MaxAbsError, s.RMSE)
}
