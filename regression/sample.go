package regression

import (
	"fmt"
	"slices"

	"github.com/skypress/skypress/blob"
	"github.com/skypress/skypress/format"
	"github.com/skypress/skypress/stats"
)

// defaultSampleRatios is the retention ratio grid Analyze measures when the
// caller does not supply one. It is denser at the low end where the error
// curve bends hardest, and stops short of 1.0 where near-exact wavelet
// round trips contribute no usable information to the fits.
var defaultSampleRatios = []float64{0.02, 0.05, 0.1, 0.15, 0.25, 0.4, 0.6, 0.8}

// SampleErrorCurve measures reconstruction error at each retention ratio.
//
// For every ratio it runs one full compress/decompress round trip with the
// given engine and method, and records the RMSE between the original and the
// reconstruction. The returned slices are aligned and ready for
// FitErrorCurve.
//
// Parameters:
//   - engine: Engine to run round trips on
//   - pixels: Pixel array of length 12*nside^2
//   - nside: Resolution parameter of the map
//   - method: Transform method to sample
//   - ratios: Retention ratios to measure, each in (0, 1]
//
// Returns:
//   - []float64: The sampled ratios, in input order
//   - []float64: Measured reconstruction RMSE at each ratio
//   - error: The first round-trip failure, wrapped with the offending ratio
func SampleErrorCurve(engine *blob.Engine, pixels []float64, nside int, method format.Method, ratios []float64) ([]float64, []float64, error) {
	rmses := make([]float64, 0, len(ratios))

	for _, ratio := range ratios {
		rep, err := engine.CompressMethod(pixels, nside, method, ratio)
		if err != nil {
			return nil, nil, fmt.Errorf("compress at ratio %v: %w", ratio, err)
		}

		reconstructed, err := engine.Decompress(rep)
		if err != nil {
			return nil, nil, fmt.Errorf("decompress at ratio %v: %w", ratio, err)
		}

		rmse, err := stats.RMSE(pixels, reconstructed)
		if err != nil {
			return nil, nil, fmt.Errorf("measure at ratio %v: %w", ratio, err)
		}
		rmses = append(rmses, rmse)
	}

	return slices.Clone(ratios), rmses, nil
}
