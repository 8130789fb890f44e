package regression

import (
	"fmt"
	"math"
	"slices"

	"github.com/skypress/skypress/blob"
	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/internal/options"
	"github.com/skypress/skypress/selector"
)

// Analyze samples a map's error curve and returns a single best-fit model.
//
// This function compresses the map at a grid of retention ratios, measures
// the reconstruction RMSE of each round trip, and fits regression models to
// the (ratio, RMSE) points to find the best formula for predicting error at
// ratios that were never sampled.
//
// Parameters:
//   - pixels: Pixel array of length 12*nside^2
//   - nside: Resolution parameter of the map
//   - opts: Optional sampling configuration (method, precision, codec, ratios)
//
// Returns:
//   - *Result: Analysis result with best-fit model and all candidate models
//   - error: Analysis error if any
//
// Example:
//
//	result, err := regression.Analyze(m.Pixels, m.NSide)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rmse := result.BestFit.Estimator.Estimate(0.25) // Predicted RMSE at ratio 0.25
func Analyze(pixels []float64, nside int, opts ...AnalyzeOption) (*Result, error) {
	cfg := defaultAnalyzeConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	engine, err := blob.NewEngine(
		blob.WithMethod(cfg.Method),
		blob.WithPrecision(cfg.Precision),
		blob.WithPayloadCodec(cfg.Codec),
	)
	if err != nil {
		return nil, err
	}

	ratios, rmses, err := SampleErrorCurve(engine, pixels, nside, cfg.Method, cfg.Ratios)
	if err != nil {
		return nil, fmt.Errorf("failed to sample error curve: %w", err)
	}

	return FitErrorCurve(ratios, rmses)
}

// FitErrorCurve fits regression models to sampled (ratio, RMSE) points.
//
// This function fits three different regression models (hyperbolic,
// logarithmic, and power) to the provided data and selects the best-fit
// model based on the highest R² value. The function returns both the best
// model and all candidate models for comparison.
//
// Parameters:
//   - ratios: Retention ratios, each in (0, 1] (independent variable)
//   - rmses: Measured reconstruction RMSE at each ratio (dependent variable)
//
// Returns:
//   - *Result: Analysis result containing best-fit model and all candidates
//   - error: ErrLengthMismatch for unequal inputs, ErrInvalidRatio for a
//     ratio outside (0, 1], or a validation error for degenerate inputs
//
// The function fits three models:
//   - Hyperbolic: RMSE = a + b / ratio
//   - Logarithmic: RMSE = a + b * ln(ratio)
//   - Power: RMSE = a * ratio^b
//
// Models are ranked by R² (coefficient of determination) with the highest
// R² value selected as the best fit.
func FitErrorCurve(ratios, rmses []float64) (*Result, error) {
	if len(ratios) != len(rmses) {
		return nil, fmt.Errorf("%w: %d ratios vs %d error samples",
			errs.ErrLengthMismatch, len(ratios), len(rmses))
	}
	if len(ratios) < 2 {
		return nil, fmt.Errorf("insufficient data points for regression: %d", len(ratios))
	}

	distinct := false
	for _, ratio := range ratios {
		if err := selector.ValidateRatio(ratio); err != nil {
			return nil, err
		}
		if ratio != ratios[0] {
			distinct = true
		}
	}
	if !distinct {
		return nil, fmt.Errorf("all %d samples share ratio %v, curve is unconstrained", len(ratios), ratios[0])
	}

	// Fit all three models
	models := []*Model{
		fitHyperbolic(ratios, rmses),
		fitLogarithmic(ratios, rmses),
		fitPower(ratios, rmses),
	}

	// Sort models by R² (best first)
	slices.SortFunc(models, func(a, b *Model) int {
		if a.RSquared > b.RSquared {
			return -1
		}
		if a.RSquared < b.RSquared {
			return 1
		}

		return 0
	})

	return &Result{
		BestFit:       models[0],
		AllModels:     models,
		SampledRatios: slices.Clone(ratios),
	}, nil
}

// fitHyperbolic fits the hyperbolic model: RMSE = a + b / ratio
//
// This function performs linear regression on the transformed data where
// X' = 1/ratio and Y = RMSE. The hyperbolic model captures error curves that
// blow up sharply as the retention ratio approaches zero and flatten toward
// an asymptote near full retention.
//
// Parameters:
//   - x: Retention ratios
//   - y: Measured RMSE values
//
// Returns:
//   - *Model: Fitted hyperbolic model with coefficients, R², residual, and estimator
func fitHyperbolic(x, y []float64) *Model {
	n := len(x)

	// Transform: X' = 1/x, fit y = a + b*X'
	var sumX, sumY, sumXY, sumX2 float64
	for i := range n {
		xi := 1.0 / x[i]
		yi := y[i]
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)
	b := (sumXY - float64(n)*meanX*meanY) / (sumX2 - float64(n)*meanX*meanX)
	a := meanY - b*meanX

	// Calculate R² and residual
	predicted := make([]float64, n)
	for i := range n {
		predicted[i] = a + b/x[i]
	}
	r2 := calculateRSquared(y, predicted)
	rmse := calculateRMSE(y, predicted)

	formula := fmt.Sprintf("RMSE = %.4g + %.4g / ratio", a, b)

	return &Model{
		Type:         ModelTypeHyperbolic,
		Coefficients: []float64{a, b},
		RSquared:     r2,
		FitRMSE:      rmse,
		Formula:      formula,
		Estimator:    NewHyperbolicEstimator(a, b),
	}
}

// fitLogarithmic fits the logarithmic model: RMSE = a + b * ln(ratio)
//
// This function performs linear regression on the transformed data where
// X' = ln(ratio) and Y = RMSE. The logarithmic model captures error curves
// that fall steadily with each doubling of the retention ratio.
//
// Parameters:
//   - x: Retention ratios
//   - y: Measured RMSE values
//
// Returns:
//   - *Model: Fitted logarithmic model with coefficients, R², residual, and estimator
func fitLogarithmic(x, y []float64) *Model {
	n := len(x)

	// Transform: X' = ln(x), fit y = a + b*X'
	var sumX, sumY, sumXY, sumX2 float64
	for i := range n {
		xi := math.Log(x[i])
		yi := y[i]
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	// Least squares solution
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)
	b := (sumXY - float64(n)*meanX*meanY) / (sumX2 - float64(n)*meanX*meanX)
	a := meanY - b*meanX

	// Calculate R² and residual
	predicted := make([]float64, n)
	for i := range n {
		predicted[i] = a + b*math.Log(x[i])
	}
	r2 := calculateRSquared(y, predicted)
	rmse := calculateRMSE(y, predicted)

	formula := fmt.Sprintf("RMSE = %.4g + %.4g * ln(ratio)", a, b)

	return &Model{
		Type:         ModelTypeLogarithmic,
		Coefficients: []float64{a, b},
		RSquared:     r2,
		FitRMSE:      rmse,
		Formula:      formula,
		Estimator:    NewLogarithmicEstimator(a, b),
	}
}

// fitPower fits the power model: RMSE = a * ratio^b
//
// This function performs linear regression on the log-transformed data where
// X' = ln(ratio) and Y' = ln(RMSE), fitting ln(RMSE) = ln(a) + b * ln(ratio).
// Points with a non-positive RMSE carry no information in log space (an
// exact reconstruction has no finite logarithm) and are skipped; if fewer
// than two usable points remain the model is returned with R² zero so the
// ranking never selects it.
//
// Parameters:
//   - x: Retention ratios
//   - y: Measured RMSE values
//
// Returns:
//   - *Model: Fitted power model with coefficients, R², residual, and estimator
func fitPower(x, y []float64) *Model {
	// Transform: ln(y) = ln(a) + b*ln(x)
	var sumX, sumY, sumXY, sumX2 float64
	usable := 0
	for i := range x {
		if y[i] <= 0 {
			continue
		}
		xi := math.Log(x[i])
		yi := math.Log(y[i])
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
		usable++
	}

	if usable < 2 {
		return &Model{
			Type:         ModelTypePower,
			Coefficients: []float64{0, 0},
			RSquared:     0,
			FitRMSE:      0,
			Formula:      "RMSE = 0 * ratio^0",
			Estimator:    NewPowerEstimator(0, 0),
		}
	}

	meanX := sumX / float64(usable)
	meanY := sumY / float64(usable)
	b := (sumXY - float64(usable)*meanX*meanY) / (sumX2 - float64(usable)*meanX*meanX)
	logA := meanY - b*meanX
	a := math.Exp(logA)

	// Calculate R² and residual against all points, skipped ones included.
	n := len(x)
	predicted := make([]float64, n)
	for i := range n {
		predicted[i] = a * math.Pow(x[i], b)
	}
	r2 := calculateRSquared(y, predicted)
	rmse := calculateRMSE(y, predicted)

	formula := fmt.Sprintf("RMSE = %.4g * ratio^%.4g", a, b)

	return &Model{
		Type:         ModelTypePower,
		Coefficients: []float64{a, b},
		RSquared:     r2,
		FitRMSE:      rmse,
		Formula:      formula,
		Estimator:    NewPowerEstimator(a, b),
	}
}

// calculateRSquared calculates the coefficient of determination (R²).
//
// R² measures the proportion of variance in the dependent variable (RMSE)
// that is predictable from the independent variable (ratio). Values range
// from 0 to 1, where 1 indicates perfect fit and 0 indicates no linear
// relationship.
//
// Formula: R² = 1 - (SS_res / SS_tot)
//   - SS_res: Sum of squares of residuals (observed - predicted)²
//   - SS_tot: Total sum of squares (observed - mean)²
//
// Parameters:
//   - observed: Measured RMSE values from the round trips
//   - predicted: RMSE values predicted by the model
//
// Returns:
//   - float64: R² value between 0 and 1 (higher is better)
func calculateRSquared(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	mean := calculateMean(observed)
	ssTot := 0.0 // Total sum of squares
	ssRes := 0.0 // Residual sum of squares

	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}

	if ssTot == 0 {
		return 0
	}

	return 1.0 - (ssRes / ssTot)
}

// calculateRMSE calculates the root mean square residual of a fit.
//
// It measures how far the fitted curve deviates from the measured error
// samples on average. Lower values indicate a better fit.
//
// Formula: RMSE = √(Σ(observed - predicted)² / n)
//
// Parameters:
//   - observed: Measured RMSE values from the round trips
//   - predicted: RMSE values predicted by the model
//
// Returns:
//   - float64: Residual value (lower is better, same units as the samples)
func calculateRMSE(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	sumSq := 0.0
	for i := range observed {
		diff := observed[i] - predicted[i]
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(observed)))
}

// calculateMean calculates the arithmetic mean.
//
// This function computes the average value of a slice of floating-point
// numbers. It is used internally by other statistical functions for
// calculating R².
//
// Parameters:
//   - values: Slice of floating-point numbers
//
// Returns:
//   - float64: Arithmetic mean of the values (0 if slice is empty)
func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
