// Package regression predicts reconstruction error from the retention ratio
// by fitting regression models to sampled compress/decompress round trips.
//
// Choosing a retention ratio is a blind guess without knowing how much error
// it buys. This package samples a map's error curve at a grid of ratios,
// fits candidate models to the (ratio, RMSE) points, and exposes the best
// fit for two questions: what error a given ratio will produce, and what
// ratio reaches a given error target.
//
// # Usage Patterns
//
// ## Basic Analysis
//
// Sample and fit a map's error curve in one call:
//
//	result, err := regression.Analyze(m.Pixels, m.NSide)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Predict the reconstruction error at an unsampled ratio
//	rmse := result.BestFit.Estimator.Estimate(0.25)
//
//	// Or go the other way: find the ratio for an error budget
//	ratio, err := result.SuggestRatio(0.05)
//
// ## Custom Sampling
//
// Control the method, precision, and ratio grid:
//
//	result, err := regression.Analyze(m.Pixels, m.NSide,
//	    regression.WithMethod(format.MethodSVD),
//	    regression.WithPrecision(format.PrecisionUint16),
//	    regression.WithRatios([]float64{0.1, 0.2, 0.4, 0.8}),
//	)
//
// ## Separate Sampling and Fitting
//
// Sample with a caller-owned engine (for example one carrying a shared PCA
// basis) and fit separately:
//
//	ratios, rmses, err := regression.SampleErrorCurve(engine, m.Pixels, m.NSide, format.MethodPCA, grid)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := regression.FitErrorCurve(ratios, rmses)
//
// # Model Types
//
// The package fits three models:
//
//   - **Hyperbolic**: RMSE = a + b / ratio
//   - **Logarithmic**: RMSE = a + b * ln(ratio)
//   - **Power**: RMSE = a * ratio^b
//
// The best-fit model is automatically selected based on the highest R²
// coefficient; AllModels keeps the full ranking for comparison. Which model
// wins depends on the map: smooth maps with fast-decaying coefficients tend
// toward the power model, noisy maps toward the hyperbolic one.
//
// # Scope
//
// The fitted curve describes one map (or one family of statistically similar
// maps) under one engine configuration. Refit when the configuration or the
// data distribution changes; fitting is cheap next to the round trips that
// feed it.
package regression
