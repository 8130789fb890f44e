package regression_test

import (
	"fmt"
	"log"

	"github.com/skypress/skypress/regression"
)

// ExampleFitErrorCurve demonstrates fitting an error curve to sampled points.
func ExampleFitErrorCurve() {
	// Sampled (ratio, RMSE) points (in production, these come from
	// SampleErrorCurve round trips on your actual sky maps)
	ratios, rmses := createExampleCurve()

	result, err := regression.FitErrorCurve(ratios, rmses)
	if err != nil {
		log.Fatal(err)
	}

	// Print the best-fit model
	fmt.Printf("Best-fit model: %s\n", result.BestFit)
	fmt.Printf("Formula: %s\n", result.BestFit.Formula)
	fmt.Printf("R²: %.4f\n", result.BestFit.RSquared)

	// Use the estimator to predict error at ratios that were never sampled
	estimator := result.BestFit.Estimator
	fmt.Printf("Estimated RMSE at ratio 0.5: %.3f\n", estimator.Estimate(0.5))
	fmt.Printf("Estimated RMSE at ratio 0.1: %.3f\n", estimator.Estimate(0.1))

	// Invert the curve to find the cheapest ratio within an error budget
	ratio, err := result.SuggestRatio(0.045)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Suggested ratio for RMSE 0.045: %.2f\n", ratio)

	// Output:
	// Best-fit model: Model{Type: hyperbolic, R²: 1.0000, FitRMSE: 0.0000, Formula: RMSE = 0.02 + 0.005 / ratio}
	// Formula: RMSE = 0.02 + 0.005 / ratio
	// R²: 1.0000
	// Estimated RMSE at ratio 0.5: 0.030
	// Estimated RMSE at ratio 0.1: 0.070
	// Suggested ratio for RMSE 0.045: 0.20
}

// ExampleNewHyperbolicEstimator demonstrates how to use the Estimator interface.
func ExampleNewHyperbolicEstimator() {
	// Rebuild an error model from known coefficients
	estimator := regression.NewHyperbolicEstimator(0.01, 0.004)

	// Predict reconstruction error across retention ratios
	ratios := []float64{0.05, 0.1, 0.25, 0.5, 1.0}
	fmt.Println("Ratio -> RMSE predictions:")
	for _, ratio := range ratios {
		rmse := estimator.Estimate(ratio)
		fmt.Printf("%.2f -> %.3f\n", ratio, rmse)
	}

	// Get model metadata
	fmt.Printf("Model type: %s\n", estimator.Type())
	fmt.Printf("Coefficients: %v\n", estimator.Coefficients())

	// Output:
	// Ratio -> RMSE predictions:
	// 0.05 -> 0.090
	// 0.10 -> 0.050
	// 0.25 -> 0.026
	// 0.50 -> 0.018
	// 1.00 -> 0.014
	// Model type: hyperbolic
	// Coefficients: [0.01 0.004]
}

// ExampleResult_SuggestRatio demonstrates picking ratios for error budgets.
func ExampleResult_SuggestRatio() {
	ratios, rmses := createExampleCurve()
	result, err := regression.FitErrorCurve(ratios, rmses)
	if err != nil {
		log.Fatal(err)
	}

	// The cheapest ratio that stays inside each error budget
	for _, target := range []float64{0.27, 0.07, 0.045, 0.03} {
		ratio, err := result.SuggestRatio(target)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("RMSE budget %.3f -> keep %.2f of coefficients\n", target, ratio)
	}

	// Output:
	// RMSE budget 0.270 -> keep 0.02 of coefficients
	// RMSE budget 0.070 -> keep 0.10 of coefficients
	// RMSE budget 0.045 -> keep 0.20 of coefficients
	// RMSE budget 0.030 -> keep 0.50 of coefficients
}

// createExampleCurve creates sampled error-curve points for demonstration
// purposes. The points follow RMSE = 0.02 + 0.005 / ratio exactly.
func createExampleCurve() (ratios, rmses []float64) {
	ratios = []float64{0.02, 0.05, 0.1, 0.25, 0.5, 1.0}
	rmses = make([]float64, len(ratios))
	for i, ratio := range ratios {
		rmses[i] = 0.02 + 0.005/ratio
	}

	return ratios, rmses
}
