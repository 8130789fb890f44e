package regression

import (
	"errors"
	"fmt"
	"math"
)

// minSuggestedRatio is the floor SuggestRatio clamps to. Ratios below it keep
// so few coefficients that the fitted models have no data there.
const minSuggestedRatio = 0.001

// Model represents a regression model with metadata and the concrete estimator.
//
// A Model contains all the information needed to understand and use a fitted
// error curve. It includes the mathematical formula, statistical metrics, and
// a concrete estimator for making predictions.
//
// Fields:
//   - Type: The mathematical model type (hyperbolic, logarithmic, power)
//   - Coefficients: The fitted parameters of the model
//   - RSquared: Coefficient of determination (0-1, higher is better)
//   - FitRMSE: Root mean square residual of the fit itself (lower is better)
//   - Formula: Human-readable mathematical formula
//   - Estimator: Concrete implementation for making predictions
type Model struct {
	// Type is the model type (hyperbolic, logarithmic, power).
	Type ModelType
	// Coefficients contains the model coefficients.
	Coefficients []float64
	// RSquared is the coefficient of determination (goodness of fit, 0-1).
	RSquared float64
	// FitRMSE is the root mean square residual between the sampled errors
	// and the fitted curve. Not to be confused with the reconstruction RMSE
	// the curve itself predicts.
	FitRMSE float64
	// Formula is a human-readable representation of the model.
	Formula string
	// Estimator is the concrete estimator implementation.
	Estimator Estimator
}

// String returns a string representation of the model.
//
// This method provides a human-readable summary of the model including
// its type, statistical metrics, and mathematical formula.
//
// Returns:
//   - string: Formatted model information
func (m *Model) String() string {
	return fmt.Sprintf("Model{Type: %s, R²: %.4f, FitRMSE: %.4f, Formula: %s}",
		m.Type, m.RSquared, m.FitRMSE, m.Formula)
}

// Result represents the result of an error curve analysis.
//
// A Result contains the complete outcome of fitting reconstruction error
// against retention ratio, including the best-fit model selected by the
// highest R² value and all candidate models for comparison. This allows
// users to evaluate model performance and choose alternative models if
// needed.
//
// Fields:
//   - BestFit: The model with the highest R² value (automatically selected)
//   - AllModels: All fitted models ranked by R² (best first)
//   - SampledRatios: Retention ratios the (ratio, RMSE) points were taken at
type Result struct {
	// BestFit is the best-fit model (highest R²).
	BestFit *Model
	// AllModels contains all candidate models ranked by R² (best first).
	AllModels []*Model
	// SampledRatios holds the retention ratios used to generate the
	// (ratio, RMSE) points. This provides transparency into how data points
	// were constructed.
	SampledRatios []float64
}

// String returns a string representation of the result.
//
// This method provides a human-readable summary of the analysis result,
// including the best-fit model and the total number of candidate models.
//
// Returns:
//   - string: Formatted result information
func (r *Result) String() string {
	if r.BestFit == nil {
		return "Result{BestFit: nil}"
	}

	return fmt.Sprintf("Result{BestFit: %s, TotalModels: %d}",
		r.BestFit, len(r.AllModels))
}

// SuggestRatio inverts the best-fit model to find the retention ratio whose
// predicted reconstruction RMSE meets the target.
//
// The inverted ratio is clamped into [minSuggestedRatio, 1]: a target below
// what full retention reaches suggests 1.0, a target above the worst sampled
// error suggests the floor.
//
// Parameters:
//   - targetRMSE: Desired reconstruction error, in the pixel value units
//
// Returns:
//   - float64: Suggested retention ratio in (0, 1]
//   - error: When the result has no fitted model, the target is negative or
//     NaN, or the model cannot reach the target at any ratio
func (r *Result) SuggestRatio(targetRMSE float64) (float64, error) {
	if r.BestFit == nil || r.BestFit.Estimator == nil {
		return 0, errors.New("result carries no fitted model")
	}
	if math.IsNaN(targetRMSE) || targetRMSE < 0 {
		return 0, fmt.Errorf("target RMSE %v is not a non-negative number", targetRMSE)
	}

	ratio := r.BestFit.Estimator.Invert(targetRMSE)
	if math.IsNaN(ratio) {
		return 0, fmt.Errorf("%s model cannot reach RMSE %v at any ratio", r.BestFit.Type, targetRMSE)
	}

	return min(max(ratio, minSuggestedRatio), 1.0), nil
}
