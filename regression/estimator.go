package regression

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// ModelType represents the type of regression model.
type ModelType int

const (
	// ModelTypeHyperbolic represents the hyperbolic model: RMSE = a + b / ratio
	ModelTypeHyperbolic ModelType = iota
	// ModelTypeLogarithmic represents the logarithmic model: RMSE = a + b * ln(ratio)
	ModelTypeLogarithmic
	// ModelTypePower represents the power model: RMSE = a * ratio^b
	ModelTypePower
)

// modelTypeNames maps ModelType to their string representations.
var modelTypeNames = map[ModelType]string{
	ModelTypeHyperbolic:  "hyperbolic",
	ModelTypeLogarithmic: "logarithmic",
	ModelTypePower:       "power",
}

// String returns the string representation of the model type.
func (mt ModelType) String() string {
	if name, exists := modelTypeNames[mt]; exists {
		return name
	}

	return "unknown"
}

// modelTypeFromString maps string names to ModelType.
var modelTypeFromString = map[string]ModelType{
	"hyperbolic":  ModelTypeHyperbolic,
	"logarithmic": ModelTypeLogarithmic,
	"power":       ModelTypePower,
}

// ModelTypeFromString returns the ModelType for a given string name.
// Returns ModelType(-1) for unknown names.
func ModelTypeFromString(name string) ModelType {
	if modelType, exists := modelTypeFromString[strings.ToLower(name)]; exists {
		return modelType
	}

	return ModelType(-1) // Invalid ModelType
}

// newEmptyEstimator creates an empty estimator for the given ModelType.
// This is used internally by NewEstimator to create estimators and validate coefficients.
func newEmptyEstimator(modelType ModelType) Estimator {
	switch modelType {
	case ModelTypeHyperbolic:
		return NewHyperbolicEstimator(0, 0)
	case ModelTypeLogarithmic:
		return NewLogarithmicEstimator(0, 0)
	case ModelTypePower:
		return NewPowerEstimator(0, 0)
	default:
		return nil
	}
}

// Estimator defines the interface for reconstruction error models.
//
// An Estimator predicts the reconstruction RMSE at a given retention ratio,
// and inverts that prediction to find the ratio that reaches a target RMSE.
type Estimator interface {
	// Estimate predicts the reconstruction RMSE for a retention ratio in (0, 1].
	Estimate(ratio float64) float64
	// Invert returns the retention ratio at which the model predicts the given
	// RMSE, or NaN when the model cannot reach it.
	Invert(rmse float64) float64
	// Type returns the model type.
	Type() ModelType
	// Coefficients returns the model coefficients.
	Coefficients() []float64
	// SetCoefficients updates the coefficients of the model.
	// This allows runtime updates to the estimator without creating a new instance.
	// All three model types expect exactly 2 coefficients.
	SetCoefficients(coeffs []float64) error
}

// HyperbolicEstimator implements the hyperbolic model: RMSE = a + b / ratio
type HyperbolicEstimator struct {
	a, b   float64
	coeffs []float64 // Cached coefficient slice to avoid allocations
}

// NewHyperbolicEstimator creates a new hyperbolic estimator with the given coefficients.
func NewHyperbolicEstimator(a, b float64) *HyperbolicEstimator {
	return &HyperbolicEstimator{
		a:      a,
		b:      b,
		coeffs: make([]float64, 2), // Pre-allocate coefficient slice
	}
}

// Estimate predicts RMSE using the hyperbolic formula: RMSE = a + b / ratio
func (h *HyperbolicEstimator) Estimate(ratio float64) float64 {
	if ratio <= 0 {
		return math.Inf(1) // Return infinity for invalid ratio
	}

	return h.a + h.b/ratio
}

// Invert returns the ratio where the model predicts rmse: ratio = b / (rmse - a).
// Returns NaN when b is zero or the target sits at or past the model's asymptote.
func (h *HyperbolicEstimator) Invert(rmse float64) float64 {
	if h.b == 0 || rmse == h.a {
		return math.NaN()
	}

	ratio := h.b / (rmse - h.a)
	if ratio <= 0 || math.IsInf(ratio, 0) || math.IsNaN(ratio) {
		return math.NaN()
	}

	return ratio
}

// Type returns the model type.
func (h *HyperbolicEstimator) Type() ModelType {
	return ModelTypeHyperbolic
}

// Coefficients returns the model coefficients [a, b].
func (h *HyperbolicEstimator) Coefficients() []float64 {
	h.coeffs[0] = h.a
	h.coeffs[1] = h.b

	return h.coeffs
}

// SetCoefficients updates the coefficients of the hyperbolic model.
// Expects exactly 2 coefficients: [a, b] for the formula RMSE = a + b / ratio.
func (h *HyperbolicEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("hyperbolic model expects exactly 2 coefficients, got %d", len(coeffs))
	}
	h.a = coeffs[0]
	h.b = coeffs[1]

	return nil
}

// LogarithmicEstimator implements the logarithmic model: RMSE = a + b * ln(ratio)
type LogarithmicEstimator struct {
	a, b   float64
	coeffs []float64 // Cached coefficient slice to avoid allocations
}

// NewLogarithmicEstimator creates a new logarithmic estimator with the given coefficients.
func NewLogarithmicEstimator(a, b float64) *LogarithmicEstimator {
	return &LogarithmicEstimator{
		a:      a,
		b:      b,
		coeffs: make([]float64, 2), // Pre-allocate coefficient slice
	}
}

// Estimate predicts RMSE using the logarithmic formula: RMSE = a + b * ln(ratio)
func (l *LogarithmicEstimator) Estimate(ratio float64) float64 {
	if ratio <= 0 {
		return math.Inf(1) // Return infinity for invalid ratio
	}

	return l.a + l.b*math.Log(ratio)
}

// Invert returns the ratio where the model predicts rmse: ratio = e^((rmse - a) / b).
// Returns NaN when b is zero.
func (l *LogarithmicEstimator) Invert(rmse float64) float64 {
	if l.b == 0 {
		return math.NaN()
	}

	return math.Exp((rmse - l.a) / l.b)
}

// Type returns the model type.
func (l *LogarithmicEstimator) Type() ModelType {
	return ModelTypeLogarithmic
}

// Coefficients returns the model coefficients [a, b].
func (l *LogarithmicEstimator) Coefficients() []float64 {
	l.coeffs[0] = l.a
	l.coeffs[1] = l.b

	return l.coeffs
}

// SetCoefficients updates the coefficients of the logarithmic model.
// Expects exactly 2 coefficients: [a, b] for the formula RMSE = a + b * ln(ratio).
func (l *LogarithmicEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("logarithmic model expects exactly 2 coefficients, got %d", len(coeffs))
	}
	l.a = coeffs[0]
	l.b = coeffs[1]

	return nil
}

// PowerEstimator implements the power model: RMSE = a * ratio^b
type PowerEstimator struct {
	a, b   float64
	coeffs []float64 // Cached coefficient slice to avoid allocations
}

// NewPowerEstimator creates a new power estimator with the given coefficients.
func NewPowerEstimator(a, b float64) *PowerEstimator {
	return &PowerEstimator{
		a:      a,
		b:      b,
		coeffs: make([]float64, 2), // Pre-allocate coefficient slice
	}
}

// Estimate predicts RMSE using the power formula: RMSE = a * ratio^b
func (p *PowerEstimator) Estimate(ratio float64) float64 {
	if ratio <= 0 {
		return math.Inf(1) // Return infinity for invalid ratio
	}

	return p.a * math.Pow(ratio, p.b)
}

// Invert returns the ratio where the model predicts rmse: ratio = (rmse / a)^(1/b).
// Returns NaN when a or rmse is not positive, or b is zero.
func (p *PowerEstimator) Invert(rmse float64) float64 {
	if p.a <= 0 || p.b == 0 || rmse <= 0 {
		return math.NaN()
	}

	return math.Pow(rmse/p.a, 1/p.b)
}

// Type returns the model type.
func (p *PowerEstimator) Type() ModelType {
	return ModelTypePower
}

// Coefficients returns the model coefficients [a, b].
func (p *PowerEstimator) Coefficients() []float64 {
	p.coeffs[0] = p.a
	p.coeffs[1] = p.b

	return p.coeffs
}

// SetCoefficients updates the coefficients of the power model.
// Expects exactly 2 coefficients: [a, b] for the formula RMSE = a * ratio^b.
func (p *PowerEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("power model expects exactly 2 coefficients, got %d", len(coeffs))
	}
	p.a = coeffs[0]
	p.b = coeffs[1]

	return nil
}

// NewEstimator creates a new estimator by name and coefficients.
//
// This function provides a convenient factory method for creating estimator
// implementations dynamically based on the model name and provided coefficients,
// for example to rebuild an estimator from coefficients persisted elsewhere.
//
// Parameters:
//   - name: The model name (case-insensitive). Supported names:
//   - "hyperbolic": Creates HyperbolicEstimator (expects 2 coefficients)
//   - "logarithmic": Creates LogarithmicEstimator (expects 2 coefficients)
//   - "power": Creates PowerEstimator (expects 2 coefficients)
//   - coeffs: The model coefficients. All supported models expect 2 coefficients.
//
// Returns:
//   - Estimator: The created estimator instance
//   - error: Returns an error if the name is invalid or coefficients are invalid
//
// Example:
//
//	// Rebuild a fitted hyperbolic error model
//	estimator, err := NewEstimator("hyperbolic", []float64{0.01, 0.005})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rmse := estimator.Estimate(0.25) // Predicted RMSE when keeping 25% of coefficients
func NewEstimator(name string, coeffs []float64) (Estimator, error) {
	// Convert string name to ModelType
	modelType := ModelTypeFromString(name)
	if modelType == ModelType(-1) {
		// Build list of supported types for error message using modelTypeNames map
		var supportedTypes []string
		for _, modelTypeName := range modelTypeNames {
			supportedTypes = append(supportedTypes, modelTypeName)
		}
		// Sort to ensure consistent output order
		slices.Sort(supportedTypes)

		return nil, fmt.Errorf("unknown model type: %s. Supported types: %s", name, strings.Join(supportedTypes, ", "))
	}

	// Create empty estimator for the model type
	estimator := newEmptyEstimator(modelType)
	if estimator == nil {
		return nil, fmt.Errorf("failed to create estimator for model type: %s", name)
	}

	// Use SetCoefficients to validate and set coefficients
	if err := estimator.SetCoefficients(coeffs); err != nil {
		return nil, err
	}

	return estimator, nil
}
