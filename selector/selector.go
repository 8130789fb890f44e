// Package selector implements magnitude-based coefficient selection and
// quantization fitting for sky map compression.
//
// Selection is the lossy core of every compression method: after a transform
// produces a coefficient sequence, the selector keeps the k largest-magnitude
// coefficients and discards the rest. The retained fraction is controlled by
// the compression ratio, so selection directly trades reconstruction fidelity
// for artifact size.
package selector

import (
	"fmt"
	"math"
	"slices"

	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/internal/pool"
)

// Selection holds the outcome of top-k coefficient selection.
//
// Indices and Values are aligned: Values[i] is the coefficient at position
// Indices[i] of the input sequence. Indices are sorted ascending and
// deduplicated by construction, which is the order the mask payload encoder
// requires.
type Selection struct {
	// Indices are the positions of the retained coefficients, ascending.
	Indices []int
	// Values are the retained coefficients, aligned with Indices.
	Values []float64
}

// Count returns the number of retained coefficients.
func (s *Selection) Count() int {
	return len(s.Indices)
}

// RetainCount computes how many coefficients survive selection at the given
// compression ratio.
//
// The count is round(ratio * total), clamped to at least 1 so that even
// extreme ratios keep the single largest coefficient, and to at most total.
// Rounding is half-away-from-zero, matching math.Round.
//
// Parameters:
//   - total: Total number of candidate coefficients (must be positive)
//   - ratio: Compression ratio in (0, 1]; 1.0 retains everything
//
// Returns:
//   - int: Number of coefficients to retain
//   - error: ErrInvalidRatio if ratio is outside (0, 1]
func RetainCount(total int, ratio float64) (int, error) {
	if err := ValidateRatio(ratio); err != nil {
		return 0, err
	}

	k := int(math.Round(ratio * float64(total)))
	if k < 1 {
		k = 1
	}
	if k > total {
		k = total
	}

	return k, nil
}

// ValidateRatio checks that a compression ratio lies in (0, 1].
//
// NaN is rejected along with out-of-range values.
//
// Returns:
//   - error: ErrInvalidRatio with the offending value, or nil
func ValidateRatio(ratio float64) error {
	if !(ratio > 0) || ratio > 1 {
		return fmt.Errorf("%w: ratio %v outside (0, 1]", errs.ErrInvalidRatio, ratio)
	}

	return nil
}

// Select retains the k largest-magnitude coefficients at the given ratio.
//
// k is RetainCount(len(coeffs), ratio). Magnitude ties are broken by the
// lower index, so selection is fully deterministic: the same input always
// yields the same Selection. NaN coefficients rank below every finite and
// infinite magnitude and are only retained when the ratio forces them in.
//
// The input slice is not modified; the returned Selection owns freshly
// allocated slices.
//
// Parameters:
//   - coeffs: Transform coefficient sequence (must be non-empty)
//   - ratio: Compression ratio in (0, 1]
//
// Returns:
//   - *Selection: Retained indices (ascending) and their coefficients
//   - error: ErrInvalidRatio if ratio is outside (0, 1]
func Select(coeffs []float64, ratio float64) (*Selection, error) {
	k, err := RetainCount(len(coeffs), ratio)
	if err != nil {
		return nil, err
	}

	order, release := pool.GetIntSlice(len(coeffs))
	defer release()

	for i := range coeffs {
		order[i] = i
	}

	// Descending by magnitude, ascending by index among equals
	slices.SortFunc(order, func(a, b int) int {
		ma := rankMagnitude(coeffs[a])
		mb := rankMagnitude(coeffs[b])
		switch {
		case ma > mb:
			return -1
		case ma < mb:
			return 1
		default:
			return a - b
		}
	})

	indices := make([]int, k)
	copy(indices, order[:k])
	slices.Sort(indices)

	values := make([]float64, k)
	for i, idx := range indices {
		values[i] = coeffs[idx]
	}

	return &Selection{Indices: indices, Values: values}, nil
}

// rankMagnitude maps a coefficient to its selection rank. NaN maps to -Inf so
// the magnitude ordering is total and NaN loses against every other value.
func rankMagnitude(v float64) float64 {
	m := math.Abs(v)
	if math.IsNaN(m) {
		return math.Inf(-1)
	}

	return m
}
