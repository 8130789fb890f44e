// Package stats derives quality metrics from a compress/decompress round
// trip: the achieved compression ratio, the space saved, and reconstruction
// error figures. Metrics are computed from the original and reconstructed
// pixel arrays plus the serialized artifact size; nothing here is persisted
// inside the artifact itself.
package stats

import (
	"fmt"
	"math"

	"github.com/skypress/skypress/errs"
)

// CompressionStats summarizes one compress/decompress round trip.
type CompressionStats struct {
	// CompressedBytes is the serialized artifact size.
	CompressedBytes int
	// OriginalBytes is the raw size of the original pixel array.
	OriginalBytes int
	// RMSE is the root-mean-square difference between the original and
	// reconstructed pixel arrays.
	RMSE float64
	// MaxAbsError is the largest absolute per-pixel difference, the figure
	// to watch for localized outliers that RMSE averages away.
	MaxAbsError float64
}

// CompressionRatio returns compressed size over original size. Values below
// one mean the artifact undercuts the raw map; 0.1 means ten times smaller.
func (s *CompressionStats) CompressionRatio() float64 {
	return float64(s.CompressedBytes) / float64(s.OriginalBytes)
}

// SpaceSavings returns the saved fraction as a percentage,
// (1 - CompressionRatio()) * 100. Negative when the artifact is larger than
// the raw map, which a high ratio with an incompressible payload can produce.
func (s *CompressionStats) SpaceSavings() float64 {
	return (1 - s.CompressionRatio()) * 100
}

// Report computes round-trip quality metrics.
//
// Parameters:
//   - original: Pixel array handed to Compress
//   - reconstructed: Pixel array returned by the matching Decompress
//   - compressedBytes: Serialized artifact size in bytes
//   - originalBytes: Raw size of the original array, typically 8 bytes per pixel
//
// Returns:
//   - *CompressionStats: Size and error metrics for the round trip
//   - error: ErrLengthMismatch when the arrays differ in length
func Report(original, reconstructed []float64, compressedBytes, originalBytes int) (*CompressionStats, error) {
	rmse, err := RMSE(original, reconstructed)
	if err != nil {
		return nil, err
	}

	maxAbs, err := MaxAbsError(original, reconstructed)
	if err != nil {
		return nil, err
	}

	return &CompressionStats{
		CompressedBytes: compressedBytes,
		OriginalBytes:   originalBytes,
		RMSE:            rmse,
		MaxAbsError:     maxAbs,
	}, nil
}

// RMSE returns the root-mean-square difference between two equal-length
// arrays, or zero for empty arrays.
//
// Fails with errs.ErrLengthMismatch when the lengths differ.
func RMSE(original, reconstructed []float64) (float64, error) {
	if err := checkLengths(original, reconstructed); err != nil {
		return 0, err
	}
	if len(original) == 0 {
		return 0, nil
	}

	var sum float64
	for i := range original {
		d := original[i] - reconstructed[i]
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(original))), nil
}

// MaxAbsError returns the largest absolute per-element difference between
// two equal-length arrays, or zero for empty arrays.
//
// Fails with errs.ErrLengthMismatch when the lengths differ.
func MaxAbsError(original, reconstructed []float64) (float64, error) {
	if err := checkLengths(original, reconstructed); err != nil {
		return 0, err
	}

	var maxAbs float64
	for i := range original {
		if abs := math.Abs(original[i] - reconstructed[i]); abs > maxAbs {
			maxAbs = abs
		}
	}

	return maxAbs, nil
}

func checkLengths(original, reconstructed []float64) error {
	if len(original) != len(reconstructed) {
		return fmt.Errorf("%w: original has %d pixels, reconstructed has %d",
			errs.ErrLengthMismatch, len(original), len(reconstructed))
	}

	return nil
}
