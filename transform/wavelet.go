package transform

import (
	"fmt"

	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/format"
	"github.com/skypress/skypress/healpix"
	"github.com/skypress/skypress/internal/pool"
)

// CDF 9/7 lifting coefficients, shared with the JPEG 2000 irreversible
// filter. The scale pair is applied as approx*invK97, detail*k97 on
// analysis and divided back out on synthesis.
const (
	alpha97 = -1.586134342
	beta97  = -0.052980118
	gamma97 = 0.882911075
	delta97 = 0.443506852
	k97     = 1.230174105
	invK97  = 0.812893066
)

// minApproxLen is the shortest approximation band worth splitting further.
// Below this the boundary extension dominates the filter support and deeper
// levels stop buying any energy compaction.
const minApproxLen = 8

// MaxLevels returns the deepest decomposition depth for a signal of length n:
// the number of times the approximation band can halve before dropping below
// minApproxLen samples.
func MaxLevels(n int) int {
	levels := 0
	for (n+1)/2 >= minApproxLen {
		n = (n + 1) / 2
		levels++
	}

	return levels
}

// WaveletTransform runs a multi-level CDF 9/7 lifting decomposition along
// the pixel ordering. Each level rewrites the current approximation band in
// place as [approx|detail], so the final coefficient array keeps the pixel
// count and nests bands from coarsest approximation to finest detail.
type WaveletTransform struct {
	levels int
}

// NewWaveletTransform creates a wavelet transform with the given
// decomposition depth. Zero or negative derives the deepest useful depth
// from the pixel count; larger values are clamped to it.
func NewWaveletTransform(levels int) *WaveletTransform {
	return &WaveletTransform{levels: levels}
}

// Method returns format.MethodWavelet.
func (t *WaveletTransform) Method() format.Method {
	return format.MethodWavelet
}

// Forward decomposes pixels into wavelet coefficients.
//
// The returned set holds one coefficient per pixel and records the level
// count actually applied, so Inverse never depends on the transform's own
// configuration. Fails with errs.ErrUnsupportedResolution when the pixel
// count is not a valid map size.
func (t *WaveletTransform) Forward(pixels []float64) (*CoefficientSet, error) {
	if _, err := healpix.NSideForPixels(len(pixels)); err != nil {
		return nil, err
	}

	levels := t.levels
	if limit := MaxLevels(len(pixels)); levels <= 0 || levels > limit {
		levels = limit
	}

	coeffs := make([]float64, len(pixels))
	copy(coeffs, pixels)

	n := len(coeffs)
	for level := 0; level < levels; level++ {
		forwardLift(coeffs[:n])
		n = (n + 1) / 2
	}

	return &CoefficientSet{
		Method: format.MethodWavelet,
		Coeffs: coeffs,
		Levels: levels,
	}, nil
}

// Inverse reconstructs the pixel array from a wavelet coefficient set.
//
// The decomposition depth comes from the set, not from the transform, so a
// set produced by any wavelet configuration reconstructs correctly.
func (t *WaveletTransform) Inverse(set *CoefficientSet) ([]float64, error) {
	if _, err := healpix.NSideForPixels(len(set.Coeffs)); err != nil {
		return nil, err
	}
	if set.Levels < 0 || set.Levels > MaxLevels(len(set.Coeffs)) {
		return nil, fmt.Errorf("%w: %d wavelet levels for %d coefficients",
			errs.ErrInvalidHeaderFlags, set.Levels, len(set.Coeffs))
	}

	pixels := make([]float64, len(set.Coeffs))
	copy(pixels, set.Coeffs)

	// Band lengths from the outermost level inward. Synthesis walks them in
	// reverse, growing the approximation band back to the full length.
	lengths := make([]int, set.Levels)
	n := len(pixels)
	for level := 0; level < set.Levels; level++ {
		lengths[level] = n
		n = (n + 1) / 2
	}
	for level := set.Levels - 1; level >= 0; level-- {
		inverseLift(pixels[:lengths[level]])
	}

	return pixels, nil
}

// forwardLift runs one CDF 9/7 analysis sweep over x, leaving ceil(len(x)/2)
// approximation samples followed by the detail samples. len(x) < 2 is a
// no-op.
func forwardLift(x []float64) {
	n := len(x)
	if n < 2 {
		return
	}
	sn := (n + 1) / 2
	dn := n / 2

	s, releaseS := pool.GetFloat64Slice(sn)
	defer releaseS()
	d, releaseD := pool.GetFloat64Slice(dn)
	defer releaseD()

	for i := 0; i < dn; i++ {
		s[i] = x[2*i]
		d[i] = x[2*i+1]
	}
	if sn > dn {
		s[sn-1] = x[n-1]
	}

	predictLift(d, s, alpha97)
	updateLift(s, d, beta97)
	predictLift(d, s, gamma97)
	updateLift(s, d, delta97)
	for i := range s {
		s[i] *= invK97
	}
	for i := range d {
		d[i] *= k97
	}

	copy(x[:sn], s)
	copy(x[sn:], d)
}

// inverseLift undoes forwardLift on x, interleaving the [approx|detail]
// halves back into sample order. Each lifting sweep reapplies the forward
// sweep with a negated coefficient against bit-identical neighbour state, so
// the predict and update stages cancel exactly; only the scale stage can
// differ from the input, by at most one ulp per level.
func inverseLift(x []float64) {
	n := len(x)
	if n < 2 {
		return
	}
	sn := (n + 1) / 2
	dn := n / 2

	s, releaseS := pool.GetFloat64Slice(sn)
	defer releaseS()
	d, releaseD := pool.GetFloat64Slice(dn)
	defer releaseD()

	copy(s, x[:sn])
	copy(d, x[sn:])

	for i := range s {
		s[i] /= invK97
	}
	for i := range d {
		d[i] /= k97
	}
	updateLift(s, d, -delta97)
	predictLift(d, s, -gamma97)
	updateLift(s, d, -beta97)
	predictLift(d, s, -alpha97)

	for i := 0; i < dn; i++ {
		x[2*i] = s[i]
		x[2*i+1] = d[i]
	}
	if sn > dn {
		x[n-1] = s[sn-1]
	}
}

// predictLift folds each approximation pair into the detail sample between
// them: d[i] += c*(s[i] + s[i+1]). The final sample mirrors at the right
// edge when no s[i+1] exists.
func predictLift(d, s []float64, c float64) {
	last := len(s) - 1
	for i := range d {
		right := i + 1
		if right > last {
			right = last
		}
		d[i] += c * (s[i] + s[right])
	}
}

// updateLift folds each detail pair back into the approximation sample
// between them: s[i] += c*(d[i-1] + d[i]), mirroring at both edges.
func updateLift(s, d []float64, c float64) {
	last := len(d) - 1
	for i := range s {
		left, right := i-1, i
		if left < 0 {
			left = 0
		}
		if right > last {
			right = last
		}
		s[i] += c * (d[left] + d[right])
	}
}
