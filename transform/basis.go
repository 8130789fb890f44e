package transform

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/healpix"
	"github.com/skypress/skypress/internal/hash"
	"gonum.org/v1/gonum/mat"
)

// Basis is a fitted PCA basis: the column means and principal component
// vectors of a map's matrix view, plus a fingerprint identifying the fit.
//
// A Basis is immutable after FitBasis returns and safe for concurrent use.
// Engines share one basis across many maps so that pca artifacts can carry
// only the fingerprint instead of the full component vectors.
type Basis struct {
	nside       int
	rows, cols  int
	rank        int
	mean        []float64 // cols column means
	components  []float64 // cols x rank principal axes, row-major
	fingerprint uint64
}

// FitBasis fits a rank-r PCA basis to one map's pixels.
//
// The basis holds the column means of the rows x cols matrix view and the
// top rank right singular vectors of the centered matrix, ordered by
// descending explained variance.
//
// Parameters:
//   - pixels: Pixel array of length 12*nside^2
//   - nside: Resolution parameter of the map
//   - rank: Number of principal components, in [1, min(rows, cols)]
//
// Returns:
//   - *Basis: The fitted basis
//   - error: errs.ErrUnsupportedResolution for a bad geometry, or a plain
//     error for a rank outside the valid range
func FitBasis(pixels []float64, nside, rank int) (*Basis, error) {
	if err := healpix.Validate(len(pixels), nside); err != nil {
		return nil, err
	}

	rows, cols := healpix.MatrixDims(nside)
	maxRank := min(rows, cols)
	if rank < 1 || rank > maxRank {
		return nil, fmt.Errorf("pca basis rank %d outside [1, %d] for nside %d", rank, maxRank, nside)
	}

	mean := make([]float64, cols)
	for i := 0; i < rows; i++ {
		row := pixels[i*cols : (i+1)*cols]
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(rows)
	}

	centered := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			centered[i*cols+j] = pixels[i*cols+j] - mean[j]
		}
	}

	var svd mat.SVD
	if !svd.Factorize(mat.NewDense(rows, cols, centered), mat.SVDThin) {
		return nil, fmt.Errorf("pca basis fit for nside %d did not converge", nside)
	}

	// The right singular vectors of the centered matrix are the principal
	// axes, already ordered by descending singular value.
	var v mat.Dense
	svd.VTo(&v)

	components := make([]float64, cols*rank)
	for j := 0; j < cols; j++ {
		for k := 0; k < rank; k++ {
			components[j*rank+k] = v.At(j, k)
		}
	}

	b := &Basis{
		nside:      nside,
		rows:       rows,
		cols:       cols,
		rank:       rank,
		mean:       mean,
		components: components,
	}
	b.fingerprint = b.computeFingerprint()

	return b, nil
}

// NewBasis reassembles a basis from previously serialized content, as read
// back from an artifact's side payload. The mean and components slices are
// used directly, not copied; callers must not modify them afterwards.
func NewBasis(nside, rank int, mean, components []float64) (*Basis, error) {
	if !healpix.IsValidNSide(nside) {
		return nil, fmt.Errorf("%w: nside %d is not a positive power of two", errs.ErrUnsupportedResolution, nside)
	}

	rows, cols := healpix.MatrixDims(nside)
	if rank < 1 || rank > min(rows, cols) {
		return nil, fmt.Errorf("%w: rank %d outside [1, %d] for nside %d",
			errs.ErrBasisMismatch, rank, min(rows, cols), nside)
	}
	if len(mean) != cols || len(components) != cols*rank {
		return nil, fmt.Errorf("%w: basis dims %dx%d disagree with nside %d rank %d",
			errs.ErrBasisMismatch, len(mean), len(components), nside, rank)
	}

	b := &Basis{
		nside:      nside,
		rows:       rows,
		cols:       cols,
		rank:       rank,
		mean:       mean,
		components: components,
	}
	b.fingerprint = b.computeFingerprint()

	return b, nil
}

// NSide returns the resolution parameter the basis was fitted for.
func (b *Basis) NSide() int { return b.nside }

// Rank returns the number of principal components.
func (b *Basis) Rank() int { return b.rank }

// Dims returns the matrix view dimensions the basis operates on.
func (b *Basis) Dims() (rows, cols int) { return b.rows, b.cols }

// Mean returns the column means. The slice is internal state; callers must
// not modify it.
func (b *Basis) Mean() []float64 { return b.mean }

// Components returns the principal axes as a cols x rank row-major slice.
// The slice is internal state; callers must not modify it.
func (b *Basis) Components() []float64 { return b.components }

// Fingerprint returns a 64-bit identity of the fitted content. Two bases
// fingerprint equal exactly when their geometry, rank, means and components
// are bit-identical.
func (b *Basis) Fingerprint() uint64 { return b.fingerprint }

// Project maps a pixel array into the basis's score space.
//
// The result is the rows x rank score matrix, row-major: each matrix view
// row expressed in principal component coordinates after mean removal.
// Fails with errs.ErrBasisMismatch when the pixel count disagrees with the
// basis geometry.
func (b *Basis) Project(pixels []float64) ([]float64, error) {
	if len(pixels) != b.rows*b.cols {
		return nil, fmt.Errorf("%w: basis for nside %d expects %d pixels, got %d",
			errs.ErrBasisMismatch, b.nside, b.rows*b.cols, len(pixels))
	}

	centered := make([]float64, len(pixels))
	for i := 0; i < b.rows; i++ {
		for j := 0; j < b.cols; j++ {
			centered[i*b.cols+j] = pixels[i*b.cols+j] - b.mean[j]
		}
	}

	var scores mat.Dense
	scores.Mul(
		mat.NewDense(b.rows, b.cols, centered),
		mat.NewDense(b.cols, b.rank, b.components),
	)

	return flattenDense(&scores), nil
}

// Reconstruct maps a score matrix back to pixel space:
// scores x components^T plus the column means, flattened row-major.
func (b *Basis) Reconstruct(scores []float64) ([]float64, error) {
	if len(scores) != b.rows*b.rank {
		return nil, fmt.Errorf("%w: basis rank %d expects %d scores, got %d",
			errs.ErrBasisMismatch, b.rank, b.rows*b.rank, len(scores))
	}

	var m mat.Dense
	m.Mul(
		mat.NewDense(b.rows, b.rank, scores),
		mat.NewDense(b.cols, b.rank, b.components).T(),
	)

	pixels := flattenDense(&m)
	for i := 0; i < b.rows; i++ {
		for j := 0; j < b.cols; j++ {
			pixels[i*b.cols+j] += b.mean[j]
		}
	}

	return pixels, nil
}

// computeFingerprint hashes the basis content in a fixed byte order so the
// fingerprint is stable across processes and platforms.
func (b *Basis) computeFingerprint() uint64 {
	dg := hash.NewDigest()

	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(b.nside))
	dg.Write(buf[:4])
	binary.LittleEndian.PutUint32(buf[:4], uint32(b.rank))
	dg.Write(buf[:4])
	for _, v := range b.mean {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		dg.Write(buf[:])
	}
	for _, v := range b.components {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		dg.Write(buf[:])
	}

	return dg.Sum64()
}
