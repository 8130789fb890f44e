// Package skymap provides the in-memory sky map value handed to the
// compression engine: a fixed-length ordered pixel array plus its HEALPix
// resolution parameter. File format adapters and coordinate conversions
// live outside this module; they produce and consume this type.
package skymap

import (
	"fmt"
	"math/rand"

	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/healpix"
)

// Map is a pixelized scalar field on the sphere.
//
// Pixels holds one sample per HEALPix pixel in map ordering. The pixel count
// is fixed at 12*NSide^2 for the lifetime of the map.
type Map struct {
	NSide  int
	Pixels []float64
}

// New creates a zero-valued map at the given resolution.
func New(nside int) (*Map, error) {
	if !healpix.IsValidNSide(nside) {
		return nil, fmt.Errorf("%w: nside %d is not a positive power of two", errs.ErrUnsupportedResolution, nside)
	}

	return &Map{
		NSide:  nside,
		Pixels: make([]float64, healpix.NPix(nside)),
	}, nil
}

// FromPixels wraps an existing pixel array after validating its length
// against nside. The array is used directly, not copied.
func FromPixels(pixels []float64, nside int) (*Map, error) {
	if err := healpix.Validate(len(pixels), nside); err != nil {
		return nil, err
	}

	return &Map{NSide: nside, Pixels: pixels}, nil
}

// NewRandom creates a map filled with standard Gaussian noise drawn from the
// given seed. The same seed always produces the same map, which makes
// generated maps usable as reproducible fixtures.
func NewRandom(nside int, seed int64) (*Map, error) {
	m, err := New(nside)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec
	for i := range m.Pixels {
		m.Pixels[i] = rng.NormFloat64()
	}

	return m, nil
}

// NPix returns the pixel count implied by the map's resolution.
func (m *Map) NPix() int {
	return healpix.NPix(m.NSide)
}

// Validate checks the pixel array length against the resolution parameter.
func (m *Map) Validate() error {
	return healpix.Validate(len(m.Pixels), m.NSide)
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	pixels := make([]float64, len(m.Pixels))
	copy(pixels, m.Pixels)

	return &Map{NSide: m.NSide, Pixels: pixels}
}
