// Package healpix provides the resolution arithmetic for HEALPix-style
// pixelized sky maps: nside validation, pixel counts, and the matrix view
// used by the rank-reducing transforms.
//
// A map with resolution parameter nside has 12*nside^2 pixels; nside must be
// a positive power of two. The matrix view arranges those pixels into the
// most square factorization, 3*nside rows by 4*nside columns.
package healpix

import (
	"fmt"
	"math"

	"github.com/skypress/skypress/errs"
)

// MaxNSide bounds the supported resolution parameter. 2^14 is the largest
// power of two whose pixel count still fits an artifact header's uint32.
const MaxNSide = 1 << 14

// IsValidNSide reports whether nside is a positive power of two within the
// supported range.
func IsValidNSide(nside int) bool {
	if nside < 1 || nside > MaxNSide {
		return false
	}

	return nside&(nside-1) == 0
}

// NPix returns the number of pixels for the given nside.
// The result is only meaningful for a valid nside.
func NPix(nside int) int {
	return 12 * nside * nside
}

// NSideForPixels returns the nside whose pixel count equals npix.
// It fails with errs.ErrUnsupportedResolution when npix is not a valid
// HEALPix pixel count.
func NSideForPixels(npix int) (int, error) {
	if npix < 12 || npix%12 != 0 {
		return 0, fmt.Errorf("%w: %d pixels is not a HEALPix map size", errs.ErrUnsupportedResolution, npix)
	}

	nside := int(math.Round(math.Sqrt(float64(npix) / 12)))
	if !IsValidNSide(nside) || NPix(nside) != npix {
		return 0, fmt.Errorf("%w: %d pixels is not a HEALPix map size", errs.ErrUnsupportedResolution, npix)
	}

	return nside, nil
}

// Validate checks that nside is a valid resolution parameter and that the
// pixel array length matches it.
func Validate(pixelCount, nside int) error {
	if !IsValidNSide(nside) {
		return fmt.Errorf("%w: nside %d is not a positive power of two", errs.ErrUnsupportedResolution, nside)
	}
	if pixelCount != NPix(nside) {
		return fmt.Errorf("%w: nside %d expects %d pixels, got %d",
			errs.ErrUnsupportedResolution, nside, NPix(nside), pixelCount)
	}

	return nil
}

// MatrixDims returns the 2-D view dimensions for a map of the given nside:
// 3*nside rows by 4*nside columns. rows*cols always equals NPix(nside).
func MatrixDims(nside int) (rows, cols int) {
	return 3 * nside, 4 * nside
}

// PixelArea returns the solid angle of one pixel in steradians.
// All HEALPix pixels at a given nside cover the same area, 4*pi/npix.
func PixelArea(nside int) float64 {
	return 4 * math.Pi / float64(NPix(nside))
}

// Resolution returns the approximate angular resolution in arcminutes,
// the square root of the pixel area.
func Resolution(nside int) float64 {
	const radToArcmin = 180 * 60 / math.Pi
	return math.Sqrt(PixelArea(nside)) * radToArcmin
}
