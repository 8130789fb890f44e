package blob

import (
	"fmt"
	"math"

	"github.com/skypress/skypress/endian"
	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/transform"
)

// Side payload basis modes for pca artifacts.
const (
	// sideBasisInline marks a side payload that carries the full basis:
	// column means followed by component vectors.
	sideBasisInline = 0x0
	// sideBasisFingerprint marks a side payload that references a shared
	// basis by fingerprint.
	sideBasisFingerprint = 0x1
)

// sideDimsSize is the rows/cols/rank prefix shared by pca and svd side
// payloads. pca adds one mode byte after it.
const sideDimsSize = 12

// encodePCASide serializes pca side data: the matrix view dimensions and
// either the basis fingerprint (shared mode) or the full basis content.
func encodePCASide(set *transform.CoefficientSet, shared bool, engine endian.EndianEngine) []byte {
	basis := set.Basis

	size := sideDimsSize + 1 + 8
	if !shared {
		size = sideDimsSize + 1 + 8*(set.Cols+set.Cols*set.Rank)
	}

	buf := make([]byte, 0, size)
	buf = engine.AppendUint32(buf, uint32(set.Rows))
	buf = engine.AppendUint32(buf, uint32(set.Cols))
	buf = engine.AppendUint32(buf, uint32(set.Rank))

	if shared {
		buf = append(buf, sideBasisFingerprint)
		buf = engine.AppendUint64(buf, basis.Fingerprint())

		return buf
	}

	buf = append(buf, sideBasisInline)
	buf = appendFloats(buf, basis.Mean(), engine)
	buf = appendFloats(buf, basis.Components(), engine)

	return buf
}

// encodeSVDSide serializes svd side data: the matrix view dimensions, then
// the truncated U and V factors at full precision.
func encodeSVDSide(set *transform.CoefficientSet, engine endian.EndianEngine) []byte {
	size := sideDimsSize + 8*(len(set.LeftVectors)+len(set.RightVectors))

	buf := make([]byte, 0, size)
	buf = engine.AppendUint32(buf, uint32(set.Rows))
	buf = engine.AppendUint32(buf, uint32(set.Cols))
	buf = engine.AppendUint32(buf, uint32(set.Rank))
	buf = appendFloats(buf, set.LeftVectors, engine)
	buf = appendFloats(buf, set.RightVectors, engine)

	return buf
}

// pcaSide is decoded pca side data.
type pcaSide struct {
	rows, cols, rank int
	shared           bool
	fingerprint      uint64
	mean             []float64
	components       []float64
}

// decodePCASide parses pca side data and validates it against the header's
// pixel count and retained rank.
func decodePCASide(data []byte, npix, rank int, engine endian.EndianEngine) (*pcaSide, error) {
	if len(data) < sideDimsSize+1 {
		return nil, fmt.Errorf("%w: pca side payload is %d bytes", errs.ErrInvalidPayloadSize, len(data))
	}

	side := &pcaSide{
		rows: int(engine.Uint32(data[0:4])),
		cols: int(engine.Uint32(data[4:8])),
		rank: int(engine.Uint32(data[8:12])),
	}
	if err := validateSideDims(side.rows, side.cols, side.rank, npix, rank); err != nil {
		return nil, err
	}

	mode := data[sideDimsSize]
	body := data[sideDimsSize+1:]

	switch mode {
	case sideBasisFingerprint:
		side.shared = true
		if len(body) != 8 {
			return nil, fmt.Errorf("%w: basis fingerprint is %d bytes", errs.ErrInvalidPayloadSize, len(body))
		}
		side.fingerprint = engine.Uint64(body)

	case sideBasisInline:
		meanSize := 8 * side.cols
		componentsSize := 8 * side.cols * side.rank
		if len(body) != meanSize+componentsSize {
			return nil, fmt.Errorf("%w: inline basis is %d bytes, expected %d",
				errs.ErrInvalidPayloadSize, len(body), meanSize+componentsSize)
		}
		side.mean = readFloats(body[:meanSize], engine)
		side.components = readFloats(body[meanSize:], engine)

	default:
		return nil, fmt.Errorf("%w: unknown basis mode 0x%02X", errs.ErrInvalidPayloadSize, mode)
	}

	return side, nil
}

// svdSide is decoded svd side data.
type svdSide struct {
	rows, cols, rank int
	left             []float64
	right            []float64
}

// decodeSVDSide parses svd side data and validates it against the header's
// pixel count and retained rank.
func decodeSVDSide(data []byte, npix, rank int, engine endian.EndianEngine) (*svdSide, error) {
	if len(data) < sideDimsSize {
		return nil, fmt.Errorf("%w: svd side payload is %d bytes", errs.ErrInvalidPayloadSize, len(data))
	}

	side := &svdSide{
		rows: int(engine.Uint32(data[0:4])),
		cols: int(engine.Uint32(data[4:8])),
		rank: int(engine.Uint32(data[8:12])),
	}
	if err := validateSideDims(side.rows, side.cols, side.rank, npix, rank); err != nil {
		return nil, err
	}

	body := data[sideDimsSize:]
	leftSize := 8 * side.rows * side.rank
	rightSize := 8 * side.cols * side.rank
	if len(body) != leftSize+rightSize {
		return nil, fmt.Errorf("%w: svd factors are %d bytes, expected %d",
			errs.ErrInvalidPayloadSize, len(body), leftSize+rightSize)
	}

	side.left = readFloats(body[:leftSize], engine)
	side.right = readFloats(body[leftSize:], engine)

	return side, nil
}

// validateSideDims cross-checks decoded side dimensions against the header.
func validateSideDims(rows, cols, rank, npix, retained int) error {
	if rows < 1 || cols < 1 || rows*cols != npix {
		return fmt.Errorf("%w: side dims %dx%d disagree with %d pixels",
			errs.ErrBasisMismatch, rows, cols, npix)
	}
	if rank != retained || rank > min(rows, cols) {
		return fmt.Errorf("%w: side rank %d disagrees with retained count %d",
			errs.ErrBasisMismatch, rank, retained)
	}

	return nil
}

// appendFloats appends values as raw IEEE-754 bits in engine byte order.
func appendFloats(buf []byte, values []float64, engine endian.EndianEngine) []byte {
	for _, v := range values {
		buf = engine.AppendUint64(buf, math.Float64bits(v))
	}

	return buf
}

// readFloats decodes a raw IEEE-754 run. len(data) must be a multiple of 8.
func readFloats(data []byte, engine endian.EndianEngine) []float64 {
	values := make([]float64, len(data)/8)
	for i := range values {
		values[i] = math.Float64frombits(engine.Uint64(data[i*8 : i*8+8]))
	}

	return values
}
