package encoding

import (
	"iter"
	"math"

	"github.com/skypress/skypress/endian"
	"github.com/skypress/skypress/internal/pool"
)

// QuantParamsSize is the size of the quantization parameter header that
// prefixes every quantized value payload: scale (8 bytes) + offset (8 bytes).
const QuantParamsSize = 16

// CoefficientQuantizedEncoder encodes float64 coefficients as fixed-width
// signed integer codes under an affine mapping.
//
// Each coefficient v is stored as round((v - offset) / scale), clamped to the
// symmetric code range of the configured width (±32767 for 16-bit codes,
// ±127 for 8-bit codes). The scale and offset are written once as a 16-byte
// parameter header at the start of the payload, so the payload is
// self-describing and the decoder can invert the mapping without external
// state.
//
// Quantization is lossy: reconstruction error per coefficient is bounded by
// scale/2. Callers trade precision for a 4x (16-bit) or 8x (8-bit) smaller
// value payload before byte compression.
type CoefficientQuantizedEncoder struct {
	buf      *pool.ByteBuffer
	engine   endian.EndianEngine
	scale    float64
	offset   float64
	maxCode  float64
	codeSize int
	count    int
}

var _ ColumnarEncoder[float64] = (*CoefficientQuantizedEncoder)(nil)

// NewCoefficientQuantizedEncoder creates a quantized coefficient encoder with
// the given affine parameters and code width.
//
// The 16-byte parameter header (scale followed by offset, both float64) is
// written immediately, so Bytes() always starts with the parameters even when
// no coefficients have been written.
//
// The scale must be positive; the caller derives it from the magnitude range
// of the values being encoded. A symmetric mapping uses offset 0.
//
// Panics if bits is not 8 or 16.
//
// Parameters:
//   - engine: Endian engine for byte order (typically little-endian)
//   - scale: Quantization step size (must be > 0)
//   - offset: Value mapped to code 0
//   - bits: Code width in bits, either 8 or 16
//
// Returns:
//   - *CoefficientQuantizedEncoder: A new encoder instance ready for float64 encoding
func NewCoefficientQuantizedEncoder(engine endian.EndianEngine, scale, offset float64, bits int) *CoefficientQuantizedEncoder {
	if bits != 8 && bits != 16 {
		panic("quantized encoder supports 8-bit or 16-bit codes only")
	}

	e := &CoefficientQuantizedEncoder{
		engine:   engine,
		buf:      pool.GetBlobBuffer(),
		scale:    scale,
		offset:   offset,
		maxCode:  float64(int(1)<<(bits-1) - 1),
		codeSize: bits / 8,
	}

	e.buf.Grow(QuantParamsSize)
	e.buf.ExtendOrGrow(QuantParamsSize)
	e.engine.PutUint64(e.buf.Slice(0, 8), math.Float64bits(scale))
	e.engine.PutUint64(e.buf.Slice(8, 16), math.Float64bits(offset))

	return e
}

// Write quantizes and encodes a single coefficient.
//
// For encoding a whole retained set, use WriteSlice for better performance.
//
// Panics if Finish() has been called (nil buffer).
//
// Parameters:
//   - val: The float64 coefficient to encode
func (e *CoefficientQuantizedEncoder) Write(val float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.Grow(e.codeSize)

	bufLen := e.buf.Len()
	e.buf.ExtendOrGrow(e.codeSize)
	e.putCode(e.buf.Slice(bufLen, bufLen+e.codeSize), e.quantize(val))
}

// WriteSlice quantizes and encodes a slice of coefficients with buffer pre-allocation.
//
// Buffer space for all codes is allocated in a single growth operation, then
// each value is quantized and written directly into the pre-allocated region.
//
// Panics if Finish() has been called (nil buffer).
//
// Parameters:
//   - values: Slice of float64 coefficients to encode
func (e *CoefficientQuantizedEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	valLen := len(values)
	e.count += valLen

	if valLen == 0 {
		return
	}

	e.buf.Grow(valLen * e.codeSize)

	startIdx := e.buf.Len()
	e.buf.ExtendOrGrow(valLen * e.codeSize)

	for i, v := range values {
		offset := startIdx + i*e.codeSize
		e.putCode(e.buf.Slice(offset, offset+e.codeSize), e.quantize(v))
	}
}

// Bytes returns the encoded byte slice: the 16-byte parameter header followed
// by one fixed-width code per written coefficient.
//
// The returned slice is valid until the next call to Write, WriteSlice, or Reset.
// The caller must not modify the returned slice as it references the internal buffer.
//
// Panics if Finish() has been called (nil buffer).
//
// Returns:
//   - []byte: Encoded byte slice (16 bytes of parameters if no values written)
func (e *CoefficientQuantizedEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded coefficients.
//
// Returns:
//   - int: Number of float64 values written since last Finish
func (e *CoefficientQuantizedEncoder) Len() int {
	return e.count
}

// Size returns the size in bytes of the encoded payload, including the
// 16-byte parameter header.
//
// Panics if Finish() has been called (nil buffer).
//
// Returns:
//   - int: Total bytes written to internal buffer since last Finish
func (e *CoefficientQuantizedEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset clears the encoder state, allowing it to be reused for a new sequence of coefficients.
//
// Due to the fixed-width encoding strategy, Reset is implemented as a no-op to
// retain the accumulated data in the internal buffer. The length and size
// remain unchanged after calling Reset.
func (e *CoefficientQuantizedEncoder) Reset() {
	// No-op to retain the accumulated data in the internal buffer.
}

// Finish finalizes the encoding process and returns buffer resources to the pool.
//
// After calling Finish(), the encoder is no longer usable. Any subsequent calls to
// Write(), WriteSlice(), Bytes(), or Size() will panic due to nil buffer.
func (e *CoefficientQuantizedEncoder) Finish() {
	if e.buf != nil {
		pool.PutBlobBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// quantize maps a coefficient to its integer code, clamping to the symmetric
// code range. The clamp happens in the float domain so that out-of-range and
// non-finite inputs convert deterministically: +Inf saturates to the maximum
// code, -Inf to the minimum, NaN maps to code 0.
func (e *CoefficientQuantizedEncoder) quantize(val float64) int {
	scaled := math.Round((val - e.offset) / e.scale)
	switch {
	case math.IsNaN(scaled):
		return 0
	case scaled > e.maxCode:
		return int(e.maxCode)
	case scaled < -e.maxCode:
		return -int(e.maxCode)
	default:
		return int(scaled)
	}
}

// putCode writes a signed code in two's complement at the configured width.
func (e *CoefficientQuantizedEncoder) putCode(bs []byte, code int) {
	if e.codeSize == 2 {
		e.engine.PutUint16(bs, uint16(int16(code))) //nolint:gosec
	} else {
		bs[0] = byte(int8(code)) //nolint:gosec
	}
}

// CoefficientQuantizedDecoder decodes fixed-width integer codes back into
// float64 coefficients.
//
// It reads the scale and offset from the 16-byte parameter header at the start
// of the payload and inverts the affine mapping: v = code*scale + offset.
// It is designed to decode byte slices produced by CoefficientQuantizedEncoder
// at the same code width.
type CoefficientQuantizedDecoder struct {
	engine   endian.EndianEngine
	codeSize int
}

var _ ColumnarDecoder[float64] = CoefficientQuantizedDecoder{}

// NewCoefficientQuantizedDecoder creates a quantized coefficient decoder for
// the given code width.
//
// The decoder is immutable and stateless, making value semantics ideal.
//
// Panics if bits is not 8 or 16.
//
// Parameters:
//   - engine: Endian engine for byte order (must match encoder's engine)
//   - bits: Code width in bits, either 8 or 16 (must match encoder's width)
//
// Returns:
//   - CoefficientQuantizedDecoder: A new decoder instance (stateless, can be reused)
func NewCoefficientQuantizedDecoder(engine endian.EndianEngine, bits int) CoefficientQuantizedDecoder {
	if bits != 8 && bits != 16 {
		panic("quantized decoder supports 8-bit or 16-bit codes only")
	}

	return CoefficientQuantizedDecoder{engine: engine, codeSize: bits / 8}
}

// Params reads the quantization parameters from an encoded payload.
//
// Parameters:
//   - data: Encoded byte slice from CoefficientQuantizedEncoder.Bytes()
//
// Returns:
//   - float64: Scale (quantization step size)
//   - float64: Offset (value mapped to code 0)
//   - bool: false if the payload is too short to contain the parameter header
func (d CoefficientQuantizedDecoder) Params(data []byte) (float64, float64, bool) {
	if len(data) < QuantParamsSize {
		return 0, 0, false
	}

	scale := math.Float64frombits(d.engine.Uint64(data[0:8]))
	offset := math.Float64frombits(d.engine.Uint64(data[8:16]))

	return scale, offset, true
}

// All decodes all coefficients from the given byte slice.
//
// Parameters:
//   - data: Encoded byte slice from CoefficientQuantizedEncoder.Bytes()
//   - count: Expected number of coefficients to decode
//
// Returns:
//   - iter.Seq[float64]: Iterator yielding dequantized float64 values
func (d CoefficientQuantizedDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		scale, offset, ok := d.Params(data)
		if !ok || count == 0 {
			return
		}

		codes := data[QuantParamsSize:]
		if len(codes) < count*d.codeSize {
			return
		}

		for i := range count {
			if !yield(d.code(codes, i)*scale + offset) {
				return
			}
		}
	}
}

// At retrieves the coefficient at the specified index from the encoded data.
//
// If the index is out of bounds (negative or >= count), the method returns false.
//
// Parameters:
//   - data: Encoded byte slice from CoefficientQuantizedEncoder.Bytes()
//   - index: Zero-based index of the coefficient to retrieve
//   - count: Total number of coefficients in the encoded data
//
// Returns:
//   - float64: The dequantized value at the specified index
//   - bool: true if the index exists and was successfully decoded, false otherwise
func (d CoefficientQuantizedDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	scale, offset, ok := d.Params(data)
	if !ok {
		return 0, false
	}

	codes := data[QuantParamsSize:]
	if (index+1)*d.codeSize > len(codes) {
		return 0, false
	}

	return d.code(codes, index)*scale + offset, true
}

// code reads the signed code at position i from the code region.
func (d CoefficientQuantizedDecoder) code(codes []byte, i int) float64 {
	if d.codeSize == 2 {
		return float64(int16(d.engine.Uint16(codes[i*2 : i*2+2]))) //nolint:gosec
	}

	return float64(int8(codes[i]))
}
