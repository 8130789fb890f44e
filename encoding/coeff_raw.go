package encoding

import (
	"fmt"
	"iter"
	"math"
	"unsafe"

	"github.com/skypress/skypress/endian"
	"github.com/skypress/skypress/internal/pool"
)

// CoefficientRawEncoder encodes 64-bit float coefficients in their native
// binary representation using direct memory operations.
//
// It stores each coefficient as its IEEE 754 bit pattern in the byte order of
// the configured endian engine, with an amortized buffer growth strategy for
// optimal performance. This is the full-precision value payload: decoding
// reproduces every retained coefficient bit-for-bit, which is what allows a
// wavelet artifact encoded at ratio 1.0 to reconstruct its input exactly.
type CoefficientRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[float64] = (*CoefficientRawEncoder)(nil)

// NewCoefficientRawEncoder creates a new raw coefficient encoder using the specified endian engine.
//
// The encoder uses a native []byte buffer with an amortized growth strategy:
// - Write: Amortized O(1) buffer growth with direct encoding
// - WriteSlice: Pre-allocated buffer for bulk operations
//
// Retained coefficient sets are typically written in a single WriteSlice call.
//
// Parameters:
//   - engine: Endian engine for byte order (typically little-endian)
//
// Returns:
//   - *CoefficientRawEncoder: A new encoder instance ready for float64 encoding
func NewCoefficientRawEncoder(engine endian.EndianEngine) *CoefficientRawEncoder {
	return &CoefficientRawEncoder{
		engine: engine,
		buf:    pool.GetBlobBuffer(),
	}
}

// Write encodes a single 64-bit float coefficient with amortized buffer growth.
//
// The buffer is pre-grown when near capacity to avoid frequent reallocations
// when Write is called repeatedly. For encoding a whole retained set, use
// WriteSlice for better performance.
//
// The encoded bytes are appended to the internal buffer and can be retrieved
// using the Bytes method.
//
// Panics if Finish() has been called (nil buffer).
//
// Parameters:
//   - val: The float64 coefficient to encode
func (e *CoefficientRawEncoder) Write(val float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++

	// Amortized growth: pre-grow buffer if near capacity
	// This prevents frequent reallocations when Write is called repeatedly
	e.buf.Grow(8)
	e.writeFloat64(val)
}

// WriteSlice encodes a slice of 64-bit float coefficients with buffer pre-allocation.
//
// This method pre-allocates buffer space for all values (8 bytes per value)
// to minimize allocations during bulk encoding. Each value is encoded directly
// into the pre-allocated buffer without temporary allocations.
//
// This method provides:
//   - Fixed 8-byte storage per float64 value
//   - Optimal bulk encoding performance
//   - Predictable memory usage (8 × len(values) bytes)
//
// The encoded bytes are appended to the internal buffer and can be retrieved
// using the Bytes method.
//
// Panics if Finish() has been called (nil buffer).
//
// Parameters:
//   - values: Slice of float64 coefficients to encode
func (e *CoefficientRawEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	valLen := len(values)
	e.count += valLen

	if valLen == 0 {
		return
	}

	// Pre-allocate space for all values (8 bytes each)
	e.buf.Grow(valLen * 8)

	// Extend buffer length once for all values
	startIdx := e.buf.Len()
	e.buf.ExtendOrGrow(valLen * 8)

	// Write each value directly using PutUint64 on the buffer slice
	for i, v := range values {
		offset := startIdx + i*8
		e.engine.PutUint64(e.buf.Slice(offset, offset+8), math.Float64bits(v))
	}
}

// Bytes returns the encoded byte slice containing all written coefficients.
//
// The returned slice is valid until the next call to Write, WriteSlice, or Reset.
// The caller must not modify the returned slice as it references the internal buffer.
//
// Each float64 value occupies exactly 8 bytes in the output, encoded in the
// byte order specified by the endian engine during construction.
//
// Panics if Finish() has been called (nil buffer).
//
// Returns:
//   - []byte: Encoded byte slice (empty if no values written since last Reset)
func (e *CoefficientRawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded coefficients.
//
// Returns:
//   - int: Number of float64 values written since last Finish
func (e *CoefficientRawEncoder) Len() int {
	return e.count
}

// Size returns the size in bytes of the encoded coefficients.
//
// Panics if Finish() has been called (nil buffer).
//
// Returns:
//   - int: Total bytes written to internal buffer since last Finish
func (e *CoefficientRawEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset clears the encoder state, allowing it to be reused for a new sequence of coefficients.
//
// Due to the raw encoding strategy, Reset is implemented as a no-op to retain
// the accumulated data in the internal buffer. The length and size remain
// unchanged after calling Reset.
func (e *CoefficientRawEncoder) Reset() {
	// No-op to retain the accumulated data in the internal buffer.
}

// Finish finalizes the encoding process and returns buffer resources to the pool.
//
// After calling Finish(), the encoder is no longer usable. Any subsequent calls to
// Write(), WriteSlice(), Bytes(), or Size() will panic due to nil buffer.
//
// To encode more data, create a new encoder instance.
func (e *CoefficientRawEncoder) Finish() {
	if e.buf != nil {
		pool.PutBlobBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// writeFloat64 encodes a single float64 value into the buffer.
//
// The method assumes the buffer has sufficient capacity (caller must ensure this).
func (e *CoefficientRawEncoder) writeFloat64(value float64) {
	bufLen := e.buf.Len()
	bs := e.buf.Slice(bufLen, bufLen+8)
	e.engine.PutUint64(bs, math.Float64bits(value))
	e.buf.SetLength(bufLen + 8)
}

// CoefficientRawDecoder decodes raw float64 coefficients using direct memory operations.
//
// It is designed to decode byte slices produced by CoefficientRawEncoder.
type CoefficientRawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float64] = CoefficientRawDecoder{}

// NewCoefficientRawDecoder creates a new raw coefficient decoder using the specified endian engine.
//
// This function returns the decoder by value (not pointer) for maximum performance:
//   - Zero heap allocations (stack-only, no GC pressure)
//   - 16-byte struct fits in CPU registers on amd64
//
// The decoder is immutable and stateless, making value semantics ideal.
//
// Parameters:
//   - engine: Endian engine for byte order (must match encoder's engine)
//
// Returns:
//   - CoefficientRawDecoder: A new decoder instance (stateless, can be reused)
func NewCoefficientRawDecoder(engine endian.EndianEngine) CoefficientRawDecoder {
	return CoefficientRawDecoder{engine: engine}
}

// All decodes all float64 coefficients from the given byte slice.
//
// The data must be a multiple of 8 bytes, as each float64 value occupies exactly 8 bytes.
//
// Parameters:
//   - data: Encoded byte slice from CoefficientRawEncoder.Bytes()
//   - count: Expected number of float64 values to decode
//
// Returns:
//   - iter.Seq[float64]: Iterator yielding decoded float64 values
func (d CoefficientRawDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if len(data) < count*8 || count == 0 {
			return
		}

		for i := range count {
			start := i * 8
			bits := d.engine.Uint64(data[start : start+8])
			val := math.Float64frombits(bits)
			if !yield(val) {
				return
			}
		}
	}
}

// At retrieves the float64 coefficient at the specified index from the encoded data.
//
// The index is zero-based, so index 0 retrieves the first value.
// If the index is out of bounds (negative or >= count), the method returns false.
//
// Parameters:
//   - data: Encoded byte slice from CoefficientRawEncoder.Bytes()
//   - index: Zero-based index of the float64 value to retrieve
//   - count: Total number of float64 values in the encoded data
//
// Returns:
//   - float64: The value at the specified index
//   - bool: true if the index exists and was successfully decoded, false otherwise
func (d CoefficientRawDecoder) At(data []byte, index int, count int) (float64, bool) {
	if len(data) == 0 || index < 0 || index >= count {
		return 0, false
	}

	start := index * 8
	if start+8 > len(data) {
		return 0, false
	}

	bits := d.engine.Uint64(data[start : start+8])
	val := math.Float64frombits(bits)

	return val, true
}

// CoefficientRawUnsafeDecoder is an optimized decoder for raw float64 coefficients
// using unsafe memory operations.
//
// This decoder maps the input byte slice directly to a float64 slice, avoiding
// intermediate allocations and copies. It is significantly faster than the safe
// decoder, especially for large retained sets, but only valid when the encoded
// byte order matches the native byte order of the host.
//
// Caution: The caller must ensure that the input length is a multiple of 8 bytes,
// as each float64 value occupies exactly 8 bytes. Using this decoder with
// improperly aligned or sized data may lead to undefined behavior.
type CoefficientRawUnsafeDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float64] = CoefficientRawUnsafeDecoder{}

// NewCoefficientRawUnsafeDecoder creates a new raw coefficient decoder using unsafe
// operations for optimal performance.
//
// The decoder is immutable and stateless, making value semantics ideal.
//
// Caution: This decoder assumes the encoded byte order matches the native byte
// order of the host. Callers must select it only after checking the artifact's
// endianness flag against the platform.
//
// Parameters:
//   - engine: Endian engine (currently unused but kept for interface compatibility)
//
// Returns:
//   - CoefficientRawUnsafeDecoder: A new unsafe decoder instance (stateless, can be reused)
func NewCoefficientRawUnsafeDecoder(engine endian.EndianEngine) CoefficientRawUnsafeDecoder {
	return CoefficientRawUnsafeDecoder{engine: engine}
}

// All decodes all float64 coefficients from the given byte slice using unsafe memory operations.
//
// If the input length is not a multiple of 8, the returned sequence will be empty.
//
// Parameters:
//   - data: Encoded byte slice from CoefficientRawEncoder.Bytes() (must be multiple of 8 bytes)
//   - count: Expected number of float64 values to decode
//
// Returns:
//   - iter.Seq[float64]: Iterator yielding decoded float64 values
func (d CoefficientRawUnsafeDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if len(data) < count*8 || count == 0 {
			return
		}

		floatSlice, err := unsafeDecodeFloat64Slice(data[:count*8])
		if floatSlice == nil || err != nil {
			return
		}

		for _, val := range floatSlice {
			if !yield(val) {
				return
			}
		}
	}
}

// At retrieves the float64 coefficient at the specified index using unsafe memory operations.
//
// If the index is out of bounds (negative or >= count), the method returns false.
//
// Parameters:
//   - data: Encoded byte slice from CoefficientRawEncoder.Bytes() (must be multiple of 8 bytes)
//   - index: Zero-based index of the float64 value to retrieve
//   - count: Total number of float64 values in the encoded data
//
// Returns:
//   - float64: The value at the specified index
//   - bool: true if the index exists and was successfully decoded, false otherwise
func (d CoefficientRawUnsafeDecoder) At(data []byte, index int, count int) (float64, bool) {
	if len(data) == 0 || index < 0 || index >= count {
		return 0, false
	}

	floatSlice, err := unsafeDecodeFloat64Slice(data)
	if floatSlice == nil || err != nil {
		return 0, false
	}

	if index >= len(floatSlice) {
		return 0, false
	}

	return floatSlice[index], true
}

// unsafeDecodeFloat64Slice decodes a byte slice into a float64 slice using unsafe memory operations.
func unsafeDecodeFloat64Slice(data []byte) ([]float64, error) {
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("byte slice length (%d) is not a multiple of 8", len(data))
	}

	// Zero-copy conversion using unsafe.Slice
	// Cast the byte slice pointer to *float64 and create a slice from it
	ptr := (*float64)(unsafe.Pointer(&data[0]))

	return unsafe.Slice(ptr, len(data)/8), nil
}
