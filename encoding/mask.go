package encoding

import (
	"encoding/binary"
	"iter"

	"github.com/skypress/skypress/internal/pool"
)

// MaskIndexEncoder encodes a strictly ascending sequence of retained
// coefficient indices using delta and varint compression.
//
// The encoding exploits the shape of selection masks: indices are sorted and
// often clustered, so the gaps between consecutive indices are small positive
// integers that varint-encode into one or two bytes.
//
// Encoding layout:
//   - First index: full varint-encoded value
//   - Subsequent indices: varint-encoded gap from the previous index (always >= 1)
//
// Typical compression characteristics:
//   - Dense masks (low ratio of skipped indices): ~1 byte per index
//   - Sparse masks with clustered survivors: 1-2 bytes per index
//   - Worst case (indices spread across a large map): up to 5 bytes per index
//
// Compared to a fixed-width uint32 index list this typically saves 50-75% of
// the mask payload before byte compression.
//
// Indices must be written in strictly ascending order; Write panics otherwise.
// Selection always produces sorted, deduplicated indices, so an out-of-order
// write indicates a caller bug rather than bad data.
type MaskIndexEncoder struct {
	prev  int
	temp  [binary.MaxVarintLen64]byte
	buf   *pool.ByteBuffer
	count int
}

var _ ColumnarEncoder[int] = (*MaskIndexEncoder)(nil)

// NewMaskIndexEncoder creates a new delta-varint mask index encoder.
//
// Returns:
//   - *MaskIndexEncoder: A new encoder instance ready for index encoding
func NewMaskIndexEncoder() *MaskIndexEncoder {
	return &MaskIndexEncoder{
		prev: -1,
		buf:  pool.GetBlobBuffer(),
	}
}

// Write encodes a single index as a varint-encoded gap from the previous index.
//
// The first index after construction or Reset is encoded as its full value.
//
// Panics if Finish() has been called (nil buffer), if the index is negative,
// or if the index is not strictly greater than the previously written index.
//
// Parameters:
//   - index: Zero-based coefficient index, strictly greater than the previous one
func (e *MaskIndexEncoder) Write(index int) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if index <= e.prev {
		panic("mask indices must be strictly ascending")
	}

	e.count++
	e.buf.Grow(binary.MaxVarintLen64)

	// First index is stored as a full value; the gap from the -1 sentinel
	// would be index+1, which breaks round-tripping of index 0.
	var gap uint64
	if e.prev < 0 {
		gap = uint64(index)
	} else {
		gap = uint64(index - e.prev) //nolint:gosec
	}

	n := binary.PutUvarint(e.temp[:], gap)
	e.buf.MustWrite(e.temp[:n])
	e.prev = index
}

// WriteSlice encodes a slice of strictly ascending indices.
//
// Buffer space is estimated up front (five bytes for the first index plus two
// bytes per gap) so that typical masks incur a single growth operation.
//
// Panics if Finish() has been called (nil buffer) or if the indices are not
// strictly ascending.
//
// Parameters:
//   - indices: Sorted, deduplicated, zero-based coefficient indices
func (e *MaskIndexEncoder) WriteSlice(indices []int) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	idxLen := len(indices)
	if idxLen == 0 {
		return
	}

	e.buf.Grow(binary.MaxVarintLen32 + (idxLen-1)*2)

	for _, index := range indices {
		e.Write(index)
	}
}

// Bytes returns the encoded byte slice containing all written indices.
//
// The returned slice is valid until the next call to Write, WriteSlice, or Reset.
// The caller must not modify the returned slice as it references the internal buffer.
//
// Panics if Finish() has been called (nil buffer).
//
// Returns:
//   - []byte: Encoded byte slice (empty if no indices written since last Reset)
func (e *MaskIndexEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded indices.
//
// Returns:
//   - int: Number of indices written since last Finish
func (e *MaskIndexEncoder) Len() int {
	return e.count
}

// Size returns the size in bytes of the encoded indices.
//
// Panics if Finish() has been called (nil buffer).
//
// Returns:
//   - int: Total bytes written to internal buffer since last Finish
func (e *MaskIndexEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset clears the delta chain so the encoder can accept a new ascending
// sequence, while keeping the accumulated data in the internal buffer.
//
// The next Write after Reset encodes its index as a full value.
func (e *MaskIndexEncoder) Reset() {
	e.prev = -1
}

// Finish finalizes the encoding process and returns buffer resources to the pool.
//
// After calling Finish(), the encoder is no longer usable. Any subsequent calls to
// Write(), WriteSlice(), Bytes(), or Size() will panic due to nil buffer.
func (e *MaskIndexEncoder) Finish() {
	if e.buf != nil {
		pool.PutBlobBuffer(e.buf)
		e.buf = nil
	}
	e.prev = -1
	e.count = 0
}

// MaskIndexDecoder decodes delta-varint encoded mask indices.
//
// It is designed to decode byte slices produced by MaskIndexEncoder.
type MaskIndexDecoder struct{}

var _ ColumnarDecoder[int] = MaskIndexDecoder{}

// NewMaskIndexDecoder creates a new mask index decoder.
//
// The decoder is immutable and stateless, making value semantics ideal.
//
// Returns:
//   - MaskIndexDecoder: A new decoder instance (stateless, can be reused)
func NewMaskIndexDecoder() MaskIndexDecoder {
	return MaskIndexDecoder{}
}

// All decodes all indices from the given byte slice.
//
// Decoding is sequential: each varint gap is accumulated onto the running
// index. If the data is truncated or malformed, the iterator stops early and
// yields fewer than count values.
//
// Parameters:
//   - data: Encoded byte slice from MaskIndexEncoder.Bytes()
//   - count: Expected number of indices to decode
//
// Returns:
//   - iter.Seq[int]: Iterator yielding decoded indices in ascending order
func (d MaskIndexDecoder) All(data []byte, count int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if len(data) == 0 || count == 0 {
			return
		}

		offset := 0
		index := -1
		for range count {
			gap, n := binary.Uvarint(data[offset:])
			if n <= 0 {
				return
			}
			offset += n

			if index < 0 {
				index = int(gap) //nolint:gosec
			} else {
				index += int(gap) //nolint:gosec
			}

			if !yield(index) {
				return
			}
		}
	}
}

// At retrieves the index at the specified position from the encoded data.
//
// Delta encoding requires sequential decoding, so At scans from the start of
// the data. For iterating many positions, use All instead.
//
// Parameters:
//   - data: Encoded byte slice from MaskIndexEncoder.Bytes()
//   - index: Zero-based position of the mask index to retrieve
//   - count: Total number of indices in the encoded data
//
// Returns:
//   - int: The coefficient index at the specified position
//   - bool: true if the position exists and was successfully decoded, false otherwise
func (d MaskIndexDecoder) At(data []byte, index int, count int) (int, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	pos := 0
	for value := range d.All(data, count) {
		if pos == index {
			return value, true
		}
		pos++
	}

	return 0, false
}
