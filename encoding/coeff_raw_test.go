package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skypress/skypress/endian"
)

// === CoefficientRawEncoder Tests ===

func TestCoefficientRawEncoder_NewEncoder(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	encoder := NewCoefficientRawEncoder(engine)
	defer encoder.Finish()

	require.NotNil(t, encoder)
	require.Equal(t, 0, encoder.Len())
	require.Equal(t, 0, encoder.Size())
	require.Empty(t, encoder.Bytes())
}

func TestCoefficientRawEncoder_Write_SingleValue(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	encoder := NewCoefficientRawEncoder(engine)
	defer encoder.Finish()
	value := 3.14159

	encoder.Write(value)

	require.Equal(t, 1, encoder.Len())
	require.Equal(t, 8, encoder.Size())
	require.Len(t, encoder.Bytes(), 8)

	decoder := NewCoefficientRawDecoder(engine)
	decoded := make([]float64, 0, 1)
	for val := range decoder.All(encoder.Bytes(), 1) {
		decoded = append(decoded, val)
	}

	require.Len(t, decoded, 1)
	require.Equal(t, value, decoded[0])
}

func TestCoefficientRawEncoder_Write_MultipleValues(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	encoder := NewCoefficientRawEncoder(engine)
	defer encoder.Finish()
	values := []float64{3.14159, -2.71828, 1.41421, -1.73205}

	for _, val := range values {
		encoder.Write(val)
	}

	require.Equal(t, len(values), encoder.Len())
	require.Equal(t, len(values)*8, encoder.Size())

	decoder := NewCoefficientRawDecoder(engine)
	decoded := make([]float64, 0, len(values))
	for val := range decoder.All(encoder.Bytes(), len(values)) {
		decoded = append(decoded, val)
	}

	require.Len(t, decoded, len(values))
	for i, original := range values {
		require.Equal(t, original, decoded[i])
	}
}

func TestCoefficientRawEncoder_WriteSlice_EmptySlice(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	encoder := NewCoefficientRawEncoder(engine)
	defer encoder.Finish()
	encoder.WriteSlice([]float64{})

	require.Equal(t, 0, encoder.Len())
	require.Equal(t, 0, encoder.Size())
	require.Empty(t, encoder.Bytes())
}

func TestCoefficientRawEncoder_WriteSlice_RoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	encoder := NewCoefficientRawEncoder(engine)
	defer encoder.Finish()
	values := []float64{12.5, -0.001, 8191.25, 0, 42.0}

	encoder.WriteSlice(values)

	require.Equal(t, len(values), encoder.Len())
	require.Equal(t, len(values)*8, encoder.Size())

	decoder := NewCoefficientRawDecoder(engine)
	decoded := make([]float64, 0, len(values))
	for val := range decoder.All(encoder.Bytes(), len(values)) {
		decoded = append(decoded, val)
	}

	require.Equal(t, values, decoded)
}

func TestCoefficientRawEncoder_SpecialValues(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	encoder := NewCoefficientRawEncoder(engine)
	defer encoder.Finish()
	values := []float64{math.Inf(1), math.Inf(-1), math.NaN(), math.MaxFloat64, math.SmallestNonzeroFloat64, -0.0}

	encoder.WriteSlice(values)

	decoder := NewCoefficientRawDecoder(engine)
	decoded := make([]float64, 0, len(values))
	for val := range decoder.All(encoder.Bytes(), len(values)) {
		decoded = append(decoded, val)
	}

	require.Len(t, decoded, len(values))
	for i, original := range values {
		// Compare bit patterns so NaN and negative zero round-trip exactly
		require.Equal(t, math.Float64bits(original), math.Float64bits(decoded[i]), "value %d", i)
	}
}

func TestCoefficientRawEncoder_BigEndian(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	encoder := NewCoefficientRawEncoder(engine)
	defer encoder.Finish()
	values := []float64{1.5, -2.25, 3.125}

	encoder.WriteSlice(values)

	decoder := NewCoefficientRawDecoder(engine)
	decoded := make([]float64, 0, len(values))
	for val := range decoder.All(encoder.Bytes(), len(values)) {
		decoded = append(decoded, val)
	}

	require.Equal(t, values, decoded)
}

func TestCoefficientRawEncoder_PoolReuse(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	encoder1 := NewCoefficientRawEncoder(engine)
	encoder1.WriteSlice([]float64{1.0, 2.0, 3.0})
	require.Equal(t, 3, encoder1.Len())

	encoder1.Finish()
	require.Equal(t, 0, encoder1.Len())

	encoder2 := NewCoefficientRawEncoder(engine)
	defer encoder2.Finish()
	encoder2.WriteSlice([]float64{4.0, 5.0, 6.0})
	require.Equal(t, 3, encoder2.Len())
	require.Equal(t, 24, encoder2.Size())

	decoder := NewCoefficientRawDecoder(engine)
	decoded := make([]float64, 0, 3)
	for val := range decoder.All(encoder2.Bytes(), 3) {
		decoded = append(decoded, val)
	}
	require.Equal(t, []float64{4.0, 5.0, 6.0}, decoded)
}

func TestCoefficientRawEncoder_WriteAfterFinish_Panics(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	encoder := NewCoefficientRawEncoder(engine)
	encoder.Finish()

	require.Panics(t, func() { encoder.Write(1.0) })
	require.Panics(t, func() { encoder.WriteSlice([]float64{1.0}) })
	require.Panics(t, func() { encoder.Bytes() })
	require.Panics(t, func() { encoder.Size() })
}

// === CoefficientRawDecoder Tests ===

func TestCoefficientRawDecoder_At(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	encoder := NewCoefficientRawEncoder(engine)
	defer encoder.Finish()
	values := []float64{10.5, 20.25, 30.125, 40.0625}
	encoder.WriteSlice(values)

	decoder := NewCoefficientRawDecoder(engine)
	data := encoder.Bytes()

	for i, expected := range values {
		val, ok := decoder.At(data, i, len(values))
		require.True(t, ok, "index %d", i)
		require.Equal(t, expected, val)
	}

	_, ok := decoder.At(data, -1, len(values))
	require.False(t, ok)

	_, ok = decoder.At(data, len(values), len(values))
	require.False(t, ok)

	_, ok = decoder.At(nil, 0, 0)
	require.False(t, ok)
}

func TestCoefficientRawDecoder_All_TruncatedData(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	encoder := NewCoefficientRawEncoder(engine)
	defer encoder.Finish()
	encoder.WriteSlice([]float64{1.0, 2.0, 3.0})

	decoder := NewCoefficientRawDecoder(engine)

	// Claiming more values than the data holds yields nothing
	count := 0
	for range decoder.All(encoder.Bytes()[:16], 3) {
		count++
	}
	require.Equal(t, 0, count)
}

func TestCoefficientRawDecoder_All_EarlyTermination(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	encoder := NewCoefficientRawEncoder(engine)
	defer encoder.Finish()
	encoder.WriteSlice([]float64{1.0, 2.0, 3.0, 4.0})

	decoder := NewCoefficientRawDecoder(engine)
	count := 0
	for range decoder.All(encoder.Bytes(), 4) {
		count++
		if count == 2 {
			break
		}
	}
	require.Equal(t, 2, count)
}

// === CoefficientRawUnsafeDecoder Tests ===

func TestCoefficientRawUnsafeDecoder_MatchesSafeDecoder(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	if !endian.IsNativeLittleEndian() {
		t.Skip("unsafe decoder requires native little-endian host")
	}

	encoder := NewCoefficientRawEncoder(engine)
	defer encoder.Finish()
	values := []float64{0.5, -1.75, 1e-12, 9.25e8}
	encoder.WriteSlice(values)
	data := encoder.Bytes()

	safe := NewCoefficientRawDecoder(engine)
	unsafeDec := NewCoefficientRawUnsafeDecoder(engine)

	safeVals := make([]float64, 0, len(values))
	for val := range safe.All(data, len(values)) {
		safeVals = append(safeVals, val)
	}

	unsafeVals := make([]float64, 0, len(values))
	for val := range unsafeDec.All(data, len(values)) {
		unsafeVals = append(unsafeVals, val)
	}

	require.Equal(t, safeVals, unsafeVals)

	for i := range values {
		safeVal, ok1 := safe.At(data, i, len(values))
		unsafeVal, ok2 := unsafeDec.At(data, i, len(values))
		require.True(t, ok1)
		require.True(t, ok2)
		require.Equal(t, safeVal, unsafeVal)
	}
}

func TestCoefficientRawUnsafeDecoder_InvalidData(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	decoder := NewCoefficientRawUnsafeDecoder(engine)

	_, ok := decoder.At(nil, 0, 1)
	require.False(t, ok)

	// Length not a multiple of 8
	count := 0
	for range decoder.All(make([]byte, 12), 1) {
		count++
	}
	require.Equal(t, 1, count, "12 bytes still hold one full value")

	count = 0
	for range decoder.All(make([]byte, 7), 1) {
		count++
	}
	require.Equal(t, 0, count)
}
