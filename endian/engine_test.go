package endian

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	result := CheckEndianness()

	// Verify against the actual layout of a known value in memory.
	var probe uint16 = 0x0102
	probeBytes := (*[2]byte)(unsafe.Pointer(&probe))

	switch probeBytes[0] {
	case 0x01:
		require.Equal(t, binary.BigEndian, result)
	case 0x02:
		require.Equal(t, binary.LittleEndian, result)
	default:
		require.Failf(t, "unexpected byte value", "got: %v", probeBytes[0])
	}

	// Must be stable across calls.
	for range 20 {
		require.Equal(t, result, CheckEndianness())
	}
}

func TestNativeEndiannessPredicates(t *testing.T) {
	little := IsNativeLittleEndian()
	big := IsNativeBigEndian()

	require.NotEqual(t, little, big, "exactly one native endianness must hold")

	if little {
		require.True(t, CompareNativeEndian(GetLittleEndianEngine()))
		require.False(t, CompareNativeEndian(GetBigEndianEngine()))
	} else {
		require.True(t, CompareNativeEndian(GetBigEndianEngine()))
		require.False(t, CompareNativeEndian(GetLittleEndianEngine()))
	}
}

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.LittleEndian, engine)

	buf := make([]byte, 2)
	engine.PutUint16(buf, 0x0102)
	require.Equal(t, byte(0x02), buf[0], "little endian puts LSB first")
	require.Equal(t, byte(0x01), buf[1])
	require.Equal(t, uint16(0x0102), engine.Uint16(buf))
}

func TestGetBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.BigEndian, engine)

	buf := make([]byte, 2)
	engine.PutUint16(buf, 0x0102)
	require.Equal(t, byte(0x01), buf[0], "big endian puts MSB first")
	require.Equal(t, byte(0x02), buf[1])
	require.Equal(t, uint16(0x0102), engine.Uint16(buf))
}

func TestEngineRoundTrip(t *testing.T) {
	engines := []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()}

	for _, engine := range engines {
		t.Run(engine.String(), func(t *testing.T) {
			buf32 := make([]byte, 4)
			engine.PutUint32(buf32, 0x01020304)
			require.Equal(t, uint32(0x01020304), engine.Uint32(buf32))

			buf64 := make([]byte, 8)
			engine.PutUint64(buf64, 0x0102030405060708)
			require.Equal(t, uint64(0x0102030405060708), engine.Uint64(buf64))
		})
	}
}

func TestEngineAppendMatchesPut(t *testing.T) {
	// Coefficient payload encoders rely on AppendUint64; verify append and
	// put produce identical layouts, including float64 bit patterns.
	engines := []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()}
	values := []float64{0, 1.5, -273.15, math.Pi, math.MaxFloat64}

	for _, engine := range engines {
		t.Run(engine.String(), func(t *testing.T) {
			for _, v := range values {
				bits := math.Float64bits(v)

				appended := engine.AppendUint64(nil, bits)
				put := make([]byte, 8)
				engine.PutUint64(put, bits)

				require.Equal(t, put, appended)
				require.Equal(t, v, math.Float64frombits(engine.Uint64(appended)))
			}
		})
	}
}
