package skypress

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/format"
	"github.com/skypress/skypress/skymap"
)

// TestCompressDecompress verifies the one-call round trip for every method
func TestCompressDecompress(t *testing.T) {
	m := createTestMap(t, 8, 3)

	for _, method := range []string{"wavelet", "pca", "svd"} {
		t.Run(method, func(t *testing.T) {
			data, err := Compress(m.Pixels, m.NSide, method, 0.5)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			restored, err := Decompress(data)
			require.NoError(t, err)
			require.Len(t, restored, len(m.Pixels))

			// The reconstruction must carry signal, not silence
			nonZero := 0
			for _, v := range restored {
				if v != 0 {
					nonZero++
				}
			}
			require.Positive(t, nonZero)
		})
	}
}

// TestCompressMethodNameCase verifies method names parse case-insensitively
func TestCompressMethodNameCase(t *testing.T) {
	m := createTestMap(t, 4, 9)

	for _, name := range []string{"WAVELET", "Pca", "sVd"} {
		data, err := Compress(m.Pixels, m.NSide, name, 0.5)
		require.NoError(t, err, "method name %q", name)
		require.NotEmpty(t, data)
	}
}

// TestCompressUnknownMethod verifies unrecognized method names are rejected
func TestCompressUnknownMethod(t *testing.T) {
	m := createTestMap(t, 4, 1)

	_, err := Compress(m.Pixels, m.NSide, "fft", 0.5)
	require.ErrorIs(t, err, errs.ErrUnknownMethod)
}

// TestCompressInvalidRatio verifies ratios outside (0, 1] are rejected
func TestCompressInvalidRatio(t *testing.T) {
	m := createTestMap(t, 4, 1)

	for _, ratio := range []float64{0, -0.5, 1.5} {
		_, err := Compress(m.Pixels, m.NSide, "wavelet", ratio)
		require.ErrorIs(t, err, errs.ErrInvalidRatio, "ratio %v", ratio)
	}
}

// TestCompressInvalidResolution verifies bad nside/pixel combinations are rejected
func TestCompressInvalidResolution(t *testing.T) {
	// 13 pixels cannot be a HEALPix map at any nside
	_, err := Compress(make([]float64, 13), 1, "wavelet", 0.5)
	require.ErrorIs(t, err, errs.ErrUnsupportedResolution)

	// nside 3 is not a power of two
	_, err = Compress(make([]float64, 108), 3, "wavelet", 0.5)
	require.ErrorIs(t, err, errs.ErrUnsupportedResolution)
}

// TestCompressMapDecompressMap verifies the map-level wrappers
func TestCompressMapDecompressMap(t *testing.T) {
	m := createTestMap(t, 8, 21)

	data, err := CompressMap(m, "svd", 0.5)
	require.NoError(t, err)

	restored, err := DecompressMap(data)
	require.NoError(t, err)
	require.Equal(t, m.NSide, restored.NSide)
	require.Len(t, restored.Pixels, len(m.Pixels))
}

// TestParse verifies artifact metadata is readable without decompressing
func TestParse(t *testing.T) {
	m := createTestMap(t, 4, 7)

	data, err := Compress(m.Pixels, m.NSide, "svd", 0.5)
	require.NoError(t, err)

	rep, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, format.MethodSVD, rep.Method())
	require.Equal(t, 4, rep.NSide())
	require.Equal(t, len(m.Pixels), rep.PixelCount())
	require.Positive(t, rep.Retained())
	require.Equal(t, len(data), rep.Size())
}

// TestParseInvalid verifies garbage bytes fail parsing
func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte{0x01, 0x02, 0x03})
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	_, err = Parse(make([]byte, 64))
	require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
}

// TestDecompressTruncated verifies truncated artifacts fail cleanly
func TestDecompressTruncated(t *testing.T) {
	m := createTestMap(t, 4, 2)

	data, err := Compress(m.Pixels, m.NSide, "wavelet", 0.3)
	require.NoError(t, err)

	_, err = Decompress(data[:10])
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	_, err = Decompress(data[:len(data)-1])
	require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)
}

// TestReport verifies round-trip quality measurement
func TestReport(t *testing.T) {
	m := createTestMap(t, 8, 13)

	data, err := Compress(m.Pixels, m.NSide, "wavelet", 0.1)
	require.NoError(t, err)

	restored, err := Decompress(data)
	require.NoError(t, err)

	report, err := Report(m.Pixels, restored, data)
	require.NoError(t, err)
	require.Equal(t, len(data), report.CompressedBytes)
	require.Equal(t, 8*len(m.Pixels), report.OriginalBytes)
	require.Less(t, report.CompressionRatio(), 1.0)
	require.Positive(t, report.SpaceSavings())
	require.Positive(t, report.RMSE)
	require.GreaterOrEqual(t, report.MaxAbsError, report.RMSE)
}

// TestReportLengthMismatch verifies mismatched arrays are rejected
func TestReportLengthMismatch(t *testing.T) {
	_, err := Report(make([]float64, 12), make([]float64, 11), []byte{0x00})
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

// TestNewEngine verifies the engine passthrough accepts blob options
func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)
	require.NotNil(t, engine)
	require.Equal(t, format.MethodWavelet, engine.Method())
}

// Helper function to create a deterministic test map
func createTestMap(t *testing.T, nside int, seed int64) *skymap.Map {
	t.Helper()

	m, err := skymap.NewRandom(nside, seed)
	require.NoError(t, err)

	return m
}
