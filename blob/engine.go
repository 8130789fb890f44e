package blob

import (
	"fmt"

	"github.com/skypress/skypress/compress"
	"github.com/skypress/skypress/encoding"
	"github.com/skypress/skypress/endian"
	"github.com/skypress/skypress/errs"
	"github.com/skypress/skypress/format"
	"github.com/skypress/skypress/healpix"
	"github.com/skypress/skypress/internal/options"
	"github.com/skypress/skypress/section"
	"github.com/skypress/skypress/selector"
	"github.com/skypress/skypress/transform"
)

// Engine compresses sky maps into self-describing artifacts and decompresses
// them back to pixel arrays.
//
// An Engine carries only immutable configuration: the default method and
// ratio, coefficient precision, payload codec, byte order, and an optional
// shared PCA basis. Each Compress or Decompress call is a pure function of
// its inputs and the configuration, so a single Engine is safe for
// concurrent use across goroutines, one map per goroutine.
//
// Note: the engine never mutates the pixel slices passed to it, and the
// slices returned by Decompress are freshly allocated.
type Engine struct {
	flag   section.Flag
	engine endian.EndianEngine
	codec  compress.Codec

	ratio         float64
	waveletLevels int
	basis         *transform.Basis
}

// NewEngine creates a compression engine.
//
// Defaults without options: wavelet method, ratio DefaultRatio, float64
// coefficient precision, zstd payload compression, little-endian byte order.
//
// Parameters:
//   - opts: Optional configuration (method, ratio, precision, codec,
//     endianness, wavelet depth, shared basis)
//
// Returns:
//   - *Engine: Configured engine ready for Compress/Decompress calls
//   - error: ErrUnknownMethod, ErrInvalidRatio, ErrInvalidPrecision, or an
//     invalid codec error from the options
func NewEngine(opts ...EngineOption) (*Engine, error) {
	eng := &Engine{
		flag:  section.NewFlag(),
		ratio: DefaultRatio,
	}
	eng.engine = eng.flag.GetEndianEngine()

	if err := options.Apply(eng, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(eng.flag.Codec())
	if err != nil {
		return nil, err
	}
	eng.codec = codec

	return eng, nil
}

// Method returns the default transform method used by Compress.
func (e *Engine) Method() format.Method {
	return e.flag.Method()
}

// Ratio returns the default retention ratio used by Compress.
func (e *Engine) Ratio() float64 {
	return e.ratio
}

// Basis returns the shared PCA basis the engine was configured with, or nil.
func (e *Engine) Basis() *transform.Basis {
	return e.basis
}

// Compress compresses a pixel array with the engine's default method and
// ratio. See CompressMethod.
func (e *Engine) Compress(pixels []float64, nside int) (*Representation, error) {
	return e.CompressMethod(pixels, nside, e.flag.Method(), e.ratio)
}

// CompressMethod compresses a pixel array into a self-describing artifact.
//
// The pipeline is: validate, run the forward transform, select and quantize
// coefficients, encode the three payloads, byte-compress each independently,
// and assemble the artifact. The input slice is never modified. Identical
// inputs and configuration produce bit-identical artifacts.
//
// Parameters:
//   - pixels: Pixel array of length 12*nside^2
//   - nside: Resolution parameter of the map
//   - method: Transform method for this call (overrides the engine default)
//   - ratio: Retention ratio in (0, 1] for this call (overrides the default)
//
// Returns:
//   - *Representation: The compressed artifact
//   - error: ErrUnknownMethod, ErrInvalidRatio, ErrUnsupportedResolution,
//     ErrBasisMismatch for a shared basis fitted at another resolution, or a
//     payload compression error
func (e *Engine) CompressMethod(pixels []float64, nside int, method format.Method, ratio float64) (*Representation, error) {
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: 0x%02X", errs.ErrUnknownMethod, uint8(method))
	}
	if err := selector.ValidateRatio(ratio); err != nil {
		return nil, err
	}
	if err := healpix.Validate(len(pixels), nside); err != nil {
		return nil, err
	}

	tr, err := transform.CreateTransform(method,
		transform.WithRatio(ratio),
		transform.WithWaveletLevels(e.waveletLevels),
		transform.WithBasis(e.basis),
	)
	if err != nil {
		return nil, err
	}

	set, err := tr.Forward(pixels)
	if err != nil {
		return nil, err
	}

	// The wavelet transform is dense: retention happens here, by magnitude
	// ranking over the full coefficient array. The rank-reducing methods
	// already dropped everything past the retained rank inside Forward, so
	// every remaining coefficient is kept and the mask stays empty.
	var (
		indices  []int
		values   []float64
		retained int
	)
	if method == format.MethodWavelet {
		sel, selErr := selector.Select(set.Coeffs, ratio)
		if selErr != nil {
			return nil, selErr
		}
		indices = sel.Indices
		values = sel.Values
		retained = sel.Count()
	} else {
		values = set.Coeffs
		retained = set.Rank
	}

	maskPayload := e.encodeMask(indices)
	valuePayload := e.encodeValues(values)
	sidePayload := e.encodeSide(set)

	maskData, err := e.compressPayload(maskPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to compress mask payload: %w", err)
	}
	valueData, err := e.compressPayload(valuePayload)
	if err != nil {
		return nil, fmt.Errorf("failed to compress value payload: %w", err)
	}
	sideData, err := e.compressPayload(sidePayload)
	if err != nil {
		return nil, fmt.Errorf("failed to compress side payload: %w", err)
	}

	header := section.NewHeader(uint32(nside), uint32(len(pixels))) //nolint:gosec
	header.Flag = e.flag
	header.Flag.SetMethod(method)
	header.Flag.SetSharedBasis(e.sharesBasis(method))
	header.Retained = uint32(retained)               //nolint:gosec
	header.MaskPayloadSize = uint32(len(maskData))   //nolint:gosec
	header.ValuePayloadSize = uint32(len(valueData)) //nolint:gosec
	header.SidePayloadSize = uint32(len(sideData))   //nolint:gosec
	header.WaveletLevels = uint16(set.Levels)        //nolint:gosec
	header.Checksum = payloadChecksum(maskData, valueData, sideData)

	return assemble(*header, maskData, valueData, sideData), nil
}

// Decompress reconstructs the pixel array from a compressed artifact.
//
// It rebuilds the full coefficient array (zeros at unselected positions,
// dequantized values at selected ones), reassembles the transform side data,
// and runs the matching inverse transform. The call is pure: concurrent
// Decompress calls on independent representations never interfere.
//
// Parameters:
//   - rep: Artifact from a matching CompressMethod call or from Parse
//
// Returns:
//   - []float64: Reconstructed pixel array, length 12*nside^2
//   - error: ErrInvalidPayloadSize for undecodable payloads, or
//     ErrBasisMismatch when a shared-basis artifact does not match the
//     engine's configured basis
func (e *Engine) Decompress(rep *Representation) ([]float64, error) {
	header := rep.Header()
	engine := header.Flag.GetEndianEngine()
	codec, err := compress.GetCodec(header.Flag.Codec())
	if err != nil {
		return nil, err
	}

	maskPayload, err := decompressPayload(codec, rep.maskPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress mask payload: %w", err)
	}
	valuePayload, err := decompressPayload(codec, rep.valuePayload)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress value payload: %w", err)
	}
	sidePayload, err := decompressPayload(codec, rep.sidePayload)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress side payload: %w", err)
	}

	npix := int(header.PixelCount)
	retained := int(header.Retained)

	set, err := e.rebuildSet(&header, engine, maskPayload, valuePayload, sidePayload, npix, retained)
	if err != nil {
		return nil, err
	}

	tr, err := transform.CreateTransform(header.Flag.Method())
	if err != nil {
		return nil, err
	}

	pixels, err := tr.Inverse(set)
	if err != nil {
		return nil, err
	}
	if len(pixels) != npix {
		return nil, fmt.Errorf("%w: inverse produced %d pixels, header describes %d",
			errs.ErrInvalidPayloadSize, len(pixels), npix)
	}

	return pixels, nil
}

// DecompressBytes parses a serialized artifact and decompresses it in one
// call. Equivalent to Parse followed by Decompress.
func (e *Engine) DecompressBytes(data []byte) ([]float64, error) {
	rep, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return e.Decompress(rep)
}

// sharesBasis reports whether artifacts of the given method reference the
// engine's shared basis by fingerprint instead of carrying it inline.
func (e *Engine) sharesBasis(method format.Method) bool {
	return method == format.MethodPCA && e.basis != nil
}

// encodeMask encodes retained indices as delta varints. Nil or empty input
// yields an empty payload, which is the mask shape for pca and svd.
func (e *Engine) encodeMask(indices []int) []byte {
	if len(indices) == 0 {
		return nil
	}

	enc := encoding.NewMaskIndexEncoder()
	defer enc.Finish()
	enc.WriteSlice(indices)

	return append([]byte(nil), enc.Bytes()...)
}

// encodeValues encodes retained coefficients at the configured precision:
// raw IEEE-754 bits for float64, or a quantization parameter header followed
// by fixed-width signed codes.
func (e *Engine) encodeValues(values []float64) []byte {
	precision := e.flag.Precision()
	if precision == format.PrecisionFloat64 {
		enc := encoding.NewCoefficientRawEncoder(e.engine)
		defer enc.Finish()
		enc.WriteSlice(values)

		return append([]byte(nil), enc.Bytes()...)
	}

	quant := selector.FitQuantization(values, precision)
	enc := encoding.NewCoefficientQuantizedEncoder(e.engine, quant.Scale, quant.Offset, precision.Bits())
	defer enc.Finish()
	enc.WriteSlice(values)

	return append([]byte(nil), enc.Bytes()...)
}

// encodeSide encodes the method-specific side payload. Wavelet artifacts
// carry no side data; their only extra state, the level count, lives in the
// header.
func (e *Engine) encodeSide(set *transform.CoefficientSet) []byte {
	switch set.Method {
	case format.MethodPCA:
		return encodePCASide(set, e.sharesBasis(format.MethodPCA), e.engine)
	case format.MethodSVD:
		return encodeSVDSide(set, e.engine)
	default:
		return nil
	}
}

// compressPayload byte-compresses a payload with the engine's codec. Empty
// payloads stay empty rather than becoming an empty compression frame, so
// the payload sizes in the header keep their documented meaning.
func (e *Engine) compressPayload(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	return e.codec.Compress(payload)
}

// decompressPayload inverts compressPayload with the artifact's own codec.
func decompressPayload(codec compress.Codec, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return codec.Decompress(data)
}

// rebuildSet reconstructs the CoefficientSet a forward transform produced
// from the decoded artifact payloads.
func (e *Engine) rebuildSet(
	header *section.Header,
	engine endian.EndianEngine,
	maskPayload, valuePayload, sidePayload []byte,
	npix, retained int,
) (*transform.CoefficientSet, error) {
	method := header.Flag.Method()
	nside := int(header.NSide)

	valueCount := retained
	if method == format.MethodPCA {
		// The pca value payload holds the score matrix, one row of scores
		// per matrix view row.
		rows, _ := healpix.MatrixDims(nside)
		valueCount = rows * retained
	}

	values, err := e.decodeValues(header.Flag.Precision(), engine, valuePayload, valueCount)
	if err != nil {
		return nil, err
	}

	switch method {
	case format.MethodWavelet:
		coeffs, scatterErr := scatterCoefficients(maskPayload, values, npix)
		if scatterErr != nil {
			return nil, scatterErr
		}

		return &transform.CoefficientSet{
			Method: format.MethodWavelet,
			Coeffs: coeffs,
			Levels: int(header.WaveletLevels),
		}, nil

	case format.MethodPCA:
		side, sideErr := decodePCASide(sidePayload, npix, retained, engine)
		if sideErr != nil {
			return nil, sideErr
		}
		if side.shared != header.Flag.HasSharedBasis() {
			return nil, fmt.Errorf("%w: side payload basis mode disagrees with header flag",
				errs.ErrInvalidPayloadSize)
		}

		basis, basisErr := e.resolveBasis(side, nside)
		if basisErr != nil {
			return nil, basisErr
		}

		return &transform.CoefficientSet{
			Method: format.MethodPCA,
			Coeffs: values,
			Rank:   side.rank,
			Rows:   side.rows,
			Cols:   side.cols,
			Basis:  basis,
		}, nil

	case format.MethodSVD:
		side, sideErr := decodeSVDSide(sidePayload, npix, retained, engine)
		if sideErr != nil {
			return nil, sideErr
		}

		return &transform.CoefficientSet{
			Method:       format.MethodSVD,
			Coeffs:       values,
			Rank:         side.rank,
			Rows:         side.rows,
			Cols:         side.cols,
			LeftVectors:  side.left,
			RightVectors: side.right,
		}, nil

	default:
		return nil, fmt.Errorf("%w: 0x%02X", errs.ErrUnknownMethod, uint8(method))
	}
}

// decodeValues decodes the value payload into a coefficient slice.
func (e *Engine) decodeValues(precision format.Precision, engine endian.EndianEngine, payload []byte, count int) ([]float64, error) {
	values := make([]float64, 0, count)

	if precision == format.PrecisionFloat64 {
		// The unsafe decoder views the payload bytes as float64 directly;
		// it is only valid when the artifact byte order matches the host.
		if endian.CompareNativeEndian(engine) {
			for v := range encoding.NewCoefficientRawUnsafeDecoder(engine).All(payload, count) {
				values = append(values, v)
			}
		} else {
			for v := range encoding.NewCoefficientRawDecoder(engine).All(payload, count) {
				values = append(values, v)
			}
		}
	} else {
		dec := encoding.NewCoefficientQuantizedDecoder(engine, precision.Bits())
		for v := range dec.All(payload, count) {
			values = append(values, v)
		}
	}

	if len(values) != count {
		return nil, fmt.Errorf("%w: value payload decoded %d of %d coefficients",
			errs.ErrInvalidPayloadSize, len(values), count)
	}

	return values, nil
}

// scatterCoefficients rebuilds the dense wavelet coefficient array: zeros
// everywhere except the retained indices, which receive the decoded values
// in order.
func scatterCoefficients(maskPayload []byte, values []float64, npix int) ([]float64, error) {
	coeffs := make([]float64, npix)

	decoded := 0
	prev := -1
	for index := range encoding.NewMaskIndexDecoder().All(maskPayload, len(values)) {
		if index <= prev || index >= npix {
			return nil, fmt.Errorf("%w: mask index %d outside (%d, %d)",
				errs.ErrInvalidPayloadSize, index, prev, npix)
		}
		coeffs[index] = values[decoded]
		prev = index
		decoded++
	}

	if decoded != len(values) {
		return nil, fmt.Errorf("%w: mask payload decoded %d of %d indices",
			errs.ErrInvalidPayloadSize, decoded, len(values))
	}

	return coeffs, nil
}

// resolveBasis produces the PCA basis for reconstruction: the engine's
// configured shared basis when the artifact references one by fingerprint,
// or a basis reassembled from the inline side payload.
func (e *Engine) resolveBasis(side *pcaSide, nside int) (*transform.Basis, error) {
	if side.shared {
		if e.basis == nil {
			return nil, fmt.Errorf("%w: artifact references shared basis 0x%016x but engine has none",
				errs.ErrBasisMismatch, side.fingerprint)
		}
		if e.basis.Fingerprint() != side.fingerprint {
			return nil, fmt.Errorf("%w: artifact references basis 0x%016x, engine has 0x%016x",
				errs.ErrBasisMismatch, side.fingerprint, e.basis.Fingerprint())
		}

		return e.basis, nil
	}

	return transform.NewBasis(nside, side.rank, side.mean, side.components)
}

// assemble packs a finished header and three compressed payloads into a
// Representation backed by a single exact-size buffer.
func assemble(header section.Header, maskData, valueData, sideData []byte) *Representation {
	data := make([]byte, header.ArtifactSize())

	offset := copy(data, header.Bytes())
	offset += copy(data[offset:], maskData)
	offset += copy(data[offset:], valueData)
	copy(data[offset:], sideData)

	maskEnd := section.HeaderSize + len(maskData)
	valueEnd := maskEnd + len(valueData)

	return &Representation{
		header:       header,
		data:         data,
		maskPayload:  data[section.HeaderSize:maskEnd],
		valuePayload: data[maskEnd:valueEnd],
		sidePayload:  data[valueEnd:],
	}
}
