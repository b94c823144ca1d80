package parjpeg

import (
	"fmt"

	"github.com/cocosip/go-jpeg-parallel/jpeg/common"
)

// EncoderOptions configures an encoding session.
type EncoderOptions struct {
	// Quality controls compression (1-100, higher is better)
	Quality int

	// RestartInterval is the number of MCUs per segment; 0 disables
	// restart markers and encodes each scan as a single segment
	RestartInterval int

	// Interleaved selects a single scan covering all components instead
	// of one scan per component
	Interleaved bool

	// Sampling holds per-component sampling factors; nil selects the
	// defaults (1x1 for grayscale, 4:2:0 for RGB)
	Sampling []SamplingFactor
}

// DefaultOptions returns the default encoder options.
func DefaultOptions() EncoderOptions {
	return EncoderOptions{
		Quality:         85,
		RestartInterval: 8,
		Interleaved:     true,
	}
}

// Validate checks if the options are valid
func (o *EncoderOptions) Validate() error {
	if o.Quality < 1 || o.Quality > 100 {
		return common.ErrInvalidQuality
	}
	if o.RestartInterval < 0 {
		return ErrInvalidRestartInterval
	}
	return nil
}

// defaultSampling returns the default sampling factors per component count.
func defaultSampling(components int) []SamplingFactor {
	if components == 1 {
		return []SamplingFactor{{1, 1}}
	}
	// 4:2:0
	return []SamplingFactor{{2, 2}, {1, 1}, {1, 1}}
}

// Encoder is an encoding session. Geometry and tables are computed once
// at creation and are immutable afterwards; per-call working buffers are
// private to each Encode call, so a session is safe to reuse, but not to
// share between concurrent calls.
type Encoder struct {
	width      int
	height     int
	components int
	opts       EncoderOptions

	geo     *Geometry
	qtables [2][64]int32
	tables  *CodeTableSet
	types   []ComponentType
}

// NewEncoder creates an encoding session for a fixed image geometry.
func NewEncoder(width, height, components int, opts EncoderOptions) (*Encoder, error) {
	if width <= 0 || height <= 0 {
		return nil, common.ErrInvalidDimensions
	}
	if components != 1 && components != 3 {
		return nil, common.ErrInvalidComponents
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	sampling := opts.Sampling
	if sampling == nil {
		sampling = defaultSampling(components)
	}
	if len(sampling) != components {
		return nil, fmt.Errorf("%w: %d sampling factors for %d components",
			ErrInvalidSamplingFactor, len(sampling), components)
	}

	geo, err := ResolveGeometry(width, height, sampling, opts.RestartInterval, opts.Interleaved)
	if err != nil {
		return nil, err
	}

	enc := &Encoder{
		width:      width,
		height:     height,
		components: components,
		opts:       opts,
		geo:        geo,
		tables:     StandardCodeTables(),
		types:      componentTypes(components),
	}
	enc.qtables[0] = common.ScaleQuantTable(common.DefaultLuminanceQuantTable, opts.Quality)
	enc.qtables[1] = common.ScaleQuantTable(common.DefaultChrominanceQuantTable, opts.Quality)

	return enc, nil
}

// componentTypes maps component index to its table type: the first
// component is luminance, the rest are chrominance.
func componentTypes(components int) []ComponentType {
	types := make([]ComponentType, components)
	for i := 1; i < components; i++ {
		types[i] = Chrominance
	}
	return types
}

// Geometry returns the session's resolved geometry.
func (e *Encoder) Geometry() *Geometry {
	return e.geo
}

// ScanData is the core's product: the compacted entropy-coded payload and
// the filled segment descriptor table locating every segment within it.
type ScanData struct {
	Data     []byte
	Segments []Segment
}

// EncodeCoefficients entropy-codes externally produced quantized
// coefficient buffers (one per component, 64 coefficients per block in
// block order) into a compacted scan payload. It performs no quantization
// or rounding of its own.
func EncodeCoefficients(geo *Geometry, coefs [][]int16, types []ComponentType, tables *CodeTableSet) (*ScanData, error) {
	if len(coefs) != len(geo.Components) || len(types) != len(geo.Components) {
		return nil, common.ErrInvalidComponents
	}
	for i := range coefs {
		if len(coefs[i]) < geo.Components[i].DataSize {
			return nil, fmt.Errorf("%w: component %d coefficient buffer", common.ErrBufferTooSmall, i)
		}
	}

	segments := geo.Segments()

	enc := &entropyEncoder{geo: geo, coefs: coefs, types: types, tables: tables}
	chunks, err := enc.encodeSegments(segments)
	if err != nil {
		return nil, err
	}

	data, err := compactSegments(segments, chunks)
	if err != nil {
		return nil, err
	}

	return &ScanData{Data: data, Segments: segments}, nil
}

// EncodeScan runs the full pipeline up to the compacted scan payload:
// preprocess, transform/quantize, parallel entropy coding, compaction.
func (e *Encoder) EncodeScan(pixel []byte) (*ScanData, error) {
	if len(pixel) < e.width*e.height*e.components {
		return nil, common.ErrBufferTooSmall
	}

	planes := e.preprocess(pixel)

	coefs := make([][]int16, len(planes))
	for ci := range planes {
		qtable := &e.qtables[0]
		if e.types[ci] == Chrominance {
			qtable = &e.qtables[1]
		}
		coefs[ci] = forwardTransform(planes[ci], &e.geo.Components[ci], qtable)
	}

	return EncodeCoefficients(e.geo, coefs, e.types, e.tables)
}

// Encode compresses raw pixel data (grayscale or RGB, 8 bits per sample)
// into a complete baseline JPEG stream.
func (e *Encoder) Encode(pixel []byte) ([]byte, error) {
	scan, err := e.EncodeScan(pixel)
	if err != nil {
		return nil, err
	}
	return e.writeStream(scan)
}

// Encode is a convenience wrapper encoding a single image with the given
// quality and default remaining options.
func Encode(pixel []byte, width, height, components, quality int) ([]byte, error) {
	opts := DefaultOptions()
	opts.Quality = quality
	enc, err := NewEncoder(width, height, components, opts)
	if err != nil {
		return nil, err
	}
	return enc.Encode(pixel)
}
