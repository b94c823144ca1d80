package parjpeg

import (
	"fmt"

	"github.com/cocosip/go-jpeg-parallel/codec"
)

// Codec implements the codec.Codec interface for parallel baseline JPEG
type Codec struct{}

// NewCodec creates a new parallel baseline JPEG codec
func NewCodec() *Codec {
	return &Codec{}
}

// Encode encodes pixel data using segmented parallel baseline JPEG
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	opts := DefaultOptions()
	if params.Options != nil {
		o, ok := params.Options.(*Options)
		if !ok {
			return nil, fmt.Errorf("%w: options type %T", codec.ErrInvalidParameter, params.Options)
		}
		if err := o.Validate(); err != nil {
			return nil, err
		}
		opts.Quality = o.Quality
		opts.RestartInterval = o.RestartInterval
		opts.Interleaved = o.Interleaved
	}

	enc, err := NewEncoder(params.Width, params.Height, params.Components, opts)
	if err != nil {
		return nil, err
	}
	return enc.Encode(params.PixelData)
}

// UID returns the DICOM Transfer Syntax UID for JPEG Baseline, which this
// codec's bitstream conforms to
func (c *Codec) UID() string {
	return "1.2.840.10008.1.2.4.50"
}

// Name returns the human-readable name
func (c *Codec) Name() string {
	return "jpeg-baseline-parallel"
}

// Options contains encoding options for the parallel baseline codec
type Options struct {
	codec.BaseOptions

	// RestartInterval is the number of MCUs per restart segment
	RestartInterval int

	// Interleaved selects a single interleaved scan
	Interleaved bool
}

// Validate validates the options
func (o *Options) Validate() error {
	if o.RestartInterval < 0 {
		return ErrInvalidRestartInterval
	}
	return o.BaseOptions.Validate()
}

// Register registers this codec with the global registry
func init() {
	codec.Register(NewCodec())
}
