package parjpeg

import (
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
)

// Ensure Parameters implements codec.Parameters
var _ codec.Parameters = (*Parameters)(nil)

// Parameters contains parameters for parallel baseline JPEG compression
type Parameters struct {
	// Quality controls the JPEG compression quality (1-100)
	Quality int

	// RestartInterval is the number of MCUs per restart segment; higher
	// values mean fewer, larger segments and less parallelism
	RestartInterval int

	// Interleaved selects a single interleaved scan instead of one scan
	// per component
	Interleaved bool

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewParameters creates Parameters with default values
func NewParameters() *Parameters {
	return &Parameters{
		Quality:         85,
		RestartInterval: 8,
		Interleaved:     true,
		params:          make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *Parameters) GetParameter(name string) interface{} {
	switch name {
	case "quality":
		return p.Quality
	case "restartInterval":
		return p.RestartInterval
	case "interleaved":
		return p.Interleaved
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *Parameters) SetParameter(name string, value interface{}) {
	switch name {
	case "quality":
		if v, ok := value.(int); ok {
			p.Quality = v
		}
	case "restartInterval":
		if v, ok := value.(int); ok {
			p.RestartInterval = v
		}
	case "interleaved":
		if v, ok := value.(bool); ok {
			p.Interleaved = v
		}
	default:
		p.params[name] = value
	}
}

// Validate checks if the parameters are valid
func (p *Parameters) Validate() error {
	if p.Quality < 1 || p.Quality > 100 {
		p.Quality = 85
	}
	if p.RestartInterval < 0 {
		p.RestartInterval = 0
	}
	return nil
}

// WithQuality sets the quality and returns the parameters for chaining
func (p *Parameters) WithQuality(quality int) *Parameters {
	p.Quality = quality
	return p
}

// WithRestartInterval sets the restart interval and returns the
// parameters for chaining
func (p *Parameters) WithRestartInterval(interval int) *Parameters {
	p.RestartInterval = interval
	return p
}

// Options converts the parameters to encoder options.
func (p *Parameters) Options() EncoderOptions {
	return EncoderOptions{
		Quality:         p.Quality,
		RestartInterval: p.RestartInterval,
		Interleaved:     p.Interleaved,
	}
}
