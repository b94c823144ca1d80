package parjpeg

import "errors"

// Configuration errors are detected before any parallel work starts;
// encoding-data errors abort the encode call that hit them.
var (
	ErrInvalidSamplingFactor  = errors.New("invalid sampling factor")
	ErrTooManyComponents      = errors.New("too many color components")
	ErrInvalidRestartInterval = errors.New("invalid restart interval")
	ErrZeroMCUSize            = errors.New("computed MCU size is zero")
	ErrMissingCodeTable       = errors.New("missing Huffman code table")
	ErrCoefficientRange       = errors.New("coefficient outside code table range")
	ErrOutputOverflow         = errors.New("compacted output buffer overflow")
)
