package common

import "errors"

// Common errors
var (
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	ErrInvalidComponents = errors.New("invalid number of components")
	ErrInvalidQuality    = errors.New("invalid quality factor")
	ErrBufferTooSmall    = errors.New("buffer too small")
)
