package parjpeg

import (
	"errors"
	"testing"

	"github.com/cocosip/go-jpeg-parallel/codec"
)

func TestParametersRoundTrip(t *testing.T) {
	p := NewParameters()

	p.SetParameter("quality", 60)
	p.SetParameter("restartInterval", 16)
	p.SetParameter("interleaved", false)
	p.SetParameter("custom", "value")

	if got := p.GetParameter("quality"); got != 60 {
		t.Errorf("quality = %v, want 60", got)
	}
	if got := p.GetParameter("restartInterval"); got != 16 {
		t.Errorf("restartInterval = %v, want 16", got)
	}
	if got := p.GetParameter("interleaved"); got != false {
		t.Errorf("interleaved = %v, want false", got)
	}
	if got := p.GetParameter("custom"); got != "value" {
		t.Errorf("custom = %v, want value", got)
	}
}

func TestParametersValidateResetsBadValues(t *testing.T) {
	p := NewParameters().WithQuality(300).WithRestartInterval(-5)

	if err := p.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if p.Quality != 85 {
		t.Errorf("quality = %d, want reset to 85", p.Quality)
	}
	if p.RestartInterval != 0 {
		t.Errorf("restartInterval = %d, want reset to 0", p.RestartInterval)
	}
}

func TestParametersToOptions(t *testing.T) {
	p := NewParameters().WithQuality(70).WithRestartInterval(4)
	opts := p.Options()

	if opts.Quality != 70 || opts.RestartInterval != 4 || !opts.Interleaved {
		t.Errorf("unexpected options: %+v", opts)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("converted options invalid: %v", err)
	}
}

func TestCodecRegistration(t *testing.T) {
	c := NewCodec()
	if c.Name() != "jpeg-baseline-parallel" {
		t.Errorf("unexpected codec name %q", c.Name())
	}
	if c.UID() == "" {
		t.Error("codec UID must not be empty")
	}
}

func TestCodecEncodeViaRegistry(t *testing.T) {
	c, err := codec.Get("jpeg-baseline-parallel")
	if err != nil {
		t.Fatalf("codec not registered: %v", err)
	}

	data, err := c.Encode(codec.EncodeParams{
		PixelData:  gradientPixels(32, 32),
		Width:      32,
		Height:     32,
		Components: 1,
		Options: &Options{
			BaseOptions:     codec.BaseOptions{Quality: 80},
			RestartInterval: 4,
			Interleaved:     true,
		},
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(data) == 0 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Error("output does not start with SOI")
	}
}

type foreignOptions struct{}

func (foreignOptions) Validate() error { return nil }

func TestCodecEncodeRejectsForeignOptions(t *testing.T) {
	_, err := NewCodec().Encode(codec.EncodeParams{
		PixelData:  gradientPixels(16, 16),
		Width:      16,
		Height:     16,
		Components: 1,
		Options:    foreignOptions{},
	})
	if !errors.Is(err, codec.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}
