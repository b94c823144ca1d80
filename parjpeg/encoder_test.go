package parjpeg

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"
)

// decodeJPEG runs the encoded stream through the standard library decoder,
// which acts as the reference decoder for round-trip checks.
func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reference decode failed: %v", err)
	}
	return img
}

func TestEncodeDecodeGrayscale(t *testing.T) {
	width, height := 64, 64
	pixel := gradientPixels(width, height)

	data, err := Encode(pixel, width, height, 1, 85)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	t.Logf("Encoded size: %d bytes (compression ratio: %.2fx)",
		len(data), float64(len(pixel))/float64(len(data)))

	img := decodeJPEG(t, data)
	bounds := img.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height {
		t.Fatalf("dimensions mismatch: got %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), width, height)
	}

	maxError := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			diff := int(pixel[y*width+x]) - int(r>>8)
			if diff < 0 {
				diff = -diff
			}
			if diff > maxError {
				maxError = diff
			}
		}
	}

	t.Logf("Maximum pixel error: %d", maxError)
	if maxError > 50 {
		t.Errorf("Maximum error too large: %d (expected <= 50)", maxError)
	}
}

func TestEncodeDecodeGrayscaleWithRestarts(t *testing.T) {
	// Segmented encoding with DC predictor resets must decode to the same
	// image a decoder that honors restart markers reconstructs.
	width, height := 128, 96
	pixel := gradientPixels(width, height)

	opts := DefaultOptions()
	opts.RestartInterval = 4

	enc, err := NewEncoder(width, height, 1, opts)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}
	data, err := enc.Encode(pixel)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	img := decodeJPEG(t, data)
	maxError := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			diff := int(pixel[y*width+x]) - int(r>>8)
			if diff < 0 {
				diff = -diff
			}
			if diff > maxError {
				maxError = diff
			}
		}
	}

	t.Logf("Maximum pixel error: %d", maxError)
	if maxError > 50 {
		t.Errorf("Maximum error too large: %d (expected <= 50)", maxError)
	}
}

func TestEncodeDecodeRGB(t *testing.T) {
	width, height := 64, 64
	pixel := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := (y*width + x) * 3
			pixel[offset+0] = byte(x * 4)
			pixel[offset+1] = byte(y * 4)
			pixel[offset+2] = byte((x + y) * 2)
		}
	}

	data, err := Encode(pixel, width, height, 3, 85)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	t.Logf("Encoded size: %d bytes (compression ratio: %.2fx)",
		len(data), float64(len(pixel))/float64(len(data)))

	img := decodeJPEG(t, data)
	maxError := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			offset := (y*width + x) * 3
			for i, got := range []int{int(r >> 8), int(g >> 8), int(b >> 8)} {
				diff := int(pixel[offset+i]) - got
				if diff < 0 {
					diff = -diff
				}
				if diff > maxError {
					maxError = diff
				}
			}
		}
	}

	t.Logf("Maximum pixel error: %d", maxError)
	// Chroma subsampling makes the error larger than the grayscale case.
	if maxError > 120 {
		t.Errorf("Maximum error too large: %d (expected <= 120)", maxError)
	}
}

func TestEncodeNonInterleaved(t *testing.T) {
	width, height := 64, 64
	pixel := make([]byte, width*height*3)
	for i := range pixel {
		pixel[i] = byte(i % 251)
	}

	opts := DefaultOptions()
	opts.Interleaved = false
	opts.RestartInterval = 8

	enc, err := NewEncoder(width, height, 3, opts)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}
	if got := enc.Geometry().ScanCount(); got != 3 {
		t.Fatalf("scan count = %d, want 3", got)
	}

	data, err := enc.Encode(pixel)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	img := decodeJPEG(t, data)
	if img.Bounds().Dx() != width || img.Bounds().Dy() != height {
		t.Errorf("dimensions mismatch: got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestEncodeNonInterleavedUnalignedBlocks(t *testing.T) {
	// 72 pixels pad to 9 luma blocks per row, one block short of the
	// 5-MCU lattice; the lattice remainder carries no coded blocks and
	// the reference decoder must still land on every restart marker.
	width, height := 72, 72
	pixel := make([]byte, width*height*3)
	for i := range pixel {
		pixel[i] = byte(i % 251)
	}

	opts := DefaultOptions()
	opts.Interleaved = false
	opts.RestartInterval = 3

	enc, err := NewEncoder(width, height, 3, opts)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	data, err := enc.Encode(pixel)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	img := decodeJPEG(t, data)
	if img.Bounds().Dx() != width || img.Bounds().Dy() != height {
		t.Errorf("dimensions mismatch: got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestEncodeInvalidParameters(t *testing.T) {
	pixel := make([]byte, 64*64)

	tests := []struct {
		name       string
		width      int
		height     int
		components int
		quality    int
		wantErr    bool
	}{
		{"Invalid width", 0, 64, 1, 85, true},
		{"Invalid height", 64, 0, 1, 85, true},
		{"Invalid components", 64, 64, 2, 85, true},
		{"Invalid quality low", 64, 64, 1, 0, true},
		{"Invalid quality high", 64, 64, 1, 101, true},
		{"Valid", 64, 64, 1, 85, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(pixel, tt.width, tt.height, tt.components, tt.quality)
			if (err != nil) != tt.wantErr {
				t.Errorf("Encode() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEncodeShortPixelBuffer(t *testing.T) {
	_, err := Encode(make([]byte, 10), 64, 64, 1, 85)
	if err == nil {
		t.Fatal("expected error for undersized pixel buffer")
	}
}

func TestQualityLevels(t *testing.T) {
	width, height := 32, 32
	pixel := gradientPixels(width, height)

	for _, quality := range []int{10, 50, 90} {
		data, err := Encode(pixel, width, height, 1, quality)
		if err != nil {
			t.Fatalf("Encode at quality %d failed: %v", quality, err)
		}
		t.Logf("Quality %d: size = %d bytes", quality, len(data))
	}
}

func BenchmarkEncodeGrayscale(b *testing.B) {
	width, height := 512, 512
	pixel := make([]byte, width*height)
	for i := range pixel {
		pixel[i] = byte(i % 256)
	}

	enc, err := NewEncoder(width, height, 1, DefaultOptions())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := enc.Encode(pixel); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeRGB(b *testing.B) {
	width, height := 512, 512
	pixel := make([]byte, width*height*3)
	for i := range pixel {
		pixel[i] = byte(i % 256)
	}

	enc, err := NewEncoder(width, height, 3, DefaultOptions())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := enc.Encode(pixel); err != nil {
			b.Fatal(err)
		}
	}
}
