package parjpeg

import "github.com/cocosip/go-jpeg-parallel/jpeg/common"

// Preprocessing fills one padded plane per component from the source
// pixels: color conversion, chroma subsampling and edge padding. Padding
// replicates the last valid row/column so re-encoding the same input is
// bit-identical.

// rgbToYCbCr converts one RGB pixel with the fixed-point coefficients of
// the JFIF color transform.
func rgbToYCbCr(r, g, b int) (int, int, int) {
	y := (19595*r + 38470*g + 7471*b + 32768) >> 16
	cb := (-11056*r - 21712*g + 32768*b + 8421376) >> 16
	cr := (32768*r - 27440*g - 5328*b + 8421376) >> 16
	return y, cb, cr
}

// preprocess produces the padded per-component sample planes.
func (e *Encoder) preprocess(pixel []byte) [][]byte {
	maxH, maxV := 1, 1
	for _, c := range e.geo.Components {
		if c.Sampling.Horizontal > maxH {
			maxH = c.Sampling.Horizontal
		}
		if c.Sampling.Vertical > maxV {
			maxV = c.Sampling.Vertical
		}
	}

	planes := make([][]byte, len(e.geo.Components))
	for ci := range e.geo.Components {
		comp := &e.geo.Components[ci]
		plane := make([]byte, comp.DataSize)

		for y := 0; y < comp.DataHeight; y++ {
			// Map the component sample back to source coordinates,
			// clamping into the image so padded samples replicate the
			// last valid row/column.
			srcY := y * maxV / comp.Sampling.Vertical
			if srcY >= e.height {
				srcY = e.height - 1
			}
			for x := 0; x < comp.DataWidth; x++ {
				srcX := x * maxH / comp.Sampling.Horizontal
				if srcX >= e.width {
					srcX = e.width - 1
				}

				var sample int
				if e.components == 1 {
					sample = int(pixel[srcY*e.width+srcX])
				} else {
					offset := (srcY*e.width + srcX) * 3
					r := int(pixel[offset+0])
					g := int(pixel[offset+1])
					b := int(pixel[offset+2])
					yy, cb, cr := rgbToYCbCr(r, g, b)
					switch ci {
					case 0:
						sample = yy
					case 1:
						sample = cb
					default:
						sample = cr
					}
				}

				plane[y*comp.DataWidth+x] = byte(common.Clamp(sample, 0, 255))
			}
		}

		planes[ci] = plane
	}

	return planes
}
