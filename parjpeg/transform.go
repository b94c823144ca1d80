package parjpeg

import "github.com/cocosip/go-jpeg-parallel/jpeg/common"

// forwardTransform runs the forward DCT and quantization over every block
// of a padded plane, producing the component's coefficient buffer: 64
// quantized coefficients per block, blocks in row-major order. This is
// the last lossy step; everything downstream is pure entropy coding.
func forwardTransform(plane []byte, comp *Component, qtable *[64]int32) []int16 {
	blocksX := comp.DataWidth / blockSize
	blocksY := comp.DataHeight / blockSize

	coefs := make([]int16, comp.DataSize)
	var coef [64]int32

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			offset := by*blockSize*comp.DataWidth + bx*blockSize
			common.DCT(plane[offset:], comp.DataWidth, coef[:])

			base := (by*blocksX + bx) * blockSamples
			for i := 0; i < blockSamples; i++ {
				q := qtable[i]
				coefs[base+i] = int16((coef[i] + q/2) / q)
			}
		}
	}

	return coefs
}
