package parjpeg

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/cocosip/go-jpeg-parallel/jpeg/common"
)

// entropyEncoder runs one independent Huffman-coding pass per segment.
// Segment passes share only read-only state (geometry, coefficients,
// tables), so they can run concurrently without any ordering constraint.
type entropyEncoder struct {
	geo    *Geometry
	coefs  [][]int16 // per component, 64 coefficients per block in block order
	types  []ComponentType
	tables *CodeTableSet
}

// encodeSegments encodes every segment concurrently and records each
// segment's byte length in the descriptor table. Returned chunks are
// indexed by segment and stay segment-local until compaction.
func (e *entropyEncoder) encodeSegments(segments []Segment) ([][]byte, error) {
	chunks := make([][]byte, len(segments))
	errs := make([]error, len(segments))

	workers := runtime.NumCPU()
	if workers > len(segments) {
		workers = len(segments)
	}

	// Workers claim segment indices from a shared atomic counter, the
	// same scheme the scan rows use in parallel WebP encoders.
	var next atomic.Int32
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= len(segments) {
					return
				}
				data, err := e.encodeSegment(&segments[i])
				if err != nil {
					errs[i] = err
					continue
				}
				chunks[i] = data
				segments[i].Length = len(data)
			}
		}()
	}
	wg.Wait()

	// Surface the first error in segment order so failures are
	// deterministic regardless of scheduling.
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}

	return chunks, nil
}

// encodeSegment produces the self-contained entropy-coded bytes of one
// segment. The DC predictors start at zero: restart marker semantics
// guarantee a decoder resets them at the segment boundary, which is what
// makes the segments codable independently.
func (e *entropyEncoder) encodeSegment(seg *Segment) ([]byte, error) {
	w := newSegmentWriter(seg.MCUCount * 2)

	var pred [MaxComponents]int

	if e.geo.Interleaved {
		for m := seg.MCUOffset; m < seg.MCUOffset+seg.MCUCount; m++ {
			mcuX := m % e.geo.mcuCols
			mcuY := m / e.geo.mcuCols
			for ci := range e.geo.Components {
				comp := &e.geo.Components[ci]
				for v := 0; v < comp.Sampling.Vertical; v++ {
					for h := 0; h < comp.Sampling.Horizontal; h++ {
						bx := mcuX*comp.Sampling.Horizontal + h
						by := mcuY*comp.Sampling.Vertical + v
						block := blockAt(e.coefs[ci], by*comp.blocksPerRow()+bx)
						if err := e.encodeBlock(w, block, e.types[ci], &pred[ci]); err != nil {
							return nil, err
						}
					}
				}
			}
		}
	} else {
		// A single-component scan walks the image MCU grid with h x v
		// blocks per MCU, skipping grid positions outside the component's
		// own block grid. Decoders count restart intervals in grid MCUs,
		// so segment boundaries must fall on them.
		ci := seg.ScanIndex
		comp := &e.geo.Components[ci]
		h := comp.Sampling.Horizontal
		v := comp.Sampling.Vertical
		cols := comp.blocksPerRow()
		rows := comp.DataHeight / blockSize
		gridCols := e.geo.mcuCols * h

		for m := seg.MCUOffset; m < seg.MCUOffset+seg.MCUCount; m++ {
			for j := 0; j < h*v; j++ {
				cand := m*h*v + j
				bx := cand % gridCols
				by := cand / gridCols
				if bx >= cols || by >= rows {
					continue
				}
				block := blockAt(e.coefs[ci], by*cols+bx)
				if err := e.encodeBlock(w, block, e.types[ci], &pred[0]); err != nil {
					return nil, err
				}
			}
		}
	}

	w.flush()
	return w.bytes(), nil
}

// blockAt returns the 64 coefficients of the given block.
func blockAt(coefs []int16, index int) []int16 {
	return coefs[index*blockSamples : (index+1)*blockSamples]
}

// encodeBlock emits the Huffman codes of one quantized 8x8 block: the DC
// difference against the running predictor, then the AC coefficients in
// zig-zag order with zero-run accumulation and an end-of-block code for
// trailing zeros.
func (e *entropyEncoder) encodeBlock(w *segmentWriter, block []int16, ct ComponentType, dcPred *int) error {
	dcCodes := e.tables.Codes(ct, TableDC)
	acCodes := e.tables.Codes(ct, TableAC)

	// DC: differential against the predictor
	dc := int(block[0])
	diff := dc - *dcPred
	*dcPred = dc

	cat, bits := common.EncodeCategory(diff)
	code := dcCodes[cat]
	if code.Len == 0 {
		return fmt.Errorf("%w: DC category %d", ErrCoefficientRange, cat)
	}
	w.writeBits(uint32(code.Code), code.Len)
	if cat > 0 {
		w.writeBits(bits, cat)
	}

	// AC: run/size coding in zig-zag order
	zeroRun := 0
	for k := 1; k < blockSamples; k++ {
		val := int(block[common.ZigZag[k]])

		if val == 0 {
			zeroRun++
			continue
		}

		for zeroRun >= 16 {
			// ZRL: a run of 16 zeros
			zrl := acCodes[0xF0]
			if zrl.Len == 0 {
				return fmt.Errorf("%w: ZRL code missing", ErrCoefficientRange)
			}
			w.writeBits(uint32(zrl.Code), zrl.Len)
			zeroRun -= 16
		}

		cat, bits := common.EncodeCategory(val)
		rs := (zeroRun << 4) | cat
		code := acCodes[rs]
		if code.Len == 0 {
			return fmt.Errorf("%w: AC run/size 0x%02X", ErrCoefficientRange, rs)
		}
		w.writeBits(uint32(code.Code), code.Len)
		w.writeBits(bits, cat)

		zeroRun = 0
	}

	if zeroRun > 0 {
		eob := acCodes[0x00]
		if eob.Len == 0 {
			return fmt.Errorf("%w: EOB code missing", ErrCoefficientRange)
		}
		w.writeBits(uint32(eob.Code), eob.Len)
	}

	return nil
}
