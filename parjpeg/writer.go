package parjpeg

import (
	"bytes"

	"github.com/cocosip/go-jpeg-parallel/jpeg/common"
)

// writeStream wraps the compacted scan payload with the JPEG container:
// markers, table definitions and scan headers.
func (e *Encoder) writeStream(scan *ScanData) ([]byte, error) {
	var buf bytes.Buffer
	w := common.NewWriter(&buf)

	if err := w.WriteMarker(common.MarkerSOI); err != nil {
		return nil, err
	}
	if err := e.writeDQT(w); err != nil {
		return nil, err
	}
	if err := e.writeSOF0(w); err != nil {
		return nil, err
	}
	if err := e.writeDHT(w); err != nil {
		return nil, err
	}
	if err := e.writeDRI(w); err != nil {
		return nil, err
	}
	if err := e.writeScans(w, scan); err != nil {
		return nil, err
	}
	if err := w.WriteMarker(common.MarkerEOI); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// writeDQT writes Define Quantization Table segments
func (e *Encoder) writeDQT(w *common.Writer) error {
	numTables := 1
	if e.components == 3 {
		numTables = 2
	}

	for i := 0; i < numTables; i++ {
		data := make([]byte, 1+64)
		data[0] = byte(i) // Precision=0 (8-bit), Table ID=i

		// Table entries go out in zig-zag order
		for j := 0; j < 64; j++ {
			data[1+j] = byte(e.qtables[i][common.ZigZag[j]])
		}

		if err := w.WriteSegment(common.MarkerDQT, data); err != nil {
			return err
		}
	}

	return nil
}

// writeSOF0 writes Start of Frame (Baseline DCT) with the session's
// component sampling factors
func (e *Encoder) writeSOF0(w *common.Writer) error {
	data := make([]byte, 6+e.components*3)

	data[0] = 8 // Precision: 8 bits
	data[1] = byte(e.height >> 8)
	data[2] = byte(e.height)
	data[3] = byte(e.width >> 8)
	data[4] = byte(e.width)
	data[5] = byte(e.components)

	for ci := range e.geo.Components {
		s := e.geo.Components[ci].Sampling
		data[6+ci*3] = byte(ci + 1)                       // Component ID
		data[7+ci*3] = byte(s.Horizontal<<4 | s.Vertical) // Sampling factors
		data[8+ci*3] = byte(tableSlot(e.types[ci]))       // Quantization table
	}

	return w.WriteSegment(common.MarkerSOF0, data)
}

// tableSlot maps a component type to its quantization and Huffman table slot.
func tableSlot(ct ComponentType) int {
	if ct == Chrominance {
		return 1
	}
	return 0
}

// writeDHT writes Define Huffman Table segments
func (e *Encoder) writeDHT(w *common.Writer) error {
	if err := w.WriteHuffmanTable(0, 0, e.tables.Table(Luminance, TableDC)); err != nil {
		return err
	}
	if err := w.WriteHuffmanTable(1, 0, e.tables.Table(Luminance, TableAC)); err != nil {
		return err
	}

	if e.components == 3 {
		if err := w.WriteHuffmanTable(0, 1, e.tables.Table(Chrominance, TableDC)); err != nil {
			return err
		}
		if err := w.WriteHuffmanTable(1, 1, e.tables.Table(Chrominance, TableAC)); err != nil {
			return err
		}
	}

	return nil
}

// writeDRI writes the Define Restart Interval segment when restarts are
// enabled; decoders need it to expect RSTn markers in the scan.
func (e *Encoder) writeDRI(w *common.Writer) error {
	if e.opts.RestartInterval <= 0 {
		return nil
	}
	data := []byte{
		byte(e.opts.RestartInterval >> 8),
		byte(e.opts.RestartInterval),
	}
	return w.WriteSegment(common.MarkerDRI, data)
}

// writeScans writes the Start of Scan header(s) followed by the scan
// payload(s). Interleaved mode emits a single scan covering all
// components; otherwise every component gets its own scan, sliced out of
// the compacted buffer via the segment descriptor table.
func (e *Encoder) writeScans(w *common.Writer, scan *ScanData) error {
	if e.geo.Interleaved {
		if err := e.writeSOS(w, 0, e.components); err != nil {
			return err
		}
		return w.WriteBytes(scan.Data)
	}

	for ci := 0; ci < e.components; ci++ {
		if err := e.writeSOS(w, ci, 1); err != nil {
			return err
		}
		if err := w.WriteBytes(scanPayload(scan.Data, scan.Segments, ci)); err != nil {
			return err
		}
	}
	return nil
}

// writeSOS writes one Start of Scan header covering count components
// starting at component index first.
func (e *Encoder) writeSOS(w *common.Writer, first, count int) error {
	data := make([]byte, 1+count*2+3)
	data[0] = byte(count)

	for i := 0; i < count; i++ {
		ci := first + i
		tableID := tableSlot(e.types[ci])
		data[1+i*2] = byte(ci + 1)               // Component ID
		data[2+i*2] = byte(tableID<<4 | tableID) // DC/AC table IDs
	}

	// Spectral selection 0..63, no successive approximation
	data[1+count*2] = 0
	data[2+count*2] = 63
	data[3+count*2] = 0

	return w.WriteSegment(common.MarkerSOS, data)
}
