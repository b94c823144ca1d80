package common

import (
	"encoding/binary"
	"io"
)

// Writer provides utilities for writing JPEG data
type Writer struct {
	w   io.Writer
	buf [2]byte
}

// NewWriter creates a new JPEG writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteUint16 writes a 16-bit big-endian value
func (w *Writer) WriteUint16(v uint16) error {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	_, err := w.w.Write(w.buf[:2])
	return err
}

// WriteMarker writes a JPEG marker
func (w *Writer) WriteMarker(marker uint16) error {
	return w.WriteUint16(marker)
}

// WriteSegment writes a marker segment with its length field
// The length field is automatically calculated and includes itself (2 bytes)
func (w *Writer) WriteSegment(marker uint16, data []byte) error {
	if err := w.WriteMarker(marker); err != nil {
		return err
	}

	length := uint16(len(data) + 2)
	if err := w.WriteUint16(length); err != nil {
		return err
	}

	_, err := w.w.Write(data)
	return err
}

// WriteBytes writes raw bytes
func (w *Writer) WriteBytes(data []byte) error {
	_, err := w.w.Write(data)
	return err
}

// WriteHuffmanTable writes a Huffman table as a DHT segment
// class: 0 for DC, 1 for AC
func (w *Writer) WriteHuffmanTable(class, id byte, table *HuffmanTable) error {
	totalValues := 0
	for _, count := range table.Bits {
		totalValues += count
	}

	data := make([]byte, 1+16+totalValues)
	data[0] = (class << 4) | id

	for i := 0; i < 16; i++ {
		data[1+i] = byte(table.Bits[i])
	}

	copy(data[17:], table.Values)

	return w.WriteSegment(MarkerDHT, data)
}
