package parjpeg

// segmentWriter packs variable-length bit codes into a segment-local byte
// buffer, applying JPEG byte stuffing: a zero byte follows every 0xFF in
// the payload so it cannot be mistaken for a marker.
type segmentWriter struct {
	out   []byte
	bits  uint32
	nBits int
}

func newSegmentWriter(sizeHint int) *segmentWriter {
	return &segmentWriter{out: make([]byte, 0, sizeHint)}
}

// writeBits appends the low n bits of bits, most significant first.
func (w *segmentWriter) writeBits(bits uint32, n int) {
	if n == 0 {
		return
	}

	w.bits = (w.bits << uint(n)) | (bits & ((1 << uint(n)) - 1))
	w.nBits += n

	for w.nBits >= 8 {
		w.writeByte(byte(w.bits >> uint(w.nBits-8)))
		w.nBits -= 8
	}
}

func (w *segmentWriter) writeByte(b byte) {
	w.out = append(w.out, b)
	if b == 0xFF {
		w.out = append(w.out, 0x00)
	}
}

// flush pads the final partial byte with 1 bits, per the JPEG convention.
func (w *segmentWriter) flush() {
	if w.nBits > 0 {
		b := byte((w.bits << uint(8-w.nBits)) | ((1 << uint(8-w.nBits)) - 1))
		w.writeByte(b)
		w.nBits = 0
		w.bits = 0
	}
}

// bytes returns the stuffed segment payload.
func (w *segmentWriter) bytes() []byte {
	return w.out
}
