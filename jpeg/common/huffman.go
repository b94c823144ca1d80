package common

// HuffmanTable represents a canonical Huffman coding table in the form it
// appears in a DHT segment.
type HuffmanTable struct {
	// Number of codes of each length (1-16 bits)
	Bits [16]int
	// Values for each code, in order of code length
	Values []byte
}

// NewHuffmanTable creates a table from DHT-style bit counts and values.
func NewHuffmanTable(bits [16]int, values []byte) *HuffmanTable {
	return &HuffmanTable{Bits: bits, Values: values}
}

// HuffmanCode represents a single derived Huffman code
type HuffmanCode struct {
	Code uint16 // The Huffman code
	Len  int    // Code length in bits; 0 means the symbol has no code
}

// DeriveCodes expands the canonical table into a 256-entry symbol-indexed
// code array. Symbols absent from the table are left with a zero length.
func (h *HuffmanTable) DeriveCodes() []HuffmanCode {
	codes := make([]HuffmanCode, 256)

	code := uint16(0)
	p := 0

	for l := 0; l < 16; l++ {
		for i := 0; i < h.Bits[l]; i++ {
			if p >= len(h.Values) {
				return codes
			}
			codes[h.Values[p]] = HuffmanCode{
				Code: code,
				Len:  l + 1,
			}
			code++
			p++
		}
		code <<= 1
	}

	return codes
}

// EncodeCategory computes the magnitude category and value bits for a
// coefficient. Category is the number of bits needed to represent the
// magnitude; negative values are encoded in one's complement form.
func EncodeCategory(val int) (cat int, bits uint32) {
	if val == 0 {
		return 0, 0
	}

	absVal := val
	if absVal < 0 {
		absVal = -absVal
	}

	cat = 1
	for (1 << uint(cat)) <= absVal {
		cat++
	}

	if val > 0 {
		bits = uint32(val)
	} else {
		bits = uint32((1 << uint(cat)) + val - 1)
	}

	return cat, bits
}
