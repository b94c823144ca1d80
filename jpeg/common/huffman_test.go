package common

import "testing"

func TestDeriveCodesCanonical(t *testing.T) {
	table := NewHuffmanTable(StandardDCLuminanceBits, StandardDCLuminanceValues)
	codes := table.DeriveCodes()

	// Every listed symbol gets a code of the length its Bits slot claims.
	p := 0
	for l := 0; l < 16; l++ {
		for i := 0; i < table.Bits[l]; i++ {
			symbol := table.Values[p]
			if codes[symbol].Len != l+1 {
				t.Errorf("symbol %d: code length = %d, want %d", symbol, codes[symbol].Len, l+1)
			}
			p++
		}
	}

	// Symbols absent from the table stay length zero.
	if codes[200].Len != 0 {
		t.Errorf("unlisted symbol got code length %d", codes[200].Len)
	}
}

func TestDeriveCodesPrefixFree(t *testing.T) {
	table := NewHuffmanTable(StandardACLuminanceBits, StandardACLuminanceValues)
	codes := table.DeriveCodes()

	// No code may be a prefix of a longer one.
	for a := 0; a < 256; a++ {
		if codes[a].Len == 0 {
			continue
		}
		for b := 0; b < 256; b++ {
			if a == b || codes[b].Len <= codes[a].Len {
				continue
			}
			prefix := codes[b].Code >> uint(codes[b].Len-codes[a].Len)
			if prefix == codes[a].Code {
				t.Fatalf("code of symbol %d is a prefix of symbol %d", a, b)
			}
		}
	}
}

func TestEncodeCategory(t *testing.T) {
	tests := []struct {
		val      int
		wantCat  int
		wantBits uint32
	}{
		{0, 0, 0},
		{1, 1, 1},
		{-1, 1, 0},
		{2, 2, 2},
		{3, 2, 3},
		{-3, 2, 0},
		{-2, 2, 1},
		{255, 8, 255},
		{-255, 8, 0},
		{1023, 10, 1023},
		{-1024, 11, 1023},
	}

	for _, tt := range tests {
		cat, bits := EncodeCategory(tt.val)
		if cat != tt.wantCat || bits != tt.wantBits {
			t.Errorf("EncodeCategory(%d) = (%d, %d), want (%d, %d)",
				tt.val, cat, bits, tt.wantCat, tt.wantBits)
		}
	}
}

func TestScaleQuantTableBounds(t *testing.T) {
	for _, quality := range []int{1, 25, 50, 75, 100} {
		scaled := ScaleQuantTable(DefaultLuminanceQuantTable, quality)
		for i, v := range scaled {
			if v < 1 || v > 255 {
				t.Fatalf("quality %d: entry %d out of range: %d", quality, i, v)
			}
		}
	}

	// Quality 50 leaves the table unscaled.
	scaled := ScaleQuantTable(DefaultLuminanceQuantTable, 50)
	if scaled != DefaultLuminanceQuantTable {
		t.Error("quality 50 must not change the table")
	}
}

func TestRestartMarkerCycling(t *testing.T) {
	for n := 0; n < 20; n++ {
		marker := RestartMarker(n)
		if !IsRST(marker) {
			t.Fatalf("RestartMarker(%d) = 0x%04X is not a restart marker", n, marker)
		}
		if marker != MarkerRST0+uint16(n%8) {
			t.Errorf("RestartMarker(%d) = 0x%04X, want 0x%04X", n, marker, MarkerRST0+uint16(n%8))
		}
	}
}
