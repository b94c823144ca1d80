package common

// JPEG marker constants used by the encoder
const (
	// Start of Image
	MarkerSOI = 0xFFD8

	// End of Image
	MarkerEOI = 0xFFD9

	// Start of Frame (Baseline DCT)
	MarkerSOF0 = 0xFFC0

	// Define Huffman Table
	MarkerDHT = 0xFFC4

	// Define Quantization Table
	MarkerDQT = 0xFFDB

	// Define Restart Interval
	MarkerDRI = 0xFFDD

	// Start of Scan
	MarkerSOS = 0xFFDA

	// Restart markers
	MarkerRST0 = 0xFFD0
	MarkerRST7 = 0xFFD7
)

// RestartMarkerSize is the encoded size of a restart marker in bytes.
const RestartMarkerSize = 2

// RestartMarker returns the RSTn marker for a restart sequence number.
// The low nibble cycles 0-7 as mandated by the JPEG standard.
func RestartMarker(n int) uint16 {
	return MarkerRST0 + uint16(n&7)
}

// IsRST returns true if the marker is a Restart marker
func IsRST(marker uint16) bool {
	return marker >= MarkerRST0 && marker <= MarkerRST7
}
