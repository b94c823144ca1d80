package parjpeg

import (
	"fmt"

	"github.com/noxer/bytewriter"

	"github.com/cocosip/go-jpeg-parallel/jpeg/common"
)

// restartMarkerBetween reports whether a restart marker separates segment
// i-1 from segment i. Markers go between consecutive segments of the same
// scan; scans themselves are separated by their own headers.
func restartMarkerBetween(segments []Segment, i int) bool {
	return i > 0 && segments[i].ScanIndex == segments[i-1].ScanIndex
}

// compactSegments concatenates the per-segment buffers into one contiguous
// payload with restart markers in the gaps, and writes each segment's
// final byte offset back into the descriptor table.
//
// Offsets are an exclusive prefix sum over the segment lengths plus the
// markers that precede each segment. The two-phase structure is mandatory:
// lengths depend on the coefficient data, so final offsets cannot exist
// until every segment has been encoded.
func compactSegments(segments []Segment, chunks [][]byte) ([]byte, error) {
	total := 0
	for i := range segments {
		if restartMarkerBetween(segments, i) {
			total += common.RestartMarkerSize
		}
		segments[i].Offset = total
		total += segments[i].Length
	}

	out := make([]byte, total)
	w := bytewriter.New(out)

	for i := range segments {
		if restartMarkerBetween(segments, i) {
			// The marker after segment n of a scan is RST(n mod 8).
			marker := common.RestartMarker(segments[i].ScanSegmentIndex - 1)
			if _, err := w.Write([]byte{byte(marker >> 8), byte(marker)}); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrOutputOverflow, err)
			}
		}
		if _, err := w.Write(chunks[i]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOutputOverflow, err)
		}
	}

	return out, nil
}

// scanPayload slices the compacted buffer down to the bytes of one scan.
func scanPayload(data []byte, segments []Segment, scan int) []byte {
	start, end := -1, -1
	for i := range segments {
		if segments[i].ScanIndex != scan {
			continue
		}
		if start < 0 {
			start = segments[i].Offset
		}
		end = segments[i].Offset + segments[i].Length
	}
	if start < 0 {
		return nil
	}
	return data[start:end]
}
