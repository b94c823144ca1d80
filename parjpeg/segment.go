package parjpeg

// Segment describes one independently coded run of consecutive MCUs.
// The descriptor is written in two strictly separate phases: Length by the
// entropy encoder, Offset by the stream compactor. Both are immutable once
// written.
type Segment struct {
	// ScanIndex identifies the scan this segment belongs to (always 0 in
	// interleaved mode)
	ScanIndex int

	// ScanSegmentIndex is the segment's position within its scan; it
	// drives restart marker numbering
	ScanSegmentIndex int

	// MCUOffset and MCUCount delimit the segment's MCUs within its scan
	MCUOffset int
	MCUCount  int

	// Offset of this segment's bytes within the compacted output buffer;
	// filled by the stream compactor
	Offset int

	// Length of this segment's entropy-coded bytes; filled by the
	// entropy encoder
	Length int
}

// Segments allocates the segment descriptor table for one encode call,
// in scan order. Segment order is the only ordering invariant of the
// pipeline: it fixes both restart marker placement and compacted layout.
func (g *Geometry) Segments() []Segment {
	segments := make([]Segment, 0, g.SegmentCount)

	for scan := 0; scan < g.ScanCount(); scan++ {
		mcuCount := g.scanMCUCount(scan)
		interval := g.RestartInterval
		if interval <= 0 {
			interval = mcuCount
		}

		for i := 0; i < segmentsPerScan(mcuCount, g.RestartInterval); i++ {
			offset := i * interval
			count := interval
			if offset+count > mcuCount {
				count = mcuCount - offset
			}
			segments = append(segments, Segment{
				ScanIndex:        scan,
				ScanSegmentIndex: i,
				MCUOffset:        offset,
				MCUCount:         count,
			})
		}
	}

	return segments
}
