package parjpeg

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/cocosip/go-jpeg-parallel/jpeg/common"
)

const (
	// blockSize is the edge length of a coded block in samples
	blockSize = 8
	// blockSamples is the number of samples in one coded block
	blockSamples = blockSize * blockSize

	// MaxComponents is the maximum number of color components supported
	MaxComponents = 3
	// maxSamplingFactor bounds each axis of a component sampling factor
	maxSamplingFactor = 4
)

// SamplingFactor describes a component's horizontal and vertical sampling
// ratio relative to the highest-resolution component.
type SamplingFactor struct {
	Horizontal int
	Vertical   int
}

// Component describes the geometry of a single color component.
// Immutable once the geometry is resolved.
type Component struct {
	Sampling SamplingFactor

	// Real component dimensions in samples
	Width  int
	Height int

	// Allocated dimensions, padded to the block (and, in interleaved mode,
	// MCU) granularity
	DataWidth  int
	DataHeight int
	DataSize   int

	// Minimum coded unit size and count for this component's scan
	MCUSize  int
	MCUCount int

	// Number of independently codable segments in this component's scan
	SegmentCount int
}

// blocksPerRow returns the number of 8x8 blocks per padded row.
func (c *Component) blocksPerRow() int {
	return c.DataWidth / blockSize
}

// Geometry is the resolved segmentation plan for one encoding session.
// Immutable once computed.
type Geometry struct {
	Width           int
	Height          int
	Interleaved     bool
	RestartInterval int

	Components []Component

	// MCU size and count of the image MCU grid. Every scan walks the same
	// grid: an interleaved MCU holds all components' blocks, a
	// single-component scan's MCU holds that component's h x v blocks.
	MCUSize  int
	MCUCount int

	// MCU grid dimensions
	mcuCols int
	mcuRows int

	// Total segment count across all scans
	SegmentCount int
}

// ScanCount returns the number of scans the plan produces: one for an
// interleaved stream, one per component otherwise.
func (g *Geometry) ScanCount() int {
	if g.Interleaved {
		return 1
	}
	return len(g.Components)
}

// scanMCUCount returns the MCU count of the given scan.
func (g *Geometry) scanMCUCount(scan int) int {
	if g.Interleaved {
		return g.MCUCount
	}
	return g.Components[scan].MCUCount
}

// segmentsPerScan returns how many segments a scan of mcuCount MCUs is
// split into. A restart interval of 0 disables restarts: the whole scan is
// a single segment.
func segmentsPerScan(mcuCount, restartInterval int) int {
	if restartInterval <= 0 {
		return 1
	}
	return common.DivCeil(mcuCount, restartInterval)
}

// ResolveGeometry computes component descriptors and the segmentation plan
// from image dimensions, per-component sampling factors and the restart
// interval. Configuration faults are aggregated so the caller sees every
// problem at once.
func ResolveGeometry(width, height int, sampling []SamplingFactor, restartInterval int, interleaved bool) (*Geometry, error) {
	var errs *multierror.Error

	if width <= 0 || height <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("%w: %dx%d", common.ErrInvalidDimensions, width, height))
	}
	if len(sampling) == 0 {
		errs = multierror.Append(errs, common.ErrInvalidComponents)
	}
	if len(sampling) > MaxComponents {
		errs = multierror.Append(errs, fmt.Errorf("%w: %d components, maximum is %d",
			ErrTooManyComponents, len(sampling), MaxComponents))
	}
	if restartInterval < 0 {
		errs = multierror.Append(errs, fmt.Errorf("%w: %d", ErrInvalidRestartInterval, restartInterval))
	}
	for i, s := range sampling {
		if s.Horizontal < 1 || s.Horizontal > maxSamplingFactor ||
			s.Vertical < 1 || s.Vertical > maxSamplingFactor {
			errs = multierror.Append(errs, fmt.Errorf("%w: component %d has factor %dx%d",
				ErrInvalidSamplingFactor, i, s.Horizontal, s.Vertical))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	maxH, maxV := 1, 1
	for _, s := range sampling {
		if s.Horizontal > maxH {
			maxH = s.Horizontal
		}
		if s.Vertical > maxV {
			maxV = s.Vertical
		}
	}

	g := &Geometry{
		Width:           width,
		Height:          height,
		Interleaved:     interleaved,
		RestartInterval: restartInterval,
		Components:      make([]Component, len(sampling)),
	}

	// The MCU grid covers maxH x maxV blocks of the highest-resolution
	// component per cell and is shared by every scan.
	g.mcuCols = common.DivCeil(width, blockSize*maxH)
	g.mcuRows = common.DivCeil(height, blockSize*maxV)
	g.MCUCount = g.mcuCols * g.mcuRows

	if interleaved {
		// Padding rounds each component up to the MCU lattice so
		// MCU count * MCU size covers the padded area exactly.
		for i, s := range sampling {
			c := &g.Components[i]
			c.Sampling = s
			c.Width = common.DivCeil(width*s.Horizontal, maxH)
			c.Height = common.DivCeil(height*s.Vertical, maxV)
			c.DataWidth = g.mcuCols * blockSize * s.Horizontal
			c.DataHeight = g.mcuRows * blockSize * s.Vertical
			c.DataSize = c.DataWidth * c.DataHeight
			c.MCUSize = blockSamples * s.Horizontal * s.Vertical
			c.MCUCount = g.MCUCount
			c.SegmentCount = segmentsPerScan(g.MCUCount, restartInterval)
			g.MCUSize += c.MCUSize
		}
		g.SegmentCount = segmentsPerScan(g.MCUCount, restartInterval)
	} else {
		// One scan per component; each component is padded to the block
		// granularity. Restart intervals still count MCUs on the image MCU
		// grid: a single-component scan's restart unit spans h x v blocks
		// of that component, which is what decoders check against DRI.
		for i, s := range sampling {
			c := &g.Components[i]
			c.Sampling = s
			c.Width = common.DivCeil(width*s.Horizontal, maxH)
			c.Height = common.DivCeil(height*s.Vertical, maxV)
			c.DataWidth = common.DivCeil(c.Width, blockSize) * blockSize
			c.DataHeight = common.DivCeil(c.Height, blockSize) * blockSize
			c.DataSize = c.DataWidth * c.DataHeight
			c.MCUSize = blockSamples * s.Horizontal * s.Vertical
			c.MCUCount = g.MCUCount
			c.SegmentCount = segmentsPerScan(g.MCUCount, restartInterval)
			g.MCUSize += c.MCUSize
			g.SegmentCount += c.SegmentCount
		}
	}

	if g.MCUSize == 0 || g.MCUCount == 0 {
		return nil, ErrZeroMCUSize
	}

	return g, nil
}
