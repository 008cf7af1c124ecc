package alloc

import (
	"fmt"
	"math"

	"github.com/joshuapare/arenakit/internal/format"
)

// SizeClassConfig defines the bucket layout of the free-space directory.
//
// Classes start with linear steps for small blocks, where most requests land
// and internal fragmentation matters most, then grow geometrically up to
// MediumMax. Blocks above the last ceiling live on the oversized list.
type SizeClassConfig struct {
	// Name for this configuration (for benchmarking and stats output)
	Name string

	// Small block settings (linear increments)
	SmallMin       int // Smallest block size (MinBlockSize)
	SmallMax       int // Upper end of the linear range
	SmallIncrement int // Linear step

	// Medium block settings (geometric growth)
	MediumMax    int     // Ceiling of the last class; larger blocks are oversized
	GrowthFactor float64 // Geometric step between medium classes
}

// Predefined configurations.
var (
	// ClassesFine: step 8 up to 512 (60 classes) + 512-64K at 1.5x (~12 classes).
	ClassesFine = SizeClassConfig{
		Name:           "Fine",
		SmallMin:       format.MinBlockSize,
		SmallMax:       512,
		SmallIncrement: 8,
		MediumMax:      64 * 1024,
		GrowthFactor:   1.5,
	}

	// ClassesBalanced: step 16 up to 512 (30 classes) + 512-16K at 2x (5 classes).
	ClassesBalanced = SizeClassConfig{
		Name:           "Balanced",
		SmallMin:       format.MinBlockSize,
		SmallMax:       512,
		SmallIncrement: 16,
		MediumMax:      16 * 1024,
		GrowthFactor:   2.0,
	}

	// ClassesPowerOfTwo: one class per doubling from 32 bytes to 1 MiB.
	ClassesPowerOfTwo = SizeClassConfig{
		Name:           "PowerOfTwo",
		SmallMin:       format.MinBlockSize,
		SmallMax:       format.MinBlockSize,
		SmallIncrement: format.Alignment,
		MediumMax:      1 << 20,
		GrowthFactor:   2.0,
	}

	// DefaultClasses is used when a Config leaves Classes empty.
	DefaultClasses = ClassesBalanced
)

// Validate checks that the configuration produces a usable table.
func (c SizeClassConfig) Validate() error {
	switch {
	case c.SmallMin < format.MinBlockSize:
		return fmt.Errorf("size classes %q: SmallMin %d below minimum block %d", c.Name, c.SmallMin, format.MinBlockSize)
	case c.SmallIncrement <= 0:
		return fmt.Errorf("size classes %q: SmallIncrement must be positive", c.Name)
	case c.SmallMax < c.SmallMin:
		return fmt.Errorf("size classes %q: SmallMax %d below SmallMin %d", c.Name, c.SmallMax, c.SmallMin)
	case c.MediumMax < c.SmallMax:
		return fmt.Errorf("size classes %q: MediumMax %d below SmallMax %d", c.Name, c.MediumMax, c.SmallMax)
	case c.MediumMax > c.SmallMax && c.GrowthFactor <= 1:
		return fmt.Errorf("size classes %q: GrowthFactor must exceed 1", c.Name)
	}
	return nil
}

func (c SizeClassConfig) isZero() bool {
	return c.SmallIncrement == 0 && c.SmallMax == 0 && c.MediumMax == 0
}

// sizeClassTable holds the computed class ceilings.
type sizeClassTable struct {
	config     SizeClassConfig
	boundaries []int // Inclusive upper bound of each class
}

// newSizeClassTable computes class ceilings from config.
func newSizeClassTable(config SizeClassConfig) *sizeClassTable {
	table := &sizeClassTable{
		config:     config,
		boundaries: make([]int, 0, 64),
	}

	// Phase 1: linear
	for size := config.SmallMin; size < config.SmallMax; size += config.SmallIncrement {
		table.boundaries = append(table.boundaries, size+config.SmallIncrement-1)
	}

	// Phase 2: geometric
	size := config.SmallMax
	for size < config.MediumMax {
		nextSize := int(math.Ceil(float64(size) * config.GrowthFactor))
		if nextSize <= size {
			nextSize = size + 1
		}
		table.boundaries = append(table.boundaries, nextSize-1)
		size = nextSize
	}

	return table
}

// classOf returns the class index for a block size. Sizes above every
// ceiling map to numClasses(), the oversized list.
func (t *sizeClassTable) classOf(size int) int {
	lo, hi := 0, len(t.boundaries)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		if size <= t.boundaries[mid] {
			if mid == 0 || size > t.boundaries[mid-1] {
				return mid
			}
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	return len(t.boundaries)
}

// numClasses returns the number of bounded classes (excluding oversized).
func (t *sizeClassTable) numClasses() int { return len(t.boundaries) }

// ceiling returns the inclusive upper bound of class c, or math.MaxInt for
// the oversized list.
func (t *sizeClassTable) ceiling(c int) int {
	if c >= len(t.boundaries) {
		return math.MaxInt
	}
	return t.boundaries[c]
}

// String returns the configuration name.
func (t *sizeClassTable) String() string {
	return t.config.Name
}
