package alloc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/internal/format"
)

func TestSizeClasses_Balanced(t *testing.T) {
	table := newSizeClassTable(ClassesBalanced)

	// 30 linear classes + 1K, 2K, 4K, 8K, 16K.
	require.Equal(t, 35, table.numClasses())

	tests := []struct {
		size  int
		class int
	}{
		{32, 0},
		{47, 0},
		{48, 1},
		{496, 29},
		{511, 29},
		{512, 30},
		{1023, 30},
		{1024, 31},
		{16383, 34},
		{16384, 35},
		{1 << 30, 35},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.class, table.classOf(tt.size), "size %d", tt.size)
	}

	assert.Equal(t, 47, table.ceiling(0))
	assert.Equal(t, math.MaxInt, table.ceiling(table.numClasses()))
}

func TestSizeClasses_EveryBlockSizeHasOneClass(t *testing.T) {
	for _, cfg := range []SizeClassConfig{ClassesFine, ClassesBalanced, ClassesPowerOfTwo} {
		t.Run(cfg.Name, func(t *testing.T) {
			require.NoError(t, cfg.Validate())
			table := newSizeClassTable(cfg)

			prev := 0
			for size := format.MinBlockSize; size <= 2*cfg.MediumMax; size += format.Alignment {
				c := table.classOf(size)
				require.GreaterOrEqual(t, c, prev, "classes must be monotonic")
				require.LessOrEqual(t, size, table.ceiling(c))
				if c > 0 {
					require.Greater(t, size, table.ceiling(c-1))
				}
				prev = c
			}
		})
	}
}

func TestSizeClasses_Validate(t *testing.T) {
	bad := []SizeClassConfig{
		{Name: "small min", SmallMin: 8, SmallMax: 64, SmallIncrement: 8, MediumMax: 128, GrowthFactor: 2},
		{Name: "no step", SmallMin: 32, SmallMax: 64, SmallIncrement: 0, MediumMax: 128, GrowthFactor: 2},
		{Name: "inverted", SmallMin: 64, SmallMax: 32, SmallIncrement: 8, MediumMax: 128, GrowthFactor: 2},
		{Name: "medium", SmallMin: 32, SmallMax: 64, SmallIncrement: 8, MediumMax: 48, GrowthFactor: 2},
		{Name: "flat growth", SmallMin: 32, SmallMax: 64, SmallIncrement: 8, MediumMax: 128, GrowthFactor: 1},
	}
	for _, cfg := range bad {
		require.Error(t, cfg.Validate(), cfg.Name)
	}
}
