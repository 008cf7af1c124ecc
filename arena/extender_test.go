package arena

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckGrow(t *testing.T) {
	tests := []struct {
		name    string
		cur, n  int
		limit   int
		wantErr error
	}{
		{"fits", 100, 50, 200, nil},
		{"exactly at limit", 100, 100, 200, nil},
		{"past limit", 100, 101, 200, ErrLimit},
		{"negative", 0, -1, 200, ErrBadSize},
		{"sum overflows", 4096, math.MaxInt - 64, DefaultLimit, ErrLimit},
		{"sum overflows without limit", 4096, math.MaxInt, 0, ErrLimit},
		{"no limit", 4096, 1 << 30, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkGrow(tt.cur, tt.n, tt.limit)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
