package shared

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignCapacity(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{1, LineSize},
		{LineSize - 1, LineSize},
		{LineSize, LineSize},
		{LineSize + 1, 2 * LineSize},
		{1000, 1024},
		{MaxCapacity, MaxCapacity},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AlignCapacity(tt.in), "AlignCapacity(%d)", tt.in)
	}
}

func TestAlignCapacity_Overflow(t *testing.T) {
	for _, n := range []int{-1, MaxCapacity + 1, math.MaxInt} {
		require.Panics(t, func() { AlignCapacity(n) }, "AlignCapacity(%d)", n)
	}
}

func TestPoolClass(t *testing.T) {
	assert.Equal(t, 0, poolClass(LineSize))
	assert.Equal(t, 1, poolClass(2*LineSize))
	assert.Equal(t, poolClasses-1, poolClass(maxPooledCapacity))
	assert.Equal(t, -1, poolClass(maxPooledCapacity+LineSize))
	assert.Equal(t, -1, poolClass(LineSize+1))
	assert.Equal(t, -1, poolClass(0))
}
