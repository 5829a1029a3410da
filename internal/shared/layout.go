package shared

import (
	"math"

	"go.trai.ch/zerr"
)

const (
	// LineSize is the allocation granularity of payload capacity.
	LineSize = 64

	// maxPooledCapacity bounds the blocks kept for reuse after their last
	// release.
	maxPooledCapacity = 64 * 1024

	// MaxCapacity is the largest payload a block can carry.
	MaxCapacity = (math.MaxInt - HeaderSize) &^ (LineSize - 1)
)

var (
	// ErrCapacityOverflow is raised when a requested capacity cannot be represented.
	ErrCapacityOverflow = zerr.New("buffer capacity overflow")

	// ErrInvalidCapacity is raised when a block is requested with a non-positive capacity.
	ErrInvalidCapacity = zerr.New("invalid buffer capacity")

	// ErrOverRelease is raised when a handle is released more times than it was acquired.
	ErrOverRelease = zerr.New("buffer released more times than acquired")

	// ErrLayoutMismatch is raised when a block is released with a capacity other than the one it was allocated with.
	ErrLayoutMismatch = zerr.New("buffer released with mismatched capacity")
)

// AlignCapacity rounds n up to a multiple of LineSize.
// It panics with ErrCapacityOverflow when the result would exceed MaxCapacity.
func AlignCapacity(n int) int {
	if n < 0 || n > MaxCapacity {
		panic(zerr.With(ErrCapacityOverflow, "capacity", n))
	}
	return (n + LineSize - 1) &^ (LineSize - 1)
}

// poolClass maps a capacity to its recycling class, or -1 when blocks of
// that size are left to the garbage collector.
func poolClass(capacity int) int {
	if capacity <= 0 || capacity > maxPooledCapacity || capacity%LineSize != 0 {
		return -1
	}
	return capacity/LineSize - 1
}

const poolClasses = maxPooledCapacity / LineSize
