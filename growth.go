package faststring

import (
	"go.trai.ch/faststring/internal/shared"
	"go.trai.ch/zerr"
)

// grow returns the capacity for a buffer that must hold need bytes and
// currently holds capacity: half as much again, or exactly need when that is
// larger, rounded to the allocation line.
func grow(need, capacity int) int {
	target := capacity + capacity/2
	if target < capacity || target > shared.MaxCapacity {
		target = shared.MaxCapacity
	}
	return shared.AlignCapacity(max(need, target))
}

// fit returns the capacity for a fresh copy holding need bytes, applying
// the growth step only when need outgrows capacity.
func fit(need, capacity int) int {
	if need > capacity {
		return grow(need, capacity)
	}
	return shared.AlignCapacity(need)
}

// addLen returns n+m, panicking with ErrCapacityOverflow when the sum cannot
// be stored.
func addLen(n, m int) int {
	if m > shared.MaxCapacity-n {
		panic(zerr.With(zerr.With(ErrCapacityOverflow, "len", n), "append", m))
	}
	return n + m
}
