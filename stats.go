package faststring

import (
	"sync/atomic"

	"go.trai.ch/faststring/internal/shared"
)

var counters struct {
	promotions atomic.Uint64
	copies     atomic.Uint64
	grows      atomic.Uint64
}

// Statistics is a snapshot of process-wide buffer activity.
type Statistics struct {
	// Allocations counts shared buffers handed out, including recycled ones.
	Allocations uint64
	// Recycled counts allocations served from a previously freed buffer.
	Recycled uint64
	// Frees counts buffers whose last owner released them.
	Frees uint64
	// Promotions counts inline values that outgrew InlineCapacity.
	Promotions uint64
	// Copies counts copy-on-write duplications of a buffer still shared.
	Copies uint64
	// Grows counts reallocations of an exclusively owned buffer.
	Grows uint64
}

// Stats returns the current counters.
func Stats() Statistics {
	s := shared.ReadStats()
	return Statistics{
		Allocations: s.Allocs,
		Recycled:    s.Reused,
		Frees:       s.Frees,
		Promotions:  counters.promotions.Load(),
		Copies:      counters.copies.Load(),
		Grows:       counters.grows.Load(),
	}
}

// Live returns the number of shared buffers currently owned by some value.
func (s Statistics) Live() int64 {
	return int64(s.Allocations) - int64(s.Frees)
}
