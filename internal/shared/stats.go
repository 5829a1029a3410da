package shared

import "sync/atomic"

// Stats is a snapshot of the process-wide block counters.
type Stats struct {
	// Allocs counts blocks handed out by New or Copy.
	Allocs uint64
	// Reused counts the subset of Allocs served from a recycled block.
	Reused uint64
	// Frees counts releases that brought a count to zero.
	Frees uint64
}

var counters struct {
	allocs atomic.Uint64
	reused atomic.Uint64
	frees  atomic.Uint64
}

// ReadStats returns the current counter values.
func ReadStats() Stats {
	return Stats{
		Allocs: counters.allocs.Load(),
		Reused: counters.reused.Load(),
		Frees:  counters.frees.Load(),
	}
}

// Live returns the number of blocks allocated and not yet freed.
func (s Stats) Live() int64 {
	return int64(s.Allocs) - int64(s.Frees)
}
