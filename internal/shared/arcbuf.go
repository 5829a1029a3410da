//go:build faststring_arcbuf

package shared

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"go.trai.ch/zerr"
)

// HeaderSize is zero: the control block lives in its own allocation.
const HeaderSize = 0

type block struct {
	refs     atomic.Int64
	capacity int
	data     []byte
}

// Handle refers to a control block. The zero Handle refers to nothing.
type Handle struct {
	b *block
}

var _ [1]struct{} = [unsafe.Sizeof(Handle{}) / unsafe.Sizeof(uintptr(0))]struct{}{}

var pools [poolClasses]sync.Pool

// New allocates a block able to hold capacity bytes, owned once.
func New(capacity int) Handle {
	if capacity <= 0 {
		panic(zerr.With(ErrInvalidCapacity, "capacity", capacity))
	}
	if capacity > MaxCapacity {
		panic(zerr.With(ErrCapacityOverflow, "capacity", capacity))
	}
	counters.allocs.Add(1)

	var b *block
	if class := poolClass(capacity); class >= 0 {
		if recycled, ok := pools[class].Get().(*block); ok {
			counters.reused.Add(1)
			b = recycled
		}
	}
	if b == nil {
		b = &block{data: make([]byte, capacity)}
	}
	b.refs.Store(1)
	b.capacity = capacity
	return Handle{b: b}
}

// IsZero reports whether h refers to no block.
func (h Handle) IsZero() bool {
	return h.b == nil
}

// Acquire registers one more owner and returns a handle aliasing the same bytes.
func (h Handle) Acquire() Handle {
	h.b.refs.Add(1)
	return h
}

// Release drops one owner. It reports whether this was the last owner, in
// which case the block has been recycled and h must not be used again.
func (h Handle) Release(capacity int) bool {
	n := h.b.refs.Add(-1)
	if n > 0 {
		return false
	}
	if n < 0 {
		panic(zerr.With(ErrOverRelease, "refs", n))
	}
	if h.b.capacity != capacity {
		panic(zerr.With(zerr.With(ErrLayoutMismatch, "recorded", h.b.capacity), "released", capacity))
	}
	counters.frees.Add(1)
	if class := poolClass(capacity); class >= 0 {
		pools[class].Put(h.b)
	}
	return true
}

// Refs returns the current number of owners.
func (h Handle) Refs() int64 {
	return h.b.refs.Load()
}

// Capacity returns the capacity the block was allocated with.
func (h Handle) Capacity() int {
	return h.b.capacity
}

// Exclusive reports whether the caller is the only owner.
func (h Handle) Exclusive() bool {
	return h.b.refs.Load() == 1
}

// TryExclusive returns the writable payload when the caller is the only owner.
func (h Handle) TryExclusive(capacity int) ([]byte, bool) {
	if !h.Exclusive() {
		return nil, false
	}
	return h.b.data[:capacity], true
}

// View returns the first n payload bytes as a string aliasing the block.
func (h Handle) View(n int) string {
	return unsafe.String(unsafe.SliceData(h.b.data), n)
}

// Bytes returns the first n payload bytes. The slice aliases the block.
func (h Handle) Bytes(n int) []byte {
	return h.b.data[:n:n]
}

// Extend copies s into the payload at offset.
func (h Handle) Extend(offset int, s string) {
	copy(h.b.data[offset:offset+len(s)], s)
}

// Copy allocates a block of the given capacity holding the first length
// bytes of h. The receiver stays valid until the caller releases it.
func (h Handle) Copy(length, capacity int) Handle {
	dup := New(capacity)
	copy(dup.b.data, h.b.data[:length])
	return dup
}

// Shift moves the payload bytes [next, length) down to at.
func (h Handle) Shift(at, next, length int) {
	copy(h.b.data[at:length], h.b.data[next:length])
}
