//go:build !faststring_arcbuf

package shared

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"go.trai.ch/zerr"
)

// header sits at the start of every block, HeaderSize bytes before the
// payload the handle points at.
type header struct {
	refs     atomic.Int64
	capacity int
}

// HeaderSize is the distance between the start of a block and its payload.
// It spans a full cache line, so the count and the text never share a line.
const HeaderSize = max(LineSize, int(unsafe.Sizeof(header{})))

// Handle refers to the payload of a block. The zero Handle refers to nothing.
type Handle struct {
	p unsafe.Pointer
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

	var hdr *header
	if class := poolClass(capacity); class >= 0 {
		if recycled, ok := pools[class].Get().(*header); ok {
			counters.reused.Add(1)
			hdr = recycled
		}
	}
	if hdr == nil {
		// A []uint64 backing keeps the count 8-byte aligned.
		words := make([]uint64, (HeaderSize+capacity+7)/8)
		hdr = (*header)(unsafe.Pointer(unsafe.SliceData(words)))
	}
	hdr.refs.Store(1)
	hdr.capacity = capacity
	return Handle{p: unsafe.Add(unsafe.Pointer(hdr), HeaderSize)}
}

// header is the only place that derives the block start from a handle.
func (h Handle) header() *header {
	return (*header)(unsafe.Add(h.p, -HeaderSize))
}

// IsZero reports whether h refers to no block.
func (h Handle) IsZero() bool {
	return h.p == nil
}

// Acquire registers one more owner and returns a handle aliasing the same bytes.
func (h Handle) Acquire() Handle {
	h.header().refs.Add(1)
	return h
}

// Release drops one owner. It reports whether this was the last owner, in
// which case the block has been recycled and h must not be used again.
func (h Handle) Release(capacity int) bool {
	hdr := h.header()
	n := hdr.refs.Add(-1)
	if n > 0 {
		return false
	}
	if n < 0 {
		panic(zerr.With(ErrOverRelease, "refs", n))
	}
	if hdr.capacity != capacity {
		panic(zerr.With(zerr.With(ErrLayoutMismatch, "recorded", hdr.capacity), "released", capacity))
	}
	counters.frees.Add(1)
	if class := poolClass(capacity); class >= 0 {
		pools[class].Put(hdr)
	}
	return true
}

// Refs returns the current number of owners.
func (h Handle) Refs() int64 {
	return h.header().refs.Load()
}

// Capacity returns the capacity the block was allocated with.
func (h Handle) Capacity() int {
	return h.header().capacity
}

// Exclusive reports whether the caller is the only owner.
// Writing through h is legal only after it returned true.
func (h Handle) Exclusive() bool {
	return h.header().refs.Load() == 1
}

// TryExclusive returns the writable payload when the caller is the only owner.
func (h Handle) TryExclusive(capacity int) ([]byte, bool) {
	if !h.Exclusive() {
		return nil, false
	}
	return h.slice(capacity), true
}

// View returns the first n payload bytes as a string aliasing the block.
func (h Handle) View(n int) string {
	return unsafe.String((*byte)(h.p), n)
}

// Bytes returns the first n payload bytes. The slice aliases the block.
func (h Handle) Bytes(n int) []byte {
	return h.slice(n)[:n:n]
}

// Extend copies s into the payload at offset. The caller guarantees both
// exclusivity and room for offset+len(s) bytes.
func (h Handle) Extend(offset int, s string) {
	copy(h.slice(offset+len(s))[offset:], s)
}

// Copy allocates a block of the given capacity holding the first length
// bytes of h. The receiver stays valid; the caller releases it once any
// source aliasing it has been consumed.
func (h Handle) Copy(length, capacity int) Handle {
	dup := New(capacity)
	copy(dup.slice(length), h.View(length))
	return dup
}

// Shift moves the payload bytes [next, length) down to at.
func (h Handle) Shift(at, next, length int) {
	b := h.slice(length)
	copy(b[at:], b[next:])
}

func (h Handle) slice(n int) []byte {
	return unsafe.Slice((*byte)(h.p), n)
}
