package shared

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// unpooled is large enough that released blocks go to the collector, which
// keeps refcount assertions independent of recycling.
const unpooled = maxPooledCapacity + LineSize

func TestNew(t *testing.T) {
	before := ReadStats()

	h := New(LineSize)
	require.False(t, h.IsZero())
	assert.Equal(t, int64(1), h.Refs())
	assert.Equal(t, LineSize, h.Capacity())
	assert.True(t, h.Exclusive())

	after := ReadStats()
	assert.Equal(t, before.Allocs+1, after.Allocs)

	assert.True(t, h.Release(LineSize))
	assert.Equal(t, after.Frees+1, ReadStats().Frees)
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, c := range []int{0, -LineSize, MaxCapacity + 1} {
		require.Panics(t, func() { New(c) }, "New(%d)", c)
	}
}

func TestHandle_AcquireRelease(t *testing.T) {
	h := New(unpooled)
	clone := h.Acquire()

	assert.Equal(t, int64(2), h.Refs())
	assert.False(t, h.Exclusive())
	_, ok := h.TryExclusive(unpooled)
	assert.False(t, ok, "shared block must refuse exclusive access")

	assert.False(t, clone.Release(unpooled), "first release must not free")
	assert.Equal(t, int64(1), h.Refs())

	payload, ok := h.TryExclusive(unpooled)
	require.True(t, ok)
	assert.Len(t, payload, unpooled)

	assert.True(t, h.Release(unpooled))
}

func TestHandle_OverRelease(t *testing.T) {
	h := New(unpooled)
	require.True(t, h.Release(unpooled))

	defer func() {
		r := recover()
		require.NotNil(t, r, "second release must panic")
		zErr, ok := r.(*zerr.Error)
		require.True(t, ok, "expected *zerr.Error, got %T", r)
		assert.Equal(t, int64(-1), zErr.Metadata()["refs"])
	}()
	h.Release(unpooled)
}

func TestHandle_LayoutMismatch(t *testing.T) {
	h := New(unpooled)
	require.Panics(t, func() { h.Release(unpooled + LineSize) })
}

func TestHandle_ExtendAndView(t *testing.T) {
	h := New(LineSize)
	defer h.Release(LineSize)

	h.Extend(0, "hello")
	h.Extend(5, ", world")

	assert.Equal(t, "hello, world", h.View(12))
	assert.Equal(t, []byte("hello"), h.Bytes(5))
	assert.Equal(t, 5, cap(h.Bytes(5)), "views must not expose spare capacity")
}

func TestHandle_Copy(t *testing.T) {
	text := strings.Repeat("abcdefgh", 10)
	h := New(AlignCapacity(len(text)))
	h.Extend(0, text)
	before := ReadStats()

	dup := h.Copy(len(text), 2*LineSize+LineSize)

	assert.Equal(t, before.Allocs+1, ReadStats().Allocs)
	assert.Equal(t, text, dup.View(len(text)))
	assert.Equal(t, 3*LineSize, dup.Capacity())

	dup.Extend(len(text), "!")
	assert.Equal(t, text, h.View(len(text)), "copy must not write through to the source")

	assert.True(t, dup.Release(3*LineSize))
	assert.True(t, h.Release(AlignCapacity(len(text))))
}

func TestHandle_Shift(t *testing.T) {
	h := New(LineSize)
	defer h.Release(LineSize)

	h.Extend(0, "abcdef")
	h.Shift(1, 3, 6)

	assert.Equal(t, "adef", h.View(4))
}

func TestHandle_RecycledBlockIsFresh(t *testing.T) {
	h := New(2 * LineSize)
	extra := h.Acquire()
	extra.Release(2 * LineSize)
	require.True(t, h.Release(2*LineSize))

	// Whether or not the pool hands the block back, the new owner starts alone.
	again := New(2 * LineSize)
	assert.Equal(t, int64(1), again.Refs())
	assert.Equal(t, 2*LineSize, again.Capacity())
	assert.True(t, again.Release(2*LineSize))
}

func TestHandle_ConcurrentAcquireRelease(t *testing.T) {
	h := New(unpooled)
	h.Extend(0, "shared")

	var g errgroup.Group
	for range 64 {
		g.Go(func() error {
			for range 100 {
				clone := h.Acquire()
				if clone.View(6) != "shared" {
					return zerr.New("torn read")
				}
				clone.Release(unpooled)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(1), h.Refs())
	assert.True(t, h.Release(unpooled))
}

func TestStats_Live(t *testing.T) {
	s := Stats{Allocs: 10, Frees: 4}
	assert.Equal(t, int64(6), s.Live())
}
