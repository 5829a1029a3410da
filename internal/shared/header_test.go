//go:build !faststring_arcbuf

package shared

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestHeader_Layout(t *testing.T) {
	assert.GreaterOrEqual(t, HeaderSize, LineSize)
	assert.Zero(t, HeaderSize%8, "payload must stay word aligned")

	h := New(LineSize)
	defer h.Release(LineSize)

	base := uintptr(unsafe.Pointer(h.header()))
	payload := uintptr(h.p)

	assert.Equal(t, uintptr(HeaderSize), payload-base)
	assert.Zero(t, base%8, "count must be 8-byte aligned")

	// The count occupies the first word; no cache line holding it reaches the payload.
	lastCountByte := base + unsafe.Sizeof(int64(0)) - 1
	lineEnd := (lastCountByte/LineSize + 1) * LineSize
	assert.LessOrEqual(t, lineEnd, payload)
}
