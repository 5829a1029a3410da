package faststring

import (
	"encoding/binary"
	"unsafe"

	"go.trai.ch/faststring/internal/shared"
)

const (
	rawSize = 16

	// InlineCapacity is the longest text, in bytes, stored without a heap buffer.
	InlineCapacity = rawSize - 1

	lenByte    = InlineCapacity
	sharedFlag = 0x80
	sharedBit  = uint64(sharedFlag) << 56
)

// Both variants occupy exactly rawSize bytes: inline text plus its length
// byte, or a capacity word plus a length word.
var (
	_ [1]struct{} = [InlineCapacity + 1 - rawSize + 1]struct{}{}
	_ [1]struct{} = [2*8 - rawSize + 1]struct{}{}
)

// An inline length never reaches the flag bit.
var _ [sharedFlag - 1 - InlineCapacity]struct{}

// repr is the tagged representation.
//
// Inline: raw[0:InlineCapacity] holds the text, raw[lenByte] its length.
// Shared: raw[0:8] holds the capacity and raw[8:16] the length, both
// little-endian, with sharedBit forced on in the length word. The top byte
// of that word is raw[lenByte], so the flag sits in the same byte in both
// variants whatever the host byte order.
//
// h is kept outside raw: the collector has to see it as a pointer, so inline
// bytes cannot overlay it.
type repr struct {
	h   shared.Handle
	raw [rawSize]byte
}

func (r *repr) isShared() bool {
	return r.raw[lenByte]&sharedFlag != 0
}

func (r *repr) inlineLen() int {
	return int(r.raw[lenByte])
}

func (r *repr) setInlineLen(n int) {
	r.raw[lenByte] = byte(n)
}

func (r *repr) sharedLen() int {
	return int(binary.LittleEndian.Uint64(r.raw[8:]) &^ sharedBit)
}

func (r *repr) setSharedLen(n int) {
	binary.LittleEndian.PutUint64(r.raw[8:], uint64(n)|sharedBit)
}

func (r *repr) sharedCap() int {
	return int(binary.LittleEndian.Uint64(r.raw[:8]))
}

func (r *repr) setShared(h shared.Handle, length, capacity int) {
	r.h = h
	binary.LittleEndian.PutUint64(r.raw[:8], uint64(capacity))
	r.setSharedLen(length)
}

func (r *repr) len() int {
	if r.isShared() {
		return r.sharedLen()
	}
	return r.inlineLen()
}

// text returns a view of the content aliasing r.
func (r *repr) text() string {
	if r.isShared() {
		return r.h.View(r.sharedLen())
	}
	return unsafe.String(&r.raw[0], r.inlineLen())
}

// fromText builds a representation holding a copy of s.
func fromText(s string) repr {
	var r repr
	if len(s) <= InlineCapacity {
		copy(r.raw[:], s)
		r.setInlineLen(len(s))
		return r
	}
	capacity := shared.AlignCapacity(len(s))
	h := shared.New(capacity)
	h.Extend(0, s)
	r.setShared(h, len(s), capacity)
	return r
}

func (r *repr) clone() repr {
	if r.isShared() {
		return repr{h: r.h.Acquire(), raw: r.raw}
	}
	return *r
}

// release drops r's claim on its buffer and leaves r empty and inline.
func (r *repr) release() {
	if r.isShared() {
		r.h.Release(r.sharedCap())
	}
	*r = repr{}
}
