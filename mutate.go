package faststring

import "go.trai.ch/faststring/internal/shared"

// appendText appends s, which may alias r's own content.
func (r *repr) appendText(s string) {
	if r.isShared() {
		r.appendShared(s)
		return
	}

	oldLen := r.inlineLen()
	newLen := addLen(oldLen, len(s))
	if newLen <= InlineCapacity {
		copy(r.raw[oldLen:], s)
		r.setInlineLen(newLen)
		return
	}

	capacity := grow(newLen, InlineCapacity)
	h := shared.New(capacity)
	h.Extend(0, r.text())
	h.Extend(oldLen, s)
	r.setShared(h, newLen, capacity)
	counters.promotions.Add(1)
}

func (r *repr) appendShared(s string) {
	oldLen, capacity := r.sharedLen(), r.sharedCap()
	newLen := addLen(oldLen, len(s))

	exclusive := r.h.Exclusive()
	if exclusive && newLen <= capacity {
		r.h.Extend(oldLen, s)
		r.setSharedLen(newLen)
		return
	}

	// Either the buffer is too small or somebody else still reads it. Both
	// cases copy into a fresh block, and the old one is released only after
	// s, which may alias it, has been copied.
	newCap := fit(newLen, capacity)
	h := r.h.Copy(oldLen, newCap)
	h.Extend(oldLen, s)
	r.h.Release(capacity)
	r.setShared(h, newLen, newCap)

	if exclusive {
		counters.grows.Add(1)
	} else {
		counters.copies.Add(1)
	}
}

// removeRange cuts the bytes [at, next) out of r.
func (r *repr) removeRange(at, next int) {
	if !r.isShared() {
		oldLen := r.inlineLen()
		copy(r.raw[at:], r.raw[next:oldLen])
		r.setInlineLen(oldLen - (next - at))
		return
	}

	oldLen, capacity := r.sharedLen(), r.sharedCap()
	newLen := oldLen - (next - at)
	if r.h.Exclusive() {
		r.h.Shift(at, next, oldLen)
		r.setSharedLen(newLen)
		return
	}

	newCap := shared.AlignCapacity(newLen)
	if newCap == 0 {
		newCap = shared.LineSize
	}
	h := shared.New(newCap)
	old := r.h.View(oldLen)
	h.Extend(0, old[:at])
	h.Extend(at, old[next:])
	r.h.Release(capacity)
	r.setShared(h, newLen, newCap)
	counters.copies.Add(1)
}
