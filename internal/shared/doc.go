// Package shared implements the reference-counted byte buffer behind large
// faststring values.
//
// A Handle is one pointer wide. Cloning a value acquires the handle (one
// atomic increment); dropping it releases the handle, and the release that
// brings the count to zero recycles the block. A holder may write through a
// handle only after observing itself as the sole owner (Exclusive); every
// other writer must Copy first.
//
// Two storage strategies share this API. The default build places the count
// in a cache-line header directly in front of the payload, so a buffer is a
// single allocation. Building with the faststring_arcbuf tag switches to a
// conventional control block that points at a separate byte slice.
//
// Go's sync/atomic operations are sequentially consistent. The count
// decrement therefore already publishes the releasing owner's writes to
// whichever goroutine observes zero, and the exclusivity load already
// observes every write a previous owner made before releasing.
package shared
