// Package faststring provides String, a mutable UTF-8 string value tuned for
// short text.
//
// Text of up to InlineCapacity bytes lives inside the value itself and never
// touches the heap. Longer text lives in a reference-counted buffer that
// clones share; Clone is O(1) in both cases. A clone that is mutated while
// its buffer is still shared first copies the buffer (copy-on-write), so the
// other holders never observe the change.
//
//	s := faststring.From("hello")
//	s.AppendString(", world")
//	t := s.Clone()
//	t.AppendRune('!')
//	fmt.Println(s.AsText(), t.AsText()) // hello, world hello, world!
//	t.Release()
//	s.Release()
//
// A String must not be copied by assignment; use Clone. Release hands a
// shared buffer back once the value is no longer needed. Skipping Release
// does not leak memory, it only forgoes buffer reuse.
//
// Reading and cloning values that share a buffer is safe from any number of
// goroutines. Mutating one value from two goroutines at once is not; give
// each mutator its own clone.
package faststring
