package bench

import (
	"encoding/binary"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// sampleSize bounds how much of each result the sink hashes from either end.
const sampleSize = 32

// sink folds workload results into a digest so the work cannot be elided
// and both implementations can be compared. It hashes each result's length
// and its first and last sampleSize bytes.
type sink struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newSink() *sink {
	return &sink{d: xxhash.New()}
}

func (s *sink) observe(text string) {
	binary.LittleEndian.PutUint64(s.buf[:], uint64(len(text)))
	_, _ = s.d.Write(s.buf[:])
	if len(text) <= 2*sampleSize {
		_, _ = s.d.WriteString(text)
		return
	}
	_, _ = s.d.WriteString(text[:sampleSize])
	_, _ = s.d.WriteString(text[len(text)-sampleSize:])
}

func (s *sink) observeBytes(b []byte) {
	s.observe(unsafe.String(unsafe.SliceData(b), len(b)))
}

func (s *sink) observeRune(r rune) {
	binary.LittleEndian.PutUint32(s.buf[:4], uint32(r))
	_, _ = s.d.Write(s.buf[:4])
}

func (s *sink) fold(sum uint64) {
	binary.LittleEndian.PutUint64(s.buf[:], sum)
	_, _ = s.d.Write(s.buf[:])
}

func (s *sink) sum() uint64 {
	return s.d.Sum64()
}
