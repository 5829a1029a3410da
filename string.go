package faststring

import (
	"strings"
	"unicode/utf8"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// noCopy lets go vet flag String values copied by assignment.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// String is a UTF-8 string value with inline storage for short text and a
// shared copy-on-write buffer for long text. The zero value is empty and
// ready to use.
type String struct {
	_ noCopy
	r repr
}

// New returns an empty String.
func New() String {
	return String{}
}

// From returns a String holding a copy of s. Like every constructor and
// append method, it expects valid UTF-8 and does not check.
func From(s string) String {
	return String{r: fromText(s)}
}

// FromBytes returns a String holding a copy of b.
func FromBytes(b []byte) String {
	return String{r: fromText(unsafe.String(unsafe.SliceData(b), len(b)))}
}

// FromRune returns a String holding the UTF-8 encoding of ch.
func FromRune(ch rune) String {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], ch)
	return String{r: fromText(unsafe.String(&buf[0], n))}
}

// Clone returns a value with the same content. It never copies text bytes:
// inline content is copied with the value and a shared buffer gains an owner.
func (s *String) Clone() String {
	return String{r: s.r.clone()}
}

// Release gives up s's claim on its buffer and leaves s empty. Calling it
// more than once is harmless.
func (s *String) Release() {
	s.r.release()
}

// AsText returns the content as a string aliasing s's storage. The result
// must not be used after s is mutated or released; use String for a copy
// that outlives s.
func (s *String) AsText() string {
	return s.r.text()
}

// Bytes returns a copy of the content. Writing to it never affects s or
// its clones.
func (s *String) Bytes() []byte {
	return []byte(s.r.text())
}

// String returns a copy of the content.
func (s *String) String() string {
	return strings.Clone(s.r.text())
}

// Len returns the length of the content in bytes.
func (s *String) Len() int {
	return s.r.len()
}

// IsEmpty reports whether s holds no text.
func (s *String) IsEmpty() bool {
	return s.r.len() == 0
}

// IsShared reports whether s keeps its text in a heap buffer rather than inline.
func (s *String) IsShared() bool {
	return s.r.isShared()
}

// AppendString appends str to s.
func (s *String) AppendString(str string) {
	if len(str) == 0 {
		return
	}
	s.r.appendText(str)
}

// AppendBytes appends b to s.
func (s *String) AppendBytes(b []byte) {
	if len(b) == 0 {
		return
	}
	s.r.appendText(unsafe.String(unsafe.SliceData(b), len(b)))
}

// AppendRune appends the UTF-8 encoding of ch to s.
func (s *String) AppendRune(ch rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], ch)
	s.r.appendText(unsafe.String(&buf[0], n))
}

// Write appends p to s. It always returns len(p), nil.
func (s *String) Write(p []byte) (int, error) {
	s.AppendBytes(p)
	return len(p), nil
}

// WriteString appends str to s. It always returns len(str), nil.
func (s *String) WriteString(str string) (int, error) {
	s.AppendString(str)
	return len(str), nil
}

// WriteRune appends the UTF-8 encoding of ch to s and returns its length.
func (s *String) WriteRune(ch rune) (int, error) {
	s.AppendRune(ch)
	return utf8.RuneLen(ch), nil
}

// Remove deletes the character starting at byte offset i and returns it.
// It fails with ErrInvalidIndex, leaving s untouched, when i is out of range
// or falls inside a multi-byte character.
func (s *String) Remove(i int) (rune, error) {
	text := s.r.text()
	if i < 0 || i >= len(text) || !utf8.RuneStart(text[i]) {
		return 0, zerr.With(zerr.With(zerr.Wrap(ErrInvalidIndex, "cannot remove character"), "index", i), "len", len(text))
	}
	ch, size := utf8.DecodeRuneInString(text[i:])
	s.r.removeRange(i, i+size)
	return ch, nil
}

// Equal reports whether s and other hold the same bytes.
func (s *String) Equal(other *String) bool {
	return s.r.text() == other.r.text()
}

// EqualString reports whether s holds exactly the bytes of str.
func (s *String) EqualString(str string) bool {
	return s.r.text() == str
}

// Compare orders s and other bytewise, like strings.Compare.
func (s *String) Compare(other *String) int {
	return strings.Compare(s.r.text(), other.r.text())
}

// Hash returns the xxhash digest of the content. Equal values hash equally
// regardless of their representation.
func (s *String) Hash() uint64 {
	return xxhash.Sum64String(s.r.text())
}

// MarshalText implements encoding.TextMarshaler.
func (s *String) MarshalText() ([]byte, error) {
	return []byte(s.r.text()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, replacing the content
// of s with a copy of text. Invalid UTF-8 fails with ErrInvalidUTF8 and
// leaves s untouched.
func (s *String) UnmarshalText(text []byte) error {
	if !utf8.Valid(text) {
		return zerr.With(zerr.Wrap(ErrInvalidUTF8, "cannot unmarshal text"), "len", len(text))
	}
	s.r.release()
	s.r = fromText(unsafe.String(unsafe.SliceData(text), len(text)))
	return nil
}
