package faststring

import (
	"go.trai.ch/faststring/internal/shared"
	"go.trai.ch/zerr"
)

var (
	// ErrInvalidIndex is returned by Remove when the byte offset is past the
	// end of the text or does not start a character.
	ErrInvalidIndex = zerr.New("invalid index")

	// ErrInvalidUTF8 is returned by UnmarshalText when the input is not valid UTF-8.
	ErrInvalidUTF8 = zerr.New("invalid utf-8")

	// ErrCapacityOverflow is the panic value raised when a length or capacity
	// cannot be represented. Like an allocation failure it is not recoverable.
	ErrCapacityOverflow = shared.ErrCapacityOverflow
)
