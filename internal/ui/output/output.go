// Package output builds termenv outputs with the colour handling shared by
// the logger and the result tables.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Profile returns the colour profile for w. NO_COLOR forces plain text, and
// so does a destination that is not a terminal.
func Profile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if f, ok := w.(*os.File); ok {
		return termenv.NewOutput(f).EnvColorProfile()
	}
	return termenv.Ascii
}

// New returns a termenv.Output writing to w, or to stderr when w is nil.
func New(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(Profile(w)))
}
