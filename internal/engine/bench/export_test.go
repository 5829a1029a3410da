package bench

import (
	"testing"

	"go.trai.ch/faststring/internal/core/domain"
)

// CorruptBaseline makes the baseline of op observe one extra result until
// the test ends.
func CorruptBaseline(t testing.TB, op domain.Operation) {
	t.Helper()
	orig := workloads[op]
	w := orig
	w.baseline = func(in *inputs, out *sink) {
		orig.baseline(in, out)
		out.observe("corrupt")
	}
	workloads[op] = w
	t.Cleanup(func() { workloads[op] = orig })
}
