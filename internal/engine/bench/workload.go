package bench

import (
	"math/rand/v2"
	"slices"
	"strings"
	"unicode/utf8"

	"go.trai.ch/faststring"
	"go.trai.ch/faststring/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// maxDistinctTexts bounds the input texts generated per scenario; iterations
// cycle through them.
const maxDistinctTexts = 16

// pushRunes are appended by the push workload, one to four bytes each.
var pushRunes = []rune{'a', 'é', '€', '𝄞'}

const textAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type inputs struct {
	texts      []string
	iterations int
	readers    int
}

func (in *inputs) text(i int) string {
	return in.texts[i%len(in.texts)]
}

// genInputs builds random texts for size. Every text is valid UTF-8 and
// about one in eight characters is multi-byte.
func genInputs(rng *rand.Rand, size domain.SizeClass, iterations, readers int) *inputs {
	minLen, maxLen := size.TextRange()
	n := min(iterations, maxDistinctTexts)
	texts := make([]string, n)
	for i := range texts {
		target := minLen + rng.IntN(maxLen-minLen+1)
		var b strings.Builder
		b.Grow(target)
		for b.Len() < target {
			if rng.IntN(8) == 0 && b.Len()+2 <= target {
				b.WriteRune('é')
				continue
			}
			b.WriteByte(textAlphabet[rng.IntN(len(textAlphabet))])
		}
		texts[i] = b.String()
	}
	return &inputs{texts: texts, iterations: iterations, readers: max(1, readers)}
}

// workload runs one operation in both implementations.
type workload struct {
	fast     func(in *inputs, out *sink)
	baseline func(in *inputs, out *sink)
}

var workloads = map[domain.Operation]workload{
	domain.OpFrom: {
		fast: func(in *inputs, out *sink) {
			for i := range in.iterations {
				s := faststring.From(in.text(i))
				out.observe(s.AsText())
				s.Release()
			}
		},
		baseline: func(in *inputs, out *sink) {
			for i := range in.iterations {
				b := []byte(in.text(i))
				out.observeBytes(b)
			}
		},
	},
	domain.OpClone: {
		fast: func(in *inputs, out *sink) {
			bases := make([]faststring.String, len(in.texts))
			for i, t := range in.texts {
				bases[i] = faststring.From(t)
			}
			for i := range in.iterations {
				c := bases[i%len(bases)].Clone()
				out.observe(c.AsText())
				c.Release()
			}
			for i := range bases {
				bases[i].Release()
			}
		},
		baseline: func(in *inputs, out *sink) {
			bases := make([][]byte, len(in.texts))
			for i, t := range in.texts {
				bases[i] = []byte(t)
			}
			for i := range in.iterations {
				c := slices.Clone(bases[i%len(bases)])
				out.observeBytes(c)
			}
		},
	},
	domain.OpPush: {
		fast: func(in *inputs, out *sink) {
			for i := range in.iterations {
				s := faststring.From(in.text(i))
				for _, r := range pushRunes {
					s.AppendRune(r)
				}
				out.observe(s.AsText())
				s.Release()
			}
		},
		baseline: func(in *inputs, out *sink) {
			for i := range in.iterations {
				b := []byte(in.text(i))
				for _, r := range pushRunes {
					b = utf8.AppendRune(b, r)
				}
				out.observeBytes(b)
			}
		},
	},
	domain.OpPushStr: {
		fast: func(in *inputs, out *sink) {
			for i := range in.iterations {
				s := faststring.From(in.text(i))
				s.AppendString(in.text(i + 1))
				out.observe(s.AsText())
				s.Release()
			}
		},
		baseline: func(in *inputs, out *sink) {
			for i := range in.iterations {
				b := []byte(in.text(i))
				b = append(b, in.text(i+1)...)
				out.observeBytes(b)
			}
		},
	},
	domain.OpRemove: {
		fast: func(in *inputs, out *sink) {
			for i := range in.iterations {
				s := faststring.From(in.text(i))
				r, err := s.Remove(0)
				if err != nil {
					panic(err)
				}
				out.observeRune(r)
				out.observe(s.AsText())
				s.Release()
			}
		},
		baseline: func(in *inputs, out *sink) {
			for i := range in.iterations {
				b := []byte(in.text(i))
				r, size := utf8.DecodeRune(b)
				b = slices.Delete(b, 0, size)
				out.observeRune(r)
				out.observeBytes(b)
			}
		},
	},
	domain.OpSharedRead: {
		fast: func(in *inputs, out *sink) {
			base := faststring.From(in.text(0))
			defer base.Release()
			readConcurrently(in, out, func(into *sink) {
				c := base.Clone()
				into.observe(c.AsText())
				c.Release()
			})
		},
		baseline: func(in *inputs, out *sink) {
			base := []byte(in.text(0))
			readConcurrently(in, out, func(into *sink) {
				into.observeBytes(base)
			})
		},
	},
}

// readConcurrently splits in.iterations calls of read across in.readers
// goroutines and folds their digests into out in reader order.
func readConcurrently(in *inputs, out *sink, read func(into *sink)) {
	sums := make([]uint64, in.readers)
	var g errgroup.Group
	for r := range in.readers {
		g.Go(func() error {
			into := newSink()
			for i := r; i < in.iterations; i += in.readers {
				read(into)
			}
			sums[r] = into.sum()
			return nil
		})
	}
	_ = g.Wait()
	for _, sum := range sums {
		out.fold(sum)
	}
}
