package check

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"go.trai.ch/faststring"
	"go.trai.ch/faststring/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	maxTextLen  = 40
	longTextLen = 200
	maxIndex    = 1 << 16
)

// genRune returns a valid character, weighted towards ASCII but covering
// every UTF-8 encoding width.
func genRune(rng *rand.Rand) rune {
	switch rng.IntN(8) {
	case 0:
		return rune(0x80 + rng.IntN(0x800-0x80))
	case 1:
		// Skip the surrogate block.
		r := rune(0x800 + rng.IntN(0x10000-0x800-0x800))
		if r >= 0xD800 {
			r += 0x800
		}
		return r
	case 2:
		return rune(0x10000 + rng.IntN(utf8.MaxRune+1-0x10000))
	default:
		return rune(0x20 + rng.IntN(0x7f-0x20))
	}
}

// genText returns a short string, occasionally long enough to leave inline storage.
func genText(rng *rand.Rand) string {
	n := rng.IntN(maxTextLen + 1)
	if rng.IntN(16) == 0 {
		n = rng.IntN(longTextLen + 1)
	}
	var b strings.Builder
	for range n {
		b.WriteRune(genRune(rng))
	}
	return b.String()
}

// genCommand draws one command with every kind equally likely.
func genCommand(rng *rand.Rand) domain.Command {
	switch kind := domain.CommandKind(rng.IntN(4)); kind {
	case domain.CmdPush:
		return domain.Command{Kind: kind, Rune: genRune(rng)}
	case domain.CmdPushStr:
		return domain.Command{Kind: kind, Text: genText(rng)}
	case domain.CmdRemove:
		return domain.Command{Kind: kind, Index: rng.IntN(maxIndex)}
	default:
		return domain.Command{Kind: domain.CmdClone}
	}
}

// genCommands draws a command sequence of length n.
func genCommands(rng *rand.Rand, n int) []domain.Command {
	cmds := make([]domain.Command, n)
	for i := range cmds {
		cmds[i] = genCommand(rng)
	}
	return cmds
}

type snapshot struct {
	value faststring.String
	want  string
}

// model pairs a value with the plain string it must always equal.
type model struct {
	value    faststring.String
	oracle   string
	clones   []snapshot
	removals int
}

func newModel(initial string) *model {
	return &model{value: faststring.From(initial), oracle: initial}
}

func (m *model) release() {
	m.value.Release()
	for i := range m.clones {
		m.clones[i].value.Release()
	}
	m.clones = nil
}

// appliers holds how each command kind changes a model.
var appliers = map[domain.CommandKind]func(m *model, cmd domain.Command) error{
	domain.CmdPush: func(m *model, cmd domain.Command) error {
		m.oracle += string(cmd.Rune)
		m.value.AppendRune(cmd.Rune)
		return nil
	},
	domain.CmdPushStr: func(m *model, cmd domain.Command) error {
		m.oracle += cmd.Text
		m.value.AppendString(cmd.Text)
		return nil
	},
	domain.CmdRemove: applyRemove,
	domain.CmdClone: func(m *model, _ domain.Command) error {
		m.clones = append(m.clones, snapshot{value: m.value.Clone(), want: m.oracle})
		return nil
	},
}

// applyRemove removes at the reduced offset. An offset inside a character
// must be rejected without touching the value.
func applyRemove(m *model, cmd domain.Command) error {
	if len(m.oracle) == 0 {
		return nil
	}
	at := cmd.Index % len(m.oracle)
	if !utf8.RuneStart(m.oracle[at]) {
		if _, err := m.value.Remove(at); err == nil {
			return zerr.With(zerr.New("remove accepted an offset inside a character"), "offset", at)
		}
		return nil
	}

	want, size := utf8.DecodeRuneInString(m.oracle[at:])
	m.oracle = m.oracle[:at] + m.oracle[at+size:]
	got, err := m.value.Remove(at)
	if err != nil {
		return zerr.Wrap(err, "remove rejected a character boundary")
	}
	if got != want {
		return zerr.With(zerr.With(zerr.New("remove returned the wrong character"), "want", string(want)), "got", string(got))
	}
	m.removals++
	return nil
}

// verify compares the value and every earlier clone with their expected text.
func (m *model) verify() error {
	if got := m.value.AsText(); got != m.oracle {
		return zerr.With(zerr.With(zerr.New("value differs from oracle"), "want", m.oracle), "got", got)
	}
	if m.value.Len() != len(m.oracle) {
		return zerr.With(zerr.With(zerr.New("length differs from oracle"), "want", len(m.oracle)), "got", m.value.Len())
	}
	for i := range m.clones {
		c := &m.clones[i]
		if got := c.value.AsText(); got != c.want {
			return zerr.With(zerr.With(zerr.With(zerr.New("clone changed after the original was mutated"),
				"clone", i), "want", c.want), "got", got)
		}
	}
	return nil
}
