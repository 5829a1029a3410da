package check

import (
	"testing"

	"go.trai.ch/faststring/internal/core/domain"
)

// CorruptOracle makes every command of kind also append to the oracle
// until the test ends.
func CorruptOracle(t testing.TB, kind domain.CommandKind) {
	t.Helper()
	orig := appliers[kind]
	appliers[kind] = func(m *model, cmd domain.Command) error {
		if err := orig(m, cmd); err != nil {
			return err
		}
		m.oracle += "!"
		return nil
	}
	t.Cleanup(func() { appliers[kind] = orig })
}
