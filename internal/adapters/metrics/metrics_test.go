package metrics_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faststring"
	"go.trai.ch/faststring/internal/adapters/metrics"
	"go.trai.ch/faststring/internal/core/domain"
)

func find(samples []domain.Sample, name string, labels map[string]string) (domain.Sample, bool) {
	for _, s := range samples {
		if s.Name != name {
			continue
		}
		match := true
		for k, v := range labels {
			if s.Labels[k] != v {
				match = false
			}
		}
		if match {
			return s, true
		}
	}
	return domain.Sample{}, false
}

func TestRegistry_Observe(t *testing.T) {
	r := metrics.NewRegistry()
	r.Observe(domain.Measurement{Scenario: "push/small", BaselineNs: 20, FastNs: 10, Ratio: 0.5, Allocs: 3})

	samples, err := r.Snapshot()
	require.NoError(t, err)

	s, ok := find(samples, "faststring_bench_op_nanoseconds", map[string]string{"scenario": "push/small", "impl": "faststring"})
	require.True(t, ok)
	assert.InDelta(t, 10.0, s.Value, 1e-9)

	s, ok = find(samples, "faststring_bench_ratio", map[string]string{"scenario": "push/small"})
	require.True(t, ok)
	assert.InDelta(t, 0.5, s.Value, 1e-9)

	s, ok = find(samples, "faststring_bench_buffer_allocations", map[string]string{"scenario": "push/small"})
	require.True(t, ok)
	assert.InDelta(t, 3.0, s.Value, 1e-9)
}

func TestRegistry_BufferCounters(t *testing.T) {
	r := metrics.NewRegistry()

	before, err := r.Snapshot()
	require.NoError(t, err)
	allocsBefore, ok := find(before, "faststring_buffer_allocations_total", nil)
	require.True(t, ok)

	s := faststring.From(strings.Repeat("m", 100))
	defer s.Release()

	after, err := r.Snapshot()
	require.NoError(t, err)
	allocsAfter, ok := find(after, "faststring_buffer_allocations_total", nil)
	require.True(t, ok)
	assert.GreaterOrEqual(t, allocsAfter.Value, allocsBefore.Value+1)

	live, ok := find(after, "faststring_buffer_live", nil)
	require.True(t, ok)
	assert.GreaterOrEqual(t, live.Value, 1.0)
}

func TestRegistry_SnapshotSorted(t *testing.T) {
	samples, err := metrics.NewRegistry().Snapshot()
	require.NoError(t, err)
	require.NotEmpty(t, samples)

	for i := 1; i < len(samples); i++ {
		assert.LessOrEqual(t, samples[i-1].Name, samples[i].Name)
	}
}
