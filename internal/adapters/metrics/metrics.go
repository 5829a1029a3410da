// Package metrics exports benchmark results and buffer counters through a
// Prometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/faststring"
	"go.trai.ch/faststring/internal/core/domain"
	"go.trai.ch/faststring/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "faststring"

// Registry implements ports.Metrics.
type Registry struct {
	reg    *prometheus.Registry
	nanos  *prometheus.GaugeVec
	ratio  *prometheus.GaugeVec
	allocs *prometheus.GaugeVec
}

// NewRegistry creates a registry exporting the process-wide buffer counters.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		nanos: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "op_nanoseconds",
			Help:      "Mean time per operation",
		}, []string{"scenario", "impl"}),
		ratio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "ratio",
			Help:      "Time of faststring over the baseline",
		}, []string{"scenario"}),
		allocs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "buffer_allocations",
			Help:      "Shared buffers allocated while the scenario ran",
		}, []string{"scenario"}),
	}

	r.reg.MustRegister(r.nanos, r.ratio, r.allocs)
	r.reg.MustRegister(
		counter("allocations_total", "Shared buffers handed out", func(s faststring.Statistics) uint64 { return s.Allocations }),
		counter("recycled_total", "Allocations served from a recycled buffer", func(s faststring.Statistics) uint64 { return s.Recycled }),
		counter("frees_total", "Buffers released by their last owner", func(s faststring.Statistics) uint64 { return s.Frees }),
		counter("promotions_total", "Inline values promoted to a shared buffer", func(s faststring.Statistics) uint64 { return s.Promotions }),
		counter("copies_total", "Copy-on-write duplications", func(s faststring.Statistics) uint64 { return s.Copies }),
		counter("grows_total", "Reallocations of an exclusively owned buffer", func(s faststring.Statistics) uint64 { return s.Grows }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "buffer",
			Name:      "live",
			Help:      "Shared buffers currently owned",
		}, func() float64 { return float64(faststring.Stats().Live()) }),
	)
	return r
}

func counter(name, help string, read func(faststring.Statistics) uint64) prometheus.CounterFunc {
	return prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "buffer",
		Name:      name,
		Help:      help,
	}, func() float64 { return float64(read(faststring.Stats())) })
}

var _ ports.Metrics = (*Registry)(nil)

// Prometheus returns the underlying registry.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.reg
}

// Observe records one measurement.
func (r *Registry) Observe(m domain.Measurement) {
	r.nanos.WithLabelValues(m.Scenario, "baseline").Set(m.BaselineNs)
	r.nanos.WithLabelValues(m.Scenario, "faststring").Set(m.FastNs)
	r.ratio.WithLabelValues(m.Scenario).Set(m.Ratio)
	r.allocs.WithLabelValues(m.Scenario).Set(float64(m.Allocs))
}

// Snapshot gathers every exported value in registry order, sorted by name.
func (r *Registry) Snapshot() ([]domain.Sample, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to gather metrics")
	}

	var samples []domain.Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			s := domain.Sample{Name: mf.GetName(), Labels: map[string]string{}}
			for _, lp := range m.GetLabel() {
				s.Labels[lp.GetName()] = lp.GetValue()
			}
			switch {
			case m.GetGauge() != nil:
				s.Value = m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				s.Value = m.GetCounter().GetValue()
			default:
				continue
			}
			samples = append(samples, s)
		}
	}
	return samples, nil
}
