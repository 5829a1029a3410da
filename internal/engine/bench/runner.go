// Package bench compares faststring against a plain []byte baseline.
package bench

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/faststring"
	"go.trai.ch/faststring/internal/core/domain"
	"go.trai.ch/faststring/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options tunes a benchmark run.
type Options struct {
	// Parallelism bounds how many scenarios run at once. Buffer counters are
	// process-wide, so allocation figures are exact only at 1.
	Parallelism int
	// Readers is the goroutine count of the shared_read scenario.
	Readers int
	// Seed selects the generated input texts.
	Seed uint64
}

// Runner executes benchmark scenarios.
type Runner struct {
	telemetry ports.Telemetry
	logger    ports.Logger
	now       func() time.Time
}

// NewRunner creates a Runner.
func NewRunner(telemetry ports.Telemetry, logger ports.Logger) *Runner {
	return &Runner{
		telemetry: telemetry,
		logger:    logger,
		now:       time.Now,
	}
}

// Run measures every scenario and returns the measurements in scenario order.
func (r *Runner) Run(ctx context.Context, scenarios []domain.Scenario, opts Options) ([]domain.Measurement, error) {
	if len(scenarios) == 0 {
		return nil, domain.ErrNoScenarios
	}

	results := make([]domain.Measurement, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.Parallelism))

	for i, sc := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := r.runScenario(ctx, sc, opts)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runScenario(ctx context.Context, sc domain.Scenario, opts Options) (m domain.Measurement, err error) {
	_, vertex := r.telemetry.Record(ctx, sc.Name())
	defer func() { vertex.Complete(err) }()

	w, ok := workloads[sc.Op]
	if !ok {
		return m, zerr.With(zerr.Wrap(domain.ErrUnknownOperation, "no workload for operation"), "operation", string(sc.Op))
	}
	if sc.Iterations <= 0 {
		return m, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "iterations must be positive"), "scenario", sc.Name())
	}

	// Inputs depend only on the seed and the scenario, not on which other
	// scenarios were selected.
	rng := rand.New(rand.NewPCG(opts.Seed, xxhash.Sum64String(sc.Name())))
	in := genInputs(rng, sc.Size, sc.Iterations, opts.Readers)

	fastOut := newSink()
	before := faststring.Stats()
	start := time.Now()
	w.fast(in, fastOut)
	fastDur := time.Since(start)
	after := faststring.Stats()

	if err := ctx.Err(); err != nil {
		return m, err
	}

	baseOut := newSink()
	start = time.Now()
	w.baseline(in, baseOut)
	baseDur := time.Since(start)

	if fastOut.sum() != baseOut.sum() {
		return m, zerr.With(zerr.With(zerr.With(
			zerr.Wrap(domain.ErrResultMismatch, "workload digests differ"),
			"scenario", sc.Name()),
			"baseline", baseOut.sum()),
			"faststring", fastOut.sum())
	}

	m = domain.Measurement{
		Scenario:   sc.Name(),
		Iterations: sc.Iterations,
		BaselineNs: perOp(baseDur, sc.Iterations),
		FastNs:     perOp(fastDur, sc.Iterations),
		Allocs:     after.Allocations - before.Allocations,
		Copies:     after.Copies - before.Copies,
		Digest:     fastOut.sum(),
		Timestamp:  r.now().UTC(),
	}
	if m.BaselineNs > 0 {
		m.Ratio = m.FastNs / m.BaselineNs
	}

	summary := fmt.Sprintf("%s: %.1f ns/op (baseline %.1f ns/op, ratio %.2f, %d buffers)",
		m.Scenario, m.FastNs, m.BaselineNs, m.Ratio, m.Allocs)
	vertex.Log(domain.LogLevelInfo, summary)
	r.logger.Debug(summary)
	return m, nil
}

func perOp(d time.Duration, n int) float64 {
	return float64(d.Nanoseconds()) / float64(n)
}
