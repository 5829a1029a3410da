// Package app implements the application layer for the faststring harness.
package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.trai.ch/faststring/internal/core/domain"
	"go.trai.ch/faststring/internal/core/ports"
	"go.trai.ch/faststring/internal/engine/bench"
	"go.trai.ch/faststring/internal/engine/check"
	"go.trai.ch/zerr"
)

// levelSetter is implemented by loggers whose verbosity can change at runtime.
type levelSetter interface {
	SetLevel(level domain.LogLevel)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	runner       *bench.Runner
	checker      *check.Checker
	store        ports.ResultStore
	metrics      ports.Metrics
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	runner *bench.Runner,
	checker *check.Checker,
	store ports.ResultStore,
	metrics ports.Metrics,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		runner:       runner,
		checker:      checker,
		store:        store,
		metrics:      metrics,
		logger:       log,
	}
}

// BenchOptions configuration for the Bench method.
type BenchOptions struct {
	ConfigPath string
	// Ops and Sizes replace the configured selection when non-empty.
	Ops   []string
	Sizes []string
	// Parallelism replaces the configured limit when positive.
	Parallelism int
	// Save merges the measurements into the configured results file.
	Save bool
}

// Bench runs the selected benchmark scenarios.
func (a *App) Bench(ctx context.Context, opts BenchOptions) ([]domain.Measurement, error) {
	// 1. Load the configuration
	cfg, err := a.load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	// 2. Apply flag overrides
	ops := cfg.Bench.Operations
	if len(opts.Ops) > 0 {
		if ops, err = domain.ParseOperations(opts.Ops); err != nil {
			return nil, err
		}
	}
	sizes := cfg.Bench.Sizes
	if len(opts.Sizes) > 0 {
		if sizes, err = domain.ParseSizes(opts.Sizes); err != nil {
			return nil, err
		}
	}
	parallelism := cfg.Bench.Parallelism
	if opts.Parallelism > 0 {
		parallelism = opts.Parallelism
	}

	scenarios := domain.Scenarios(ops, sizes, cfg.Bench.Iterations)
	if len(scenarios) == 0 {
		return nil, domain.ErrNoScenarios
	}

	// 3. Run the scenarios
	ms, err := a.runner.Run(ctx, scenarios, bench.Options{
		Parallelism: parallelism,
		Readers:     cfg.Bench.Readers,
		Seed:        cfg.Bench.Seed,
	})
	if err != nil {
		return nil, errors.Join(domain.ErrBenchFailed, err)
	}
	for _, m := range ms {
		a.metrics.Observe(m)
	}

	// 4. Compare with and persist the previous results
	if !opts.Save {
		return ms, nil
	}
	previous, err := a.store.Load(cfg.Bench.ResultsPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load previous results")
	}
	for _, m := range ms {
		if old, ok := previous[m.Scenario]; ok && old.Ratio > 0 {
			a.logger.Info(fmt.Sprintf("%s: ratio %.2f (was %.2f)", m.Scenario, m.Ratio, old.Ratio))
		}
	}
	if err := a.store.Save(cfg.Bench.ResultsPath, ms); err != nil {
		return nil, zerr.Wrap(err, "failed to save results")
	}
	a.logger.Info(fmt.Sprintf("saved %d results to %s", len(ms), cfg.Bench.ResultsPath))

	return ms, nil
}

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	ConfigPath string
	// Seeds, Commands and Seed replace the configured values when positive.
	Seeds    int
	Commands int
	Seed     uint64
}

// Check runs the model checker.
func (a *App) Check(ctx context.Context, opts CheckOptions) (domain.CheckReport, error) {
	cfg, err := a.load(opts.ConfigPath)
	if err != nil {
		return domain.CheckReport{}, err
	}

	run := check.Options{
		Seeds:       cfg.Check.Seeds,
		Commands:    cfg.Check.Commands,
		Seed:        cfg.Check.Seed,
		Parallelism: runtime.NumCPU(),
	}
	if opts.Seeds > 0 {
		run.Seeds = opts.Seeds
	}
	if opts.Commands > 0 {
		run.Commands = opts.Commands
	}
	if opts.Seed > 0 {
		run.Seed = opts.Seed
	}

	report, err := a.checker.Run(ctx, run)
	if err != nil {
		return domain.CheckReport{}, errors.Join(domain.ErrCheckFailed, err)
	}
	return report, nil
}

// Metrics gathers the exported buffer counters and benchmark gauges.
func (a *App) Metrics() ([]domain.Sample, error) {
	samples, err := a.metrics.Snapshot()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to gather metrics")
	}
	return samples, nil
}

func (a *App) load(path string) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if setter, ok := a.logger.(levelSetter); ok {
		setter.SetLevel(cfg.LogLevel)
	}
	return cfg, nil
}
