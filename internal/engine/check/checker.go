// Package check runs random command sequences against faststring and a
// plain string oracle.
package check

import (
	"context"
	"fmt"
	"math/rand/v2"

	"go.trai.ch/faststring/internal/core/domain"
	"go.trai.ch/faststring/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options sizes a model-checker run.
type Options struct {
	// Seeds is the number of independent command sequences.
	Seeds int
	// Commands is the length of each sequence.
	Commands int
	// Seed is mixed into every sequence's generator.
	Seed uint64
	// Parallelism bounds how many sequences run at once. Zero means no limit.
	Parallelism int
}

// Checker executes model-checker runs.
type Checker struct {
	telemetry ports.Telemetry
	logger    ports.Logger
}

// NewChecker creates a Checker.
func NewChecker(telemetry ports.Telemetry, logger ports.Logger) *Checker {
	return &Checker{telemetry: telemetry, logger: logger}
}

// Run checks opts.Seeds sequences and stops at the first divergence.
func (c *Checker) Run(ctx context.Context, opts Options) (domain.CheckReport, error) {
	if opts.Seeds <= 0 {
		return domain.CheckReport{}, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "seeds must be positive"), "seeds", opts.Seeds)
	}
	if opts.Commands < 0 {
		return domain.CheckReport{}, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "commands must not be negative"), "commands", opts.Commands)
	}

	reports := make([]domain.CheckReport, opts.Seeds)
	g, ctx := errgroup.WithContext(ctx)
	if opts.Parallelism > 0 {
		g.SetLimit(opts.Parallelism)
	}

	for seed := range opts.Seeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := c.runSeed(ctx, opts, seed)
			if err != nil {
				return err
			}
			reports[seed] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.CheckReport{}, err
	}

	total := domain.CheckReport{Seeds: opts.Seeds}
	for _, r := range reports {
		total.Commands += r.Commands
		total.Clones += r.Clones
		total.Removals += r.Removals
	}
	c.logger.Info(fmt.Sprintf("checked %d sequences: %d commands, %d clones, %d removals",
		total.Seeds, total.Commands, total.Clones, total.Removals))
	return total, nil
}

func (c *Checker) runSeed(ctx context.Context, opts Options, seed int) (report domain.CheckReport, err error) {
	_, vertex := c.telemetry.Record(ctx, fmt.Sprintf("check seed %d", seed))
	defer func() { vertex.Complete(err) }()

	rng := rand.New(rand.NewPCG(opts.Seed, uint64(seed)))
	m := newModel(genText(rng))
	defer m.release()

	if err := m.verify(); err != nil {
		return report, divergence(err, seed, 0, "from")
	}

	for step, cmd := range genCommands(rng, opts.Commands) {
		if step%256 == 0 {
			if err := ctx.Err(); err != nil {
				return report, err
			}
		}
		if err := appliers[cmd.Kind](m, cmd); err != nil {
			return report, divergence(err, seed, step+1, cmd.String())
		}
		if err := m.verify(); err != nil {
			return report, divergence(err, seed, step+1, cmd.String())
		}
	}

	report = domain.CheckReport{
		Seeds:    1,
		Commands: opts.Commands,
		Clones:   len(m.clones),
		Removals: m.removals,
	}
	vertex.Log(domain.LogLevelDebug, fmt.Sprintf("%d commands, final length %d", opts.Commands, len(m.oracle)))
	return report, nil
}

func divergence(cause error, seed, step int, command string) error {
	return zerr.With(zerr.With(zerr.With(
		zerr.Wrap(domain.ErrModelDivergence, cause.Error()),
		"seed", seed),
		"step", step),
		"command", command)
}
