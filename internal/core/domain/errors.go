package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownOperation is returned when a benchmark operation name is not recognised.
	ErrUnknownOperation = zerr.New("unknown benchmark operation")

	// ErrUnknownSizeClass is returned when a size class name is not recognised.
	ErrUnknownSizeClass = zerr.New("unknown size class")

	// ErrUnknownLogLevel is returned when a configured log level is not recognised.
	ErrUnknownLogLevel = zerr.New("unknown log level")

	// ErrNoScenarios is returned when the selected operations and sizes produce nothing to run.
	ErrNoScenarios = zerr.New("no benchmark scenarios selected")

	// ErrResultMismatch is returned when a benchmark workload and its baseline disagree.
	ErrResultMismatch = zerr.New("benchmark result differs from baseline")

	// ErrModelDivergence is returned when the model checker observes a value that differs from its oracle.
	ErrModelDivergence = zerr.New("value diverged from model")

	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrBenchFailed is returned when at least one benchmark scenario fails.
	ErrBenchFailed = zerr.New("benchmark failed")

	// ErrCheckFailed is returned when the model checker finds a divergence.
	ErrCheckFailed = zerr.New("model check failed")
)
