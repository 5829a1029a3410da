// Package config provides the configuration loader for the faststring harness.
package config

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/faststring/internal/core/domain"
	"go.trai.ch/faststring/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up when none is given.
const DefaultFilename = "faststring.yaml"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

var _ ports.ConfigLoader = (*Loader)(nil)

// Load reads the configuration at path. A missing file yields the defaults.
func (l *Loader) Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("no configuration at " + path + ", using defaults")
			return domain.DefaultConfig(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	cfg, err := Resolve(&file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

// Resolve validates file and applies it over the defaults.
func Resolve(file *File) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	level, ok := domain.ParseLogLevel(file.LogLevel)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownLogLevel, "invalid log_level"), "log_level", file.LogLevel)
	}
	cfg.LogLevel = level

	if err := resolveBench(&file.Bench, &cfg.Bench); err != nil {
		return nil, err
	}
	if err := resolveCheck(&file.Check, &cfg.Check); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveBench(dto *BenchDTO, bench *domain.BenchConfig) error {
	if len(dto.Operations) > 0 {
		ops, err := domain.ParseOperations(dto.Operations)
		if err != nil {
			return err
		}
		bench.Operations = ops
	}
	if len(dto.Sizes) > 0 {
		sizes, err := domain.ParseSizes(dto.Sizes)
		if err != nil {
			return err
		}
		bench.Sizes = sizes
	}
	for name, n := range dto.Iterations {
		size, err := domain.ParseSizeClass(name)
		if err != nil {
			return zerr.Wrap(err, "invalid bench.iterations key")
		}
		if n <= 0 {
			return invalid("bench.iterations."+name, n)
		}
		bench.Iterations[size] = n
	}
	if dto.Parallelism != nil {
		if *dto.Parallelism <= 0 {
			return invalid("bench.parallelism", *dto.Parallelism)
		}
		bench.Parallelism = *dto.Parallelism
	}
	if dto.Readers != nil {
		if *dto.Readers <= 0 {
			return invalid("bench.readers", *dto.Readers)
		}
		bench.Readers = *dto.Readers
	}
	if dto.Seed != nil {
		bench.Seed = *dto.Seed
	}
	if dto.Results != "" {
		bench.ResultsPath = dto.Results
	}
	return nil
}

func resolveCheck(dto *CheckDTO, check *domain.CheckConfig) error {
	if dto.Seeds != nil {
		if *dto.Seeds <= 0 {
			return invalid("check.seeds", *dto.Seeds)
		}
		check.Seeds = *dto.Seeds
	}
	if dto.Commands != nil {
		if *dto.Commands <= 0 {
			return invalid("check.commands", *dto.Commands)
		}
		check.Commands = *dto.Commands
	}
	if dto.Seed != nil {
		check.Seed = *dto.Seed
	}
	return nil
}

func invalid(field string, value any) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "value must be positive"), "field", field), "value", value)
}
