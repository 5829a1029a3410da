package domain

// Config is the harness configuration.
type Config struct {
	Bench    BenchConfig
	Check    CheckConfig
	LogLevel LogLevel
}

// BenchConfig selects and sizes benchmark scenarios.
type BenchConfig struct {
	Operations  []Operation
	Sizes       []SizeClass
	Iterations  map[SizeClass]int
	Parallelism int
	Readers     int
	Seed        uint64
	ResultsPath string
}

// CheckConfig sizes a model-checker run.
type CheckConfig struct {
	Seeds    int
	Commands int
	Seed     uint64
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Bench: BenchConfig{
			Operations:  append([]Operation(nil), Operations...),
			Sizes:       append([]SizeClass(nil), SizeClasses...),
			Iterations:  map[SizeClass]int{},
			Parallelism: 1,
			Readers:     8,
			Seed:        1,
			ResultsPath: ".faststring/results.json",
		},
		Check: CheckConfig{
			Seeds:    64,
			Commands: 500,
			Seed:     1,
		},
		LogLevel: LogLevelInfo,
	}
}
