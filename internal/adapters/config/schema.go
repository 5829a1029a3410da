package config

// File represents the structure of the faststring.yaml configuration file.
type File struct {
	LogLevel string   `yaml:"log_level"`
	Bench    BenchDTO `yaml:"bench"`
	Check    CheckDTO `yaml:"check"`
}

// BenchDTO represents the bench section of the configuration.
type BenchDTO struct {
	Operations  []string       `yaml:"operations"`
	Sizes       []string       `yaml:"sizes"`
	Iterations  map[string]int `yaml:"iterations"`
	Parallelism *int           `yaml:"parallelism"`
	Readers     *int           `yaml:"readers"`
	Seed        *uint64        `yaml:"seed"`
	Results     string         `yaml:"results"`
}

// CheckDTO represents the check section of the configuration.
type CheckDTO struct {
	Seeds    *int    `yaml:"seeds"`
	Commands *int    `yaml:"commands"`
	Seed     *uint64 `yaml:"seed"`
}
