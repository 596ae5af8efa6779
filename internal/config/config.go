package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Sources     []SourceConfig `yaml:"sources"`
	Sample      SampleConfig   `yaml:"sample"`
	Concurrency int            `yaml:"concurrency"`
	FailFast    bool           `yaml:"failFast"`
	Export      ExportConfig   `yaml:"export"`
}

type SourceConfig struct {
	Key    string `yaml:"key"`
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Schema string `yaml:"schema"`
}

type SampleConfig struct {
	Tables  []string `yaml:"tables"`
	MaxRows int      `yaml:"maxRows"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

const (
	DefaultMaxRows     = 10
	DefaultConcurrency = 1
)

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	_, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Sample.MaxRows == 0 {
		c.Sample.MaxRows = DefaultMaxRows
	}
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
}

func (c *Config) validate() error {
	if len(c.Sources) == 0 {
		return errors.New("at least one source is required")
	}
	seen := map[string]bool{}
	for _, src := range c.Sources {
		if src.Key == "" {
			return errors.New("source.key is required")
		}
		if seen[src.Key] {
			return fmt.Errorf("duplicate source key: %s", src.Key)
		}
		seen[src.Key] = true
		switch src.Driver {
		case "mysql", "postgres", "sqlite3":
		default:
			return fmt.Errorf("source %s: driver must be mysql, postgres or sqlite3", src.Key)
		}
		if src.DSN == "" {
			return fmt.Errorf("source %s: dsn is required", src.Key)
		}
	}
	if c.Sample.MaxRows < 1 {
		return errors.New("sample.maxRows must be positive")
	}
	if c.Concurrency < 1 {
		return errors.New("concurrency must be positive")
	}
	return nil
}

// SampleSet returns the sampled table names as a membership set.
func (c *Config) SampleSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Sample.Tables))
	for _, t := range c.Sample.Tables {
		set[t] = struct{}{}
	}
	return set
}
