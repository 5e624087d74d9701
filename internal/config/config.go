package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jsoncore
type Config struct {
	Parser ParserConfig `yaml:"parser"`
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Batch  BatchConfig  `yaml:"batch"`
	Log    LogConfig    `yaml:"log"`
}

// ParserConfig controls the JSON reader
type ParserConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// InputConfig controls how documents are loaded
type InputConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

// OutputConfig controls serialization
type OutputConfig struct {
	SortKeys bool   `yaml:"sort_keys"`
	KeyCase  string `yaml:"key_case"` // "", "snake", "kebab", "camel", "lower_camel"
}

// BatchConfig controls concurrent processing of multiple files
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // logfmt, json
}

// Defaults
const (
	DefaultMaxDepth = 100
	DefaultMaxBytes = 64 << 20
	DefaultWorkers  = 4
)

// Supported key cases
var KeyCases = []string{"", "snake", "kebab", "camel", "lower_camel"}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"logfmt", "json"}
)

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			MaxDepth: DefaultMaxDepth,
		},
		Input: InputConfig{
			MaxBytes: DefaultMaxBytes,
		},
		Output: OutputConfig{
			SortKeys: false,
			KeyCase:  "",
		},
		Batch: BatchConfig{
			Workers: DefaultWorkers,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "logfmt",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsoncore.yml", ".jsoncore.yaml", "jsoncore.yml", "jsoncore.yaml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that every setting is within range
func (c *Config) Validate() error {
	if c.Parser.MaxDepth < 1 {
		return fmt.Errorf("parser.max_depth must be at least 1, got %d", c.Parser.MaxDepth)
	}
	if c.Input.MaxBytes < 1 {
		return fmt.Errorf("input.max_bytes must be at least 1, got %d", c.Input.MaxBytes)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	if !contains(KeyCases, c.Output.KeyCase) {
		return fmt.Errorf("output.key_case '%s' is not one of %v", c.Output.KeyCase, KeyCases[1:])
	}
	if !contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level '%s' is not one of %v", c.Log.Level, logLevels)
	}
	if !contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format '%s' is not one of %v", c.Log.Format, logFormats)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// Overrides holds values given on the command line. Zero values mean "not set".
type Overrides struct {
	MaxDepth int
	SortKeys bool
	KeyCase  string
	Workers  int
	Debug    bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli Overrides) (*Config, error) {
	// Start with defaults
	cfg := NewConfig()

	// Load config file if provided
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	// Apply CLI overrides only when they were set
	if cli.MaxDepth != 0 {
		cfg.Parser.MaxDepth = cli.MaxDepth
	}
	if cli.SortKeys {
		cfg.Output.SortKeys = true
	}
	if cli.KeyCase != "" {
		cfg.Output.KeyCase = cli.KeyCase
	}
	if cli.Workers != 0 {
		cfg.Batch.Workers = cli.Workers
	}
	if cli.Debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
