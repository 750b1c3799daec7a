package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for an ediparse run.
type Config struct {
	DSN        string
	LogFormat  string // "text" or "json"
	Verbose    bool
	OutputPath string // parse: destination file, empty means stdout
	OutputDir  string // batch: directory for per-input JSON documents
	ExportPath string // export: destination Parquet file
	Workers    int    // batch: concurrent files
	Force      bool   // load: re-import even if file SHA already exists
	NoProgress bool   // batch: disable the progress display
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	DSN       string `yaml:"dsn"`
	LogFormat string `yaml:"log_format"`
	Workers   int    `yaml:"workers"`
	OutputDir string `yaml:"output_dir"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Fields already set (by flags or environment) take precedence over the file.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if c.DSN == "" {
		c.DSN = yc.DSN
	}
	if c.LogFormat == "" {
		c.LogFormat = yc.LogFormat
	}
	if c.Workers == 0 {
		c.Workers = yc.Workers
	}
	if c.OutputDir == "" {
		c.OutputDir = yc.OutputDir
	}
	return nil
}

// ApplyDefaults fills any fields still unset after flags and config file.
func (c *Config) ApplyDefaults() {
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
}

// Validate checks fields shared by every command.
func (c *Config) Validate() error {
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format %q (want text or json)", c.LogFormat)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// ValidateWithDSN checks shared fields plus the database connection string.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or DATABASE_URL is required")
	}
	return nil
}
