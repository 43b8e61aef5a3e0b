// Package config loads dirscout configuration from a YAML file,
// falling back to defaults when no file is present.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the scan root when
// no --config flag is given.
const DefaultFileName = ".dirscout.yaml"

// Config represents dirscout configuration options.
type Config struct {
	// TopLargest is how many of the largest files a scan keeps
	TopLargest int `yaml:"top_largest"`

	// ShowHidden includes dot-prefixed files and directories
	ShowHidden bool `yaml:"show_hidden"`

	// ExcludeDirs lists directory names whose subtrees are skipped
	// (e.g. node_modules, vendor)
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// Categories adds extension-to-category entries on top of the
	// built-in classification table
	Categories map[string]string `yaml:"categories"`

	// LogLevel sets logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		TopLargest:  10,
		ShowHidden:  false,
		ExcludeDirs: []string{},
		Categories:  map[string]string{},
		LogLevel:    "info",
	}
}

// Load reads configuration from path. A missing file returns defaults
// without error; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.TopLargest <= 0 {
		return fmt.Errorf("top_largest must be positive, got %d", c.TopLargest)
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be one of trace, debug, info, warn, error", c.LogLevel)
	}
	return nil
}
