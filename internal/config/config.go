// Package config provides configuration management for the review
// analytics engine: input paths, parsing knobs, and the tunable limits
// of the ranking extracts.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default configuration values
const (
	DefaultDelimiter         = ","
	DefaultTopGroups         = 10
	DefaultTopExtracts       = 3
	DefaultPositiveThreshold = 0.5
)

// Config holds every tunable of the engine.
type Config struct {
	// Input Configuration
	ReviewsPath  string `yaml:"reviews_path"`  // Review CSV path
	ProductsPath string `yaml:"products_path"` // Product CSV path
	Delimiter    string `yaml:"delimiter"`     // CSV field delimiter (single character)

	// Aggregation Configuration
	TopGroups         int     `yaml:"top_groups"`         // Groups returned by top-N rankings
	TopExtracts       int     `yaml:"top_extracts"`       // Rows returned by review extracts
	PositiveThreshold float64 `yaml:"positive_threshold"` // Sentiment floor for the positive-text blob
}

// NewConfig creates a configuration with default values.
func NewConfig() Config {
	return Config{
		Delimiter:         DefaultDelimiter,
		TopGroups:         DefaultTopGroups,
		TopExtracts:       DefaultTopExtracts,
		PositiveThreshold: DefaultPositiveThreshold,
	}
}

// Validate returns an error when any knob is out of range.
func (c *Config) Validate() error {
	if len(c.Delimiter) != 1 {
		return fmt.Errorf("Delimiter must be a single character, got %q", c.Delimiter)
	}
	if c.TopGroups <= 0 {
		return fmt.Errorf("TopGroups must be positive, got %d", c.TopGroups)
	}
	if c.TopExtracts <= 0 {
		return fmt.Errorf("TopExtracts must be positive, got %d", c.TopExtracts)
	}
	if c.PositiveThreshold < -1 || c.PositiveThreshold > 1 {
		return fmt.Errorf("PositiveThreshold must be in [-1, 1], got %g", c.PositiveThreshold)
	}
	return nil
}

// LoadFromYAML parses a configuration from YAML data, applying the
// parsed fields over the defaults.
func LoadFromYAML(data []byte) (Config, error) {
	config := NewConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return config, config.Validate()
}

// LoadFromFile loads a YAML configuration file.
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return NewConfig(), fmt.Errorf("failed to read config file %s: %w", filename, err)
	}
	return LoadFromYAML(data)
}

// LoadFromEnv loads configuration from REVIEWLENS_* environment
// variables over the defaults. Malformed values are ignored.
func LoadFromEnv() Config {
	config := NewConfig()

	if val := os.Getenv("REVIEWLENS_REVIEWS_PATH"); val != "" {
		config.ReviewsPath = val
	}
	if val := os.Getenv("REVIEWLENS_PRODUCTS_PATH"); val != "" {
		config.ProductsPath = val
	}
	if val := os.Getenv("REVIEWLENS_DELIMITER"); val != "" {
		config.Delimiter = val
	}
	if val := os.Getenv("REVIEWLENS_TOP_GROUPS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.TopGroups = parsed
		}
	}
	if val := os.Getenv("REVIEWLENS_TOP_EXTRACTS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.TopExtracts = parsed
		}
	}
	if val := os.Getenv("REVIEWLENS_POSITIVE_THRESHOLD"); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			config.PositiveThreshold = parsed
		}
	}

	return config
}
