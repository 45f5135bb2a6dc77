// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format     string `yaml:"format"`
		Categories string `yaml:"categories"`
		Verbose    bool   `yaml:"verbose"`
		Debug      bool   `yaml:"debug"`
		NoColor    bool   `yaml:"no_color"`
		Mask       bool   `yaml:"mask"`
	} `yaml:"defaults"`

	// Per-category confidence floors for model-sourced spans, 0..1.
	// Categories absent from the map keep the built-in floors.
	Floors map[string]float64 `yaml:"floors"`

	// Classifier path settings
	Classifier struct {
		MaxChars       int `yaml:"max_chars"`
		Overlap        int `yaml:"overlap"`
		TimeoutSeconds int `yaml:"timeout_seconds"`
		Concurrency    int `yaml:"concurrency"`
	} `yaml:"classifier"`

	// Profiles for different scanning scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a scanning profile with specific settings
type Profile struct {
	Format      string             `yaml:"format"`
	Categories  string             `yaml:"categories"`
	Verbose     bool               `yaml:"verbose"`
	NoColor     bool               `yaml:"no_color"`
	Mask        bool               `yaml:"mask"`
	Description string             `yaml:"description"`
	Floors      map[string]float64 `yaml:"floors"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Defaults.Format = "text"
	cfg.Defaults.Categories = "all"
	cfg.Classifier.MaxChars = 512
	cfg.Classifier.Overlap = 50
	cfg.Classifier.TimeoutSeconds = 10
	cfg.Classifier.Concurrency = 4
	return cfg
}

// LoadConfig loads configuration from a yaml file, layered over the
// built-in defaults. An empty path returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile looks for a config file in standard locations and returns
// the first one that exists, or "" when none is found.
func FindConfigFile() string {
	candidates := []string{".pii-scrub.yaml", ".pii-scrub.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".pii-scrub.yaml"),
			filepath.Join(home, ".config", "pii-scrub", "config.yaml"),
		)
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// GetProfile returns a named profile.
func (c *Config) GetProfile(name string) (*Profile, error) {
	if profile, ok := c.Profiles[name]; ok {
		return &profile, nil
	}
	return nil, fmt.Errorf("profile %q not found", name)
}

func (c *Config) validate() error {
	if c.Classifier.MaxChars < 0 {
		return fmt.Errorf("classifier.max_chars must not be negative")
	}
	if c.Classifier.Overlap < 0 {
		return fmt.Errorf("classifier.overlap must not be negative")
	}
	if c.Classifier.MaxChars > 0 && c.Classifier.Overlap >= c.Classifier.MaxChars {
		return fmt.Errorf("classifier.overlap must be smaller than classifier.max_chars")
	}
	if c.Classifier.TimeoutSeconds < 0 {
		return fmt.Errorf("classifier.timeout_seconds must not be negative")
	}
	for category, floor := range c.Floors {
		if floor < 0 || floor > 1 {
			return fmt.Errorf("floor for category %q must be in [0,1], got %v", category, floor)
		}
	}
	return nil
}
