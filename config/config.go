package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the toolkit-wide defaults the CLI and notebook helpers
// fall back to.
type Config struct {
	Slack   SlackConfig   `json:"slack" yaml:"slack"`
	Chart   ChartConfig   `json:"chart" yaml:"chart"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// SlackConfig contains Slack delivery parameters. Token falls back to
// the NOODA_SLACK_TOKEN / SLACK_TOKEN environment variables when empty.
type SlackConfig struct {
	Token   string `json:"token,omitempty" yaml:"token,omitempty"`
	Channel string `json:"channel,omitempty" yaml:"channel,omitempty"`
	BackURL string `json:"back_url,omitempty" yaml:"back_url,omitempty"`
}

// ChartConfig contains default chart geometry.
type ChartConfig struct {
	Height         int `json:"height" yaml:"height"`
	WidthIncrement int `json:"width_increment" yaml:"width_increment"`
}

// JournalConfig selects where sends and publishes are recorded.
type JournalConfig struct {
	Type string `json:"type" yaml:"type"` // "sqlite" or "csv"
	Path string `json:"path" yaml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Chart: ChartConfig{
			Height:         500,
			WidthIncrement: 70,
		},
		Journal: JournalConfig{
			Type: "sqlite",
			Path: "./nooda.sqlite",
		},
	}
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on
// extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Chart.Height <= 0 {
		return fmt.Errorf("chart.height must be positive")
	}
	if c.Chart.WidthIncrement <= 0 {
		return fmt.Errorf("chart.width_increment must be positive")
	}
	switch c.Journal.Type {
	case "sqlite", "csv":
	default:
		return fmt.Errorf("journal.type must be sqlite or csv, got %q", c.Journal.Type)
	}
	if c.Journal.Path == "" {
		return fmt.Errorf("journal.path is required")
	}
	return nil
}
