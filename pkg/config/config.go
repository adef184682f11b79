// Package config loads ifstat defaults from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/danpilch/ifstat/pkg/collectors/network"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the settings that command line flags may override.
type Config struct {
	Interfaces []string `yaml:"interfaces"`
	All        bool     `yaml:"all"`
	Loopback   bool     `yaml:"loopback"`
	HideZero   bool     `yaml:"hide_zero"`

	// Delay and FirstMeasurement are in seconds. A nil FirstMeasurement follows Delay.
	Delay            float64  `yaml:"delay"`
	FirstMeasurement *float64 `yaml:"first_measurement"`
	Count            int      `yaml:"count"`

	Source   string `yaml:"source"`
	LogLevel string `yaml:"log_level"`
	Color    bool   `yaml:"color"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Delay:    1,
		Source:   network.SourceAuto,
		LogLevel: logrus.WarnLevel.String(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/ifstat/config.yaml, falling back to
// ~/.config/ifstat/config.yaml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "ifstat", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "ifstat", "config.yaml")
	}
	return filepath.Join(home, ".config", "ifstat", "config.yaml")
}

// Load reads filename on top of the defaults and validates the result.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(filename string) (*Config, error) {
	cfg, err := Load(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	if c.Delay <= 0 {
		return fmt.Errorf("delay must be positive, got %v", c.Delay)
	}
	if c.FirstMeasurement != nil && *c.FirstMeasurement < 0 {
		return fmt.Errorf("first_measurement must not be negative, got %v", *c.FirstMeasurement)
	}
	if c.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", c.Count)
	}
	switch c.Source {
	case network.SourceAuto, network.SourceProcFS, network.SourceNetstat, network.SourcePsutil:
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// DelayDuration returns the interval between rows.
func (c *Config) DelayDuration() time.Duration {
	return seconds(c.Delay)
}

// FirstDelay returns the wait before the first row.
func (c *Config) FirstDelay() time.Duration {
	if c.FirstMeasurement == nil {
		return c.DelayDuration()
	}
	return seconds(*c.FirstMeasurement)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
