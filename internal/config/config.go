// Package config owns profile and application configuration
// persistence. The engine only ever sees immutable Profile snapshots;
// everything here is the config collaborator around it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration
// (~/.config/filenest/config.yaml). Profiles live in their own files
// next to it; Config only remembers which one is active.
type Config struct {
	ActiveProfile string `yaml:"active_profile"`
	Settings      struct {
		Workers    int  `yaml:"workers"`     // worker pool cap for hashing/moving, 0 = auto
		Debug      bool `yaml:"debug"`       // verbose logging
		LockTarget bool `yaml:"lock_target"` // take a flock on the target before organizing
	} `yaml:"settings"`
	WatchMode struct {
		Interval int `yaml:"interval"` // polling fallback interval in seconds
		Debounce int `yaml:"debounce"` // quiet period in seconds before organizing after an event
	} `yaml:"watch_mode"`
}

// DefaultConfigDir returns the filenest configuration directory.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "filenest"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(filepath.Join(dir, "config.yaml"))
}

// LoadConfigFile loads configuration from a specific file path. A
// missing file yields the defaults rather than an error.
func LoadConfigFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal over the defaults so keys absent from the file keep
	// their default values.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// SaveConfig saves the configuration, creating parent directories as
// needed.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for invalid settings.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}
	if c.Settings.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}
	if c.WatchMode.Interval < 1 {
		return fmt.Errorf("watch interval must be >= 1 second")
	}
	if c.WatchMode.Debounce < 0 {
		return fmt.Errorf("watch debounce must be >= 0 seconds")
	}
	return nil
}

// New returns the default configuration.
func New() *Config {
	cfg := &Config{ActiveProfile: "default"}
	cfg.Settings.Workers = 0 // sized from available parallelism at run time
	cfg.Settings.LockTarget = true
	cfg.WatchMode.Interval = 5
	cfg.WatchMode.Debounce = 2
	return cfg
}
