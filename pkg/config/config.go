// Package config reads and writes the tally.yaml configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents a tally.yaml configuration file.
type Config struct {
	Version  int      `yaml:"version"  json:"version"`
	Locale   string   `yaml:"locale"   json:"locale,omitempty"`   // BCP-47; empty = detect from environment
	Timezone string   `yaml:"timezone" json:"timezone,omitempty"` // IANA name; empty = system local
	Storage  Storage  `yaml:"storage"  json:"storage"`
	Chart    Chart    `yaml:"chart"    json:"chart"`
	Log      Log      `yaml:"log"      json:"log"`
}

// Storage selects the persistence backend and its slot.
type Storage struct {
	Backend string `yaml:"backend" json:"backend"` // file | sqlite | memory
	Dir     string `yaml:"dir"     json:"dir,omitempty"`
	Key     string `yaml:"key"     json:"key"`
}

// Chart holds display defaults for the chart view.
type Chart struct {
	Period string `yaml:"period" json:"period"` // week | month | all
}

// Log configures diagnostic logging.
type Log struct {
	Level   string `yaml:"level"   json:"level"` // debug | info | warn | error
	Journal bool   `yaml:"journal" json:"journal"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version: 1,
		Storage: Storage{Backend: "file", Key: "entries"},
		Chart:   Chart{Period: "week"},
		Log:     Log{Level: "info"},
	}
}

// Parse decodes a configuration document over the defaults. ${VAR}
// references are expanded from the environment first.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Load reads a configuration file. A missing file is not an error: the
// defaults apply.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DataDir resolves the directory holding the entry store and log file.
func (c *Config) DataDir() string {
	if c.Storage.Dir != "" {
		return c.Storage.Dir
	}
	return DefaultDataDir()
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "tally.yaml")
	}
	return filepath.Join(dir, "tally", "tally.yaml")
}

// DefaultDataDir returns the standard data directory, honoring
// XDG_DATA_HOME.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "tally")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".tally")
	}
	return filepath.Join(home, ".local", "share", "tally")
}
