package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultProbeCount   = 4
	DefaultDailyLimit   = 20
	DefaultMonthlyLimit = 12
)

// DefaultAnchors are well-known addresses probed before a batch run to
// tell "this host is down" apart from "we have no connectivity at all".
var DefaultAnchors = []string{"8.8.8.8", "1.1.1.1"}

// Config holds all configuration for pingstat.
type Config struct {
	DataDir      string   `yaml:"data_dir"`
	ProbeCount   int      `yaml:"probe_count"`
	Anchors      []string `yaml:"anchors"`
	DailyLimit   int      `yaml:"daily_limit"`
	MonthlyLimit int      `yaml:"monthly_limit"`
}

// DefaultDataDir returns the per-user data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pingstat"
	}
	return filepath.Join(home, ".pingstat")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// Load reads and parses a YAML config file. A missing file is not an
// error: it yields the default configuration.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ApplyDefaults(&cfg)
			return cfg, nil
		}
		return Config{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	ApplyDefaults(&cfg)
	return cfg, nil
}

// Save writes a YAML config file to disk.
func Save(path string, cfg Config) error {
	ApplyDefaults(&cfg)
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// ApplyDefaults fills in default values when empty.
func ApplyDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	if cfg.ProbeCount == 0 {
		cfg.ProbeCount = DefaultProbeCount
	}
	if len(cfg.Anchors) == 0 {
		cfg.Anchors = append([]string(nil), DefaultAnchors...)
	}
	if cfg.DailyLimit == 0 {
		cfg.DailyLimit = DefaultDailyLimit
	}
	if cfg.MonthlyLimit == 0 {
		cfg.MonthlyLimit = DefaultMonthlyLimit
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data dir cannot be empty")
	}
	if c.ProbeCount <= 0 {
		return fmt.Errorf("probe count must be positive")
	}
	if c.DailyLimit <= 0 || c.MonthlyLimit <= 0 {
		return fmt.Errorf("stats limits must be positive")
	}
	return nil
}

// RegistryPath returns the location of the server registry record.
func (c *Config) RegistryPath() string {
	return filepath.Join(c.DataDir, "servers.conf")
}
