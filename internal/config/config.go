package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds application settings. Defaults come from Default; a YAML file
// passed to Load overrides any subset of them.
type Config struct {
	DataDir    string `json:"data_dir" yaml:"data_dir"`
	DBPath     string `json:"db_path" yaml:"db_path"`
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`
	LogLevel   string `json:"log_level" yaml:"log_level"`

	// Routing parameters.
	MaxGatesPerLeg int      `json:"max_gates_per_leg" yaml:"max_gates_per_leg"`
	DirectMaxJumps int      `json:"direct_max_jumps" yaml:"direct_max_jumps"`
	MaxResults     int      `json:"max_results" yaml:"max_results"`
	HomeRegions    []string `json:"home_regions" yaml:"home_regions"`
	UseJumpbridges bool     `json:"use_jumpbridges" yaml:"use_jumpbridges"`

	// Scans are tagged with the Discord role that reported them.
	DefaultRoleID string `json:"default_role_id" yaml:"default_role_id"`

	// DownloadSDE fetches the static data dump when it is missing locally.
	DownloadSDE bool `json:"download_sde" yaml:"download_sde"`
	// CleanupIntervalMinutes is how often the server purges expired scans; 0 disables it.
	CleanupIntervalMinutes int `json:"cleanup_interval_minutes" yaml:"cleanup_interval_minutes"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		DataDir:                "sde_data",
		DBPath:                 "drifter.db",
		ListenAddr:             "127.0.0.1:13380",
		LogLevel:               "info",
		MaxGatesPerLeg:         15,
		DirectMaxJumps:         50,
		MaxResults:             5,
		HomeRegions:            []string{"Scalding Pass", "Wicked Creek", "Insmother"},
		UseJumpbridges:         true,
		DefaultRoleID:          "drifter-scout",
		DownloadSDE:            true,
		CleanupIntervalMinutes: 5,
	}
}

// Load reads a YAML config file over the defaults. A missing file yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Validate checks ranges and required fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.MaxGatesPerLeg < 1 || c.MaxGatesPerLeg > 100 {
		return fmt.Errorf("max_gates_per_leg must be in [1, 100], got %d", c.MaxGatesPerLeg)
	}
	if c.DirectMaxJumps < 1 || c.DirectMaxJumps > 100 {
		return fmt.Errorf("direct_max_jumps must be in [1, 100], got %d", c.DirectMaxJumps)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.CleanupIntervalMinutes < 0 {
		return fmt.Errorf("cleanup_interval_minutes must not be negative")
	}
	seen := make(map[string]struct{})
	for i, r := range c.HomeRegions {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("home region %d is empty", i)
		}
		key := strings.ToLower(r)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate home region: %s", r)
		}
		seen[key] = struct{}{}
	}
	return nil
}
