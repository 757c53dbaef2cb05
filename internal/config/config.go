package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options
type Config struct {
	// DataDir is the directory scanned for *.jsonl step logs.
	DataDir string `yaml:"data_dir,omitempty"`
	// Limit caps how many sessions are listed.
	Limit int `yaml:"limit,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataDir: filepath.Join(home, ".agentdeck", "sessions"),
		Limit:   100,
	}
}

// configPath returns the path to the config file
func configPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agentdeck", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "agentdeck", "config.yaml")
}

// Load loads config from file, falling back to defaults
func Load() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	if cfg.DataDir == "" {
		cfg.DataDir = DefaultConfig().DataDir
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultConfig().Limit
	}

	return cfg
}

// Path returns the config file path (for help text)
func Path() string {
	return configPath()
}
