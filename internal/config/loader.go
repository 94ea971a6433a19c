package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigPath returns the default configuration file path:
// ~/.minicouncil/config.yaml.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".minicouncil/config.yaml"
	}
	return filepath.Join(home, ".minicouncil", "config.yaml")
}

// DataDir returns the MiniCouncil data directory: ~/.minicouncil.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".minicouncil"
	}
	return filepath.Join(home, ".minicouncil")
}

// Load reads and parses the config file at path. If path is empty,
// ConfigPath() is used. A missing file yields the defaults; a file that fails
// to parse prints a warning and also yields the defaults. In both cases the
// API key falls back to OPENROUTER_API_KEY when unset.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("Warning: failed to parse config %s: %v\n", path, err)
		fmt.Println("Using default configuration.")
		cfg = DefaultConfig()
	}

	if cfg.Provider.APIKey == "" {
		cfg.Provider.APIKey = os.Getenv("OPENROUTER_API_KEY")
	}
	return &cfg, nil
}

// Save writes cfg to path as YAML. If path is empty, ConfigPath() is used.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
