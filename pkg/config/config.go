package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides where the config file lives, mainly for tests and
// scripted use.
const EnvConfigPath = "GREENTHUMB_CONFIG"

const (
	defaultServer         = "http://localhost:8000"
	defaultTimeoutSeconds = 60
)

// Config holds the persisted CLI preferences. Precedence when loading is
// defaults, then the config file, then GREENTHUMB_* environment variables.
type Config struct {
	Server         string `yaml:"server" env:"GREENTHUMB_SERVER"`
	Language       string `yaml:"language" env:"GREENTHUMB_LANGUAGE"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"GREENTHUMB_TIMEOUT_SECONDS"`
}

func defaults() Config {
	return Config{
		Server:         defaultServer,
		Language:       "en",
		TimeoutSeconds: defaultTimeoutSeconds,
	}
}

// Path returns the config file location, honoring the EnvConfigPath override.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, ".greenthumb", "config.yaml"), nil
}

// Load builds the effective configuration. A missing config file is not an
// error; a present but unreadable one is.
func Load() (Config, error) {
	cfg := defaults()

	path, err := Path()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to read environment overrides: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to the config file, creating its directory if needed.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
