package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/pmdadmin/internal/flagx"
	"github.com/dmitrijs2005/pmdadmin/internal/timex"
)

// Config holds the API location and the bearer token of the CLI.
type Config struct {
	Server  string         `json:"server"`
	Token   string         `json:"token,omitempty"`
	Timeout timex.Duration `json:"timeout"`
}

func (c *Config) LoadDefaults() {
	c.Server = "http://127.0.0.1:8080"
	c.Token = ""
	c.Timeout = timex.Duration{Duration: 30 * time.Second}
}

// userHomeDir is a seam for tests.
var userHomeDir = os.UserHomeDir

// Path is the settings file: $PMDADMIN_CONFIG or ~/.pmdadmin/config.json.
func Path() (string, error) {
	if p := os.Getenv("PMDADMIN_CONFIG"); p != "" {
		return p, nil
	}
	home, err := userHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pmdadmin", "config.json"), nil
}

// Load applies defaults, the file at path if present, then the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	flagx.EnvString("PMD_SERVER", &cfg.Server)
	flagx.EnvString("PMD_TOKEN", &cfg.Token)
	if err := flagx.EnvDuration("PMD_TIMEOUT", &cfg.Timeout.Duration); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path with owner-only permissions.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
