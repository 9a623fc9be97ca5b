package hubclient

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything needed to talk to the Capstone Hub backend.
type Config struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
	// CSRFToken, when set, is sent verbatim. Otherwise the token is fetched
	// once per session from CSRFPath.
	CSRFToken string `yaml:"csrf_token"`
	CSRFPath  string `yaml:"csrf_path"`
	AuthPath  string `yaml:"auth_path"`
	LogCalls  bool   `yaml:"log_calls"`
}

// DefaultConfig returns a Config pointing at a local development backend.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:5000",
		TimeoutMs: 10000,
		CSRFPath:  "/api/csrf-token",
		AuthPath:  "/api/auth",
		LogCalls:  false,
	}
}

// Timeout returns the per-request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// DefaultConfigPath returns ~/.capstonehub/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".capstonehub", "config.yaml")
}

// LoadConfig layers defaults, the YAML file named by CAPSTONE_CONFIG (or the
// default path), and CAPSTONE_* environment variables, in that order.
// A missing file is not an error.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	path := os.Getenv("CAPSTONE_CONFIG")
	if path == "" {
		path = DefaultConfigPath()
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if v := os.Getenv("CAPSTONE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CAPSTONE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("CAPSTONE_CSRF_TOKEN"); v != "" {
		cfg.CSRFToken = v
	}
	if v := os.Getenv("CAPSTONE_CSRF_PATH"); v != "" {
		cfg.CSRFPath = v
	}
	if v := os.Getenv("CAPSTONE_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg, cfg.Validate()
}

// Validate checks the fields the client cannot run without.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", c.TimeoutMs)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}
