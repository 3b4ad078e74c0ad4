// Package config loads Intervals.icu credentials and server settings.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then INTERVALS_ICU_* environment variables. The file location defaults to
// the user config directory and can be overridden with INTERVALS_ICU_CONFIG.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the environment variables, e.g.
// INTERVALS_ICU_API_KEY and INTERVALS_ICU_ATHLETE_ID.
const envPrefix = "INTERVALS_ICU_"

// Placeholder values shipped in documentation examples. Credentials equal to
// these are treated as unset.
const (
	placeholderAPIKey    = "your_api_key_here"
	placeholderAthleteID = "i123456"
)

// Config holds credentials and runtime settings.
type Config struct {
	// APIKey is the athlete's personal Intervals.icu API key.
	APIKey string `koanf:"api_key"`

	// AthleteID is the Intervals.icu athlete identifier, e.g. "i12345".
	AthleteID string `koanf:"athlete_id"`

	// BaseURL overrides the API endpoint, mainly for testing.
	BaseURL string `koanf:"base_url"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
}

// New returns a Config with defaults applied.
func New() *Config {
	return &Config{
		BaseURL:  "https://intervals.icu",
		LogLevel: "info",
	}
}

// DefaultPath returns the default config file location under the user's
// config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "intervals-mcp", "config.yaml"), nil
}

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (INTERVALS_ICU_CONFIG, or DefaultPath if it exists)
//  3. env (prefix INTERVALS_ICU_)
func Load() (*Config, error) {
	k := koanf.New(".")

	path := os.Getenv(envPrefix + "CONFIG")
	if path == "" {
		if defaultPath, err := DefaultPath(); err == nil {
			if _, err := os.Stat(defaultPath); err == nil {
				path = defaultPath
			}
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Map env keys like INTERVALS_ICU_API_KEY -> api_key, preserving
	// underscores to match the koanf tags on the struct.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// HasCredentials reports whether both credentials are present and are not
// the documentation placeholders.
func (c *Config) HasCredentials() bool {
	if c.APIKey == "" || c.APIKey == placeholderAPIKey {
		return false
	}
	if c.AthleteID == "" || c.AthleteID == placeholderAthleteID {
		return false
	}
	return true
}

// Save writes the credentials and settings to path, creating parent
// directories as needed. The file is written with owner-only permissions
// because it contains the API key.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "api_key: %q\n", c.APIKey)
	fmt.Fprintf(&b, "athlete_id: %q\n", c.AthleteID)
	if c.BaseURL != "" {
		fmt.Fprintf(&b, "base_url: %q\n", c.BaseURL)
	}
	if c.LogLevel != "" {
		fmt.Fprintf(&b, "log_level: %q\n", c.LogLevel)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
