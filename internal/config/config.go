// Package config loads BizPrompt user configuration from
// <datadir>/config.json. The file is optional; missing settings fall
// back to defaults, and a handful of environment variables override
// the file for scripting.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AnalyticsConfig is the explicit analytics configuration record.
type AnalyticsConfig struct {
	// Enabled turns event tracking on. Defaults to true.
	Enabled *bool `json:"enabled,omitempty"`
	// Debug logs every tracked event.
	Debug bool `json:"debug,omitempty"`
	// Endpoint receives events as JSON POSTs when set.
	Endpoint string `json:"endpoint,omitempty"`
}

// LoggingConfig mirrors the logging package's config section so that
// Save round-trips it.
type LoggingConfig struct {
	DebugMode  bool            `json:"debug_mode,omitempty"`
	Level      string          `json:"level,omitempty"`
	Categories map[string]bool `json:"categories,omitempty"`
}

// UserConfig holds all BizPrompt configuration from <datadir>/config.json.
type UserConfig struct {
	// Theme for the TUI ("light" or "dark"); empty means auto-detect.
	Theme string `json:"theme,omitempty"`

	// DataDir overrides where state.db, logs/ and prompts/ live.
	DataDir string `json:"data_dir,omitempty"`

	Analytics *AnalyticsConfig `json:"analytics,omitempty"`
	Logging   LoggingConfig    `json:"logging,omitempty"`
}

// DefaultDataDir returns ~/.bizprompt, or a relative fallback when the
// home directory cannot be resolved.
func DefaultDataDir() string {
	if env := os.Getenv("BIZPROMPT_DATA_DIR"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bizprompt"
	}
	return filepath.Join(home, ".bizprompt")
}

// Load reads the config file at <dataDir>/config.json. A missing file
// yields an empty config and no error.
func Load(dataDir string) (*UserConfig, error) {
	cfg := &UserConfig{}

	data, err := os.ReadFile(filepath.Join(dataDir, "config.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config back to <dataDir>/config.json.
func (c *UserConfig) Save(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dataDir, "config.json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetAnalytics resolves the analytics settings: defaults, then file,
// then environment override for the endpoint.
func (c *UserConfig) GetAnalytics() (enabled, debug bool, endpoint string) {
	enabled = true
	if c.Analytics != nil {
		if c.Analytics.Enabled != nil {
			enabled = *c.Analytics.Enabled
		}
		debug = c.Analytics.Debug
		endpoint = c.Analytics.Endpoint
	}
	if env := os.Getenv("BIZPROMPT_ANALYTICS_ENDPOINT"); env != "" {
		endpoint = env
	}
	return enabled, debug, endpoint
}

// ResolveDataDir returns the effective data directory: env override,
// then config file, then the default.
func (c *UserConfig) ResolveDataDir(defaultDir string) string {
	if env := os.Getenv("BIZPROMPT_DATA_DIR"); env != "" {
		return env
	}
	if c.DataDir != "" {
		return c.DataDir
	}
	return defaultDir
}
