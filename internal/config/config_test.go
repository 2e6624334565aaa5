package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Theme)

	enabled, debug, endpoint := cfg.GetAnalytics()
	assert.True(t, enabled, "analytics defaults to enabled")
	assert.False(t, debug)
	assert.Empty(t, endpoint)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	disabled := false
	cfg := &UserConfig{
		Theme: "dark",
		Analytics: &AnalyticsConfig{
			Enabled:  &disabled,
			Debug:    true,
			Endpoint: "https://telemetry.example.com/events",
		},
		Logging: LoggingConfig{DebugMode: true, Level: "debug"},
	}
	require.NoError(t, cfg.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "dark", loaded.Theme)

	enabled, debug, endpoint := loaded.GetAnalytics()
	assert.False(t, enabled)
	assert.True(t, debug)
	assert.Equal(t, "https://telemetry.example.com/events", endpoint)
	assert.True(t, loaded.Logging.DebugMode)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/config.json", []byte("{nope"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	cfg := &UserConfig{DataDir: "/from/file", Analytics: &AnalyticsConfig{Endpoint: "https://file.example.com"}}

	t.Setenv("BIZPROMPT_DATA_DIR", "/from/env")
	t.Setenv("BIZPROMPT_ANALYTICS_ENDPOINT", "https://env.example.com")

	assert.Equal(t, "/from/env", cfg.ResolveDataDir("/default"))
	_, _, endpoint := cfg.GetAnalytics()
	assert.Equal(t, "https://env.example.com", endpoint)
}

func TestResolveDataDirPrecedence(t *testing.T) {
	t.Setenv("BIZPROMPT_DATA_DIR", "")

	cfg := &UserConfig{}
	assert.Equal(t, "/default", cfg.ResolveDataDir("/default"))

	cfg.DataDir = "/from/file"
	assert.Equal(t, "/from/file", cfg.ResolveDataDir("/default"))
}
