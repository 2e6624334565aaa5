package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetLogging() {
	CloseAll()
	loggers = make(map[Category]*Logger)
	logsDir = ""
	dataDir = ""
	config = loggingConfig{}
	logLevel = LevelInfo
}

// TestCategoriesLogWhenDebugEnabled tests that categories create log files when debug_mode is true
func TestCategoriesLogWhenDebugEnabled(t *testing.T) {
	tempDir := t.TempDir()

	configContent := `{
		"logging": {
			"level": "debug",
			"debug_mode": true
		}
	}`
	if err := os.WriteFile(filepath.Join(tempDir, "config.json"), []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	resetLogging()
	defer resetLogging()

	if err := Initialize(tempDir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	Store("favorites slot loaded: %d ids", 3)
	Catalog("catalog ready")
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(tempDir, "logs"))
	if err != nil {
		t.Fatalf("Failed to read logs dir: %v", err)
	}

	found := map[string]bool{}
	for _, e := range entries {
		for _, cat := range []string{"store", "catalog", "boot"} {
			if strings.Contains(e.Name(), "_"+cat+".log") {
				found[cat] = true
			}
		}
	}
	for _, cat := range []string{"store", "catalog", "boot"} {
		if !found[cat] {
			t.Errorf("Expected a log file for category %q", cat)
		}
	}
}

// TestNoLogsWithoutDebugMode tests that nothing is written in production mode
func TestNoLogsWithoutDebugMode(t *testing.T) {
	tempDir := t.TempDir()

	resetLogging()
	defer resetLogging()

	// No config.json at all = production mode
	if err := Initialize(tempDir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	Store("this should go nowhere")
	Analytics("and so should this")

	if _, err := os.Stat(filepath.Join(tempDir, "logs")); !os.IsNotExist(err) {
		t.Error("Expected no logs directory in production mode")
	}
}

func TestCategoryFilter(t *testing.T) {
	tempDir := t.TempDir()

	configContent := `{
		"logging": {
			"level": "info",
			"debug_mode": true,
			"categories": {
				"store": true,
				"analytics": false
			}
		}
	}`
	if err := os.WriteFile(filepath.Join(tempDir, "config.json"), []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	resetLogging()
	defer resetLogging()

	if err := Initialize(tempDir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if !IsCategoryEnabled(CategoryStore) {
		t.Error("store category should be enabled")
	}
	if IsCategoryEnabled(CategoryAnalytics) {
		t.Error("analytics category should be disabled")
	}
	// Unlisted categories default to enabled in debug mode
	if !IsCategoryEnabled(CategoryExport) {
		t.Error("export category should default to enabled")
	}
}
