package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupApp wires a fresh app against a temp data dir and resets the
// flag globals that commands read.
func setupApp(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	dataDir = t.TempDir()

	listCategory, listQuery = "", ""
	listFavorites, listRecent = false, false
	listPremiumOnly, listFreeOnly = false, false
	renderVars = nil
	exportFormat, exportOut = "markdown", t.TempDir()
	libraryFormat, libraryOut = "excel", t.TempDir()

	var err error
	theApp, err = newApp()
	require.NoError(t, err)
	t.Cleanup(func() {
		theApp.close()
		theApp = nil
		dataDir = ""
	})
}

// capture collects stdout produced by fn.
func capture(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	_ = w.Close()
	os.Stdout = orig
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out), runErr
}

func TestListAllPrompts(t *testing.T) {
	setupApp(t)
	out, err := capture(t, func() error { return runList(&cobra.Command{}, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "swot-analysis")
	assert.Contains(t, out, "premium (locked)")
}

func TestListByCategoryAndQuery(t *testing.T) {
	setupApp(t)
	listCategory = "strategy"
	listQuery = "swot"
	out, err := capture(t, func() error { return runList(&cobra.Command{}, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "swot-analysis")
	assert.NotContains(t, out, "sprint-retro-facilitator")
}

func TestListUnknownCategory(t *testing.T) {
	setupApp(t)
	listCategory = "astrology"
	_, err := capture(t, func() error { return runList(&cobra.Command{}, nil) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestListTierFlagsConflict(t *testing.T) {
	setupApp(t)
	listPremiumOnly, listFreeOnly = true, true
	_, err := capture(t, func() error { return runList(&cobra.Command{}, nil) })
	require.Error(t, err)
}

func TestShowTouchesRecents(t *testing.T) {
	setupApp(t)
	out, err := capture(t, func() error { return runShow(&cobra.Command{}, []string{"swot-analysis"}) })
	require.NoError(t, err)
	assert.Contains(t, out, "SWOT Analysis")
	assert.Contains(t, out, "{{")
	assert.Equal(t, []string{"swot-analysis"}, theApp.recents.IDs())
}

func TestShowPremiumLocked(t *testing.T) {
	setupApp(t)
	var premiumID string
	for _, p := range theApp.catalog.All() {
		if p.Tier == "premium" {
			premiumID = p.ID
			break
		}
	}
	require.NotEmpty(t, premiumID)

	_, err := capture(t, func() error { return runShow(&cobra.Command{}, []string{premiumID}) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "premium")

	// Unlocking makes the same command succeed.
	require.True(t, theApp.gate.Unlock("BIZPROMPT-PRO-2024"))
	_, err = capture(t, func() error { return runShow(&cobra.Command{}, []string{premiumID}) })
	assert.NoError(t, err)
}

func TestRenderSubstitutesVars(t *testing.T) {
	setupApp(t)
	renderVars = []string{"company=Acme Corp"}
	out, err := capture(t, func() error { return runRender(&cobra.Command{}, []string{"swot-analysis"}) })
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Corp")
	assert.NotContains(t, out, "{{company}}")
}

func TestRenderRejectsMalformedVar(t *testing.T) {
	setupApp(t)
	renderVars = []string{"no-equals-sign"}
	_, err := capture(t, func() error { return runRender(&cobra.Command{}, []string{"swot-analysis"}) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name=value")
}

func TestCopyUsesClipboard(t *testing.T) {
	setupApp(t)
	var copied string
	orig := clipboardWriteAll
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}
	defer func() { clipboardWriteAll = orig }()

	_, err := capture(t, func() error { return runCopy(&cobra.Command{}, []string{"swot-analysis"}) })
	require.NoError(t, err)
	assert.NotEmpty(t, copied)
}

func TestExportMarkdown(t *testing.T) {
	setupApp(t)
	out, err := capture(t, func() error { return runExport(&cobra.Command{}, []string{"swot-analysis"}) })
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to ")

	entries, err := os.ReadDir(exportOut)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".md"))
}

func TestExportUnknownFormat(t *testing.T) {
	setupApp(t)
	exportFormat = "pdf"
	_, err := capture(t, func() error { return runExport(&cobra.Command{}, []string{"swot-analysis"}) })
	require.Error(t, err)
}

func TestLibraryAllFormats(t *testing.T) {
	setupApp(t)
	libraryFormat = "all"
	out, err := capture(t, func() error { return runLibrary(&cobra.Command{}, nil) })
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "Exported to "))

	var exts []string
	entries, err := os.ReadDir(libraryOut)
	require.NoError(t, err)
	for _, e := range entries {
		exts = append(exts, filepath.Ext(e.Name()))
	}
	assert.ElementsMatch(t, []string{".xlsx", ".json", ".html"}, exts)
}

func TestFavoritesLifecycle(t *testing.T) {
	setupApp(t)
	cmd := &cobra.Command{}

	_, err := capture(t, func() error { return favoritesAddCmd.RunE(cmd, []string{"swot-analysis"}) })
	require.NoError(t, err)
	assert.True(t, theApp.favorites.Contains("swot-analysis"))

	_, err = capture(t, func() error { return favoritesAddCmd.RunE(cmd, []string{"nope"}) })
	require.Error(t, err)

	out, err := capture(t, func() error { return runFavoritesList(cmd, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "swot-analysis")

	_, err = capture(t, func() error { return favoritesRemoveCmd.RunE(cmd, []string{"swot-analysis"}) })
	require.NoError(t, err)
	assert.False(t, theApp.favorites.Contains("swot-analysis"))

	events := theApp.tracker.Queued()
	require.Len(t, events, 2)
	assert.Equal(t, "add", events[0].Action)
	assert.Equal(t, "remove", events[1].Action)
}

func TestLicenseLifecycle(t *testing.T) {
	setupApp(t)
	cmd := &cobra.Command{}

	out, err := capture(t, func() error { return runLicenseStatus(cmd, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "Free tier")

	_, err = capture(t, func() error { return licenseUnlockCmd.RunE(cmd, []string{"bad-key"}) })
	require.Error(t, err)

	_, err = capture(t, func() error { return licenseUnlockCmd.RunE(cmd, []string{"bizprompt-pro-2024"}) })
	require.NoError(t, err)
	assert.True(t, theApp.gate.Unlocked())

	out, err = capture(t, func() error { return runLicenseStatus(cmd, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "Premium unlocked")

	_, err = capture(t, func() error { return licenseLockCmd.RunE(cmd, nil) })
	require.NoError(t, err)
	assert.False(t, theApp.gate.Unlocked())
}

func TestStats(t *testing.T) {
	setupApp(t)
	_, err := capture(t, func() error { return runShow(&cobra.Command{}, []string{"swot-analysis"}) })
	require.NoError(t, err)

	out, err := capture(t, func() error { return runStats(&cobra.Command{}, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "strategy")
	assert.Contains(t, out, "prompt views")

	statsEventsCount = 20
	out, err = capture(t, func() error { return runStatsEvents(&cobra.Command{}, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "prompt_view")
	assert.Contains(t, out, "swot-analysis")
}
