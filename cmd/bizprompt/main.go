package main

import (
	"fmt"
	"os"
	"path/filepath"

	"bizprompt/cmd/bizprompt/browse"
	"bizprompt/cmd/bizprompt/ui"
	"bizprompt/internal/analytics"
	"bizprompt/internal/catalog"
	"bizprompt/internal/config"
	"bizprompt/internal/license"
	"bizprompt/internal/logging"
	"bizprompt/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose   bool
	dataDir   string
	themeName string

	// Logger
	logger *zap.Logger

	theApp *app
)

// app bundles everything a command needs: config, persisted state, the
// loaded catalog, and the trackers built on top.
type app struct {
	cfg     *config.UserConfig
	dataDir string

	slots     *store.Slots
	catalog   *catalog.Catalog
	favorites *store.Favorites
	recents   *store.Recents
	gate      *license.Gate
	tracker   *analytics.Tracker
}

// promptsDir is the user extension prompt directory under the data dir.
func (a *app) promptsDir() string {
	return filepath.Join(a.dataDir, "prompts")
}

func (a *app) theme() ui.Theme {
	if themeName != "" {
		return ui.ThemeByName(themeName)
	}
	if a.cfg.Theme != "" {
		return ui.ThemeByName(a.cfg.Theme)
	}
	return ui.DetectTheme()
}

// newApp wires the whole stack. File-backed pieces degrade rather than
// fail: a broken config or store never blocks browsing the catalog.
func newApp() (*app, error) {
	dir := dataDir
	if dir == "" {
		dir = config.DefaultDataDir()
	}

	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		cfg = &config.UserConfig{}
	}
	dir = cfg.ResolveDataDir(dir)

	if err := logging.Initialize(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging unavailable: %v\n", err)
	}

	cat, err := catalog.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in catalog: %w", err)
	}
	cat.Merge(catalog.LoadDirectory(filepath.Join(dir, "prompts")))

	slots := store.Open(filepath.Join(dir, "state.db"))

	enabled, debug, endpoint := cfg.GetAnalytics()
	tracker := analytics.New(analytics.Config{
		Enabled:  enabled,
		Debug:    debug,
		Endpoint: endpoint,
	}, slots)

	return &app{
		cfg:       cfg,
		dataDir:   dir,
		slots:     slots,
		catalog:   cat,
		favorites: store.NewFavorites(slots),
		recents:   store.NewRecents(slots),
		gate:      license.NewGate(slots),
		tracker:   tracker,
	}, nil
}

func (a *app) close() {
	if a.slots != nil {
		_ = a.slots.Close()
	}
	logging.CloseAll()
}

var rootCmd = &cobra.Command{
	Use:   "bizprompt",
	Short: "BizPrompt Vault - business prompt template catalog",
	Long: `BizPrompt Vault is a catalog of professional prompt templates for
business tasks: strategy frameworks, project documents, operational
procedures, analyses, and more.

Browse and search the catalog, fill in template variables, copy the
result to your clipboard, and export prompts or the whole library to
markdown, Excel, JSON, or HTML.

Run without arguments to start the interactive browser.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		theApp, err = newApp()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if theApp != nil {
			theApp.close()
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowser()
	},
}

// runBrowser starts the full-screen interactive catalog browser.
func runBrowser() error {
	model := browse.New(browse.Deps{
		Catalog:    theApp.catalog,
		Favorites:  theApp.favorites,
		Recents:    theApp.recents,
		Gate:       theApp.gate,
		Tracker:    theApp.tracker,
		PromptsDir: theApp.promptsDir(),
		Theme:      theApp.theme(),
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("Browser exited with error", zap.Error(err))
		return fmt.Errorf("browser error: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Override the data directory (default ~/.bizprompt)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme: light or dark (default auto-detect)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
