package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"bizprompt/cmd/bizprompt/ui"
	"bizprompt/internal/analytics"
	"bizprompt/internal/catalog"
	"bizprompt/internal/export"
	"bizprompt/internal/template"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

var (
	listCategory    string
	listQuery       string
	listFavorites   bool
	listRecent      bool
	listPremiumOnly bool
	listFreeOnly    bool

	renderVars []string

	exportFormat string
	exportOut    string

	libraryFormat string
	libraryOut    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog prompts",
	Long: `Lists prompts from the catalog, optionally narrowed by category,
fuzzy search query, favorites, or viewing history. Search results are
ranked by relevance: title matches score highest, then description,
then tags.`,
	RunE: runList,
}

var showCmd = &cobra.Command{
	Use:   "show [prompt-id]",
	Short: "Show a prompt's details and template",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var renderCmd = &cobra.Command{
	Use:   "render [prompt-id]",
	Short: "Render a prompt template with variable values",
	Long: `Substitutes --var name=value pairs into the prompt template and
prints the result. Placeholders without a value are left intact so the
output can be finished by hand.

Example:
  bizprompt render swot-analysis --var company="Acme Corp" --var market="EU logistics"`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var copyCmd = &cobra.Command{
	Use:   "copy [prompt-id]",
	Short: "Render a prompt and copy it to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runCopy,
}

var exportCmd = &cobra.Command{
	Use:   "export [prompt-id]",
	Short: "Export a single prompt to a file",
	Long: `Writes one prompt as a shareable artifact. Formats:
  markdown  a .md document with the prompt metadata and template
  excel     an .xlsx workbook with metadata, variables, and the full prompt`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Export the whole catalog",
	Long: `Writes the full catalog as a library artifact. Formats:
  excel  an .xlsx workbook with an All Prompts sheet and a category summary
  json   a machine-readable snapshot of every prompt
  html   a self-contained browsable HTML page with search and filtering
  all    every format at once`,
	RunE: runLibrary,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog and usage statistics",
	RunE:  runStats,
}

var statsEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the tail of the tracked event queue",
	RunE:  runStatsEvents,
}

var statsEventsCount int

// resolvePrompt looks up a prompt and enforces the premium gate.
func resolvePrompt(id string) (catalog.Prompt, error) {
	p, ok := theApp.catalog.ByID(id)
	if !ok {
		return catalog.Prompt{}, fmt.Errorf("unknown prompt %q (try 'bizprompt list')", id)
	}
	if p.Tier == catalog.TierPremium && !theApp.gate.Unlocked() {
		return catalog.Prompt{}, fmt.Errorf("%q is a premium prompt; unlock with 'bizprompt license unlock <key>'", id)
	}
	return p, nil
}

// parseVarFlags turns repeated --var name=value flags into bindings.
func parseVarFlags(pairs []string) (map[string]string, error) {
	bindings := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("invalid --var %q (expected name=value)", pair)
		}
		bindings[name] = value
	}
	return bindings, nil
}

func runList(cmd *cobra.Command, args []string) error {
	if listPremiumOnly && listFreeOnly {
		return fmt.Errorf("--premium-only and --free-only are mutually exclusive")
	}

	base := theApp.catalog.All()
	switch {
	case listFavorites:
		favs := make(map[string]bool)
		for _, id := range theApp.favorites.All() {
			favs[id] = true
		}
		kept := base[:0:0]
		for _, p := range base {
			if favs[p.ID] {
				kept = append(kept, p)
			}
		}
		base = kept
	case listRecent:
		kept := make([]catalog.Prompt, 0, len(base))
		for _, id := range theApp.recents.IDs() {
			if p, ok := theApp.catalog.ByID(id); ok {
				kept = append(kept, p)
			}
		}
		base = kept
	}

	if listPremiumOnly || listFreeOnly {
		want := catalog.TierFree
		if listPremiumOnly {
			want = catalog.TierPremium
		}
		kept := base[:0:0]
		for _, p := range base {
			if p.Tier == want {
				kept = append(kept, p)
			}
		}
		base = kept
	}

	cat := catalog.Category(listCategory)
	if listCategory != "" && cat != catalog.CategoryAll && !cat.Valid() {
		return fmt.Errorf("unknown category %q (valid: %s)", listCategory, categoryNames())
	}
	results := catalog.Filter(base, cat, listQuery)

	if q := strings.TrimSpace(listQuery); q != "" {
		theApp.tracker.Track(analytics.Search(q, len(results)))
	}
	if listCategory != "" {
		theApp.tracker.Track(analytics.CategoryFilter(listCategory))
	}
	if listFavorites {
		theApp.tracker.Track(analytics.FilterModeChange("favorites"))
	} else if listRecent {
		theApp.tracker.Track(analytics.FilterModeChange("recent"))
	}

	if len(results) == 0 {
		fmt.Println("No prompts match.")
		return nil
	}

	unlocked := theApp.gate.Unlocked()
	table := ui.NewSimpleTable(
		fmt.Sprintf("Prompts (%d)", len(results)),
		[]string{"ID", "Title", "Category", "Tier"},
	)
	for _, p := range results {
		tier := string(p.Tier)
		if p.Tier == catalog.TierPremium && !unlocked {
			tier = "premium (locked)"
		}
		table.AddRow(p.ID, p.Title, string(p.Category), tier)
	}
	fmt.Print(table.View(ui.NewStyles(theApp.theme())))
	return nil
}

func categoryNames() string {
	cats := catalog.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func runShow(cmd *cobra.Command, args []string) error {
	p, err := resolvePrompt(args[0])
	if err != nil {
		return err
	}

	theApp.recents.Touch(p.ID)
	theApp.tracker.Track(analytics.PromptView(p.ID, p.Title, string(p.Category), string(p.Tier)))

	styles := ui.NewStyles(theApp.theme())
	fmt.Println(styles.Title.Render(p.Title))
	fmt.Printf("ID:          %s\n", p.ID)
	fmt.Printf("Category:    %s\n", p.Category)
	fmt.Printf("Tier:        %s\n", p.Tier)
	if len(p.Frameworks) > 0 {
		fmt.Printf("Frameworks:  %s\n", strings.Join(p.Frameworks, ", "))
	}
	if len(p.Tags) > 0 {
		fmt.Printf("Tags:        %s\n", strings.Join(p.Tags, ", "))
	}
	if p.EstimatedTimeSaved != "" {
		fmt.Printf("Time saved:  %s\n", p.EstimatedTimeSaved)
	}
	fmt.Printf("\n%s\n", p.Description)

	if len(p.Variables) > 0 {
		fmt.Println("\nVariables:")
		for _, v := range p.Variables {
			line := fmt.Sprintf("  {{%s}}", v.Name)
			if v.Description != "" {
				line += "  " + v.Description
			}
			if v.Example != "" {
				line += fmt.Sprintf(" (e.g. %q)", v.Example)
			}
			fmt.Println(line)
		}
	}

	fmt.Println("\n" + styles.Subtitle.Render("Template"))
	fmt.Println(p.Template)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	p, err := resolvePrompt(args[0])
	if err != nil {
		return err
	}
	bindings, err := parseVarFlags(renderVars)
	if err != nil {
		return err
	}

	// Unknown variable names are a mistake worth flagging, not an error:
	// the render still succeeds with them ignored.
	known := make(map[string]bool)
	for _, name := range template.Tokens(p.Template) {
		known[name] = true
	}
	for name := range bindings {
		if !known[name] {
			logger.Warn("Variable not present in template", zap.String("variable", name), zap.String("prompt", p.ID))
		}
	}

	fmt.Println(template.Render(p.Template, bindings))
	return nil
}

func runCopy(cmd *cobra.Command, args []string) error {
	p, err := resolvePrompt(args[0])
	if err != nil {
		return err
	}
	bindings, err := parseVarFlags(renderVars)
	if err != nil {
		return err
	}

	if err := clipboardWriteAll(template.Render(p.Template, bindings)); err != nil {
		return fmt.Errorf("clipboard unavailable: %w", err)
	}
	theApp.tracker.Track(analytics.PromptCopy(p.ID, p.Title))
	fmt.Printf("Copied %q to clipboard.\n", p.Title)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	p, err := resolvePrompt(args[0])
	if err != nil {
		return err
	}
	bindings, err := parseVarFlags(renderVars)
	if err != nil {
		return err
	}

	var path string
	switch exportFormat {
	case export.FormatMarkdown:
		path, err = export.WriteMarkdown(p, bindings, exportOut)
	case export.FormatExcel:
		path, err = export.WritePromptExcel(p, bindings, time.Now(), exportOut)
	default:
		return fmt.Errorf("unknown format %q (markdown or excel)", exportFormat)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	theApp.tracker.Track(analytics.PromptExport(p.ID, p.Title, exportFormat))
	fmt.Printf("Exported to %s\n", path)
	return nil
}

func runLibrary(cmd *cobra.Command, args []string) error {
	prompts := theApp.catalog.All()
	now := time.Now()

	write := func(format string) (string, error) {
		switch format {
		case export.FormatExcel:
			return export.WriteLibraryExcel(prompts, now, libraryOut)
		case export.FormatJSON:
			return export.WriteLibraryJSON(prompts, now, libraryOut)
		case export.FormatHTML:
			return export.WriteLibraryHTML(prompts, now, libraryOut)
		default:
			return "", fmt.Errorf("unknown format %q (excel, json, html, or all)", format)
		}
	}

	formats := []string{libraryFormat}
	if libraryFormat == "all" {
		formats = []string{export.FormatExcel, export.FormatJSON, export.FormatHTML}
	}

	paths := make([]string, len(formats))
	var g errgroup.Group
	for i, format := range formats {
		g.Go(func() error {
			path, err := write(format)
			if err != nil {
				return err
			}
			paths[i] = path
			theApp.tracker.Track(analytics.PromptExport("library", "BizPrompt Library", format))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("library export failed: %w", err)
	}

	for _, path := range paths {
		fmt.Printf("Exported to %s\n", path)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	free, premium := theApp.catalog.CountByTier()
	summary := theApp.tracker.Summarize()

	byCategory := make(map[catalog.Category]int)
	for _, p := range theApp.catalog.All() {
		byCategory[p.Category]++
	}

	styles := ui.NewStyles(theApp.theme())

	table := ui.NewSimpleTable("Catalog", []string{"Category", "Prompts"})
	cats := catalog.Categories()
	sort.SliceStable(cats, func(i, j int) bool {
		return byCategory[cats[i]] > byCategory[cats[j]]
	})
	for _, c := range cats {
		if byCategory[c] > 0 {
			table.AddRow(string(c), fmt.Sprintf("%d", byCategory[c]))
		}
	}
	table.AddRow("total", fmt.Sprintf("%d (%d free, %d premium)", theApp.catalog.Len(), free, premium))
	fmt.Print(table.View(styles))

	usage := ui.NewSimpleTable("Usage", []string{"Metric", "Count"})
	usage.AddRow("favorites", fmt.Sprintf("%d", theApp.favorites.Count()))
	usage.AddRow("recently viewed", fmt.Sprintf("%d", theApp.recents.Count()))
	usage.AddRow("tracked events", fmt.Sprintf("%d", summary.TotalEvents))
	usage.AddRow("prompt views", fmt.Sprintf("%d", summary.PromptViews))
	usage.AddRow("searches", fmt.Sprintf("%d", summary.Searches))
	usage.AddRow("copies", fmt.Sprintf("%d", summary.Copies))
	usage.AddRow("exports", fmt.Sprintf("%d", summary.Exports))
	fmt.Print(usage.View(styles))
	return nil
}

func runStatsEvents(cmd *cobra.Command, args []string) error {
	events := theApp.tracker.Queued()
	if len(events) == 0 {
		fmt.Println("No tracked events yet.")
		return nil
	}
	if statsEventsCount > 0 && len(events) > statsEventsCount {
		events = events[len(events)-statsEventsCount:]
	}
	for _, ev := range events {
		detail := ""
		switch {
		case ev.PromptID != "":
			detail = ev.PromptID
		case ev.Query != "":
			detail = fmt.Sprintf("%q", ev.Query)
		case ev.Category != "":
			detail = ev.Category
		case ev.Mode != "":
			detail = ev.Mode
		case ev.Page != "":
			detail = ev.Page
		}
		fmt.Printf("%-24s %s\n", ev.Type, detail)
	}
	return nil
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Fuzzy search query")
	listCmd.Flags().BoolVar(&listFavorites, "favorites", false, "Only favorited prompts")
	listCmd.Flags().BoolVar(&listRecent, "recent", false, "Only recently viewed prompts")
	listCmd.Flags().BoolVar(&listPremiumOnly, "premium-only", false, "Only premium prompts")
	listCmd.Flags().BoolVar(&listFreeOnly, "free-only", false, "Only free prompts")

	renderCmd.Flags().StringArrayVar(&renderVars, "var", nil, "Variable binding name=value (repeatable)")
	copyCmd.Flags().StringArrayVar(&renderVars, "var", nil, "Variable binding name=value (repeatable)")

	exportCmd.Flags().StringArrayVar(&renderVars, "var", nil, "Variable binding name=value (repeatable)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "markdown", "Export format: markdown or excel")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "Output directory")

	libraryCmd.Flags().StringVarP(&libraryFormat, "format", "f", "excel", "Export format: excel, json, html, or all")
	libraryCmd.Flags().StringVarP(&libraryOut, "out", "o", ".", "Output directory")

	statsEventsCmd.Flags().IntVarP(&statsEventsCount, "count", "n", 20, "Number of events to show")
	statsCmd.AddCommand(statsEventsCmd)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(statsCmd)
}
