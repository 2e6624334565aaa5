// Package browse implements the interactive catalog browser: a
// searchable, filterable prompt list with a detail pane for filling
// template variables, copying, and exporting.
package browse

import (
	"fmt"
	"path/filepath"
	"strings"

	"bizprompt/cmd/bizprompt/ui"
	"bizprompt/internal/analytics"
	"bizprompt/internal/catalog"
	"bizprompt/internal/license"
	"bizprompt/internal/logging"
	"bizprompt/internal/store"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/fsnotify/fsnotify"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// ViewMode determines which pane is focused/active
type ViewMode int

const (
	ListView ViewMode = iota
	DetailView
	UnlockView
)

// FilterMode narrows the base set before search: everything, favorites
// only, or the recently-viewed history.
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterFavorites FilterMode = "favorites"
	FilterRecent    FilterMode = "recent"
)

// next cycles all -> favorites -> recent -> all.
func (f FilterMode) next() FilterMode {
	switch f {
	case FilterAll:
		return FilterFavorites
	case FilterFavorites:
		return FilterRecent
	default:
		return FilterAll
	}
}

// Deps wires the browser to the rest of the app.
type Deps struct {
	Catalog   *catalog.Catalog
	Favorites *store.Favorites
	Recents   *store.Recents
	Gate      *license.Gate
	Tracker   *analytics.Tracker

	// ExportDir receives export artifacts (default: working directory).
	ExportDir string
	// PromptsDir is the user extension directory; when set it is
	// watched and the catalog reloads on changes.
	PromptsDir string

	Theme ui.Theme
}

// promptItem adapts catalog.Prompt to list.Item.
type promptItem struct {
	prompt   catalog.Prompt
	favorite bool
	locked   bool
}

func (i promptItem) Title() string {
	title := i.prompt.Title
	if i.locked {
		title = "🔒 " + title
	}
	if i.favorite {
		title = title + " ♥"
	}
	return title
}

func (i promptItem) Description() string {
	return fmt.Sprintf("[%s] %s", i.prompt.Category, i.prompt.Description)
}

func (i promptItem) FilterValue() string { return i.prompt.Title }

// Model is the bubbletea model for the interactive browser.
type Model struct {
	deps   Deps
	styles ui.Styles

	// UI components
	list        list.Model
	search      textinput.Model
	viewport    viewport.Model
	spinner     spinner.Model
	unlockInput textinput.Model
	renderer    *glamour.TermRenderer

	viewMode   ViewMode
	filterMode FilterMode
	category   catalog.Category
	visible    []catalog.Prompt

	// Detail pane state; varInputs are discarded when the pane closes.
	selected  *catalog.Prompt
	varInputs []textinput.Model
	varNames  []string
	varFocus  int

	// In-flight export format, empty when idle. Closing the detail
	// pane cancels the pending completion.
	exporting string

	status    string
	unlockMsg string
	width     int
	height    int

	watcher *fsnotify.Watcher
}

// New constructs the browser model and tracks the page view.
func New(deps Deps) *Model {
	styles := ui.NewStyles(deps.Theme)

	search := textinput.New()
	search.Placeholder = "Search for a prompt (e.g. 'McKinsey', 'Project Charter')..."
	search.Prompt = "🔍 "
	search.Focus()

	unlockInput := textinput.New()
	unlockInput.Placeholder = "BIZPROMPT-..."
	unlockInput.Prompt = "Key: "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(deps.Theme.Accent).BorderForeground(deps.Theme.Accent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(deps.Theme.Muted).BorderForeground(deps.Theme.Accent)

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false) // weighted fuzzy search replaces list filtering
	l.SetShowStatusBar(false)

	m := &Model{
		deps:        deps,
		styles:      styles,
		list:        l,
		search:      search,
		viewport:    viewport.New(0, 0),
		spinner:     sp,
		unlockInput: unlockInput,
		viewMode:    ListView,
		filterMode:  FilterAll,
		category:    catalog.CategoryAll,
	}
	m.initWatcher()
	m.recompute()

	deps.Tracker.Track(analytics.PageView("browse"))
	return m
}

// Init starts the spinner and the extension dir watcher pump.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForCatalogChange())
}

// Close releases the filesystem watcher.
func (m *Model) Close() {
	if m.watcher != nil {
		_ = m.watcher.Close()
		m.watcher = nil
	}
}

// initWatcher arms fsnotify on the extension prompt directory. Failure
// just means no live reload.
func (m *Model) initWatcher() {
	if m.deps.PromptsDir == "" {
		return
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Get(logging.CategoryUI).Warn("Cannot create catalog watcher: %v", err)
		return
	}
	if err := watcher.Add(m.deps.PromptsDir); err != nil {
		logging.UIDebug("Not watching %s: %v", m.deps.PromptsDir, err)
		_ = watcher.Close()
		return
	}
	m.watcher = watcher
}

// recompute rebuilds the visible prompt set: filter mode, then
// category, then the weighted fuzzy query.
func (m *Model) recompute() {
	base := m.deps.Catalog.All()

	switch m.filterMode {
	case FilterFavorites:
		favs := make(map[string]bool)
		for _, id := range m.deps.Favorites.All() {
			favs[id] = true
		}
		kept := make([]catalog.Prompt, 0, len(favs))
		for _, p := range base {
			if favs[p.ID] {
				kept = append(kept, p)
			}
		}
		base = kept
	case FilterRecent:
		kept := make([]catalog.Prompt, 0, store.MaxRecent)
		for _, id := range m.deps.Recents.IDs() {
			if p, ok := m.deps.Catalog.ByID(id); ok {
				kept = append(kept, p)
			}
		}
		base = kept
	}

	m.visible = catalog.Filter(base, m.category, m.search.Value())

	unlocked := m.deps.Gate.Unlocked()
	items := make([]list.Item, len(m.visible))
	for i, p := range m.visible {
		items[i] = promptItem{
			prompt:   p,
			favorite: m.deps.Favorites.Contains(p.ID),
			locked:   p.Tier == catalog.TierPremium && !unlocked,
		}
	}
	m.list.SetItems(items)
}

// currentPrompt returns the prompt under the list cursor.
func (m *Model) currentPrompt() (catalog.Prompt, bool) {
	item, ok := m.list.SelectedItem().(promptItem)
	if !ok {
		return catalog.Prompt{}, false
	}
	return item.prompt, true
}

// bindings collects the variable form values, skipping empties.
func (m *Model) bindings() map[string]string {
	out := make(map[string]string, len(m.varInputs))
	for i, input := range m.varInputs {
		if v := strings.TrimSpace(input.Value()); v != "" {
			out[m.varNames[i]] = v
		}
	}
	return out
}

// exportDir falls back to the working directory.
func (m *Model) exportDir() string {
	if m.deps.ExportDir != "" {
		return m.deps.ExportDir
	}
	return "."
}

// categoryLabel humanizes a category for the filter bar.
func categoryLabel(c catalog.Category) string {
	return strings.ReplaceAll(string(c), "-", " ")
}

// nextCategory cycles all -> each category -> all.
func nextCategory(c catalog.Category) catalog.Category {
	cats := catalog.Categories()
	if c == catalog.CategoryAll {
		return cats[0]
	}
	for i, known := range cats {
		if known == c {
			if i == len(cats)-1 {
				return catalog.CategoryAll
			}
			return cats[i+1]
		}
	}
	return catalog.CategoryAll
}

// isYAML reports whether a watched path looks like a prompt file.
func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
