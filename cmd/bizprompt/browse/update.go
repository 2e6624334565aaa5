package browse

import (
	"fmt"
	"time"

	"bizprompt/internal/analytics"
	"bizprompt/internal/catalog"
	"bizprompt/internal/export"
	"bizprompt/internal/logging"
	"bizprompt/internal/template"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// exportDelay keeps the spinner visible long enough for the user to
// register that an artifact is being produced.
const exportDelay = 800 * time.Millisecond

type (
	// catalogChangedMsg fires when the extension dir changes on disk.
	catalogChangedMsg struct{}

	// catalogReloadedMsg carries the freshly rebuilt catalog.
	catalogReloadedMsg struct {
		catalog *catalog.Catalog
	}

	// exportTickMsg fires when the export delay elapses.
	exportTickMsg struct {
		id     string
		format string
	}

	// exportDoneMsg reports the written artifact.
	exportDoneMsg struct {
		id     string
		title  string
		format string
		path   string
		err    error
	}
)

// waitForCatalogChange blocks on the watcher until a prompt file
// changes. The command is re-armed after each delivery.
func (m *Model) waitForCatalogChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events, errs := m.watcher.Events, m.watcher.Errors
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				if isYAML(ev.Name) {
					return catalogChangedMsg{}
				}
			case err, ok := <-errs:
				if !ok {
					return nil
				}
				logging.UIDebug("Catalog watcher error: %v", err)
			}
		}
	}
}

// reloadCatalog rebuilds embedded + extension prompts off the UI loop.
func (m *Model) reloadCatalog() tea.Cmd {
	dir := m.deps.PromptsDir
	return func() tea.Msg {
		cat, err := catalog.LoadEmbedded()
		if err != nil {
			logging.Get(logging.CategoryCatalog).Error("Reload failed: %v", err)
			return nil
		}
		cat.Merge(catalog.LoadDirectory(dir))
		return catalogReloadedMsg{catalog: cat}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case catalogChangedMsg:
		return m, tea.Batch(m.reloadCatalog(), m.waitForCatalogChange())

	case catalogReloadedMsg:
		m.deps.Catalog = msg.catalog
		m.recompute()
		m.status = fmt.Sprintf("Catalog reloaded (%d prompts)", msg.catalog.Len())
		return m, nil

	case exportTickMsg:
		// Stale ticks arrive after the detail pane closed or the
		// selection changed; drop them.
		if m.viewMode != DetailView || m.selected == nil ||
			m.selected.ID != msg.id || m.exporting != msg.format {
			return m, nil
		}
		return m, m.runExport(*m.selected, msg.format, m.bindings())

	case exportDoneMsg:
		if m.exporting == msg.format && m.selected != nil && m.selected.ID == msg.id {
			m.exporting = ""
			if msg.err != nil {
				m.status = fmt.Sprintf("Export failed: %v", msg.err)
			} else {
				m.status = "Exported to " + msg.path
			}
		}
		if msg.err == nil {
			m.deps.Tracker.Track(analytics.PromptExport(msg.id, msg.title, msg.format))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.Close()
		return m, tea.Quit
	}
	switch m.viewMode {
	case DetailView:
		return m.handleDetailKey(msg)
	case UnlockView:
		return m.handleUnlockKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown, tea.KeyHome, tea.KeyEnd:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case tea.KeyTab:
		m.category = nextCategory(m.category)
		m.recompute()
		m.deps.Tracker.Track(analytics.CategoryFilter(string(m.category)))
		return m, nil

	case tea.KeyCtrlF:
		m.filterMode = m.filterMode.next()
		m.recompute()
		m.deps.Tracker.Track(analytics.FilterModeChange(string(m.filterMode)))
		return m, nil

	case tea.KeyEsc:
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.recompute()
			return m, nil
		}
		m.Close()
		return m, tea.Quit

	case tea.KeyEnter:
		if query := m.search.Value(); query != "" {
			m.deps.Tracker.Track(analytics.Search(query, len(m.visible)))
		}
		p, ok := m.currentPrompt()
		if !ok {
			return m, nil
		}
		if p.Tier == catalog.TierPremium && !m.deps.Gate.Unlocked() {
			m.viewMode = UnlockView
			m.unlockMsg = ""
			m.unlockInput.SetValue("")
			m.unlockInput.Focus()
			return m, nil
		}
		m.openDetail(p)
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.recompute()
	}
	return m, cmd
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeDetail()
		return m, nil

	case tea.KeyTab, tea.KeyShiftTab:
		if len(m.varInputs) == 0 {
			return m, nil
		}
		m.varInputs[m.varFocus].Blur()
		if msg.Type == tea.KeyTab {
			m.varFocus = (m.varFocus + 1) % len(m.varInputs)
		} else {
			m.varFocus = (m.varFocus - 1 + len(m.varInputs)) % len(m.varInputs)
		}
		m.varInputs[m.varFocus].Focus()
		return m, nil

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyCtrlY:
		return m, m.copySelected()

	case tea.KeyCtrlB:
		if m.selected != nil {
			favorited := m.deps.Favorites.Toggle(m.selected.ID)
			action := "remove"
			if favorited {
				action = "add"
			}
			m.deps.Tracker.Track(analytics.FavoriteToggle(m.selected.ID, action))
			if favorited {
				m.status = "Added to favorites"
			} else {
				m.status = "Removed from favorites"
			}
			m.recompute()
		}
		return m, nil

	case tea.KeyCtrlE:
		return m, m.beginExport(export.FormatExcel)

	case tea.KeyCtrlX:
		return m, m.beginExport(export.FormatMarkdown)
	}

	if len(m.varInputs) > 0 {
		var cmd tea.Cmd
		m.varInputs[m.varFocus], cmd = m.varInputs[m.varFocus].Update(msg)
		m.refreshPreview()
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleUnlockKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.viewMode = ListView
		m.unlockInput.Blur()
		return m, nil

	case tea.KeyEnter:
		ok := m.deps.Gate.Unlock(m.unlockInput.Value())
		m.deps.Tracker.Track(analytics.PremiumUnlockAttempt(ok))
		if !ok {
			m.unlockMsg = "Invalid license key. Please try again."
			return m, nil
		}
		m.unlockInput.Blur()
		m.recompute()
		m.status = "Premium prompts unlocked"
		if p, ok := m.currentPrompt(); ok {
			m.openDetail(p)
		} else {
			m.viewMode = ListView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.unlockInput, cmd = m.unlockInput.Update(msg)
	return m, cmd
}

// openDetail records the view and builds the variable form from the
// prompt's template tokens.
func (m *Model) openDetail(p catalog.Prompt) {
	m.selected = &p
	m.viewMode = DetailView
	m.status = ""
	m.exporting = ""

	m.deps.Recents.Touch(p.ID)
	m.deps.Tracker.Track(analytics.PromptView(p.ID, p.Title, string(p.Category), string(p.Tier)))

	m.varNames = template.Tokens(p.Template)
	m.varInputs = make([]textinput.Model, len(m.varNames))
	byName := make(map[string]catalog.Variable, len(p.Variables))
	for _, v := range p.Variables {
		byName[v.Name] = v
	}
	for i, name := range m.varNames {
		input := textinput.New()
		input.Prompt = ""
		if v, ok := byName[name]; ok && v.Example != "" {
			input.Placeholder = v.Example
		} else {
			input.Placeholder = name
		}
		m.varInputs[i] = input
	}
	m.varFocus = 0
	if len(m.varInputs) > 0 {
		m.varInputs[0].Focus()
	}
	m.refreshPreview()
}

// closeDetail discards form state and cancels any pending export.
func (m *Model) closeDetail() {
	m.selected = nil
	m.varInputs = nil
	m.varNames = nil
	m.exporting = ""
	m.status = ""
	m.viewMode = ListView
	m.recompute()
}

// refreshPreview re-renders the detail viewport through glamour with
// the current variable bindings substituted.
func (m *Model) refreshPreview() {
	if m.selected == nil {
		return
	}
	md := export.MarkdownContent(*m.selected, m.bindings())
	if m.renderer == nil {
		m.viewport.SetContent(md)
		return
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		logging.UIDebug("Markdown render failed: %v", err)
		m.viewport.SetContent(md)
		return
	}
	m.viewport.SetContent(out)
}

// copySelected renders the template with bindings and writes it to the
// system clipboard.
func (m *Model) copySelected() tea.Cmd {
	if m.selected == nil {
		return nil
	}
	rendered := template.Render(m.selected.Template, m.bindings())
	if err := clipboardWriteAll(rendered); err != nil {
		m.status = "Clipboard unavailable"
		logging.UIDebug("Clipboard write failed: %v", err)
		return nil
	}
	m.status = "Copied to clipboard"
	m.deps.Tracker.Track(analytics.PromptCopy(m.selected.ID, m.selected.Title))
	return nil
}

// beginExport starts the spinner and schedules the actual write.
func (m *Model) beginExport(format string) tea.Cmd {
	if m.selected == nil || m.exporting != "" {
		return nil
	}
	m.exporting = format
	m.status = ""
	id := m.selected.ID
	return tea.Batch(
		m.spinner.Tick,
		tea.Tick(exportDelay, func(time.Time) tea.Msg {
			return exportTickMsg{id: id, format: format}
		}),
	)
}

// runExport performs the artifact write off the UI loop.
func (m *Model) runExport(p catalog.Prompt, format string, bindings map[string]string) tea.Cmd {
	dir := m.exportDir()
	return func() tea.Msg {
		var path string
		var err error
		switch format {
		case export.FormatExcel:
			path, err = export.WritePromptExcel(p, bindings, time.Now(), dir)
		default:
			path, err = export.WriteMarkdown(p, bindings, dir)
		}
		return exportDoneMsg{id: p.ID, title: p.Title, format: format, path: path, err: err}
	}
}

// layout resizes components and rebuilds the glamour renderer for the
// new wrap width.
func (m *Model) layout() {
	headerHeight := 6
	footerHeight := 2
	body := m.height - headerHeight - footerHeight
	if body < 1 {
		body = 1
	}
	m.list.SetSize(m.width, body)
	m.viewport.Width = m.width
	m.viewport.Height = body
	m.search.Width = m.width - 6

	wrap := m.width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		logging.UIDebug("Glamour renderer init failed: %v", err)
	} else {
		m.renderer = r
	}
	m.refreshPreview()
}
