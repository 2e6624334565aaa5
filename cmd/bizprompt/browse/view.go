package browse

import (
	"fmt"
	"strings"

	"bizprompt/internal/catalog"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	switch m.viewMode {
	case DetailView:
		return m.detailView()
	case UnlockView:
		return m.unlockView()
	default:
		return m.listView()
	}
}

func (m *Model) listView() string {
	var b strings.Builder

	free, premium := m.deps.Catalog.CountByTier()
	header := m.styles.Title.Render("BizPrompt Vault")
	sub := m.styles.Muted.Render(fmt.Sprintf("%d prompts · %d free · %d premium · %s",
		m.deps.Catalog.Len(), free, premium, m.licenseBadge()))
	b.WriteString(m.styles.Header.Render(header + "\n" + sub))
	b.WriteString("\n")

	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.filterBar())
	b.WriteString("\n")

	if len(m.visible) == 0 {
		empty := m.styles.Muted.Render("No prompts match. Adjust the search or press Tab to change category.")
		b.WriteString("\n" + empty + "\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(m.styles.Info.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Footer.Render(
		"enter open · tab category · ctrl+f mode · esc clear/quit · ctrl+c quit"))
	return b.String()
}

func (m *Model) filterBar() string {
	cat := "All Categories"
	if m.category != catalog.CategoryAll {
		cat = categoryLabel(m.category)
	}
	mode := string(m.filterMode)
	results := fmt.Sprintf("%d shown", len(m.visible))
	return m.styles.Subtitle.Render(
		fmt.Sprintf("Category: %s   Mode: %s   %s", cat, mode, results))
}

func (m *Model) detailView() string {
	if m.selected == nil {
		return ""
	}
	p := *m.selected
	var b strings.Builder

	badge := m.styles.FreeBadge.Render("FREE")
	if p.Tier == catalog.TierPremium {
		badge = m.styles.PremiumBadge.Render("PREMIUM")
	}
	fav := ""
	if m.deps.Favorites.Contains(p.ID) {
		fav = " ♥"
	}
	b.WriteString(m.styles.Header.Render(m.styles.Title.Render(p.Title+fav) + " " + badge))
	b.WriteString("\n")

	if len(m.varInputs) > 0 {
		b.WriteString(m.styles.Subtitle.Render("Variables (tab to move between fields)"))
		b.WriteString("\n")
		for i, input := range m.varInputs {
			label := m.styles.Bold.Render(m.varNames[i] + ": ")
			if i == m.varFocus {
				label = m.styles.Info.Render("› ") + label
			} else {
				label = "  " + label
			}
			b.WriteString(label + input.View() + "\n")
		}
		b.WriteString(m.styles.RenderDivider(m.width) + "\n")
	}

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.exporting != "" {
		b.WriteString(m.spinner.View() + " " +
			m.styles.Info.Render("Exporting "+m.exporting+"..."))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Success.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Footer.Render(
		"ctrl+y copy · ctrl+e excel · ctrl+x markdown · ctrl+b favorite · esc back"))
	return b.String()
}

func (m *Model) unlockView() string {
	var lines []string
	lines = append(lines,
		m.styles.Title.Render("Unlock Premium Prompts"),
		"",
		m.styles.Body.Render("This prompt is part of the premium tier."),
		m.styles.Body.Render("Enter your license key to unlock the full catalog."),
		"",
		m.unlockInput.View(),
	)
	if m.unlockMsg != "" {
		lines = append(lines, "", m.styles.Error.Render(m.unlockMsg))
	}
	lines = append(lines, "", m.styles.Muted.Render("enter submit · esc back"))

	card := m.styles.Card.Render(strings.Join(lines, "\n"))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
	}
	return card
}

func (m *Model) licenseBadge() string {
	if m.deps.Gate.Unlocked() {
		return "premium unlocked"
	}
	return "free tier"
}
