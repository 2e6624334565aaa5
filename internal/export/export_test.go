package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bizprompt/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var exportedAt = time.Date(2025, 4, 15, 9, 30, 0, 0, time.UTC)

func exportFixture() catalog.Prompt {
	return catalog.Prompt{
		ID:          "swot-analysis",
		Title:       "SWOT Analysis Builder",
		Description: "Structured SWOT analysis",
		Template:    "Analyze {{company}} in {{industry}}.",
		Variables: []catalog.Variable{
			{Name: "company", Description: "Company", Example: "Acme", Required: true},
			{Name: "industry", Description: "Industry", Example: "logistics", Required: true},
		},
		Category:           catalog.CategoryStrategy,
		Frameworks:         []string{"SWOT"},
		Tier:               catalog.TierFree,
		Tags:               []string{"swot", "strategy"},
		EstimatedTimeSaved: "2 hours",
	}
}

func libraryFixture() []catalog.Prompt {
	second := catalog.Prompt{
		ID:       "project-charter",
		Title:    "Project Charter Draft",
		Template: "Charter for {{project}}",
		Category: catalog.CategoryProjectManagement,
		Tier:     catalog.TierPremium,
	}
	return []catalog.Prompt{exportFixture(), second}
}

func TestPromptFileName(t *testing.T) {
	assert.Equal(t, "SWOT_Analysis_Builder.md", PromptFileName("SWOT Analysis Builder", "md"))
	assert.Equal(t, "Tabs_and_spaces.xlsx", PromptFileName("Tabs \t and   spaces", "xlsx"))
}

func TestLibraryFileName(t *testing.T) {
	assert.Equal(t, "BizPrompt_Library_2025-04-15.json", LibraryFileName(exportedAt, "json"))
}

func TestMarkdownContent(t *testing.T) {
	got := MarkdownContent(exportFixture(), map[string]string{"company": "Acme"})

	assert.True(t, strings.HasPrefix(got, "# SWOT Analysis Builder\n\n"))
	assert.Contains(t, got, "**Category:** strategy\n")
	assert.Contains(t, got, "**Frameworks:** SWOT\n")
	assert.Contains(t, got, "---\n\n")
	// Bound variable filled, unbound token preserved
	assert.Contains(t, got, "Analyze Acme in {{industry}}.")
}

func TestMarkdownContentDeterministic(t *testing.T) {
	p := exportFixture()
	bindings := map[string]string{"company": "Acme", "industry": "logistics"}
	first := MarkdownContent(p, bindings)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, MarkdownContent(p, bindings))
	}
}

func TestWriteMarkdown(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteMarkdown(exportFixture(), nil, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "SWOT_Analysis_Builder.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Analyze {{company}} in {{industry}}.")
}

func TestLibraryJSON(t *testing.T) {
	data, err := LibraryJSON(libraryFixture(), exportedAt)
	require.NoError(t, err)

	var snapshot struct {
		ExportedAt   string           `json:"exportedAt"`
		TotalPrompts int              `json:"totalPrompts"`
		Prompts      []catalog.Prompt `json:"prompts"`
	}
	require.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Equal(t, "2025-04-15T09:30:00Z", snapshot.ExportedAt)
	assert.Equal(t, 2, snapshot.TotalPrompts)
	require.Len(t, snapshot.Prompts, 2)
	assert.Equal(t, "swot-analysis", snapshot.Prompts[0].ID)

	// Byte-for-byte deterministic for fixed inputs
	again, err := LibraryJSON(libraryFixture(), exportedAt)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, again))
}

func TestLibraryJSONEmptyCatalog(t *testing.T) {
	data, err := LibraryJSON(nil, exportedAt)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"totalPrompts": 0`)
}

func TestWritePromptExcel(t *testing.T) {
	dir := t.TempDir()
	bindings := map[string]string{"company": "Acme", "industry": "logistics"}

	path, err := WritePromptExcel(exportFixture(), bindings, exportedAt, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "SWOT_Analysis_Builder.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(promptSheetName)
	require.NoError(t, err)

	assert.Equal(t, []string{"Prompt Title", "SWOT Analysis Builder"}, rows[0])
	assert.Equal(t, []string{"Category", "strategy"}, rows[1])
	assert.Equal(t, []string{"VARIABLE", "USER INPUT"}, rows[6])
	// Bindings follow the prompt's variable declaration order
	assert.Equal(t, []string{"company", "Acme"}, rows[7])
	assert.Equal(t, []string{"industry", "logistics"}, rows[8])

	last := rows[len(rows)-1]
	require.NotEmpty(t, last)
	assert.Equal(t, "Analyze Acme in logistics.", last[0])
}

func TestWriteLibraryExcel(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteLibraryExcel(libraryFixture(), exportedAt, dir)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(librarySheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Title", rows[0][0])
	assert.Equal(t, "SWOT Analysis Builder", rows[1][0])
	assert.Equal(t, "company, industry", rows[1][7])
	assert.Equal(t, "premium", rows[2][2])

	summary, err := f.GetRows(summarySheetName)
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, []string{"Category", "Total Prompts", "Free", "Premium"}, summary[0])
	assert.Equal(t, []string{"strategy", "1", "1", "0"}, summary[1])
	assert.Equal(t, []string{"project-management", "1", "0", "1"}, summary[2])
	assert.Equal(t, []string{"TOTAL", "2", "1", "1"}, summary[3])
}

func TestLibraryHTML(t *testing.T) {
	data, err := LibraryHTML(libraryFixture(), exportedAt)
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "exported 2025-04-15")
	assert.Contains(t, html, `"swot-analysis"`)
	// The inline data must not be able to terminate the script block
	assert.NotContains(t, html, "</script>\"")

	// Deterministic
	again, err := LibraryHTML(libraryFixture(), exportedAt)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, again))
}

func TestWriteLibraryHTML(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteLibraryHTML(libraryFixture(), exportedAt, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "BizPrompt_Library_2025-04-15.html"), path)
}
