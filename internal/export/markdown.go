package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bizprompt/internal/catalog"
	"bizprompt/internal/logging"
	"bizprompt/internal/template"
)

// MarkdownContent assembles the markdown document for one prompt:
// metadata header, divider, then the template rendered with bindings.
func MarkdownContent(p catalog.Prompt, bindings map[string]string) string {
	filled := template.Render(p.Template, bindings)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", p.Title)
	fmt.Fprintf(&sb, "**Category:** %s\n", p.Category)
	fmt.Fprintf(&sb, "**Frameworks:** %s\n", strings.Join(p.Frameworks, ", "))
	fmt.Fprintf(&sb, "**Description:** %s\n\n", p.Description)
	sb.WriteString("---\n\n")
	sb.WriteString(filled)
	return sb.String()
}

// WriteMarkdown writes the markdown artifact into dir and returns its
// path.
func WriteMarkdown(p catalog.Prompt, bindings map[string]string, dir string) (string, error) {
	path := filepath.Join(dir, PromptFileName(p.Title, "md"))
	if err := os.WriteFile(path, []byte(MarkdownContent(p, bindings)), 0644); err != nil {
		return "", fmt.Errorf("failed to write markdown export: %w", err)
	}
	logging.Export("Wrote markdown export %s", path)
	return path, nil
}
