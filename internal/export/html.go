package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"bizprompt/internal/catalog"
	"bizprompt/internal/logging"
)

//go:embed templates/library.html.tmpl
var libraryTemplate string

// htmlData feeds the library HTML template. CatalogJSON is already
// encoded with HTML-safe escaping, so it can be inlined in a script
// block verbatim.
type htmlData struct {
	ExportedAt   string
	TotalPrompts int
	CatalogJSON  string
}

// LibraryHTML renders the self-contained interactive HTML snapshot of
// the catalog: all data inline, searchable and filterable offline.
func LibraryHTML(prompts []catalog.Prompt, exportedAt time.Time) ([]byte, error) {
	if prompts == nil {
		prompts = []catalog.Prompt{}
	}

	// encoding/json escapes <, > and & by default, which keeps
	// </script> sequences out of the inlined data.
	data, err := json.Marshal(prompts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}

	tmpl, err := template.New("library").Parse(libraryTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse library template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, htmlData{
		ExportedAt:   exportedAt.UTC().Format("2006-01-02"),
		TotalPrompts: len(prompts),
		CatalogJSON:  string(data),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render library HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteLibraryHTML writes the HTML snapshot into dir and returns its
// path.
func WriteLibraryHTML(prompts []catalog.Prompt, exportedAt time.Time, dir string) (string, error) {
	data, err := LibraryHTML(prompts, exportedAt)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, LibraryFileName(exportedAt, "html"))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write library HTML: %w", err)
	}
	logging.Export("Wrote library HTML %s", path)
	return path, nil
}
