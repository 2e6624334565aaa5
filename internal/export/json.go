package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bizprompt/internal/catalog"
	"bizprompt/internal/logging"
)

// librarySnapshot is the JSON artifact shape for the full catalog.
type librarySnapshot struct {
	ExportedAt   string           `json:"exportedAt"`
	TotalPrompts int              `json:"totalPrompts"`
	Prompts      []catalog.Prompt `json:"prompts"`
}

// LibraryJSON renders the full-catalog snapshot, pretty-printed.
func LibraryJSON(prompts []catalog.Prompt, exportedAt time.Time) ([]byte, error) {
	if prompts == nil {
		prompts = []catalog.Prompt{}
	}
	snapshot := librarySnapshot{
		ExportedAt:   exportedAt.UTC().Format(time.RFC3339),
		TotalPrompts: len(prompts),
		Prompts:      prompts,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode library snapshot: %w", err)
	}
	return data, nil
}

// WriteLibraryJSON writes the snapshot into dir and returns its path.
func WriteLibraryJSON(prompts []catalog.Prompt, exportedAt time.Time, dir string) (string, error) {
	data, err := LibraryJSON(prompts, exportedAt)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, LibraryFileName(exportedAt, "json"))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write library snapshot: %w", err)
	}
	logging.Export("Wrote library JSON %s", path)
	return path, nil
}
