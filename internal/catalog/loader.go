// Extension prompt loading. Users can drop their own YAML prompt files
// in <datadir>/prompts/ and they are merged into the catalog behind the
// built-ins.
package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"bizprompt/internal/logging"
)

// LoadDirectory parses all YAML files under dir. A missing directory
// yields no prompts and no error; an unreadable or unparseable file is
// logged and skipped so one bad file never breaks the catalog.
func LoadDirectory(dir string) []Prompt {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Get(logging.CategoryCatalog).Warn("Cannot read extension dir %s: %v", dir, err)
		}
		return nil
	}

	var all []Prompt
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			logging.Get(logging.CategoryCatalog).Warn("Failed to read %s: %v", path, err)
			continue
		}
		prompts, err := parsePromptYAML(raw)
		if err != nil {
			logging.Get(logging.CategoryCatalog).Warn("Failed to parse %s: %v", path, err)
			continue
		}
		logging.CatalogDebug("Loaded %d extension prompts from %s", len(prompts), entry.Name())
		all = append(all, prompts...)
	}
	return all
}
