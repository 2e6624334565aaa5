// Embedded catalog loader. Uses go:embed to bake the built-in prompt
// data into the binary, so the browser works offline with no
// filesystem dependencies.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"bizprompt/internal/logging"

	"gopkg.in/yaml.v3"
)

// embeddedData contains all YAML files from data/ baked into the binary.
//
//go:embed data
var embeddedData embed.FS

// promptFile is the on-disk/embedded YAML document shape.
type promptFile struct {
	Prompts []Prompt `yaml:"prompts"`
}

// LoadEmbedded parses the baked-in catalog. Called once at startup.
func LoadEmbedded() (*Catalog, error) {
	logging.Catalog("Loading embedded prompt catalog")

	var all []Prompt
	err := fs.WalkDir(embeddedData, "data", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		raw, readErr := embeddedData.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("failed to read embedded file %s: %w", path, readErr)
		}
		prompts, parseErr := parsePromptYAML(raw)
		if parseErr != nil {
			return fmt.Errorf("failed to parse embedded file %s: %w", path, parseErr)
		}
		all = append(all, prompts...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c, err := New(all)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog invalid: %w", err)
	}
	logging.Catalog("Embedded catalog ready: %d prompts", c.Len())
	return c, nil
}

func parsePromptYAML(raw []byte) ([]Prompt, error) {
	var file promptFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	return file.Prompts, nil
}
