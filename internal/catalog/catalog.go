package catalog

import (
	"fmt"

	"bizprompt/internal/logging"
)

// Catalog is the fixed in-memory set of prompts for a session.
type Catalog struct {
	prompts []Prompt
	byID    map[string]int
}

// New builds a catalog from validated prompts, preserving order.
// Duplicate ids are an error here; use Merge for extension prompts.
func New(prompts []Prompt) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(prompts))}
	for i := range prompts {
		if err := prompts[i].validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[prompts[i].ID]; dup {
			return nil, fmt.Errorf("duplicate prompt id %q", prompts[i].ID)
		}
		c.byID[prompts[i].ID] = len(c.prompts)
		c.prompts = append(c.prompts, prompts[i])
	}
	return c, nil
}

// All returns the prompts in catalog order. Callers must not mutate.
func (c *Catalog) All() []Prompt {
	return c.prompts
}

// ByID looks up a prompt.
func (c *Catalog) ByID(id string) (Prompt, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Prompt{}, false
	}
	return c.prompts[i], true
}

// Len returns the number of prompts.
func (c *Catalog) Len() int {
	return len(c.prompts)
}

// CountByTier returns the free and premium prompt counts.
func (c *Catalog) CountByTier() (free, premium int) {
	for i := range c.prompts {
		if c.prompts[i].Tier == TierPremium {
			premium++
		} else {
			free++
		}
	}
	return free, premium
}

// Merge appends extension prompts. Invalid entries and ids already in
// the catalog are skipped and logged; built-in data always wins.
func (c *Catalog) Merge(extra []Prompt) {
	for i := range extra {
		p := extra[i]
		if err := p.validate(); err != nil {
			logging.Get(logging.CategoryCatalog).Warn("Skipping extension prompt: %v", err)
			continue
		}
		if _, dup := c.byID[p.ID]; dup {
			logging.Get(logging.CategoryCatalog).Warn("Extension prompt %s shadows a built-in id, skipping", p.ID)
			continue
		}
		c.byID[p.ID] = len(c.prompts)
		c.prompts = append(c.prompts, p)
	}
}
