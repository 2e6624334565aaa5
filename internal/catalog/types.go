// Package catalog holds the prompt template catalog: the embedded
// built-in data, optional user extension prompts, and the
// search/category filter over them. Prompts are loaded once at startup
// and read-only afterwards.
package catalog

import "fmt"

// Category classifies a prompt by business function.
type Category string

const (
	CategoryAll               Category = "all" // filter pseudo-category, never on a prompt
	CategoryStrategy          Category = "strategy"
	CategoryProjectManagement Category = "project-management"
	CategoryOperations        Category = "operations"
	CategoryBusinessAnalysis  Category = "business-analysis"
	CategoryFinancial         Category = "financial"
	CategoryHRTalent          Category = "hr-talent"
	CategorySales             Category = "sales"
)

// Categories lists the real categories in display order.
func Categories() []Category {
	return []Category{
		CategoryStrategy,
		CategoryProjectManagement,
		CategoryOperations,
		CategoryBusinessAnalysis,
		CategoryFinancial,
		CategoryHRTalent,
		CategorySales,
	}
}

// Valid reports whether c names a real category.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Tier is the access classification of a prompt.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t == TierFree || t == TierPremium
}

// Variable describes one {{name}} placeholder of a template.
type Variable struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Example     string `yaml:"example" json:"example"`
	Required    bool   `yaml:"required" json:"required"`
}

// Prompt is one immutable catalog entry.
type Prompt struct {
	ID                 string     `yaml:"id" json:"id"`
	Title              string     `yaml:"title" json:"title"`
	Description        string     `yaml:"description" json:"description"`
	Template           string     `yaml:"template" json:"template"`
	Variables          []Variable `yaml:"variables" json:"variables"`
	Category           Category   `yaml:"category" json:"category"`
	Frameworks         []string   `yaml:"frameworks" json:"frameworks"`
	Tier               Tier       `yaml:"tier" json:"tier"`
	Tags               []string   `yaml:"tags" json:"tags"`
	EstimatedTimeSaved string     `yaml:"estimatedTimeSaved" json:"estimatedTimeSaved"`
}

// validate checks the fields the loaders depend on.
func (p *Prompt) validate() error {
	if p.ID == "" {
		return fmt.Errorf("prompt missing id")
	}
	if p.Title == "" {
		return fmt.Errorf("prompt %s missing title", p.ID)
	}
	if p.Template == "" {
		return fmt.Errorf("prompt %s missing template", p.ID)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("prompt %s has unknown category %q", p.ID, p.Category)
	}
	if p.Tier == "" {
		p.Tier = TierFree
	}
	if !p.Tier.Valid() {
		return fmt.Errorf("prompt %s has unknown tier %q", p.ID, p.Tier)
	}
	return nil
}
