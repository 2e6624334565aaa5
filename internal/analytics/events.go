// Package analytics queues user-behavior events in the local slot
// store and optionally forwards them to a configured endpoint. Tracking
// must never break the app: every failure path logs and moves on.
package analytics

// EventType discriminates the event union.
type EventType string

const (
	EventPageView             EventType = "page_view"
	EventPromptView           EventType = "prompt_view"
	EventPromptCopy           EventType = "prompt_copy"
	EventPromptExport         EventType = "prompt_export"
	EventSearch               EventType = "search"
	EventCategoryFilter       EventType = "category_filter"
	EventPremiumUnlockAttempt EventType = "premium_unlock_attempt"
	EventFavoriteToggle       EventType = "favorite_toggle"
	EventFilterModeChange     EventType = "filter_mode_change"
)

// Event is the tagged union of trackable events. Type is always set;
// the remaining fields are populated per shape and omitted otherwise.
// This is the wire contract for any future telemetry backend.
type Event struct {
	Type EventType `json:"type"`

	// page_view
	Page string `json:"page,omitempty"`

	// prompt_view, prompt_copy, prompt_export, favorite_toggle
	PromptID    string `json:"promptId,omitempty"`
	PromptTitle string `json:"promptTitle,omitempty"`

	// prompt_view
	Category string `json:"category,omitempty"`
	Tier     string `json:"tier,omitempty"`

	// prompt_export
	Format string `json:"format,omitempty"`

	// search
	Query        string `json:"query,omitempty"`
	ResultsCount *int   `json:"resultsCount,omitempty"`

	// premium_unlock_attempt
	Success *bool `json:"success,omitempty"`

	// favorite_toggle
	Action string `json:"action,omitempty"`

	// filter_mode_change
	Mode string `json:"mode,omitempty"`
}

// Event constructors, one per shape.

func PageView(page string) Event {
	return Event{Type: EventPageView, Page: page}
}

func PromptView(promptID, promptTitle, category, tier string) Event {
	return Event{Type: EventPromptView, PromptID: promptID, PromptTitle: promptTitle, Category: category, Tier: tier}
}

func PromptCopy(promptID, promptTitle string) Event {
	return Event{Type: EventPromptCopy, PromptID: promptID, PromptTitle: promptTitle}
}

func PromptExport(promptID, promptTitle, format string) Event {
	return Event{Type: EventPromptExport, PromptID: promptID, PromptTitle: promptTitle, Format: format}
}

func Search(query string, resultsCount int) Event {
	return Event{Type: EventSearch, Query: query, ResultsCount: &resultsCount}
}

func CategoryFilter(category string) Event {
	return Event{Type: EventCategoryFilter, Category: category}
}

func PremiumUnlockAttempt(success bool) Event {
	return Event{Type: EventPremiumUnlockAttempt, Success: &success}
}

func FavoriteToggle(promptID, action string) Event {
	return Event{Type: EventFavoriteToggle, PromptID: promptID, Action: action}
}

func FilterModeChange(mode string) Event {
	return Event{Type: EventFilterModeChange, Mode: mode}
}
