package store

import (
	"encoding/json"

	"bizprompt/internal/logging"
)

// List is a JSON-encoded ordered list persisted in a single slot. It is
// the shared shape behind favorites, recently-viewed and the analytics
// queue; mutators live on the typed wrappers.
type List[T any] struct {
	slots *Slots
	key   string
}

// NewList binds a typed list to a slot.
func NewList[T any](slots *Slots, key string) *List[T] {
	return &List[T]{slots: slots, key: key}
}

// Load reads and parses the list. Absence or a corrupt value yields an
// empty list; the parse failure is logged, never propagated.
func (l *List[T]) Load() []T {
	raw, ok := l.slots.Get(l.key)
	if !ok {
		return nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logging.Get(logging.CategoryStore).Warn("Corrupt slot %s, treating as empty: %v", l.key, err)
		return nil
	}
	return items
}

// Save serializes and writes the list back to its slot.
func (l *List[T]) Save(items []T) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to encode slot %s: %v", l.key, err)
		return
	}
	l.slots.Set(l.key, string(data))
}
