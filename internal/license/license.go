// Package license gates premium-tier prompts behind a local key check.
// This is a cosmetic gate against a fixed allow-list, not a security
// boundary: keys are matched after trimming and case-folding, and only
// the unlocked flag is persisted - never the key itself.
package license

import (
	"strings"

	"bizprompt/internal/store"
)

// validKeys is the fixed allow-list of accepted license keys.
var validKeys = []string{
	"BIZPROMPT-PRO-2024",
	"BIZPROMPT-PREMIUM-VIP",
	"ENTERPRISE-UNLOCK-KEY",
}

// Validate reports whether raw is an accepted key. Normalization is
// trim plus upper-case; membership is exact.
func Validate(raw string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	for _, key := range validKeys {
		if normalized == key {
			return true
		}
	}
	return false
}

// Gate ties the validation to the persisted unlock flag.
type Gate struct {
	slots *store.Slots
}

// NewGate binds the gate to the slot store.
func NewGate(slots *store.Slots) *Gate {
	return &Gate{slots: slots}
}

// Unlocked reports the persisted unlock state.
func (g *Gate) Unlocked() bool {
	v, ok := g.slots.Get(store.SlotUnlocked)
	return ok && v == "true"
}

// Unlock validates the key and, on success, persists the unlock flag.
// It reports whether the key was accepted.
func (g *Gate) Unlock(raw string) bool {
	if !Validate(raw) {
		return false
	}
	g.slots.Set(store.SlotUnlocked, "true")
	return true
}

// Lock clears the persisted unlock flag.
func (g *Gate) Lock() {
	g.slots.Delete(store.SlotUnlocked)
}
