package store

import "time"

// MaxRecent caps the recently-viewed history.
const MaxRecent = 10

// RecentItem is one history entry. Position in the list encodes
// recency; ViewedAt is informational.
type RecentItem struct {
	ID       string `json:"id"`
	ViewedAt int64  `json:"viewedAt"`
}

// Recents is the capped, most-recent-first, duplicate-free history of
// viewed prompt ids.
type Recents struct {
	list *List[RecentItem]
	now  func() time.Time
}

// NewRecents binds the history to its slot.
func NewRecents(slots *Slots) *Recents {
	return &Recents{
		list: NewList[RecentItem](slots, SlotRecents),
		now:  time.Now,
	}
}

// Touch records a view of id: any existing entry is removed, the id is
// prepended with the current timestamp, and the list is truncated to
// MaxRecent entries.
func (r *Recents) Touch(id string) {
	items := r.list.Load()
	kept := make([]RecentItem, 0, len(items)+1)
	kept = append(kept, RecentItem{ID: id, ViewedAt: r.now().UnixMilli()})
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) > MaxRecent {
		kept = kept[:MaxRecent]
	}
	r.list.Save(kept)
}

// Items returns the history entries, most recent first.
func (r *Recents) Items() []RecentItem {
	return r.list.Load()
}

// IDs returns just the ids, most recent first.
func (r *Recents) IDs() []string {
	items := r.list.Load()
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// Clear empties the history.
func (r *Recents) Clear() {
	r.list.Save(nil)
}

// Count returns the number of history entries.
func (r *Recents) Count() int {
	return len(r.list.Load())
}
