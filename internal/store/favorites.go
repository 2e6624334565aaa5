package store

// Favorites is the persisted set of favorited prompt ids. Membership is
// what matters; the slot keeps insertion order and never holds
// duplicates.
type Favorites struct {
	list *List[string]
}

// NewFavorites binds the favorites set to its slot.
func NewFavorites(slots *Slots) *Favorites {
	return &Favorites{list: NewList[string](slots, SlotFavorites)}
}

// All returns the favorited ids in insertion order.
func (f *Favorites) All() []string {
	return f.list.Load()
}

// Contains reports whether id is favorited.
func (f *Favorites) Contains(id string) bool {
	for _, fav := range f.list.Load() {
		if fav == id {
			return true
		}
	}
	return false
}

// Add appends id if absent. Adding an existing favorite is a no-op.
func (f *Favorites) Add(id string) {
	ids := f.list.Load()
	for _, fav := range ids {
		if fav == id {
			return
		}
	}
	f.list.Save(append(ids, id))
}

// Remove filters id out. Removing an absent id is a no-op.
func (f *Favorites) Remove(id string) {
	ids := f.list.Load()
	kept := ids[:0]
	for _, fav := range ids {
		if fav != id {
			kept = append(kept, fav)
		}
	}
	f.list.Save(kept)
}

// Toggle adds id if absent and removes it if present. It reports
// whether the id ended up favorited.
func (f *Favorites) Toggle(id string) bool {
	if f.Contains(id) {
		f.Remove(id)
		return false
	}
	f.Add(id)
	return true
}

// Clear empties the set.
func (f *Favorites) Clear() {
	f.list.Save(nil)
}

// Count returns the number of favorited ids.
func (f *Favorites) Count() int {
	return len(f.list.Load())
}
