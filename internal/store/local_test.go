package store

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSlotsRoundTrip(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "state.db"))
	defer s.Close()

	if s.InMemory() {
		t.Fatal("Expected a durable store, got in-memory degrade")
	}

	if _, ok := s.Get("missing"); ok {
		t.Error("Expected absent slot to report not-ok")
	}

	s.Set(SlotUnlocked, `"true"`)
	v, ok := s.Get(SlotUnlocked)
	if !ok || v != `"true"` {
		t.Errorf("Get = %q, %v; want %q, true", v, ok, `"true"`)
	}

	// Last write wins
	s.Set(SlotUnlocked, `"false"`)
	if v, _ := s.Get(SlotUnlocked); v != `"false"` {
		t.Errorf("Expected overwrite, got %q", v)
	}

	s.Delete(SlotUnlocked)
	if _, ok := s.Get(SlotUnlocked); ok {
		t.Error("Expected deleted slot to be absent")
	}
	// Deleting again is a no-op
	s.Delete(SlotUnlocked)
}

func TestSlotsPersistAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s := Open(path)
	s.Set(SlotFavorites, `["p1","p2"]`)
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s = Open(path)
	defer s.Close()
	v, ok := s.Get(SlotFavorites)
	if !ok || v != `["p1","p2"]` {
		t.Errorf("Expected persisted value after reopen, got %q (ok=%v)", v, ok)
	}
}

func TestOpenDegradesToMemory(t *testing.T) {
	// A directory path cannot be opened as a database file
	dir := t.TempDir()
	s := Open(dir)
	defer s.Close()

	if !s.InMemory() {
		t.Fatal("Expected in-memory degrade for unusable path")
	}

	// The session stays usable: writes are kept until exit
	s.Set(SlotFavorites, `["p1"]`)
	if v, ok := s.Get(SlotFavorites); !ok || v != `["p1"]` {
		t.Errorf("In-memory store lost a write: %q (ok=%v)", v, ok)
	}
}

func TestListCorruptSlotTreatedAsEmpty(t *testing.T) {
	s := OpenMemory()
	s.Set(SlotFavorites, "{not json")

	list := NewList[string](s, SlotFavorites)
	if got := list.Load(); len(got) != 0 {
		t.Errorf("Expected empty list for corrupt slot, got %v", got)
	}
}

func TestFavoritesDedupe(t *testing.T) {
	f := NewFavorites(OpenMemory())

	f.Add("p1")
	f.Add("p1")
	if got := f.All(); len(got) != 1 || got[0] != "p1" {
		t.Errorf("Expected exactly one p1, got %v", got)
	}
}

func TestFavoritesToggle(t *testing.T) {
	f := NewFavorites(OpenMemory())

	if added := f.Toggle("p1"); !added {
		t.Error("First toggle should add")
	}
	if !f.Contains("p1") {
		t.Error("p1 should be favorited after toggle")
	}
	if added := f.Toggle("p1"); added {
		t.Error("Second toggle should remove")
	}
	if f.Contains("p1") {
		t.Error("p1 should be gone after second toggle")
	}
}

func TestFavoritesRemoveAbsent(t *testing.T) {
	f := NewFavorites(OpenMemory())
	f.Add("p1")
	f.Remove("p2")
	if f.Count() != 1 {
		t.Errorf("Remove of absent id changed the set: %v", f.All())
	}
}

func TestFavoritesClear(t *testing.T) {
	f := NewFavorites(OpenMemory())
	f.Add("p1")
	f.Add("p2")
	f.Clear()
	if f.Count() != 0 {
		t.Errorf("Expected empty set after Clear, got %v", f.All())
	}
}

func TestRecentsCap(t *testing.T) {
	r := NewRecents(OpenMemory())

	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	for _, id := range ids {
		r.Touch(id)
	}

	got := r.IDs()
	if len(got) != MaxRecent {
		t.Fatalf("Expected %d entries, got %d", MaxRecent, len(got))
	}
	// Most recent first: the last 10 touched, reversed
	for i := 0; i < MaxRecent; i++ {
		want := ids[len(ids)-1-i]
		if got[i] != want {
			t.Errorf("IDs()[%d] = %q, want %q", i, got[i], want)
		}
	}
}

func TestRecentsReTouchMovesToFront(t *testing.T) {
	r := NewRecents(OpenMemory())

	r.Touch("a")
	r.Touch("b")
	r.Touch("c")
	r.Touch("a")

	got := r.IDs()
	if len(got) != 3 {
		t.Fatalf("Re-touch grew the list: %v", got)
	}
	if got[0] != "a" || got[1] != "c" || got[2] != "b" {
		t.Errorf("Expected [a c b], got %v", got)
	}
}

func TestRecentsTimestamps(t *testing.T) {
	r := NewRecents(OpenMemory())
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	r.Touch("a")
	items := r.Items()
	if len(items) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(items))
	}
	if items[0].ViewedAt != fixed.UnixMilli() {
		t.Errorf("ViewedAt = %d, want %d", items[0].ViewedAt, fixed.UnixMilli())
	}
}
