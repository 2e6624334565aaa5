// Package store persists lightweight user state (favorites, recents,
// unlock flag, analytics queue) as key -> JSON slots in a local SQLite
// database. When the database cannot be opened the store degrades to an
// in-memory map for the session: reads come back empty, writes are kept
// only until exit, and no error ever reaches the caller.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"bizprompt/internal/logging"

	_ "modernc.org/sqlite"
)

// Slot names. All user state lives under the bizprompt_ namespace.
const (
	SlotFavorites = "bizprompt_favorites"
	SlotRecents   = "bizprompt_recently_viewed"
	SlotUnlocked  = "bizprompt_license_unlocked"
	SlotAnalytics = "bizprompt_analytics_queue"
)

// Slots is the durable key -> JSON value store.
type Slots struct {
	mu  sync.RWMutex
	db  *sql.DB
	mem map[string]string
}

// Open initializes the slot store at the given database path. It never
// fails: any problem opening or preparing the database is logged and the
// returned store runs in-memory for the session.
func Open(path string) *Slots {
	logging.Store("Opening slot store at %s", path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to create data dir %s: %v", dir, err)
		return OpenMemory()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to open database at %s: %v", path, err)
		return OpenMemory()
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}

	if err := initialize(db); err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to initialize schema: %v", err)
		_ = db.Close()
		return OpenMemory()
	}

	logging.StoreDebug("Slot store ready")
	return &Slots{db: db}
}

// OpenMemory returns a store that holds slots only for the current
// session. Used directly in tests and as the degraded mode of Open.
func OpenMemory() *Slots {
	logging.Store("Slot store running in-memory only")
	return &Slots{mem: make(map[string]string)}
}

func initialize(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS slots (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create slots table: %w", err)
	}
	return nil
}

// InMemory reports whether the store degraded to session-only state.
func (s *Slots) InMemory() bool {
	return s.db == nil
}

// Get returns the raw JSON value for a slot. The second return is false
// when the slot is absent or the read fails (the failure is logged).
func (s *Slots) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		v, ok := s.mem[key]
		return v, ok
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to read slot %s: %v", key, err)
		return "", false
	}
	return value, true
}

// Set writes the raw JSON value for a slot. Write failures are logged
// and swallowed so UI interaction continues uninterrupted.
func (s *Slots) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		s.mem[key] = value
		return
	}

	_, err := s.db.Exec(`
		INSERT INTO slots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to write slot %s: %v", key, err)
	}
}

// Delete removes a slot. A missing slot is a no-op.
func (s *Slots) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		delete(s.mem, key)
		return
	}

	if _, err := s.db.Exec("DELETE FROM slots WHERE key = ?", key); err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to delete slot %s: %v", key, err)
	}
}

// Close releases the underlying database, if any.
func (s *Slots) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
