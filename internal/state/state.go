package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "riffle"
	dbFileName   = "riffle.db"
	saveDebounce = 500 * time.Millisecond

	// Applied to every pooled connection.
	pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
)

// Manager owns the application database.
type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Preferences
}

// Open opens the database at path, or at the XDG data location when path
// is empty, and initialises the schema.
func Open(path string) (*Manager, error) {
	if path == "" {
		p, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?"+pragmas)
	if err != nil {
		return nil, err
	}
	return wrap(db)
}

// OpenMemory opens a private in-memory database. Used by tests and by
// commands that must not touch the user's data.
func OpenMemory() (*Manager, error) {
	db, err := sql.Open("sqlite", "file::memory:?"+pragmas)
	if err != nil {
		return nil, err
	}
	// Every pooled connection would get its own empty database.
	db.SetMaxOpenConns(1)
	return wrap(db)
}

func wrap(db *sql.DB) (*Manager, error) {
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Manager{db: db}, nil
}

// Close flushes pending preferences and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending state
	if pending != nil {
		_ = savePreferences(m.db, *pending)
	}

	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// SavePreferences stores p after a short quiet period. Rapid changes, such
// as holding the volume key, are coalesced into one write.
func (m *Manager) SavePreferences(p Preferences) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &p

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = savePreferences(m.db, *pending)
		}
	})
}

// GetPreferences returns the saved preferences, or nil if none were saved.
func (m *Manager) GetPreferences() (*Preferences, error) {
	return getPreferences(m.db)
}

// DefaultDBPath returns the XDG data path of the database.
func DefaultDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
