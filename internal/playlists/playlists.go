// Package playlists stores user playlists of catalog songs.
package playlists

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrEmptyName     = errors.New("playlist name is empty")
	ErrDuplicateName = errors.New("a playlist with this name already exists")
	ErrNotFound      = errors.New("playlist not found")
)

// Playlist represents playlist metadata (without songs).
type Playlist struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Playlists provides database operations for playlists.
type Playlists struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new Playlists instance.
func New(db *sql.DB) *Playlists {
	return &Playlists{db: db, now: time.Now}
}

// Create creates a new playlist. Names are unique.
func (p *Playlists) Create(name string) (*Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	pl := &Playlist{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: p.now().Truncate(time.Millisecond),
	}
	_, err := p.db.Exec(`
		INSERT INTO playlists (id, name, created_at)
		VALUES (?, ?, ?)
	`, pl.ID, pl.Name, pl.CreatedAt.UnixMilli())
	if isConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE) {
		return nil, ErrDuplicateName
	}
	if err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}
	return pl, nil
}

// Rename renames a playlist.
func (p *Playlists) Rename(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	res, err := p.db.Exec(`UPDATE playlists SET name = ? WHERE id = ?`, name, id)
	if isConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE) {
		return ErrDuplicateName
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete deletes a playlist and all its songs.
func (p *Playlists) Delete(id string) error {
	res, err := p.db.Exec(`DELETE FROM playlists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// List returns all playlists, newest first.
func (p *Playlists) List() ([]Playlist, error) {
	rows, err := p.db.Query(`
		SELECT id, name, created_at
		FROM playlists
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var playlists []Playlist
	for rows.Next() {
		var pl Playlist
		var created int64
		if err := rows.Scan(&pl.ID, &pl.Name, &created); err != nil {
			return nil, err
		}
		pl.CreatedAt = time.UnixMilli(created)
		playlists = append(playlists, pl)
	}
	return playlists, rows.Err()
}

// Get returns a playlist by its ID.
func (p *Playlists) Get(id string) (*Playlist, error) {
	row := p.db.QueryRow(`
		SELECT id, name, created_at
		FROM playlists
		WHERE id = ?
	`, id)

	var pl Playlist
	var created int64
	err := row.Scan(&pl.ID, &pl.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	pl.CreatedAt = time.UnixMilli(created)
	return &pl, nil
}

// FindByName returns the playlist with the given name.
func (p *Playlists) FindByName(name string) (*Playlist, error) {
	var id string
	err := p.db.QueryRow(`SELECT id FROM playlists WHERE name = ?`, strings.TrimSpace(name)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p.Get(id)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// isConstraint reports whether err is the given SQLite constraint violation.
// Connections without extended result codes only report SQLITE_CONSTRAINT,
// so the message decides in that case.
func isConstraint(err error, code int) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	if se.Code() == code {
		return true
	}
	if se.Code() != sqlite3.SQLITE_CONSTRAINT {
		return false
	}
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return strings.Contains(se.Error(), "UNIQUE")
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return strings.Contains(se.Error(), "FOREIGN KEY")
	}
	return false
}
