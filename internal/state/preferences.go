package state

import (
	"database/sql"
	"errors"
)

// Preferences are the playback settings restored on the next start.
type Preferences struct {
	Volume   float64
	AutoPlay bool
	Shuffle  bool
}

func getPreferences(db *sql.DB) (*Preferences, error) {
	var p Preferences
	row := db.QueryRow(`SELECT volume, autoplay, shuffle FROM playback_state WHERE id = 1`)
	err := row.Scan(&p.Volume, &p.AutoPlay, &p.Shuffle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func savePreferences(db *sql.DB, p Preferences) error {
	_, err := db.Exec(`
		INSERT INTO playback_state (id, volume, autoplay, shuffle)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			autoplay = excluded.autoplay,
			shuffle = excluded.shuffle
	`, p.Volume, p.AutoPlay, p.Shuffle)
	return err
}
