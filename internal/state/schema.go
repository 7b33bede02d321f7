package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS playback_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			volume REAL NOT NULL DEFAULT 1.0,
			autoplay INTEGER NOT NULL DEFAULT 1,
			shuffle INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS playlists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS playlist_songs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			playlist_id TEXT NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			song_id TEXT NOT NULL,
			title TEXT NOT NULL,
			artist TEXT,
			cover_url TEXT,
			audio_url TEXT NOT NULL,
			duration_ms INTEGER,
			added_at INTEGER NOT NULL,
			UNIQUE(playlist_id, song_id)
		);

		CREATE INDEX IF NOT EXISTS idx_playlist_songs_playlist ON playlist_songs(playlist_id);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
	return err
}
