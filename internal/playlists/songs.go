package playlists

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sqlite3 "modernc.org/sqlite/lib"

	dbutil "github.com/llehouerou/riffle/internal/db"
	"github.com/llehouerou/riffle/internal/playlist"
)

const insertSong = `
	INSERT INTO playlist_songs
		(playlist_id, song_id, title, artist, cover_url, audio_url, duration_ms, added_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(playlist_id, song_id) DO NOTHING
`

func songArgs(playlistID string, song playlist.Song, now time.Time) []any {
	return []any{
		playlistID, song.ID, song.Title,
		dbutil.NullString(song.Artist), dbutil.NullString(song.CoverURL), song.AudioURL,
		dbutil.NullMillis(song.Duration), now.UnixMilli(),
	}
}

// Entry is one song saved in a playlist.
type Entry struct {
	ID         int64
	PlaylistID string
	Song       playlist.Song
	AddedAt    time.Time
}

// AddSong appends song to the playlist. It returns false without error when
// a song with the same ID is already there.
func (p *Playlists) AddSong(playlistID string, song playlist.Song) (bool, error) {
	res, err := p.db.Exec(insertSong, songArgs(playlistID, song, p.now())...)
	if isConstraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("insert song: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddSongs adds every song in one transaction and returns how many were
// new to the playlist.
func (p *Playlists) AddSongs(ctx context.Context, playlistID string, songs []playlist.Song) (int, error) {
	if len(songs) == 0 {
		return 0, nil
	}
	if _, err := p.Get(playlistID); err != nil {
		return 0, err
	}

	added := 0
	err := dbutil.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insertSong)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, song := range songs {
			res, err := stmt.ExecContext(ctx, songArgs(playlistID, song, p.now())...)
			if err != nil {
				return fmt.Errorf("insert song %s: %w", song.ID, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			added += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// RemoveSong removes one entry by its entry ID.
func (p *Playlists) RemoveSong(entryID int64) error {
	res, err := p.db.Exec(`DELETE FROM playlist_songs WHERE id = ?`, entryID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Songs returns the playlist entries in the order they were added.
func (p *Playlists) Songs(playlistID string) ([]Entry, error) {
	rows, err := p.db.Query(`
		SELECT id, playlist_id, song_id, title, artist, cover_url, audio_url, duration_ms, added_at
		FROM playlist_songs
		WHERE playlist_id = ?
		ORDER BY added_at, id
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var artist, cover sql.NullString
		var duration sql.NullInt64
		var added int64
		if err := rows.Scan(&e.ID, &e.PlaylistID, &e.Song.ID, &e.Song.Title,
			&artist, &cover, &e.Song.AudioURL, &duration, &added); err != nil {
			return nil, err
		}
		e.Song.Artist = dbutil.NullStringValue(artist)
		e.Song.CoverURL = dbutil.NullStringValue(cover)
		e.Song.Duration = dbutil.MillisValue(duration)
		e.AddedAt = time.UnixMilli(added)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ContextSongs returns the playlist as a browsing context for playback.
func (p *Playlists) ContextSongs(playlistID string) ([]playlist.Song, error) {
	entries, err := p.Songs(playlistID)
	if err != nil {
		return nil, err
	}
	songs := make([]playlist.Song, len(entries))
	for i, e := range entries {
		songs[i] = e.Song
	}
	return songs, nil
}

// SongCount returns the number of songs in a playlist.
func (p *Playlists) SongCount(playlistID string) (int, error) {
	var count int
	err := p.db.QueryRow(`
		SELECT COUNT(*) FROM playlist_songs WHERE playlist_id = ?
	`, playlistID).Scan(&count)
	return count, err
}
