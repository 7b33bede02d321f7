package app

import (
	"context"

	"github.com/llehouerou/riffle/internal/catalog"
	"github.com/llehouerou/riffle/internal/playlist"
	"github.com/llehouerou/riffle/internal/playlists"
	"github.com/llehouerou/riffle/internal/state"
)

// Catalog searches for playable songs and loads the home shelves.
type Catalog interface {
	catalog.Searcher
	Section(ctx context.Context, s catalog.Section) ([]playlist.Song, error)
}

// PlaylistStore is the subset of *playlists.Playlists the UI uses.
type PlaylistStore interface {
	Create(name string) (*playlists.Playlist, error)
	Delete(id string) error
	List() ([]playlists.Playlist, error)
	AddSong(playlistID string, song playlist.Song) (bool, error)
	ContextSongs(playlistID string) ([]playlist.Song, error)
}

// PreferenceStore persists playback preferences.
type PreferenceStore interface {
	SavePreferences(p state.Preferences)
}

var (
	_ Catalog         = (*catalog.Client)(nil)
	_ PlaylistStore   = (*playlists.Playlists)(nil)
	_ PreferenceStore = (state.Interface)(nil)
)
