package app

import (
	"github.com/llehouerou/riffle/internal/catalog"
	"github.com/llehouerou/riffle/internal/playback"
	"github.com/llehouerou/riffle/internal/playlist"
	"github.com/llehouerou/riffle/internal/playlists"
)

// SearchResultMsg carries a catalog page. Append is set for "load more".
type SearchResultMsg struct {
	Query  catalog.Query
	Page   catalog.Page
	Append bool
	Err    error
}

// SectionLoadedMsg carries one home shelf.
type SectionLoadedMsg struct {
	Section catalog.Section
	Songs   []playlist.Song
	Err     error
}

// PlaylistsLoadedMsg carries the saved playlists, newest first.
type PlaylistsLoadedMsg struct {
	Playlists []playlists.Playlist
	Err       error
}

// PlaylistSongsMsg carries a playlist's songs for the results panel.
type PlaylistSongsMsg struct {
	Playlist playlists.Playlist
	Songs    []playlist.Song
	Err      error
}

// PlaylistCreatedMsg reports a new playlist. Pending is the song to add
// when the playlist was created from the picker.
type PlaylistCreatedMsg struct {
	Playlist *playlists.Playlist
	Pending  *playlist.Song
	Err      error
}

// PlaylistDeletedMsg reports a deleted playlist.
type PlaylistDeletedMsg struct {
	Playlist playlists.Playlist
	Err      error
}

// SongAddedMsg reports the outcome of adding a song to a playlist.
type SongAddedMsg struct {
	Song     playlist.Song
	Playlist playlists.Playlist
	Added    bool
	Err      error
}

// Engine events bridged from the playback subscription.
type (
	StateChangedMsg    playback.StateChange
	SongChangedMsg     playback.SongChange
	PositionChangedMsg playback.PositionChange
	QueueChangedMsg    playback.QueueChange
	ModeChangedMsg     playback.ModeChange
	VolumeChangedMsg   playback.VolumeChange
	PlaybackFailedMsg  playback.PlaybackFailed
	EngineClosedMsg    struct{}
)
