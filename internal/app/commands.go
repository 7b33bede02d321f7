package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/riffle/internal/catalog"
	"github.com/llehouerou/riffle/internal/playback"
	"github.com/llehouerou/riffle/internal/playlist"
	"github.com/llehouerou/riffle/internal/playlists"
)

const requestTimeout = 15 * time.Second

// WatchEngine waits for the next engine event on sub and converts it to a
// tea.Msg. The update loop re-arms it after every event.
func WatchEngine(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return StateChangedMsg(e)
		case e := <-sub.SongChanged:
			return SongChangedMsg(e)
		case e := <-sub.PositionChanged:
			return PositionChangedMsg(e)
		case e := <-sub.QueueChanged:
			return QueueChangedMsg(e)
		case e := <-sub.ModeChanged:
			return ModeChangedMsg(e)
		case e := <-sub.VolumeChanged:
			return VolumeChangedMsg(e)
		case e := <-sub.Failed:
			return PlaybackFailedMsg(e)
		case <-sub.Done:
			return EngineClosedMsg{}
		}
	}
}

func searchCmd(c Catalog, q catalog.Query, appendPage bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		page, err := c.Search(ctx, q)
		return SearchResultMsg{Query: q, Page: page, Append: appendPage, Err: err}
	}
}

func loadSectionCmd(c Catalog, s catalog.Section) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		songs, err := c.Section(ctx, s)
		return SectionLoadedMsg{Section: s, Songs: songs, Err: err}
	}
}

func loadPlaylistsCmd(store PlaylistStore) tea.Cmd {
	return func() tea.Msg {
		list, err := store.List()
		return PlaylistsLoadedMsg{Playlists: list, Err: err}
	}
}

func loadPlaylistSongsCmd(store PlaylistStore, p playlists.Playlist) tea.Cmd {
	return func() tea.Msg {
		songs, err := store.ContextSongs(p.ID)
		return PlaylistSongsMsg{Playlist: p, Songs: songs, Err: err}
	}
}

func createPlaylistCmd(store PlaylistStore, name string, pending *playlist.Song) tea.Cmd {
	return func() tea.Msg {
		p, err := store.Create(name)
		return PlaylistCreatedMsg{Playlist: p, Pending: pending, Err: err}
	}
}

func deletePlaylistCmd(store PlaylistStore, p playlists.Playlist) tea.Cmd {
	return func() tea.Msg {
		return PlaylistDeletedMsg{Playlist: p, Err: store.Delete(p.ID)}
	}
}

func addSongCmd(store PlaylistStore, p playlists.Playlist, song playlist.Song) tea.Cmd {
	return func() tea.Msg {
		added, err := store.AddSong(p.ID, song)
		return SongAddedMsg{Song: song, Playlist: p, Added: added, Err: err}
	}
}
