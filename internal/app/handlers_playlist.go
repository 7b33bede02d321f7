package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/riffle/internal/errmsg"
)

func (m Model) handlePlaylistsLoaded(msg PlaylistsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError(errmsg.Format(errmsg.OpPlaylistLoad, msg.Err))
		return m, nil
	}
	m.PlaylistView.SetPlaylists(msg.Playlists)
	m.Picker.SetPlaylists(msg.Playlists)
	return m, nil
}

func (m Model) handlePlaylistSongs(msg PlaylistSongsMsg) (tea.Model, tea.Cmd) {
	if m.query.Term != "" || m.Results.Title() != msg.Playlist.Name {
		return m, nil
	}
	if msg.Err != nil {
		m.Results.SetLoading(false)
		m.setError(errmsg.FormatWith(errmsg.OpPlaylistLoad, msg.Playlist.Name, msg.Err))
		return m, nil
	}
	m.Results.SetSongs(msg.Playlist.Name, msg.Songs, false)
	m.Results.SetPlaying(m.playingID())
	return m, nil
}

func (m Model) handlePlaylistCreated(msg PlaylistCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError(errmsg.Format(errmsg.OpPlaylistCreate, msg.Err))
		return m, nil
	}
	m.setStatus("Created playlist " + msg.Playlist.Name)
	cmds := []tea.Cmd{loadPlaylistsCmd(m.store)}
	if msg.Pending != nil {
		cmds = append(cmds, addSongCmd(m.store, *msg.Playlist, *msg.Pending))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handlePlaylistDeleted(msg PlaylistDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpPlaylistDelete, msg.Playlist.Name, msg.Err))
		return m, nil
	}
	m.setStatus("Deleted playlist " + msg.Playlist.Name)
	return m, loadPlaylistsCmd(m.store)
}

func (m Model) handleSongAdded(msg SongAddedMsg) (tea.Model, tea.Cmd) {
	m.resize()
	if msg.Err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpPlaylistAddSong, msg.Playlist.Name, msg.Err))
		return m, nil
	}
	m.announcer.AddedToPlaylist(msg.Song, msg.Playlist.Name, msg.Added)
	if msg.Added {
		m.setStatus("Added " + msg.Song.Title + " to " + msg.Playlist.Name)
	} else {
		m.setStatus(msg.Song.Title + " is already in " + msg.Playlist.Name)
	}
	return m, nil
}
