package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/riffle/internal/ui/action"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case action.Msg:
		return m.handleAction(msg)

	case SearchResultMsg:
		return m.handleSearchResult(msg)
	case SectionLoadedMsg:
		return m.handleSectionLoaded(msg)
	case PlaylistsLoadedMsg:
		return m.handlePlaylistsLoaded(msg)
	case PlaylistSongsMsg:
		return m.handlePlaylistSongs(msg)
	case PlaylistCreatedMsg:
		return m.handlePlaylistCreated(msg)
	case PlaylistDeletedMsg:
		return m.handlePlaylistDeleted(msg)
	case SongAddedMsg:
		return m.handleSongAdded(msg)

	case StateChangedMsg, SongChangedMsg, PositionChangedMsg, QueueChangedMsg,
		ModeChangedMsg, VolumeChangedMsg, PlaybackFailedMsg:
		return m.handleEngineEvent(msg)
	case EngineClosedMsg:
		return m, nil
	}

	// Cursor blink and similar internal messages of the prompt.
	if m.Prompt.Active() {
		var cmd tea.Cmd
		m.Prompt, cmd = m.Prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}
