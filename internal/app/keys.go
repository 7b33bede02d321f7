package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/riffle/internal/keymap"
	"github.com/llehouerou/riffle/internal/playlist"
)

// promptContext is passed through the prompt to know what was being typed.
type promptContext struct {
	kind string
	song *playlist.Song
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch {
	case m.Prompt.Active():
		m.Prompt, cmd = m.Prompt.Update(msg)
		return m, cmd
	case m.Confirm.Active():
		m.Confirm, cmd = m.Confirm.Update(msg)
		return m, cmd
	case m.HelpOpen:
		m.Help, cmd = m.Help.Update(msg)
		return m, cmd
	case m.PickerOpen():
		m.Picker, cmd = m.Picker.Update(msg)
		return m, cmd
	}

	if handled, cmd := m.handleGlobalKey(key); handled {
		return m, cmd
	}

	switch {
	case m.Focus == FocusQueue:
		m.QueuePanel, cmd = m.QueuePanel.Update(msg)
	case m.Tab == TabPlaylists:
		m.PlaylistView, cmd = m.PlaylistView.Update(msg)
	default:
		m.Results, cmd = m.Results.Update(msg)
	}
	return m, cmd
}

// handleGlobalKey handles the keys that work regardless of focus.
func (m *Model) handleGlobalKey(key string) (bool, tea.Cmd) {
	switch m.keys.Resolve(key) {
	case keymap.ActionQuit:
		return true, tea.Quit
	case keymap.ActionSearch:
		cmd := m.Prompt.Start("Search", "artist, song or album", m.query.Term, promptContext{kind: promptSearch})
		m.resize()
		return true, cmd
	case keymap.ActionHelp:
		m.HelpOpen = true
		m.resize()
	case keymap.ActionSwitchFocus:
		m.cycleFocus()
	case keymap.ActionToggleQueue:
		m.engine.ToggleQueue()
	case keymap.ActionNextSection:
		return true, m.nextSection()
	case keymap.ActionNextTrack:
		m.engine.PlayNext()
	case keymap.ActionPlayPause:
		m.engine.TogglePlay()
	case keymap.ActionStop:
		m.engine.Stop()
	case keymap.ActionToggleShuffle:
		m.engine.ToggleShuffle()
	case keymap.ActionToggleAutoPlay:
		m.engine.ToggleAutoPlay()
	case keymap.ActionVolumeUp:
		m.engine.SetVolume(m.engine.Snapshot().Volume + volumeStep)
	case keymap.ActionVolumeDown:
		m.engine.SetVolume(m.engine.Snapshot().Volume - volumeStep)
	case keymap.ActionSeekBack:
		m.engine.Seek(m.engine.Snapshot().CurrentTime - seekStep)
	case keymap.ActionSeekForward:
		m.engine.Seek(m.engine.Snapshot().CurrentTime + seekStep)
	default:
		return false, nil
	}
	return true, nil
}

// cycleFocus moves through results, playlists and, when open, the queue.
func (m *Model) cycleFocus() {
	switch {
	case m.Focus == FocusQueue:
		m.Focus = FocusMain
		m.Tab = TabResults
	case m.Tab == TabResults:
		m.Tab = TabPlaylists
	case m.QueuePanel.Visible():
		m.Focus = FocusQueue
	default:
		m.Tab = TabResults
	}
	m.applyFocus()
}

func (m *Model) applyFocus() {
	if m.Focus == FocusQueue && !m.QueuePanel.Visible() {
		m.Focus = FocusMain
	}
	main := m.Focus == FocusMain
	m.Results.SetFocused(main && m.Tab == TabResults)
	m.PlaylistView.SetFocused(main && m.Tab == TabPlaylists)
	m.QueuePanel.SetFocused(!main)
}
