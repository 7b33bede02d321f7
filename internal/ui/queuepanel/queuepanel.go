// Package queuepanel renders the "up next" list and edits the manual queue.
package queuepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/riffle/internal/playback"
	"github.com/llehouerou/riffle/internal/playlist"
	"github.com/llehouerou/riffle/internal/ui"
	"github.com/llehouerou/riffle/internal/ui/cursor"
)

// Model is the queue panel. It reads and edits the queue through a
// playback.QueueView; the engine publishes the resulting QueueChange.
type Model struct {
	ui.Base
	view   playback.QueueView
	cursor cursor.Cursor
	songs  []playlist.Song
	manual int
}

// New creates a queue panel over view.
func New(view playback.QueueView) Model {
	m := Model{view: view, cursor: cursor.New(ui.ScrollMargin)}
	m.Refresh()
	return m
}

// Refresh re-reads the queue, keeping the cursor inside the list.
func (m *Model) Refresh() {
	m.songs = m.view.UpNext()
	m.manual = m.view.ManualQueueCount()
	m.cursor.Clamp(len(m.songs), m.ListHeight())
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.cursor.Clamp(len(m.songs), m.ListHeight())
}

// Visible reports whether the panel is open.
func (m Model) Visible() bool {
	return m.view.IsQueueOpen()
}

// Cursor returns the selected index into UpNext.
func (m Model) Cursor() int {
	return m.cursor.Pos()
}

// Update handles keys while the panel is focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return m, nil
	}

	key := keyMsg.String()
	if m.cursor.HandleKey(key, len(m.songs), m.ListHeight()) {
		return m, nil
	}

	switch key {
	case "d", "x", "delete":
		if len(m.songs) > 0 {
			m.view.RemoveFromQueue(m.cursor.Pos())
			m.Refresh()
		}
	case "c":
		m.view.ClearQueue()
		m.Refresh()
	}
	return m, nil
}
