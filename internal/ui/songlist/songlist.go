// Package songlist renders a scrollable list of songs: search results, a
// home shelf or a playlist's contents.
package songlist

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/riffle/internal/playlist"
	"github.com/llehouerou/riffle/internal/ui"
	"github.com/llehouerou/riffle/internal/ui/action"
	"github.com/llehouerou/riffle/internal/ui/cursor"
)

const source = "songlist"

// Play asks the app to play Index with the whole list as context.
type Play struct{ Index int }

// Enqueue asks the app to add Index to the manual queue.
type Enqueue struct{ Index int }

// AddToPlaylist asks the app to pick a playlist for Index.
type AddToPlaylist struct{ Index int }

// LoadMore asks the app for the next page.
type LoadMore struct{}

func (Play) ActionType() string          { return "songlist.play" }
func (Enqueue) ActionType() string       { return "songlist.enqueue" }
func (AddToPlaylist) ActionType() string { return "songlist.add_to_playlist" }
func (LoadMore) ActionType() string      { return "songlist.load_more" }

// Model is a titled song list.
type Model struct {
	ui.Base
	cursor    cursor.Cursor
	title     string
	songs     []playlist.Song
	hasMore   bool
	loading   bool
	playingID string
	empty     string
}

// New creates an empty list showing hint when it has no songs.
func New(hint string) Model {
	return Model{cursor: cursor.New(ui.ScrollMargin), empty: hint}
}

// SetSongs replaces the contents and resets the cursor.
func (m *Model) SetSongs(title string, songs []playlist.Song, hasMore bool) {
	m.title = title
	m.songs = songs
	m.hasMore = hasMore
	m.loading = false
	m.cursor.Reset()
}

// AppendSongs adds a further page, keeping the cursor.
func (m *Model) AppendSongs(songs []playlist.Song, hasMore bool) {
	m.songs = append(m.songs, songs...)
	m.hasMore = hasMore
	m.loading = false
}

// SetLoading marks the list as waiting for results.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// SetPlaying highlights the song with this ID.
func (m *Model) SetPlaying(id string) {
	m.playingID = id
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.cursor.Clamp(len(m.songs), m.ListHeight())
}

// Songs returns the list contents.
func (m Model) Songs() []playlist.Song {
	return m.songs
}

// Title returns the list heading.
func (m Model) Title() string {
	return m.title
}

// Selected returns the song under the cursor.
func (m Model) Selected() (playlist.Song, bool) {
	if len(m.songs) == 0 {
		return playlist.Song{}, false
	}
	return m.songs[m.cursor.Pos()], true
}

// Update handles keys while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return m, nil
	}

	key := keyMsg.String()
	atEnd := m.cursor.Pos() == len(m.songs)-1
	if m.cursor.HandleKey(key, len(m.songs), m.ListHeight()) {
		if (key == "j" || key == "down") && atEnd && m.hasMore && !m.loading {
			m.loading = true
			return m, action.Cmd(source, LoadMore{})
		}
		return m, nil
	}

	if len(m.songs) == 0 {
		return m, nil
	}
	pos := m.cursor.Pos()
	switch key {
	case "enter":
		return m, action.Cmd(source, Play{Index: pos})
	case "a":
		return m, action.Cmd(source, Enqueue{Index: pos})
	case "p":
		return m, action.Cmd(source, AddToPlaylist{Index: pos})
	}
	return m, nil
}
