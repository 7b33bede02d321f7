// Package playlistlist renders saved playlists, both as the playlists tab
// and as the "add to playlist" picker.
package playlistlist

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/riffle/internal/playlists"
	"github.com/llehouerou/riffle/internal/ui"
	"github.com/llehouerou/riffle/internal/ui/action"
	"github.com/llehouerou/riffle/internal/ui/cursor"
	"github.com/llehouerou/riffle/internal/ui/render"
	"github.com/llehouerou/riffle/internal/ui/styles"
)

const source = "playlistlist"

// Choose reports the playlist picked with enter.
type Choose struct{ Playlist playlists.Playlist }

// Delete asks the app to delete a playlist.
type Delete struct{ Playlist playlists.Playlist }

// Create asks the app to prompt for a new playlist name.
type Create struct{}

// Close is emitted when the picker is dismissed.
type Close struct{}

func (Choose) ActionType() string { return "playlistlist.choose" }
func (Delete) ActionType() string { return "playlistlist.delete" }
func (Create) ActionType() string { return "playlistlist.create" }
func (Close) ActionType() string  { return "playlistlist.close" }

// Model lists playlists newest first.
type Model struct {
	ui.Base
	cursor cursor.Cursor
	title  string
	items  []playlists.Playlist
	now    func() time.Time
}

// New creates an empty list with a heading.
func New(title string) Model {
	return Model{cursor: cursor.New(ui.ScrollMargin), title: title, now: time.Now}
}

// SetPlaylists replaces the contents, keeping the cursor in range.
func (m *Model) SetPlaylists(items []playlists.Playlist) {
	m.items = items
	m.cursor.Clamp(len(items), m.ListHeight())
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.cursor.Clamp(len(m.items), m.ListHeight())
}

// Len returns the number of playlists.
func (m Model) Len() int {
	return len(m.items)
}

// Update handles keys while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return m, nil
	}

	key := keyMsg.String()
	if m.cursor.HandleKey(key, len(m.items), m.ListHeight()) {
		return m, nil
	}

	switch key {
	case "c", "N":
		return m, action.Cmd(source, Create{})
	case "esc":
		return m, action.Cmd(source, Close{})
	}

	if len(m.items) == 0 {
		return m, nil
	}
	selected := m.items[m.cursor.Pos()]
	switch key {
	case "enter":
		return m, action.Cmd(source, Choose{Playlist: selected})
	case "D":
		return m, action.Cmd(source, Delete{Playlist: selected})
	}
	return m, nil
}

// View renders the list inside a panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	inner := m.InnerWidth()
	height := m.ListHeight()
	s := styles.T().S()

	header := render.Row(m.title, fmt.Sprintf("%d", len(m.items)), inner)
	lines := []string{s.Title.Render(header), render.Separator(inner)}

	start, end := m.cursor.VisibleRange(len(m.items), height)
	for i := start; i < end; i++ {
		p := m.items[i]
		age := humanize.RelTime(p.CreatedAt, m.now(), "ago", "from now")
		line := "  " + render.Row(render.Truncate(p.Name, inner*2/3), s.Muted.Render(age), inner-2)
		style := s.Base
		if i == m.cursor.Pos() && m.IsFocused() {
			style = s.Cursor
		}
		lines = append(lines, style.Render(line))
	}
	if len(m.items) == 0 && height > 0 {
		lines = append(lines, s.Subtle.Render(render.Fit("No playlists yet. Press c to create one.", inner)))
	}
	for len(lines) < height+2 {
		lines = append(lines, strings.Repeat(" ", inner))
	}

	return styles.PanelStyle(m.IsFocused()).Width(inner).Render(strings.Join(lines, "\n"))
}
