package songlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/llehouerou/riffle/internal/playlist"
	"github.com/llehouerou/riffle/internal/ui/render"
	"github.com/llehouerou/riffle/internal/ui/styles"
)

const durationWidth = 6

// View renders the list inside a panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	inner := m.InnerWidth()
	height := m.ListHeight()
	s := styles.T().S()

	lines := []string{s.Title.Render(render.Row(render.Truncate(m.title, inner*2/3), m.status(), inner)), render.Separator(inner)}

	start, end := m.cursor.VisibleRange(len(m.songs), height)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderSong(i, m.songs[i], inner))
	}
	if len(m.songs) == 0 && height > 0 {
		hint := m.empty
		if m.loading {
			hint = "Loading…"
		}
		lines = append(lines, s.Subtle.Render(render.Fit(hint, inner)))
	}
	for len(lines) < height+2 {
		lines = append(lines, strings.Repeat(" ", inner))
	}

	return styles.PanelStyle(m.IsFocused()).Width(inner).Render(strings.Join(lines, "\n"))
}

func (m Model) status() string {
	switch {
	case m.loading && len(m.songs) > 0:
		return "loading more…"
	case len(m.songs) == 0:
		return ""
	case m.hasMore:
		return fmt.Sprintf("%d/%d+", m.cursor.Pos()+1, len(m.songs))
	default:
		return fmt.Sprintf("%d/%d", m.cursor.Pos()+1, len(m.songs))
	}
}

func (m Model) renderSong(idx int, song playlist.Song, width int) string {
	s := styles.T().S()

	prefix := "  "
	style := s.Base
	if song.ID != "" && song.ID == m.playingID {
		prefix = "▶ "
		style = s.Playing
	}
	if idx == m.cursor.Pos() && m.IsFocused() {
		style = s.Cursor.Inherit(style)
	}

	content := width - 2 - durationWidth
	titleWidth := content * 3 / 5
	line := prefix +
		render.Fit(song.Title, titleWidth) +
		render.Fit(song.Artist, content-titleWidth) +
		fmt.Sprintf("%*s", durationWidth, formatDuration(song.Duration))
	return style.Render(line)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
