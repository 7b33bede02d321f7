package queuepanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/riffle/internal/playlist"
	"github.com/llehouerou/riffle/internal/ui/render"
	"github.com/llehouerou/riffle/internal/ui/styles"
)

const manualMarker = "+"

// View renders the queue panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	inner := m.InnerWidth()
	lines := []string{m.renderHeader(inner), render.Separator(inner)}

	height := m.ListHeight()
	start, end := m.cursor.VisibleRange(len(m.songs), height)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderSong(i, m.songs[i], inner))
	}
	if len(m.songs) == 0 && height > 0 {
		lines = append(lines, styles.T().S().Subtle.Render(render.Fit("Nothing queued", inner)))
	}
	for len(lines) < height+2 {
		lines = append(lines, strings.Repeat(" ", inner))
	}

	return styles.PanelStyle(m.IsFocused()).
		Width(inner).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderHeader(width int) string {
	title := fmt.Sprintf("Up next (%d)", len(m.songs))
	right := ""
	if m.manual > 0 {
		right = fmt.Sprintf("%d queued", m.manual)
	}
	return styles.T().S().Title.Render(render.Row(title, right, width))
}

func (m Model) renderSong(idx int, song playlist.Song, width int) string {
	prefix := "  "
	if idx < m.manual {
		prefix = manualMarker + " "
	}
	content := width - lipgloss.Width(prefix)
	titleWidth := content / 2
	line := prefix + render.Fit(song.Title, titleWidth) + render.Fit(song.Artist, content-titleWidth)

	s := styles.T().S()
	style := s.Base
	if idx < m.manual {
		style = s.Manual
	}
	if idx == m.cursor.Pos() && m.IsFocused() {
		style = s.Cursor.Inherit(style)
	}
	return style.Render(line)
}
