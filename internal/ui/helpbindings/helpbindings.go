// Package helpbindings renders a scrollable panel listing the key bindings.
package helpbindings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/llehouerou/riffle/internal/keymap"
	"github.com/llehouerou/riffle/internal/ui"
	"github.com/llehouerou/riffle/internal/ui/render"
	"github.com/llehouerou/riffle/internal/ui/styles"
)

const source = "helpbindings"

// categoryLabels maps context names to display labels.
var categoryLabels = map[string]string{
	keymap.ContextGlobal:    "Global",
	keymap.ContextPlayback:  "Playback",
	keymap.ContextList:      "Song lists",
	keymap.ContextQueue:     "Queue panel",
	keymap.ContextPlaylists: "Playlists",
}

// line is one row of help text, styled at render time.
type line struct {
	header string
	keys   string
	desc   string
}

// Model holds the state for the help panel.
type Model struct {
	ui.Base
	lines        []line
	keyWidth     int
	scrollOffset int
}

// New creates a help panel listing every context.
func New() Model {
	lines, keyWidth := buildContent(keymap.Contexts)
	return Model{lines: lines, keyWidth: keyWidth}
}

// SetSize sets the panel dimensions and keeps the scroll in range.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.scrollOffset = min(m.scrollOffset, m.maxScroll())
}

// Update scrolls, or asks the app to close the panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "?", "esc", "q":
		return m, ActionCmd(Close{})
	case "j", "down":
		m.scrollOffset = min(m.scrollOffset+1, m.maxScroll())
	case "k", "up":
		m.scrollOffset = max(m.scrollOffset-1, 0)
	case "g":
		m.scrollOffset = 0
	case "G":
		m.scrollOffset = m.maxScroll()
	}
	return m, nil
}

// View renders the visible part of the bindings inside a focused panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	inner := m.InnerWidth()
	height := m.ListHeight()
	s := styles.T().S()

	rows := []string{
		s.Title.Render(render.Row("Help", s.Subtle.Render(m.footer()), inner)),
		render.Separator(inner),
	}
	end := min(m.scrollOffset+height, len(m.lines))
	for _, l := range m.lines[m.scrollOffset:end] {
		rows = append(rows, m.renderLine(l, inner))
	}
	for len(rows) < height+2 {
		rows = append(rows, strings.Repeat(" ", inner))
	}
	return styles.PanelStyle(true).Width(inner).Render(strings.Join(rows, "\n"))
}

func (m Model) renderLine(l line, width int) string {
	t := styles.T()
	if l.header != "" {
		return lipgloss.NewStyle().Foreground(t.Secondary).Bold(true).Render(render.Fit(l.header, width))
	}
	if l.keys == "" {
		return strings.Repeat(" ", width)
	}
	keyWidth := min(m.keyWidth, width)
	keys := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(render.Fit(l.keys, keyWidth))
	return keys + t.S().Base.Render(render.Fit("  "+l.desc, width-keyWidth))
}

func (m Model) footer() string {
	if m.maxScroll() == 0 {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (m Model) maxScroll() int {
	return max(len(m.lines)-m.ListHeight(), 0)
}

// buildContent lists one header per context followed by its bindings and
// returns the widest key column.
func buildContent(contexts []string) ([]line, int) {
	var lines []line
	keyWidth := 0
	for i, ctx := range contexts {
		if i > 0 {
			lines = append(lines, line{})
		}
		label := categoryLabels[ctx]
		if label == "" {
			label = ctx
		}
		lines = append(lines, line{header: label})
		for _, b := range keymap.ByContext(ctx) {
			keys := strings.Join(lo.Map(b.Keys, func(k string, _ int) string { return keymap.DisplayKey(k) }), ", ")
			keyWidth = max(keyWidth, lipgloss.Width(keys))
			lines = append(lines, line{keys: keys, desc: b.Description})
		}
	}
	return lines, keyWidth
}
