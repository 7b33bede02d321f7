package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/riffle/internal/ui/playerbar"
	"github.com/llehouerou/riffle/internal/ui/render"
	"github.com/llehouerou/riffle/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	parts := []string{m.renderHeader()}

	main := m.renderMain()
	if m.queueWidth() > 0 {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, m.QueuePanel.View())
	}
	parts = append(parts, main)

	switch {
	case m.Prompt.Active():
		parts = append(parts, m.Prompt.View())
	case m.Confirm.Active():
		parts = append(parts, m.Confirm.View())
	}
	parts = append(parts, playerbar.Render(playerbar.NewState(m.snapshot), m.Width))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderMain() string {
	switch {
	case m.HelpOpen:
		return m.Help.View()
	case m.PickerOpen():
		return m.Picker.View()
	case m.Tab == TabPlaylists:
		return m.PlaylistView.View()
	default:
		return m.Results.View()
	}
}

func (m Model) renderHeader() string {
	s := styles.T().S()

	tab := func(name string, active bool) string {
		if active {
			return s.Playing.Render("[" + name + "]")
		}
		return s.Muted.Render(" " + name + " ")
	}
	left := strings.Join([]string{
		s.Title.Render("riffle"),
		tab("Results", m.Tab == TabResults && !m.PickerOpen()),
		tab("Playlists", m.Tab == TabPlaylists && !m.PickerOpen()),
	}, " ")

	status := render.Truncate(m.StatusMsg, max(m.Width-lipgloss.Width(left)-2, 0))
	if m.StatusErr {
		status = s.Error.Render(status)
	} else {
		status = s.Muted.Render(status)
	}
	return render.Row(left, status, m.Width)
}
