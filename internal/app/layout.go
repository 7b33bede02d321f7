package app

import (
	"github.com/llehouerou/riffle/internal/ui"
	"github.com/llehouerou/riffle/internal/ui/confirm"
	"github.com/llehouerou/riffle/internal/ui/playerbar"
)

const (
	headerHeight = 1
	promptHeight = 2
)

// queueWidth is zero when the panel is closed or the terminal is too narrow.
func (m Model) queueWidth() int {
	if !m.QueuePanel.Visible() || m.Width < 2*ui.MinQueuePanelWidth {
		return 0
	}
	return max(m.Width/ui.QueuePanelWidthDivisor, ui.MinQueuePanelWidth)
}

func (m Model) mainHeight() int {
	h := m.Height - headerHeight - playerbar.Height
	switch {
	case m.Prompt.Active():
		h -= promptHeight
	case m.Confirm.Active():
		h -= confirm.Height
	}
	return max(h, 0)
}

// resize propagates the terminal size to every panel.
func (m *Model) resize() {
	qw := m.queueWidth()
	mw := m.Width - qw
	mh := m.mainHeight()

	m.Results.SetSize(mw, mh)
	m.PlaylistView.SetSize(mw, mh)
	m.Picker.SetSize(mw, mh)
	m.QueuePanel.SetSize(qw, mh)
	m.Help.SetSize(mw, mh)
	m.Prompt.SetSize(m.Width, promptHeight)
	m.Confirm.SetSize(m.Width, confirm.Height)
}
