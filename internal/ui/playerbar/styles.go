package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/riffle/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
)

func barStyle() lipgloss.Style {
	return styles.PanelStyle(false)
}

func titleStyle() lipgloss.Style {
	return styles.T().S().Title
}

func mutedStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

func timeStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func activeModeStyle() lipgloss.Style {
	return styles.T().S().Playing
}

func filledStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary)
}

func emptyStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().FgSubtle)
}
