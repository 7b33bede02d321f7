package helpbindings

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/riffle/internal/ui/action"
)

// Close signals the help panel should close.
type Close struct{}

// ActionType implements action.Action.
func (a Close) ActionType() string { return "helpbindings.close" }

// ActionCmd delivers a helpbindings action to the app.
func ActionCmd(a action.Action) tea.Cmd {
	return action.Cmd(source, a)
}
