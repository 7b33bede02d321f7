package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/riffle/internal/ui/action"
)

const source = "confirm"

// Result contains the confirmation answer.
type Result struct {
	Confirmed bool
	Context   any // User-provided context passed through
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "confirm.result" }

// ActionCmd delivers a confirm action to the app.
func ActionCmd(a action.Action) tea.Cmd {
	return action.Cmd(source, a)
}
