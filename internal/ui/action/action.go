// Package action defines how panels report user intent to the app.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is something a panel asks the app to do.
type Action interface {
	ActionType() string
}

// Msg wraps an action with the name of the panel that produced it.
type Msg struct {
	Source string
	Action Action
}

var _ tea.Msg = Msg{}

// Cmd returns a command that delivers a as a Msg from source.
func Cmd(source string, a Action) tea.Cmd {
	return func() tea.Msg {
		return Msg{Source: source, Action: a}
	}
}
