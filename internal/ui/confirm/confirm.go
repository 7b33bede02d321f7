// Package confirm provides a yes/no confirmation bar.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/riffle/internal/ui"
	"github.com/llehouerou/riffle/internal/ui/render"
	"github.com/llehouerou/riffle/internal/ui/styles"
)

// Height is the number of lines the bar occupies.
const Height = 2

// Model is a yes/no confirmation bar.
type Model struct {
	ui.Base
	title   string
	message string
	context any
	active  bool
}

// New creates a new confirmation model.
func New() Model {
	return Model{}
}

// Show displays the confirmation. context is returned untouched in the Result.
func (m *Model) Show(title, message string, context any) {
	m.title = title
	m.message = message
	m.context = context
	m.active = true
}

// Reset clears the confirmation state.
func (m *Model) Reset() {
	m.title = ""
	m.message = ""
	m.context = nil
	m.active = false
}

// Active returns whether the confirmation is currently shown.
func (m Model) Active() bool {
	return m.active
}

// Update answers on y/enter or n/esc and swallows every other key.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "enter", "y", "Y":
		ctx := m.context
		m.Reset()
		return m, ActionCmd(Result{Confirmed: true, Context: ctx})
	case "esc", "n", "N":
		ctx := m.context
		m.Reset()
		return m, ActionCmd(Result{Confirmed: false, Context: ctx})
	}
	return m, nil
}

// View renders the title with the key hint, then the message.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	t := styles.T()
	width := max(m.Width(), 1)

	title := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render(m.title)
	hint := t.S().Subtle.Render("y/enter: confirm  n/esc: cancel")
	return title + "  " + hint + "\n" + t.S().Base.Render(render.Fit(m.message, width))
}
