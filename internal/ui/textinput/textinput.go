// Package textinput is a single-line prompt built on bubbles/textinput.
package textinput

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/riffle/internal/ui"
	"github.com/llehouerou/riffle/internal/ui/action"
	"github.com/llehouerou/riffle/internal/ui/styles"
)

const source = "textinput"

// Result is emitted when the prompt is confirmed or canceled.
type Result struct {
	Text     string
	Context  any // passed through from Start
	Canceled bool
}

// ActionType implements action.Action.
func (Result) ActionType() string { return "textinput.result" }

// Model is a titled prompt.
type Model struct {
	ui.Base
	input   textinput.Model
	title   string
	context any
	active  bool
}

// New creates an inactive prompt.
func New() Model {
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 100
	in.Cursor.SetMode(cursor.CursorStatic)
	return Model{input: in}
}

// Start activates the prompt. context is returned untouched in the Result.
func (m *Model) Start(title, placeholder, initial string, context any) tea.Cmd {
	m.title = title
	m.context = context
	m.active = true
	m.input.Placeholder = placeholder
	m.input.SetValue(initial)
	m.input.CursorEnd()
	return m.input.Focus()
}

// Active reports whether the prompt is capturing keys.
func (m Model) Active() bool {
	return m.active
}

// Context returns the value passed to Start.
func (m Model) Context() any {
	return m.context
}

// SetSize sets the prompt width.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.input.Width = max(width-lipgloss.Width(m.input.Prompt)-1, 1)
}

func (m *Model) stop() {
	m.active = false
	m.input.Blur()
}

// Update handles keys while active.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.stop()
			return m, action.Cmd(source, Result{Canceled: true, Context: m.context})
		case "enter":
			m.stop()
			text := strings.TrimSpace(m.input.Value())
			return m, action.Cmd(source, Result{Text: text, Context: m.context})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the title line and the input line.
func (m Model) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.T().Primary).Render(m.title)
	hint := styles.T().S().Subtle.Render("enter: confirm  esc: cancel")
	return title + "  " + hint + "\n" + m.input.View()
}
