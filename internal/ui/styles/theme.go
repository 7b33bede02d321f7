// Package styles holds the color palette shared by every panel.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the application palette with pre-built styles.
type Theme struct {
	Primary   lipgloss.Color // focused borders, the playing song
	Secondary lipgloss.Color // manual queue entries

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color

	styles *Styles
}

// Styles contains the lipgloss styles built from a Theme.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style
	Manual  lipgloss.Style
	Cursor  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#fc3c44"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#fc3c44"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Playing: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Manual:  lipgloss.NewStyle().Foreground(t.Secondary),
		Cursor:  lipgloss.NewStyle().Background(t.BgCursor).Foreground(t.FgBase),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
	}
}
