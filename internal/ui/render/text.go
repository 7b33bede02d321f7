// Package render provides width-aware text helpers for the panels.
package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Sanitize drops control characters and invalid UTF-8 from catalog text,
// which would otherwise break the terminal layout.
func Sanitize(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\u00a0':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

// Truncate shortens s to maxWidth cells, ending with an ellipsis when cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(Sanitize(s), maxWidth, ellipsis)
}

// Fit truncates s and pads it to exactly width cells.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(Truncate(s, width), width)
}

// Row places left and right at opposite ends of a width-cell line.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator is a horizontal rule.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}
