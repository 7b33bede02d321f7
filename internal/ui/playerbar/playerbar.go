// Package playerbar renders the now-playing bar at the bottom of the screen.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/riffle/internal/playback"
	"github.com/llehouerou/riffle/internal/ui"
	"github.com/llehouerou/riffle/internal/ui/render"
)

// Height is the rendered height: border, content, border.
const Height = 3

// contentOffset is the left border plus the horizontal padding.
const contentOffset = 2

const separator = "   "

// State holds everything needed to render the player bar.
type State struct {
	Title    string
	Artist   string
	Playing  bool
	Position time.Duration
	Duration time.Duration
	Volume   float64
	AutoPlay bool
	Shuffle  bool
}

// NewState builds the bar state from an engine snapshot.
func NewState(s playback.Snapshot) State {
	st := State{
		Playing:  s.IsPlaying,
		Position: s.CurrentTime,
		Duration: s.Duration,
		Volume:   s.Volume,
		AutoPlay: s.IsAutoPlay,
		Shuffle:  s.IsShuffle,
	}
	if s.CurrentSong != nil {
		st.Title = s.CurrentSong.Title
		st.Artist = s.CurrentSong.Artist
		if st.Duration == 0 {
			st.Duration = s.CurrentSong.Duration
		}
	}
	return st
}

// Idle reports whether there is no song to show.
func (s State) Idle() bool {
	return s.Title == "" && s.Artist == ""
}

// layout is where each part lands on the content line.
type layout struct {
	left     string
	right    string
	status   string
	timeStr  string
	barStart int // terminal column of the first bar cell
	barWidth int // zero when the bar does not fit
}

func computeLayout(s State, width int) layout {
	inner := max(width-2*contentOffset, 0)

	l := layout{
		status:  statusSymbol(s),
		timeStr: formatDuration(s.Position) + " / " + formatDuration(s.Duration),
		right:   RenderVolume(s.Volume) + "  " + renderModes(s),
	}

	left := s.Title
	if s.Artist != "" {
		left += " · " + s.Artist
	}
	l.left = render.Truncate(left, inner*2/5)

	fixed := lipgloss.Width(l.left) + len(separator) +
		lipgloss.Width(l.status) + 1 + 1 +
		lipgloss.Width(l.timeStr) + len(separator) +
		lipgloss.Width(l.right)
	if bar := inner - fixed; bar >= ui.MinProgressBarWidth {
		l.barWidth = bar
		l.barStart = contentOffset + lipgloss.Width(l.left) + len(separator) + lipgloss.Width(l.status) + 1
	}
	return l
}

// Render returns the player bar for the given terminal width.
func Render(s State, width int) string {
	if s.Idle() {
		msg := mutedStyle().Render("Nothing playing. Press / to search.")
		return barStyle().Padding(0, 1).Width(max(width-2, 0)).Render(msg)
	}

	l := computeLayout(s, width)

	var b strings.Builder
	b.WriteString(titleStyle().Render(l.left))
	b.WriteString(separator)
	b.WriteString(l.status)
	b.WriteString(" ")
	if l.barWidth > 0 {
		b.WriteString(RenderProgressBar(s.Position, s.Duration, l.barWidth))
		b.WriteString(" ")
	}
	b.WriteString(timeStyle().Render(l.timeStr))
	b.WriteString(separator)
	b.WriteString(l.right)

	return barStyle().Padding(0, 1).Width(max(width-2, 0)).Render(b.String())
}

// RatioAt maps a terminal column inside the progress bar to a seek ratio.
// It reports false when x is outside the bar or no bar is drawn.
func RatioAt(s State, width, x int) (float64, bool) {
	if s.Idle() {
		return 0, false
	}
	l := computeLayout(s, width)
	if l.barWidth == 0 || x < l.barStart || x >= l.barStart+l.barWidth {
		return 0, false
	}
	return float64(x-l.barStart) / float64(l.barWidth-1), true
}

func statusSymbol(s State) string {
	if s.Playing {
		return playSymbol
	}
	return pauseSymbol
}

func renderModes(s State) string {
	mode := func(name string, on bool) string {
		if on {
			return activeModeStyle().Render(name)
		}
		return mutedStyle().Render(name)
	}
	return mode("auto", s.AutoPlay) + " " + mode("shuf", s.Shuffle)
}

func formatDuration(d time.Duration) string {
	d = max(d, 0).Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
