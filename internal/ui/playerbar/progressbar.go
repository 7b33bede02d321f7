package playerbar

import (
	"strings"
	"time"
)

const (
	filledCell = "━"
	emptyCell  = "─"
)

// RenderProgressBar renders a width-cell bar filled to position/duration.
func RenderProgressBar(position, duration time.Duration, width int) string {
	filled := filledCells(position, duration, width)
	return filledStyle().Render(strings.Repeat(filledCell, filled)) +
		emptyStyle().Render(strings.Repeat(emptyCell, width-filled))
}

func filledCells(position, duration time.Duration, width int) int {
	if width <= 0 || duration <= 0 {
		return 0
	}
	ratio := float64(position) / float64(duration)
	return max(0, min(int(float64(width)*ratio), width))
}
