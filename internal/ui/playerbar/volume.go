package playerbar

import "fmt"

// RenderVolume renders the volume as a percentage.
func RenderVolume(volume float64) string {
	pct := int(max(0, min(volume, 1))*100 + 0.5)
	return timeStyle().Render(fmt.Sprintf("vol %3d%%", pct))
}
