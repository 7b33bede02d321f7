package playback

import (
	"math"
	"time"
)

// Progress is the elapsed time and duration of the current song.
type Progress struct {
	Elapsed  time.Duration
	Duration time.Duration
}

// Percent returns elapsed/duration as a percentage, or 0 when the duration
// is unknown.
func (p Progress) Percent() float64 {
	if p.Duration <= 0 {
		return 0
	}
	pct := float64(p.Elapsed) / float64(p.Duration) * 100
	return min(max(pct, 0), 100)
}

// SeekTarget maps a ratio in [0,1] onto the song duration. Ratios outside the
// range are clamped.
func (p Progress) SeekTarget(ratio float64) time.Duration {
	if p.Duration <= 0 || math.IsNaN(ratio) {
		return 0
	}
	ratio = min(max(ratio, 0), 1)
	return time.Duration(ratio * float64(p.Duration))
}
