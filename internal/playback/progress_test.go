package playback

import (
	"math"
	"testing"
	"time"
)

func TestProgress_Percent(t *testing.T) {
	tests := []struct {
		name string
		p    Progress
		want float64
	}{
		{"unknown duration", Progress{Elapsed: 5 * time.Second}, 0},
		{"start", Progress{Duration: 30 * time.Second}, 0},
		{"half", Progress{Elapsed: 15 * time.Second, Duration: 30 * time.Second}, 50},
		{"end", Progress{Elapsed: 30 * time.Second, Duration: 30 * time.Second}, 100},
		{"overshoot", Progress{Elapsed: 40 * time.Second, Duration: 30 * time.Second}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Percent(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Percent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgress_SeekTarget(t *testing.T) {
	p := Progress{Duration: 30 * time.Second}
	tests := []struct {
		ratio float64
		want  time.Duration
	}{
		{0, 0},
		{0.5, 15 * time.Second},
		{1, 30 * time.Second},
		{-0.2, 0},
		{1.7, 30 * time.Second},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := p.SeekTarget(tt.ratio); got != tt.want {
			t.Errorf("SeekTarget(%v) = %v, want %v", tt.ratio, got, tt.want)
		}
	}

	if got := (Progress{}).SeekTarget(0.5); got != 0 {
		t.Errorf("SeekTarget with unknown duration = %v, want 0", got)
	}
}
