package mpris

import (
	"time"

	"github.com/llehouerou/riffle/internal/playback"
)

// Player is the part of the playback engine exposed over MPRIS.
type Player interface {
	Snapshot() playback.Snapshot
	TogglePlay()
	PlayNext()
	Stop()
	Seek(position time.Duration)
	SetVolume(level float64)
	ToggleAutoPlay()
	ToggleShuffle()
}

var _ Player = (*playback.Engine)(nil)
