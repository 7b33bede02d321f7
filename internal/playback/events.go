package playback

import (
	"time"

	"github.com/llehouerou/riffle/internal/playlist"
)

// StateChange is emitted when the engine moves between Idle, Playing and Paused.
type StateChange struct {
	Previous State
	Current  State
}

// SongChange is emitted whenever a song starts, including a replay of the
// same song when the source loops, and when Stop clears the current song.
//
// The app handles song-related side effects (notifications, MPRIS metadata)
// in response to this event.
type SongChange struct {
	Previous *playlist.Song
	Current  *playlist.Song
}

// QueueChange is emitted when the up-next list changes.
type QueueChange struct {
	UpNext []playlist.Song
	// Manual is the number of leading UpNext entries queued by the user.
	Manual int
}

// ModeChange is emitted when autoplay, shuffle or queue panel visibility changes.
type ModeChange struct {
	AutoPlay  bool
	Shuffle   bool
	QueueOpen bool
}

// PositionChange is emitted on time updates, metadata and seeks.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// VolumeChange is emitted when the volume changes.
type VolumeChange struct {
	Volume float64
}

// PlaybackFailed is emitted when a song fails to load or play.
// Next is the song the engine moved on to, or nil if nothing was left.
type PlaybackFailed struct {
	Song playlist.Song
	Err  error
	Next *playlist.Song
}
