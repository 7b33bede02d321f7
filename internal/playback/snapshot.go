package playback

import (
	"slices"
	"time"

	"github.com/llehouerou/riffle/internal/playlist"
)

// Snapshot is a copy of the engine read model. It shares no memory with
// the engine.
type Snapshot struct {
	CurrentSong      *playlist.Song
	IsPlaying        bool
	CurrentTime      time.Duration
	Duration         time.Duration
	Volume           float64
	IsAutoPlay       bool
	IsShuffle        bool
	IsQueueOpen      bool
	UpNext           []playlist.Song
	ManualQueueCount int

	// seq counts song starts so a replay of the same song is still a change.
	seq uint64
}

// State derives Idle, Playing or Paused from the snapshot.
// A song that is kept after playback stopped on its own reads as Paused.
func (s Snapshot) State() State {
	switch {
	case s.CurrentSong == nil:
		return StateIdle
	case s.IsPlaying:
		return StatePlaying
	default:
		return StatePaused
	}
}

// Progress returns the elapsed time and duration of the current song.
func (s Snapshot) Progress() Progress {
	return Progress{Elapsed: s.CurrentTime, Duration: s.Duration}
}

func sameSong(a, b *playlist.Song) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// publishDiff sends the events that describe the change from prev to next.
func (s *Subscription) publishDiff(prev, next Snapshot) {
	if prev.State() != next.State() {
		s.sendState(StateChange{Previous: prev.State(), Current: next.State()})
	}
	if prev.seq != next.seq || !sameSong(prev.CurrentSong, next.CurrentSong) {
		s.sendSong(SongChange{Previous: copySong(prev.CurrentSong), Current: copySong(next.CurrentSong)})
	}
	if prev.ManualQueueCount != next.ManualQueueCount || !slices.Equal(prev.UpNext, next.UpNext) {
		s.sendQueue(QueueChange{UpNext: slices.Clone(next.UpNext), Manual: next.ManualQueueCount})
	}
	if prev.IsAutoPlay != next.IsAutoPlay || prev.IsShuffle != next.IsShuffle || prev.IsQueueOpen != next.IsQueueOpen {
		s.sendMode(ModeChange{AutoPlay: next.IsAutoPlay, Shuffle: next.IsShuffle, QueueOpen: next.IsQueueOpen})
	}
	if prev.CurrentTime != next.CurrentTime || prev.Duration != next.Duration {
		s.sendPosition(PositionChange{Position: next.CurrentTime, Duration: next.Duration})
	}
	if prev.Volume != next.Volume {
		s.sendVolume(VolumeChange{Volume: next.Volume})
	}
}

func copySong(s *playlist.Song) *playlist.Song {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
