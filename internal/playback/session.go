package playback

import (
	"errors"
	"time"

	"github.com/llehouerou/riffle/internal/player"
)

// ErrNoAudio is returned when a song has no playable audio URL.
var ErrNoAudio = errors.New("song has no audio url")

// SessionEvents receives the live handle's callbacks. Each callback carries
// the generation of the handle that produced it so the owner can drop
// callbacks from a handle that has since been replaced.
type SessionEvents struct {
	TimeUpdate func(gen uint64, position time.Duration)
	Metadata   func(gen uint64, duration time.Duration)
	Ended      func(gen uint64)
	Failed     func(gen uint64, err error)
}

// Session owns at most one live audio handle.
//
// A Session is not safe for concurrent use; its owner serializes every call,
// including Live checks made from event callbacks.
type Session struct {
	opener player.Opener
	handle player.Handle
	gen    uint64
	volume float64
	paused bool
}

// NewSession creates a session that opens handles through opener.
func NewSession(opener player.Opener, volume float64) *Session {
	return &Session{opener: opener, volume: player.ClampVolume(volume)}
}

// Start tears down any current handle and begins playing url.
// It returns the generation assigned to the new handle.
func (s *Session) Start(url string, ev SessionEvents) (uint64, error) {
	s.teardown()
	s.gen++
	if url == "" {
		return s.gen, ErrNoAudio
	}

	h, err := s.opener.Open(url)
	if err != nil {
		return s.gen, err
	}

	gen := s.gen
	h.SetHooks(player.Hooks{
		OnTimeUpdate: func(pos time.Duration) {
			if ev.TimeUpdate != nil {
				ev.TimeUpdate(gen, pos)
			}
		},
		OnMetadata: func(d time.Duration) {
			if ev.Metadata != nil {
				ev.Metadata(gen, d)
			}
		},
		OnEnded: func() {
			if ev.Ended != nil {
				ev.Ended(gen)
			}
		},
		OnError: func(err error) {
			if ev.Failed != nil {
				ev.Failed(gen, err)
			}
		},
	})
	h.SetVolume(s.volume)
	h.Play()

	s.handle = h
	s.paused = false
	return gen, nil
}

// Stop tears down the current handle. Callbacks already in flight are
// invalidated.
func (s *Session) Stop() {
	s.teardown()
	s.gen++
}

// teardown detaches hooks before releasing the handle.
func (s *Session) teardown() {
	if s.handle == nil {
		return
	}
	s.handle.SetHooks(player.Hooks{})
	s.handle.Pause()
	s.handle.Close()
	s.handle = nil
	s.paused = false
}

// Live reports whether gen belongs to the current handle.
func (s *Session) Live(gen uint64) bool {
	return s.handle != nil && gen == s.gen
}

// Active reports whether a handle is loaded.
func (s *Session) Active() bool {
	return s.handle != nil
}

// Pause pauses the current handle.
func (s *Session) Pause() {
	if s.handle == nil {
		return
	}
	s.handle.Pause()
	s.paused = true
}

// Resume resumes the current handle. A handle that reached the end
// restarts from the beginning.
func (s *Session) Resume() {
	if s.handle == nil {
		return
	}
	s.handle.Play()
	s.paused = false
}

// TogglePause flips between paused and playing and returns whether the
// session is now paused. It is a no-op without a handle.
func (s *Session) TogglePause() bool {
	if s.handle == nil {
		return true
	}
	if s.paused {
		s.Resume()
	} else {
		s.Pause()
	}
	return s.paused
}

// Seek moves the current handle to position.
func (s *Session) Seek(position time.Duration) {
	if s.handle == nil {
		return
	}
	s.handle.Seek(position)
}

// SetVolume applies level to the current handle and to every later one.
func (s *Session) SetVolume(level float64) {
	s.volume = player.ClampVolume(level)
	if s.handle != nil {
		s.handle.SetVolume(s.volume)
	}
}

// Volume returns the session volume.
func (s *Session) Volume() float64 {
	return s.volume
}
