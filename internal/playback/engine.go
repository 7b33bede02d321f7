package playback

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/riffle/internal/player"
	"github.com/llehouerou/riffle/internal/playlist"
)

// Settings are the engine's initial preferences.
type Settings struct {
	Volume   float64
	AutoPlay bool
	Shuffle  bool
	Logger   *zap.Logger
}

// DefaultSettings returns full volume with autoplay on and shuffle off.
func DefaultSettings() Settings {
	return Settings{Volume: 1, AutoPlay: true}
}

// Engine is the playback controller. It owns the queue and the audio
// session, and serializes user commands with events from the live handle.
type Engine struct {
	mu      sync.Mutex
	log     *zap.Logger
	session *Session
	queue   *playlist.Queue

	current   *playlist.Song
	playing   bool
	position  time.Duration
	duration  time.Duration
	autoPlay  bool
	shuffle   bool
	queueOpen bool
	seq       uint64

	subs   []*Subscription
	closed bool
}

// New creates an idle engine that opens audio through opener.
func New(opener player.Opener, s Settings) *Engine {
	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		log:      log.Named("playback"),
		session:  NewSession(opener, s.Volume),
		queue:    playlist.NewQueue(),
		autoPlay: s.AutoPlay,
		shuffle:  s.Shuffle,
	}
}

// update runs fn under the engine lock and publishes what changed.
func (e *Engine) update(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	prev := e.snapshotLocked()
	fn()
	next := e.snapshotLocked()
	for _, sub := range e.subs {
		sub.publishDiff(prev, next)
	}
}

func (e *Engine) events() SessionEvents {
	return SessionEvents{
		TimeUpdate: e.onTimeUpdate,
		Metadata:   e.onMetadata,
		Ended:      e.onEnded,
		Failed:     e.onFailed,
	}
}

// PlaySong plays song and makes ctx the browsing context: the songs after
// song become the context queue and ctx itself becomes the loop source.
// The manual queue is left untouched.
func (e *Engine) PlaySong(song playlist.Song, ctx []playlist.Song) {
	e.update(func() {
		var rest []playlist.Song
		if i := playlist.IndexOf(ctx, song.ID); i >= 0 {
			rest = ctx[i+1:]
		}
		if e.shuffle {
			rest = playlist.Shuffle(rest)
		}
		e.queue.SetContext(ctx, rest)
		e.startLocked(song)
	})
}

// PlayNext skips to the manual queue head, else the context head.
// It never loops and does nothing when both queues are empty.
func (e *Engine) PlayNext() {
	e.update(func() {
		next, ok := e.queue.Next()
		if !ok {
			return
		}
		e.startLocked(next)
	})
}

// TogglePlay switches between playing and paused. It is a no-op when idle.
func (e *Engine) TogglePlay() {
	e.update(func() {
		if e.current == nil || !e.session.Active() {
			return
		}
		e.playing = !e.session.TogglePause()
	})
}

// Stop tears down audio and clears the current song.
func (e *Engine) Stop() {
	e.update(func() {
		e.session.Stop()
		e.current = nil
		e.playing = false
		e.position = 0
		e.duration = 0
	})
}

// Seek moves playback to position and reports it immediately, before the
// handle confirms.
func (e *Engine) Seek(position time.Duration) {
	e.update(func() {
		e.seekLocked(position)
	})
}

// SeekRatio seeks to a fraction of the song duration. It does nothing while
// the duration is unknown.
func (e *Engine) SeekRatio(ratio float64) {
	e.update(func() {
		if e.duration <= 0 {
			return
		}
		p := Progress{Elapsed: e.position, Duration: e.duration}
		e.seekLocked(p.SeekTarget(ratio))
	})
}

func (e *Engine) seekLocked(position time.Duration) {
	if !e.session.Active() {
		return
	}
	position = max(position, 0)
	e.session.Seek(position)
	e.position = position
}

// SetVolume sets the output level, clamped to [0,1].
func (e *Engine) SetVolume(level float64) {
	e.update(func() {
		e.session.SetVolume(level)
	})
}

// ToggleAutoPlay flips autoplay.
func (e *Engine) ToggleAutoPlay() {
	e.update(func() {
		e.autoPlay = !e.autoPlay
	})
}

// ToggleShuffle flips shuffle. Turning it on reshuffles the context queue;
// turning it off keeps the current order.
func (e *Engine) ToggleShuffle() {
	e.update(func() {
		e.shuffle = !e.shuffle
		if e.shuffle {
			e.queue.ShuffleContext()
		}
	})
}

// AddToQueue appends song to the manual queue. It never starts playback.
func (e *Engine) AddToQueue(song playlist.Song) {
	e.update(func() {
		e.queue.Add(song)
	})
}

// RemoveFromQueue removes the entry at index in UpNext. Out of range
// indexes are ignored.
func (e *Engine) RemoveFromQueue(index int) {
	e.update(func() {
		e.queue.RemoveAt(index)
	})
}

// ClearQueue empties the manual and context queues. The loop source is kept.
func (e *Engine) ClearQueue() {
	e.update(func() {
		e.queue.Clear()
	})
}

// ToggleQueue flips queue panel visibility.
func (e *Engine) ToggleQueue() {
	e.update(func() {
		e.queueOpen = !e.queueOpen
	})
}

// startLocked makes song current and starts it. A song that cannot be
// opened fails forward immediately.
func (e *Engine) startLocked(song playlist.Song) {
	e.current = &song
	e.position = 0
	e.duration = 0
	e.seq++

	gen, err := e.session.Start(song.AudioURL, e.events())
	if err != nil {
		e.failLocked(song, err)
		return
	}
	e.playing = true
	e.log.Debug("song started",
		zap.String("id", song.ID),
		zap.String("title", song.Title),
		zap.Uint64("gen", gen))
}

// failLocked reports song as failed and moves to the next queued song.
// It never loops back to the source, so a run of broken songs terminates.
func (e *Engine) failLocked(song playlist.Song, err error) {
	e.log.Warn("playback failed",
		zap.String("id", song.ID),
		zap.String("url", song.AudioURL),
		zap.Error(err))

	next, ok := e.queue.Next()
	ev := PlaybackFailed{Song: song, Err: err}
	if ok {
		ev.Next = copySong(&next)
	}
	for _, sub := range e.subs {
		sub.sendFailed(ev)
	}

	if ok {
		e.startLocked(next)
		return
	}
	e.session.Stop()
	e.playing = false
}

// advanceLocked picks what plays after the current song ends.
func (e *Engine) advanceLocked() {
	if !e.autoPlay {
		e.stopAtEndLocked()
		return
	}
	if next, ok := e.queue.Next(); ok {
		e.startLocked(next)
		return
	}
	if e.queue.HasSource() {
		src := e.queue.Source()
		rest := src[1:]
		if e.shuffle {
			rest = playlist.Shuffle(rest)
		}
		e.queue.ReseedContext(rest)
		e.startLocked(src[0])
		return
	}
	e.stopAtEndLocked()
}

// stopAtEndLocked leaves the ended song current but not playing.
func (e *Engine) stopAtEndLocked() {
	e.session.Pause()
	e.playing = false
}

func (e *Engine) onTimeUpdate(gen uint64, position time.Duration) {
	e.update(func() {
		if !e.session.Live(gen) {
			return
		}
		e.position = max(position, 0)
	})
}

func (e *Engine) onMetadata(gen uint64, duration time.Duration) {
	e.update(func() {
		if !e.session.Live(gen) {
			return
		}
		e.duration = max(duration, 0)
	})
}

func (e *Engine) onEnded(gen uint64) {
	e.update(func() {
		if !e.session.Live(gen) {
			return
		}
		e.log.Debug("song ended", zap.Uint64("gen", gen))
		e.advanceLocked()
	})
}

func (e *Engine) onFailed(gen uint64, err error) {
	e.update(func() {
		if !e.session.Live(gen) || e.current == nil {
			return
		}
		e.failLocked(*e.current, err)
	})
}

// Snapshot returns a copy of the current read model.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		CurrentSong:      copySong(e.current),
		IsPlaying:        e.playing,
		CurrentTime:      e.position,
		Duration:         e.duration,
		Volume:           e.session.Volume(),
		IsAutoPlay:       e.autoPlay,
		IsShuffle:        e.shuffle,
		IsQueueOpen:      e.queueOpen,
		UpNext:           e.queue.UpNext(),
		ManualQueueCount: e.queue.ManualLen(),
		seq:              e.seq,
	}
}

// UpNext returns the manual queue followed by the context queue.
func (e *Engine) UpNext() []playlist.Song {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.UpNext()
}

// ManualQueueCount returns how many leading UpNext entries were queued manually.
func (e *Engine) ManualQueueCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.ManualLen()
}

// IsQueueOpen reports whether the queue panel is visible.
func (e *Engine) IsQueueOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queueOpen
}

// Subscribe returns a new event subscription. After Close the returned
// subscription is already done.
func (e *Engine) Subscribe() *Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	sub := newSubscription()
	if e.closed {
		sub.close()
		return sub
	}
	e.subs = append(e.subs, sub)
	return sub
}

// Close stops audio and ends every subscription. It is safe to call twice.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.session.Stop()
	e.playing = false
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
}
