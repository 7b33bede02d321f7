package player

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// timeUpdateInterval is how often a playing handle reports its position.
const timeUpdateInterval = 250 * time.Millisecond

// streamHandle plays one remote preview through the beep speaker.
//
// Hooks are only ever invoked from the handle's own event goroutine and
// never while the speaker lock is held: the beep callback that marks the end
// of the stream just signals finishedCh.
type streamHandle struct {
	mu    sync.Mutex
	hooks Hooks
	state State

	url      string
	wantPlay bool
	volume   float64
	seekTo   time.Duration // applied once loaded

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	effect   *effects.Volume

	ctx        context.Context
	cancel     context.CancelFunc
	finishedCh chan struct{}
	loaded     chan loadResult
}

type loadResult struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	err      error
}

func newStreamHandle(url string, load func(ctx context.Context) (beep.StreamSeekCloser, beep.Format, error)) *streamHandle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &streamHandle{
		state:      Loading,
		url:        url,
		volume:     1,
		ctx:        ctx,
		cancel:     cancel,
		finishedCh: make(chan struct{}, 1),
		loaded:     make(chan loadResult),
	}
	go func() {
		s, f, err := load(ctx)
		select {
		case h.loaded <- loadResult{streamer: s, format: f, err: err}:
		case <-ctx.Done():
			// Closed while loading: nobody will take ownership.
			if s != nil {
				_ = s.Close()
			}
		}
	}()
	go h.run()
	return h
}

func (h *streamHandle) SetHooks(hooks Hooks) {
	h.mu.Lock()
	h.hooks = hooks
	h.mu.Unlock()
}

func (h *streamHandle) currentHooks() Hooks {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hooks
}

// run delivers load completion, time updates and end-of-stream to the hooks
// until the handle is closed.
func (h *streamHandle) run() {
	ticker := time.NewTicker(timeUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case res := <-h.loaded:
			h.handleLoaded(res)

		case <-ticker.C:
			if h.State() != Playing {
				continue
			}
			if fn := h.currentHooks().OnTimeUpdate; fn != nil {
				fn(h.Position())
			}

		case <-h.finishedCh:
			h.mu.Lock()
			if h.state != Playing {
				h.mu.Unlock()
				continue
			}
			h.state = Ended
			h.mu.Unlock()

			hooks := h.currentHooks()
			if hooks.OnTimeUpdate != nil {
				hooks.OnTimeUpdate(h.duration())
			}
			if hooks.OnEnded != nil {
				hooks.OnEnded()
			}
		}
	}
}

func (h *streamHandle) handleLoaded(res loadResult) {
	if h.State() == Closed {
		if res.streamer != nil {
			_ = res.streamer.Close()
		}
		return
	}
	if res.err == nil {
		res.err = initSpeaker()
	}
	if res.err != nil {
		if res.streamer != nil {
			_ = res.streamer.Close()
		}
		h.mu.Lock()
		h.state = Ended
		h.mu.Unlock()
		if fn := h.currentHooks().OnError; fn != nil {
			fn(res.err)
		}
		return
	}

	h.mu.Lock()
	if h.state == Closed {
		h.mu.Unlock()
		_ = res.streamer.Close()
		return
	}
	h.streamer = res.streamer
	h.format = res.format

	var s beep.Streamer = res.streamer
	if res.format.SampleRate != outputSampleRate {
		s = beep.Resample(4, res.format.SampleRate, outputSampleRate, res.streamer)
	}
	h.ctrl = &beep.Ctrl{Streamer: s, Paused: !h.wantPlay}
	vol, silent := levelToVolume(h.volume)
	h.effect = &effects.Volume{Streamer: h.ctrl, Base: 2, Volume: vol, Silent: silent}
	if h.seekTo > 0 {
		_ = h.streamer.Seek(h.format.SampleRate.N(h.seekTo))
	}
	if h.wantPlay {
		h.state = Playing
	} else {
		h.state = Paused
	}
	h.mu.Unlock()

	h.startOutput()

	if fn := h.currentHooks().OnMetadata; fn != nil {
		fn(h.duration())
	}
}

// startOutput hands the streamer chain to the speaker.
func (h *streamHandle) startOutput() {
	finished := h.finishedCh
	speaker.Play(beep.Seq(h.effect, beep.Callback(func() {
		select {
		case finished <- struct{}{}:
		default:
		}
	})))
}

func (h *streamHandle) Play() {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case Loading:
		h.wantPlay = true
	case Paused:
		speaker.Lock()
		h.ctrl.Paused = false
		speaker.Unlock()
		h.state = Playing
	case Ended:
		if h.streamer == nil {
			return
		}
		// Replay from the start, like a media element after "ended".
		speaker.Lock()
		_ = h.streamer.Seek(0)
		h.ctrl.Paused = false
		speaker.Unlock()
		h.state = Playing
		h.startOutput()
	case Playing, Closed:
	}
}

func (h *streamHandle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case Loading:
		h.wantPlay = false
	case Playing:
		speaker.Lock()
		h.ctrl.Paused = true
		speaker.Unlock()
		h.state = Paused
	case Paused, Ended, Closed:
	}
}

func (h *streamHandle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *streamHandle) Position() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.streamer == nil {
		return h.seekTo
	}
	speaker.Lock()
	pos := h.format.SampleRate.D(h.streamer.Position())
	speaker.Unlock()
	return pos
}

func (h *streamHandle) duration() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.streamer == nil {
		return 0
	}
	return h.format.SampleRate.D(h.streamer.Len())
}

// Seek moves to an absolute position, clamped to the stream bounds.
func (h *streamHandle) Seek(position time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	position = max(position, 0)
	if h.streamer == nil {
		h.seekTo = position
		return
	}
	if h.state == Closed {
		return
	}
	n := min(h.format.SampleRate.N(position), h.streamer.Len())
	speaker.Lock()
	_ = h.streamer.Seek(n)
	speaker.Unlock()
}

func (h *streamHandle) SetVolume(level float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.volume = ClampVolume(level)
	if h.effect == nil {
		return
	}
	vol, silent := levelToVolume(h.volume)
	speaker.Lock()
	h.effect.Volume = vol
	h.effect.Silent = silent
	speaker.Unlock()
}

// Close stops output and releases the decoder. It does not wait for the
// event goroutine, which exits on its own once the context is cancelled.
func (h *streamHandle) Close() {
	h.mu.Lock()
	if h.state == Closed {
		h.mu.Unlock()
		return
	}
	h.state = Closed
	h.hooks = Hooks{}
	h.cancel()

	streamer := h.streamer
	h.streamer = nil
	if h.ctrl != nil {
		speaker.Lock()
		// A Ctrl without a streamer reports exhaustion, so the mixer drops it.
		h.ctrl.Streamer = nil
		speaker.Unlock()
	}
	h.mu.Unlock()

	if streamer != nil {
		_ = streamer.Close()
	}
}
