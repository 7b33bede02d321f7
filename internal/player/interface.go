// internal/player/interface.go
package player

import "time"

// Hooks are the callbacks a Handle reports through.
// A zero Hooks value detaches every callback.
type Hooks struct {
	OnTimeUpdate func(position time.Duration)
	OnMetadata   func(duration time.Duration)
	OnEnded      func()
	OnError      func(err error)
}

// Handle is one playable audio object bound to a single URL.
//
// Loading happens asynchronously after Open; the handle reports progress and
// completion through its Hooks, never from inside one of its own methods.
type Handle interface {
	SetHooks(h Hooks)
	Play()
	Pause()
	State() State
	Position() time.Duration
	Seek(position time.Duration)
	SetVolume(level float64)
	Close()
}

// Opener creates handles.
type Opener interface {
	Open(url string) (Handle, error)
}

// Verify implementations at compile time.
var (
	_ Handle = (*streamHandle)(nil)
	_ Opener = (*HTTPOpener)(nil)
)
