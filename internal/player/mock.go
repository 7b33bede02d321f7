// internal/player/mock.go
package player

import (
	"sync"
	"time"
)

// Mock is a test double for a Handle. Events are only delivered when a test
// calls one of the Simulate helpers.
type Mock struct {
	mu        sync.Mutex
	url       string
	hooks     Hooks
	state     State
	position  time.Duration
	volume    float64
	seekCalls []time.Duration
	playCalls int
	closed    bool
}

// NewMock creates a mock handle for url in the Loading state.
func NewMock(url string) *Mock {
	return &Mock{url: url, state: Loading, volume: 1}
}

func (m *Mock) SetHooks(h Hooks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = h
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	if m.state != Closed {
		m.state = Playing
	}
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Seek(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, d)
	m.position = d
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = level
}

func (m *Mock) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.state = Closed
}

// Test helpers

func (m *Mock) URL() string { return m.url }

func (m *Mock) Hooks() Hooks {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hooks
}

func (m *Mock) HasHooks() bool {
	h := m.Hooks()
	return h.OnTimeUpdate != nil || h.OnMetadata != nil || h.OnEnded != nil || h.OnError != nil
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// SimulateTimeUpdate reports a new position through the attached hooks.
func (m *Mock) SimulateTimeUpdate(pos time.Duration) {
	m.mu.Lock()
	m.position = pos
	fn := m.hooks.OnTimeUpdate
	m.mu.Unlock()
	if fn != nil {
		fn(pos)
	}
}

// SimulateMetadata reports the stream duration through the attached hooks.
func (m *Mock) SimulateMetadata(d time.Duration) {
	fn := m.Hooks().OnMetadata
	if fn != nil {
		fn(d)
	}
}

// SimulateEnded simulates the stream finishing.
func (m *Mock) SimulateEnded() {
	m.mu.Lock()
	if m.state == Playing {
		m.state = Ended
	}
	fn := m.hooks.OnEnded
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// SimulateError simulates a load or decode failure.
func (m *Mock) SimulateError(err error) {
	m.mu.Lock()
	m.state = Ended
	fn := m.hooks.OnError
	m.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

// MockOpener hands out Mock handles and remembers them in creation order.
type MockOpener struct {
	mu       sync.Mutex
	handles  []*Mock
	openErrs map[string]error
}

// NewMockOpener creates an opener for tests.
func NewMockOpener() *MockOpener {
	return &MockOpener{openErrs: make(map[string]error)}
}

func (o *MockOpener) Open(url string) (Handle, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.openErrs[url]; err != nil {
		return nil, err
	}
	m := NewMock(url)
	o.handles = append(o.handles, m)
	return m, nil
}

// FailOpen makes Open return err for url.
func (o *MockOpener) FailOpen(url string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.openErrs[url] = err
}

// Handles returns every handle opened so far.
func (o *MockOpener) Handles() []*Mock {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*Mock(nil), o.handles...)
}

// Last returns the most recently opened handle, or nil.
func (o *MockOpener) Last() *Mock {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.handles) == 0 {
		return nil
	}
	return o.handles[len(o.handles)-1]
}

// Verify mocks implement the interfaces at compile time.
var (
	_ Handle = (*Mock)(nil)
	_ Opener = (*MockOpener)(nil)
)
