package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged    <-chan StateChange
	SongChanged     <-chan SongChange
	PositionChanged <-chan PositionChange
	QueueChanged    <-chan QueueChange
	ModeChanged     <-chan ModeChange
	VolumeChanged   <-chan VolumeChange
	Failed          <-chan PlaybackFailed
	Done            <-chan struct{}

	// Internal write channels
	stateCh    chan StateChange
	songCh     chan SongChange
	positionCh chan PositionChange
	queueCh    chan QueueChange
	modeCh     chan ModeChange
	volumeCh   chan VolumeChange
	failedCh   chan PlaybackFailed
	doneCh     chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		songCh:     make(chan SongChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		queueCh:    make(chan QueueChange, eventBufferSize),
		modeCh:     make(chan ModeChange, eventBufferSize),
		volumeCh:   make(chan VolumeChange, eventBufferSize),
		failedCh:   make(chan PlaybackFailed, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.SongChanged = s.songCh
	s.PositionChanged = s.positionCh
	s.QueueChanged = s.queueCh
	s.ModeChanged = s.modeCh
	s.VolumeChanged = s.volumeCh
	s.Failed = s.failedCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// send delivers e on ch without blocking. Events are dropped when the
// subscriber's buffer is full.
func send[T any](ch chan T, e T) {
	select {
	case ch <- e:
	default:
	}
}

func (s *Subscription) sendState(e StateChange)       { send(s.stateCh, e) }
func (s *Subscription) sendSong(e SongChange)         { send(s.songCh, e) }
func (s *Subscription) sendPosition(e PositionChange) { send(s.positionCh, e) }
func (s *Subscription) sendQueue(e QueueChange)       { send(s.queueCh, e) }
func (s *Subscription) sendMode(e ModeChange)         { send(s.modeCh, e) }
func (s *Subscription) sendVolume(e VolumeChange)     { send(s.volumeCh, e) }
func (s *Subscription) sendFailed(e PlaybackFailed)   { send(s.failedCh, e) }
