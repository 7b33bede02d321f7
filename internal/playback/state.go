package playback

// State represents the engine's playback state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a song is loaded (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}
