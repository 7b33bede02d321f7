// internal/player/state.go
package player

// State represents the state of a single handle.
//
//	Loading ──play──▶ Playing ◀──▶ Paused
//	                     │
//	                   ended
//	                     ▼
//	                   Ended ──play──▶ Playing (from the start)
//
// Any state moves to Closed on Close. Closed is terminal.
type State int

const (
	Loading State = iota
	Playing
	Paused
	Ended
	Closed
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Loading:
		return "Loading"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Ended:
		return "Ended"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}
