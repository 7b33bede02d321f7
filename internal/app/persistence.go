package app

import "github.com/llehouerou/riffle/internal/state"

// savePreferences stores the current volume and modes for the next start.
// The store debounces writes.
func (m Model) savePreferences() {
	if m.prefs == nil {
		return
	}
	m.prefs.SavePreferences(state.Preferences{
		Volume:   m.snapshot.Volume,
		AutoPlay: m.snapshot.IsAutoPlay,
		Shuffle:  m.snapshot.IsShuffle,
	})
}
