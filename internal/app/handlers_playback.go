package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/riffle/internal/errmsg"
	"github.com/llehouerou/riffle/internal/ui/playerbar"
)

// handleEngineEvent refreshes the rendered engine state and re-arms the
// subscription watcher.
func (m Model) handleEngineEvent(msg tea.Msg) (tea.Model, tea.Cmd) {
	prev := m.snapshot
	m.snapshot = m.engine.Snapshot()

	switch e := msg.(type) {
	case SongChangedMsg:
		if e.Current != nil {
			m.announcer.NowPlaying(*e.Current)
			m.setStatus("")
		}
		m.Results.SetPlaying(m.playingID())

	case QueueChangedMsg:
		m.QueuePanel.Refresh()

	case ModeChangedMsg:
		m.QueuePanel.Refresh()
		m.applyFocus()
		m.resize()
		if prev.IsAutoPlay != e.AutoPlay || prev.IsShuffle != e.Shuffle {
			m.savePreferences()
		}

	case VolumeChangedMsg:
		m.savePreferences()

	case PlaybackFailedMsg:
		m.log.Warn("song skipped",
			zap.String("id", e.Song.ID),
			zap.String("url", e.Song.AudioURL),
			zap.Error(e.Err))
		m.announcer.Skipped(e.Song, e.Err)
		m.setError(errmsg.FormatWith(errmsg.OpPlaybackStart, e.Song.Title, e.Err))
	}

	return m, WatchEngine(m.sub)
}

// handleMouse seeks when the progress bar is clicked.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	// The bar's content row sits between its two border rows.
	if msg.Y != m.Height-playerbar.Height+1 {
		return m, nil
	}
	if ratio, ok := playerbar.RatioAt(playerbar.NewState(m.snapshot), m.Width, msg.X); ok {
		m.engine.SeekRatio(ratio)
	}
	return m, nil
}
