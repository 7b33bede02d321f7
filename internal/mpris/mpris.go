//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/riffle/internal/playback"
)

// Adapter connects the playback engine to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(p Player) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("riffle", &rootAdapter{}, &playerAdapter{player: p}),
	}

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Riffle", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https", "http"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp4", "audio/aac", "audio/flac"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and optional interfaces.
type playerAdapter struct {
	player Player
}

func (p *playerAdapter) Next() error {
	p.player.PlayNext()
	return nil
}

// Previous does nothing: the engine keeps no history.
func (p *playerAdapter) Previous() error {
	return nil
}

func (p *playerAdapter) Pause() error {
	if p.player.Snapshot().State() == playback.StatePlaying {
		p.player.TogglePlay()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.player.TogglePlay()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.player.Stop()
	return nil
}

// Play resumes a paused song, or starts the queue when idle.
func (p *playerAdapter) Play() error {
	switch p.player.Snapshot().State() {
	case playback.StatePaused:
		p.player.TogglePlay()
	case playback.StateIdle:
		p.player.PlayNext()
	case playback.StatePlaying:
	}
	return nil
}

// Seek moves relative to the current position.
func (p *playerAdapter) Seek(offset types.Microseconds) error {
	pos := p.player.Snapshot().CurrentTime + time.Duration(offset)*time.Microsecond
	p.player.Seek(max(pos, 0))
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.player.Seek(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.player.Snapshot().State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateIdle:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.player.Snapshot()
	song := snap.CurrentSong
	if song == nil {
		return types.Metadata{}, nil
	}

	length := snap.Duration
	if length == 0 {
		length = song.Duration
	}
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(song.ID)),
		Length:  types.Microseconds(length.Microseconds()),
		Title:   song.Title,
		ArtUrl:  song.CoverURL,
	}
	if song.Artist != "" {
		meta.Artist = []string{song.Artist}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.player.Snapshot().Volume, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.player.SetVolume(v)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.player.Snapshot().CurrentTime.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return len(p.player.Snapshot().UpNext) > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	snap := p.player.Snapshot()
	return snap.CurrentSong != nil || len(snap.UpNext) > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.player.Snapshot().State().IsActive(), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	snap := p.player.Snapshot()
	return snap.State().IsActive() && snap.Duration > 0, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Autoplay loops the browsing context, so it reads as playlist looping.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.player.Snapshot().IsAutoPlay {
		return types.LoopStatusPlaylist, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	want := status != types.LoopStatusNone
	if p.player.Snapshot().IsAutoPlay != want {
		p.player.ToggleAutoPlay()
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.player.Snapshot().IsShuffle, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	if p.player.Snapshot().IsShuffle != shuffle {
		p.player.ToggleShuffle()
	}
	return nil
}

func formatTrackID(songID string) string {
	h := fnv.New64a()
	h.Write([]byte(songID))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
