package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/llehouerou/riffle/internal/playlist"
)

const (
	iconName       = "audio-x-generic"
	shortTimeout   = 2500 * time.Millisecond
	defaultTimeout = 5 * time.Second
)

// Announcer turns player events into desktop notifications. Now-playing
// notifications replace each other instead of piling up.
type Announcer struct {
	n Notifier

	mu           sync.Mutex
	nowPlayingID uint32
}

// NewAnnouncer wraps n. A nil notifier disables every announcement.
func NewAnnouncer(n Notifier) *Announcer {
	return &Announcer{n: n}
}

// NowPlaying announces the song that just started.
func (a *Announcer) NowPlaying(s playlist.Song) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.send(Notification{
		Summary:  s.Title,
		Body:     s.Artist,
		Icon:     iconName,
		Timeout:  defaultTimeout,
		Replaces: a.nowPlayingID,
		Urgency:  UrgencyLow,
	})
	if id != 0 {
		a.nowPlayingID = id
	}
}

// Queued confirms a song was added to the manual queue.
func (a *Announcer) Queued(s playlist.Song) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.send(Notification{
		Summary:   "Added to queue",
		Body:      songLine(s),
		Icon:      iconName,
		Timeout:   shortTimeout,
		Urgency:   UrgencyLow,
		Transient: true,
	})
}

// AddedToPlaylist confirms a playlist addition. added is false when the
// song was already in the playlist.
func (a *Announcer) AddedToPlaylist(s playlist.Song, playlistName string, added bool) {
	title := "Added to " + playlistName
	if !added {
		title = "Already in " + playlistName
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.send(Notification{
		Summary:   title,
		Body:      songLine(s),
		Icon:      iconName,
		Timeout:   shortTimeout,
		Urgency:   UrgencyLow,
		Transient: true,
	})
}

// Skipped reports a song that could not be played.
func (a *Announcer) Skipped(s playlist.Song, err error) {
	body := songLine(s)
	if err != nil {
		body = fmt.Sprintf("%s: %v", body, err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.send(Notification{
		Summary: "Skipped unplayable song",
		Body:    body,
		Icon:    "dialog-warning",
		Timeout: defaultTimeout,
		Urgency: UrgencyNormal,
	})
}

// send delivers n and returns its ID, or 0 on failure. Notification errors
// never reach the player.
func (a *Announcer) send(n Notification) uint32 {
	if a.n == nil {
		return 0
	}
	id, err := a.n.Notify(n)
	if err != nil {
		return 0
	}
	return id
}

func songLine(s playlist.Song) string {
	if s.Artist == "" {
		return s.Title
	}
	return s.Title + " - " + s.Artist
}
