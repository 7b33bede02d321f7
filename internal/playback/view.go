package playback

import "github.com/llehouerou/riffle/internal/playlist"

// QueueView is the queue contract shared by every queue display.
type QueueView interface {
	UpNext() []playlist.Song
	ManualQueueCount() int
	RemoveFromQueue(index int)
	ClearQueue()
	ToggleQueue()
	IsQueueOpen() bool
}

var _ QueueView = (*Engine)(nil)
