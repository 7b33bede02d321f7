package playlist

import "time"

// Song is a playable catalog preview.
// IDs are only unique within one browsing context: a catalog result and a
// playlist row for the same recording may carry different IDs.
type Song struct {
	ID       string
	Title    string
	Artist   string
	CoverURL string
	AudioURL string
	Duration time.Duration // informational; the player reports the real length
}

// List holds an ordered collection of songs. Duplicates are allowed.
type List struct {
	songs []Song
}

// NewList creates a list holding a copy of songs.
func NewList(songs ...Song) *List {
	l := &List{songs: make([]Song, 0, len(songs))}
	l.Add(songs...)
	return l
}

// Add appends songs to the list.
func (l *List) Add(songs ...Song) {
	l.songs = append(l.songs, songs...)
}

// Remove removes the song at the given index.
// Returns false if index is out of bounds.
func (l *List) Remove(index int) bool {
	if index < 0 || index >= len(l.songs) {
		return false
	}
	l.songs = append(l.songs[:index], l.songs[index+1:]...)
	return true
}

// PopFront removes and returns the first song.
func (l *List) PopFront() (Song, bool) {
	if len(l.songs) == 0 {
		return Song{}, false
	}
	head := l.songs[0]
	l.songs = l.songs[1:]
	return head, true
}

// Replace discards the current contents and stores a copy of songs.
func (l *List) Replace(songs []Song) {
	l.songs = append(make([]Song, 0, len(songs)), songs...)
}

// Clear removes all songs from the list.
func (l *List) Clear() {
	l.songs = l.songs[:0]
}

// Songs returns a copy of all songs.
func (l *List) Songs() []Song {
	result := make([]Song, len(l.songs))
	copy(result, l.songs)
	return result
}

// Len returns the number of songs.
func (l *List) Len() int {
	return len(l.songs)
}

// IndexOf returns the index of the first song with the given ID, or -1.
func IndexOf(songs []Song, id string) int {
	for i := range songs {
		if songs[i].ID == id {
			return i
		}
	}
	return -1
}
