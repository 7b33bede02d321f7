package playlist

// Queue holds the songs waiting to play.
//
// Songs the user added by hand (manual) always play before the remainder of
// the list the current song was started from (context). The full original
// list is kept as source so playback can loop back to its start once both
// queues run dry.
type Queue struct {
	manual  *List
	context *List
	source  []Song
}

// NewQueue creates a new empty queue.
func NewQueue() *Queue {
	return &Queue{
		manual:  NewList(),
		context: NewList(),
	}
}

// SetContext installs a new browsing context.
// source is retained as given (unshuffled); ordered becomes the context queue.
// The manual queue is left alone.
func (q *Queue) SetContext(source, ordered []Song) {
	q.source = append(make([]Song, 0, len(source)), source...)
	q.context.Replace(ordered)
}

// ReseedContext replaces the context queue without touching source.
func (q *Queue) ReseedContext(ordered []Song) {
	q.context.Replace(ordered)
}

// Next pops the next song: manual head first, then context head.
func (q *Queue) Next() (Song, bool) {
	if s, ok := q.manual.PopFront(); ok {
		return s, true
	}
	return q.context.PopFront()
}

// Add appends songs to the manual queue.
func (q *Queue) Add(songs ...Song) {
	q.manual.Add(songs...)
}

// RemoveAt removes the song at index in the UpNext view.
// Returns false if index is out of range.
func (q *Queue) RemoveAt(index int) bool {
	if index < 0 {
		return false
	}
	if index < q.manual.Len() {
		return q.manual.Remove(index)
	}
	return q.context.Remove(index - q.manual.Len())
}

// Clear empties the manual and context queues. Source is kept.
func (q *Queue) Clear() {
	q.manual.Clear()
	q.context.Clear()
}

// ShuffleContext reorders the context queue randomly.
func (q *Queue) ShuffleContext() {
	if q.context.Len() == 0 {
		return
	}
	q.context.Replace(Shuffle(q.context.songs))
}

// UpNext returns manual followed by context.
func (q *Queue) UpNext() []Song {
	result := make([]Song, 0, q.manual.Len()+q.context.Len())
	result = append(result, q.manual.songs...)
	return append(result, q.context.songs...)
}

// Manual returns a copy of the manual queue.
func (q *Queue) Manual() []Song { return q.manual.Songs() }

// Context returns a copy of the context queue.
func (q *Queue) Context() []Song { return q.context.Songs() }

// Source returns a copy of the browsing list the context came from.
func (q *Queue) Source() []Song {
	return append(make([]Song, 0, len(q.source)), q.source...)
}

// ManualLen returns the number of user-added songs.
func (q *Queue) ManualLen() int { return q.manual.Len() }

// Len returns the number of songs in UpNext.
func (q *Queue) Len() int { return q.manual.Len() + q.context.Len() }

// IsEmpty returns true if nothing is waiting to play.
func (q *Queue) IsEmpty() bool { return q.Len() == 0 }

// HasSource returns true if there is a list to loop back to.
func (q *Queue) HasSource() bool { return len(q.source) > 0 }
