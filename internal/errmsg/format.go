// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/llehouerou/riffle/internal/playlists"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpSearch      Op = "search the catalog"
	OpLoadSection Op = "load songs"

	// Playlist operations
	OpPlaylistCreate  Op = "create playlist"
	OpPlaylistDelete  Op = "delete playlist"
	OpPlaylistLoad    Op = "load playlists"
	OpPlaylistAddSong Op = "add song to playlist"

	// Playback operations
	OpPlaybackStart Op = "play"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %s", op, describe(err))
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %s", op, context, describe(err))
}

// describe reduces wrapped playlist sentinels to their plain message.
func describe(err error) string {
	for _, known := range []error{
		playlists.ErrDuplicateName,
		playlists.ErrEmptyName,
		playlists.ErrNotFound,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}
