// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionSwitchFocus Action = "switch_focus"
	ActionToggleQueue Action = "toggle_queue"
	ActionSearch      Action = "search"
	ActionNextSection Action = "next_section"
	ActionHelp        Action = "help"

	// Playback actions
	ActionPlayPause      Action = "play_pause"
	ActionStop           Action = "stop"
	ActionNextTrack      Action = "next_track"
	ActionSeekForward    Action = "seek_forward"
	ActionSeekBack       Action = "seek_back"
	ActionVolumeUp       Action = "volume_up"
	ActionVolumeDown     Action = "volume_down"
	ActionToggleShuffle  Action = "toggle_shuffle"
	ActionToggleAutoPlay Action = "toggle_autoplay"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"

	// Selection/activation actions
	ActionSelect        Action = "select"          // enter - play/open
	ActionAdd           Action = "add"             // a - add to queue
	ActionAddToPlaylist Action = "add_to_playlist" // p

	// Generic contextual actions
	ActionDelete Action = "delete" // context determines what
	ActionClear  Action = "clear"  // c - empty the queue
	ActionClose  Action = "close"  // esc

	// Playlist management actions
	ActionNewPlaylist Action = "new_playlist"
)
