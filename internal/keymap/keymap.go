package keymap

// Binding contexts, in help display order.
const (
	ContextGlobal    = "global"
	ContextPlayback  = "playback"
	ContextList      = "list"
	ContextQueue     = "queue"
	ContextPlaylists = "playlists"
)

// Contexts lists every binding context in display order.
var Contexts = []string{ContextGlobal, ContextPlayback, ContextList, ContextQueue, ContextPlaylists}

// Binding maps keys to an action within a context. Keys use the
// tea.KeyMsg String form, so space is " ".
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// Bindings contains every key binding, used for dispatch and help.
var Bindings = []Binding{
	// Global
	{ActionSearch, []string{"/"}, "Search the catalog", ContextGlobal},
	{ActionSwitchFocus, []string{"tab"}, "Switch results/playlists/queue", ContextGlobal},
	{ActionToggleQueue, []string{"q"}, "Toggle queue panel", ContextGlobal},
	{ActionNextSection, []string{"h"}, "Next home shelf", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},
	{ActionQuit, []string{"ctrl+c"}, "Quit", ContextGlobal},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", ContextPlayback},
	{ActionNextTrack, []string{"n"}, "Next song", ContextPlayback},
	{ActionStop, []string{"s"}, "Stop", ContextPlayback},
	{ActionSeekBack, []string{"left"}, "Seek -5s", ContextPlayback},
	{ActionSeekForward, []string{"right"}, "Seek +5s", ContextPlayback},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", ContextPlayback},
	{ActionVolumeDown, []string{"-"}, "Volume down", ContextPlayback},
	{ActionToggleShuffle, []string{"S"}, "Toggle shuffle", ContextPlayback},
	{ActionToggleAutoPlay, []string{"A"}, "Toggle autoplay", ContextPlayback},

	// Lists
	{ActionMoveDown, []string{"j", "down"}, "Move down", ContextList},
	{ActionMoveUp, []string{"k", "up"}, "Move up", ContextList},
	{ActionJumpStart, []string{"g"}, "First item", ContextList},
	{ActionJumpEnd, []string{"G"}, "Last item", ContextList},
	{ActionPageDown, []string{"ctrl+d", "pgdown"}, "Page down", ContextList},
	{ActionPageUp, []string{"ctrl+u", "pgup"}, "Page up", ContextList},
	{ActionSelect, []string{"enter"}, "Play, the list follows", ContextList},
	{ActionAdd, []string{"a"}, "Add to queue", ContextList},
	{ActionAddToPlaylist, []string{"p"}, "Add to playlist", ContextList},

	// Queue panel
	{ActionDelete, []string{"d", "x", "delete"}, "Remove entry", ContextQueue},
	{ActionClear, []string{"c"}, "Clear queue", ContextQueue},

	// Playlists
	{ActionSelect, []string{"enter"}, "Open playlist", ContextPlaylists},
	{ActionNewPlaylist, []string{"c", "N"}, "New playlist", ContextPlaylists},
	{ActionDelete, []string{"D"}, "Delete playlist", ContextPlaylists},
	{ActionClose, []string{"esc"}, "Close picker", ContextPlaylists},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// DisplayKey returns the label shown for key in help text.
func DisplayKey(key string) string {
	switch key {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return key
}
