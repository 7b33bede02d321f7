// Package app is the riffle terminal UI.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/riffle/internal/catalog"
	"github.com/llehouerou/riffle/internal/keymap"
	"github.com/llehouerou/riffle/internal/notify"
	"github.com/llehouerou/riffle/internal/playback"
	"github.com/llehouerou/riffle/internal/playlist"
	"github.com/llehouerou/riffle/internal/ui/confirm"
	"github.com/llehouerou/riffle/internal/ui/helpbindings"
	"github.com/llehouerou/riffle/internal/ui/playlistlist"
	"github.com/llehouerou/riffle/internal/ui/queuepanel"
	"github.com/llehouerou/riffle/internal/ui/songlist"
	"github.com/llehouerou/riffle/internal/ui/textinput"
)

// Tab selects the main panel.
type Tab int

const (
	TabResults Tab = iota
	TabPlaylists
)

// FocusTarget is the panel receiving list keys.
type FocusTarget int

const (
	FocusMain FocusTarget = iota
	FocusQueue
)

// prompt contexts
const (
	promptSearch      = "search"
	promptNewPlaylist = "new-playlist"
)

const (
	volumeStep = 0.05
	seekStep   = 5 * time.Second
)

// Options are the collaborators of the UI.
type Options struct {
	Engine      *playback.Engine
	Catalog     Catalog
	Playlists   PlaylistStore
	Preferences PreferenceStore
	Announcer   *notify.Announcer // optional
	Country     string
	PageSize    int
	Logger      *zap.Logger
	Now         func() time.Time
}

// Model is the root application model.
type Model struct {
	engine    *playback.Engine
	catalog   Catalog
	store     PlaylistStore
	prefs     PreferenceStore
	announcer *notify.Announcer
	log       *zap.Logger
	sub       *playback.Subscription
	keys      *keymap.Resolver

	country  string
	pageSize int

	snapshot playback.Snapshot

	Prompt       textinput.Model
	Results      songlist.Model
	PlaylistView playlistlist.Model
	Picker       playlistlist.Model
	QueuePanel   queuepanel.Model
	Help         helpbindings.Model
	Confirm      confirm.Model

	// HelpOpen replaces the main panel with the key bindings.
	HelpOpen bool

	Tab   Tab
	Focus FocusTarget

	// pickerSong is the song waiting for a playlist while the picker is open.
	pickerSong *playlist.Song

	query    catalog.Query
	page     catalog.Page
	sections []catalog.Section
	section  int

	StatusMsg string
	StatusErr bool

	Width  int
	Height int
}

// New creates the UI model and subscribes to the engine.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	announcer := opts.Announcer
	if announcer == nil {
		announcer = notify.NewAnnouncer(nil)
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = catalog.DefaultLimit
	}

	m := Model{
		engine:       opts.Engine,
		catalog:      opts.Catalog,
		store:        opts.Playlists,
		prefs:        opts.Preferences,
		announcer:    announcer,
		log:          log.Named("app"),
		sub:          opts.Engine.Subscribe(),
		keys:         keymap.Global(),
		country:      opts.Country,
		pageSize:     pageSize,
		snapshot:     opts.Engine.Snapshot(),
		Prompt:       textinput.New(),
		Results:      songlist.New("Press / to search the catalog."),
		PlaylistView: playlistlist.New("Playlists"),
		Picker:       playlistlist.New("Add to playlist"),
		QueuePanel:   queuepanel.New(opts.Engine),
		Help:         helpbindings.New(),
		Confirm:      confirm.New(),
		sections:     catalog.Sections(now().Year()),
	}
	m.Results.SetFocused(true)
	m.Picker.SetFocused(true)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{WatchEngine(m.sub), loadPlaylistsCmd(m.store)}
	if len(m.sections) > 0 {
		cmds = append(cmds, loadSectionCmd(m.catalog, m.sections[0]))
	}
	return tea.Batch(cmds...)
}

// Snapshot returns the last engine state the UI rendered.
func (m Model) Snapshot() playback.Snapshot {
	return m.snapshot
}

// PickerOpen reports whether the "add to playlist" picker is showing.
func (m Model) PickerOpen() bool {
	return m.pickerSong != nil
}

// Run starts the terminal UI and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
