package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/riffle/internal/catalog"
	"github.com/llehouerou/riffle/internal/playback"
	"github.com/llehouerou/riffle/internal/player"
	"github.com/llehouerou/riffle/internal/playlist"
	"github.com/llehouerou/riffle/internal/playlists"
	"github.com/llehouerou/riffle/internal/state"
	"github.com/llehouerou/riffle/internal/ui/action"
)

type fakeCatalog struct {
	mu       sync.Mutex
	songs    []playlist.Song
	err      error
	queries  []catalog.Query
	sections []catalog.Section
}

func (f *fakeCatalog) Search(_ context.Context, q catalog.Query) (catalog.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return catalog.Page{}, f.err
	}
	start := min(q.Offset, len(f.songs))
	end := min(q.Offset+q.Limit, len(f.songs))
	return catalog.Page{Songs: f.songs[start:end], Offset: q.Offset, Total: len(f.songs)}, nil
}

func (f *fakeCatalog) Section(_ context.Context, s catalog.Section) ([]playlist.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sections = append(f.sections, s)
	return f.songs[:min(len(f.songs), catalog.SectionLimit)], f.err
}

func (f *fakeCatalog) lastQuery() catalog.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

func makeSongs(n int) []playlist.Song {
	out := make([]playlist.Song, n)
	for i := range out {
		out[i] = playlist.Song{
			ID:       fmt.Sprintf("s%d", i),
			Title:    fmt.Sprintf("Song %d", i),
			Artist:   "Artist",
			AudioURL: fmt.Sprintf("https://audio.test/%d.m4a", i),
			Duration: 30 * time.Second,
		}
	}
	return out
}

type testEnv struct {
	opener  *player.MockOpener
	engine  *playback.Engine
	catalog *fakeCatalog
	store   *playlists.Playlists
	prefs   *state.Mock
}

func newTestModel(t *testing.T) (Model, *testEnv) {
	t.Helper()

	env := &testEnv{
		opener:  player.NewMockOpener(),
		catalog: &fakeCatalog{songs: makeSongs(25)},
		prefs:   state.NewMock(),
	}
	env.engine = playback.New(env.opener, playback.DefaultSettings())
	t.Cleanup(env.engine.Close)

	mgr, err := state.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	env.store = playlists.New(mgr.DB())

	m := New(Options{
		Engine:      env.engine,
		Catalog:     env.catalog,
		Playlists:   env.store,
		Preferences: env.prefs,
		Country:     "fr",
		PageSize:    10,
		Now:         func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) },
	})
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, env
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// run executes cmd and feeds the resulting message back, following
// batches. It must only be used on commands that do not block.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = run(t, m, c)
		}
		return m
	}
	m, next := update(m, msg)
	if _, isAction := msg.(action.Msg); isAction {
		return run(t, m, next)
	}
	switch msg.(type) {
	case PlaylistCreatedMsg, SongAddedMsg, PlaylistDeletedMsg:
		return run(t, m, next)
	}
	return m
}

// pump feeds every engine event already published to the model.
func pump(m Model) Model {
	for {
		var msg tea.Msg
		select {
		case e := <-m.sub.StateChanged:
			msg = StateChangedMsg(e)
		case e := <-m.sub.SongChanged:
			msg = SongChangedMsg(e)
		case e := <-m.sub.PositionChanged:
			msg = PositionChangedMsg(e)
		case e := <-m.sub.QueueChanged:
			msg = QueueChangedMsg(e)
		case e := <-m.sub.ModeChanged:
			msg = ModeChangedMsg(e)
		case e := <-m.sub.VolumeChanged:
			msg = VolumeChangedMsg(e)
		case e := <-m.sub.Failed:
			msg = PlaybackFailedMsg(e)
		default:
			return m
		}
		m, _ = update(m, msg)
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = update(m, keyPress(k))
		m = run(t, m, cmd)
	}
	return m
}

func search(t *testing.T, m Model, term string) Model {
	t.Helper()
	m = press(t, m, "/")
	if !m.Prompt.Active() {
		t.Fatal("search prompt did not open")
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(term)})
	return press(t, m, "enter")
}

func TestSearch_ShowsFirstPage(t *testing.T) {
	m, env := newTestModel(t)

	m = search(t, m, "daft punk")

	q := env.catalog.lastQuery()
	if q.Term != "daft punk" || q.Country != "fr" || q.Limit != 10 || q.Offset != 0 {
		t.Errorf("query = %+v", q)
	}
	if got := len(m.Results.Songs()); got != 10 {
		t.Errorf("results = %d, want 10", got)
	}
	if m.Results.Title() != "Search: daft punk" {
		t.Errorf("title = %q", m.Results.Title())
	}
	if !strings.Contains(m.StatusMsg, "25 playable results") || m.StatusErr {
		t.Errorf("status = %q (err %v)", m.StatusMsg, m.StatusErr)
	}
	if m.Prompt.Active() {
		t.Error("prompt should close after searching")
	}
}

func TestSearch_InvalidTerm(t *testing.T) {
	m, env := newTestModel(t)

	m = search(t, m, "   ")

	if !m.StatusErr || !strings.Contains(m.StatusMsg, "search the catalog") {
		t.Errorf("status = %q (err %v)", m.StatusMsg, m.StatusErr)
	}
	if len(env.catalog.queries) != 0 {
		t.Error("invalid query reached the catalog")
	}
}

func TestSearch_CatalogError(t *testing.T) {
	m, env := newTestModel(t)
	env.catalog.err = errors.New("connection refused")

	m = search(t, m, "anything")

	if !m.StatusErr || !strings.Contains(m.StatusMsg, "connection refused") {
		t.Errorf("status = %q", m.StatusMsg)
	}
}

func TestSearch_StaleResultIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = search(t, m, "new term")

	stale := SearchResultMsg{
		Query: catalog.Query{Term: "old term", Country: "fr", Limit: 10},
		Page:  catalog.Page{Songs: makeSongs(1), Total: 1},
	}
	m, _ = update(m, stale)

	if m.Results.Title() != "Search: new term" || len(m.Results.Songs()) != 10 {
		t.Errorf("stale page replaced results: %q (%d songs)", m.Results.Title(), len(m.Results.Songs()))
	}
}

func TestLoadMore_AppendsNextPage(t *testing.T) {
	m, env := newTestModel(t)
	m = search(t, m, "daft punk")

	for range 9 {
		m = press(t, m, "j")
	}
	m = press(t, m, "j")

	if q := env.catalog.lastQuery(); q.Offset != 10 {
		t.Errorf("next page offset = %d, want 10", q.Offset)
	}
	if got := len(m.Results.Songs()); got != 20 {
		t.Errorf("results = %d, want 20 after load more", got)
	}
}

func TestEnter_PlaysWithListAsContext(t *testing.T) {
	m, env := newTestModel(t)
	m = search(t, m, "daft punk")

	m = press(t, m, "j", "enter")
	m = pump(m)

	snap := env.engine.Snapshot()
	if snap.CurrentSong == nil || snap.CurrentSong.ID != "s1" {
		t.Fatalf("current = %v, want s1", snap.CurrentSong)
	}
	up := env.engine.UpNext()
	if len(up) != 8 || up[0].ID != "s2" {
		t.Errorf("up next = %d songs starting %v, want 8 from s2", len(up), up)
	}
	if m.Snapshot().CurrentSong == nil || m.Snapshot().CurrentSong.ID != "s1" {
		t.Error("model snapshot not refreshed from engine events")
	}
	if env.opener.Last().URL() != "https://audio.test/1.m4a" {
		t.Errorf("opened %q", env.opener.Last().URL())
	}
}

func TestEnqueue_AddsToManualQueue(t *testing.T) {
	m, env := newTestModel(t)
	m = search(t, m, "daft punk")

	m = press(t, m, "j", "j", "a")

	if env.engine.ManualQueueCount() != 1 || env.engine.UpNext()[0].ID != "s2" {
		t.Errorf("manual queue = %v", env.engine.UpNext())
	}
	if !strings.Contains(m.StatusMsg, "Added to queue: Song 2") {
		t.Errorf("status = %q", m.StatusMsg)
	}
}

func TestGlobalKeys_DriveEngine(t *testing.T) {
	m, env := newTestModel(t)
	m = search(t, m, "daft punk")
	m = press(t, m, "enter")
	m = pump(m)

	m = pump(press(t, m, " "))
	if env.engine.Snapshot().IsPlaying {
		t.Error("space should pause")
	}
	m = pump(press(t, m, " "))
	if !env.engine.Snapshot().IsPlaying {
		t.Error("space should resume")
	}

	m = pump(press(t, m, "n"))
	if env.engine.Snapshot().CurrentSong.ID != "s1" {
		t.Errorf("n: current = %s, want s1", env.engine.Snapshot().CurrentSong.ID)
	}

	m = pump(press(t, m, "S", "A", "-"))
	snap := env.engine.Snapshot()
	if !snap.IsShuffle || snap.IsAutoPlay {
		t.Errorf("shuffle/autoplay = %v/%v, want true/false", snap.IsShuffle, snap.IsAutoPlay)
	}
	if snap.Volume < 0.94 || snap.Volume > 0.96 {
		t.Errorf("volume = %v, want 0.95", snap.Volume)
	}

	prefs, _ := env.prefs.GetPreferences()
	if prefs == nil || !prefs.Shuffle || prefs.AutoPlay || prefs.Volume != snap.Volume {
		t.Errorf("saved preferences = %+v", prefs)
	}

	m = pump(press(t, m, "s"))
	if env.engine.Snapshot().CurrentSong != nil {
		t.Error("s should stop and clear the song")
	}
	if m.Snapshot().State() != playback.StateIdle {
		t.Errorf("model state = %v, want idle", m.Snapshot().State())
	}
}

func TestSeekKeys(t *testing.T) {
	m, env := newTestModel(t)
	m = search(t, m, "daft punk")
	m = pump(press(t, m, "enter"))

	h := env.opener.Last()
	h.SimulateTimeUpdate(10 * time.Second)
	m = pump(m)

	m = press(t, m, "right")
	m = pump(press(t, m, "left", "left", "left", "left"))

	calls := h.SeekCalls()
	if len(calls) == 0 || calls[0] != 15*time.Second {
		t.Fatalf("seek calls = %v, want first 15s", calls)
	}
	if last := calls[len(calls)-1]; last != 0 {
		t.Errorf("last seek = %v, want clamped to 0", last)
	}
}

func TestQueueToggle_AndFocusCycle(t *testing.T) {
	m, env := newTestModel(t)

	m = press(t, m, "tab")
	if m.Tab != TabPlaylists {
		t.Fatalf("tab = %v, want playlists", m.Tab)
	}
	m = press(t, m, "tab")
	if m.Tab != TabResults || m.Focus != FocusMain {
		t.Fatalf("closed queue should be skipped, got tab %v focus %v", m.Tab, m.Focus)
	}

	m = pump(press(t, m, "q"))
	if !env.engine.IsQueueOpen() || !m.QueuePanel.Visible() {
		t.Fatal("q should open the queue panel")
	}
	m = press(t, m, "tab", "tab")
	if m.Focus != FocusQueue {
		t.Errorf("focus = %v, want queue", m.Focus)
	}

	m = pump(press(t, m, "q"))
	if m.Focus != FocusMain {
		t.Error("closing the queue should return focus to the main panel")
	}
}

func TestQueuePanel_RemovesEntryAtCursor(t *testing.T) {
	m, env := newTestModel(t)
	m = search(t, m, "daft punk")
	m = pump(press(t, m, "a", "j", "a", "q"))
	m = press(t, m, "tab", "tab")
	if m.Focus != FocusQueue {
		t.Fatalf("focus = %v, want queue", m.Focus)
	}

	m = pump(press(t, m, "d"))

	// Queued s0 then s1; the cursor starts on s0.
	if env.engine.ManualQueueCount() != 1 || env.engine.UpNext()[0].ID != "s1" {
		t.Errorf("manual queue = %v, want [s1]", env.engine.UpNext())
	}
}

func TestAddToPlaylist_Picker(t *testing.T) {
	m, env := newTestModel(t)
	road, err := env.store.Create("Road trip")
	if err != nil {
		t.Fatal(err)
	}
	m = search(t, m, "daft punk")

	m = press(t, m, "p")
	if !m.PickerOpen() {
		t.Fatal("p should open the playlist picker")
	}
	if m.Picker.Len() != 1 {
		t.Fatalf("picker lists %d playlists, want 1", m.Picker.Len())
	}

	m = press(t, m, "enter")
	if m.PickerOpen() {
		t.Error("picker should close after choosing")
	}
	songs, _ := env.store.ContextSongs(road.ID)
	if len(songs) != 1 || songs[0].ID != "s0" {
		t.Errorf("playlist songs = %v", songs)
	}
	if !strings.Contains(m.StatusMsg, "Added Song 0 to Road trip") {
		t.Errorf("status = %q", m.StatusMsg)
	}

	m = press(t, m, "p", "enter")
	if !strings.Contains(m.StatusMsg, "already in Road trip") {
		t.Errorf("duplicate status = %q", m.StatusMsg)
	}
}

func TestAddToPlaylist_CreateFromPicker(t *testing.T) {
	m, env := newTestModel(t)
	m = search(t, m, "daft punk")

	m = press(t, m, "j", "p", "c")
	if !m.Prompt.Active() || m.PickerOpen() {
		t.Fatal("c in the picker should open the name prompt")
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Favorites")})
	m = press(t, m, "enter")

	p, err := env.store.FindByName("Favorites")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	songs, _ := env.store.ContextSongs(p.ID)
	if len(songs) != 1 || songs[0].ID != "s1" {
		t.Errorf("playlist songs = %v, want [s1]", songs)
	}
	if m.PlaylistView.Len() != 1 {
		t.Errorf("playlists tab shows %d, want 1", m.PlaylistView.Len())
	}
}

func TestPlaylistsTab_OpenAndDelete(t *testing.T) {
	m, env := newTestModel(t)
	p, _ := env.store.Create("Focus")
	for _, s := range makeSongs(3) {
		_, _ = env.store.AddSong(p.ID, s)
	}
	m = run(t, m, loadPlaylistsCmd(env.store))

	m = press(t, m, "tab", "enter")
	if m.Tab != TabResults || m.Results.Title() != "Focus" {
		t.Fatalf("tab %v title %q", m.Tab, m.Results.Title())
	}
	m = run(t, m, loadPlaylistSongsCmd(env.store, *p))
	if len(m.Results.Songs()) != 3 {
		t.Errorf("results = %d songs, want 3", len(m.Results.Songs()))
	}

	m = press(t, m, "tab", "D")
	if !m.Confirm.Active() {
		t.Fatal("delete should ask for confirmation")
	}
	if !strings.Contains(m.View(), "Delete playlist") {
		t.Error("confirmation not rendered")
	}
	m = press(t, m, "y")
	if m.Confirm.Active() {
		t.Error("confirmation still open")
	}
	if m.PlaylistView.Len() != 0 {
		t.Errorf("playlists = %d after delete", m.PlaylistView.Len())
	}
	if _, err := env.store.Get(p.ID); !errors.Is(err, playlists.ErrNotFound) {
		t.Errorf("Get after delete = %v", err)
	}
}

func TestCreatePlaylist_DuplicateName(t *testing.T) {
	m, env := newTestModel(t)
	_, _ = env.store.Create("Mix")

	m = press(t, m, "tab", "c")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Mix")})
	m = press(t, m, "enter")

	if !m.StatusErr || !strings.Contains(m.StatusMsg, "create playlist") {
		t.Errorf("status = %q (err %v)", m.StatusMsg, m.StatusErr)
	}
}

func TestPlaybackFailed_ShowsErrorAndSkips(t *testing.T) {
	m, env := newTestModel(t)
	m = search(t, m, "daft punk")
	env.opener.FailOpen("https://audio.test/0.m4a", errors.New("decode failed"))

	m = pump(press(t, m, "enter"))

	if !m.StatusErr || !strings.Contains(m.StatusMsg, "Song 0") || !strings.Contains(m.StatusMsg, "decode failed") {
		t.Errorf("status = %q", m.StatusMsg)
	}
	if cur := env.engine.Snapshot().CurrentSong; cur == nil || cur.ID != "s1" {
		t.Errorf("current = %v, want s1 after skipping", cur)
	}
}

func TestMouseClick_SeeksByRatio(t *testing.T) {
	m, env := newTestModel(t)
	m = search(t, m, "daft punk")
	m = pump(press(t, m, "enter"))

	h := env.opener.Last()
	h.SimulateMetadata(40 * time.Second)
	m = pump(m)

	// Find a column inside the bar by probing the rendered row.
	y := m.Height - 2
	var clicked bool
	for x := m.Width - 1; x >= 0; x-- {
		m, _ = update(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		if len(h.SeekCalls()) > 0 {
			clicked = true
			break
		}
	}
	if !clicked {
		t.Fatal("no column of the player bar seeks")
	}
	if got := h.SeekCalls()[0]; got <= 0 || got > 40*time.Second {
		t.Errorf("seek = %v, want within the song", got)
	}

	before := len(h.SeekCalls())
	m, _ = update(m, tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(h.SeekCalls()) != before {
		t.Error("clicks outside the player bar should not seek")
	}
}

func TestHomeSections(t *testing.T) {
	m, env := newTestModel(t)

	first := m.sections[0]
	if first.Term != "top hits 2026" {
		t.Errorf("first section term = %q", first.Term)
	}
	m, _ = update(m, SectionLoadedMsg{Section: first, Songs: makeSongs(3)})
	if m.Results.Title() != first.Title || len(m.Results.Songs()) != 3 {
		t.Errorf("results = %q with %d songs", m.Results.Title(), len(m.Results.Songs()))
	}

	m = press(t, m, "h")
	if got := env.catalog.sections; len(got) != 1 || got[0] != m.sections[1] {
		t.Errorf("loaded sections = %v", got)
	}
	if m.Results.Title() != m.sections[1].Title {
		t.Errorf("title = %q", m.Results.Title())
	}

	// A late shelf does not overwrite a search.
	m = search(t, m, "daft punk")
	m, _ = update(m, SectionLoadedMsg{Section: m.sections[1], Songs: makeSongs(2)})
	if m.Results.Title() != "Search: daft punk" {
		t.Errorf("section replaced search results")
	}
}

func TestView_Renders(t *testing.T) {
	m, _ := newTestModel(t)

	out := m.View()
	for _, want := range []string{"riffle", "Results", "Playlists", "Nothing playing"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if lines := strings.Count(out, "\n") + 1; lines != m.Height {
		t.Errorf("view has %d lines, want %d", lines, m.Height)
	}
}

func TestCtrlC_Quits(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestDeletePlaylist_Cancelled(t *testing.T) {
	m, env := newTestModel(t)
	p, _ := env.store.Create("Keep")
	m = run(t, m, loadPlaylistsCmd(env.store))

	m = press(t, m, "tab", "D", "n")

	if m.Confirm.Active() {
		t.Error("confirmation still open")
	}
	if m.PlaylistView.Len() != 1 {
		t.Errorf("playlists = %d, want 1", m.PlaylistView.Len())
	}
	if _, err := env.store.Get(p.ID); err != nil {
		t.Errorf("Get after cancel = %v", err)
	}
}

func TestConfirm_SwallowsGlobalKeys(t *testing.T) {
	m, env := newTestModel(t)
	_, _ = env.store.Create("Keep")
	m = run(t, m, loadPlaylistsCmd(env.store))

	m = press(t, m, "tab", "D", "q")

	if !m.Confirm.Active() {
		t.Error("unrelated key closed the confirmation")
	}
	if m.QueuePanel.Visible() {
		t.Error("q reached the queue toggle behind the confirmation")
	}
}

func TestHelp_OpenAndClose(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "?")
	if !m.HelpOpen {
		t.Fatal("? should open help")
	}
	out := m.View()
	for _, want := range []string{"Help", "Toggle queue panel", "Next home shelf"} {
		if !strings.Contains(out, want) {
			t.Errorf("help view missing %q", want)
		}
	}
	if lines := strings.Count(out, "\n") + 1; lines != m.Height {
		t.Errorf("view has %d lines, want %d", lines, m.Height)
	}

	m = press(t, m, "s")
	if !m.HelpOpen {
		t.Error("playback keys should not close help")
	}

	m = press(t, m, "esc")
	if m.HelpOpen {
		t.Error("esc should close help")
	}
}
