package playlistlist

import (
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/riffle/internal/playlists"
	"github.com/llehouerou/riffle/internal/ui/action"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func stripANSI(s string) string {
	return regexp.MustCompile(`\x1b\[[0-9;]*m`).ReplaceAllString(s, "")
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(items ...playlists.Playlist) Model {
	m := New("Playlists")
	m.now = func() time.Time { return now }
	m.SetSize(60, 10)
	m.SetFocused(true)
	m.SetPlaylists(items)
	return m
}

func sample() []playlists.Playlist {
	return []playlists.Playlist{
		{ID: "p2", Name: "Road trip", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "p1", Name: "Focus", CreatedAt: now.Add(-3 * 24 * time.Hour)},
	}
}

func actionOf(t *testing.T, cmd tea.Cmd) action.Action {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd().(action.Msg).Action
}

func TestUpdate_ChooseAndDelete(t *testing.T) {
	m := newModel(sample()...)
	m, _ = m.Update(key("j"))

	_, cmd := m.Update(key("enter"))
	if got, ok := actionOf(t, cmd).(Choose); !ok || got.Playlist.ID != "p1" {
		t.Errorf("enter = %#v, want Choose p1", got)
	}
	_, cmd = m.Update(key("D"))
	if got, ok := actionOf(t, cmd).(Delete); !ok || got.Playlist.ID != "p1" {
		t.Errorf("D = %#v, want Delete p1", got)
	}
}

func TestUpdate_CreateAndClose(t *testing.T) {
	m := newModel()

	_, cmd := m.Update(key("c"))
	if _, ok := actionOf(t, cmd).(Create); !ok {
		t.Error("c should request Create")
	}
	_, cmd = m.Update(key("esc"))
	if _, ok := actionOf(t, cmd).(Close); !ok {
		t.Error("esc should request Close")
	}
	if _, cmd = m.Update(key("enter")); cmd != nil {
		t.Error("enter on an empty list should do nothing")
	}
}

func TestSetPlaylists_ClampsCursor(t *testing.T) {
	m := newModel(sample()...)
	m, _ = m.Update(key("j"))
	m.SetPlaylists(sample()[:1])

	_, cmd := m.Update(key("enter"))
	if got := actionOf(t, cmd).(Choose); got.Playlist.ID != "p2" {
		t.Errorf("chose %q after shrink, want p2", got.Playlist.ID)
	}
}

func TestView(t *testing.T) {
	out := stripANSI(newModel(sample()...).View())
	for _, want := range []string{"Playlists", "Road trip", "2 hours ago", "Focus", "3 days ago"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}

	empty := stripANSI(newModel().View())
	if !strings.Contains(empty, "No playlists yet") {
		t.Errorf("empty view missing hint:\n%s", empty)
	}
}
