package queuepanel

import (
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/riffle/internal/playlist"
)

func stripANSI(s string) string {
	re := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return re.ReplaceAllString(s, "")
}

// fakeView is an in-memory queue with the engine's removal rules.
type fakeView struct {
	manual  []playlist.Song
	context []playlist.Song
	open    bool
}

func (f *fakeView) UpNext() []playlist.Song {
	return append(append([]playlist.Song{}, f.manual...), f.context...)
}

func (f *fakeView) ManualQueueCount() int { return len(f.manual) }

func (f *fakeView) RemoveFromQueue(i int) {
	switch {
	case i < 0:
	case i < len(f.manual):
		f.manual = append(f.manual[:i], f.manual[i+1:]...)
	case i < len(f.manual)+len(f.context):
		i -= len(f.manual)
		f.context = append(f.context[:i], f.context[i+1:]...)
	}
}

func (f *fakeView) ClearQueue()       { f.manual, f.context = nil, nil }
func (f *fakeView) ToggleQueue()      { f.open = !f.open }
func (f *fakeView) IsQueueOpen() bool { return f.open }

func song(title, artist string) playlist.Song {
	return playlist.Song{ID: title, Title: title, Artist: artist}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_Empty(t *testing.T) {
	m := New(&fakeView{})
	m.SetSize(50, 10)

	out := stripANSI(m.View())
	if !strings.Contains(out, "Up next (0)") {
		t.Errorf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "Nothing queued") {
		t.Errorf("empty hint missing:\n%s", out)
	}
}

func TestView_MarksManualEntries(t *testing.T) {
	v := &fakeView{
		manual:  []playlist.Song{song("Queued Song", "Someone")},
		context: []playlist.Song{song("Context Song", "Other")},
	}
	m := New(v)
	m.SetSize(60, 10)

	out := stripANSI(m.View())
	lines := strings.Split(out, "\n")

	var queued, context string
	for _, l := range lines {
		if strings.Contains(l, "Queued Song") {
			queued = l
		}
		if strings.Contains(l, "Context Song") {
			context = l
		}
	}
	if !strings.Contains(queued, manualMarker+" Queued Song") {
		t.Errorf("manual entry not marked: %q", queued)
	}
	if strings.Contains(context, manualMarker) {
		t.Errorf("context entry marked as manual: %q", context)
	}
	if !strings.Contains(out, "Up next (2)") || !strings.Contains(out, "1 queued") {
		t.Errorf("header wrong:\n%s", out)
	}
}

func TestView_KeepsHeight(t *testing.T) {
	m := New(&fakeView{context: []playlist.Song{song("A", "x")}})
	m.SetSize(40, 12)

	if got := strings.Count(m.View(), "\n") + 1; got != 12 {
		t.Errorf("panel height = %d, want 12", got)
	}
}

func TestUpdate_RemoveAtCursor(t *testing.T) {
	v := &fakeView{
		manual:  []playlist.Song{song("M1", "a"), song("M2", "b")},
		context: []playlist.Song{song("C1", "c"), song("C2", "d")},
	}
	m := New(v)
	m.SetSize(40, 12)
	m.SetFocused(true)

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("d"))
	if len(v.manual) != 1 || v.manual[0].Title != "M1" {
		t.Fatalf("manual = %v, want [M1]", v.manual)
	}

	// The cursor now sits on C1; context entries can be removed too.
	m, _ = m.Update(key("d"))
	if len(v.context) != 1 || v.context[0].Title != "C2" {
		t.Errorf("context = %v, want [C2]", v.context)
	}

	// Removing the last row pulls the cursor back into the list.
	m, _ = m.Update(key("d"))
	if m.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor())
	}
	if !strings.Contains(stripANSI(m.View()), "Up next (1)") {
		t.Error("panel did not refresh after removals")
	}
}

func TestUpdate_Clear(t *testing.T) {
	v := &fakeView{
		manual:  []playlist.Song{song("M1", "a")},
		context: []playlist.Song{song("C1", "c")},
	}
	m := New(v)
	m.SetSize(40, 12)
	m.SetFocused(true)

	m, _ = m.Update(key("c"))

	if len(v.manual) != 0 || len(v.context) != 0 {
		t.Error("clear should empty both queues")
	}
	if !strings.Contains(stripANSI(m.View()), "Up next (0)") {
		t.Error("panel did not refresh after clear")
	}
}

func TestUpdate_IgnoredWhenUnfocused(t *testing.T) {
	v := &fakeView{manual: []playlist.Song{song("M1", "a")}}
	m := New(v)
	m.SetSize(40, 12)

	m, _ = m.Update(key("d"))
	if len(v.manual) != 1 {
		t.Error("unfocused panel should ignore keys")
	}
}

func TestVisible(t *testing.T) {
	v := &fakeView{}
	m := New(v)
	if m.Visible() {
		t.Fatal("panel should start closed")
	}
	v.ToggleQueue()
	if !m.Visible() {
		t.Error("panel should follow the view's open flag")
	}
}
