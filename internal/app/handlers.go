package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/llehouerou/riffle/internal/catalog"
	"github.com/llehouerou/riffle/internal/errmsg"
	"github.com/llehouerou/riffle/internal/playlists"
	"github.com/llehouerou/riffle/internal/ui/action"
	"github.com/llehouerou/riffle/internal/ui/confirm"
	"github.com/llehouerou/riffle/internal/ui/helpbindings"
	"github.com/llehouerou/riffle/internal/ui/playlistlist"
	"github.com/llehouerou/riffle/internal/ui/songlist"
	"github.com/llehouerou/riffle/internal/ui/textinput"
)

func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	switch a := msg.Action.(type) {
	case textinput.Result:
		return m.handlePromptResult(a)

	case songlist.Play:
		songs := m.Results.Songs()
		if a.Index >= 0 && a.Index < len(songs) {
			m.engine.PlaySong(songs[a.Index], songs)
		}
	case songlist.Enqueue:
		songs := m.Results.Songs()
		if a.Index >= 0 && a.Index < len(songs) {
			song := songs[a.Index]
			m.engine.AddToQueue(song)
			m.announcer.Queued(song)
			m.setStatus("Added to queue: " + song.Title)
		}
	case songlist.AddToPlaylist:
		songs := m.Results.Songs()
		if a.Index >= 0 && a.Index < len(songs) {
			song := songs[a.Index]
			m.pickerSong = &song
			m.resize()
			return m, loadPlaylistsCmd(m.store)
		}
	case songlist.LoadMore:
		next := m.query.Next(m.page)
		if m.query.Term == "" || !m.page.HasMore() || next.Offset > catalog.MaxOffset {
			m.Results.SetLoading(false)
			return m, nil
		}
		return m, searchCmd(m.catalog, next, true)

	case playlistlist.Choose:
		if m.pickerSong != nil {
			song := *m.pickerSong
			m.pickerSong = nil
			return m, addSongCmd(m.store, a.Playlist, song)
		}
		m.Results.SetSongs(a.Playlist.Name, nil, false)
		m.Results.SetLoading(true)
		m.Tab = TabResults
		m.applyFocus()
		return m, loadPlaylistSongsCmd(m.store, a.Playlist)
	case playlistlist.Delete:
		if m.pickerSong == nil {
			m.Confirm.Show("Delete playlist", fmt.Sprintf("Delete %q and all its songs?", a.Playlist.Name), a.Playlist)
			m.resize()
		}
	case confirm.Result:
		m.resize()
		if pl, ok := a.Context.(playlists.Playlist); ok && a.Confirmed {
			return m, deletePlaylistCmd(m.store, pl)
		}
	case helpbindings.Close:
		m.HelpOpen = false
		m.resize()
	case playlistlist.Create:
		pending := m.pickerSong
		m.pickerSong = nil
		cmd := m.Prompt.Start("New playlist", "name", "", promptContext{kind: promptNewPlaylist, song: pending})
		m.resize()
		return m, cmd
	case playlistlist.Close:
		m.pickerSong = nil
		m.resize()
	}
	return m, nil
}

func (m Model) handlePromptResult(r textinput.Result) (tea.Model, tea.Cmd) {
	m.resize()
	ctx, _ := r.Context.(promptContext)
	if r.Canceled {
		return m, nil
	}

	switch ctx.kind {
	case promptSearch:
		return m.startSearch(r.Text)
	case promptNewPlaylist:
		return m, createPlaylistCmd(m.store, r.Text, ctx.song)
	}
	return m, nil
}

func (m Model) startSearch(term string) (tea.Model, tea.Cmd) {
	q, err := catalog.Query{Term: term, Country: m.country, Limit: m.pageSize}.Normalize()
	if err != nil {
		m.setError(errmsg.Format(errmsg.OpSearch, err))
		return m, nil
	}
	m.query = q
	m.page = catalog.Page{}
	m.Results.SetSongs("Search: "+q.Term, nil, false)
	m.Results.SetLoading(true)
	m.Tab = TabResults
	m.Focus = FocusMain
	m.applyFocus()
	return m, searchCmd(m.catalog, q, false)
}

func (m Model) handleSearchResult(msg SearchResultMsg) (tea.Model, tea.Cmd) {
	if msg.Query.Term != m.query.Term || msg.Query.Country != m.query.Country {
		return m, nil // superseded by a newer search
	}
	if msg.Err != nil {
		m.Results.SetLoading(false)
		m.log.Warn("search failed", zap.String("term", msg.Query.Term), zap.Error(msg.Err))
		m.setError(errmsg.FormatWith(errmsg.OpSearch, msg.Query.Term, msg.Err))
		return m, nil
	}

	m.query = msg.Query
	m.page = msg.Page
	if msg.Append {
		m.Results.AppendSongs(msg.Page.Songs, msg.Page.HasMore())
	} else {
		m.Results.SetSongs("Search: "+msg.Query.Term, msg.Page.Songs, msg.Page.HasMore())
	}
	m.Results.SetPlaying(m.playingID())

	if msg.Page.Total == 0 {
		m.setStatus("No playable results for " + msg.Query.Term)
	} else {
		m.setStatus(fmt.Sprintf("%s playable results", humanize.Comma(int64(msg.Page.Total))))
	}
	return m, nil
}

// nextSection shows the next home shelf.
func (m *Model) nextSection() tea.Cmd {
	if len(m.sections) == 0 {
		return nil
	}
	m.section = (m.section + 1) % len(m.sections)
	s := m.sections[m.section]
	m.query = catalog.Query{}
	m.Results.SetSongs(s.Title, nil, false)
	m.Results.SetLoading(true)
	m.Tab = TabResults
	m.applyFocus()
	return loadSectionCmd(m.catalog, s)
}

func (m Model) handleSectionLoaded(msg SectionLoadedMsg) (tea.Model, tea.Cmd) {
	if m.query.Term != "" || len(m.sections) == 0 || msg.Section != m.sections[m.section] {
		return m, nil // a search or another shelf replaced it
	}
	if msg.Err != nil {
		m.Results.SetLoading(false)
		m.setError(errmsg.FormatWith(errmsg.OpLoadSection, msg.Section.Title, msg.Err))
		return m, nil
	}
	m.Results.SetSongs(msg.Section.Title, msg.Songs, false)
	m.Results.SetPlaying(m.playingID())
	return m, nil
}

func (m *Model) setStatus(s string) {
	m.StatusMsg = s
	m.StatusErr = false
}

func (m *Model) setError(s string) {
	m.StatusMsg = s
	m.StatusErr = true
}

func (m Model) playingID() string {
	if m.snapshot.CurrentSong == nil {
		return ""
	}
	return m.snapshot.CurrentSong.ID
}
