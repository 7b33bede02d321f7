package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/llehouerou/riffle/internal/playlist"
	"github.com/llehouerou/riffle/internal/playlists"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// renderSongs prints songs numbered from first+1.
func renderSongs(w io.Writer, songs []playlist.Song, first int) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Title", "Artist", "Length", "ID"})
	for i, s := range songs {
		t.AppendRow(table.Row{first + i + 1, s.Title, s.Artist, formatLength(s.Duration), s.ID})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

// renderPlaylists prints playlists with their song counts.
func renderPlaylists(w io.Writer, pls []playlists.Playlist, counts []int, now time.Time) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Name", "Songs", "Created", "ID"})
	for i, p := range pls {
		t.AppendRow(table.Row{p.Name, counts[i], humanize.RelTime(p.CreatedAt, now, "ago", "from now"), p.ID})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}

// renderEntries prints playlist entries. The entry number is what
// "playlist remove" takes.
func renderEntries(w io.Writer, entries []playlists.Entry, now time.Time) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Entry", "Title", "Artist", "Length", "Added"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.ID, e.Song.Title, e.Song.Artist, formatLength(e.Song.Duration),
			humanize.RelTime(e.AddedAt, now, "ago", "from now"),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

func formatLength(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	s := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func songLabel(s playlist.Song) string {
	if s.Artist == "" {
		return s.Title
	}
	return s.Title + " - " + s.Artist
}
