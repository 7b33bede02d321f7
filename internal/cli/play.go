package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/riffle/internal/catalog"
	"github.com/llehouerou/riffle/internal/notify"
	"github.com/llehouerou/riffle/internal/playback"
	"github.com/llehouerou/riffle/internal/playlist"
	"github.com/llehouerou/riffle/internal/playlists"
)

var errNothingPlayable = errors.New("nothing left to play")

func newPlayCmd(rt *env) *cobra.Command {
	var (
		fromPlaylist bool
		shuffle      bool
		noLoop       bool
	)

	cmd := &cobra.Command{
		Use:   "play <term>...",
		Short: "Play search results without the terminal UI",
		Long: `Play search results, or a saved playlist with --playlist, without
the terminal UI. Songs advance on their own and the results loop until
playback stops (Ctrl-C, or Stop from a media controller).`,
		Example: `  riffle play daft punk
  riffle play --shuffle --playlist "Road trip"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			mgr, err := rt.openState()
			if err != nil {
				return err
			}
			defer func() { _ = mgr.Close() }()

			ref := strings.Join(args, " ")
			var songs []playlist.Song
			if fromPlaylist {
				songs, err = playlistSongs(playlists.New(mgr.DB()), ref)
			} else {
				songs, err = searchSongs(ctx, rt, ref)
			}
			if err != nil {
				return err
			}
			if len(songs) == 0 {
				return fmt.Errorf("no playable songs for %q", ref)
			}

			engine := rt.engine(mgr)
			defer engine.Close()
			stopMPRIS := rt.startMPRIS(engine)
			defer stopMPRIS()

			snap := engine.Snapshot()
			if shuffle && !snap.IsShuffle {
				engine.ToggleShuffle()
			}
			if noLoop && snap.IsAutoPlay {
				engine.ToggleAutoPlay()
			}

			sub := engine.Subscribe()
			engine.PlaySong(songs[0], songs)
			return follow(ctx, engine, sub, rt.announcer(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&fromPlaylist, "playlist", "p", false, "play the saved playlist named by the arguments")
	cmd.Flags().BoolVarP(&shuffle, "shuffle", "s", false, "shuffle the songs after the first")
	cmd.Flags().BoolVar(&noLoop, "once", false, "stop after the first song instead of advancing")
	return cmd
}

func searchSongs(ctx context.Context, rt *env, term string) ([]playlist.Song, error) {
	page, err := rt.catalog().Search(ctx, catalog.Query{
		Term:    term,
		Country: rt.cfg.Country,
		Limit:   catalog.MaxLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return page.Songs, nil
}

func playlistSongs(store *playlists.Playlists, ref string) ([]playlist.Song, error) {
	pl, err := resolvePlaylist(store, ref)
	if err != nil {
		return nil, err
	}
	return store.ContextSongs(pl.ID)
}

// follow reports playback on out until ctx ends or playback stops on its
// own: the engine goes idle, a failure leaves nothing to play, or the
// last song ends with autoplay off.
func follow(ctx context.Context, e *playback.Engine, sub *playback.Subscription, ann *notify.Announcer, out io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case <-sub.Done:
			return nil
		case ev := <-sub.SongChanged:
			if ev.Current != nil {
				fmt.Fprintf(out, "▶ %s\n", songLabel(*ev.Current))
				ann.NowPlaying(*ev.Current)
			}
		case ev := <-sub.Failed:
			fmt.Fprintf(out, "✗ skipped %s: %v\n", songLabel(ev.Song), ev.Err)
			ann.Skipped(ev.Song, ev.Err)
			if ev.Next == nil {
				return errNothingPlayable
			}
		case ev := <-sub.StateChanged:
			switch ev.Current {
			case playback.StateIdle:
				return nil
			case playback.StatePaused:
				if ended(e.Snapshot()) {
					return nil
				}
			}
		case <-sub.PositionChanged:
		case <-sub.QueueChanged:
		case <-sub.ModeChanged:
		case <-sub.VolumeChanged:
		}
	}
}

// ended reports whether a paused snapshot sits at the end of its song.
func ended(s playback.Snapshot) bool {
	return s.Duration > 0 && s.Duration-s.CurrentTime <= time.Second
}
