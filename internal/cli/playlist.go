package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/riffle/internal/catalog"
	"github.com/llehouerou/riffle/internal/playlists"
)

func newPlaylistCmd(rt *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "playlist",
		Aliases: []string{"pl"},
		Short:   "Manage saved playlists",
		Long: `Manage saved playlists.

Commands that take a <playlist> accept its ID or its exact name.`,
	}
	cmd.AddCommand(
		newPlaylistListCmd(rt),
		newPlaylistCreateCmd(rt),
		newPlaylistDeleteCmd(rt),
		newPlaylistShowCmd(rt),
		newPlaylistRenameCmd(rt),
		newPlaylistAddCmd(rt),
		newPlaylistRemoveCmd(rt),
	)
	return cmd
}

// withPlaylists opens the playlist store for the duration of fn.
func (rt *env) withPlaylists(fn func(*playlists.Playlists) error) error {
	store, closeFn, err := rt.playlists()
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(store)
}

// resolvePlaylist looks ref up as an ID first, then as a name.
func resolvePlaylist(store *playlists.Playlists, ref string) (*playlists.Playlist, error) {
	pl, err := store.Get(ref)
	if errors.Is(err, playlists.ErrNotFound) {
		pl, err = store.FindByName(ref)
	}
	if errors.Is(err, playlists.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", playlists.ErrNotFound, ref)
	}
	return pl, err
}

func newPlaylistListCmd(rt *env) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List playlists, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withPlaylists(func(store *playlists.Playlists) error {
				pls, err := store.List()
				if err != nil {
					return fmt.Errorf("list playlists: %w", err)
				}
				if len(pls) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No playlists yet. Create one with: riffle playlist create <name>")
					return nil
				}
				counts := make([]int, len(pls))
				for i, p := range pls {
					if counts[i], err = store.SongCount(p.ID); err != nil {
						return fmt.Errorf("count songs of %q: %w", p.Name, err)
					}
				}
				renderPlaylists(cmd.OutOrStdout(), pls, counts, time.Now())
				return nil
			})
		},
	}
}

func newPlaylistCreateCmd(rt *env) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>...",
		Short: "Create an empty playlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withPlaylists(func(store *playlists.Playlists) error {
				pl, err := store.Create(strings.Join(args, " "))
				if err != nil {
					return fmt.Errorf("create playlist: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created playlist %q (%s)\n", pl.Name, pl.ID)
				return nil
			})
		},
	}
}

func newPlaylistDeleteCmd(rt *env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <playlist>",
		Aliases: []string{"rm"},
		Short:   "Delete a playlist and its songs",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withPlaylists(func(store *playlists.Playlists) error {
				pl, err := resolvePlaylist(store, args[0])
				if err != nil {
					return err
				}
				if err := store.Delete(pl.ID); err != nil {
					return fmt.Errorf("delete playlist: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted playlist %q\n", pl.Name)
				return nil
			})
		},
	}
}

func newPlaylistShowCmd(rt *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <playlist>",
		Short: "List the songs of a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withPlaylists(func(store *playlists.Playlists) error {
				pl, err := resolvePlaylist(store, args[0])
				if err != nil {
					return err
				}
				entries, err := store.Songs(pl.ID)
				if err != nil {
					return fmt.Errorf("load songs: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%d songs)\n", pl.Name, len(entries))
				if len(entries) > 0 {
					renderEntries(out, entries, time.Now())
				}
				return nil
			})
		},
	}
}

func newPlaylistRenameCmd(rt *env) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <playlist> <new name>...",
		Short: "Rename a playlist",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withPlaylists(func(store *playlists.Playlists) error {
				pl, err := resolvePlaylist(store, args[0])
				if err != nil {
					return err
				}
				name := strings.Join(args[1:], " ")
				if err := store.Rename(pl.ID, name); err != nil {
					return fmt.Errorf("rename playlist: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %q to %q\n", pl.Name, strings.TrimSpace(name))
				return nil
			})
		},
	}
}

func newPlaylistAddCmd(rt *env) *cobra.Command {
	var (
		limit int
		first bool
	)

	cmd := &cobra.Command{
		Use:   "add <playlist> <term>...",
		Short: "Search the catalog and add the results to a playlist",
		Example: `  riffle playlist add "Road trip" daft punk
  riffle playlist add --first "Road trip" one more time`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withPlaylists(func(store *playlists.Playlists) error {
				pl, err := resolvePlaylist(store, args[0])
				if err != nil {
					return err
				}

				q := catalog.Query{
					Term:    strings.Join(args[1:], " "),
					Country: rt.cfg.Country,
					Limit:   lo.Ternary(limit > 0, limit, rt.cfg.GetPageSize()),
				}
				if first {
					q.Limit = 1
				}
				page, err := rt.catalog().Search(cmd.Context(), q)
				if err != nil {
					return fmt.Errorf("search: %w", err)
				}
				if len(page.Songs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No playable results, nothing added.")
					return nil
				}

				added, err := store.AddSongs(cmd.Context(), pl.ID, page.Songs)
				if err != nil {
					return fmt.Errorf("add songs: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d of %d songs to %q\n", added, len(page.Songs), pl.Name)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "number of results to add (default from config)")
	cmd.Flags().BoolVar(&first, "first", false, "add only the best match")
	return cmd
}

func newPlaylistRemoveCmd(rt *env) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <playlist> <entry>",
		Short: "Remove one entry, as numbered by 'playlist show'",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry %q: %w", args[1], err)
			}
			return rt.withPlaylists(func(store *playlists.Playlists) error {
				pl, err := resolvePlaylist(store, args[0])
				if err != nil {
					return err
				}
				entries, err := store.Songs(pl.ID)
				if err != nil {
					return fmt.Errorf("load songs: %w", err)
				}
				entry, ok := lo.Find(entries, func(e playlists.Entry) bool { return e.ID == entryID })
				if !ok {
					return fmt.Errorf("%w: entry %d in %q", playlists.ErrNotFound, entryID, pl.Name)
				}
				if err := store.RemoveSong(entryID); err != nil {
					return fmt.Errorf("remove song: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %q\n", songLabel(entry.Song), pl.Name)
				return nil
			})
		},
	}
}
