package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/riffle/internal/catalog"
)

func newSearchCmd(rt *env) *cobra.Command {
	var (
		limit   int
		offset  int
		country string
	)

	cmd := &cobra.Command{
		Use:   "search <term>...",
		Short: "Search the catalog for playable songs",
		Example: `  riffle search daft punk
  riffle search --country jp --limit 20 city pop
  riffle search --offset 10 "harder better"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := catalog.Query{
				Term:    strings.Join(args, " "),
				Country: rt.cfg.Country,
				Limit:   limit,
				Offset:  offset,
			}
			if cmd.Flags().Changed("country") {
				q.Country = country
			}
			if q.Limit == 0 {
				q.Limit = rt.cfg.GetPageSize()
			}

			page, err := rt.catalog().Search(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(page.Songs) == 0 {
				fmt.Fprintln(out, "No playable results.")
				return nil
			}
			renderSongs(out, page.Songs, page.Offset)
			fmt.Fprintf(out, "%d-%d of %s playable results\n",
				page.Offset+1, page.Offset+len(page.Songs), humanize.Comma(int64(page.Total)))
			if page.HasMore() {
				fmt.Fprintf(out, "More with --offset %d\n", page.Offset+len(page.Songs))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, fmt.Sprintf("results per page, 1-%d (default from config)", catalog.MaxLimit))
	cmd.Flags().IntVarP(&offset, "offset", "o", 0, fmt.Sprintf("results to skip, 0-%d", catalog.MaxOffset))
	cmd.Flags().StringVar(&country, "country", "", "ISO country code of the store (default from config)")
	return cmd
}
