package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/riffle/internal/catalog"
)

func newHomeCmd(rt *env) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show the browse shelves of the home screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := rt.catalog()
			out := cmd.OutOrStdout()
			failed := 0
			sections := catalog.Sections(time.Now().Year())
			for i, s := range sections {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, s.Title)
				songs, err := c.Section(cmd.Context(), s)
				if err != nil {
					rt.log.Warn("load section", zap.String("section", s.Title), zap.Error(err))
					fmt.Fprintf(out, "  unavailable: %v\n", err)
					failed++
					continue
				}
				if len(songs) == 0 {
					fmt.Fprintln(out, "  nothing to play")
					continue
				}
				renderSongs(out, songs, 0)
			}
			if failed == len(sections) {
				return fmt.Errorf("no section could be loaded")
			}
			return nil
		},
	}
}
