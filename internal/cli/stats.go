package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stats",
		Short:         "Print catalog statistics",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, rootOpts)
		},
	}
	return cmd
}

func runStats(cmd *cobra.Command, opts *RootOptions) error {
	svc, err := loadedService(opts)
	if err != nil {
		return err
	}

	st := svc.Stats()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if out.IsJSON() {
		return out.PrintJSON(st)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "movies:     %d\n", st.Total)
	fmt.Fprintf(w, "avg rating: %.2f\n", st.AvgRating)
	fmt.Fprintf(w, "favorites:  %d\n", st.FavoriteCount)
	fmt.Fprintf(w, "rated:      %d\n", st.RatedCount)
	if len(st.TopGenres) > 0 {
		fmt.Fprintln(w, "top genres:")
		for _, g := range st.TopGenres {
			fmt.Fprintf(w, "  %-20s %d\n", g.Name, g.Count)
		}
	}
	if len(st.Decades) > 0 {
		fmt.Fprintln(w, "by decade:")
		for _, d := range st.Decades {
			fmt.Fprintf(w, "  %ds: %d\n", d.Decade, d.Count)
		}
	}
	return nil
}
