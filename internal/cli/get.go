package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cinedex/cinedex/internal/catalog"
	"github.com/cinedex/cinedex/internal/store"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "get <id>",
		Short:         "Print one movie by id",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runGet(cmd *cobra.Command, opts *RootOptions, rawID string) error {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return WrapExitError(ExitCommandError, "id must be an integer", err)
	}

	svc, err := loadedService(opts)
	if err != nil {
		return err
	}

	m, err := svc.Get(id)
	if err != nil {
		if store.IsNotFound(err) {
			return WrapExitError(ExitFailure, "not found", err)
		}
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if out.IsJSON() {
		return out.PrintJSON(m)
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatMovieLine(m))
	if m.Overview != "" {
		fmt.Fprintln(cmd.OutOrStdout(), m.Overview)
	}
	if len(m.Genres) > 0 {
		names := make([]string, len(m.Genres))
		for i, g := range m.Genres {
			names[i] = g.Name
		}
		fmt.Fprintf(cmd.OutOrStdout(), "genres: %s\n", strings.Join(names, ", "))
	}
	if cast := topCast(m, 5); cast != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "cast: %s\n", cast)
	}
	return nil
}

func topCast(m *catalog.Movie, n int) string {
	if len(m.Cast) < n {
		n = len(m.Cast)
	}
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = m.Cast[i].Name
	}
	return strings.Join(names, ", ")
}
