package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cinedex/cinedex/internal/chunk"
	"github.com/cinedex/cinedex/internal/config"
)

// ChunkOptions holds flags for the chunk command.
type ChunkOptions struct {
	*RootOptions
	Input string
	Size  int
	Out   string
}

// NewChunkCommand creates the chunk command.
func NewChunkCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChunkOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "chunk",
		Short: "Split a large CSV into chunk files plus a manifest",
		Long: `Split one large CSV file into chunk files of --size rows each,
repeating the header in every chunk, and write the metadata.json manifest.

Example:
  cinedex chunk --input movies.csv --size 1000 --out data_chunks`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChunk(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input CSV file (required)")
	cmd.Flags().IntVarP(&opts.Size, "size", "n", 1000, "rows per chunk")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "data_chunks", "output directory")
	cmd.MarkFlagRequired("input")

	return cmd
}

func runChunk(cmd *cobra.Command, opts *ChunkOptions) error {
	log := newLogger(opts.RootOptions, config.Default())

	sum, err := chunk.Split(opts.Input, opts.Size, opts.Out, log)
	if err != nil {
		return WrapExitError(ExitCommandError, "split", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if out.IsJSON() {
		return out.PrintJSON(sum)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d chunk(s), %d row(s) to %s\n",
		sum.Chunks, sum.Rows, opts.Out)
	return nil
}
