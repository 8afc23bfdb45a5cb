package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cinedex/cinedex/internal/catalog"
	"github.com/cinedex/cinedex/internal/query"
	"github.com/cinedex/cinedex/internal/service"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Search    string
	Genres    []string
	YearFrom  int
	YearTo    int
	RatingMin float64
	RatingMax float64
	Language  string
	Favorites bool
	SortBy    string
	SortOrder string
	Page      int
	Size      int
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the catalog",
		Long: `Load the dataset and print one page of matching movies.

Example:
  cinedex query --genres Comedy --sort year --order asc --page 1 --size 10`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "text search over title, overview, cast, crew")
	cmd.Flags().StringSliceVarP(&opts.Genres, "genres", "g", nil, "genre names (any match)")
	cmd.Flags().IntVar(&opts.YearFrom, "year-from", 0, "minimum release year")
	cmd.Flags().IntVar(&opts.YearTo, "year-to", 0, "maximum release year")
	cmd.Flags().Float64Var(&opts.RatingMin, "rating-from", 0, "minimum vote average")
	cmd.Flags().Float64Var(&opts.RatingMax, "rating-to", 0, "maximum vote average")
	cmd.Flags().StringVar(&opts.Language, "language", "", "original language code")
	cmd.Flags().BoolVar(&opts.Favorites, "favorites", false, "favorites only")
	cmd.Flags().StringVar(&opts.SortBy, "sort", "", "sort field (title|year|rating|popularity)")
	cmd.Flags().StringVar(&opts.SortOrder, "order", "asc", "sort order (asc|desc)")
	cmd.Flags().IntVarP(&opts.Page, "page", "p", 1, "page number")
	cmd.Flags().IntVarP(&opts.Size, "size", "n", 0, "page size (0 uses the configured default)")

	return cmd
}

func runQuery(cmd *cobra.Command, opts *QueryOptions) error {
	svc, err := loadedService(opts.RootOptions)
	if err != nil {
		return err
	}

	c := query.Criteria{
		SearchText:       opts.Search,
		Genres:           opts.Genres,
		OriginalLanguage: opts.Language,
		FavoritesOnly:    opts.Favorites,
		SortBy:           query.SortBy(opts.SortBy),
		SortOrder:        query.SortOrder(opts.SortOrder),
		Page:             opts.Page,
		Size:             opts.Size,
	}
	if cmd.Flags().Changed("year-from") {
		c.YearFrom = &opts.YearFrom
	}
	if cmd.Flags().Changed("year-to") {
		c.YearTo = &opts.YearTo
	}
	if cmd.Flags().Changed("rating-from") {
		c.RatingFrom = &opts.RatingMin
	}
	if cmd.Flags().Changed("rating-to") {
		c.RatingTo = &opts.RatingMax
	}

	res := svc.Query(c)

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if out.IsJSON() {
		return out.PrintJSON(res)
	}

	for _, m := range res.Items {
		fmt.Fprintln(cmd.OutOrStdout(), formatMovieLine(m))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d, %d match(es)\n", res.Page, res.Pages, res.Total)
	return nil
}

func formatMovieLine(m *catalog.Movie) string {
	year := "----"
	if y, ok := m.ReleaseYear(); ok {
		year = strconv.Itoa(y)
	}
	rating := "-.-"
	if m.VoteAverage != nil {
		rating = strconv.FormatFloat(*m.VoteAverage, 'f', 1, 64)
	}
	fav := " "
	if m.IsFavorite {
		fav = "*"
	}
	return fmt.Sprintf("%5d %s %s  %-4s  %s", m.ID, fav, rating, year, m.Title)
}

// loadedService builds a service and loads the configured dataset into it.
func loadedService(opts *RootOptions) (*service.Service, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}
	log := newLogger(opts, cfg)

	svc := service.New(log, cfg.PageBounds())
	if _, err := svc.Load(cfg.DataDir); err != nil {
		return nil, WrapExitError(ExitCommandError, "load dataset", err)
	}
	return svc, nil
}
