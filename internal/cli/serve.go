package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cinedex/cinedex/internal/api"
	"github.com/cinedex/cinedex/internal/service"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Listen string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the HTTP API",
		Long: `Load the chunked dataset in the background and serve the JSON API.

Requests arriving before the load has published are answered with 503.

Example:
  cinedex serve --data data_chunks --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Listen, "listen", "l", "", "listen address (overrides config)")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}

	log := newLogger(opts.RootOptions, cfg)
	svc := service.New(log, cfg.PageBounds())

	// Load in the background so the server can answer "not ready yet"
	// instead of blocking. The service publishes the collection atomically.
	go func() {
		if _, err := svc.Load(cfg.DataDir); err != nil {
			log.Error("dataset load failed", "dir", cfg.DataDir, "err", err)
		}
	}()

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: api.NewServer(svc, log).Handler(),
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving", "addr", cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return WrapExitError(ExitCommandError, "serve", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
