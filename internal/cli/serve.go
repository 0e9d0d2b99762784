package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carmsdata/carmsdw/internal/api"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the read-only HTTP API server",
		Long: `Starts the HTTP API server over the gold layer.

With --watch, the source directory is watched and the pipeline re-runs
whenever a source file changes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			srv := api.NewServer(api.Config{
				Store:             store,
				Runner:            newPipeline(store),
				Port:              cfg.API.Port,
				APIKey:            cfg.API.APIKey,
				RateLimitRequests: cfg.API.RateLimitRequests,
				RateLimitWindow:   time.Duration(cfg.API.RateLimitWindowSec) * time.Second,
				Watch:             watch,
				WatchDir:          cfg.DataDir,
				Logger:            logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Serve(ctx)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Re-run the pipeline when source files change")

	return cmd
}
