// Package cli provides the command-line interface for carmsdw.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/carmsdata/carmsdw/internal/config"
	"github.com/carmsdata/carmsdw/internal/pipeline"
	"github.com/carmsdata/carmsdw/internal/warehouse"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "carmsdw",
		Short: "carmsdw - Residency Program Data Warehouse",
		Long: `carmsdw ingests residency-program source files into a layered
warehouse (bronze, silver, gold) and serves the curated result through a
read-only HTTP API with a map visualization.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger = newLogger(cfg)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./carmsdw.yaml)")
	rootCmd.PersistentFlags().String("data_dir", "", "Directory holding the source files")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newIngestCmd())
	rootCmd.AddCommand(newTransformCmd())
	rootCmd.AddCommand(newPublishCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// openStore connects to the configured warehouse and applies pending
// migrations.
func openStore(cmd *cobra.Command) (*warehouse.Store, error) {
	store, err := warehouse.Open(cmd.Context(), cfg.Warehouse(), logger)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func newPipeline(store *warehouse.Store) *pipeline.Pipeline {
	return pipeline.New(store, pipeline.Config{
		ProgramsPath:     filepath.Join(cfg.DataDir, cfg.Sources.Programs),
		DisciplinesPath:  filepath.Join(cfg.DataDir, cfg.Sources.Disciplines),
		DescriptionsPath: filepath.Join(cfg.DataDir, cfg.Sources.Descriptions),
	}, logger)
}
