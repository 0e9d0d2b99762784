package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/carmsdata/carmsdw/pkg/core"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline (bronze, silver, gold)",
		Long: `Execute all warehouse stages in order: ingest the raw source files
into bronze, derive the cleaned silver layer, and publish the gold
aggregates. Each stage replaces its table in one transaction, so a rerun
with identical inputs reproduces the same warehouse state.`,
		Example: `  # Run everything with the default config
  carmsdw run

  # Run against another data directory
  carmsdw run --data_dir /srv/carms/2024`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			start := time.Now()
			run, results, err := newPipeline(store).Run(cmd.Context())
			renderStageTable(results)
			if err != nil {
				return fmt.Errorf("pipeline run failed: %w", err)
			}

			fmt.Printf("Run %s: %s (%s)\n", run.ID, run.Status, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}

func renderStageTable(results []core.StageResult) {
	if len(results) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Stage", "Rows", "Elapsed"})
	for _, r := range results {
		t.AppendRow(table.Row{r.Stage, r.RowCount, time.Duration(r.ElapsedMS) * time.Millisecond})
	}
	t.Render()
}
