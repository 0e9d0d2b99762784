package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var limit int
	var showStages bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show recent pipeline runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No pipeline runs recorded yet.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Run ID", "Status", "Started", "Duration", "Error"})
			for _, run := range runs {
				duration := ""
				if run.CompletedAt != nil {
					duration = run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
				}
				t.AppendRow(table.Row{
					run.ID,
					run.Status,
					run.StartedAt.Format(time.RFC3339),
					duration,
					run.Error,
				})
			}
			t.Render()

			if showStages {
				for _, run := range runs {
					results, err := store.StageResults(cmd.Context(), run.ID)
					if err != nil {
						return err
					}
					if len(results) == 0 {
						continue
					}
					fmt.Printf("\nStages for %s:\n", run.ID)
					renderStageTable(results)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of runs to show")
	cmd.Flags().BoolVar(&showStages, "stages", false, "Show per-stage row counts for each run")

	return cmd
}
