package cli

import (
	"context"
	"fmt"

	"github.com/carmsdata/carmsdw/internal/pipeline"
	"github.com/spf13/cobra"
)

func runLayer(cmd *cobra.Command, stages func(p *pipeline.Pipeline) []func(context.Context) (int, error)) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	p := newPipeline(store)
	total := 0
	for _, stageFn := range stages(p) {
		rows, err := stageFn(cmd.Context())
		if err != nil {
			return err
		}
		total += rows
	}
	fmt.Printf("Done. %d rows written.\n", total)
	return nil
}

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Load raw source files into the bronze layer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLayer(cmd, func(p *pipeline.Pipeline) []func(context.Context) (int, error) {
				return []func(context.Context) (int, error){
					p.IngestPrograms, p.IngestDisciplines, p.IngestDescriptions,
				}
			})
		},
	}
}

func newTransformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transform",
		Short: "Derive the silver layer from bronze",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLayer(cmd, func(p *pipeline.Pipeline) []func(context.Context) (int, error) {
				return []func(context.Context) (int, error){
					p.TransformPrograms, p.TransformDisciplines, p.TransformDescriptionSections,
				}
			})
		},
	}
}

func newPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Publish the gold aggregates from silver",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLayer(cmd, func(p *pipeline.Pipeline) []func(context.Context) (int, error) {
				return []func(context.Context) (int, error){
					p.PublishProgramProfiles, p.PublishGeoSummary,
				}
			})
		},
	}
}
