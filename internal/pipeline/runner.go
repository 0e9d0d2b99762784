package pipeline

// runner.go - ordered execution of the warehouse stages

import (
	"context"
	"fmt"
	"time"

	"github.com/carmsdata/carmsdw/pkg/core"
)

// Stage names, in execution order. Bronze stages have no ordering
// dependency on each other; silver must not start before all bronze
// inputs have committed, and gold likewise waits on silver.
const (
	StageBronzePrograms     = "bronze_programs"
	StageBronzeDisciplines  = "bronze_disciplines"
	StageBronzeDescriptions = "bronze_descriptions"
	StageSilverPrograms     = "silver_programs"
	StageSilverDisciplines  = "silver_disciplines"
	StageSilverSections     = "silver_description_sections"
	StageGoldProfiles       = "gold_program_profiles"
	StageGoldGeoSummary     = "gold_geo_summary"
)

type stage struct {
	name string
	run  func(context.Context) (int, error)
}

func (p *Pipeline) stages() []stage {
	return []stage{
		{StageBronzePrograms, p.IngestPrograms},
		{StageBronzeDisciplines, p.IngestDisciplines},
		{StageBronzeDescriptions, p.IngestDescriptions},
		{StageSilverPrograms, p.TransformPrograms},
		{StageSilverDisciplines, p.TransformDisciplines},
		{StageSilverSections, p.TransformDescriptionSections},
		{StageGoldProfiles, p.PublishProgramProfiles},
		{StageGoldGeoSummary, p.PublishGeoSummary},
	}
}

// Run executes the full pipeline in order, recording the run and its
// per-stage row counts. A stage failure stops the run; tables written
// by earlier stages stay committed and the failed stage's table keeps
// its previous contents.
func (p *Pipeline) Run(ctx context.Context) (*core.Run, []core.StageResult, error) {
	run, err := p.store.CreateRun(ctx)
	if err != nil {
		return nil, nil, err
	}
	p.logger.Info("starting pipeline run", "run_id", run.ID)

	var results []core.StageResult
	for _, st := range p.stages() {
		start := time.Now()
		rows, err := st.run(ctx)
		if err != nil {
			stageErr := fmt.Errorf("stage %s: %w", st.name, err)
			p.logger.Error("pipeline run failed", "run_id", run.ID, "stage", st.name, "error", err)
			_ = p.store.CompleteRun(ctx, run.ID, core.RunStatusFailed, stageErr.Error())
			run, _ = p.store.GetRun(ctx, run.ID)
			return run, results, stageErr
		}

		result := core.StageResult{
			RunID:     run.ID,
			Stage:     st.name,
			RowCount:  int64(rows),
			ElapsedMS: time.Since(start).Milliseconds(),
		}
		if err := p.store.AddStageResult(ctx, result); err != nil {
			p.logger.Warn("failed to record stage result", "stage", st.name, "error", err)
		}
		results = append(results, result)
	}

	if err := p.store.CompleteRun(ctx, run.ID, core.RunStatusCompleted, ""); err != nil {
		return run, results, err
	}
	p.logger.Info("pipeline run completed", "run_id", run.ID, "stages", len(results))

	run, err = p.store.GetRun(ctx, run.ID)
	return run, results, err
}
