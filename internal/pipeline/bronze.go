package pipeline

// bronze.go - raw source file ingestion

import (
	"context"
	"fmt"

	"github.com/carmsdata/carmsdw/internal/source"
	"github.com/carmsdata/carmsdw/pkg/core"
)

// IngestPrograms loads the program master spreadsheet into the bronze
// program table.
func (p *Pipeline) IngestPrograms(ctx context.Context) (int, error) {
	t, err := source.ReadXLSX(p.cfg.ProgramsPath)
	if err != nil {
		return 0, err
	}

	programs := make([]core.BronzeProgram, 0, len(t.Rows))
	for _, row := range t.Rows {
		r := core.BronzeProgram{
			DisciplineID:       cellInt(row.Get("discipline_id")),
			DisciplineName:     row.Get("discipline_name"),
			SchoolID:           cellInt(row.Get("school_id")),
			SchoolName:         row.Get("school_name"),
			ProgramStreamName:  row.Get("program_stream_name"),
			ProgramSite:        row.Get("program_site"),
			ProgramStream:      row.Get("program_stream"),
			ProgramName:        row.Get("program_name"),
			ProgramURL:         row.Get("program_url"),
			MatchIterationName: row.Get("match_iteration_name"),
		}
		if id := cellInt(row.Get("program_stream_id")); id != nil {
			r.ProgramStreamID = *id
		}
		programs = append(programs, r)
	}

	if err := p.store.ReplaceBronzePrograms(ctx, programs); err != nil {
		return 0, err
	}
	p.logger.Info("loaded bronze programs", "rows", len(programs))
	return len(programs), nil
}

// IngestDisciplines loads the discipline spreadsheet into the bronze
// discipline table.
func (p *Pipeline) IngestDisciplines(ctx context.Context) (int, error) {
	t, err := source.ReadXLSX(p.cfg.DisciplinesPath)
	if err != nil {
		return 0, err
	}

	disciplines := make([]core.BronzeDiscipline, 0, len(t.Rows))
	for _, row := range t.Rows {
		r := core.BronzeDiscipline{
			Discipline: row.Get("discipline"),
		}
		if id := cellInt(row.Get("discipline_id")); id != nil {
			r.DisciplineID = *id
		}
		disciplines = append(disciplines, r)
	}

	if err := p.store.ReplaceBronzeDisciplines(ctx, disciplines); err != nil {
		return 0, err
	}
	p.logger.Info("loaded bronze disciplines", "rows", len(disciplines))
	return len(disciplines), nil
}

// IngestDescriptions loads the program description CSV into the bronze
// description table. The document id is the hyphen-joined pair of
// match iteration id and program description id; a row missing either
// id cannot be keyed and fails the stage.
func (p *Pipeline) IngestDescriptions(ctx context.Context) (int, error) {
	t, err := source.ReadCSV(p.cfg.DescriptionsPath)
	if err != nil {
		return 0, err
	}

	descriptions := make([]core.BronzeDescription, 0, len(t.Rows))
	for i, row := range t.Rows {
		matchIterationID := cellInt(row.Get("match_iteration_id"))
		programDescriptionID := cellInt(row.Get("program_description_id"))
		if matchIterationID == nil || programDescriptionID == nil {
			return 0, fmt.Errorf("description row %d: missing match_iteration_id or program_description_id", i+1)
		}

		r := core.BronzeDescription{
			DocumentID:                  fmt.Sprintf("%d-%d", *matchIterationID, *programDescriptionID),
			Source:                      row.Get("source"),
			NProgramDescriptionSections: cellInt(row.Get("n_program_description_sections")),
			ProgramName:                 row.Get("program_name"),
			MatchIterationName:          row.Get("match_iteration_name"),

			ProgramContracts:                   row.Get("program_contracts"),
			GeneralInstructions:                row.Get("general_instructions"),
			SupportingDocumentationInformation: row.Get("supporting_documentation_information"),
			ReviewProcess:                      row.Get("review_process"),
			Interviews:                         row.Get("interviews"),
			SelectionCriteria:                  row.Get("selection_criteria"),
			ProgramHighlights:                  row.Get("program_highlights"),
			ProgramCurriculum:                  row.Get("program_curriculum"),
			TrainingSites:                      row.Get("training_sites"),
			AdditionalInformation:              row.Get("additional_information"),
			ReturnOfService:                    row.Get("return_of_service"),
			FAQ:                                row.Get("faq"),
			SummaryOfChanges:                   row.Get("summary_of_changes"),

			MatchIterationID:     matchIterationID,
			ProgramDescriptionID: *programDescriptionID,
		}
		descriptions = append(descriptions, r)
	}

	if err := p.store.ReplaceBronzeDescriptions(ctx, descriptions); err != nil {
		return 0, err
	}
	p.logger.Info("loaded bronze descriptions", "rows", len(descriptions))
	return len(descriptions), nil
}
