package warehouse

import (
	"context"
	"fmt"

	"github.com/carmsdata/carmsdw/pkg/core"
)

const bronzeProgramInsert = `INSERT INTO bronze_program (
	program_stream_id, discipline_id, discipline_name, school_id, school_name,
	program_stream_name, program_site, program_stream, program_name, program_url,
	match_iteration_name
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// ReplaceBronzePrograms replaces the bronze program table contents.
func (s *Store) ReplaceBronzePrograms(ctx context.Context, rows []core.BronzeProgram) error {
	return s.replaceTable(ctx, "bronze_program", bronzeProgramInsert, len(rows), func(i int) []any {
		r := rows[i]
		return []any{
			r.ProgramStreamID, r.DisciplineID, r.DisciplineName, r.SchoolID, r.SchoolName,
			r.ProgramStreamName, r.ProgramSite, r.ProgramStream, r.ProgramName, r.ProgramURL,
			r.MatchIterationName,
		}
	})
}

// BronzePrograms returns all bronze program rows.
func (s *Store) BronzePrograms(ctx context.Context) ([]core.BronzeProgram, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		program_stream_id, discipline_id, discipline_name, school_id, school_name,
		program_stream_name, program_site, program_stream, program_name, program_url,
		match_iteration_name
	FROM bronze_program ORDER BY program_stream_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bronze programs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []core.BronzeProgram
	for rows.Next() {
		var r core.BronzeProgram
		if err := rows.Scan(
			&r.ProgramStreamID, &r.DisciplineID, &r.DisciplineName, &r.SchoolID, &r.SchoolName,
			&r.ProgramStreamName, &r.ProgramSite, &r.ProgramStream, &r.ProgramName, &r.ProgramURL,
			&r.MatchIterationName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bronze program: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const bronzeDisciplineInsert = `INSERT INTO bronze_discipline (discipline_id, discipline) VALUES (?, ?)`

// ReplaceBronzeDisciplines replaces the bronze discipline table contents.
func (s *Store) ReplaceBronzeDisciplines(ctx context.Context, rows []core.BronzeDiscipline) error {
	return s.replaceTable(ctx, "bronze_discipline", bronzeDisciplineInsert, len(rows), func(i int) []any {
		r := rows[i]
		return []any{r.DisciplineID, r.Discipline}
	})
}

// BronzeDisciplines returns all bronze discipline rows.
func (s *Store) BronzeDisciplines(ctx context.Context) ([]core.BronzeDiscipline, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT discipline_id, discipline FROM bronze_discipline ORDER BY discipline_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bronze disciplines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []core.BronzeDiscipline
	for rows.Next() {
		var r core.BronzeDiscipline
		if err := rows.Scan(&r.DisciplineID, &r.Discipline); err != nil {
			return nil, fmt.Errorf("failed to scan bronze discipline: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const bronzeDescriptionInsert = `INSERT INTO bronze_description (
	document_id, source, n_program_description_sections, program_name, match_iteration_name,
	program_contracts, general_instructions, supporting_documentation_information, review_process,
	interviews, selection_criteria, program_highlights, program_curriculum, training_sites,
	additional_information, return_of_service, faq, summary_of_changes,
	match_iteration_id, program_description_id
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// ReplaceBronzeDescriptions replaces the bronze description table contents.
func (s *Store) ReplaceBronzeDescriptions(ctx context.Context, rows []core.BronzeDescription) error {
	return s.replaceTable(ctx, "bronze_description", bronzeDescriptionInsert, len(rows), func(i int) []any {
		r := rows[i]
		return []any{
			r.DocumentID, r.Source, r.NProgramDescriptionSections, r.ProgramName, r.MatchIterationName,
			r.ProgramContracts, r.GeneralInstructions, r.SupportingDocumentationInformation, r.ReviewProcess,
			r.Interviews, r.SelectionCriteria, r.ProgramHighlights, r.ProgramCurriculum, r.TrainingSites,
			r.AdditionalInformation, r.ReturnOfService, r.FAQ, r.SummaryOfChanges,
			r.MatchIterationID, r.ProgramDescriptionID,
		}
	})
}

// BronzeDescriptions returns all bronze description rows.
func (s *Store) BronzeDescriptions(ctx context.Context) ([]core.BronzeDescription, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		document_id, source, n_program_description_sections, program_name, match_iteration_name,
		program_contracts, general_instructions, supporting_documentation_information, review_process,
		interviews, selection_criteria, program_highlights, program_curriculum, training_sites,
		additional_information, return_of_service, faq, summary_of_changes,
		match_iteration_id, program_description_id
	FROM bronze_description ORDER BY document_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bronze descriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []core.BronzeDescription
	for rows.Next() {
		var r core.BronzeDescription
		if err := rows.Scan(
			&r.DocumentID, &r.Source, &r.NProgramDescriptionSections, &r.ProgramName, &r.MatchIterationName,
			&r.ProgramContracts, &r.GeneralInstructions, &r.SupportingDocumentationInformation, &r.ReviewProcess,
			&r.Interviews, &r.SelectionCriteria, &r.ProgramHighlights, &r.ProgramCurriculum, &r.TrainingSites,
			&r.AdditionalInformation, &r.ReturnOfService, &r.FAQ, &r.SummaryOfChanges,
			&r.MatchIterationID, &r.ProgramDescriptionID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bronze description: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
