package warehouse

import (
	"context"
	"fmt"

	"github.com/carmsdata/carmsdw/pkg/core"
)

const silverProgramInsert = `INSERT INTO silver_program (
	program_stream_id, discipline_id, discipline_name, school_id, school_name,
	program_stream_name, program_site, program_stream, program_name, program_url,
	quota, province, is_valid
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// ReplaceSilverPrograms replaces the silver program table contents.
func (s *Store) ReplaceSilverPrograms(ctx context.Context, rows []core.SilverProgram) error {
	return s.replaceTable(ctx, "silver_program", silverProgramInsert, len(rows), func(i int) []any {
		r := rows[i]
		return []any{
			r.ProgramStreamID, r.DisciplineID, r.DisciplineName, r.SchoolID, r.SchoolName,
			r.ProgramStreamName, r.ProgramSite, r.ProgramStream, r.ProgramName, r.ProgramURL,
			r.Quota, r.Province, r.IsValid,
		}
	})
}

// SilverPrograms returns all silver program rows.
func (s *Store) SilverPrograms(ctx context.Context) ([]core.SilverProgram, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		program_stream_id, discipline_id, discipline_name, school_id, school_name,
		program_stream_name, program_site, program_stream, program_name, program_url,
		quota, province, is_valid
	FROM silver_program ORDER BY program_stream_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query silver programs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []core.SilverProgram
	for rows.Next() {
		var r core.SilverProgram
		if err := rows.Scan(
			&r.ProgramStreamID, &r.DisciplineID, &r.DisciplineName, &r.SchoolID, &r.SchoolName,
			&r.ProgramStreamName, &r.ProgramSite, &r.ProgramStream, &r.ProgramName, &r.ProgramURL,
			&r.Quota, &r.Province, &r.IsValid,
		); err != nil {
			return nil, fmt.Errorf("failed to scan silver program: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const silverDisciplineInsert = `INSERT INTO silver_discipline (
	discipline_id, discipline, province, is_valid
) VALUES (?, ?, ?, ?)`

// ReplaceSilverDisciplines replaces the silver discipline table contents.
func (s *Store) ReplaceSilverDisciplines(ctx context.Context, rows []core.SilverDiscipline) error {
	return s.replaceTable(ctx, "silver_discipline", silverDisciplineInsert, len(rows), func(i int) []any {
		r := rows[i]
		return []any{r.DisciplineID, r.Discipline, r.Province, r.IsValid}
	})
}

// SilverDisciplines returns all silver discipline rows.
func (s *Store) SilverDisciplines(ctx context.Context) ([]core.SilverDiscipline, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT discipline_id, discipline, province, is_valid FROM silver_discipline ORDER BY discipline_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query silver disciplines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []core.SilverDiscipline
	for rows.Next() {
		var r core.SilverDiscipline
		if err := rows.Scan(&r.DisciplineID, &r.Discipline, &r.Province, &r.IsValid); err != nil {
			return nil, fmt.Errorf("failed to scan silver discipline: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const silverSectionInsert = `INSERT INTO silver_description_section (
	program_description_id, program_name, section_name, section_text, is_valid
) VALUES (?, ?, ?, ?, ?)`

// ReplaceSilverDescriptionSections replaces the silver description
// section table contents.
func (s *Store) ReplaceSilverDescriptionSections(ctx context.Context, rows []core.SilverDescriptionSection) error {
	return s.replaceTable(ctx, "silver_description_section", silverSectionInsert, len(rows), func(i int) []any {
		r := rows[i]
		return []any{r.ProgramDescriptionID, r.ProgramName, r.SectionName, r.SectionText, r.IsValid}
	})
}

// SilverDescriptionSections returns all silver description section rows.
func (s *Store) SilverDescriptionSections(ctx context.Context) ([]core.SilverDescriptionSection, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		program_description_id, program_name, section_name, section_text, is_valid
	FROM silver_description_section ORDER BY program_description_id, section_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query silver description sections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []core.SilverDescriptionSection
	for rows.Next() {
		var r core.SilverDescriptionSection
		if err := rows.Scan(&r.ProgramDescriptionID, &r.ProgramName, &r.SectionName, &r.SectionText, &r.IsValid); err != nil {
			return nil, fmt.Errorf("failed to scan silver description section: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
