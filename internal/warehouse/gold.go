package warehouse

import (
	"context"
	"fmt"

	"github.com/carmsdata/carmsdw/pkg/core"
)

const goldProfileInsert = `INSERT INTO gold_program_profile (
	program_stream_id, program_name, program_stream_name, program_stream, discipline_name,
	province, school_name, program_site, program_url, description_text, is_valid
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// ReplaceGoldProgramProfiles replaces the gold program profile table
// contents.
func (s *Store) ReplaceGoldProgramProfiles(ctx context.Context, rows []core.GoldProgramProfile) error {
	return s.replaceTable(ctx, "gold_program_profile", goldProfileInsert, len(rows), func(i int) []any {
		r := rows[i]
		return []any{
			r.ProgramStreamID, r.ProgramName, r.ProgramStreamName, r.ProgramStream, r.DisciplineName,
			r.Province, r.SchoolName, r.ProgramSite, r.ProgramURL, r.DescriptionText, r.IsValid,
		}
	})
}

const goldGeoInsert = `INSERT INTO gold_geo_summary (
	province, discipline_name, program_count, avg_quota
) VALUES (?, ?, ?, ?)`

// ReplaceGoldGeoSummaries replaces the gold geo summary table contents.
func (s *Store) ReplaceGoldGeoSummaries(ctx context.Context, rows []core.GoldGeoSummary) error {
	return s.replaceTable(ctx, "gold_geo_summary", goldGeoInsert, len(rows), func(i int) []any {
		r := rows[i]
		return []any{r.Province, r.DisciplineName, r.ProgramCount, r.AvgQuota}
	})
}

// GoldGeoSummaries returns all gold geo summary rows.
func (s *Store) GoldGeoSummaries(ctx context.Context) ([]core.GoldGeoSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT province, discipline_name, program_count, avg_quota
		 FROM gold_geo_summary ORDER BY province, discipline_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query geo summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []core.GoldGeoSummary
	for rows.Next() {
		var r core.GoldGeoSummary
		if err := rows.Scan(&r.Province, &r.DisciplineName, &r.ProgramCount, &r.AvgQuota); err != nil {
			return nil, fmt.Errorf("failed to scan geo summary: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
