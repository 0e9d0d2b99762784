package warehouse

// query.go - gold-layer read surface for the API

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carmsdata/carmsdw/pkg/core"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ProfileFilter narrows and paginates the gold program profile listing.
// Discipline and School match case-insensitive substrings; Province is
// an exact code match.
type ProfileFilter struct {
	Discipline string
	Province   string
	School     string
	Limit      int
	Offset     int
}

const goldProfileSelect = `SELECT
	program_stream_id, program_name, program_stream_name, program_stream, discipline_name,
	province, school_name, program_site, program_url, description_text, is_valid
FROM gold_program_profile`

func (f ProfileFilter) where() (string, []any) {
	var conds []string
	var args []any
	if f.Discipline != "" {
		conds = append(conds, "LOWER(discipline_name) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Discipline)+"%")
	}
	if f.Province != "" {
		conds = append(conds, "province = ?")
		args = append(args, f.Province)
	}
	if f.School != "" {
		conds = append(conds, "LOWER(school_name) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.School)+"%")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListProfiles returns a page of gold program profiles matching the
// filter, ordered by stream id.
func (s *Store) ListProfiles(ctx context.Context, f ProfileFilter) ([]core.GoldProgramProfile, error) {
	where, args := f.where()
	query := goldProfileSelect + where + " ORDER BY program_stream_id LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Offset)

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []core.GoldProgramProfile
	for rows.Next() {
		r, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountProfiles returns the full filtered row count, ignoring
// pagination.
func (s *Store) CountProfiles(ctx context.Context, f ProfileFilter) (int64, error) {
	where, args := f.where()
	query := "SELECT COUNT(*) FROM gold_program_profile" + where

	var total int64
	if err := s.db.QueryRowContext(ctx, s.rebind(query), args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return total, nil
}

// ProfileByID returns one gold program profile, or ErrNotFound.
func (s *Store) ProfileByID(ctx context.Context, programStreamID int64) (*core.GoldProgramProfile, error) {
	row := s.db.QueryRowContext(ctx,
		s.rebind(goldProfileSelect+" WHERE program_stream_id = ?"), programStreamID)

	r, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (core.GoldProgramProfile, error) {
	var r core.GoldProgramProfile
	err := row.Scan(
		&r.ProgramStreamID, &r.ProgramName, &r.ProgramStreamName, &r.ProgramStream, &r.DisciplineName,
		&r.Province, &r.SchoolName, &r.ProgramSite, &r.ProgramURL, &r.DescriptionText, &r.IsValid,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("failed to scan profile: %w", err)
	}
	return r, nil
}

// ValidDisciplines returns the silver disciplines with a non-blank
// label.
func (s *Store) ValidDisciplines(ctx context.Context) ([]core.SilverDiscipline, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT discipline_id, discipline, province, is_valid
		 FROM silver_discipline WHERE is_valid = ? ORDER BY discipline_id`), true)
	if err != nil {
		return nil, fmt.Errorf("failed to query disciplines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []core.SilverDiscipline
	for rows.Next() {
		var r core.SilverDiscipline
		if err := rows.Scan(&r.DisciplineID, &r.Discipline, &r.Province, &r.IsValid); err != nil {
			return nil, fmt.Errorf("failed to scan discipline: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ProvinceCount is the per-province program total behind the map
// payload.
type ProvinceCount struct {
	Province string
	Programs int64
}

// ProvinceCounts sums geo-summary program counts per province.
func (s *Store) ProvinceCounts(ctx context.Context) ([]ProvinceCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT province, SUM(program_count) FROM gold_geo_summary GROUP BY province`)
	if err != nil {
		return nil, fmt.Errorf("failed to query province counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []ProvinceCount
	for rows.Next() {
		var r ProvinceCount
		if err := rows.Scan(&r.Province, &r.Programs); err != nil {
			return nil, fmt.Errorf("failed to scan province count: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
