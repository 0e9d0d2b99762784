package warehouse

// runs.go - pipeline run bookkeeping

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carmsdata/carmsdw/pkg/core"
	"github.com/google/uuid"
)

// CreateRun records the start of a pipeline run.
func (s *Store) CreateRun(ctx context.Context) (*core.Run, error) {
	run := &core.Run{
		ID:        uuid.New().String(),
		Status:    core.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO pipeline_run (id, status, started_at) VALUES (?, ?, ?)`),
		run.ID, string(run.Status), run.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// CompleteRun marks a run as completed or failed.
func (s *Store) CompleteRun(ctx context.Context, id string, status core.RunStatus, errMsg string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE pipeline_run SET status = ?, completed_at = ?, error = ? WHERE id = ?`),
		string(status), time.Now().UTC(), errMsg, id)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// AddStageResult records a finished stage for a run.
func (s *Store) AddStageResult(ctx context.Context, r core.StageResult) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO pipeline_run_stage (run_id, stage, row_count, elapsed_ms) VALUES (?, ?, ?, ?)`),
		r.RunID, r.Stage, r.RowCount, r.ElapsedMS)
	if err != nil {
		return fmt.Errorf("failed to record stage result: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID, or ErrNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (*core.Run, error) {
	run := &core.Run{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, status, started_at, completed_at, error FROM pipeline_run WHERE id = ?`), id).
		Scan(&run.ID, &run.Status, &run.StartedAt, &run.CompletedAt, &run.Error)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]core.Run, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, status, started_at, completed_at, error
		 FROM pipeline_run ORDER BY started_at DESC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []core.Run
	for rows.Next() {
		var r core.Run
		if err := rows.Scan(&r.ID, &r.Status, &r.StartedAt, &r.CompletedAt, &r.Error); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// StageResults returns the recorded stage results for a run in stage
// name order.
func (s *Store) StageResults(ctx context.Context, runID string) ([]core.StageResult, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT run_id, stage, row_count, elapsed_ms
		 FROM pipeline_run_stage WHERE run_id = ? ORDER BY stage`), runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stage results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []core.StageResult
	for rows.Next() {
		var r core.StageResult
		if err := rows.Scan(&r.RunID, &r.Stage, &r.RowCount, &r.ElapsedMS); err != nil {
			return nil, fmt.Errorf("failed to scan stage result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
