package core

import "time"

// RunStatus represents the status of a pipeline run.
type RunStatus string

// Run status constants.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run represents one end-to-end pipeline execution.
type Run struct {
	ID          string
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Error       string
}

// StageResult records the outcome of a single pipeline stage within a
// run: the number of rows the stage wrote and how long it took.
type StageResult struct {
	RunID     string
	Stage     string
	RowCount  int64
	ElapsedMS int64
}
