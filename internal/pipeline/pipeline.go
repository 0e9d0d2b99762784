// Package pipeline implements the bronze -> silver -> gold batch
// transformation over residency-program source files.
//
// Each stage reads its upstream layer, transforms row by row, and
// replaces its destination table in one transaction. Stages are
// stateless; rerunning a stage with identical inputs reproduces the
// same table contents.
package pipeline

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/carmsdata/carmsdw/internal/warehouse"
)

// Config holds the source file locations for the bronze stages.
type Config struct {
	ProgramsPath     string
	DisciplinesPath  string
	DescriptionsPath string
}

// Pipeline executes the warehouse stages.
type Pipeline struct {
	store  *warehouse.Store
	cfg    Config
	logger *slog.Logger
}

// New creates a Pipeline. If logger is nil, a discard logger is used.
func New(store *warehouse.Store, cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{store: store, cfg: cfg, logger: logger}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// isBlank reports whether a cell has no usable text.
func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// cellInt coerces a cell to an integer. Spreadsheet extracts surface
// integers as "123" or "123.0"; anything else is treated as absent.
func cellInt(s *string) *int64 {
	if s == nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return nil
	}
	n := int64(f)
	return &n
}
