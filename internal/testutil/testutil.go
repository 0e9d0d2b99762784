// Package testutil provides shared helpers for warehouse tests.
package testutil

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carmsdata/carmsdw/internal/warehouse"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// OpenTestStore opens a migrated SQLite warehouse under a temp directory.
// The store is closed automatically when the test finishes.
func OpenTestStore(t testing.TB) *warehouse.Store {
	t.Helper()

	store, err := warehouse.Open(context.Background(), warehouse.Config{
		Type: "sqlite",
		Path: filepath.Join(t.TempDir(), "carmsdw_test.db"),
	}, NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate())
	return store
}
