// Package warehouse persists the bronze, silver, and gold layers in a
// relational store and exposes the read surface used by the API.
//
// Two targets are supported: SQLite (default, and what the tests run
// against) and PostgreSQL. Every layer write is a DELETE plus batched
// INSERT inside a single transaction, so a failed stage leaves the
// previous table contents intact and reruns are idempotent.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Config holds warehouse connection settings.
type Config struct {
	// Type selects the target: "sqlite" or "postgres".
	Type string

	// Path is the database file for SQLite targets. ":memory:" opens an
	// in-memory database.
	Path string

	// Network settings for PostgreSQL targets.
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// Store is a connected warehouse.
type Store struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

// Open connects to the configured warehouse target.
// If logger is nil, a discard logger is used.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var driver, dsn string
	switch cfg.Type {
	case "", "sqlite":
		driver = "sqlite"
		dsn = cfg.Path
		if dsn == "" {
			dsn = ":memory:"
		}
	case "postgres":
		driver = "pgx"
		dsn = buildPostgresDSN(cfg)
	default:
		return nil, fmt.Errorf("unknown warehouse type %q", cfg.Type)
	}

	logger.Debug("connecting to warehouse", slog.String("type", cfg.Type), slog.String("driver", driver))

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}

	if driver == "sqlite" {
		// A single connection keeps in-memory databases coherent and
		// avoids SQLITE_BUSY on file targets.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping warehouse: %w", err)
	}

	return &Store{db: db, driver: driver, logger: logger}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// buildPostgresDSN constructs a key=value PostgreSQL connection string.
func buildPostgresDSN(cfg Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", host, port, cfg.Database, sslmode)
	if cfg.User != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.User)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}
	return dsn
}

// rebind converts ?-style placeholders to the $n form PostgreSQL
// expects. SQLite queries pass through unchanged.
func (s *Store) rebind(query string) string {
	if s.driver != "pgx" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// replaceTable deletes all rows of a table and re-inserts the given rows
// inside one transaction. bind returns the insert arguments for row i.
func (s *Store) replaceTable(ctx context.Context, table, insertSQL string, n int, bind func(i int) []any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, s.rebind(insertSQL))
	if err != nil {
		return fmt.Errorf("failed to prepare insert for %s: %w", table, err)
	}
	defer func() { _ = stmt.Close() }()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, bind(i)...); err != nil {
			return fmt.Errorf("failed to insert row %d into %s: %w", i, table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}

	s.logger.Debug("replaced table", slog.String("table", table), slog.Int("rows", n))
	return nil
}
