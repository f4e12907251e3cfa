// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql with the modernc.org driver. SQLite has no dedicated
// bulk-load API, so each batch is inserted inside a single transaction
// through a prepared statement, which keeps local-development loads fast
// enough for GTD-scale inputs.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Config holds SQLite repository configuration.
type Config struct {
	// DSN is a SQLite connection string or file path, e.g.
	// "file:warehouse.db?cache=shared" or "warehouse.db".
	DSN string

	// Table is the target table name. SQLite does not use schemas the way
	// Postgres and SQL Server do; dotted names like "main.events" pass
	// through unchanged.
	Table string

	// Columns is the ordered list of destination columns.
	Columns []string
}

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository opens a SQLite connection for the given DSN and returns a
// Repository plus a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	closeFn := func() { db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// CopyFrom inserts the given rows into the configured table using a single
// transaction and a prepared INSERT statement. It returns the number of rows
// inserted before the first error.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("sqlite: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		r.cfg.Table,
		strings.Join(quoteAll(columns), ", "),
		strings.Join(placeholders, ", "),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		if len(row) != len(columns) {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("sqlite: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("sqlite: insert: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("sqlite: commit: %w", err)
	}
	return inserted, nil
}

// Exec executes an arbitrary SQL statement (typically DDL).
func (r *Repository) Exec(ctx context.Context, sqlText string) error {
	if strings.TrimSpace(sqlText) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, sqlText); err != nil {
		return fmt.Errorf("sqlite: exec: %w", err)
	}
	return nil
}

// sqIdent quotes a SQLite identifier with double quotes, escaping embedded quotes.
func sqIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

func quoteAll(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = sqIdent(c)
	}
	return out
}
