// Package mysql implements a MySQL-backed storage.Repository. MySQL has no
// COPY equivalent usable through database/sql, so each batch becomes one
// multi-row INSERT, which is the fastest path the protocol offers without
// LOAD DATA INFILE.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Config holds MySQL repository configuration.
type Config struct {
	DSN     string // go-sql-driver DSN, e.g. "user:pass@tcp(host:3306)/gtd"
	Table   string
	Columns []string
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository opens a MySQL connection pool and returns a Repository plus
// a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("mysql: DSN must not be empty")
	}
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("mysql: ping: %w", err)
	}

	closeFn := func() { _ = db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// CopyFrom inserts the given rows as a single multi-row INSERT statement.
// All rows must align to the columns order.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("mysql: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	tuple := "(" + strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"
	tuples := make([]string, len(rows))
	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("mysql: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
		tuples[i] = tuple
		args = append(args, row...)
	}

	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s",
		myFQN(r.cfg.Table),
		strings.Join(quoteAll(columns), ", "),
		strings.Join(tuples, ", "),
	)

	res, err := r.db.ExecContext(ctx, stmtSQL, args...)
	if err != nil {
		return 0, fmt.Errorf("mysql: insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mysql: rows affected: %w", err)
	}
	return n, nil
}

// Exec executes an arbitrary SQL statement (typically DDL).
func (r *Repository) Exec(ctx context.Context, sqlText string) error {
	_, err := r.db.ExecContext(ctx, sqlText)
	return err
}

// myIdent quotes a MySQL identifier with backticks, escaping embedded backticks.
func myIdent(id string) string { return "`" + strings.ReplaceAll(id, "`", "``") + "`" }

// myFQN quotes a possibly database-qualified name like "gtd.events".
func myFQN(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = myIdent(p)
	}
	return strings.Join(parts, ".")
}

func quoteAll(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = myIdent(c)
	}
	return out
}
