// This adapter wires the Postgres backend into the storage-agnostic factory
// by registering a constructor at init time, so callers obtain a Repository
// via storage.New(...) without importing this package directly. It also
// registers the Postgres DDL bootstrapper so auto-created tables use the
// right dialect without the caller branching on the backend.
package postgres

import (
	"context"
	"fmt"

	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/ddl"
	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/storage"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

// wrappedRepo implements storage.Repository by delegating to the concrete
// *Repository while providing a Close method that calls the close function
// returned by NewRepository.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

var _ storage.Repository = (*wrappedRepo)(nil)

// Close implements storage.Repository.Close.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

// dialect maps logical column kinds onto Postgres types.
var dialect = ddl.Dialect{
	TypeFor: func(kind string) string {
		switch kind {
		case ddl.KindInteger:
			return "BIGINT"
		case ddl.KindReal:
			return "DOUBLE PRECISION"
		case ddl.KindBoolean:
			return "BOOLEAN"
		case ddl.KindDate:
			return "DATE"
		case ddl.KindTimestamp:
			return "TIMESTAMPTZ"
		default:
			return "TEXT"
		}
	},
	QuoteIdent:  pgIdent,
	IfNotExists: true,
}

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{
			DSN:     cfg.DSN,
			Table:   cfg.Table,
			Columns: cfg.Columns,
		})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("postgres",
		func(ctx context.Context, repo storage.Repository, def ddl.TableDef) error {
			sql, err := ddl.BuildCreateTableSQL(def, dialect)
			if err != nil {
				return fmt.Errorf("render DDL: %w", err)
			}
			if err := repo.Exec(ctx, sql); err != nil {
				return fmt.Errorf("apply DDL: %w", err)
			}
			return nil
		})
}
