// This adapter wires the MySQL backend into the storage-agnostic factory and
// registers its DDL bootstrapper.
package mysql

import (
	"context"
	"fmt"

	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/ddl"
	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/storage"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

// wrappedRepo adapts *Repository to storage.Repository and provides Close.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

var _ storage.Repository = (*wrappedRepo)(nil)

// Close closes the underlying connection pool.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

// dialect maps logical column kinds onto MySQL types.
var dialect = ddl.Dialect{
	TypeFor: func(kind string) string {
		switch kind {
		case ddl.KindInteger:
			return "BIGINT"
		case ddl.KindReal:
			return "DOUBLE"
		case ddl.KindBoolean:
			return "TINYINT(1)"
		case ddl.KindDate:
			return "DATE"
		case ddl.KindTimestamp:
			return "DATETIME"
		default:
			return "TEXT"
		}
	},
	QuoteIdent:  myIdent,
	IfNotExists: true,
}

func init() {
	storage.Register("mysql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
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

	storage.RegisterDDL("mysql",
		func(ctx context.Context, repo storage.Repository, def ddl.TableDef) error {
			sql, err := ddl.BuildCreateTableSQL(def, dialect)
			if err != nil {
				return fmt.Errorf("render DDL: %w", err)
			}
			return repo.Exec(ctx, sql)
		})
}
