// This adapter wires the SQLite backend into the storage factory and
// registers its DDL bootstrapper. Registration happens in init so callers
// never import this package directly.
package sqlite

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

// Close implements storage.Repository.Close.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

// dialect maps logical column kinds onto SQLite storage classes. SQLite has
// no native boolean or date types; those ride on INTEGER and TEXT.
var dialect = ddl.Dialect{
	TypeFor: func(kind string) string {
		switch kind {
		case ddl.KindInteger, ddl.KindBoolean:
			return "INTEGER"
		case ddl.KindReal:
			return "REAL"
		default:
			return "TEXT"
		}
	},
	QuoteIdent:  sqIdent,
	IfNotExists: true,
}

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
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

	storage.RegisterDDL("sqlite",
		func(ctx context.Context, repo storage.Repository, def ddl.TableDef) error {
			sql, err := ddl.BuildCreateTableSQL(def, dialect)
			if err != nil {
				return fmt.Errorf("render DDL: %w", err)
			}
			return repo.Exec(ctx, sql)
		})
}
