// This adapter wires the SQL Server backend into the storage-agnostic
// factory and registers its DDL bootstrapper. SQL Server has no
// CREATE TABLE IF NOT EXISTS, so the statement is guarded with an
// IF OBJECT_ID check instead.
package mssql

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

// dialect maps logical column kinds onto SQL Server types.
var dialect = ddl.Dialect{
	TypeFor: func(kind string) string {
		switch kind {
		case ddl.KindInteger:
			return "BIGINT"
		case ddl.KindReal:
			return "FLOAT"
		case ddl.KindBoolean:
			return "BIT"
		case ddl.KindDate:
			return "DATE"
		case ddl.KindTimestamp:
			return "DATETIME2"
		default:
			return "NVARCHAR(MAX)"
		}
	},
	QuoteIdent: msIdent,
}

func init() {
	storage.Register("mssql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
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

	storage.RegisterDDL("mssql",
		func(ctx context.Context, repo storage.Repository, def ddl.TableDef) error {
			create, err := ddl.BuildCreateTableSQL(def, dialect)
			if err != nil {
				return fmt.Errorf("render DDL: %w", err)
			}
			guarded := fmt.Sprintf(
				"IF OBJECT_ID(N'%s', N'U') IS NULL\n%s", def.FQN, create,
			)
			if err := repo.Exec(ctx, guarded); err != nil {
				return fmt.Errorf("apply DDL: %w", err)
			}
			return nil
		})
}
