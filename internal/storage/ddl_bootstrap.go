package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/ddl"
)

// DDLBootstrapper applies a backend-specific CREATE TABLE for the given table
// definition via repo.Exec. Backends register their implementation for a
// storage kind at init time, next to their factory registration.
type DDLBootstrapper func(ctx context.Context, repo Repository, def ddl.TableDef) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) the DDLBootstrapper for a storage kind.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTable locates the DDLBootstrapper for kind and invokes it. Callers
// stay backend-agnostic; they pass the inferred table definition and the
// already-open Repository.
func EnsureTable(ctx context.Context, kind string, repo Repository, def ddl.TableDef) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("storage: no DDL bootstrapper registered for kind %q", kind)
	}
	return fn(ctx, repo, def)
}
