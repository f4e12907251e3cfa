// Package storage contains the storage-agnostic contracts for the warehouse
// load step: a Repository interface, a factory keyed by storage kind, and a
// generic batched loader.
//
// Concrete backends (postgres, mssql, sqlite, mysql) live in subpackages and
// register themselves with the factory at init time; importing
// internal/storage/all enables every built-in backend.
package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Config is the backend-independent repository configuration assembled from
// the pipeline's storage section.
type Config struct {
	Kind    string   // backend selector: "postgres", "mssql", "sqlite", "mysql"
	DSN     string   // backend connection string
	Table   string   // fully qualified destination table
	Columns []string // ordered destination columns
}

// Repository is the minimal sink contract the loader needs. CopyFrom inserts
// rows aligned to the given column order using the backend's most efficient
// bulk primitive and returns the number of rows inserted. Exec runs raw SQL
// (used for DDL).
type Repository interface {
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
	Exec(ctx context.Context, sql string) error
	Close()
}

// Factory constructs a Repository for a Config. Backends register one per
// storage kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for the given storage kind.
// Called from backend packages' init functions.
func Register(kind string, fn Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = fn
}

// New opens a Repository for cfg.Kind. The error for an unknown kind lists
// the registered kinds so a misconfigured pipeline fails with a useful hint.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	fn, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (registered: %s)", cfg.Kind, registeredKinds())
	}
	return fn(ctx, cfg)
}

func registeredKinds() string {
	regMu.RLock()
	defer regMu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	if len(kinds) == 0 {
		return "none"
	}
	return strings.Join(kinds, ", ")
}
