package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/ddl"
)

var (
	ddlMu    sync.RWMutex
	dialects = map[string]ddl.Dialect{}
)

// RegisterDialect registers (or replaces) the DDL dialect for a storage kind.
// Backends call it from init next to Register.
func RegisterDialect(kind string, d ddl.Dialect) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	dialects[kind] = d
}

// DialectFor returns the DDL dialect registered for kind.
func DialectFor(kind string) (ddl.Dialect, bool) {
	ddlMu.RLock()
	defer ddlMu.RUnlock()
	d, ok := dialects[kind]
	return d, ok
}

// EnsureSchema renders every table with the dialect registered for kind and
// applies the statements in order through repo.Exec. Statements are
// idempotent, so EnsureSchema can run before every load.
func EnsureSchema(ctx context.Context, kind string, repo Repository, tables []ddl.TableDef) error {
	d, ok := DialectFor(kind)
	if !ok {
		return fmt.Errorf("no DDL dialect registered for storage.kind=%q", kind)
	}
	for _, t := range tables {
		stmts, err := ddl.Build(d, t)
		if err != nil {
			return err
		}
		for _, s := range stmts {
			if err := repo.Exec(ctx, s); err != nil {
				return fmt.Errorf("apply DDL for %s: %w", t.Name, err)
			}
		}
	}
	return nil
}
