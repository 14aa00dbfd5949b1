// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) runs the init functions of each concrete backend, which register
// their factories and DDL dialects with the storage package:
//
//   - "postgres" (internal/storage/postgres)
//   - "mssql"    (internal/storage/mssql)
//   - "sqlite"   (internal/storage/sqlite)
//
// Typical usage (in cmd/labload/main.go):
//
//	import _ "github.com/SnakeyRoad/jdm-doctor-dashboard/internal/storage/all"
//
//	repo, err := storage.New(ctx, storage.Config{Kind: kind, DSN: dsn})
//	if err != nil {
//	    // handle error
//	}
//	defer repo.Close()
//
// A binary that needs only a subset of backends can blank-import those
// packages directly instead.
package all

import (
	_ "github.com/SnakeyRoad/jdm-doctor-dashboard/internal/storage/mssql"
	_ "github.com/SnakeyRoad/jdm-doctor-dashboard/internal/storage/postgres"
	_ "github.com/SnakeyRoad/jdm-doctor-dashboard/internal/storage/sqlite"
)
