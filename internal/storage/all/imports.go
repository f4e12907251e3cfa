// Package all wires every built-in storage backend into the storage factory.
//
// This package exists purely for side effects: importing it (usually as a
// blank import from a main package) runs the init functions of each concrete
// backend, which register their factories and DDL bootstrappers with the
// storage package. After that, the following storage kinds are available:
//
//   - "postgres"
//   - "mssql"
//   - "sqlite"
//   - "mysql"
//
// A binary that should support only a subset of backends can blank-import
// the individual backend packages instead of this one.
package all

import (
	_ "github.com/jimsharma206/UM-TerrorismDW-Project/internal/storage/mssql"
	_ "github.com/jimsharma206/UM-TerrorismDW-Project/internal/storage/mysql"
	_ "github.com/jimsharma206/UM-TerrorismDW-Project/internal/storage/postgres"
	_ "github.com/jimsharma206/UM-TerrorismDW-Project/internal/storage/sqlite"
)
