// Package all wires every built-in storage backend into the storage factory.
//
// Importing it for side effects runs each backend's init, which registers
// its Repository factory and DDL dialect:
//
//   - "postgres" (internal/storage/postgres)
//   - "sqlite"   (internal/storage/sqlite)
//   - "mssql"    (internal/storage/mssql)
//   - "mysql"    (internal/storage/mysql)
//
// A binary that needs only a subset can import those backends directly.
package all

import (
	_ "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage/mssql"
	_ "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage/mysql"
	_ "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage/postgres"
	_ "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage/sqlite"
)
