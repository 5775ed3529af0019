// Package ddl renders T-SQL CREATE/DROP TABLE statements from the generic
// ddl.TableDef model, with [bracket] quoting.
package ddl

import (
	"strings"

	gddl "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/ddl"
)

var syntax = gddl.Syntax{
	Name:       "mssql ddl",
	QuoteIdent: QuoteIdent,
	MapType:    MapType,
	// Guarded with OBJECT_ID so the script also runs on servers older
	// than 2016, which lack DROP TABLE IF EXISTS.
	DropFormat: "IF OBJECT_ID(N'%[1]s', N'U') IS NOT NULL DROP TABLE %[1]s;",
}

// BuildCreateTableSQL returns a T-SQL CREATE TABLE statement for t, with
// [schema].[table] quoting.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) { return syntax.CreateTable(t) }

// BuildDropTableSQL returns an OBJECT_ID-guarded DROP TABLE for t.
func BuildDropTableSQL(t gddl.TableDef) (string, error) { return syntax.DropTable(t) }

// QuoteIdent brackets a SQL Server identifier, escaping ].
func QuoteIdent(id string) string { return `[` + strings.ReplaceAll(id, `]`, `]]`) + `]` }
