// Package ddl renders Postgres CREATE/DROP TABLE statements from the
// generic ddl.TableDef model.
//
// Identifiers are double-quoted per segment ("public"."programming_lang")
// and DROP uses IF EXISTS.
package ddl

import (
	gddl "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/ddl"
)

var syntax = gddl.Syntax{
	Name:       "postgres ddl",
	QuoteIdent: gddl.DoubleQuote,
	MapType:    MapType,
}

// BuildCreateTableSQL returns a Postgres CREATE TABLE statement for t, with
// "schema"."table" quoting.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) { return syntax.CreateTable(t) }

// BuildDropTableSQL returns DROP TABLE IF EXISTS for t.
func BuildDropTableSQL(t gddl.TableDef) (string, error) { return syntax.DropTable(t) }
