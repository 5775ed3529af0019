// Package ddl renders SQLite CREATE/DROP TABLE statements from the generic
// ddl.TableDef model. Identifiers are double-quoted; "main." prefixes are
// kept as a schema segment.
package ddl

import (
	gddl "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/ddl"
)

var syntax = gddl.Syntax{
	Name:       "sqlite ddl",
	QuoteIdent: gddl.DoubleQuote,
	MapType:    MapType,
}

// BuildCreateTableSQL returns a SQLite CREATE TABLE statement for t.
// Dotted names ("main.events") are quoted per segment.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) { return syntax.CreateTable(t) }

// BuildDropTableSQL returns DROP TABLE IF EXISTS for t.
func BuildDropTableSQL(t gddl.TableDef) (string, error) { return syntax.DropTable(t) }

// QuoteIdent double-quotes one identifier.
func QuoteIdent(id string) string { return gddl.DoubleQuote(id) }

// QuoteFQN quotes each segment of a possibly qualified table name.
func QuoteFQN(fqn string) string { return syntax.QuoteFQN(fqn) }
