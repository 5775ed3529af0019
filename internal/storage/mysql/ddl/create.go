// Package ddl renders MySQL CREATE/DROP TABLE statements from the generic
// ddl.TableDef model, with backtick quoting.
package ddl

import (
	"strings"

	gddl "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/ddl"
)

var syntax = gddl.Syntax{
	Name:       "mysql ddl",
	QuoteIdent: QuoteIdent,
	MapType:    MapType,
}

// BuildCreateTableSQL returns a MySQL CREATE TABLE statement for t, with
// `db`.`table` quoting.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) { return syntax.CreateTable(t) }

// BuildDropTableSQL returns DROP TABLE IF EXISTS for t.
func BuildDropTableSQL(t gddl.TableDef) (string, error) { return syntax.DropTable(t) }

// QuoteIdent backtick-quotes a MySQL identifier, doubling embedded backticks.
func QuoteIdent(id string) string { return "`" + strings.ReplaceAll(id, "`", "``") + "`" }

// QuoteFQN quotes each segment of a possibly qualified table name.
func QuoteFQN(fqn string) string { return syntax.QuoteFQN(fqn) }
