// Package ddl defines a small, backend-agnostic model for the tables the
// pipeline writes, and a Syntax type that renders CREATE/DROP statements for
// a dialect. Backend packages (internal/storage/<kind>/ddl) supply the
// identifier quoting and type mapping that make up their Syntax.
package ddl

import (
	"fmt"
	"strings"
)

// Syntax is the per-dialect part of statement rendering.
type Syntax struct {
	// Name prefixes error messages, e.g. "postgres ddl".
	Name string
	// QuoteIdent quotes a single identifier segment.
	QuoteIdent func(string) string
	// MapType maps a logical type (TypeText, ...) to the dialect's SQL type.
	MapType func(string) (string, error)
	// DropFormat renders the drop statement; %s receives the quoted FQN.
	// Empty means "DROP TABLE IF EXISTS %s;".
	DropFormat string
}

// QuoteFQN quotes each dot-separated segment of fqn. Empty segments are
// ignored.
func (s Syntax) QuoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, s.quote(p))
	}
	return strings.Join(out, ".")
}

// CreateTable renders
//
//	CREATE TABLE <fqn> (
//	  <col> <TYPE> [NOT NULL],
//	  ...
//	);
//
// No IF NOT EXISTS clause is emitted: callers drop the table first.
func (s Syntax) CreateTable(t TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("%s: table FQN must not be empty", s.name())
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("%s: at least one column is required", s.name())
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("%s: column with empty name in table %s", s.name(), fqn)
		}
		typ, err := s.columnType(c)
		if err != nil {
			return "", fmt.Errorf("%s: column %s: %w", s.name(), name, err)
		}

		var sb strings.Builder
		sb.WriteString(s.quote(name))
		sb.WriteByte(' ')
		sb.WriteString(typ)
		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}
		cols = append(cols, sb.String())
	}

	return fmt.Sprintf(
		"CREATE TABLE %s (\n  %s\n);",
		s.QuoteFQN(fqn),
		strings.Join(cols, ",\n  "),
	), nil
}

// DropTable renders the dialect's drop-if-exists statement for t.
func (s Syntax) DropTable(t TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("%s: table FQN must not be empty", s.name())
	}
	format := s.DropFormat
	if format == "" {
		format = "DROP TABLE IF EXISTS %s;"
	}
	return fmt.Sprintf(format, s.QuoteFQN(fqn)), nil
}

func (s Syntax) columnType(c ColumnDef) (string, error) {
	if typ := strings.TrimSpace(c.SQLType); typ != "" {
		return typ, nil
	}
	if strings.TrimSpace(c.Type) == "" {
		return "", fmt.Errorf("missing type")
	}
	if s.MapType == nil {
		return "", fmt.Errorf("no type mapping for %q", c.Type)
	}
	return s.MapType(c.Type)
}

func (s Syntax) quote(id string) string {
	if s.QuoteIdent == nil {
		return id
	}
	return s.QuoteIdent(id)
}

func (s Syntax) name() string {
	if s.Name == "" {
		return "ddl"
	}
	return s.Name
}

// DoubleQuote is the ANSI identifier quoting shared by Postgres and SQLite.
func DoubleQuote(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
