// Package ddl renders SQLite DDL for the generic ddl.TableDef model.
package ddl

import (
	"fmt"
	"strings"

	gddl "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/ddl"
)

// MapType maps a logical column type onto a SQLite type affinity.
func MapType(logical string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(logical)) {
	case gddl.TypeBigInt:
		return "INTEGER", nil
	case gddl.TypeDouble:
		return "REAL", nil
	case gddl.TypeText:
		return "TEXT", nil
	default:
		return "", fmt.Errorf("sqlite: unsupported logical type %q", logical)
	}
}
