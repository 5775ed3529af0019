// Package ddl renders Postgres DDL for the generic ddl.TableDef model.
package ddl

import (
	"fmt"
	"strings"

	gddl "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/ddl"
)

// MapType maps a logical column type onto a Postgres type.
func MapType(logical string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(logical)) {
	case gddl.TypeBigInt:
		return "BIGINT", nil
	case gddl.TypeDouble:
		return "DOUBLE PRECISION", nil
	case gddl.TypeText:
		return "TEXT", nil
	default:
		return "", fmt.Errorf("postgres: unsupported logical type %q", logical)
	}
}
