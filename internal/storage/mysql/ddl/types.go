// Package ddl renders MySQL DDL for the generic ddl.TableDef model.
package ddl

import (
	"fmt"
	"strings"

	gddl "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/ddl"
)

// MapType maps a logical column type onto a MySQL type.
func MapType(logical string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(logical)) {
	case gddl.TypeBigInt:
		return "BIGINT", nil
	case gddl.TypeDouble:
		return "DOUBLE", nil
	case gddl.TypeText:
		return "TEXT", nil
	default:
		return "", fmt.Errorf("mysql: unsupported logical type %q", logical)
	}
}
