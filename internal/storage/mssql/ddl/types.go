// Package ddl renders SQL Server DDL for the generic ddl.TableDef model.
package ddl

import (
	"fmt"
	"strings"

	gddl "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/ddl"
)

// MapType maps a logical column type onto a SQL Server type. Text uses
// NVARCHAR(MAX) so repository descriptions in any script survive.
func MapType(logical string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(logical)) {
	case gddl.TypeBigInt:
		return "BIGINT", nil
	case gddl.TypeDouble:
		return "FLOAT", nil
	case gddl.TypeText:
		return "NVARCHAR(MAX)", nil
	default:
		return "", fmt.Errorf("mssql: unsupported logical type %q", logical)
	}
}
