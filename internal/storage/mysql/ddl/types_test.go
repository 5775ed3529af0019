package ddl

import (
	"strings"
	"testing"

	gddl "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/ddl"
)

// TestMapType verifies the logical-to-SQL type mapping.
func TestMapType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		logical string
		want    string
		wantErr bool
	}{
		{name: "bigint", logical: gddl.TypeBigInt, want: "BIGINT"},
		{name: "double", logical: gddl.TypeDouble, want: "DOUBLE"},
		{name: "text", logical: gddl.TypeText, want: "TEXT"},
		{name: "case and spaces", logical: "  BigInt ", want: "BIGINT"},
		{name: "unknown", logical: "uuid", wantErr: true},
		{name: "empty", logical: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := MapType(tt.logical)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "mysql") {
					t.Fatalf("MapType(%q) error = %v, want mysql error", tt.logical, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("MapType(%q) error = %v", tt.logical, err)
			}
			if got != tt.want {
				t.Fatalf("MapType(%q) = %q, want %q", tt.logical, got, tt.want)
			}
		})
	}
}
