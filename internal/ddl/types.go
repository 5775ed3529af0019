package ddl

// Logical column types. Backends map these onto their own SQL types.
const (
	TypeText   = "text"
	TypeBigInt = "bigint"
	TypeDouble = "double"
)

// ColumnDef describes one output column.
//
// Type is the logical type; SQLType, when set, is emitted verbatim and wins
// over the dialect's mapping of Type.
type ColumnDef struct {
	Name     string
	Type     string
	SQLType  string
	Nullable bool
}

// TableDef holds the table name (FQN, optionally "schema.table") and its
// ordered columns.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}

// ColumnNames returns the column names in declaration order.
func (t TableDef) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}
