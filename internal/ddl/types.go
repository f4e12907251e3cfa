package ddl

// Logical column kinds produced by inference and consumed by the backend
// dialects. Each backend maps these onto its own SQL types.
const (
	KindInteger   = "integer"
	KindReal      = "real"
	KindBoolean   = "boolean"
	KindDate      = "date"
	KindTimestamp = "timestamp"
	KindText      = "text"
)

// ColumnDef describes a single column in a table definition. It is
// database-agnostic: Name is the unquoted column name and Kind is one of the
// logical kinds above. Quoting and type mapping happen at render time in the
// backend dialect.
type ColumnDef struct {
	Name     string
	Kind     string
	Nullable bool
}

// TableDef holds the fully-qualified table name (dotted form, e.g.
// "dbo.FactTerrorEvents") and an ordered list of columns.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}
