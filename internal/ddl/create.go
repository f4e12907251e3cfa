package ddl

import (
	"fmt"
	"strings"
)

// Dialect carries the backend-specific pieces needed to render a TableDef as
// SQL. Backends construct one in their adapter package.
type Dialect struct {
	// TypeFor maps a logical column kind (KindInteger, ...) to the backend's
	// SQL type name.
	TypeFor func(kind string) string

	// QuoteIdent quotes a single identifier segment.
	QuoteIdent func(id string) string

	// IfNotExists selects the "CREATE TABLE IF NOT EXISTS" form. Backends
	// without that syntax (SQL Server) leave it false and wrap the statement
	// themselves.
	IfNotExists bool
}

// BuildCreateTableSQL renders a deterministic CREATE TABLE statement for the
// table definition using the given dialect. Column order follows t.Columns.
func BuildCreateTableSQL(t TableDef, d Dialect) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("ddl: at least one column is required")
	}
	if d.TypeFor == nil || d.QuoteIdent == nil {
		return "", fmt.Errorf("ddl: dialect must provide TypeFor and QuoteIdent")
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("ddl: column with empty name in table %s", fqn)
		}
		typ := d.TypeFor(c.Kind)
		if typ == "" {
			return "", fmt.Errorf("ddl: dialect has no type for kind %q (column %s)", c.Kind, name)
		}

		var sb strings.Builder
		sb.WriteString(d.QuoteIdent(name))
		sb.WriteByte(' ')
		sb.WriteString(typ)
		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}
		cols = append(cols, sb.String())
	}

	create := "CREATE TABLE"
	if d.IfNotExists {
		create = "CREATE TABLE IF NOT EXISTS"
	}
	return fmt.Sprintf(
		"%s %s (\n  %s\n);",
		create,
		QuoteFQN(fqn, d.QuoteIdent),
		strings.Join(cols, ",\n  "),
	), nil
}

// QuoteFQN quotes a possibly schema-qualified name like "dbo.FactTerrorEvents"
// segment by segment. Empty segments are ignored.
func QuoteFQN(fqn string, quote func(string) string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, quote(p))
	}
	return strings.Join(out, ".")
}
