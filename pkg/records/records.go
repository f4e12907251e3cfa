// Package records defines the common in-memory row representation shared by
// the parser, cleaner, and storage layers.
package records

// Record is a single row keyed by column name. A nil value is the missing
// marker: it round-trips to an empty CSV cell and a SQL NULL. After parsing,
// values are strings or nil; cleaning steps may replace string values with
// float64 for coerced numeric columns.
type Record map[string]any

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
