// Package dataset holds the in-memory table model the cleaning pipeline
// operates on: an ordered list of column names plus one records.Record per
// row. The table is mutated in place by each pipeline step; column order is
// preserved through renames and drops so the exported file keeps the source
// layout minus removed columns.
package dataset

import (
	"github.com/jimsharma206/UM-TerrorismDW-Project/pkg/records"
)

// Table is an ordered, named-column view over a slice of records. Rows share
// the column set; a row simply lacks a key (or holds nil) for a missing value.
type Table struct {
	Columns []string
	Rows    []records.Record
}

// New constructs a Table from a column order and rows.
func New(columns []string, rows []records.Record) *Table {
	return &Table{Columns: columns, Rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// HasColumn reports whether name is part of the table's column set.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Rename changes a column's name in the header and in every row. Renaming a
// column that does not exist is a no-op.
func (t *Table) Rename(from, to string) {
	found := false
	for i, c := range t.Columns {
		if c == from {
			t.Columns[i] = to
			found = true
			break
		}
	}
	if !found {
		return
	}
	for _, r := range t.Rows {
		if v, ok := r[from]; ok {
			r[to] = v
			delete(r, from)
		}
	}
}

// Drop removes the named columns from the header and from every row. Names
// not present are ignored.
func (t *Table) Drop(names ...string) []string {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if t.HasColumn(n) {
			set[n] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	kept := t.Columns[:0]
	dropped := make([]string, 0, len(set))
	for _, c := range t.Columns {
		if _, ok := set[c]; ok {
			dropped = append(dropped, c)
			continue
		}
		kept = append(kept, c)
	}
	t.Columns = kept
	for _, r := range t.Rows {
		for n := range set {
			delete(r, n)
		}
	}
	return dropped
}

// MissingFraction returns the share of rows whose value for col is the
// missing marker (nil or absent). An empty table counts as fully missing.
func (t *Table) MissingFraction(col string) float64 {
	if len(t.Rows) == 0 {
		return 1
	}
	missing := 0
	for _, r := range t.Rows {
		if v, ok := r[col]; !ok || v == nil {
			missing++
		}
	}
	return float64(missing) / float64(len(t.Rows))
}

// Filter keeps only rows for which keep returns true and reports how many
// rows were removed.
func (t *Table) Filter(keep func(records.Record) bool) int {
	kept := t.Rows[:0]
	for _, r := range t.Rows {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	dropped := len(t.Rows) - len(kept)
	t.Rows = kept
	return dropped
}
