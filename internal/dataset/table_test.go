package dataset

import (
	"reflect"
	"testing"

	"github.com/jimsharma206/UM-TerrorismDW-Project/pkg/records"
)

func sampleTable() *Table {
	return New(
		[]string{"a", "b", "c"},
		[]records.Record{
			{"a": "1", "b": "x", "c": nil},
			{"a": "2", "b": nil, "c": nil},
			{"a": nil, "b": "y", "c": "z"},
		},
	)
}

func TestRename(t *testing.T) {
	t.Parallel()

	tbl := sampleTable()
	tbl.Rename("a", "alpha")

	if !reflect.DeepEqual(tbl.Columns, []string{"alpha", "b", "c"}) {
		t.Fatalf("columns = %v", tbl.Columns)
	}
	if v := tbl.Rows[0]["alpha"]; v != "1" {
		t.Fatalf("alpha = %v, want 1", v)
	}
	if _, ok := tbl.Rows[0]["a"]; ok {
		t.Fatal("old key still present after rename")
	}

	// Renaming an absent column must not change anything.
	tbl.Rename("missing", "other")
	if !reflect.DeepEqual(tbl.Columns, []string{"alpha", "b", "c"}) {
		t.Fatalf("columns after no-op rename = %v", tbl.Columns)
	}
}

func TestDrop(t *testing.T) {
	t.Parallel()

	tbl := sampleTable()
	dropped := tbl.Drop("b", "missing", "c")

	if !reflect.DeepEqual(dropped, []string{"b", "c"}) {
		t.Fatalf("dropped = %v, want [b c]", dropped)
	}
	if !reflect.DeepEqual(tbl.Columns, []string{"a"}) {
		t.Fatalf("columns = %v, want [a]", tbl.Columns)
	}
	for i, r := range tbl.Rows {
		if _, ok := r["b"]; ok {
			t.Fatalf("row %d still has dropped column b", i)
		}
	}

	if got := tbl.Drop("nothing"); got != nil {
		t.Fatalf("dropping absent columns returned %v, want nil", got)
	}
}

func TestMissingFraction(t *testing.T) {
	t.Parallel()

	tbl := sampleTable()
	cases := []struct {
		col  string
		want float64
	}{
		{"a", 1.0 / 3},
		{"b", 1.0 / 3},
		{"c", 2.0 / 3},
		{"absent", 1},
	}
	for _, tc := range cases {
		if got := tbl.MissingFraction(tc.col); got != tc.want {
			t.Errorf("MissingFraction(%q) = %v, want %v", tc.col, got, tc.want)
		}
	}

	empty := New([]string{"a"}, nil)
	if got := empty.MissingFraction("a"); got != 1 {
		t.Fatalf("empty table fraction = %v, want 1", got)
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	tbl := sampleTable()
	dropped := tbl.Filter(func(r records.Record) bool { return r["a"] != nil })

	if dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}
	if tbl.Len() != 2 {
		t.Fatalf("len = %d, want 2", tbl.Len())
	}
	for _, r := range tbl.Rows {
		if r["a"] == nil {
			t.Fatal("filtered row survived")
		}
	}
}
