package csv_test

import (
	"strings"
	"testing"

	pcsv "github.com/jimsharma206/UM-TerrorismDW-Project/internal/parser/csv"
)

func TestParseBasic(t *testing.T) {
	t.Parallel()

	in := "\ufeffeventid,city,latitude\n197000000001,Santo Domingo,18.45\n197000000002,,\n"
	p := pcsv.NewParser(pcsv.Options{HasHeader: true, TrimSpace: true})

	tbl, skipped, err := p.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if got := tbl.Columns[0]; got != "eventid" {
		t.Fatalf("BOM not stripped, first column = %q", got)
	}
	if tbl.Len() != 2 {
		t.Fatalf("rows = %d, want 2", tbl.Len())
	}
	if v := tbl.Rows[0]["city"]; v != "Santo Domingo" {
		t.Fatalf("city = %v", v)
	}
	if v := tbl.Rows[1]["city"]; v != nil {
		t.Fatalf("empty cell = %v, want nil", v)
	}
}

func TestParseSkipsWidthMismatch(t *testing.T) {
	t.Parallel()

	in := "a,b\n1,2\n1,2,3\nonly_one\n4,5\n"
	p := pcsv.NewParser(pcsv.Options{HasHeader: true})

	tbl, skipped, err := p.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if skipped != 2 {
		t.Fatalf("skipped = %d, want 2", skipped)
	}
	if tbl.Len() != 2 {
		t.Fatalf("rows = %d, want 2", tbl.Len())
	}
	if v := tbl.Rows[1]["b"]; v != "5" {
		t.Fatalf("last row b = %v, want 5", v)
	}
}

func TestParseHeaderMap(t *testing.T) {
	t.Parallel()

	in := "iyear,INT_ANY\n1970,0\n"
	p := pcsv.NewParser(pcsv.Options{
		HasHeader: true,
		HeaderMap: map[string]string{"iyear": "year"},
	})

	tbl, _, err := p.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tbl.Columns[0] != "year" {
		t.Fatalf("mapped header = %q, want year", tbl.Columns[0])
	}
	// Unmapped GTD codes keep their exact case.
	if tbl.Columns[1] != "INT_ANY" {
		t.Fatalf("unmapped header = %q, want INT_ANY", tbl.Columns[1])
	}
	if v := tbl.Rows[0]["year"]; v != "1970" {
		t.Fatalf("year = %v", v)
	}
}

func TestParseCustomDelimiter(t *testing.T) {
	t.Parallel()

	in := "a;b\n1;2\n"
	p := pcsv.NewParser(pcsv.Options{HasHeader: true, Comma: ';'})

	tbl, _, err := p.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v := tbl.Rows[0]["b"]; v != "2" {
		t.Fatalf("b = %v, want 2", v)
	}
}

func TestParseHeaderless(t *testing.T) {
	t.Parallel()

	in := "1,2\n3,4\n"
	p := pcsv.NewParser(pcsv.Options{})

	tbl, _, err := p.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tbl.Columns[0] != "col_0" || tbl.Columns[1] != "col_1" {
		t.Fatalf("synthesized columns = %v", tbl.Columns)
	}
	if v := tbl.Rows[1]["col_1"]; v != "4" {
		t.Fatalf("col_1 = %v, want 4", v)
	}
}

func TestParseLazyQuotes(t *testing.T) {
	t.Parallel()

	// A stray quote inside a narrative field must not fail the parse.
	in := "id,summary\n1,said \"no\" twice\n"
	p := pcsv.NewParser(pcsv.Options{HasHeader: true})

	tbl, skipped, err := p.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if skipped != 0 || tbl.Len() != 1 {
		t.Fatalf("skipped=%d len=%d", skipped, tbl.Len())
	}
}
