package cleaner_test

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/cleaner"
)

const rawGTD = `eventid,iyear,latitude,longitude,city,provstate,country,country_txt,nkill,propextent
1,1970,18.45,-69.95,Santo Domingo,National,58,Dominican Republic,1,
2,1970,,-69.95,Santiago,National,58,Dominican Republic,0,
3,1970,15.0,12.0,,,58,Dominican Republic,unknown,
4,1971,10.0,10.0,MEXICO CITY,Federal,21,Mexico,2,minor
5,1971,11.0,11.0,Cairo,Giza,60,Egypt,0,
6,1972,12.0,12.0,Rome,Lazio,98,Italy,3,
`

func writeInput(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "gtd.csv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return p
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// TestRunEndToEnd exercises the whole pass on a small synthetic export:
// one row lost to the geo filter, one placeholder quarantined out of nkill,
// one sparse column dropped, renames applied, and the report consistent with
// the exported file.
func TestRunEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeInput(t, dir, rawGTD)
	out := filepath.Join(dir, "cleaned.csv")

	c := cleaner.New(cleaner.Config{
		Job:        "gtd_clean_test",
		InputPath:  in,
		Encoding:   "utf-8",
		OutputPath: out,
	})

	tbl, rep, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rep.InitialRows != 6 || rep.MissingGeoRows != 1 || rep.FinalRows != 5 {
		t.Fatalf("report rows = %+v", rep)
	}
	if rep.RowsDropped != rep.InitialRows-rep.FinalRows {
		t.Fatalf("RowsDropped inconsistent: %+v", rep)
	}
	if rep.SkippedRows != 0 {
		t.Fatalf("SkippedRows = %d", rep.SkippedRows)
	}

	// propextent is missing in 4 of 5 surviving rows: dropped at the 80%
	// threshold. iyear/nkill were renamed.
	if tbl.HasColumn("propextent") || tbl.HasColumn("iyear") || tbl.HasColumn("nkill") {
		t.Fatalf("columns = %v", tbl.Columns)
	}
	if !tbl.HasColumn("year") || !tbl.HasColumn("num_killed") {
		t.Fatalf("columns = %v", tbl.Columns)
	}
	if len(rep.SparseDropped) != 1 || rep.SparseDropped[0] != "propextent" {
		t.Fatalf("SparseDropped = %v", rep.SparseDropped)
	}

	// The nkill placeholder was quarantined, then coerced to missing.
	wantQ := filepath.Join(dir, "bad_numeric_rows", "bad_nkill.csv")
	if len(rep.QuarantineFiles) != 1 || rep.QuarantineFiles[0] != wantQ {
		t.Fatalf("QuarantineFiles = %v", rep.QuarantineFiles)
	}
	qrows := readAll(t, wantQ)
	if len(qrows) != 2 { // header + the single distinct offender
		t.Fatalf("quarantine rows = %d", len(qrows))
	}

	// Exported file agrees with the report and the in-memory table.
	rows := readAll(t, out)
	if len(rows)-1 != rep.FinalRows {
		t.Fatalf("exported %d rows, report says %d", len(rows)-1, rep.FinalRows)
	}
	header := rows[0]

	city := indexOf(header, "city")
	if city < 0 {
		t.Fatalf("no city column in %v", header)
	}
	// Row 3 had an empty city: filled with the literal "unknown".
	if got := rows[2][city]; got != "unknown" {
		t.Fatalf("filled city = %q", got)
	}
	// Text was lowercased.
	if got := rows[3][city]; got != "mexico city" {
		t.Fatalf("city = %q", got)
	}
	nk := indexOf(header, "num_killed")
	if got := rows[2][nk]; got != "" {
		t.Fatalf("quarantined num_killed = %q, want empty", got)
	}
	if got := rows[1][nk]; got != "1" {
		t.Fatalf("num_killed = %q, want 1", got)
	}
}

// TestRunIdempotent re-cleans a cleaned file and expects identical output.
func TestRunIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeInput(t, dir, rawGTD)
	out1 := filepath.Join(dir, "clean1.csv")
	out2 := filepath.Join(dir, "clean2.csv")

	_, rep1, err := cleaner.New(cleaner.Config{
		InputPath: in, Encoding: "utf-8", OutputPath: out1,
	}).Run(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	_, rep2, err := cleaner.New(cleaner.Config{
		InputPath: out1, Encoding: "utf-8", OutputPath: out2,
	}).Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if rep2.FinalRows != rep1.FinalRows || rep2.MissingGeoRows != 0 {
		t.Fatalf("second run changed rows: %+v", rep2)
	}
	b1, err := os.ReadFile(out1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := os.ReadFile(out2)
	if err != nil {
		t.Fatal(err)
	}
	if string(b1) != string(b2) {
		t.Fatal("cleaning a cleaned file changed its content")
	}
}

// TestRunStrictAlignment verifies the strict policy fails the run before
// export when a code maps to two labels that stay distinct after
// normalization.
func TestRunStrictAlignment(t *testing.T) {
	t.Parallel()

	const conflicting = `eventid,latitude,longitude,country,country_txt
1,1.0,1.0,99,Ruritania
2,1.0,1.0,99,Kingdom of Ruritania
`
	dir := t.TempDir()
	in := writeInput(t, dir, conflicting)
	out := filepath.Join(dir, "cleaned.csv")

	_, rep, err := cleaner.New(cleaner.Config{
		InputPath:       in,
		Encoding:        "utf-8",
		OutputPath:      out,
		AlignmentPolicy: cleaner.PolicyStrict,
	}).Run(context.Background())

	if !errors.Is(err, cleaner.ErrAlignment) {
		t.Fatalf("err = %v, want ErrAlignment", err)
	}
	if len(rep.Mismatches) != 1 {
		t.Fatalf("mismatches = %v", rep.Mismatches)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatal("output written despite strict alignment failure")
	}
}

// TestRunMissingInput fails the run rather than producing an empty output.
func TestRunMissingInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, _, err := cleaner.New(cleaner.Config{
		InputPath:  filepath.Join(dir, "absent.csv"),
		OutputPath: filepath.Join(dir, "out.csv"),
	}).Run(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

// TestRunCanceledContext aborts between steps.
func TestRunCanceledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeInput(t, dir, rawGTD)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := cleaner.New(cleaner.Config{
		InputPath:  in,
		Encoding:   "utf-8",
		OutputPath: filepath.Join(dir, "out.csv"),
	}).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
