package cleaner

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/zeebo/xxh3"

	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/dataset"
	"github.com/jimsharma206/UM-TerrorismDW-Project/pkg/records"
)

// previewLimit caps how many distinct offending values are echoed to the
// console per column; the quarantine file holds the full set.
const previewLimit = 10

// numericIntegrity finds rows whose raw value in a declared-numeric column is
// present but does not parse as a number. For each such column it exports the
// offending rows (one row per distinct offending value) to
// <quarantine_dir>/bad_<col>.csv, then coerces the column so unparseable
// values become the missing marker. Rows are never removed from the main
// table here.
func (c *Cleaner) numericIntegrity(t *dataset.Table, rep *Report) error {
	dir := c.cfg.QuarantineDir
	if dir == "" {
		dir = filepath.Join(filepath.Dir(c.cfg.OutputPath), "bad_numeric_rows")
	}
	dirReady := false

	for _, col := range c.cfg.NumericColumns {
		if !t.HasColumn(col) {
			log.Printf("numeric column %q not present, skipping", col)
			continue
		}

		// Deduplicate offending rows by the offending value itself; the
		// quarantine file exists for human inspection of distinct bad values,
		// not as a row-level audit log.
		seen := map[uint64]struct{}{}
		var bad []records.Record
		var preview []string
		for _, r := range t.Rows {
			v, ok := r[col]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				continue
			}
			if _, err := strconv.ParseFloat(s, 64); err == nil {
				continue
			}
			h := xxh3.HashString(s)
			if _, dup := seen[h]; dup {
				continue
			}
			seen[h] = struct{}{}
			bad = append(bad, r)
			if len(preview) < previewLimit {
				preview = append(preview, s)
			}
		}

		if len(bad) > 0 {
			if !dirReady {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create quarantine dir: %w", err)
				}
				dirReady = true
			}
			path := filepath.Join(dir, "bad_"+col+".csv")
			if err := writeCSV(path, t.Columns, bad); err != nil {
				return fmt.Errorf("export quarantine %s: %w", path, err)
			}
			rep.QuarantineFiles = append(rep.QuarantineFiles, path)
			log.Printf("non-numeric entries found in %q: %v", col, preview)
			log.Printf("saved: %s", path)
		}

		coerceColumnNumeric(t.Rows, col)
	}
	return nil
}
