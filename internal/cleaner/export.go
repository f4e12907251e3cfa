package cleaner

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/dataset"
	"github.com/jimsharma206/UM-TerrorismDW-Project/pkg/records"
)

// export writes the cleaned table to the configured output path: header row,
// source column order, no index column. An export failure fails the run.
func (c *Cleaner) export(t *dataset.Table) error {
	return writeCSV(c.cfg.OutputPath, t.Columns, t.Rows)
}

// writeCSV writes rows in the given column order to path, creating or
// truncating the file.
func writeCSV(path string, columns []string, rows []records.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	cells := make([]string, len(columns))
	for _, r := range rows {
		for i, col := range columns {
			cells[i] = formatCell(r[col])
		}
		if err := w.Write(cells); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// formatCell renders a cell for CSV output. Missing becomes the empty cell;
// coerced numerics use the shortest exact decimal form (so 1970.0 prints as
// "1970").
func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
