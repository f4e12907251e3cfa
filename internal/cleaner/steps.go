package cleaner

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/dataset"
	"github.com/jimsharma206/UM-TerrorismDW-Project/pkg/records"
)

// normalizeText lowercases and trims every string cell, maps NA/NaN literal
// renderings to missing everywhere, and maps placeholder tokens to missing in
// text-typed columns. Declared-numeric and binary columns keep placeholder
// strings so the numeric integrity step can quarantine them.
func (c *Cleaner) normalizeText(t *dataset.Table, _ *Report) error {
	placeholders := lowerSet(c.cfg.Placeholders)
	literals := lowerSet(c.cfg.MissingLiterals)
	typed := c.typedColumns()

	for _, r := range t.Rows {
		for _, col := range t.Columns {
			v, ok := r[col]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				continue
			}
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" {
				r[col] = nil
				continue
			}
			if _, hit := literals[s]; hit {
				r[col] = nil
				continue
			}
			if _, isTyped := typed[col]; !isTyped {
				if _, hit := placeholders[s]; hit {
					r[col] = nil
					continue
				}
			}
			r[col] = s
		}
	}
	return nil
}

// coerceBinary converts the fixed binary/ternary code columns to numeric.
// Unparseable values become missing; no rows are dropped here.
func (c *Cleaner) coerceBinary(t *dataset.Table, _ *Report) error {
	for _, col := range c.cfg.BinaryColumns {
		if !t.HasColumn(col) {
			log.Printf("binary column %q not present, skipping", col)
			continue
		}
		coerceColumnNumeric(t.Rows, col)
	}
	return nil
}

// geoFilter reports and drops rows with missing latitude or longitude. This
// is the only step that removes rows from the table. Latitude and longitude
// are contract columns; their absence is a hard failure.
func (c *Cleaner) geoFilter(t *dataset.Table, rep *Report) error {
	for _, col := range []string{"latitude", "longitude"} {
		if !t.HasColumn(col) {
			return fmt.Errorf("required column %q missing from input", col)
		}
	}
	dropped := t.Filter(func(r records.Record) bool {
		return r["latitude"] != nil && r["longitude"] != nil
	})
	rep.MissingGeoRows = dropped
	log.Printf("rows dropped due to missing lat/lon: %d", dropped)
	return nil
}

// fillUnknown replaces missing values in the configured categorical columns
// with the literal "unknown".
func (c *Cleaner) fillUnknown(t *dataset.Table, _ *Report) error {
	for _, col := range c.cfg.FillUnknown {
		if !t.HasColumn(col) {
			log.Printf("fill column %q not present, skipping", col)
			continue
		}
		for _, r := range t.Rows {
			if v, ok := r[col]; !ok || v == nil {
				r[col] = "unknown"
			}
		}
	}
	return nil
}

// checkAlignment verifies each code column maps to exactly one label value.
// Under the warn policy the findings are diagnostic only; under strict any
// mismatch fails the run before export.
func (c *Cleaner) checkAlignment(t *dataset.Table, rep *Report) error {
	for _, pair := range c.cfg.AlignmentPairs {
		if !t.HasColumn(pair.Code) || !t.HasColumn(pair.Label) {
			continue
		}
		labelsByCode := map[string]map[string]struct{}{}
		for _, r := range t.Rows {
			code := r[pair.Code]
			if code == nil {
				continue
			}
			label := r[pair.Label]
			if label == nil {
				continue
			}
			key := asKey(code)
			set := labelsByCode[key]
			if set == nil {
				set = map[string]struct{}{}
				labelsByCode[key] = set
			}
			set[asKey(label)] = struct{}{}
		}
		for code, labels := range labelsByCode {
			if len(labels) <= 1 {
				continue
			}
			all := make([]string, 0, len(labels))
			for l := range labels {
				all = append(all, l)
			}
			rep.addMismatch(pair.Code, pair.Label, code, all)
			log.Printf("MISMATCH in %s <-> %s: code %q maps to %d labels", pair.Code, pair.Label, code, len(labels))
		}
	}
	if c.cfg.AlignmentPolicy == PolicyStrict && len(rep.Mismatches) > 0 {
		return fmt.Errorf("%d code(s) with ambiguous labels: %w", len(rep.Mismatches), ErrAlignment)
	}
	return nil
}

// renameColumns applies the raw-code → readable-name map.
func (c *Cleaner) renameColumns(t *dataset.Table, _ *Report) error {
	for from, to := range c.cfg.RenameMap {
		t.Rename(from, to)
	}
	return nil
}

// dropListed removes the explicit drop list; absent columns are ignored.
func (c *Cleaner) dropListed(t *dataset.Table, _ *Report) error {
	t.Drop(c.cfg.DropList...)
	return nil
}

// dropSparse removes any column whose missing fraction is at or above the
// sparsity threshold and reports the dropped names.
func (c *Cleaner) dropSparse(t *dataset.Table, rep *Report) error {
	var sparse []string
	for _, col := range t.Columns {
		if t.MissingFraction(col) >= c.cfg.SparseThreshold {
			sparse = append(sparse, col)
		}
	}
	if len(sparse) == 0 {
		log.Printf("no sparse columns at threshold %.0f%%", c.cfg.SparseThreshold*100)
		return nil
	}
	dropped := t.Drop(sparse...)
	rep.SparseDropped = dropped
	log.Printf("dropping sparse columns (>=%.0f%% missing): %v", c.cfg.SparseThreshold*100, dropped)
	return nil
}

// coerceColumnNumeric rewrites every string value in col to float64, or to
// the missing marker when it does not parse. Non-string values (already
// numeric or missing) pass through.
func coerceColumnNumeric(rows []records.Record, col string) {
	for _, r := range rows {
		v, ok := r[col]
		if !ok || v == nil {
			continue
		}
		s, isStr := v.(string)
		if !isStr {
			continue
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			r[col] = f
		} else {
			r[col] = nil
		}
	}
}
