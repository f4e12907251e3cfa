// Package ddl defines a small, backend-agnostic model for warehouse table
// definitions, infers that model from a sample of CSV rows, and renders
// CREATE TABLE statements through a per-backend dialect.
//
// Inference is deliberately conservative: a column is only typed as something
// narrower than TEXT when every non-empty sampled value fits that type. The
// widening order is integer -> real -> text; date and timestamp are detected
// against a fixed set of layouts.
package ddl

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{"2006-01-02", "2006/01/02", "01/02/2006"}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// InferTableDef derives a TableDef for the given fully-qualified table name
// from a column list and a sample of raw CSV rows (values as read, missing
// rendered as ""). Rows shorter than the column list are tolerated; the
// missing cells simply mark the trailing columns nullable.
func InferTableDef(fqn string, columns []string, sample [][]string) (TableDef, error) {
	if strings.TrimSpace(fqn) == "" {
		return TableDef{}, fmt.Errorf("ddl: table name must not be empty")
	}
	if len(columns) == 0 {
		return TableDef{}, fmt.Errorf("ddl: at least one column is required")
	}

	defs := make([]ColumnDef, 0, len(columns))
	for i, name := range columns {
		if strings.TrimSpace(name) == "" {
			return TableDef{}, fmt.Errorf("ddl: empty column name at index %d", i)
		}
		kind, nullable := inferColumn(i, sample)
		defs = append(defs, ColumnDef{Name: name, Kind: kind, Nullable: nullable})
	}
	return TableDef{FQN: fqn, Columns: defs}, nil
}

// inferColumn classifies one column across the sample. A column with no
// non-empty values at all stays TEXT and nullable.
func inferColumn(idx int, sample [][]string) (kind string, nullable bool) {
	seen := false
	allInt, allReal, allBool := true, true, true
	allDate, allTimestamp := true, true
	for _, row := range sample {
		if idx >= len(row) {
			nullable = true
			continue
		}
		v := strings.TrimSpace(row[idx])
		if v == "" {
			nullable = true
			continue
		}
		seen = true
		if allInt && !isInt(v) {
			allInt = false
		}
		if allReal && !isReal(v) {
			allReal = false
		}
		if allBool && !isBool(v) {
			allBool = false
		}
		if allDate && !matchesAny(v, dateLayouts) {
			allDate = false
		}
		if allTimestamp && !matchesAny(v, timestampLayouts) {
			allTimestamp = false
		}
	}
	if !seen {
		return KindText, true
	}
	switch {
	case allBool:
		return KindBoolean, nullable
	case allInt:
		return KindInteger, nullable
	case allReal:
		return KindReal, nullable
	case allDate:
		return KindDate, nullable
	case allTimestamp:
		return KindTimestamp, nullable
	default:
		return KindText, nullable
	}
}

// CoerceValue converts one raw CSV cell to the Go value the SQL drivers
// expect for the given logical kind. The empty cell is NULL for every kind.
func CoerceValue(kind, raw string) (any, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil, nil
	}
	switch kind {
	case KindInteger:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ddl: %q is not an integer: %w", v, err)
		}
		return n, nil
	case KindReal:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("ddl: %q is not a number: %w", v, err)
		}
		return f, nil
	case KindBoolean:
		switch strings.ToLower(v) {
		case "1", "t", "true", "y", "yes":
			return true, nil
		case "0", "f", "false", "n", "no":
			return false, nil
		}
		return nil, fmt.Errorf("ddl: %q is not a boolean", v)
	case KindDate:
		t, err := parseAny(v, dateLayouts)
		if err != nil {
			return nil, err
		}
		return t, nil
	case KindTimestamp:
		t, err := parseAny(v, timestampLayouts)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return v, nil
	}
}

func isInt(v string) bool {
	_, err := strconv.ParseInt(v, 10, 64)
	return err == nil
}

func isReal(v string) bool {
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func isBool(v string) bool {
	switch strings.ToLower(v) {
	case "0", "1", "true", "false", "t", "f":
		return true
	}
	return false
}

func matchesAny(v string, layouts []string) bool {
	_, err := parseAny(v, layouts)
	return err == nil
}

func parseAny(v string, layouts []string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("ddl: %q does not match any known layout", v)
}
