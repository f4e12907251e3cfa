// Package config defines the canonical, JSON-serializable configuration model
// for the GTD cleaning and warehouse-load pipeline. It is intentionally small,
// explicit, and dependency-free so that pipeline files can be loaded from disk
// and passed through the program without additional glue code.
//
// Design goals:
//
//  1. Stability: Changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: Field names in Go mirror the JSON structure used in pipeline
//     files under configs/*.json.
//  3. Minimalism: No third-party config libraries; decoding is performed by the
//     standard library, with a light Options helper for typed access.
//
// Example (trimmed):
//
//	{
//	  "job":      "gtd_clean",
//	  "source":   { "kind": "file", "file": { "path": "globalterrorismdb.csv" } },
//	  "parser":   { "kind": "csv", "options": { "has_header": true, "encoding": "latin1" } },
//	  "cleaning": { "quarantine_dir": "bad_numeric_rows", "output_path": "gtd_cleaned.csv" },
//	  "storage":  { "kind": "mssql", "db": { "dsn": "...", "table": "dbo.FactTerrorEvents" } }
//	}
package config

import "encoding/json"

// Pipeline is the top-level object decoded from a pipeline file. The cleaning
// run only needs Source, Parser, and Cleaning; Storage configures the separate
// warehouse-load step.
type Pipeline struct {
	// Job names the run; it labels metrics and log summaries.
	Job string `json:"job"`

	// Source describes where the raw incident table comes from.
	Source Source `json:"source"`

	// Parser configures how raw bytes become table rows.
	Parser Parser `json:"parser"`

	// Cleaning configures the cleaning pass (quarantine dir, output path,
	// policy knobs). Column lists default to the GTD schema when omitted.
	Cleaning Cleaning `json:"cleaning"`

	// Storage describes the warehouse sink used by the load step.
	Storage Storage `json:"storage"`
}

// Source identifies the data source. Additional kinds can be added over time.
type Source struct {
	// Kind selects the source implementation. Current value: "file".
	Kind string `json:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `json:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the input file.
	Path string `json:"path"`
}

// Parser selects how to parse the raw source into rows/columns.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the parser implementation.
	// For CSV, typical keys include:
	//   has_header (bool), comma (string), trim_space (bool),
	//   encoding (string: "latin1" or "utf-8"), header_map (object)
	Options Options `json:"options"`
}

// Cleaning holds the cleaning pass configuration. Empty fields fall back to
// the GTD defaults declared in internal/cleaner.
type Cleaning struct {
	// QuarantineDir is where per-column bad-value exports are written.
	// Created if absent.
	QuarantineDir string `json:"quarantine_dir"`

	// OutputPath is the destination for the cleaned CSV.
	OutputPath string `json:"output_path"`

	// AlignmentPolicy decides what a code→label mismatch does:
	// "warn" (default) logs and continues; "strict" fails before export.
	AlignmentPolicy string `json:"alignment_policy"`

	// SparseThreshold is the missing-value fraction at or above which a
	// column is dropped. Zero means the default of 0.8.
	SparseThreshold float64 `json:"sparse_threshold"`
}

// Storage selects the sink used by the warehouse load step.
type Storage struct {
	// Kind selects the storage implementation: "postgres", "mssql",
	// "sqlite", or "mysql".
	Kind string `json:"kind"`

	// DB configures the selected sink.
	DB DBConfig `json:"db"`
}

// DBConfig configures the warehouse sink.
type DBConfig struct {
	// DSN is the backend connection string (pgx URL, sqlserver URL, mysql
	// DSN, or sqlite path).
	DSN string `json:"dsn"`

	// Table is the fully qualified destination table, e.g.
	// "dbo.FactTerrorEvents".
	Table string `json:"table"`

	// BatchSize controls rows per bulk insert. Zero means the loader default.
	BatchSize int `json:"batch_size"`

	// AutoCreateTable, when true, infers a table definition from the cleaned
	// file and issues CREATE TABLE before loading.
	AutoCreateTable bool `json:"auto_create_table"`
}

// Options is a small helper to fetch typed values from arbitrary JSON maps
// without introducing third-party configuration libraries. It performs only
// minimal type coercion and returns provided defaults when a key is absent or
// of an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers decode as float64,
// so this method accepts float64 and casts to int.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. Useful for single-character parser settings such as a
// CSV delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// whose values are strings. Non-string values are ignored. Returns an empty
// map when the key is missing or the value is not an object.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		if m, ok := v.(map[string]any); ok {
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		}
	}
	return res
}

// StringSlice returns a []string for key when the value is an array of
// strings (or an array of interface values containing strings). Returns nil
// when the key is missing or the value is not an array.
func (o Options) StringSlice(key string) []string {
	if v, ok := o[key]; ok {
		switch vv := v.(type) {
		case []any:
			out := make([]string, 0, len(vv))
			for _, x := range vv {
				if s, ok := x.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return vv
		}
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler so that a missing or null
// "options" object decodes to a non-nil, empty Options map. This removes the
// need to nil-check Options values at call sites.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
