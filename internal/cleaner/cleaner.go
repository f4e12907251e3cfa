// Package cleaner implements the GTD table-cleaning pass: a fixed, ordered
// sequence of normalization, coercion, validation, and pruning steps over an
// in-memory table, ending in a CSV export plus a structured report.
//
// The pass is deterministic and single-threaded. The only row-dropping step
// is the geolocation filter; every other step either rewrites values in place
// or removes whole columns. Side artifacts (per-column quarantine files) are
// written during the numeric integrity step and never remove rows from the
// main table.
package cleaner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/dataset"
	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/datasource"
	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/datasource/file"
	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/metrics"
	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/parser"
	csvparser "github.com/jimsharma206/UM-TerrorismDW-Project/internal/parser/csv"
)

// Alignment policies. Warn logs mismatches and continues (the historical
// behavior); Strict turns any mismatch into a run failure before export.
const (
	PolicyWarn   = "warn"
	PolicyStrict = "strict"
)

// Config parameterizes a cleaning run. Zero values for the column lists fall
// back to the GTD defaults in gtd.go; InputPath and OutputPath are required.
type Config struct {
	Job           string
	InputPath     string
	Encoding      string // "latin1" (default) or "utf-8"
	QuarantineDir string
	OutputPath    string

	Comma     rune
	HeaderMap map[string]string

	AlignmentPolicy string
	SparseThreshold float64

	Placeholders    []string
	MissingLiterals []string
	BinaryColumns   []string
	NumericColumns  []string
	FillUnknown     []string
	RenameMap       map[string]string
	DropList        []string
	AlignmentPairs  []AlignmentPair
}

// Cleaner executes the cleaning pass described by its Config.
type Cleaner struct{ cfg Config }

// ErrAlignment is returned (wrapped) when the strict alignment policy rejects
// the dataset.
var ErrAlignment = errors.New("code/label alignment mismatch")

// New returns a Cleaner with defaults applied for any unset Config field.
func New(cfg Config) *Cleaner {
	if cfg.Job == "" {
		cfg.Job = "gtd_clean"
	}
	if cfg.Encoding == "" {
		cfg.Encoding = "latin1"
	}
	if cfg.Comma == 0 {
		cfg.Comma = ','
	}
	if cfg.AlignmentPolicy == "" {
		cfg.AlignmentPolicy = PolicyWarn
	}
	if cfg.SparseThreshold == 0 {
		cfg.SparseThreshold = DefaultSparseThreshold
	}
	if cfg.Placeholders == nil {
		cfg.Placeholders = PlaceholderTokens
	}
	if cfg.MissingLiterals == nil {
		cfg.MissingLiterals = MissingLiterals
	}
	if cfg.BinaryColumns == nil {
		cfg.BinaryColumns = BinaryColumns
	}
	if cfg.NumericColumns == nil {
		cfg.NumericColumns = NumericColumns
	}
	if cfg.FillUnknown == nil {
		cfg.FillUnknown = FillUnknownColumns
	}
	if cfg.RenameMap == nil {
		cfg.RenameMap = RenameMap
	}
	if cfg.DropList == nil {
		cfg.DropList = DropColumns
	}
	if cfg.AlignmentPairs == nil {
		cfg.AlignmentPairs = AlignmentPairs
	}
	return &Cleaner{cfg: cfg}
}

// Run executes the full cleaning pass and returns the cleaned table together
// with the run report. The table has been exported to cfg.OutputPath when the
// returned error is nil.
func (c *Cleaner) Run(ctx context.Context) (*dataset.Table, *Report, error) {
	rep := &Report{Job: c.cfg.Job}

	t, err := c.load(ctx, rep)
	if err != nil {
		return nil, rep, err
	}

	rep.InitialRows = t.Len()
	log.Printf("initial rows: %d", rep.InitialRows)

	steps := []struct {
		name string
		fn   func(*dataset.Table, *Report) error
	}{
		{"normalize_text", c.normalizeText},
		{"coerce_binary", c.coerceBinary},
		{"geo_filter", c.geoFilter},
		{"fill_unknown", c.fillUnknown},
		{"alignment_check", c.checkAlignment},
		{"numeric_integrity", c.numericIntegrity},
		{"rename_columns", c.renameColumns},
		{"drop_columns", c.dropListed},
		{"drop_sparse", c.dropSparse},
	}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, rep, err
		}
		start := time.Now()
		err := s.fn(t, rep)
		metrics.RecordStep(c.cfg.Job, s.name, err, time.Since(start))
		if err != nil {
			return nil, rep, fmt.Errorf("%s: %w", s.name, err)
		}
	}

	rep.FinalRows = t.Len()
	rep.RowsDropped = rep.InitialRows - rep.FinalRows
	log.Printf("final rows: %d", rep.FinalRows)
	log.Printf("total rows dropped: %d", rep.RowsDropped)
	metrics.RecordRow(c.cfg.Job, "cleaned", int64(rep.FinalRows))
	metrics.RecordRow(c.cfg.Job, "dropped", int64(rep.RowsDropped))

	start := time.Now()
	err = c.export(t)
	metrics.RecordStep(c.cfg.Job, "export", err, time.Since(start))
	if err != nil {
		return nil, rep, err
	}
	log.Printf("cleaned dataset saved to: %s", c.cfg.OutputPath)

	return t, rep, nil
}

// load reads and parses the input file. A missing or undecodable file aborts
// the run; malformed individual rows are skipped and counted.
func (c *Cleaner) load(ctx context.Context, rep *Report) (*dataset.Table, error) {
	start := time.Now()
	t, skipped, err := c.parseInput(ctx)
	metrics.RecordStep(c.cfg.Job, "load", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	rep.SkippedRows = skipped
	if skipped > 0 {
		log.Printf("skipped %d malformed input rows", skipped)
	}
	return t, nil
}

func (c *Cleaner) parseInput(ctx context.Context) (*dataset.Table, int, error) {
	var src datasource.Source = file.NewLocal(c.cfg.InputPath, c.cfg.Encoding)
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()

	var p parser.Parser = csvparser.NewParser(csvparser.Options{
		HasHeader: true,
		Comma:     c.cfg.Comma,
		TrimSpace: true,
		HeaderMap: c.cfg.HeaderMap,
	})
	return p.Parse(rc)
}

// typedColumns returns the set of declared-numeric and binary columns, i.e.
// the columns that are NOT text-typed for placeholder mapping purposes.
func (c *Cleaner) typedColumns() map[string]struct{} {
	set := make(map[string]struct{}, len(c.cfg.BinaryColumns)+len(c.cfg.NumericColumns))
	for _, col := range c.cfg.BinaryColumns {
		set[col] = struct{}{}
	}
	for _, col := range c.cfg.NumericColumns {
		set[col] = struct{}{}
	}
	return set
}

// asKey renders a cell value as a stable string key for grouping.
func asKey(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// lowerSet builds a lookup set of lowercased tokens.
func lowerSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[strings.ToLower(t)] = struct{}{}
	}
	return set
}
