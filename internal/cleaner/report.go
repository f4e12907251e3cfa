package cleaner

import (
	"fmt"
	"sort"
	"strings"
)

// Mismatch records one code value that maps to more than one distinct label.
type Mismatch struct {
	CodeColumn  string
	LabelColumn string
	Code        string
	Labels      []string
}

// Report is the structured outcome of a cleaning run. Console output is
// advisory; this struct is the authoritative record for callers and tests.
type Report struct {
	Job string

	InitialRows    int
	SkippedRows    int // malformed input rows the parser dropped
	MissingGeoRows int // rows removed by the geolocation filter
	FinalRows      int
	RowsDropped    int // InitialRows - FinalRows

	SparseDropped   []string // columns removed at the sparsity threshold
	QuarantineFiles []string // per-column bad-value exports, in column order
	Mismatches      []Mismatch
}

// Summary renders a short multi-line human-readable summary.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "job=%s rows: initial=%d geo_dropped=%d final=%d dropped=%d\n",
		r.Job, r.InitialRows, r.MissingGeoRows, r.FinalRows, r.RowsDropped)
	if len(r.SparseDropped) > 0 {
		fmt.Fprintf(&b, "sparse columns dropped: %s\n", strings.Join(r.SparseDropped, ", "))
	}
	if len(r.QuarantineFiles) > 0 {
		fmt.Fprintf(&b, "quarantine files: %s\n", strings.Join(r.QuarantineFiles, ", "))
	}
	for _, m := range r.Mismatches {
		fmt.Fprintf(&b, "mismatch %s<->%s: code %q has %d labels\n",
			m.CodeColumn, m.LabelColumn, m.Code, len(m.Labels))
	}
	return b.String()
}

// addMismatch appends a mismatch with its labels sorted for determinism.
func (r *Report) addMismatch(codeCol, labelCol, code string, labels []string) {
	sort.Strings(labels)
	r.Mismatches = append(r.Mismatches, Mismatch{
		CodeColumn:  codeCol,
		LabelColumn: labelCol,
		Code:        code,
		Labels:      labels,
	})
}
