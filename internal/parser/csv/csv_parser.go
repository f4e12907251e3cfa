// Package csv parses delimited incident exports into the in-memory table
// model. The reader is configured leniently (LazyQuotes, variable field
// count) because real GTD exports contain unescaped quotes inside narrative
// fields; rows whose width differs from the header are skipped and counted
// rather than failing the whole load.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/dataset"
	"github.com/jimsharma206/UM-TerrorismDW-Project/pkg/records"
)

// Options configures the CSV parser behavior. All fields are optional;
// sensible defaults are applied when a field is zero.
type Options struct {
	// HasHeader indicates whether the first row contains column headers.
	HasHeader bool

	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// HeaderMap maps source header names to canonical keys. Headers not in
	// the map are kept verbatim; GTD field codes such as INT_ANY are
	// case-significant, so there is no implicit lowercasing.
	HeaderMap map[string]string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\ufeff"

// skippedLogLimit caps per-row skip logging so a badly damaged file does not
// flood the console.
const skippedLogLimit = 400

// Parse consumes CSV records from r and returns the parsed table along with
// the number of rows skipped due to parse errors or field-count mismatches.
func (p *Parser) Parse(r io.Reader) (*dataset.Table, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	var headers []string
	var skipped int

	if p.opt.HasHeader {
		h, err := cr.Read()
		if err != nil {
			return nil, 0, fmt.Errorf("read csv header: %w", err)
		}
		headers = p.normalizeHeaders(h)
	}

	var rows []records.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if skipped < skippedLogLimit {
				log.Printf("skipping row %d: %v", line, err)
			}
			skipped++
			continue
		}

		if headers == nil {
			// Headerless input: synthesize names from the first row's width.
			headers = make([]string, len(row))
			for i := range headers {
				headers[i] = fmt.Sprintf("col_%d", i)
			}
		}
		if len(row) != len(headers) {
			if skipped < skippedLogLimit {
				log.Printf("skipping row %d: incorrect number of fields (expected %d, got %d)", line, len(headers), len(row))
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[headers[i]] = emptyToNil(val)
		}
		rows = append(rows, rec)
	}

	if headers == nil {
		headers = []string{}
	}
	cols := make([]string, len(headers))
	copy(cols, headers)
	return dataset.New(cols, rows), skipped, nil
}

// emptyToNil converts an empty string to the missing marker; all other values
// are returned as-is.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// normalizeHeaders produces canonical header keys. It strips a UTF-8 BOM from
// the first cell, trims whitespace, and applies HeaderMap when provided. GTD
// field codes are otherwise passed through unchanged.
func (p *Parser) normalizeHeaders(h []string) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		if p.opt.HeaderMap != nil {
			if m, ok := p.opt.HeaderMap[c]; ok && m != "" {
				res[i] = m
				continue
			}
		}
		res[i] = c
	}
	return res
}
