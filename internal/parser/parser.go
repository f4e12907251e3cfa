package parser

import (
	"io"

	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/dataset"
)

// Parser turns a byte stream into an in-memory table. The int result is the
// number of malformed rows skipped (soft failures).
type Parser interface {
	Parse(r io.Reader) (*dataset.Table, int, error)
}
