// Package datasource abstracts where raw incident data comes from.
package datasource

import (
	"context"
	"io"
)

// Source opens a byte stream for the pipeline to consume. Implementations
// handle transport and character-encoding concerns so the parser always sees
// UTF-8.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
