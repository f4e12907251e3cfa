// Package file implements a local filesystem-backed data source with optional
// character-set decoding. The GTD export is distributed as Latin-1; wrapping
// the decode here means every consumer downstream sees valid UTF-8.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Local is a filesystem data source bound to a path and a source encoding.
type Local struct {
	path     string
	encoding string
}

// NewLocal returns a Local source for path. encoding selects the on-disk
// character set: "latin1"/"iso-8859-1" enables Latin-1 → UTF-8 decoding,
// "utf-8"/"utf8"/"" passes bytes through untouched.
func NewLocal(path, encoding string) *Local {
	return &Local{path: path, encoding: encoding}
}

// decodedFile couples the transform reader with the underlying file so Close
// releases the descriptor.
type decodedFile struct {
	io.Reader
	f *os.File
}

func (d *decodedFile) Close() error { return d.f.Close() }

// Open opens the configured path for reading.
//
// Behavior:
//   - If the context is already canceled at the time of the call, Open
//     returns the context error immediately without touching the filesystem.
//   - Filesystem errors are wrapped with the path for context while still
//     permitting errors.Is/As checks (e.g. errors.Is(err, os.ErrNotExist)).
//   - An unknown encoding is an error; there is no silent fallback.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	switch strings.ToLower(l.encoding) {
	case "", "utf-8", "utf8":
		return f, nil
	case "latin1", "iso-8859-1":
		return &decodedFile{
			Reader: transform.NewReader(f, charmap.ISO8859_1.NewDecoder()),
			f:      f,
		}, nil
	default:
		_ = f.Close()
		return nil, fmt.Errorf("open %s: unsupported encoding %q", l.path, l.encoding)
	}
}
