package file

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLocalOpen covers success, missing file, pre-canceled context, and
// unknown encodings. Table-driven to make behavior clear and extensible.
func TestLocalOpen(t *testing.T) {
	t.Parallel()

	type tc struct {
		name            string
		encoding        string
		prepare         func(t *testing.T) string // returns path to open
		makeCtx         func() context.Context
		wantErrIs       error
		wantErrContains string
		wantContent     string
	}

	writeFile := func(t *testing.T, data []byte) string {
		t.Helper()
		p := filepath.Join(t.TempDir(), "data.csv")
		if err := os.WriteFile(p, data, 0o644); err != nil {
			t.Fatalf("write test file: %v", err)
		}
		return p
	}

	cases := []tc{
		{
			name:        "success_reads_content",
			prepare:     func(t *testing.T) string { return writeFile(t, []byte("hello\nworld")) },
			makeCtx:     context.Background,
			wantContent: "hello\nworld",
		},
		{
			name: "latin1_decodes_to_utf8",
			// 0xE9 is é in Latin-1.
			encoding:    "latin1",
			prepare:     func(t *testing.T) string { return writeFile(t, []byte{'c', 'a', 'f', 0xE9}) },
			makeCtx:     context.Background,
			wantContent: "café",
		},
		{
			name:     "missing_file_errors_with_wrapping",
			prepare:  func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.csv") },
			makeCtx:  context.Background,
			wantErrIs: os.ErrNotExist,
		},
		{
			name:    "canceled_context_short_circuits",
			prepare: func(t *testing.T) string { return writeFile(t, []byte("ignored")) },
			makeCtx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			wantErrIs: context.Canceled,
		},
		{
			name:            "unknown_encoding_errors",
			encoding:        "ebcdic",
			prepare:         func(t *testing.T) string { return writeFile(t, []byte("x")) },
			makeCtx:         context.Background,
			wantErrContains: "unsupported encoding",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := tc.prepare(t)
			rc, err := NewLocal(path, tc.encoding).Open(tc.makeCtx())

			if tc.wantErrIs != nil || tc.wantErrContains != "" {
				if err == nil {
					rc.Close()
					t.Fatal("expected error, got nil")
				}
				if tc.wantErrIs != nil && !errors.Is(err, tc.wantErrIs) {
					t.Fatalf("error = %v, want errors.Is(%v)", err, tc.wantErrIs)
				}
				if tc.wantErrContains != "" && !strings.Contains(err.Error(), tc.wantErrContains) {
					t.Fatalf("error = %v, want substring %q", err, tc.wantErrContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(data) != tc.wantContent {
				t.Fatalf("content = %q, want %q", data, tc.wantContent)
			}
		})
	}
}
