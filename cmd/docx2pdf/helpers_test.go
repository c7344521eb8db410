package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-docx2pdf"
)

// fakeConverter records the input it receives and returns a canned result.
type fakeConverter struct {
	mu     sync.Mutex
	result *docx2pdf.ConvertResult
	err    error
	input  docx2pdf.Input
	calls  int
	closed bool
}

func (f *fakeConverter) Convert(_ context.Context, input docx2pdf.Input) (*docx2pdf.ConvertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeConverter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// testEnv is an Environment backed by buffers and a fixed variable map.
type testEnv struct {
	*Environment
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	vars    map[string]string
	conv    *fakeConverter
	opts    []docx2pdf.Option
	newErr  error
	started time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		vars:    map[string]string{},
		started: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		conv: &fakeConverter{result: &docx2pdf.ConvertResult{
			HTML: []byte("<!DOCTYPE html><html><body><h1>Hello</h1></body></html>"),
			PDF:  []byte("%PDF-1.7 fake"),
		}},
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return te.started },
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return te.vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewConverter: func(opts ...docx2pdf.Option) (Converter, error) {
			te.opts = opts
			if te.newErr != nil {
				return nil, te.newErr
			}
			return te.conv, nil
		},
	}
	return te
}

// writeDOCX writes a placeholder input file; the fake converter never parses it.
func writeDOCX(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("PK\x03\x04 placeholder"), 0o600); err != nil {
		t.Fatalf("writing input: %v", err)
	}
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
