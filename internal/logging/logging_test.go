package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := New(Options{Format: FormatJSON, Out: &buf, RunID: "run-1"})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	l.Info().Int("bytes", 42).Msg("PDF written")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["message"] != "PDF written" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry[RunIDField] != "run-1" {
		t.Errorf("%s = %v, want run-1", RunIDField, entry[RunIDField])
	}
	if entry["bytes"] != float64(42) {
		t.Errorf("bytes = %v, want 42", entry["bytes"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing timestamp")
	}
}

func TestNew_Console(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := New(Options{Out: &buf})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if l.RunID == "" {
		t.Error("RunID should be generated")
	}

	l.Warn().Msg("Unrecognised paragraph style")

	out := buf.String()
	if !strings.Contains(out, "Unrecognised paragraph style") {
		t.Errorf("console output missing message: %q", out)
	}
	if !strings.Contains(out, l.RunID) {
		t.Errorf("console output missing run id: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("console output should not be colored: %q", out)
	}
}

func TestNew_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", true, true},
		{"", false, true},
		{"INFO", false, true},
		{"warn", false, false},
		{"error", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			l, err := New(Options{Level: tt.level, Format: FormatJSON, Out: &buf})
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			l.Debug().Msg("debug-line")
			l.Info().Msg("info-line")

			if got := strings.Contains(buf.String(), "debug-line"); got != tt.wantDebug {
				t.Errorf("debug written = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(buf.String(), "info-line"); got != tt.wantInfo {
				t.Errorf("info written = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{Level: "verbose"}); err == nil {
		t.Error("New() expected error for unknown level")
	}
	if _, err := New(Options{Format: "xml"}); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("New() error = %v, want ErrInvalidFormat", err)
	}
}

func TestNew_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "docx2pdf.log")
	var console bytes.Buffer
	l, err := New(Options{Out: &console, File: path, MaxSizeMB: 1, RunID: "file-run"})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	l.Info().Str("output", "output.pdf").Msg("PDF written")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"run_id":"file-run"`) {
		t.Errorf("log file should hold JSON lines with the run id: %s", data)
	}
	if !strings.Contains(console.String(), "PDF written") {
		t.Error("console should also receive the line")
	}
}

func TestClose_WithoutFile(t *testing.T) {
	t.Parallel()

	var nilLogger *Logger
	if err := nilLogger.Close(); err != nil {
		t.Errorf("nil Close() unexpected error: %v", err)
	}

	l, err := New(Options{Out: &strings.Builder{}})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close() unexpected error: %v", err)
	}
}
