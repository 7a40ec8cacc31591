package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// captureLogs swaps the package logger for a buffer-backed JSON logger for
// the duration of one test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := defaultLogger
	defaultLogger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { defaultLogger = saved })
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"ERROR", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if got := ParseFormat("json"); got != FormatJSON {
		t.Errorf("ParseFormat(json) = %v", got)
	}
	if got := ParseFormat("JSON"); got != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %v", got)
	}
	if got := ParseFormat("text"); got != FormatText {
		t.Errorf("ParseFormat(text) = %v", got)
	}
	if got := ParseFormat(""); got != FormatText {
		t.Errorf("ParseFormat(empty) = %v", got)
	}
}

func TestRunIDContext(t *testing.T) {
	ctx := context.Background()
	if got := GetRunID(ctx); got != "" {
		t.Errorf("GetRunID on empty context = %q", got)
	}

	ctx = WithRunID(ctx, "run-42")
	if got := GetRunID(ctx); got != "run-42" {
		t.Errorf("GetRunID = %q, want run-42", got)
	}

	if logger := LoggerFromContext(ctx); logger == nil {
		t.Error("LoggerFromContext returned nil")
	}
}

func TestPipelineLogsCarryRunID(t *testing.T) {
	buf := captureLogs(t)
	ctx := WithRunID(context.Background(), "run-42")

	PipelineStart(ctx, "hierarchy", "en", "dump", "dump.csv.gz")
	PipelineDone(ctx, "hierarchy", "en", 5*time.Millisecond, "edges", 3)
	LanguageError(ctx, "nouns", "de", context.Canceled)
	ScanProgress(ctx, "dump.csv.gz", 1000000)

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d log lines, want 4:\n%s", len(lines), out)
	}
	for i, line := range lines {
		if !strings.Contains(line, `"run_id":"run-42"`) {
			t.Errorf("line %d missing run_id attr: %s", i, line)
		}
	}
	if !strings.Contains(lines[0], `"msg":"pipeline_start"`) {
		t.Errorf("first line is not pipeline_start: %s", lines[0])
	}
}

func TestPipelineLogsWithoutRunID(t *testing.T) {
	buf := captureLogs(t)

	PipelineStart(context.Background(), "wiki", "en")
	if strings.Contains(buf.String(), "run_id") {
		t.Errorf("unexpected run_id attr without one in context: %s", buf.String())
	}
}
