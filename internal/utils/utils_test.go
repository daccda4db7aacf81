package utils

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestFormatParseISORoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 123456000, time.Local)
	formatted := FormatISO(ts)
	if formatted != "2024-03-09T14:05:07.123456" {
		t.Fatalf("unexpected format %q", formatted)
	}
	parsed, err := ParseISO(formatted)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !parsed.Equal(ts) {
		t.Fatalf("expected %v, got %v", ts, parsed)
	}
}

func TestParseISOEmpty(t *testing.T) {
	if _, err := ParseISO(""); err == nil {
		t.Fatalf("expected error for empty value")
	}
}

func TestRound(t *testing.T) {
	if got := Round(45.6789, 2); got != 45.68 {
		t.Fatalf("expected 45.68, got %v", got)
	}
	if got := Round(0.151249, 4); got != 0.1512 {
		t.Fatalf("expected 0.1512, got %v", got)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	base := errors.New("disk full")
	err := NewAppError("write logs", "context/sample_app.log", base)
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error")
	}
	if !strings.Contains(err.Error(), "write logs: context/sample_app.log: disk full") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if NewAppError("noop", "", nil) != nil {
		t.Fatalf("expected nil for empty error")
	}
}

func TestArtifactError(t *testing.T) {
	base := errors.New("permission denied")
	err := fmt.Errorf("run: %w", NewArtifactError("write", "metrics", "context/metrics.jsonl", base))

	if !errors.Is(err, ErrArtifact) {
		t.Fatalf("expected artifact error")
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause")
	}
	if got := ArtifactOf(err); got != "metrics" {
		t.Fatalf("expected artifact metrics, got %q", got)
	}
	if got := err.Error(); got != "run: write metrics: context/metrics.jsonl: permission denied" {
		t.Fatalf("unexpected message %q", got)
	}

	plain := NewAppError("generate", "prepare output directory", base)
	if errors.Is(plain, ErrArtifact) {
		t.Fatalf("plain AppError must not match ErrArtifact")
	}
	if got := ArtifactOf(plain); got != "" {
		t.Fatalf("expected no artifact, got %q", got)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("warn", true, &buf)
	logger.Info("hidden")
	logger.Warn("shown", slog.String("artifact", "logs"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered: %s", out)
	}
	if !strings.Contains(out, `"artifact":"logs"`) {
		t.Fatalf("expected JSON attribute in output: %s", out)
	}
}
