package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("planned file", String(FieldPath, "/media/show.mkv"), Int("kept", 2))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, "INFO") {
		t.Errorf("expected level label in %q", line)
	}
	if !strings.Contains(line, "planned file") {
		t.Errorf("expected message in %q", line)
	}
	if !strings.Contains(line, "path=/media/show.mkv") {
		t.Errorf("expected path attr in %q", line)
	}
	if !strings.Contains(line, "kept=2") {
		t.Errorf("expected kept attr in %q", line)
	}
}

func TestConsoleHandlerComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := NewComponentLogger(slog.New(newConsoleHandler(&buf, lvl)), "scanner")

	logger.Info("scan complete")

	if !strings.Contains(buf.String(), "scanner: scan complete") {
		t.Errorf("expected component prefix in %q", buf.String())
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("msg", String(FieldPath, "/media/My Show.mkv"))

	if !strings.Contains(buf.String(), `path="/media/My Show.mkv"`) {
		t.Errorf("expected quoted value in %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("nop logger should not be enabled at any level")
	}
}
