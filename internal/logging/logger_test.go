package logging

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type captureWriter struct {
	lines []string
}

func (w *captureWriter) Write(p []byte) (int, error) {
	w.lines = append(w.lines, string(p))
	return len(p), nil
}

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	writer := &captureWriter{}
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(writer, lvl))

	logger = logger.With(String(FieldComponent, "switcher"))
	logger.Info("switched rig", Rig("rig_b"), Frame(10))

	if len(writer.lines) != 1 {
		t.Fatalf("expected one log line, got %d", len(writer.lines))
	}
	line := writer.lines[0]
	if !strings.Contains(line, "INFO switcher: switched rig") {
		t.Fatalf("unexpected line format: %q", line)
	}
	if !strings.Contains(line, "rig=rig_b") || !strings.Contains(line, "frame=10") {
		t.Fatalf("expected attrs in line: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	writer := &captureWriter{}
	logger := slog.New(newConsoleHandler(writer, new(slog.LevelVar)))

	logger.Info("note", String("detail", "needs quoting"))

	if len(writer.lines) != 1 {
		t.Fatalf("expected one log line, got %d", len(writer.lines))
	}
	if !strings.Contains(writer.lines[0], `detail="needs quoting"`) {
		t.Fatalf("expected quoted value: %q", writer.lines[0])
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	writer := &captureWriter{}
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(writer, lvl))

	logger.Info("ignored")
	logger.Warn("kept")

	if len(writer.lines) != 1 || !strings.Contains(writer.lines[0], "kept") {
		t.Fatalf("expected only the warn line, got %v", writer.lines)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Handler().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop handler should be disabled at every level")
	}
	// Must not panic.
	logger.Error("dropped", Duration("elapsed", time.Second))
}
