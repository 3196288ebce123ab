package svgfx

import (
	"bytes"
	"image"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(nil, slog.LevelError) {
		t.Error("default logger should discard even error-level records")
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	Logger().Debug("probe")
	if !strings.Contains(buf.String(), "probe") {
		t.Error("configured logger did not receive records")
	}

	SetLogger(nil)
	buf.Reset()
	Logger().Error("dropped")
	if buf.Len() != 0 {
		t.Error("SetLogger(nil) did not restore the silent default")
	}
}

func TestEvaluateLogsNodeTraces(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	e := New(image.Rect(0, 0, 2, 2), 1)
	defer e.Close()
	src := NewPixmap(2, 2)
	if _, err := e.Evaluate(src, []Primitive{{Op: Flood{Color: RGB(1, 0, 0)}}}); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Flood") {
		t.Errorf("debug trace missing primitive kind, got %q", out)
	}
}
