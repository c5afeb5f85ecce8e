// ABOUTME: Tests for logger configuration
// ABOUTME: Verifies level filtering, JSON output and the debug log file

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range tests {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", "text")

	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("expected info to be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("expected warn to be logged")
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "json").Info("hello", "page", "/dashboard")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "hello" || entry["page"] != "/dashboard" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestInit_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init(Options{Output: &buf, Level: "debug"})
	slog.Debug("from default")

	if !strings.Contains(buf.String(), "from default") {
		t.Errorf("expected default logger to write to buffer, got %q", buf.String())
	}
}

func TestOpenDebugLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	w, err := OpenDebugLog(dir)
	if err != nil {
		t.Fatalf("OpenDebugLog failed: %v", err)
	}
	w.Write([]byte("line\n"))
	w.Close()

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	if err != nil {
		t.Fatalf("expected debug.log: %v", err)
	}
	if string(data) != "line\n" {
		t.Errorf("unexpected contents %q", data)
	}
}

func TestOpenDebugLog_EmptyDirDiscards(t *testing.T) {
	w, err := OpenDebugLog("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := w.Write([]byte("x")); err != nil {
		t.Errorf("expected discard writer, got %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}
