package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"Warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"ERROR", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func newTestLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: level, Output: &buf, Prefix: "test"})
	l.sink.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l, &buf
}

func TestLogger_Format(t *testing.T) {
	logger, buf := newTestLogger(LogLevelInfo)
	logger.WithFields(map[string]any{"b": 2, "a": "x"}).Info("formatted %s %d", "test", 42)

	want := "2026-01-02T03:04:05.000 [INFO] test: formatted test 42 {a=x, b=2}\n"
	if got := buf.String(); got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newTestLogger(LogLevelWarn)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	for _, absent := range []string{"[DEBUG]", "[INFO]"} {
		if strings.Contains(output, absent) {
			t.Errorf("expected %s to be filtered out", absent)
		}
	}
	for _, present := range []string{"[WARN]", "[ERROR]"} {
		if !strings.Contains(output, present) {
			t.Errorf("expected %s in output", present)
		}
	}
}

func TestLogger_DerivedSharesLevel(t *testing.T) {
	logger, buf := newTestLogger(LogLevelError)
	child := logger.WithComponent("plugins")

	child.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %q", buf.String())
	}

	logger.SetLevel(LogLevelDebug)
	if child.Level() != LogLevelDebug {
		t.Fatalf("child level = %v", child.Level())
	}
	child.Printf("loaded %d", 3)
	if !strings.Contains(buf.String(), "[DEBUG] test: loaded 3 {component=plugins}") {
		t.Errorf("got %q", buf.String())
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	logger, buf := newTestLogger(LogLevelInfo)
	_ = logger.WithField("session", "abc")
	logger.Info("plain")
	if strings.Contains(buf.String(), "session") {
		t.Errorf("parent gained field: %q", buf.String())
	}
}

func TestLogger_SetOutput(t *testing.T) {
	logger, buf1 := newTestLogger(LogLevelInfo)
	var buf2 bytes.Buffer

	logger.Info("to buf1")
	logger.SetOutput(&buf2)
	logger.Info("to buf2")

	if !strings.Contains(buf1.String(), "to buf1") || strings.Contains(buf1.String(), "to buf2") {
		t.Errorf("buf1 = %q", buf1.String())
	}
	if !strings.Contains(buf2.String(), "to buf2") {
		t.Errorf("buf2 = %q", buf2.String())
	}
}

func TestLogger_DisableEnable(t *testing.T) {
	logger, buf := newTestLogger(LogLevelInfo)

	logger.Disable()
	logger.Info("should not appear")
	if buf.Len() != 0 {
		t.Error("expected no output when disabled")
	}

	logger.Enable()
	logger.Info("should appear")
	if buf.Len() == 0 {
		t.Error("expected output when enabled")
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Debug("test")
	NullLogger.Info("test")
	NullLogger.WithComponent("x").Error("test %d", 1)
}

func TestOpenLogOutput(t *testing.T) {
	w, closeFn, err := OpenLogOutput("")
	if err != nil || w != os.Stderr {
		t.Fatalf("OpenLogOutput(\"\") = %v, %v", w, err)
	}
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "paredit.log")
	w, closeFn, err = OpenLogOutput(path)
	if err != nil {
		t.Fatal(err)
	}
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: w})
	logger.Info("hello")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[INFO] hello") {
		t.Errorf("log file = %q", data)
	}

	if _, _, err := OpenLogOutput(filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Error("expected error for missing directory")
	}
}
