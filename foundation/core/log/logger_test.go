// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, context fields, sessions, error
//              logging and timers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial logger tests
// - 2025-10-19 v0.2.0: Session and severity-level coverage

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	mdwerror "github.com/msto63/calc/foundation/core/error"
)

func newBufferLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithConfig(Config{Level: level, Format: FormatJSON, Output: &buf, Name: "test"}), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown too")

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %s", len(lines), buf.String())
	}
	if lines[0]["level"] != "warn" || lines[1]["level"] != "error" {
		t.Errorf("unexpected levels: %v, %v", lines[0]["level"], lines[1]["level"])
	}
}

func TestLogger_WithFieldIsImmutable(t *testing.T) {
	base, buf := newBufferLogger(LevelDebug)
	derived := base.WithField("component", "calc-parser")

	base.Info("base")
	derived.Info("derived", Fields{"tokens": 3})

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if _, ok := lines[0]["component"]; ok {
		t.Error("WithField must not modify the original logger")
	}
	if lines[1]["component"] != "calc-parser" {
		t.Errorf("component = %v", lines[1]["component"])
	}
	if lines[1]["tokens"] != float64(3) {
		t.Errorf("tokens = %v", lines[1]["tokens"])
	}
	if lines[1]["logger"] != "test" {
		t.Errorf("logger = %v", lines[1]["logger"])
	}
}

func TestLogger_WithSession(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)
	logger.WithSession("abc-123").Info("hello")

	lines := decodeLines(t, buf)
	if lines[0]["session_id"] != "abc-123" {
		t.Errorf("session_id = %v", lines[0]["session_id"])
	}
}

func TestLogger_LogError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{"low severity", mdwerror.New("division by zero").WithCode(mdwerror.CodeDivisionByZero), "info"},
		{"high severity", mdwerror.New("bad config").WithCode(mdwerror.CodeConfigError), "error"},
		{"plain error", errors.New("plain"), "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace)
			logger.LogError(tt.err)

			lines := decodeLines(t, buf)
			if len(lines) != 1 {
				t.Fatalf("got %d lines", len(lines))
			}
			if lines[0]["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %v", lines[0]["level"], tt.wantLevel)
			}
		})
	}

	logger, buf := newBufferLogger(LevelTrace)
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Error("LogError(nil) should not write")
	}
}

func TestLogger_ErrorDetailsInJSON(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug)
	err := mdwerror.New("unknown identifier: y").WithCode(mdwerror.CodeUnknownIdentifier)
	logger.WarnWithErr("line failed", err)

	lines := decodeLines(t, buf)
	details, ok := lines[0]["error_details"].(map[string]interface{})
	if !ok {
		t.Fatalf("error_details missing: %v", lines[0])
	}
	if details["code"] != "UNKNOWN_IDENTIFIER" {
		t.Errorf("code = %v", details["code"])
	}
}

func TestLogger_SetLevel(t *testing.T) {
	logger, buf := newBufferLogger(LevelError)
	if logger.IsLevelEnabled(LevelInfo) {
		t.Error("info should be disabled")
	}
	logger.SetLevel(LevelInfo)
	if got := logger.GetLevel(); got != LevelInfo {
		t.Errorf("GetLevel() = %v", got)
	}
	logger.Info("now visible")
	if buf.Len() == 0 {
		t.Error("expected output after SetLevel")
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	logger, buf := newBufferLogger(LevelFatal)
	logger.Error("hidden")
	if buf.Len() != 0 {
		t.Error("error entries should be filtered at fatal level")
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.Error("discarded")
	logger.LogError(errors.New("discarded"))
}

func TestTimer(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug)

	timer := logger.StartTimer("evaluate").WithField("line", "2+3")
	elapsed := timer.Stop()
	if elapsed < 0 {
		t.Errorf("elapsed = %v", elapsed)
	}
	if again := timer.Stop(); again != 0 {
		t.Errorf("second Stop() = %v, want 0", again)
	}

	failing := logger.StartTimer("parse")
	failing.StopWithError(errors.New("empty input"))

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["message"] != "evaluate completed" || lines[0]["line"] != "2+3" {
		t.Errorf("unexpected first entry: %v", lines[0])
	}
	if lines[1]["message"] != "parse failed" || lines[1]["success"] != false {
		t.Errorf("unexpected second entry: %v", lines[1])
	}
}

func TestDefaultLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	replacement := NewNop()
	SetDefault(replacement)
	if GetDefault() != replacement {
		t.Error("SetDefault did not replace the default logger")
	}
}
