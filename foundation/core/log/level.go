// File: level.go
// Title: Log Level Definitions
// Description: Log levels for filtering output. Names and short tags are
//              table driven so the formatters and the parser agree.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard log levels
// - 2025-10-19 v0.2.0: Audit level dropped, name tables

package log

import (
	"strings"
)

// Level represents the importance level of a log message
type Level int

const (
	// LevelTrace is the most verbose level, used for per-token tracing
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	// LevelWarn indicates a failed line or a recoverable problem
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]struct{ long, short string }{
	LevelTrace: {"trace", "TRC"},
	LevelDebug: {"debug", "DBG"},
	LevelInfo:  {"info", "INF"},
	LevelWarn:  {"warn", "WRN"},
	LevelError: {"error", "ERR"},
	LevelFatal: {"fatal", "FTL"},
}

// levelAliases holds accepted spellings besides the canonical names
var levelAliases = map[string]Level{
	"information": LevelInfo,
	"warning":     LevelWarn,
	"err":         LevelError,
}

func (l Level) valid() bool {
	return l >= LevelTrace && l <= LevelFatal
}

// String returns the lower-case level name
func (l Level) String() string {
	if !l.valid() {
		return "unknown"
	}
	return levelNames[l].long
}

// ShortString returns the three-letter tag used by text formatters
func (l Level) ShortString() string {
	if !l.valid() {
		return "???"
	}
	return levelNames[l].short
}

// ShouldLog returns true if this level should be logged given the minimum level
func (l Level) ShouldLog(minLevel Level) bool {
	return l >= minLevel
}

// ParseLevel accepts level names, their short tags and a few aliases,
// case-insensitively
func ParseLevel(level string) (Level, error) {
	s := strings.ToLower(strings.TrimSpace(level))
	for l, names := range levelNames {
		if s == names.long || s == strings.ToLower(names.short) {
			return Level(l), nil
		}
	}
	if l, ok := levelAliases[s]; ok {
		return l, nil
	}
	return LevelInfo, &ParseError{Input: level, Type: "level"}
}

// ParseError represents an error parsing a log configuration value
type ParseError struct {
	Input string
	Type  string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}

// DefaultLevel returns the default log level
func DefaultLevel() Level {
	return LevelInfo
}
