// File: timer.go
// Title: Performance Timer
// Description: Measures one operation, such as executing an input line, and
//              logs its duration when stopped.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with performance timing
// - 2025-10-19 v0.2.0: Checkpoints removed, shared stop path

package log

import (
	"time"
)

// Timer measures the duration of an operation
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation. Completion is
// logged at debug level.
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Stop logs "<operation> completed" and returns the elapsed time. Only the
// first Stop or StopWithError call logs; later calls return 0.
func (t *Timer) Stop() time.Duration {
	return t.finish(" completed", nil)
}

// StopWithError logs "<operation> failed" with err at the timer's level
func (t *Timer) StopWithError(err error) time.Duration {
	t.fields["success"] = false
	return t.finish(" failed", err)
}

func (t *Timer) finish(suffix string, err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true

	elapsed := time.Since(t.startTime)
	t.fields["operation"] = t.operation
	t.fields["duration_ms"] = float64(elapsed.Nanoseconds()) / 1e6

	if t.logger != nil {
		t.logger.log(t.level, t.operation+suffix, err, t.fields)
	}
	return elapsed
}
