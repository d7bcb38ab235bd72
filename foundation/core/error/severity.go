// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. The logger picks its
//              level from the severity when logging a coded error.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2025-10-19 v0.2.0: Severity mapping for calculator codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a user input error that aborts only the current line
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but has workarounds
	SeverityMedium

	// SeverityHigh indicates a serious error, e.g. an unreadable configuration
	SeverityHigh

	// SeverityCritical indicates an error that makes the program unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeEnvironmentError:
		return SeverityCritical

	case CodeConfigError, CodeInvalidConfig, CodeInternal:
		return SeverityHigh

	case CodeEmptyInput, CodeInvalidExpression, CodeUnknownIdentifier,
		CodeDivisionByZero, CodeDuplicateDeclaration, CodeMalformedDeclaration,
		CodeInvalidInput, CodeNotFound:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
