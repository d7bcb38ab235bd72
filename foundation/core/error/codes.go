// File: codes.go
// Title: Error Code Definitions
// Description: Defines standardized error codes for consistent error
//              classification across calc. The calculator codes mirror the
//              error kinds of the language pipeline; the generic codes are
//              used by configuration and the outer surfaces.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-10-19 v0.2.0: Calculator codes, platform codes removed

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Calculator language
	CodeEmptyInput           Code = "EMPTY_INPUT"
	CodeInvalidExpression    Code = "INVALID_EXPRESSION"
	CodeUnknownIdentifier    Code = "UNKNOWN_IDENTIFIER"
	CodeDivisionByZero       Code = "DIVISION_BY_ZERO"
	CodeDuplicateDeclaration Code = "DUPLICATE_DECLARATION"
	CodeMalformedDeclaration Code = "MALFORMED_DECLARATION"

	// Configuration and environment
	CodeConfigError      Code = "CONFIG_ERROR"
	CodeInvalidConfig    Code = "INVALID_CONFIG"
	CodeEnvironmentError Code = "ENVIRONMENT_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeEmptyInput, CodeInvalidExpression, CodeUnknownIdentifier,
		CodeDivisionByZero, CodeDuplicateDeclaration, CodeMalformedDeclaration,
		CodeConfigError, CodeInvalidConfig, CodeEnvironmentError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeEmptyInput, CodeInvalidExpression, CodeMalformedDeclaration:
		return "syntax"
	case CodeUnknownIdentifier, CodeDivisionByZero, CodeDuplicateDeclaration:
		return "evaluation"
	case CodeConfigError, CodeInvalidConfig, CodeEnvironmentError:
		return "configuration"
	default:
		return "generic"
	}
}
