// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across Blaze for classifying
//              lexical and syntax diagnostics as well as configuration,
//              storage and transport failures.
// Author: VDFOREVER
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial code set for the scripting pipeline and services

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown       Code = "UNKNOWN"
	CodeInternal      Code = "INTERNAL"
	CodeNotFound      Code = "NOT_FOUND"
	CodeInvalidInput  Code = "INVALID_INPUT"
	CodeAlreadyExists Code = "ALREADY_EXISTS"

	// Scripting pipeline
	CodeLexical    Code = "LEXICAL"
	CodeSyntax     Code = "SYNTAX"
	CodeEndOfInput Code = "END_OF_INPUT"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Storage and transport
	CodeDatabaseError      Code = "DATABASE_ERROR"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsScripting reports whether the code belongs to a lexing or parsing diagnostic
func (c Code) IsScripting() bool {
	switch c {
	case CodeLexical, CodeSyntax, CodeEndOfInput:
		return true
	default:
		return false
	}
}

// defaultSeverity returns the severity a code gets when none was set explicitly
func defaultSeverity(code Code) Severity {
	switch code {
	case CodeLexical, CodeSyntax, CodeEndOfInput, CodeInvalidInput, CodeNotFound, CodeAlreadyExists:
		return SeverityLow
	case CodeConfigError, CodeInvalidConfig, CodeServiceUnavailable:
		return SeverityMedium
	case CodeDatabaseError, CodeInternal:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
