// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. Severity decides the log
//              level an error is reported at and whether it is a user
//              mistake or an operational failure.
// Author: VDFOREVER
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial severity levels

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is a mistake in user input, e.g. a syntax error in a script
	SeverityLow Severity = iota

	// SeverityMedium affects functionality but has a workaround
	SeverityMedium

	// SeverityHigh is an operational failure such as an unreadable datablaze
	SeverityHigh

	// SeverityCritical makes the process unusable
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

// IsOperational returns true for failures that are not caused by user input
func (s Severity) IsOperational() bool {
	return s >= SeverityHigh
}
