// ============================================================================
// Blaze - scripting language front end
// ============================================================================
//
// Package:     shell
// Description: Shell modes, transcript entries and async messages
// Author:      VDFOREVER
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package shell

// Mode selects what the shell does with a line
type Mode int

const (
	ModeParser Mode = iota
	ModeLexer
)

// String returns the mode name shown in the header
func (m Mode) String() string {
	switch m {
	case ModeLexer:
		return "lexer"
	case ModeParser:
		return "parser"
	default:
		return "unknown"
	}
}

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == ModeLexer {
		return ModeParser
	}
	return ModeLexer
}

// Entry is one evaluated line in the transcript
type Entry struct {
	Input      string
	Mode       Mode
	OK         bool
	Statements int
	Diagnostic string
	Output     string
}

// evaluatedMsg is sent when a line has been lexed or parsed
type evaluatedMsg struct {
	entry Entry
}
