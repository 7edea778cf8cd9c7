// ============================================================================
// Blaze - scripting language front end
// ============================================================================
//
// Package:     version
// Description: Central version management for the CLI, server and datablaze
// Author:      VDFOREVER
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Language and tooling version
	Blaze = "0.0.1a"

	// Component versions
	Lexer  = "0.0.1a"
	Parser = "0.0.1a"
	Server = "0.0.1a"

	// DatablazeFormat is the schema version written into new datablazes
	DatablazeFormat = 1
)

// Set by the linker: -X github.com/VDFOREVER/blaze/pkg/core/version.Commit=...
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "lexer":
		return Lexer
	case "parser":
		return Parser
	case "server":
		return Server
	default:
		return Blaze
	}
}

// String returns the full version line printed by `blaze version`
func String() string {
	return fmt.Sprintf("Blaze %s (commit %s, built %s, %s %s/%s)",
		Blaze, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
