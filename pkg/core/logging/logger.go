// ============================================================================
// Blaze - scripting language front end
// ============================================================================
//
// Package:     logging
// Description: Key/value logging facade over the foundation logger
// Author:      VDFOREVER
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	bzlog "github.com/VDFOREVER/blaze/foundation/core/log"
)

// Level represents log severity (for compatibility)
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l Level) foundation() bzlog.Level {
	switch l {
	case LevelDebug:
		return bzlog.LevelDebug
	case LevelWarn:
		return bzlog.LevelWarn
	case LevelError:
		return bzlog.LevelError
	default:
		return bzlog.LevelInfo
	}
}
