// ============================================================================
// Blaze - scripting language front end
// ============================================================================
//
// Package:     shell
// Description: Styles for the Blaze shell and coloured diagnostics
// Author:      VDFOREVER
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package shell

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	bzdiag "github.com/VDFOREVER/blaze/foundation/scripting/diag"
)

// Color Palette
var (
	ColorPrimary   = lipgloss.Color("#F97316") // Orange
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#FF5555") // Bright red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
)

// Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	ModeStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)
)

// Transcript styles
var (
	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	InputEchoStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	TokenStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	DiagnosticTitleStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	LocationStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// RenderDiagnostic renders "<Title>: <message> <-= <location>" with the
// title in bright red
func RenderDiagnostic(d *bzdiag.Diagnostic) string {
	return DiagnosticTitleStyle.Render(d.Kind.Title()+":") + " " +
		d.Message + " " +
		LocationStyle.Render("<-= "+d.Location())
}

// RenderError renders any error, using RenderDiagnostic for diagnostics
func RenderError(err error) string {
	if d, ok := bzdiag.As(err); ok {
		return RenderDiagnostic(d)
	}
	return ErrorStyle.Render("Error: " + err.Error())
}

// RenderKeyHint renders a single key hint
func RenderKeyHint(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

// indent prefixes every line of s
func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
