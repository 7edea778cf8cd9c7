// File: diag.go
// Title: Blaze Diagnostics
// Description: Defines the diagnostic context threaded through lexing and
//              parsing and the positioned Diagnostic raised on failure.
//              Diagnostics convert to the structured core error for logging
//              and transport.
// Author: VDFOREVER
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial diagnostics

package diag

import (
	"errors"
	"fmt"
	"strings"

	bzerror "github.com/VDFOREVER/blaze/foundation/core/error"
	"github.com/VDFOREVER/blaze/foundation/scripting/token"
)

// DefaultSource labels input that came without a name
const DefaultSource = "Shell"

// Context is the diagnostic state of one lexing or parsing pass.
// Line and Position are one-based.
type Context struct {
	CodeSource string
	Line       int
	Position   int
}

// NewContext creates a context positioned at the start of source
func NewContext(source string) Context {
	if source == "" {
		source = DefaultSource
	}
	return Context{CodeSource: source, Line: 1, Position: 1}
}

// Location renders the context as source:line:column
func (c Context) Location() string {
	return fmt.Sprintf("%s:%d:%d", c.CodeSource, c.Line, c.Position)
}

// Kind classifies a diagnostic
type Kind int

const (
	// KindLexical is an unrecognized character or malformed literal
	KindLexical Kind = iota

	// KindSyntax is a token that is missing or invalid in its context
	KindSyntax

	// KindEndOfInput is raised when the parser runs past the last token
	KindEndOfInput
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindSyntax:
		return "syntax"
	case KindEndOfInput:
		return "end_of_input"
	default:
		return "unknown"
	}
}

// Title returns the heading used when the diagnostic is printed
func (k Kind) Title() string {
	if k == KindLexical {
		return "Lexical Error"
	}
	return "Syntax Error"
}

// Code returns the structured error code for the kind
func (k Kind) Code() bzerror.Code {
	switch k {
	case KindLexical:
		return bzerror.CodeLexical
	case KindEndOfInput:
		return bzerror.CodeEndOfInput
	default:
		return bzerror.CodeSyntax
	}
}

// Diagnostic is a positioned lexing or parsing failure.
// Line and Column are one-based.
type Diagnostic struct {
	Kind     Kind
	Message  string
	Source   string
	Line     int
	Column   int
	Expected []token.Type
}

func newDiagnostic(kind Kind, ctx Context, message string) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Message: message,
		Source:  ctx.CodeSource,
		Line:    ctx.Line,
		Column:  ctx.Position,
	}
}

// Lexical creates a lexical diagnostic at ctx
func Lexical(ctx Context, message string) *Diagnostic {
	return newDiagnostic(KindLexical, ctx, message)
}

// Syntax creates a syntax diagnostic at ctx
func Syntax(ctx Context, message string) *Diagnostic {
	return newDiagnostic(KindSyntax, ctx, message)
}

// Syntaxf creates a syntax diagnostic with a formatted message
func Syntaxf(ctx Context, format string, args ...interface{}) *Diagnostic {
	return newDiagnostic(KindSyntax, ctx, fmt.Sprintf(format, args...))
}

// Expected creates a syntax diagnostic naming the acceptable token types
func Expected(ctx Context, expected []token.Type) *Diagnostic {
	d := newDiagnostic(KindSyntax, ctx, ExpectedMessage(expected))
	d.Expected = append([]token.Type(nil), expected...)
	return d
}

// EndOfInput creates the diagnostic for a cursor moved past the last token
func EndOfInput(ctx Context) *Diagnostic {
	return newDiagnostic(KindEndOfInput, ctx, "Unexpected end of input")
}

// Error implements the error interface
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s <-= %s:%d:%d", d.Kind.Title(), d.Message, d.Source, d.Line, d.Column)
}

// Location renders the diagnostic position as source:line:column
func (d *Diagnostic) Location() string {
	return fmt.Sprintf("%s:%d:%d", d.Source, d.Line, d.Column)
}

// ToError converts the diagnostic into a structured core error
func (d *Diagnostic) ToError() *bzerror.Error {
	return bzerror.New(d.Error()).
		WithCode(d.Kind.Code()).
		WithSeverity(bzerror.SeverityLow).
		WithDetails(map[string]interface{}{
			"source": d.Source,
			"line":   d.Line,
			"column": d.Column,
		})
}

// As extracts a diagnostic from err
func As(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// ExpectedMessage describes a set of acceptable token types.
// Sets larger than four are summarized by their first three members.
func ExpectedMessage(expected []token.Type) string {
	q := func(t token.Type) string { return "'" + t.String() + "'" }

	var subject string
	switch n := len(expected); {
	case n == 0:
		return "void expected"
	case n == 1:
		subject = q(expected[0]) + " is"
	case n == 2:
		subject = fmt.Sprintf("%s or %s are", q(expected[0]), q(expected[1]))
	case n <= 4:
		quoted := make([]string, n)
		for i, t := range expected {
			quoted[i] = q(t)
		}
		subject = fmt.Sprintf("%s, or %s are", strings.Join(quoted[:n-1], ", "), quoted[n-1])
	default:
		subject = fmt.Sprintf("%s, %s, %s, or one of %d other tokens are",
			q(expected[0]), q(expected[1]), q(expected[2]), n-3)
	}
	return subject + " expected"
}
