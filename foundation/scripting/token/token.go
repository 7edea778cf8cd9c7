// File: token.go
// Title: Blaze Token Definitions
// Description: Defines the lexical token of the Blaze language, the closed
//              set of token types and the named token sets the parser uses
//              for dispatch.
// Author: VDFOREVER
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial token definitions

package token

import (
	"fmt"
)

// Type represents the type of a lexical token
type Type int

const (
	Illegal Type = iota

	// Literal classes
	Alphanumeric // grocery_store
	Number       // 12, 3.5
	CharArray    // "text", 'text'

	// Keywords
	If
	Else
	While
	For
	Mut
	Fin
	Function
	Return
	Null
	True
	False

	// Arithmetic
	Plus
	Minus
	Multiply
	Divide
	Modulo

	// Comparison
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual

	// Logical
	And
	Or

	// Unary
	Increment
	Decrement
	Not

	// Punctuation
	LPar
	RPar
	LBrace
	RBrace
	Dot
	Comma
	Colon
	Assign
	ExpressionEnd
)

var names = [...]string{
	Illegal:       "Illegal",
	Alphanumeric:  "Alphanumeric",
	Number:        "Number",
	CharArray:     "CharArray",
	If:            "If",
	Else:          "Else",
	While:         "While",
	For:           "For",
	Mut:           "Mut",
	Fin:           "Fin",
	Function:      "Function",
	Return:        "Return",
	Null:          "Null",
	True:          "True",
	False:         "False",
	Plus:          "Plus",
	Minus:         "Minus",
	Multiply:      "Multiply",
	Divide:        "Divide",
	Modulo:        "Modulo",
	Equal:         "Equal",
	NotEqual:      "NotEqual",
	Less:          "Less",
	LessEqual:     "LessEqual",
	Greater:       "Greater",
	GreaterEqual:  "GreaterEqual",
	And:           "And",
	Or:            "Or",
	Increment:     "Increment",
	Decrement:     "Decrement",
	Not:           "Not",
	LPar:          "LPar",
	RPar:          "RPar",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	Dot:           "Dot",
	Comma:         "Comma",
	Colon:         "Colon",
	Assign:        "Assign",
	ExpressionEnd: "ExpressionEnd",
}

// spellings is how a type is shown to the user in diagnostics
var spellings = [...]string{
	Illegal:       "illegal",
	Alphanumeric:  "identifier",
	Number:        "number",
	CharArray:     "string",
	If:            "if",
	Else:          "else",
	While:         "while",
	For:           "for",
	Mut:           "mut",
	Fin:           "fin",
	Function:      "function",
	Return:        "return",
	Null:          "null",
	True:          "true",
	False:         "false",
	Plus:          "+",
	Minus:         "-",
	Multiply:      "*",
	Divide:        "/",
	Modulo:        "%",
	Equal:         "==",
	NotEqual:      "!=",
	Less:          "<",
	LessEqual:     "<=",
	Greater:       ">",
	GreaterEqual:  ">=",
	And:           "&&",
	Or:            "||",
	Increment:     "++",
	Decrement:     "--",
	Not:           "!",
	LPar:          "(",
	RPar:          ")",
	LBrace:        "{",
	RBrace:        "}",
	Dot:           ".",
	Comma:         ",",
	Colon:         ":",
	Assign:        "=",
	ExpressionEnd: ";",
}

// String returns the user-facing spelling of the type, e.g. "mut", "(" or
// "identifier" for the literal classes.
func (t Type) String() string {
	if t < 0 || int(t) >= len(spellings) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return spellings[t]
}

// Name returns the identifier of the type, e.g. "Mut" or "LPar"
func (t Type) Name() string {
	if t < 0 || int(t) >= len(names) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return names[t]
}

// Token represents a classified lexical unit.
// Line and Start are zero-based.
type Token struct {
	Type  Type
	Value string
	Line  int
	Start int
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type.Name(), t.Value, t.Line+1, t.Start+1)
}

var keywords = map[string]Type{
	"if":       If,
	"else":     Else,
	"while":    While,
	"for":      For,
	"mut":      Mut,
	"fin":      Fin,
	"function": Function,
	"return":   Return,
	"null":     Null,
	"true":     True,
	"false":    False,
}

// LookupIdent returns the keyword type for ident, or Alphanumeric.
// Keywords are case-sensitive.
func LookupIdent(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return Alphanumeric
}

// IsKeyword reports whether s is a reserved word
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// Keywords returns the reserved words
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}
