// File: sets.go
// Title: Token Sets
// Description: Named groups of token types used by the parser for dispatch
//              and by diagnostics to list what was expected. Order matters:
//              diagnostics name the leading members of a set.
// Author: VDFOREVER
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial token sets

package token

// Set is an ordered group of token types
type Set []Type

// Contains reports whether t is a member of the set
func (s Set) Contains(t Type) bool {
	for _, m := range s {
		if m == t {
			return true
		}
	}
	return false
}

var (
	// VariableAssignment starts a variable declaration
	VariableAssignment = Set{Mut, Fin}

	// Unary holds the operators that may appear before or after an operand
	Unary = Set{Increment, Decrement, Not}

	// Sign holds the operators that are unary only in prefix position
	Sign = Set{Plus, Minus}

	// Binary holds every infix operator
	Binary = Set{
		Plus, Minus, Multiply, Divide, Modulo,
		Equal, NotEqual, Less, LessEqual, Greater, GreaterEqual,
		And, Or,
	}

	// Literal holds the tokens that form a primary expression on their own
	Literal = Set{Alphanumeric, Number, CharArray, Null, True, False}

	// Formula holds the tokens that can start an expression
	Formula = Set{
		Alphanumeric, Number, CharArray, Null, True, False,
		Increment, Decrement, Not,
		Plus, Minus,
	}
)

// IsUnary reports whether t is a unary operator
func IsUnary(t Type) bool { return Unary.Contains(t) }

// IsBinary reports whether t is a binary operator
func IsBinary(t Type) bool { return Binary.Contains(t) }

// IsPrefix reports whether t may appear in prefix operator position
func IsPrefix(t Type) bool { return Unary.Contains(t) || Sign.Contains(t) }

// IsFormulaStart reports whether t can start an expression
func IsFormulaStart(t Type) bool { return Formula.Contains(t) }
