// File: validate.go
// Title: AST Validation
// Description: Checks the structural invariants of a tree: declarations
//              carry names and values, parameter lists do not mix calling
//              and functional parameters, operators belong to their sets.
// Author: VDFOREVER
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial validation visitor

package ast

import (
	"fmt"

	"github.com/VDFOREVER/blaze/foundation/scripting/token"
)

// ValidationVisitor validates AST nodes and collects errors
type ValidationVisitor struct {
	BaseVisitor
	errors []error
}

// NewValidationVisitor creates a new validation visitor
func NewValidationVisitor() *ValidationVisitor {
	return &ValidationVisitor{
		errors: make([]error, 0),
	}
}

// Errors returns all validation errors found
func (vv *ValidationVisitor) Errors() []error {
	return vv.errors
}

// HasErrors returns true if any validation errors were found
func (vv *ValidationVisitor) HasErrors() bool {
	return len(vv.errors) > 0
}

func (vv *ValidationVisitor) addError(format string, args ...interface{}) {
	vv.errors = append(vv.errors, fmt.Errorf(format, args...))
}

func (vv *ValidationVisitor) VisitBody(n *Body) interface{} {
	for i, stmt := range n.Nodes {
		if stmt == nil {
			vv.addError("body: statement %d is missing", i)
		}
	}
	return nil
}

func (vv *ValidationVisitor) VisitVariableDeclaration(n *VariableDeclaration) interface{} {
	if n.Name == "" {
		vv.addError("variable declaration: name is empty")
	}
	if n.Value == nil {
		vv.addError("variable declaration %q: value is missing", n.Name)
	}
	return nil
}

func (vv *ValidationVisitor) VisitFunctionDeclaration(n *FunctionDeclaration) interface{} {
	if n.Name == "" {
		vv.addError("function declaration: name is empty")
	}
	for _, p := range n.Parameters {
		if p != nil && p.Mode != Functional {
			vv.addError("function %q: %s parameter in a declaration", n.Name, p.Mode)
		}
	}
	return nil
}

func (vv *ValidationVisitor) VisitCall(n *Call) interface{} {
	if n.Callee == nil {
		vv.addError("call: callee is missing")
	}
	seenKeyword := false
	for _, p := range n.Parameters {
		if p == nil {
			continue
		}
		switch {
		case !p.Mode.IsCalling():
			vv.addError("call %s: %s parameter at a call site", str(n.Callee), p.Mode)
		case p.Mode == Keyword:
			seenKeyword = true
		case seenKeyword:
			vv.addError("call %s: positional parameter follows keyword parameter", str(n.Callee))
		}
	}
	return nil
}

func (vv *ValidationVisitor) VisitParameter(n *Parameter) interface{} {
	switch n.Mode {
	case Positional:
		if n.Value == nil {
			vv.addError("positional parameter: value is missing")
		}
	case Keyword:
		if n.Name == "" || n.Value == nil {
			vv.addError("keyword parameter %q: name and value are required", n.Name)
		}
	case Functional:
		if n.Name == "" || n.TypeName == "" {
			vv.addError("functional parameter %q: name and type are required", n.Name)
		}
	default:
		vv.addError("parameter %q: unknown mode %d", n.Name, int(n.Mode))
	}
	return nil
}

func (vv *ValidationVisitor) VisitMember(n *Member) interface{} {
	if n.Left == nil || n.Right == nil {
		vv.addError("member: both sides are required")
	}
	return nil
}

func (vv *ValidationVisitor) VisitObject(n *Object) interface{} {
	if n.Name == "" {
		vv.addError("object: name is empty")
	}
	return nil
}

func (vv *ValidationVisitor) VisitBinaryOperator(n *BinaryOperator) interface{} {
	if !token.IsBinary(n.Operator) {
		vv.addError("binary operator: %q is not a binary operator", n.Operator.String())
	}
	if n.Left == nil || n.Right == nil {
		vv.addError("binary operator %s: both operands are required", n.Operator)
	}
	return nil
}

func (vv *ValidationVisitor) VisitUnaryOperator(n *UnaryOperator) interface{} {
	switch {
	case token.IsUnary(n.Operator):
	case token.Sign.Contains(n.Operator) && n.Side == SideLeft:
	default:
		vv.addError("unary operator: %q is not valid on the %s side", n.Operator.String(), n.Side)
	}
	if n.Operand == nil {
		vv.addError("unary operator %s: operand is missing", n.Operator)
	}
	return nil
}

// Validate checks the tree rooted at n and returns every problem found
func Validate(n Node) []error {
	vv := NewValidationVisitor()
	Walk(vv, n)
	return vv.Errors()
}
