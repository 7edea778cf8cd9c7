// File: nodes.go
// Title: Blaze AST Node Definitions
// Description: Defines the closed set of AST node variants produced by the
//              parser: the statement body, declarations, calls, member
//              chains, operators and literals. Every node owns its children.
// Author: VDFOREVER
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial AST node definitions

package ast

import (
	"strconv"
	"strings"

	"github.com/VDFOREVER/blaze/foundation/scripting/token"
)

// Node is implemented by every AST variant. The unexported marker method
// keeps the set of variants closed to this package.
type Node interface {
	// Kind returns the variant tag
	Kind() Kind

	// String renders the node as Blaze source
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	node()
}

// Kind tags an AST variant
type Kind int

const (
	KindBody Kind = iota
	KindVariableDeclaration
	KindFunctionDeclaration
	KindParameter
	KindCall
	KindMember
	KindObject
	KindBinaryOperator
	KindUnaryOperator
	KindNumberLiteral
	KindStringLiteral
	KindBooleanLiteral
	KindNullLiteral
)

var kindNames = [...]string{
	KindBody:                "Body",
	KindVariableDeclaration: "VariableDeclaration",
	KindFunctionDeclaration: "FunctionDeclaration",
	KindParameter:           "Parameter",
	KindCall:                "Call",
	KindMember:              "Member",
	KindObject:              "Object",
	KindBinaryOperator:      "BinaryOperator",
	KindUnaryOperator:       "UnaryOperator",
	KindNumberLiteral:       "NumberLiteral",
	KindStringLiteral:       "StringLiteral",
	KindBooleanLiteral:      "BooleanLiteral",
	KindNullLiteral:         "NullLiteral",
}

// String returns the variant name
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Body is the root node: the statements in source order
type Body struct {
	Nodes []Node
}

// VariableDeclaration is `mut|fin name[: Type] = Value`
type VariableDeclaration struct {
	Name    string
	Type    string // empty when not declared
	Mutable bool   // mut, as opposed to fin
	Value   Node
}

// FunctionDeclaration is `function name(p: T, ...)[: ReturnType]`
type FunctionDeclaration struct {
	Name       string
	ReturnType string // empty when not declared
	Parameters []*Parameter
}

// ParameterMode distinguishes calling parameters from functional ones
type ParameterMode int

const (
	// Positional is a bare call argument
	Positional ParameterMode = iota
	// Keyword is a `name = value` call argument
	Keyword
	// Functional is a `name: Type` declaration parameter
	Functional
)

// String returns the string representation of the mode
func (m ParameterMode) String() string {
	switch m {
	case Positional:
		return "positional"
	case Keyword:
		return "keyword"
	case Functional:
		return "functional"
	default:
		return "unknown"
	}
}

// IsCalling reports whether the mode belongs to a call site
func (m ParameterMode) IsCalling() bool {
	return m == Positional || m == Keyword
}

// Parameter is one item of a call or declaration parameter list.
// Positional uses Value, Keyword uses Name and Value, Functional uses
// Name and TypeName.
type Parameter struct {
	Mode     ParameterMode
	Name     string
	Value    Node
	TypeName string
}

// Call is a callee applied to calling parameters
type Call struct {
	Callee     Node
	Parameters []*Parameter
}

// Member is `Left.Right`. Chains lean right: a.b.c is Member(a, Member(b, c)).
type Member struct {
	Left  Node
	Right Node
}

// Object references a name
type Object struct {
	Name string
}

// BinaryOperator is `Left Operator Right`
type BinaryOperator struct {
	Operator token.Type
	Left     Node
	Right    Node
}

// Side records where a unary operator stood relative to its operand
type Side int

const (
	// SideLeft is a prefix operator: !x
	SideLeft Side = iota
	// SideRight is a postfix operator: x++
	SideRight
)

// String returns the string representation of the side
func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// UnaryOperator applies Operator to Operand
type UnaryOperator struct {
	Operator token.Type
	Operand  Node
	Side     Side
}

// NumberLiteral is a numeric literal; Raw keeps the source text
type NumberLiteral struct {
	Value float64
	Raw   string
}

// StringLiteral holds the unescaped literal value
type StringLiteral struct {
	Value string
}

// BooleanLiteral is true or false
type BooleanLiteral struct {
	Value bool
}

// NullLiteral is null
type NullLiteral struct{}

func (*Body) node()                {}
func (*VariableDeclaration) node() {}
func (*FunctionDeclaration) node() {}
func (*Parameter) node()           {}
func (*Call) node()                {}
func (*Member) node()              {}
func (*Object) node()              {}
func (*BinaryOperator) node()      {}
func (*UnaryOperator) node()       {}
func (*NumberLiteral) node()       {}
func (*StringLiteral) node()       {}
func (*BooleanLiteral) node()      {}
func (*NullLiteral) node()         {}

func (*Body) Kind() Kind                { return KindBody }
func (*VariableDeclaration) Kind() Kind { return KindVariableDeclaration }
func (*FunctionDeclaration) Kind() Kind { return KindFunctionDeclaration }
func (*Parameter) Kind() Kind           { return KindParameter }
func (*Call) Kind() Kind                { return KindCall }
func (*Member) Kind() Kind              { return KindMember }
func (*Object) Kind() Kind              { return KindObject }
func (*BinaryOperator) Kind() Kind      { return KindBinaryOperator }
func (*UnaryOperator) Kind() Kind       { return KindUnaryOperator }
func (*NumberLiteral) Kind() Kind       { return KindNumberLiteral }
func (*StringLiteral) Kind() Kind       { return KindStringLiteral }
func (*BooleanLiteral) Kind() Kind      { return KindBooleanLiteral }
func (*NullLiteral) Kind() Kind         { return KindNullLiteral }

func (n *Body) Accept(v Visitor) interface{}                { return v.VisitBody(n) }
func (n *VariableDeclaration) Accept(v Visitor) interface{} { return v.VisitVariableDeclaration(n) }
func (n *FunctionDeclaration) Accept(v Visitor) interface{} { return v.VisitFunctionDeclaration(n) }
func (n *Parameter) Accept(v Visitor) interface{}           { return v.VisitParameter(n) }
func (n *Call) Accept(v Visitor) interface{}                { return v.VisitCall(n) }
func (n *Member) Accept(v Visitor) interface{}              { return v.VisitMember(n) }
func (n *Object) Accept(v Visitor) interface{}              { return v.VisitObject(n) }
func (n *BinaryOperator) Accept(v Visitor) interface{}      { return v.VisitBinaryOperator(n) }
func (n *UnaryOperator) Accept(v Visitor) interface{}       { return v.VisitUnaryOperator(n) }
func (n *NumberLiteral) Accept(v Visitor) interface{}       { return v.VisitNumberLiteral(n) }
func (n *StringLiteral) Accept(v Visitor) interface{}       { return v.VisitStringLiteral(n) }
func (n *BooleanLiteral) Accept(v Visitor) interface{}      { return v.VisitBooleanLiteral(n) }
func (n *NullLiteral) Accept(v Visitor) interface{}         { return v.VisitNullLiteral(n) }

// String renders each statement terminated by ';' on its own line
func (n *Body) String() string {
	var sb strings.Builder
	for i, stmt := range n.Nodes {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(str(stmt))
		sb.WriteByte(';')
	}
	return sb.String()
}

func (n *VariableDeclaration) String() string {
	var sb strings.Builder
	if n.Mutable {
		sb.WriteString("mut ")
	} else {
		sb.WriteString("fin ")
	}
	sb.WriteString(n.Name)
	if n.Type != "" {
		sb.WriteString(": ")
		sb.WriteString(n.Type)
	}
	sb.WriteString(" = ")
	sb.WriteString(str(n.Value))
	return sb.String()
}

func (n *FunctionDeclaration) String() string {
	s := "function " + n.Name + "(" + joinParameters(n.Parameters) + ")"
	if n.ReturnType != "" {
		s += ": " + n.ReturnType
	}
	return s
}

func (n *Parameter) String() string {
	switch n.Mode {
	case Keyword:
		return n.Name + "=" + str(n.Value)
	case Functional:
		return n.Name + ": " + n.TypeName
	default:
		return str(n.Value)
	}
}

func (n *Call) String() string {
	return str(n.Callee) + "(" + joinParameters(n.Parameters) + ")"
}

func (n *Member) String() string {
	return str(n.Left) + "." + str(n.Right)
}

func (n *Object) String() string {
	return n.Name
}

// String parenthesizes the operation so the tree shape stays visible
func (n *BinaryOperator) String() string {
	return "(" + str(n.Left) + " " + n.Operator.String() + " " + str(n.Right) + ")"
}

func (n *UnaryOperator) String() string {
	if n.Side == SideRight {
		return str(n.Operand) + n.Operator.String()
	}
	return n.Operator.String() + str(n.Operand)
}

func (n *NumberLiteral) String() string {
	if n.Raw != "" {
		return n.Raw
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *StringLiteral) String() string {
	return strconv.Quote(n.Value)
}

func (n *BooleanLiteral) String() string {
	return strconv.FormatBool(n.Value)
}

func (n *NullLiteral) String() string {
	return "null"
}

func str(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.String()
}

func joinParameters(params []*Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
