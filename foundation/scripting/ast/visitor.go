// File: visitor.go
// Title: Blaze AST Visitor Pattern Implementation
// Description: Implements the visitor pattern and generic traversal for
//              Blaze AST nodes: the Visitor interface, a no-op BaseVisitor
//              to embed, child enumeration, depth-first walking and node
//              counting.
// Author: VDFOREVER
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial visitor implementation

package ast

// Visitor has one method per AST variant
type Visitor interface {
	VisitBody(n *Body) interface{}
	VisitVariableDeclaration(n *VariableDeclaration) interface{}
	VisitFunctionDeclaration(n *FunctionDeclaration) interface{}
	VisitParameter(n *Parameter) interface{}
	VisitCall(n *Call) interface{}
	VisitMember(n *Member) interface{}
	VisitObject(n *Object) interface{}
	VisitBinaryOperator(n *BinaryOperator) interface{}
	VisitUnaryOperator(n *UnaryOperator) interface{}
	VisitNumberLiteral(n *NumberLiteral) interface{}
	VisitStringLiteral(n *StringLiteral) interface{}
	VisitBooleanLiteral(n *BooleanLiteral) interface{}
	VisitNullLiteral(n *NullLiteral) interface{}
}

// BaseVisitor provides no-op implementations for all visitor methods.
// Embed it in concrete visitors to only override needed methods, and use
// Walk to reach the children.
type BaseVisitor struct{}

func (BaseVisitor) VisitBody(*Body) interface{}                               { return nil }
func (BaseVisitor) VisitVariableDeclaration(*VariableDeclaration) interface{} { return nil }
func (BaseVisitor) VisitFunctionDeclaration(*FunctionDeclaration) interface{} { return nil }
func (BaseVisitor) VisitParameter(*Parameter) interface{}                     { return nil }
func (BaseVisitor) VisitCall(*Call) interface{}                               { return nil }
func (BaseVisitor) VisitMember(*Member) interface{}                           { return nil }
func (BaseVisitor) VisitObject(*Object) interface{}                           { return nil }
func (BaseVisitor) VisitBinaryOperator(*BinaryOperator) interface{}           { return nil }
func (BaseVisitor) VisitUnaryOperator(*UnaryOperator) interface{}             { return nil }
func (BaseVisitor) VisitNumberLiteral(*NumberLiteral) interface{}             { return nil }
func (BaseVisitor) VisitStringLiteral(*StringLiteral) interface{}             { return nil }
func (BaseVisitor) VisitBooleanLiteral(*BooleanLiteral) interface{}           { return nil }
func (BaseVisitor) VisitNullLiteral(*NullLiteral) interface{}                 { return nil }

// Children returns the direct children of n in source order.
// Missing children are skipped.
func Children(n Node) []Node {
	var out []Node
	add := func(children ...Node) {
		for _, c := range children {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	addParams := func(params []*Parameter) {
		for _, p := range params {
			if p != nil {
				out = append(out, p)
			}
		}
	}

	switch n := n.(type) {
	case *Body:
		add(n.Nodes...)
	case *VariableDeclaration:
		add(n.Value)
	case *FunctionDeclaration:
		addParams(n.Parameters)
	case *Parameter:
		add(n.Value)
	case *Call:
		add(n.Callee)
		addParams(n.Parameters)
	case *Member:
		add(n.Left, n.Right)
	case *BinaryOperator:
		add(n.Left, n.Right)
	case *UnaryOperator:
		add(n.Operand)
	case *Object, *NumberLiteral, *StringLiteral, *BooleanLiteral, *NullLiteral:
	}
	return out
}

// Inspect traverses the tree depth-first in source order, calling fn for
// each node. Children of a node are skipped when fn returns false.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, fn)
	}
}

// Walk lets v visit every node of the tree, parents before children
func Walk(v Visitor, n Node) {
	Inspect(n, func(node Node) bool {
		node.Accept(v)
		return true
	})
}

// Count returns the number of nodes in the tree rooted at n
func Count(n Node) int {
	count := 0
	Inspect(n, func(Node) bool {
		count++
		return true
	})
	return count
}

// CollectorVisitor gathers the names referenced by a tree
type CollectorVisitor struct {
	BaseVisitor
	Objects   []string
	Functions []string
	Variables []string
}

// NewCollectorVisitor creates a new collector visitor
func NewCollectorVisitor() *CollectorVisitor {
	return &CollectorVisitor{}
}

func (cv *CollectorVisitor) VisitObject(n *Object) interface{} {
	cv.Objects = append(cv.Objects, n.Name)
	return nil
}

func (cv *CollectorVisitor) VisitFunctionDeclaration(n *FunctionDeclaration) interface{} {
	cv.Functions = append(cv.Functions, n.Name)
	return nil
}

func (cv *CollectorVisitor) VisitVariableDeclaration(n *VariableDeclaration) interface{} {
	cv.Variables = append(cv.Variables, n.Name)
	return nil
}

// Collect walks the tree with a CollectorVisitor
func Collect(n Node) *CollectorVisitor {
	cv := NewCollectorVisitor()
	Walk(cv, n)
	return cv
}
