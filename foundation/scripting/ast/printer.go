// File: printer.go
// Title: AST Tree Printer
// Description: Renders an AST as an indented tree, one node per line,
//              for the CLI and the interactive shell.
// Author: VDFOREVER
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial tree printer

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders the tree rooted at n with two spaces per level
func Print(n Node) string {
	p := &printer{}
	p.print(n, 0)
	return p.buffer.String()
}

type printer struct {
	buffer strings.Builder
}

func (p *printer) line(depth int, format string, args ...interface{}) {
	p.buffer.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&p.buffer, format, args...)
	p.buffer.WriteByte('\n')
}

func (p *printer) print(n Node, depth int) {
	if n == nil {
		p.line(depth, "<nil>")
		return
	}

	switch n := n.(type) {
	case *Body:
		p.line(depth, "Body (%d statements)", len(n.Nodes))
	case *VariableDeclaration:
		kw := "fin"
		if n.Mutable {
			kw = "mut"
		}
		if n.Type != "" {
			p.line(depth, "VariableDeclaration %s %s: %s", kw, n.Name, n.Type)
		} else {
			p.line(depth, "VariableDeclaration %s %s", kw, n.Name)
		}
	case *FunctionDeclaration:
		if n.ReturnType != "" {
			p.line(depth, "FunctionDeclaration %s: %s", n.Name, n.ReturnType)
		} else {
			p.line(depth, "FunctionDeclaration %s", n.Name)
		}
	case *Parameter:
		switch n.Mode {
		case Keyword:
			p.line(depth, "Parameter keyword %s", n.Name)
		case Functional:
			p.line(depth, "Parameter functional %s: %s", n.Name, n.TypeName)
		default:
			p.line(depth, "Parameter positional")
		}
	case *Call:
		p.line(depth, "Call (%d parameters)", len(n.Parameters))
	case *Member:
		p.line(depth, "Member")
	case *Object:
		p.line(depth, "Object %s", n.Name)
	case *BinaryOperator:
		p.line(depth, "BinaryOperator %s", n.Operator)
	case *UnaryOperator:
		p.line(depth, "UnaryOperator %s (%s)", n.Operator, n.Side)
	case *NumberLiteral:
		p.line(depth, "NumberLiteral %s", n.String())
	case *StringLiteral:
		p.line(depth, "StringLiteral %s", strconv.Quote(n.Value))
	case *BooleanLiteral:
		p.line(depth, "BooleanLiteral %t", n.Value)
	case *NullLiteral:
		p.line(depth, "NullLiteral")
	}

	for _, c := range Children(n) {
		p.print(c, depth+1)
	}
}
