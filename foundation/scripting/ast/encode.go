// File: encode.go
// Title: AST Map Encoding
// Description: Converts an AST into nested maps and slices built only from
//              strings, float64, bool, int and nil, so the result can be
//              marshalled as JSON or YAML or turned into a protobuf Struct.
// Author: VDFOREVER
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial encoder

package ast

// Encode converts the tree rooted at n. Every map carries a "kind" key.
func Encode(n Node) map[string]interface{} {
	if n == nil {
		return nil
	}

	m := map[string]interface{}{"kind": n.Kind().String()}

	switch n := n.(type) {
	case *Body:
		nodes := make([]interface{}, len(n.Nodes))
		for i, stmt := range n.Nodes {
			nodes[i] = encodeOrNil(stmt)
		}
		m["nodes"] = nodes
	case *VariableDeclaration:
		m["name"] = n.Name
		m["mutable"] = n.Mutable
		if n.Type != "" {
			m["type"] = n.Type
		}
		m["value"] = encodeOrNil(n.Value)
	case *FunctionDeclaration:
		m["name"] = n.Name
		if n.ReturnType != "" {
			m["return_type"] = n.ReturnType
		}
		m["parameters"] = encodeParameters(n.Parameters)
	case *Parameter:
		m["mode"] = n.Mode.String()
		if n.Name != "" {
			m["name"] = n.Name
		}
		if n.TypeName != "" {
			m["type"] = n.TypeName
		}
		if n.Value != nil {
			m["value"] = Encode(n.Value)
		}
	case *Call:
		m["callee"] = encodeOrNil(n.Callee)
		m["parameters"] = encodeParameters(n.Parameters)
	case *Member:
		m["left"] = encodeOrNil(n.Left)
		m["right"] = encodeOrNil(n.Right)
	case *Object:
		m["name"] = n.Name
	case *BinaryOperator:
		m["operator"] = n.Operator.String()
		m["left"] = encodeOrNil(n.Left)
		m["right"] = encodeOrNil(n.Right)
	case *UnaryOperator:
		m["operator"] = n.Operator.String()
		m["side"] = n.Side.String()
		m["operand"] = encodeOrNil(n.Operand)
	case *NumberLiteral:
		m["value"] = n.Value
	case *StringLiteral:
		m["value"] = n.Value
	case *BooleanLiteral:
		m["value"] = n.Value
	case *NullLiteral:
		m["value"] = nil
	}
	return m
}

// encodeOrNil keeps a missing child as an untyped nil instead of a nil map
func encodeOrNil(n Node) interface{} {
	if n == nil {
		return nil
	}
	return Encode(n)
}

func encodeParameters(params []*Parameter) []interface{} {
	out := make([]interface{}, 0, len(params))
	for _, p := range params {
		if p == nil {
			out = append(out, nil)
			continue
		}
		out = append(out, Encode(p))
	}
	return out
}
