// File: parser.go
// Title: Blaze Parser
// Description: Builds the AST from a token sequence top-down. Statements
//              are variable declarations, function declarations or bare
//              formulas separated by ';'. Formulas resolve unary operators
//              with a prohibited set and associate binary operators to the
//              right. The first syntax error aborts the whole parse.
// Author: VDFOREVER
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial parser implementation

package parser

import (
	"fmt"
	"strconv"

	bzlog "github.com/VDFOREVER/blaze/foundation/core/log"
	"github.com/VDFOREVER/blaze/foundation/scripting/ast"
	"github.com/VDFOREVER/blaze/foundation/scripting/diag"
	"github.com/VDFOREVER/blaze/foundation/scripting/token"
)

// Options configures a parser
type Options struct {
	// SourceLabel names the input in diagnostics, "Shell" when empty
	SourceLabel string

	// Logger receives debug output, nothing is logged when nil
	Logger *bzlog.Logger
}

// Parser consumes a token sequence with a single cursor
type Parser struct {
	tokens []token.Token
	pos    int

	ctx    diag.Context
	logger *bzlog.Logger
}

// parameterKind selects how a parenthesized list is read
type parameterKind int

const (
	callParameters parameterKind = iota
	functionParameters
)

// New creates a parser over tokens. The slice is not modified.
func New(tokens []token.Token, opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = bzlog.NewNop()
	}
	p := &Parser{
		tokens: tokens,
		ctx:    diag.NewContext(opts.SourceLabel),
		logger: logger.WithName("parser"),
	}
	p.sync()
	return p
}

// Parse is a convenience function that parses tokens labelled sourceLabel
func Parse(tokens []token.Token, sourceLabel string) (*ast.Body, error) {
	return New(tokens, Options{SourceLabel: sourceLabel}).Parse()
}

// Context returns the diagnostic context of the pass
func (p *Parser) Context() diag.Context {
	return p.ctx
}

// Parse reads every statement. On the first error it returns an empty
// Body and a *diag.Diagnostic; statements parsed before are discarded.
func (p *Parser) Parse() (*ast.Body, error) {
	timer := p.logger.StartTimer("parse").
		WithField("source", p.ctx.CodeSource).
		WithField("tokens", len(p.tokens))

	body, err := p.parseBody()
	if err != nil {
		timer.StopWithError(err)
		return &ast.Body{}, err
	}

	timer.WithField("statements", len(body.Nodes)).Stop()
	return body, nil
}

func (p *Parser) parseBody() (*ast.Body, error) {
	body := &ast.Body{}
	for {
		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if node == nil {
			break
		}
		body.Nodes = append(body.Nodes, node)

		if p.canAdvance() {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			if _, err := p.require(token.ExpressionEnd); err != nil {
				return nil, err
			}
		}
		if !p.canAdvance() {
			break
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// parseExpression parses one statement and leaves the cursor on its last
// token. A nil node means there is nothing left to parse.
func (p *Parser) parseExpression() (ast.Node, error) {
	tok, err := p.advance()
	if err != nil {
		return nil, nil
	}

	switch {
	case token.VariableAssignment.Contains(tok.Type):
		return p.parseVariableDeclaration(tok)
	case token.IsFormulaStart(tok.Type):
		p.retreat()
		return p.parseFormula()
	case tok.Type == token.Function:
		return p.parseFunctionDeclaration()
	case tok.Type == token.ExpressionEnd:
		return p.parseExpression()
	default:
		return nil, diag.Syntaxf(p.at(tok),
			"'%s' hasn't been implemented yet or is not being considered in this context", tok.Value)
	}
}

// parseVariableDeclaration reads `name[: type] = formula` after mut or fin
func (p *Parser) parseVariableDeclaration(keyword token.Token) (ast.Node, error) {
	name, err := p.require(token.Alphanumeric)
	if err != nil {
		return nil, err
	}
	p.advance()

	typeName, err := p.parseDatatype()
	if err != nil {
		return nil, err
	}
	if typeName != "" {
		p.advance()
	}

	if _, err := p.require(token.Assign); err != nil {
		return nil, err
	}
	p.advance()

	value, err := p.parseFormula()
	if err != nil {
		return nil, err
	}

	return &ast.VariableDeclaration{
		Name:    name.Value,
		Type:    typeName,
		Mutable: keyword.Type == token.Mut,
		Value:   value,
	}, nil
}

// parseFunctionDeclaration reads `name(p: T, ...)[: type]` after function
func (p *Parser) parseFunctionDeclaration() (ast.Node, error) {
	name, err := p.require(token.Alphanumeric)
	if err != nil {
		return nil, err
	}
	p.advance()

	params, err := p.parseParametersInParenthesis(functionParameters)
	if err != nil {
		return nil, err
	}

	// step onto a possible ':' and back again when there is none
	p.pos++
	p.sync()
	returnType, err := p.parseDatatype()
	if err != nil {
		return nil, err
	}
	if returnType == "" {
		p.retreat()
	}

	return &ast.FunctionDeclaration{
		Name:       name.Value,
		ReturnType: returnType,
		Parameters: params,
	}, nil
}

// parseDatatype reads an optional `: type` annotation. It returns "" and
// leaves the cursor untouched when the current token is not ':'; otherwise
// the cursor ends on the type name.
func (p *Parser) parseDatatype() (string, error) {
	tok, err := p.current()
	if err != nil || tok.Type != token.Colon {
		return "", nil
	}
	p.advance()

	typeTok, err := p.require(token.Alphanumeric)
	if err != nil {
		return "", err
	}
	return typeTok.Value, nil
}

func (p *Parser) parseParametersInParenthesis(kind parameterKind) ([]*ast.Parameter, error) {
	if _, err := p.require(token.LPar); err != nil {
		return nil, err
	}
	p.advance()

	params, err := p.parseParameters(kind)
	if err != nil {
		return nil, err
	}

	p.pos++
	p.sync()
	if _, err := p.require(token.RPar); err != nil {
		return nil, err
	}
	return params, nil
}

// parseParameters reads comma separated items. It stops on the first token
// that cannot continue the list and rewinds one position, so the caller
// finds that token after its own advance.
func (p *Parser) parseParameters(kind parameterKind) ([]*ast.Parameter, error) {
	var params []*ast.Parameter
	seenKeyword := false

	for {
		tok, err := p.current()
		if err != nil {
			p.retreat()
			return params, nil
		}

		if len(params) > 0 {
			if tok.Type != token.Comma {
				p.retreat()
				return params, nil
			}
			p.advance()
			if tok, err = p.current(); err != nil {
				return nil, err
			}
		}

		switch {
		case kind == callParameters && tok.Type == token.Alphanumeric && p.nextIs(token.Assign):
			seenKeyword = true
			p.advance() // name
			p.advance() // =
			value, err := p.parseFormula()
			if err != nil {
				return nil, err
			}
			params = append(params, &ast.Parameter{Mode: ast.Keyword, Name: tok.Value, Value: value})

		case kind == callParameters && token.IsFormulaStart(tok.Type):
			if seenKeyword {
				return nil, diag.Syntax(p.at(tok), "Positional argument follows keyword argument")
			}
			value, err := p.parseFormula()
			if err != nil {
				return nil, err
			}
			params = append(params, &ast.Parameter{Mode: ast.Positional, Value: value})

		case kind == functionParameters && tok.Type == token.Alphanumeric:
			p.advance()
			typeName, err := p.parseDatatype()
			if err != nil {
				return nil, err
			}
			if typeName == "" {
				return nil, diag.Syntax(p.ctx, "Argument type is expected")
			}
			params = append(params, &ast.Parameter{Mode: ast.Functional, Name: tok.Value, TypeName: typeName})

		default:
			p.retreat()
			return params, nil
		}

		p.pos++
		p.sync()
	}
}

// parseIdentifiers reads an identifier with an optional call and member
// tail. a.b.c becomes Member(a, Member(b, c)).
func (p *Parser) parseIdentifiers() (ast.Node, error) {
	tok, err := p.current()
	if err != nil {
		return nil, err
	}

	var node ast.Node = &ast.Object{Name: tok.Value}

	if p.advanceIfNextIs(token.Set{token.LPar}) {
		params, err := p.parseParametersInParenthesis(callParameters)
		if err != nil {
			return nil, err
		}
		node = &ast.Call{Callee: node, Parameters: params}
	}

	if p.advanceIfNextIs(token.Set{token.Dot}) {
		if !p.canAdvance() {
			ctx := p.ctx
			ctx.Position++
			return nil, diag.Syntax(ctx, "Children expected")
		}
		p.advance()
		if _, err := p.require(token.Alphanumeric); err != nil {
			return nil, err
		}

		right, err := p.parseIdentifiers()
		if err != nil {
			return nil, err
		}
		node = &ast.Member{Left: node, Right: right}
	}

	return node, nil
}

// parseFormula reads prefix operators, a primary expression, an optional
// postfix operator and, after a binary operator, the right operand as a
// new formula. Binary operators therefore associate to the right.
func (p *Parser) parseFormula() (ast.Node, error) {
	var prefixes []token.Token
	var prohibited token.Set

	for {
		tok, err := p.current()
		if err != nil || !token.IsPrefix(tok.Type) {
			break
		}
		if err := p.checkProhibited(tok, prohibited); err != nil {
			return nil, err
		}
		prefixes = append(prefixes, tok)
		prohibited = prohibit(prohibited, tok.Type)
		p.advance()
	}

	node, err := p.parsePrimand()
	if err != nil {
		return nil, err
	}

	for i := len(prefixes) - 1; i >= 0; i-- {
		node = &ast.UnaryOperator{Operator: prefixes[i].Type, Operand: node, Side: ast.SideLeft}
	}

	if p.advanceIfNextIs(token.Unary) {
		tok, _ := p.current()
		if err := p.checkProhibited(tok, prohibited); err != nil {
			return nil, err
		}
		node = &ast.UnaryOperator{Operator: tok.Type, Operand: node, Side: ast.SideRight}
	}

	if p.advanceIfNextIs(token.Binary) {
		operator, _ := p.advance()
		right, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOperator{Operator: operator.Type, Left: node, Right: right}, nil
	}

	return node, nil
}

// parsePrimand reads the primary expression under the cursor
func (p *Parser) parsePrimand() (ast.Node, error) {
	tok, err := p.current()
	if err != nil {
		return nil, diag.Expected(p.ctx, token.Formula)
	}

	switch tok.Type {
	case token.Alphanumeric:
		return p.parseIdentifiers()
	case token.CharArray:
		return &ast.StringLiteral{Value: tok.Value}, nil
	case token.Number:
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, diag.Syntaxf(p.at(tok), "invalid number literal '%s'", tok.Value)
		}
		return &ast.NumberLiteral{Value: value, Raw: tok.Value}, nil
	case token.Null:
		return &ast.NullLiteral{}, nil
	case token.True, token.False:
		return &ast.BooleanLiteral{Value: tok.Type == token.True}, nil
	default:
		return nil, diag.Expected(p.ctx, token.Formula)
	}
}

func (p *Parser) checkProhibited(tok token.Token, prohibited token.Set) error {
	if prohibited.Contains(tok.Type) {
		return diag.Syntax(p.at(tok), fmt.Sprintf("'%s' operator is already used", tok.Type))
	}
	return nil
}

// prohibit extends the set after t was used. ++ and -- exclude each other.
func prohibit(set token.Set, t token.Type) token.Set {
	if t == token.Increment || t == token.Decrement {
		return append(set, token.Increment, token.Decrement)
	}
	return append(set, t)
}
