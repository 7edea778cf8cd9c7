// File: cursor.go
// Title: Parser Cursor
// Description: Single-token cursor movement over the token sequence with
//              explicit rewind, look-ahead-then-commit and token
//              requirements. Every move updates the diagnostic context.
// Author: VDFOREVER
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial cursor primitives

package parser

import (
	"unicode/utf8"

	"github.com/VDFOREVER/blaze/foundation/scripting/diag"
	"github.com/VDFOREVER/blaze/foundation/scripting/token"
)

// current returns the token under the cursor
func (p *Parser) current() (token.Token, error) {
	if p.pos < 0 || p.pos >= len(p.tokens) {
		return token.Token{}, diag.EndOfInput(p.ctx)
	}
	return p.tokens[p.pos], nil
}

// advance returns the current token and moves the cursor forward
func (p *Parser) advance() (token.Token, error) {
	tok, err := p.current()
	if err != nil {
		return tok, err
	}
	p.pos++
	p.sync()
	return tok, nil
}

// retreat moves the cursor back by one
func (p *Parser) retreat() {
	if p.pos > 0 {
		p.pos--
	}
	p.sync()
}

// canAdvance reports whether a token follows the current one
func (p *Parser) canAdvance() bool {
	return p.pos+1 < len(p.tokens)
}

// advanceIfNextIs commits a move only when the next token is in types
func (p *Parser) advanceIfNextIs(types token.Set) bool {
	if !p.canAdvance() || !types.Contains(p.tokens[p.pos+1].Type) {
		return false
	}
	p.pos++
	p.sync()
	return true
}

// nextIs peeks at the token after the current one
func (p *Parser) nextIs(t token.Type) bool {
	return p.canAdvance() && p.tokens[p.pos+1].Type == t
}

// require returns the current token when its type is in types. Otherwise
// the (wrong) token is returned together with a diagnostic naming types.
func (p *Parser) require(types ...token.Type) (token.Token, error) {
	tok, err := p.current()
	if err != nil || !token.Set(types).Contains(tok.Type) {
		return tok, diag.Expected(p.ctx, types)
	}
	return tok, nil
}

// sync points the context at the current token. Past the end it points
// just after the last token.
func (p *Parser) sync() {
	switch {
	case len(p.tokens) == 0:
		p.ctx.Line, p.ctx.Position = 1, 1
	case p.pos < len(p.tokens):
		tok := p.tokens[p.pos]
		p.ctx.Line, p.ctx.Position = tok.Line+1, tok.Start+1
	default:
		last := p.tokens[len(p.tokens)-1]
		width := utf8.RuneCountInString(last.Value)
		if last.Type == token.CharArray {
			width += 2 // quotes, escapes are not counted
		}
		p.ctx.Line, p.ctx.Position = last.Line+1, last.Start+width+1
	}
}

// at returns the context positioned at tok
func (p *Parser) at(tok token.Token) diag.Context {
	ctx := p.ctx
	ctx.Line, ctx.Position = tok.Line+1, tok.Start+1
	return ctx
}
