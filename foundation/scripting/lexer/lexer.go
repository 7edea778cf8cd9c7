// File: lexer.go
// Title: Blaze Lexical Analyzer
// Description: Scans Blaze source text into an ordered token sequence.
//              Classifies keywords, identifiers, literals, operators and
//              punctuation, skips whitespace and line comments, and tracks
//              the line and column of every token for diagnostics.
// Author: VDFOREVER
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial lexer implementation

package lexer

import (
	"fmt"
	"strings"
	"unicode"

	bzlog "github.com/VDFOREVER/blaze/foundation/core/log"
	"github.com/VDFOREVER/blaze/foundation/scripting/diag"
	"github.com/VDFOREVER/blaze/foundation/scripting/token"
)

// Options configures a lexer
type Options struct {
	// SourceLabel names the input in diagnostics, "Shell" when empty
	SourceLabel string

	// Logger receives debug output, nothing is logged when nil
	Logger *bzlog.Logger
}

// Lexer performs lexical analysis of Blaze input
type Lexer struct {
	input []rune
	pos   int // index of the current rune
	line  int // zero-based
	col   int // zero-based

	ctx    diag.Context
	logger *bzlog.Logger
}

// New creates a new lexer for the given input
func New(input string, opts Options) *Lexer {
	logger := opts.Logger
	if logger == nil {
		logger = bzlog.NewNop()
	}
	return &Lexer{
		input:  []rune(input),
		ctx:    diag.NewContext(opts.SourceLabel),
		logger: logger.WithName("lexer"),
	}
}

// Context returns the diagnostic context of the pass
func (l *Lexer) Context() diag.Context {
	return l.ctx
}

// Analyze scans the whole input. On failure it returns the tokens read so
// far together with a lexical *diag.Diagnostic.
func (l *Lexer) Analyze() ([]token.Token, error) {
	timer := l.logger.StartTimer("lex").WithField("source", l.ctx.CodeSource)

	var tokens []token.Token
	for {
		tok, ok, err := l.next()
		if err != nil {
			timer.StopWithError(err)
			return tokens, err
		}
		if !ok {
			break
		}
		l.logger.Trace("token", bzlog.Fields{"type": tok.Type.Name(), "value": tok.Value})
		tokens = append(tokens, tok)
	}

	timer.WithField("tokens", len(tokens)).Stop()
	return tokens, nil
}

// Analyze is a convenience function that lexes input labelled sourceLabel
func Analyze(input, sourceLabel string) ([]token.Token, error) {
	return New(input, Options{SourceLabel: sourceLabel}).Analyze()
}

// next returns the next token; ok is false at the end of input
func (l *Lexer) next() (token.Token, bool, error) {
	l.skipWhitespaceAndComments()

	if l.pos >= len(l.input) {
		l.mark()
		return token.Token{}, false, nil
	}

	l.mark()
	line, start := l.line, l.col
	ch := l.input[l.pos]

	switch {
	case isLetter(ch):
		value := l.readWhile(isIdentPart)
		return token.Token{Type: token.LookupIdent(value), Value: value, Line: line, Start: start}, true, nil
	case isDigit(ch):
		return token.Token{Type: token.Number, Value: l.readNumber(), Line: line, Start: start}, true, nil
	case ch == '"' || ch == '\'':
		value, err := l.readString(ch)
		if err != nil {
			return token.Token{}, false, err
		}
		return token.Token{Type: token.CharArray, Value: value, Line: line, Start: start}, true, nil
	}

	typ, width, err := l.readOperator(ch)
	if err != nil {
		return token.Token{}, false, err
	}
	value := string(l.input[l.pos : l.pos+width])
	l.advanceN(width)
	return token.Token{Type: typ, Value: value, Line: line, Start: start}, true, nil
}

// readOperator classifies the operator or punctuation at the cursor and
// returns its width in runes.
func (l *Lexer) readOperator(ch rune) (token.Type, int, error) {
	next := l.peek(1)

	switch ch {
	case '+':
		if next == '+' {
			return token.Increment, 2, nil
		}
		return token.Plus, 1, nil
	case '-':
		if next == '-' {
			return token.Decrement, 2, nil
		}
		return token.Minus, 1, nil
	case '*':
		return token.Multiply, 1, nil
	case '/':
		return token.Divide, 1, nil
	case '%':
		return token.Modulo, 1, nil
	case '=':
		if next == '=' {
			return token.Equal, 2, nil
		}
		return token.Assign, 1, nil
	case '!':
		if next == '=' {
			return token.NotEqual, 2, nil
		}
		return token.Not, 1, nil
	case '<':
		if next == '=' {
			return token.LessEqual, 2, nil
		}
		return token.Less, 1, nil
	case '>':
		if next == '=' {
			return token.GreaterEqual, 2, nil
		}
		return token.Greater, 1, nil
	case '&':
		if next == '&' {
			return token.And, 2, nil
		}
	case '|':
		if next == '|' {
			return token.Or, 2, nil
		}
	case '(':
		return token.LPar, 1, nil
	case ')':
		return token.RPar, 1, nil
	case '{':
		return token.LBrace, 1, nil
	case '}':
		return token.RBrace, 1, nil
	case '.':
		return token.Dot, 1, nil
	case ',':
		return token.Comma, 1, nil
	case ':':
		return token.Colon, 1, nil
	case ';':
		return token.ExpressionEnd, 1, nil
	}

	return token.Illegal, 0, diag.Lexical(l.ctx, fmt.Sprintf("Unexpected character %q", ch))
}

func (l *Lexer) readNumber() string {
	start := l.pos
	l.readWhile(isDigit)
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.advance()
		l.readWhile(isDigit)
	}
	return string(l.input[start:l.pos])
}

// readString reads a quoted literal and returns its unescaped value.
// A literal may not span lines.
func (l *Lexer) readString(quote rune) (string, error) {
	opening := l.ctx
	l.advance()

	var sb strings.Builder
	for {
		if l.pos >= len(l.input) || l.input[l.pos] == '\n' {
			return "", diag.Lexical(opening, "Unterminated string literal")
		}

		ch := l.input[l.pos]
		if ch == quote {
			l.advance()
			return sb.String(), nil
		}

		if ch == '\\' {
			l.mark()
			escaped, ok := unescape(l.peek(1))
			if !ok {
				if l.pos+1 >= len(l.input) {
					return "", diag.Lexical(opening, "Unterminated string literal")
				}
				return "", diag.Lexical(l.ctx, fmt.Sprintf("Unknown escape sequence '\\%c'", l.peek(1)))
			}
			sb.WriteRune(escaped)
			l.advanceN(2)
			continue
		}

		sb.WriteRune(ch)
		l.advance()
	}
}

func unescape(ch rune) (rune, bool) {
	switch ch {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\', '"', '\'':
		return ch, true
	default:
		return 0, false
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case unicode.IsSpace(ch):
			l.advance()
		case ch == '/' && l.peek(1) == '/':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readWhile(accept func(rune) bool) string {
	start := l.pos
	for l.pos < len(l.input) && accept(l.input[l.pos]) {
		l.advance()
	}
	return string(l.input[start:l.pos])
}

// peek returns the rune offset positions ahead, or 0 past the end
func (l *Lexer) peek(offset int) rune {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// mark moves the diagnostic context to the cursor
func (l *Lexer) mark() {
	l.ctx.Line = l.line + 1
	l.ctx.Position = l.col + 1
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentPart(ch rune) bool {
	return isLetter(ch) || isDigit(ch)
}
