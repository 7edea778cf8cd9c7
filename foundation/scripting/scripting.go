// File: scripting.go
// Title: Blaze Scripting Engine
// Description: Provides the high-level API of the Blaze front end. The
//              Engine lexes source text, parses the token sequence and
//              reports a positioned diagnostic on failure. Package level
//              Lex and Parse cover the one-shot case.
// Author: VDFOREVER
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial engine implementation

package scripting

import (
	"time"

	bzerror "github.com/VDFOREVER/blaze/foundation/core/error"
	bzlog "github.com/VDFOREVER/blaze/foundation/core/log"
	bzast "github.com/VDFOREVER/blaze/foundation/scripting/ast"
	bzdiag "github.com/VDFOREVER/blaze/foundation/scripting/diag"
	bzlexer "github.com/VDFOREVER/blaze/foundation/scripting/lexer"
	bzparser "github.com/VDFOREVER/blaze/foundation/scripting/parser"
	bztoken "github.com/VDFOREVER/blaze/foundation/scripting/token"
)

// DefaultMaxSourceLength is the input limit in bytes when none is set
const DefaultMaxSourceLength = 64 * 1024

// Options configures the engine
type Options struct {
	// Logger for lexing and parsing (optional, defaults to the default logger)
	Logger *bzlog.Logger

	// SourceLabel names the input in diagnostics (default: "Shell")
	SourceLabel string

	// MaxSourceLength limits input length in bytes (default: 64 KiB)
	MaxSourceLength int
}

// Engine runs the lexer and the parser with shared options.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	logger  *bzlog.Logger
	options Options
}

// Result is the outcome of analyzing one source text
type Result struct {
	Source      string
	SourceLabel string
	Tokens      []bztoken.Token
	Body        *bzast.Body
	Duration    time.Duration
}

// Statements returns the number of top-level statements
func (r *Result) Statements() int {
	if r == nil || r.Body == nil {
		return 0
	}
	return len(r.Body.Nodes)
}

// Nodes returns the number of nodes in the tree
func (r *Result) Nodes() int {
	if r == nil || r.Body == nil {
		return 0
	}
	return bzast.Count(r.Body)
}

// New creates an engine
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = bzlog.GetDefault()
	}
	if opts.SourceLabel == "" {
		opts.SourceLabel = bzdiag.DefaultSource
	}
	if opts.MaxSourceLength <= 0 {
		opts.MaxSourceLength = DefaultMaxSourceLength
	}

	return &Engine{
		logger:  opts.Logger.WithField("component", "scripting"),
		options: opts,
	}
}

// SourceLabel returns the label used in diagnostics
func (e *Engine) SourceLabel() string {
	return e.options.SourceLabel
}

// WithSourceLabel returns a copy of the engine using label
func (e *Engine) WithSourceLabel(label string) *Engine {
	opts := e.options
	opts.Logger = e.logger
	if label != "" {
		opts.SourceLabel = label
	}
	return &Engine{logger: e.logger, options: opts}
}

// Lex scans source into tokens
func (e *Engine) Lex(source string) ([]bztoken.Token, error) {
	if err := e.checkLength(source); err != nil {
		return nil, err
	}
	return bzlexer.New(source, bzlexer.Options{
		SourceLabel: e.options.SourceLabel,
		Logger:      e.logger,
	}).Analyze()
}

// Parse builds the tree for tokens. On failure the Body is empty.
func (e *Engine) Parse(tokens []bztoken.Token) (*bzast.Body, error) {
	return bzparser.New(tokens, bzparser.Options{
		SourceLabel: e.options.SourceLabel,
		Logger:      e.logger,
	}).Parse()
}

// Analyze lexes and parses source. The returned Result is never nil; on
// failure it carries the tokens read so far and an empty Body.
func (e *Engine) Analyze(source string) (*Result, error) {
	start := time.Now()
	result := &Result{
		Source:      source,
		SourceLabel: e.options.SourceLabel,
		Body:        &bzast.Body{},
	}

	tokens, err := e.Lex(source)
	result.Tokens = tokens
	if err != nil {
		result.Duration = time.Since(start)
		return result, err
	}

	body, err := e.Parse(tokens)
	result.Body = body
	result.Duration = time.Since(start)
	return result, err
}

func (e *Engine) checkLength(source string) error {
	if len(source) > e.options.MaxSourceLength {
		return bzerror.Newf("source is %d bytes, limit is %d", len(source), e.options.MaxSourceLength).
			WithCode(bzerror.CodeInvalidInput).
			WithOperation("scripting.Lex").
			WithDetail("source", e.options.SourceLabel)
	}
	return nil
}

// Lex scans source labelled sourceLabel into tokens
func Lex(source, sourceLabel string) ([]bztoken.Token, error) {
	return bzlexer.Analyze(source, sourceLabel)
}

// Parse builds the tree for tokens labelled sourceLabel
func Parse(tokens []bztoken.Token, sourceLabel string) (*bzast.Body, error) {
	return bzparser.Parse(tokens, sourceLabel)
}
