// ============================================================================
// Blaze - scripting language front end
// ============================================================================
//
// Package:     server
// Description: Script service shared by the gRPC and WebSocket transports
// Author:      VDFOREVER
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"strings"

	bzerror "github.com/VDFOREVER/blaze/foundation/core/error"
	"github.com/VDFOREVER/blaze/foundation/scripting"
	bzast "github.com/VDFOREVER/blaze/foundation/scripting/ast"
	bzdiag "github.com/VDFOREVER/blaze/foundation/scripting/diag"
	bztoken "github.com/VDFOREVER/blaze/foundation/scripting/token"
	"github.com/VDFOREVER/blaze/internal/store"
	"github.com/VDFOREVER/blaze/pkg/core/cache"
	bzgrpc "github.com/VDFOREVER/blaze/pkg/core/grpc"
	"github.com/VDFOREVER/blaze/pkg/core/logging"
)

// Recorder persists parse results
type Recorder interface {
	RecordParse(ctx context.Context, rec *store.Record) error
}

// Request is a lex or parse request
type Request struct {
	Source      string `json:"source"`
	SourceLabel string `json:"source_label,omitempty"`
}

// Token is a token as seen by clients, with one-based positions
type Token struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Diagnostic is a lexical or syntax problem as seen by clients
type Diagnostic struct {
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`
	Source   string   `json:"source"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Expected []string `json:"expected,omitempty"`
	Text     string   `json:"text"`
}

// Response carries the outcome of a request. Problems in the script are
// reported through Diagnostic with OK false, never as an error.
type Response struct {
	OK          bool                   `json:"ok"`
	SourceLabel string                 `json:"source_label"`
	Statements  int                    `json:"statements"`
	Nodes       int                    `json:"nodes"`
	Tokens      []Token                `json:"tokens,omitempty"`
	AST         map[string]interface{} `json:"ast,omitempty"`
	Diagnostic  *Diagnostic            `json:"diagnostic,omitempty"`
}

// ScriptService lexes and parses scripts for remote clients
type ScriptService struct {
	engine   *scripting.Engine
	recorder Recorder
	logger   *logging.Logger
	cache    *cache.Cache[*Response]
}

// NewScriptService creates the service. recorder may be nil.
func NewScriptService(engine *scripting.Engine, recorder Recorder, logger *logging.Logger) *ScriptService {
	if logger == nil {
		logger = logging.New("script-service")
	}
	if engine == nil {
		engine = scripting.New(scripting.Options{Logger: logger.Foundation()})
	}
	return &ScriptService{engine: engine, recorder: recorder, logger: logger}
}

// UseCache makes the service reuse responses for identical requests.
// Parses are still recorded on every call.
func (s *ScriptService) UseCache(c *cache.Cache[*Response]) {
	s.cache = c
}

// Lex scans the request source
func (s *ScriptService) Lex(ctx context.Context, req *Request) (*Response, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	engine := s.engine.WithSourceLabel(req.SourceLabel)
	return s.cached("lex", engine.SourceLabel(), req.Source, func() (*Response, error) {
		resp := &Response{SourceLabel: engine.SourceLabel()}

		tokens, err := engine.Lex(req.Source)
		resp.Tokens = tokenViews(tokens)
		if err != nil {
			return s.fail(resp, err)
		}

		resp.OK = true
		return resp, nil
	})
}

// Parse lexes and parses the request source and records the outcome
func (s *ScriptService) Parse(ctx context.Context, req *Request) (*Response, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	engine := s.engine.WithSourceLabel(req.SourceLabel)
	resp, err := s.cached("parse", engine.SourceLabel(), req.Source, func() (*Response, error) {
		resp := &Response{SourceLabel: engine.SourceLabel()}

		result, err := engine.Analyze(req.Source)
		if err == nil {
			resp.OK = true
			resp.Statements = result.Statements()
			resp.Nodes = result.Nodes()
			resp.AST = bzast.Encode(result.Body)
		}
		return s.fail(resp, err)
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, req, resp)
	return resp, nil
}

// cached runs compute, or returns a copy of the response cached for the
// same operation, label and source. Errors are never cached.
func (s *ScriptService) cached(op, label, source string, compute func() (*Response, error)) (*Response, error) {
	if s.cache == nil {
		return compute()
	}

	resp, err := s.cache.GetOrSet(cache.Key(op, label, source), compute)
	if err != nil {
		return nil, err
	}
	clone := *resp
	return &clone, nil
}

// fail turns a diagnostic into a response; other errors are returned
func (s *ScriptService) fail(resp *Response, err error) (*Response, error) {
	if err == nil {
		return resp, nil
	}

	d, ok := bzdiag.As(err)
	if !ok {
		return nil, err
	}

	resp.OK = false
	resp.Diagnostic = diagnosticView(d)
	return resp, nil
}

func (s *ScriptService) record(ctx context.Context, req *Request, resp *Response) {
	if s.recorder == nil {
		return
	}

	rec := &store.Record{
		SourceLabel: resp.SourceLabel,
		Source:      req.Source,
		Success:     resp.OK,
		Statements:  resp.Statements,
		RequestID:   bzgrpc.GetRequestID(ctx),
	}
	if resp.Diagnostic != nil {
		rec.Diagnostic = resp.Diagnostic.Text
	}

	if err := s.recorder.RecordParse(ctx, rec); err != nil {
		s.logger.Warn("Failed to record parse", "error", err, "source_label", rec.SourceLabel)
	}
}

func tokenViews(tokens []bztoken.Token) []Token {
	if len(tokens) == 0 {
		return nil
	}
	views := make([]Token, len(tokens))
	for i, tok := range tokens {
		views[i] = Token{
			Type:   tok.Type.Name(),
			Value:  tok.Value,
			Line:   tok.Line + 1,
			Column: tok.Start + 1,
		}
	}
	return views
}

func diagnosticView(d *bzdiag.Diagnostic) *Diagnostic {
	view := &Diagnostic{
		Kind:    d.Kind.String(),
		Message: d.Message,
		Source:  d.Source,
		Line:    d.Line,
		Column:  d.Column,
		Text:    d.Error(),
	}
	for _, t := range d.Expected {
		view.Expected = append(view.Expected, t.String())
	}
	return view
}

// validate rejects requests no transport should pass on
func validate(req *Request) error {
	if req == nil {
		return bzerror.New("request is required").WithCode(bzerror.CodeInvalidInput)
	}
	if strings.ContainsRune(req.SourceLabel, '\n') {
		return bzerror.New("source_label must be a single line").WithCode(bzerror.CodeInvalidInput)
	}
	return nil
}
