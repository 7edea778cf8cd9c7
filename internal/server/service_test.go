package server

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bzerror "github.com/VDFOREVER/blaze/foundation/core/error"
	bzlog "github.com/VDFOREVER/blaze/foundation/core/log"
	"github.com/VDFOREVER/blaze/foundation/scripting"
	"github.com/VDFOREVER/blaze/internal/store"
	"github.com/VDFOREVER/blaze/pkg/core/cache"
	bzgrpc "github.com/VDFOREVER/blaze/pkg/core/grpc"
	"github.com/VDFOREVER/blaze/pkg/core/logging"
)

type memoryRecorder struct {
	mu      sync.Mutex
	records []*store.Record
	err     error
}

func (r *memoryRecorder) RecordParse(ctx context.Context, rec *store.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

func nopLogger() *logging.Logger {
	return logging.Wrap(bzlog.NewNop())
}

func newTestService(recorder Recorder) *ScriptService {
	engine := scripting.New(scripting.Options{Logger: bzlog.NewNop(), MaxSourceLength: 256})
	return NewScriptService(engine, recorder, nopLogger())
}

func TestScriptService_Lex(t *testing.T) {
	svc := newTestService(nil)

	resp, err := svc.Lex(context.Background(), &Request{Source: "mut x = 1;"})
	require.NoError(t, err)

	assert.True(t, resp.OK)
	assert.Equal(t, "Shell", resp.SourceLabel)
	require.Len(t, resp.Tokens, 5)
	assert.Equal(t, Token{Type: "Mut", Value: "mut", Line: 1, Column: 1}, resp.Tokens[0])
	assert.Equal(t, Token{Type: "Alphanumeric", Value: "x", Line: 1, Column: 5}, resp.Tokens[1])
	assert.Nil(t, resp.Diagnostic)
}

func TestScriptService_LexError(t *testing.T) {
	svc := newTestService(nil)

	resp, err := svc.Lex(context.Background(), &Request{Source: "@", SourceLabel: "ws"})
	require.NoError(t, err)

	assert.False(t, resp.OK)
	require.NotNil(t, resp.Diagnostic)
	assert.Equal(t, "lexical", resp.Diagnostic.Kind)
	assert.Equal(t, "ws", resp.Diagnostic.Source)
	assert.Equal(t, 1, resp.Diagnostic.Column)
	assert.Equal(t, "Lexical Error: Unexpected character '@' <-= ws:1:1", resp.Diagnostic.Text)
}

func TestScriptService_Parse(t *testing.T) {
	recorder := &memoryRecorder{}
	svc := newTestService(recorder)

	ctx := bzgrpc.WithRequestID(context.Background(), "req-7")
	resp, err := svc.Parse(ctx, &Request{Source: "mut best_apples: arr = store.best(amount=5).result;", SourceLabel: "Tests"})
	require.NoError(t, err)

	assert.True(t, resp.OK)
	assert.Equal(t, 1, resp.Statements)
	assert.Greater(t, resp.Nodes, 1)
	assert.Equal(t, "Body", resp.AST["kind"])
	assert.Empty(t, resp.Tokens)

	require.Len(t, recorder.records, 1)
	rec := recorder.records[0]
	assert.True(t, rec.Success)
	assert.Equal(t, "Tests", rec.SourceLabel)
	assert.Equal(t, "req-7", rec.RequestID)
	assert.Equal(t, 1, rec.Statements)
}

func TestScriptService_ParseDiagnostic(t *testing.T) {
	recorder := &memoryRecorder{}
	svc := newTestService(recorder)

	resp, err := svc.Parse(context.Background(), &Request{Source: "x y", SourceLabel: "Tests"})
	require.NoError(t, err)

	assert.False(t, resp.OK)
	assert.Nil(t, resp.AST)
	require.NotNil(t, resp.Diagnostic)
	assert.Equal(t, "syntax", resp.Diagnostic.Kind)
	assert.Equal(t, []string{";"}, resp.Diagnostic.Expected)
	assert.Equal(t, "Syntax Error: ';' is expected <-= Tests:1:3", resp.Diagnostic.Text)

	require.Len(t, recorder.records, 1)
	assert.False(t, recorder.records[0].Success)
	assert.Equal(t, resp.Diagnostic.Text, recorder.records[0].Diagnostic)
}

func TestScriptService_RecorderFailureDoesNotFailParse(t *testing.T) {
	svc := newTestService(&memoryRecorder{err: errors.New("disk full")})

	resp, err := svc.Parse(context.Background(), &Request{Source: "a;"})
	require.NoError(t, err)
	assert.True(t, resp.OK)
}

func TestScriptService_InvalidRequests(t *testing.T) {
	svc := newTestService(nil)

	tests := []struct {
		name string
		req  *Request
	}{
		{"nil request", nil},
		{"multi-line label", &Request{Source: "a;", SourceLabel: "a\nb"}},
		{"too long", &Request{Source: strings.Repeat("a", 257)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Parse(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, bzerror.HasCode(err, bzerror.CodeInvalidInput))

			_, err = svc.Lex(context.Background(), tt.req)
			assert.True(t, bzerror.HasCode(err, bzerror.CodeInvalidInput))
		})
	}
}

func TestScriptService_EmptySource(t *testing.T) {
	resp, err := newTestService(nil).Parse(context.Background(), &Request{Source: ""})
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, 0, resp.Statements)
}

func TestScriptService_Cache(t *testing.T) {
	recorder := &memoryRecorder{}
	svc := newTestService(recorder)

	results := cache.New[*Response](cache.DefaultConfig())
	defer results.Close()
	svc.UseCache(results)

	ctx := context.Background()
	first, err := svc.Parse(ctx, &Request{Source: "mut x = 1;"})
	require.NoError(t, err)
	second, err := svc.Parse(ctx, &Request{Source: "mut x = 1;"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)

	// the label is part of the key
	other, err := svc.Parse(ctx, &Request{Source: "mut x = 1;", SourceLabel: "other"})
	require.NoError(t, err)
	assert.Equal(t, "other", other.SourceLabel)

	_, err = svc.Lex(ctx, &Request{Source: "mut x = 1;"})
	require.NoError(t, err)

	hits, misses, _ := results.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(3), misses)
	assert.Len(t, recorder.records, 3)

	// failures from the engine itself are not cached
	_, err = svc.Parse(ctx, &Request{Source: strings.Repeat("x", 300)})
	require.Error(t, err)
	assert.Equal(t, 3, results.Size())
}
