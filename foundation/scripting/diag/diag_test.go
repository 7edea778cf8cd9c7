// File: diag_test.go
// Title: Diagnostics Tests
// Description: Tests for expected-token messages, diagnostic rendering and
//              conversion to structured errors.
// Author: VDFOREVER
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial test coverage

package diag

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bzerror "github.com/VDFOREVER/blaze/foundation/core/error"
	"github.com/VDFOREVER/blaze/foundation/scripting/token"
)

func TestExpectedMessage(t *testing.T) {
	tests := []struct {
		name     string
		expected []token.Type
		want     string
	}{
		{"none", nil, "void expected"},
		{"one", []token.Type{token.Assign}, "'=' is expected"},
		{"two", []token.Type{token.Mut, token.Fin}, "'mut' or 'fin' are expected"},
		{"three", []token.Type{token.LPar, token.RPar, token.Dot}, "'(', ')', or '.' are expected"},
		{"four", []token.Type{token.LPar, token.RPar, token.Dot, token.Comma}, "'(', ')', '.', or ',' are expected"},
		{"formula set", token.Formula, "'identifier', 'number', 'string', or one of 8 other tokens are expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpectedMessage(tt.expected))
		})
	}
}

func TestExpectedMessage_Deterministic(t *testing.T) {
	first := ExpectedMessage(token.Binary)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, ExpectedMessage(token.Binary))
	}
}

func TestDiagnostic_Error(t *testing.T) {
	ctx := Context{CodeSource: "Tests", Line: 2, Position: 7}

	assert.Equal(t, "Syntax Error: Children expected <-= Tests:2:7", Syntax(ctx, "Children expected").Error())
	assert.Equal(t, "Lexical Error: Unexpected character '@' <-= Tests:2:7", Lexical(ctx, "Unexpected character '@'").Error())
	assert.Equal(t, "Syntax Error: Unexpected end of input <-= Tests:2:7", EndOfInput(ctx).Error())
	assert.Equal(t, "Syntax Error: ':' is expected <-= Tests:2:7", Expected(ctx, []token.Type{token.Colon}).Error())
}

func TestNewContext(t *testing.T) {
	ctx := NewContext("")
	assert.Equal(t, DefaultSource, ctx.CodeSource)
	assert.Equal(t, "Shell:1:1", ctx.Location())
}

func TestDiagnostic_ToError(t *testing.T) {
	d := Expected(Context{CodeSource: "Tests", Line: 1, Position: 3}, []token.Type{token.Assign})
	err := d.ToError()

	assert.Equal(t, bzerror.CodeSyntax, err.Code())
	assert.Equal(t, bzerror.SeverityLow, err.Severity())
	assert.Equal(t, 3, err.Details()["column"])
	assert.Equal(t, d.Error(), err.Error())

	assert.Equal(t, bzerror.CodeLexical, Lexical(Context{}, "x").ToError().Code())
	assert.Equal(t, bzerror.CodeEndOfInput, EndOfInput(Context{}).ToError().Code())
}

func TestAs(t *testing.T) {
	d := Syntax(NewContext("Tests"), "boom")
	wrapped := fmt.Errorf("parse: %w", d)

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Same(t, d, got)

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}
