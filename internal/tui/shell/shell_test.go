package shell

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bzlog "github.com/VDFOREVER/blaze/foundation/core/log"
	"github.com/VDFOREVER/blaze/foundation/scripting"
	"github.com/VDFOREVER/blaze/internal/store"
)

type memoryRecorder struct {
	records []*store.Record
}

func (r *memoryRecorder) RecordParse(ctx context.Context, rec *store.Record) error {
	r.records = append(r.records, rec)
	return nil
}

func testEngine() *scripting.Engine {
	return scripting.New(scripting.Options{Logger: bzlog.NewNop()})
}

func TestMode(t *testing.T) {
	assert.Equal(t, "parser", ModeParser.String())
	assert.Equal(t, "lexer", ModeLexer.String())
	assert.Equal(t, ModeLexer, ModeParser.Toggle())
	assert.Equal(t, ModeParser, ModeLexer.Toggle())
}

func TestEvaluate(t *testing.T) {
	engine := testEngine()

	tests := []struct {
		name       string
		mode       Mode
		line       string
		showAST    bool
		ok         bool
		statements int
		contains   []string
		diagnostic string
	}{
		{
			name: "parse two statements", mode: ModeParser,
			line: "mut x = 1; fin y = x;", ok: true, statements: 2,
			contains: []string{"Parsing successfully completed! Nodes Count: 2"},
		},
		{
			name: "parse with tree", mode: ModeParser, showAST: true,
			line: "mut x = 1;", ok: true, statements: 1,
			contains: []string{"Body (1 statements)", "VariableDeclaration"},
		},
		{
			name: "parse nothing", mode: ModeParser,
			line: "// only a comment", ok: true,
			contains: []string{"No statements"},
		},
		{
			name: "syntax error", mode: ModeParser,
			line:       "x y",
			contains:   []string{"Syntax Error:", "';' is expected", "<-= Shell:1:3"},
			diagnostic: "Syntax Error: ';' is expected <-= Shell:1:3",
		},
		{
			name: "lex tokens", mode: ModeLexer,
			line: "a.b", ok: true,
			contains: []string{`Alphanumeric("a") at 1:1`, `Dot(".") at 1:2`},
		},
		{
			name: "lexical error", mode: ModeLexer,
			line:       "a @",
			contains:   []string{"Lexical Error:"},
			diagnostic: "Lexical Error: Unexpected character '@' <-= Shell:1:3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := Evaluate(engine, tt.mode, tt.line, tt.showAST)

			assert.Equal(t, tt.ok, entry.OK)
			assert.Equal(t, tt.line, entry.Input)
			assert.Equal(t, tt.statements, entry.Statements)
			assert.Equal(t, tt.diagnostic, entry.Diagnostic)
			for _, want := range tt.contains {
				assert.Contains(t, entry.Output, want)
			}
		})
	}
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func submit(t *testing.T, m Model, line string) Model {
	t.Helper()
	m.input.SetValue(line)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	updated, _ = updated.(Model).Update(msg)
	return updated.(Model)
}

func TestModel_EnterEvaluatesAndRecords(t *testing.T) {
	recorder := &memoryRecorder{}
	m := sized(New(Config{Engine: testEngine(), Recorder: recorder}))

	m = submit(t, m, "mut total = price * amount;")
	m = submit(t, m, "mut x 1")

	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.True(t, entries[0].OK)
	assert.False(t, entries[1].OK)
	assert.Empty(t, m.input.Value())

	require.Len(t, recorder.records, 2)
	assert.Equal(t, 1, recorder.records[0].Statements)
	assert.Equal(t, "Shell", recorder.records[0].SourceLabel)
	assert.NotEmpty(t, recorder.records[1].Diagnostic)

	assert.Contains(t, m.View(), "mut total = price * amount;")
}

func TestModel_LexerModeDoesNotRecord(t *testing.T) {
	recorder := &memoryRecorder{}
	m := sized(New(Config{Engine: testEngine(), Recorder: recorder, Mode: ModeLexer}))

	m = submit(t, m, "a;")

	require.Len(t, m.Entries(), 1)
	assert.Equal(t, ModeLexer, m.Entries()[0].Mode)
	assert.Empty(t, recorder.records)
}

func TestModel_TabTogglesMode(t *testing.T) {
	m := sized(New(Config{Engine: testEngine()}))
	assert.Equal(t, ModeParser, m.Mode())
	assert.Contains(t, m.View(), "[parser]")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, ModeLexer, m.Mode())
	assert.Contains(t, m.View(), "[lexer]")
}

func TestModel_QuitCommands(t *testing.T) {
	for _, line := range []string{"exit", "quit"} {
		m := sized(New(Config{Engine: testEngine()}))
		m.input.SetValue(line)

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}

	m := sized(New(Config{Engine: testEngine()}))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_EmptyLineIsIgnored(t *testing.T) {
	m := sized(New(Config{Engine: testEngine()}))
	m.input.SetValue("   ")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, updated.(Model).Entries())
}

func TestModel_HistoryRecall(t *testing.T) {
	m := sized(New(Config{Engine: testEngine()}))
	m = submit(t, m, "a;")
	m = submit(t, m, "b;")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	assert.Equal(t, "b;", m.input.Value())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	assert.Equal(t, "a;", m.input.Value())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated, _ = updated.(Model).Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, updated.(Model).input.Value())
}

func TestModel_ClearTranscript(t *testing.T) {
	m := sized(New(Config{Engine: testEngine()}))
	m = submit(t, m, "a;")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Empty(t, updated.(Model).Entries())
}

func TestView_BeforeSize(t *testing.T) {
	assert.Equal(t, "Starting Blaze shell...", New(Config{}).View())
}
