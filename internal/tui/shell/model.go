// ============================================================================
// Blaze - scripting language front end
// ============================================================================
//
// Package:     shell
// Description: Interactive Blaze shell: each line is lexed or parsed and the
//              result or diagnostic is appended to the transcript
// Author:      VDFOREVER
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/VDFOREVER/blaze/foundation/scripting"
	bzast "github.com/VDFOREVER/blaze/foundation/scripting/ast"
	bzdiag "github.com/VDFOREVER/blaze/foundation/scripting/diag"
	"github.com/VDFOREVER/blaze/internal/store"
	"github.com/VDFOREVER/blaze/pkg/core/version"
)

// Logo shown in the header
const Logo = "🔥 Blaze"

// Recorder persists parse results
type Recorder interface {
	RecordParse(ctx context.Context, rec *store.Record) error
}

// Config holds shell configuration
type Config struct {
	Engine   *scripting.Engine
	Mode     Mode
	ShowAST  bool
	Recorder Recorder
}

// Model is the shell TUI model
type Model struct {
	// State
	width   int
	height  int
	ready   bool
	mode    Mode
	showAST bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	entries []Entry
	history []string
	histPos int

	engine   *scripting.Engine
	recorder Recorder
}

// New creates a shell model
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Prompt = PromptStyle.Render("blaze> ")
	ti.Placeholder = "mut x = 1;"
	ti.CharLimit = 4096
	ti.Focus()

	engine := cfg.Engine
	if engine == nil {
		engine = scripting.New(scripting.Options{})
	}

	return Model{
		mode:     cfg.Mode,
		showAST:  cfg.ShowAST,
		input:    ti,
		engine:   engine,
		recorder: cfg.Recorder,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.mode = m.mode.Toggle()
			return m, nil

		case "ctrl+l":
			m.entries = nil
			m.updateContent()
			return m, nil

		case "up":
			m.recall(-1)
			return m, nil

		case "down":
			m.recall(1)
			return m, nil

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			if line == "exit" || line == "quit" {
				return m, tea.Quit
			}
			m.history = append(m.history, line)
			m.histPos = len(m.history)
			return m, m.evaluate(line)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		footerHeight := 3
		height := msg.Height - headerHeight - footerHeight
		if height < 1 {
			height = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.input.Width = msg.Width - lipgloss.Width(m.input.Prompt) - 1
		m.updateContent()

	case evaluatedMsg:
		m.entries = append(m.entries, msg.entry)
		m.updateContent()
		m.viewport.GotoBottom()
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// recall moves through previously entered lines
func (m *Model) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	m.histPos += step
	if m.histPos < 0 {
		m.histPos = 0
	}
	if m.histPos >= len(m.history) {
		m.histPos = len(m.history)
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.histPos])
	m.input.CursorEnd()
}

// evaluate runs the line in the current mode
func (m Model) evaluate(line string) tea.Cmd {
	engine, mode, showAST, recorder := m.engine, m.mode, m.showAST, m.recorder
	return func() tea.Msg {
		entry := Evaluate(engine, mode, line, showAST)
		if recorder != nil && mode == ModeParser {
			_ = recorder.RecordParse(context.Background(), recordFor(engine, entry))
		}
		return evaluatedMsg{entry: entry}
	}
}

// Evaluate lexes or parses one line and renders the outcome
func Evaluate(engine *scripting.Engine, mode Mode, line string, showAST bool) Entry {
	entry := Entry{Input: line, Mode: mode}

	if mode == ModeLexer {
		tokens, err := engine.Lex(line)
		if err != nil {
			return failed(entry, err)
		}
		var b strings.Builder
		for _, tok := range tokens {
			b.WriteString(TokenStyle.Render(tok.String()))
			b.WriteString("\n")
		}
		entry.OK = true
		entry.Output = strings.TrimRight(b.String(), "\n")
		return entry
	}

	result, err := engine.Analyze(line)
	if err != nil {
		return failed(entry, err)
	}

	entry.OK = true
	entry.Statements = result.Statements()
	if entry.Statements == 0 {
		entry.Output = HelpDescStyle.Render("No statements")
		return entry
	}

	entry.Output = SuccessStyle.Render(fmt.Sprintf("Parsing successfully completed! Nodes Count: %d", entry.Statements))
	if showAST {
		entry.Output += "\n" + strings.TrimRight(bzast.Print(result.Body), "\n")
	}
	return entry
}

func failed(entry Entry, err error) Entry {
	entry.Output = RenderError(err)
	if d, ok := bzdiag.As(err); ok {
		entry.Diagnostic = d.Error()
	} else {
		entry.Diagnostic = err.Error()
	}
	return entry
}

func recordFor(engine *scripting.Engine, entry Entry) *store.Record {
	return &store.Record{
		SourceLabel: engine.SourceLabel(),
		Source:      entry.Input,
		Success:     entry.OK,
		Statements:  entry.Statements,
		Diagnostic:  entry.Diagnostic,
	}
}

// Entries returns the transcript
func (m Model) Entries() []Entry {
	return m.entries
}

// Mode returns the current mode
func (m Model) Mode() Mode {
	return m.mode
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Starting Blaze shell..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHeader() string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render(Logo+" "+version.Blaze),
		"   ",
		ModeStyle.Render("["+m.mode.String()+"]"),
	)
	return TitlePanelStyle.Render(header)
}

func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("Enter", "Run"),
		RenderKeyHint("Tab", "Lexer/Parser"),
		RenderKeyHint("↑/↓", "History"),
		RenderKeyHint("Ctrl+L", "Clear"),
		RenderKeyHint("Ctrl+C", "Quit"),
	}
	return strings.Join(items, "  ")
}

// updateContent renders the transcript into the viewport
func (m *Model) updateContent() {
	var b strings.Builder
	for _, e := range m.entries {
		b.WriteString(PromptStyle.Render(e.Mode.String() + "> "))
		b.WriteString(InputEchoStyle.Render(e.Input))
		b.WriteString("\n")
		b.WriteString(indent(e.Output, "  "))
		b.WriteString("\n\n")
	}
	m.viewport.SetContent(b.String())
}

// Run starts the shell
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
