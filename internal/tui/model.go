// ============================================================================
// calc - Interaktiver Rechner
// ============================================================================
//
// Package:     tui
// Description: Bubbletea front end: scrolling transcript, input line with
//              history and the same meta commands as the line REPL
// Author:      msto63
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package tui

import (
	"bytes"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/calc/foundation/calc"
	mdwlog "github.com/msto63/calc/foundation/core/log"
	"github.com/msto63/calc/internal/display"
	"github.com/msto63/calc/internal/repl"
)

// EntryKind classifies transcript entries
type EntryKind int

const (
	EntryInput EntryKind = iota
	EntryOutput
	EntryError
)

// Entry is one block of the transcript
type Entry struct {
	Kind EntryKind
	Text string
}

// Config holds TUI configuration
type Config struct {
	Engine  *calc.Engine
	Logger  *mdwlog.Logger
	Prompt  string
	ShowAST bool
	Version string
	Plain   bool
}

// Model is the main Bubbletea model for the calculator
type Model struct {
	// State
	width    int
	height   int
	ready    bool
	quitting bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Session
	session *repl.REPL
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	format  *display.Formatter
	entries []Entry
	version string

	// Input history
	history      *history
	historyIndex int    // -1 = new input
	currentInput string // input saved while browsing history
}

// history records submitted lines for the up/down keys
type history struct {
	lines []string
}

func (h *history) Prompt(string) (string, error) { return "", io.EOF }
func (h *history) AppendHistory(line string)     { h.lines = append(h.lines, line) }
func (h *history) Close() error                  { return nil }

// New creates a new TUI model
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Prompt = cfg.Prompt
	if ti.Prompt == "" {
		ti.Prompt = ">> "
	}
	ti.Placeholder = "Ausdruck oder Deklaration, :help für Hilfe"
	ti.CharLimit = 4096
	ti.PromptStyle = display.NameStyle
	ti.Focus()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	printer := display.NewPrinter(out, errOut, cfg.Plain)
	hist := &history{}

	session := repl.New(repl.Options{
		Engine:  cfg.Engine,
		Printer: printer,
		Reader:  hist,
		Logger:  cfg.Logger,
		ShowAST: cfg.ShowAST,
	})

	return Model{
		input:        ti,
		viewport:     viewport.New(80, 20),
		session:      session,
		out:          out,
		errOut:       errOut,
		format:       printer.Formatter,
		version:      cfg.Version,
		history:      hist,
		historyIndex: -1,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-lipgloss.Width(m.input.Prompt)-2, 10)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-lipgloss.Height(m.renderHeader())-3, 3)
		m.ready = true
		m.updateViewportContent()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			line := m.input.Value()
			m.input.SetValue("")
			m.historyIndex = -1
			if m.submit(line) {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case tea.KeyUp:
			m.browseHistory(-1)
			return m, nil

		case tea.KeyDown:
			m.browseHistory(1)
			return m, nil

		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit runs a line through the session and appends its output to the
// transcript. It reports whether the session asked to quit.
func (m *Model) submit(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}

	m.entries = append(m.entries, Entry{Kind: EntryInput, Text: strings.TrimSpace(line)})
	quit := m.session.HandleLine(line)

	if s := strings.TrimRight(m.out.String(), "\n"); s != "" {
		m.entries = append(m.entries, Entry{Kind: EntryOutput, Text: s})
	}
	if s := strings.TrimRight(m.errOut.String(), "\n"); s != "" {
		m.entries = append(m.entries, Entry{Kind: EntryError, Text: s})
	}
	m.out.Reset()
	m.errOut.Reset()

	m.updateViewportContent()
	return quit
}

// browseHistory moves through submitted lines; dir is -1 (older) or 1 (newer)
func (m *Model) browseHistory(dir int) {
	lines := m.history.lines
	if len(lines) == 0 {
		return
	}

	if m.historyIndex == -1 {
		if dir > 0 {
			return
		}
		m.currentInput = m.input.Value()
		m.historyIndex = len(lines) - 1
	} else {
		m.historyIndex += dir
	}

	switch {
	case m.historyIndex < 0:
		m.historyIndex = 0
	case m.historyIndex >= len(lines):
		m.historyIndex = -1
		m.input.SetValue(m.currentInput)
		m.input.CursorEnd()
		return
	}

	m.input.SetValue(lines[m.historyIndex])
	m.input.CursorEnd()
}

// Entries returns the transcript
func (m Model) Entries() []Entry {
	return m.entries
}

// Transcript renders the transcript without styles
func (m Model) Transcript() string {
	var b strings.Builder
	for _, e := range m.entries {
		if e.Kind == EntryInput {
			b.WriteString(m.input.Prompt)
		}
		b.WriteString(e.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Lade calc..."
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
	return m.format.Banner(m.version)
}

func (m Model) renderHelpBar() string {
	help := "Enter auswerten • ↑/↓ Verlauf • PgUp/PgDn blättern • Esc beenden"
	if m.format.Plain() {
		return help
	}
	return display.HelpStyle.Render(help)
}

// updateViewportContent re-renders the transcript and scrolls to the end
func (m *Model) updateViewportContent() {
	var b strings.Builder
	for _, e := range m.entries {
		switch e.Kind {
		case EntryInput:
			b.WriteString(m.input.PromptStyle.Render(m.input.Prompt) + e.Text)
		default:
			b.WriteString(e.Text)
		}
		b.WriteByte('\n')
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// Run starts the TUI on the terminal
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
