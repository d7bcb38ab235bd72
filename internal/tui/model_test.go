package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/calc/foundation/calc"
	mdwlog "github.com/msto63/calc/foundation/core/log"
)

func newModel(t *testing.T) Model {
	t.Helper()
	engine, err := calc.NewEngine(calc.Options{Logger: mdwlog.NewNop()})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	m := New(Config{Engine: engine, Logger: mdwlog.NewNop(), Version: "0.1.0", Plain: true})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func typeLine(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	updated, cmd := updated.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestModel_Evaluate(t *testing.T) {
	m := newModel(t)

	m, _ = typeLine(t, m, "2+3*4")
	m, _ = typeLine(t, m, "int a = 5 ;")
	m, _ = typeLine(t, m, "a / 0")

	entries := m.Entries()
	if len(entries) != 6 {
		t.Fatalf("entries = %+v, want 6", entries)
	}
	if entries[1].Kind != EntryOutput || entries[1].Text != "14" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
	if entries[3].Text != "a = 5" {
		t.Errorf("entries[3] = %+v", entries[3])
	}
	if entries[5].Kind != EntryError || !strings.Contains(entries[5].Text, "DIVISION_BY_ZERO") {
		t.Errorf("entries[5] = %+v", entries[5])
	}

	if !strings.HasPrefix(m.Transcript(), ">> 2+3*4\n14\n") {
		t.Errorf("Transcript() = %q", m.Transcript())
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
}

func TestModel_CommandsAndQuit(t *testing.T) {
	m := newModel(t)

	m, _ = typeLine(t, m, ":ast 1+2")
	if !strings.Contains(m.Transcript(), "└── 2") {
		t.Errorf("Transcript() missing tree:\n%s", m.Transcript())
	}

	m, cmd := typeLine(t, m, ":quit")
	if cmd == nil {
		t.Fatal(":quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error(":quit should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestModel_History(t *testing.T) {
	m := newModel(t)
	m, _ = typeLine(t, m, "1+1")
	m, _ = typeLine(t, m, "2+2")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	if m.input.Value() != "2+2" {
		t.Errorf("after up: %q", m.input.Value())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	if m.input.Value() != "1+1" {
		t.Errorf("after up up: %q", m.input.Value())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated, _ = updated.(Model).Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	if m.input.Value() != "" {
		t.Errorf("after returning to new input: %q", m.input.Value())
	}
}

func TestModel_View(t *testing.T) {
	engine, _ := calc.NewEngine(calc.Options{Logger: mdwlog.NewNop()})
	m := New(Config{Engine: engine, Logger: mdwlog.NewNop(), Plain: true})
	if m.View() != "Lade calc..." {
		t.Errorf("View() before size = %q", m.View())
	}

	m = newModel(t)
	m, _ = typeLine(t, m, "x")
	view := m.View()
	for _, want := range []string{"calc 0.1.0", "23", "Esc beenden"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !updated.(Model).quitting {
		t.Error("Esc should quit")
	}
}
