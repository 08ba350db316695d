package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fflap/portfolio/internal/console"
	"github.com/fflap/portfolio/internal/theme"
	"github.com/fflap/portfolio/internal/visitor"
)

func newTestModel() (Model, *visitor.View) {
	interp := console.NewInterpreter(console.Deps{})
	v := visitor.NewRegistry(interp, nil).Get(context.Background(), "local")
	m := NewModel(context.Background(), v, interp, "portfolio")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), m.session
}

func typeLine(m Model, line string) Model {
	m.input.SetValue(line)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model)
}

func TestEnterSubmitsLine(t *testing.T) {
	m, v := newTestModel()
	m = typeLine(m, "help")

	if len(v.Scrollback()) != 2 {
		t.Fatalf("scrollback = %+v", v.Scrollback())
	}
	if m.input.Value() != "" {
		t.Fatalf("input not cleared: %q", m.input.Value())
	}
	if !strings.Contains(m.View(), "Available commands:") {
		t.Fatalf("view missing help output:\n%s", m.View())
	}
}

func TestThemeCommandUpdatesStatus(t *testing.T) {
	m, _ := newTestModel()
	m = typeLine(m, "theme orange")
	if got := m.visitor.Theme.Get(); got != theme.Orange {
		t.Fatalf("theme = %q", got)
	}
	if !strings.Contains(m.View(), "theme: orange") {
		t.Fatalf("status line not updated:\n%s", m.View())
	}
}

func TestRestartClearsScrollback(t *testing.T) {
	m, v := newTestModel()
	m = typeLine(m, "whoami")
	m = typeLine(m, "restart")
	if len(v.Scrollback()) != 0 {
		t.Fatalf("scrollback = %+v", v.Scrollback())
	}
	if strings.Contains(m.View(), "Nathan Yan") {
		t.Fatal("old output still shown after restart")
	}
}

func TestTabCompletes(t *testing.T) {
	m, _ := newTestModel()
	m.input.SetValue("backg")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := next.(Model).input.Value(); got != "background " {
		t.Fatalf("completed = %q", got)
	}
}

func TestEscQuits(t *testing.T) {
	m, _ := newTestModel()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("esc should quit")
	}
	if next.(Model).View() != "" {
		t.Fatal("view should be empty after quitting")
	}
}
