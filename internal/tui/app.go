// Package tui runs the console as a local terminal program.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fflap/portfolio/internal/console"
	"github.com/fflap/portfolio/internal/termrender"
	"github.com/fflap/portfolio/internal/visitor"
)

const chromeRows = 3 // title, input, help

// Model is the bubbletea model of the local console: a scrolling history
// above a prompt.
type Model struct {
	ctx      context.Context
	visitor  *visitor.Visitor
	session  *visitor.View
	interp   *console.Interpreter
	title    string
	banner   string
	input    textinput.Model
	view     viewport.Model
	width    int
	height   int
	quitting bool
}

// NewModel mounts a fresh console for v. interp is used for tab completion
// and may be nil.
func NewModel(ctx context.Context, v *visitor.Visitor, interp *console.Interpreter, title string) Model {
	in := textinput.New()
	in.Prompt = termrender.Prompt
	in.Placeholder = "help"
	in.CharLimit = 256
	in.Focus()

	m := Model{
		ctx:     ctx,
		visitor: v,
		session: v.Mount(),
		interp:  interp,
		title:   title,
		banner:  "Type 'help' to see available commands. Esc or Ctrl+C to quit.",
		input:   in,
		view:    viewport.New(80, 20),
		width:   80,
		height:  20 + chromeRows,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = msg.Width
		m.view.Height = max(1, msg.Height-chromeRows)
		m.input.Width = max(1, msg.Width-len(termrender.Prompt)-1)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			m.submit()
			return m, nil
		case "tab":
			m.complete()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() {
	line := m.input.Value()
	m.input.Reset()
	m.session.Submit(m.ctx, line)
	m.refresh()
}

func (m *Model) complete() {
	if m.interp == nil {
		return
	}
	line := m.input.Value()
	if strings.ContainsRune(line, ' ') {
		return
	}
	if matches := m.interp.Complete(line); len(matches) == 1 {
		m.input.SetValue(matches[0] + " ")
		m.input.CursorEnd()
	}
}

// refresh re-renders the scrollback with the current theme.
func (m *Model) refresh() {
	st := stylesFor(m.visitor.Theme.Palette())
	m.input.PromptStyle = st.prompt

	var b strings.Builder
	b.WriteString(dimStyle.Render(m.banner))
	styles := termrender.NewStyles(m.visitor.Theme.Palette())
	for _, e := range m.session.Scrollback() {
		b.WriteString("\n")
		b.WriteString(styles.Render(e))
	}
	m.view.SetContent(b.String())
	m.view.GotoBottom()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	st := stylesFor(m.visitor.Theme.Palette())
	var b strings.Builder
	b.WriteString(st.title.Render(m.title))
	b.WriteString(st.help.Render("  theme: " + string(m.visitor.Theme.Get()) + "  background: " + m.visitor.Background.Label()))
	b.WriteString("\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(st.help.Render("enter: run  tab: complete  pgup/pgdown: scroll  esc: quit"))
	return b.String()
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
