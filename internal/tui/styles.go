package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fflap/portfolio/internal/theme"
)

type styles struct {
	title  lipgloss.Style
	prompt lipgloss.Style
	status lipgloss.Style
	help   lipgloss.Style
}

var dimStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("242"))

func stylesFor(p theme.Palette) styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Background)).
			Background(lipgloss.Color(p.Primary)).
			Padding(0, 1),
		prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Primary)),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)).
			Background(lipgloss.Color(p.Background)).
			Padding(0, 1),
		help: dimStyle,
	}
}
