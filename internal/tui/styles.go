package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hmans/authors/internal/ui"
)

var (
	listTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fff")).
			Background(ui.ColorPrimary).
			Padding(0, 1).
			Bold(true)

	helpKeyStyle = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(ui.ColorMuted)
)
