package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/hmans/authors/internal/author"
	"github.com/hmans/authors/internal/ui"
)

// Cached glamour renderer - initialized once
var (
	glamourRenderer     *glamour.TermRenderer
	glamourRendererOnce sync.Once
)

func getGlamourRenderer() *glamour.TermRenderer {
	glamourRendererOnce.Do(func() {
		var err error
		glamourRenderer, err = glamour.NewTermRenderer(glamour.WithAutoStyle())
		if err != nil {
			glamourRenderer = nil
		}
	})
	return glamourRenderer
}

// detailModel displays a single author
type detailModel struct {
	viewport viewport.Model
	author   *author.Author
	width    int
	height   int
}

func newDetailModel(a *author.Author, width, height int) detailModel {
	m := detailModel{
		author: a,
		width:  width,
		height: height,
	}
	m.viewport = viewport.New(max(width-4, 0), max(height-6, 0))
	m.viewport.SetContent(m.renderBody())
	return m
}

// authorMarkdown describes an author as a markdown document.
func authorMarkdown(a *author.Author) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", a.Info.Name)
	sb.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| ID | `%s` |\n", a.ID)
	fmt.Fprintf(&sb, "| Age | %s |\n", valueOrPlaceholder(a.Info.Age))
	gender := ui.Placeholder
	if a.Info.Gender != nil && *a.Info.Gender != "" {
		gender = *a.Info.Gender
	}
	fmt.Fprintf(&sb, "| Gender | %s |\n", gender)
	return sb.String()
}

func valueOrPlaceholder(age *int) string {
	if age == nil {
		return ui.Placeholder
	}
	return fmt.Sprint(*age)
}

func (m detailModel) renderBody() string {
	md := authorMarkdown(m.author)
	if r := getGlamourRenderer(); r != nil {
		if out, err := r.Render(md); err == nil {
			return out
		}
	}
	return md
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-4, 0)
		m.viewport.Height = max(msg.Height-6, 0)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return m, func() tea.Msg {
				return backToListMsg{}
			}
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m detailModel) View() string {
	header := ui.ID.Render(m.author.ID) + " " + ui.RenderGender(m.author.Info.Gender)

	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Width(max(m.width-4, 0)).
		Render(m.viewport.View())

	footer := helpKeyStyle.Render("j/k") + " " + helpStyle.Render("scroll") + "  " +
		helpKeyStyle.Render("esc") + " " + helpStyle.Render("back") + "  " +
		helpKeyStyle.Render("q") + " " + helpStyle.Render("quit")

	return header + "\n" + body + "\n" + footer
}
