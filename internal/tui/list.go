package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hmans/authors/internal/author"
	"github.com/hmans/authors/internal/client"
	"github.com/hmans/authors/internal/ui"
)

const loadTimeout = 10 * time.Second

// authorItem wraps an Author to implement list.Item
type authorItem struct {
	author *author.Author
}

func (i authorItem) Title() string       { return i.author.Info.Name }
func (i authorItem) Description() string { return i.author.ID }
func (i authorItem) FilterValue() string { return i.author.Info.Name + " " + i.author.ID }

// itemDelegate handles rendering of list items
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(authorItem)
	if !ok {
		return
	}

	idCol := lipgloss.NewStyle().Width(10).Render(ui.ID.Render(item.author.ID))
	ageCol := lipgloss.NewStyle().Width(6).Render(ui.RenderAge(item.author.Info.Age))
	genderCol := lipgloss.NewStyle().Width(9).Render(ui.RenderGenderText(item.author.Info.Gender))

	name := item.author.Info.Name
	var str string
	if index == m.Index() {
		cursor := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Render("▌")
		nameStyled := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary).Render(name)
		str = cursor + " " + idCol + ageCol + genderCol + nameStyled
	} else {
		str = "  " + idCol + ageCol + genderCol + name
	}

	fmt.Fprint(w, str)
}

// listModel is the model for the author list view
type listModel struct {
	list   list.Model
	client *client.Client
	width  int
	height int
	err    error
}

func newListModel(c *client.Client) listModel {
	l := list.New([]list.Item{}, itemDelegate{}, 0, 0)
	l.Title = "Authors"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = listTitleStyle
	l.Styles.TitleBar = lipgloss.NewStyle().Padding(0, 0, 1, 2)
	l.Styles.FilterPrompt = lipgloss.NewStyle().Foreground(ui.ColorPrimary)
	l.Styles.FilterCursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary)

	return listModel{
		list:   l,
		client: c,
	}
}

// authorsLoadedMsg is sent when authors are loaded
type authorsLoadedMsg struct {
	authors []*author.Author
}

// errMsg is sent when an error occurs
type errMsg struct {
	err error
}

// selectAuthorMsg is sent when an author is selected
type selectAuthorMsg struct {
	author *author.Author
}

// backToListMsg returns from the detail view
type backToListMsg struct{}

func (m listModel) Init() tea.Cmd {
	return m.loadAuthors
}

func (m listModel) loadAuthors() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	authors, err := m.client.Authors(ctx)
	if err != nil {
		return errMsg{err}
	}
	return authorsLoadedMsg{authors}
}

func (m listModel) filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve space for border and footer
		m.list.SetSize(msg.Width-2, msg.Height-4)

	case authorsLoadedMsg:
		m.err = nil
		items := make([]list.Item, len(msg.authors))
		for i, a := range msg.authors {
			items[i] = authorItem{author: a}
		}
		return m, m.list.SetItems(items)

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if !m.filtering() {
			switch msg.String() {
			case "enter":
				if item, ok := m.list.SelectedItem().(authorItem); ok {
					return m, func() tea.Msg {
						return selectAuthorMsg{author: item.author}
					}
				}
			case "r":
				return m, m.loadAuthors
			}
		}
	}

	// Always forward to the list component
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m listModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress r to retry or q to quit.", m.err)
	}

	if m.width == 0 {
		return "Loading..."
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorMuted).
		Width(m.width - 2).
		Height(m.height - 4)

	content := border.Render(m.list.View())

	help := helpKeyStyle.Render("enter") + " " + helpStyle.Render("view") + "  " +
		helpKeyStyle.Render("/") + " " + helpStyle.Render("filter") + "  " +
		helpKeyStyle.Render("r") + " " + helpStyle.Render("reload") + "  " +
		helpKeyStyle.Render("q") + " " + helpStyle.Render("quit")

	return content + "\n" + help
}
