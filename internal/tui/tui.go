// Package tui is an interactive browser for the authors on a running server.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hmans/authors/internal/client"
)

// viewState represents which view is currently active
type viewState int

const (
	viewList viewState = iota
	viewDetail
)

// App is the main TUI application model
type App struct {
	state  viewState
	list   listModel
	detail detailModel
	width  int
	height int
}

// New creates a new TUI application
func New(c *client.Client) *App {
	return &App{
		state: viewList,
		list:  newListModel(c),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.list.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.state == viewDetail {
				return a, tea.Quit
			}
			// For list, only quit if not filtering
			if a.state == viewList && !a.list.filtering() {
				return a, tea.Quit
			}
		}

	case selectAuthorMsg:
		a.state = viewDetail
		a.detail = newDetailModel(msg.author, a.width, a.height)
		return a, nil

	case backToListMsg:
		a.state = viewList
		return a, nil
	}

	// Forward all messages to the current view
	switch a.state {
	case viewList:
		a.list, cmd = a.list.Update(msg)
	case viewDetail:
		a.detail, cmd = a.detail.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case viewList:
		return a.list.View()
	case viewDetail:
		return a.detail.View()
	}
	return ""
}

// Run starts the TUI application
func Run(c *client.Client) error {
	p := tea.NewProgram(New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
