package tui

import (
	"taskboard/internal/kanban/store"
	kanbanview "taskboard/internal/tui/kanban"
	"taskboard/internal/tui/shared"
	"taskboard/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options configures the board the app opens with.
type Options struct {
	Name        string
	BoardConfig BoardSettings
}

// AppModel is the root model that dispatches to the board view
type AppModel struct {
	store       *store.Store
	boardView   kanbanview.BoardModel
	currentView ViewType
	width       int
	height      int
	ready       bool
}

// NewAppModel creates the root application model
func NewAppModel(s *store.Store, opts Options) AppModel {
	return AppModel{
		store:       s,
		boardView:   kanbanview.NewBoardModel(s, opts.Name, opts.BoardConfig.Geometry, opts.BoardConfig.Filter),
		currentView: ViewBoard,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.boardView.SetSize(msg.Width, msg.Height-3) // Reserve space for status bar
		return m, nil

	case SwitchViewMsg:
		m.currentView = msg.View
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.currentView == ViewHelp {
			m.currentView = ViewBoard
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.boardView, cmd = m.boardView.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.currentView == ViewHelp {
		return shared.RenderHelpPopup("Keyboard Shortcuts", kanbanview.HelpSections(), m.width, m.height)
	}

	board := m.store.Board()
	status := theme.StatusBar.Width(m.width).Render(
		theme.HelpHint.Render(statusText(len(board.Columns), board.TaskCount())),
	)

	return lipgloss.JoinVertical(lipgloss.Left, m.boardView.View(), status)
}

func statusText(columns, tasks int) string {
	return plural(columns, "column") + " • " + plural(tasks, "task") + " | ?: help | q: quit"
}
