package tui

import (
	"fmt"

	"taskboard/internal/kanban/dnd"
	"taskboard/internal/kanban/filter"
	"taskboard/internal/kanban/store"

	tea "github.com/charmbracelet/bubbletea"
)

// BoardSettings carries the configured drop geometry and opening filter.
type BoardSettings struct {
	Geometry dnd.Geometry
	Filter   filter.Mode
}

// Run starts the interactive board and blocks until the user quits.
func Run(s *store.Store, opts Options) error {
	p := tea.NewProgram(NewAppModel(s, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running board: %w", err)
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
