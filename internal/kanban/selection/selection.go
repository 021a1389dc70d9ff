// Package selection keeps the transient multi-select overlay for a board and
// runs bulk operations over the selected tasks.
package selection

import (
	"time"

	"taskboard/internal/kanban/models"
	"taskboard/internal/kanban/operations"
)

// Mutator applies a named whole-board transform. *store.Store satisfies it.
type Mutator interface {
	Apply(name string, fn func(models.Board) (models.Board, bool)) bool
	Now() time.Time
}

// Manager tracks selected task IDs. Selection never touches the board itself.
type Manager struct {
	selected map[string]bool
	active   bool
}

func NewManager() *Manager {
	return &Manager{selected: make(map[string]bool)}
}

// Active reports whether select mode is on.
func (m *Manager) Active() bool {
	return m.active
}

// ToggleSelectMode enters or leaves select mode. Leaving clears every selection.
func (m *Manager) ToggleSelectMode() bool {
	m.active = !m.active
	if !m.active {
		m.Clear()
	}
	return m.active
}

func (m *Manager) Toggle(taskID string) {
	if m.selected[taskID] {
		delete(m.selected, taskID)
		return
	}
	m.selected[taskID] = true
}

func (m *Manager) IsSelected(taskID string) bool {
	return m.selected[taskID]
}

func (m *Manager) Count() int {
	return len(m.selected)
}

func (m *Manager) HasSelected() bool {
	return len(m.selected) > 0
}

func (m *Manager) Clear() {
	m.selected = make(map[string]bool)
}

// Selected returns the selected tasks present on the board, in column order
// then task order.
func (m *Manager) Selected(board models.Board) []models.Task {
	var out []models.Task
	for _, col := range board.Columns {
		for _, t := range col.Todos {
			if m.selected[t.ID] {
				out = append(out, t)
			}
		}
	}
	return out
}

func (m *Manager) SelectAllInColumn(board models.Board, columnID string) {
	col := board.GetColumn(columnID)
	if col == nil {
		return
	}
	for _, t := range col.Todos {
		m.selected[t.ID] = true
	}
}

func (m *Manager) DeselectAllInColumn(board models.Board, columnID string) {
	col := board.GetColumn(columnID)
	if col == nil {
		return
	}
	for _, t := range col.Todos {
		delete(m.selected, t.ID)
	}
}

// SelectedInColumn counts the selected tasks of one column.
func (m *Manager) SelectedInColumn(board models.Board, columnID string) int {
	col := board.GetColumn(columnID)
	if col == nil {
		return 0
	}
	n := 0
	for _, t := range col.Todos {
		if m.selected[t.ID] {
			n++
		}
	}
	return n
}

// Prune drops selections for tasks that are no longer on the board.
func (m *Manager) Prune(board models.Board) {
	present := make(map[string]bool, board.TaskCount())
	for _, id := range board.TaskIDs() {
		present[id] = true
	}
	for id := range m.selected {
		if !present[id] {
			delete(m.selected, id)
		}
	}
}

func (m *Manager) ids() map[string]bool {
	out := make(map[string]bool, len(m.selected))
	for id := range m.selected {
		out[id] = true
	}
	return out
}

// DeleteSelected removes every selected task from the board.
func (m *Manager) DeleteSelected(mut Mutator) bool {
	if !m.HasSelected() {
		return false
	}
	ids := m.ids()
	ok := mut.Apply("delete-selected", func(b models.Board) (models.Board, bool) {
		return operations.RemoveTasks(b, ids)
	})
	m.Clear()
	return ok
}

func (m *Manager) MarkSelectedCompleted(mut Mutator) bool {
	return m.markSelected(mut, true)
}

func (m *Manager) MarkSelectedIncomplete(mut Mutator) bool {
	return m.markSelected(mut, false)
}

func (m *Manager) markSelected(mut Mutator, completed bool) bool {
	if !m.HasSelected() {
		return false
	}
	ids := m.ids()
	now := mut.Now()
	name := "mark-selected-incomplete"
	if completed {
		name = "mark-selected-completed"
	}
	ok := mut.Apply(name, func(b models.Board) (models.Board, bool) {
		return operations.SetCompleted(b, ids, completed, now)
	})
	m.Clear()
	return ok
}

// MoveSelectedToColumn appends every selected task from other columns to the
// target column in board order. Selected tasks already in the target keep
// their position. Everything is deselected unless the target is missing.
func (m *Manager) MoveSelectedToColumn(mut Mutator, targetColumnID string) bool {
	if !m.HasSelected() {
		return false
	}
	ids := m.ids()
	now := mut.Now()
	missing := false
	ok := mut.Apply("move-selected", func(b models.Board) (models.Board, bool) {
		if b.GetColumnIndex(targetColumnID) == -1 {
			missing = true
			return b, false
		}
		return operations.GatherToColumn(b, ids, targetColumnID, now)
	})
	if !missing {
		m.Clear()
	}
	return ok
}
