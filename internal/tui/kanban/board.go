package kanban

import (
	"fmt"

	"taskboard/internal/kanban/dnd"
	"taskboard/internal/kanban/filter"
	"taskboard/internal/kanban/models"
	"taskboard/internal/kanban/selection"
	"taskboard/internal/kanban/store"
	"taskboard/internal/logs"
	"taskboard/internal/tui/messages"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type boardMode int

const (
	boardModeNormal boardMode = iota
	boardModeMove
	boardModeColumnMove
	boardModeInput
	boardModeConfirm
)

type inputPurpose int

const (
	inputNewTask inputPurpose = iota
	inputEditTask
	inputNewColumn
	inputRenameColumn
	inputSearch
)

type confirmAction int

const (
	confirmDeleteTask confirmAction = iota
	confirmDeleteColumn
	confirmDeleteSelected
)

// viewState is shared with the drag coordinator so drops resolve against
// exactly the filtered view on screen.
type viewState struct {
	filter filter.State
}

type BoardModel struct {
	store       *store.Store
	board       models.Board
	selection   *selection.Manager
	coordinator *dnd.Coordinator
	geometry    dnd.Geometry
	view        *viewState

	name                   string
	selectedCol            int
	selectedCard           int
	columnCursorPos        []int
	columnScrollOffsets    []int
	columnHorizontalOffset int

	mode    boardMode
	input   textinput.Model
	purpose inputPurpose
	confirm confirmAction

	width   int
	height  int
	err     error
	message string
}

// NewBoardModel builds the board view around a store. mode is the filter the
// board opens with.
func NewBoardModel(s *store.Store, name string, geometry dnd.Geometry, mode filter.Mode) BoardModel {
	if geometry.RowHeight <= 0 || geometry.ColumnSlotWidth <= 0 {
		geometry = dnd.DefaultGeometry()
	}
	view := &viewState{filter: filter.State{Mode: mode}}

	m := BoardModel{
		store:     s,
		selection: selection.NewManager(),
		geometry:  geometry,
		view:      view,
		name:      name,
		mode:      boardModeNormal,
	}
	m.coordinator = dnd.NewCoordinator(s, boardLayout{}, geometry, func() filter.State { return view.filter })
	m.refresh()
	return m
}

// SetSize updates the view dimensions
func (m *BoardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

// IsModal returns true while the board is capturing text or a confirmation
func (m BoardModel) IsModal() bool {
	return m.mode == boardModeInput || m.mode == boardModeConfirm
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses and drag lifecycle messages
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dnd.DragStartMsg, dnd.DragEnterMsg, dnd.DragLeaveMsg, dnd.DropMsg, dnd.DragCancelMsg:
		m.handleDrag(msg)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case boardModeNormal:
			return m.updateNormal(msg)
		case boardModeMove:
			return m.updateMove(msg)
		case boardModeColumnMove:
			return m.updateColumnMove(msg)
		case boardModeInput:
			return m.updateInput(msg)
		case boardModeConfirm:
			return m.updateConfirm(msg)
		}
	}

	return m, nil
}

func (m BoardModel) updateNormal(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	m.message = ""
	m.err = nil

	if m.selection.Active() {
		if handled, next, cmd := m.updateSelect(msg); handled {
			return next, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		return m, messages.SwitchView(messages.ViewHelp)

	case "esc":
		if !m.view.filter.IsZero() {
			m.view.filter = filter.State{}
			m.message = "Filter cleared"
			m.clampCursors()
		}

	case "h", "left":
		m.focusColumn(m.selectedCol - 1)

	case "l", "right":
		m.focusColumn(m.selectedCol + 1)

	case "j", "down":
		if m.selectedCard < len(m.visibleTasks(m.selectedCol))-1 {
			m.selectedCard++
			m.rememberCursor()
			m.adjustScrollPosition()
		}

	case "k", "up":
		if m.selectedCard > 0 {
			m.selectedCard--
			m.rememberCursor()
			m.adjustScrollPosition()
		}

	case "/":
		return m.startInput(inputSearch, "search...", m.view.filter.SearchTerm)

	case "f":
		m.view.filter.Mode = m.view.filter.Mode.Next()
		m.message = "Showing " + m.view.filter.Mode.String()
		m.clampCursors()

	case "n":
		if len(m.board.Columns) > 0 {
			return m.startInput(inputNewTask, "new task...", "")
		}

	case "enter", "e":
		if _, task, ok := m.currentTask(); ok {
			return m.startInput(inputEditTask, "task text", task.Text)
		}

	case "x":
		if col, task, ok := m.currentTask(); ok {
			m.store.ToggleComplete(col.ID, task.ID)
			m.refresh()
			m.focusTask(task.ID)
		}

	case "D":
		if _, _, ok := m.currentTask(); ok {
			m.mode = boardModeConfirm
			m.confirm = confirmDeleteTask
		}

	case "m", " ":
		if col, task, ok := m.currentTask(); ok {
			m.handleDrag(dnd.DragStartMsg{Descriptor: dnd.TaskDrag(task.ID, col.ID)})
			m.mode = boardModeMove
		}

	case "c":
		return m.startInput(inputNewColumn, "column title...", "")

	case "r":
		if col, ok := m.currentColumn(); ok {
			return m.startInput(inputRenameColumn, "column title", col.Title)
		}

	case "X":
		if _, ok := m.currentColumn(); ok {
			m.mode = boardModeConfirm
			m.confirm = confirmDeleteColumn
		}

	case "M":
		if col, ok := m.currentColumn(); ok {
			m.handleDrag(dnd.DragStartMsg{Descriptor: dnd.ColumnDrag(col.ID, m.selectedCol)})
			m.mode = boardModeColumnMove
		}

	case "v":
		m.selection.ToggleSelectMode()
		m.message = "Select mode"
	}

	return m, nil
}

// updateSelect handles the keys that only exist while select mode is on.
func (m BoardModel) updateSelect(msg tea.KeyMsg) (bool, BoardModel, tea.Cmd) {
	switch msg.String() {
	case "v", "esc":
		m.selection.ToggleSelectMode()
		m.message = "Selection cleared"

	case " ":
		if _, task, ok := m.currentTask(); ok {
			m.selection.Toggle(task.ID)
		}

	case "a":
		if col, ok := m.currentColumn(); ok {
			m.selection.SelectAllInColumn(m.board, col.ID)
		}

	case "A":
		if col, ok := m.currentColumn(); ok {
			m.selection.DeselectAllInColumn(m.board, col.ID)
		}

	case "C":
		n := m.selection.Count()
		if m.selection.MarkSelectedCompleted(m.store) {
			m.message = fmt.Sprintf("Completed %d tasks", n)
		}
		m.refresh()

	case "U":
		n := m.selection.Count()
		if m.selection.MarkSelectedIncomplete(m.store) {
			m.message = fmt.Sprintf("Reopened %d tasks", n)
		}
		m.refresh()

	case "d":
		if m.selection.HasSelected() {
			m.mode = boardModeConfirm
			m.confirm = confirmDeleteSelected
		}

	case "p":
		col, ok := m.currentColumn()
		if !ok {
			break
		}
		n := m.selection.Count()
		if m.selection.MoveSelectedToColumn(m.store, col.ID) {
			m.message = fmt.Sprintf("Moved %d tasks to %s", n, col.Title)
		}
		m.refresh()

	default:
		return false, m, nil
	}
	return true, m, nil
}

// updateMove turns each key into a drop of the dragged task, then picks the
// drag up again so the task can keep moving.
func (m BoardModel) updateMove(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	drag, dragging := m.coordinator.Dragging()
	if !dragging {
		m.mode = boardModeNormal
		return m, nil
	}

	switch msg.String() {
	case "esc", "q", "enter", "m", " ":
		m.handleDrag(dnd.DragCancelMsg{})
		m.mode = boardModeNormal
		return m, nil

	case "j", "down":
		if m.selectedCard+1 < len(m.visibleTasks(m.selectedCol)) {
			m.dropTask(drag, m.selectedCol, m.selectedCard+1)
		}

	case "k", "up":
		if m.selectedCard > 0 {
			m.dropTask(drag, m.selectedCol, m.selectedCard-1)
		}

	case "h", "left":
		if m.selectedCol > 0 {
			target := m.selectedCol - 1
			m.dropTask(drag, target, len(m.visibleTasks(target)))
		}

	case "l", "right":
		if m.selectedCol < len(m.board.Columns)-1 {
			target := m.selectedCol + 1
			m.dropTask(drag, target, len(m.visibleTasks(target)))
		}
	}

	if col, task, ok := m.currentTask(); ok && task.ID == drag.TaskID {
		m.handleDrag(dnd.DragStartMsg{Descriptor: dnd.TaskDrag(task.ID, col.ID)})
	} else {
		m.handleDrag(dnd.DragCancelMsg{})
		m.mode = boardModeNormal
	}
	return m, nil
}

func (m BoardModel) updateColumnMove(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	drag, dragging := m.coordinator.Dragging()
	if !dragging {
		m.mode = boardModeNormal
		return m, nil
	}

	target := -1
	switch msg.String() {
	case "esc", "q", "enter", "M":
		m.handleDrag(dnd.DragCancelMsg{})
		m.mode = boardModeNormal
		return m, nil
	case "h", "left":
		target = m.selectedCol - 1
	case "l", "right":
		target = m.selectedCol + 1
	}
	if target < 0 || target >= len(m.board.Columns) {
		return m, nil
	}

	board := dnd.BoardTarget()
	m.handleDrag(dnd.DragEnterMsg{Descriptor: drag, Target: board})
	m.handleDrag(dnd.DropMsg{Descriptor: drag, Target: board, Point: slotPoint(m.geometry, target)})

	if idx := m.board.GetColumnIndex(drag.ColumnID); idx != -1 {
		m.focusColumn(idx)
		m.handleDrag(dnd.DragStartMsg{Descriptor: dnd.ColumnDrag(drag.ColumnID, idx)})
	} else {
		m.mode = boardModeNormal
	}
	return m, nil
}

func (m BoardModel) updateInput(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.commitInput(m.input.Value())
		m.mode = boardModeNormal
		return m, nil

	case "esc":
		if m.purpose == inputSearch {
			m.view.filter.SearchTerm = ""
			m.clampCursors()
		}
		m.mode = boardModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.purpose == inputSearch {
		m.view.filter.SearchTerm = m.input.Value()
		m.selectedCard = 0
		m.rememberCursor()
		m.clampCursors()
	}
	return m, cmd
}

func (m BoardModel) updateConfirm(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		switch m.confirm {
		case confirmDeleteTask:
			if col, task, ok := m.currentTask(); ok && m.store.DeleteTask(col.ID, task.ID) {
				m.message = "Task deleted"
			}
		case confirmDeleteColumn:
			if col, ok := m.currentColumn(); ok && m.store.DeleteColumn(col.ID) {
				m.message = "Column deleted"
			}
		case confirmDeleteSelected:
			n := m.selection.Count()
			if m.selection.DeleteSelected(m.store) {
				m.message = fmt.Sprintf("Deleted %d tasks", n)
			}
		}
		m.refresh()
		m.mode = boardModeNormal

	case "n", "esc":
		m.mode = boardModeNormal
	}
	return m, nil
}

func (m BoardModel) startInput(purpose inputPurpose, placeholder, value string) (BoardModel, tea.Cmd) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = 40
	ti.SetValue(value)
	ti.Focus()
	m.input = ti
	m.purpose = purpose
	m.mode = boardModeInput
	return m, textinput.Blink
}

func (m *BoardModel) commitInput(value string) {
	switch m.purpose {
	case inputSearch:
		m.view.filter.SearchTerm = value
		m.clampCursors()
		return

	case inputNewTask:
		col, ok := m.currentColumn()
		if !ok {
			return
		}
		id, ok := m.store.AddTask(col.ID, value)
		m.refresh()
		if ok {
			m.message = "Task added"
			m.focusTask(id)
		}

	case inputEditTask:
		if col, task, ok := m.currentTask(); ok {
			if m.store.EditTask(col.ID, task.ID, value) {
				m.message = "Task updated"
			}
			m.refresh()
			m.focusTask(task.ID)
		}

	case inputNewColumn:
		_, ok := m.store.AddColumn(value)
		m.refresh()
		if ok {
			m.message = "Column added"
			m.focusColumn(len(m.board.Columns) - 1)
		}

	case inputRenameColumn:
		if col, ok := m.currentColumn(); ok && m.store.RenameColumn(col.ID, value) {
			m.message = "Column renamed"
		}
		m.refresh()
	}
}

// handleDrag feeds one drag message to the coordinator and picks up the new
// board if the drop changed it.
func (m *BoardModel) handleDrag(msg any) {
	drag, _ := m.coordinator.Dragging()
	if drop, ok := msg.(dnd.DropMsg); ok {
		drag = drop.Descriptor
	}
	if m.coordinator.Handle(msg) {
		m.refresh()
		if drag.Kind == dnd.KindTask {
			m.focusTask(drag.TaskID)
		}
		m.message = "Moved"
	}
}

// dropTask drops a task drag onto a visible row of a column.
func (m *BoardModel) dropTask(drag dnd.Descriptor, col, row int) {
	target := dnd.ColumnTarget(m.board.Columns[col].ID)
	if col != m.selectedCol {
		m.handleDrag(dnd.DragLeaveMsg{Descriptor: drag, Target: dnd.ColumnTarget(m.board.Columns[m.selectedCol].ID)})
		m.handleDrag(dnd.DragEnterMsg{Descriptor: drag, Target: target})
	}
	m.handleDrag(dnd.DropMsg{Descriptor: drag, Target: target, Point: rowPoint(m.geometry, row)})
}

// refresh reloads the board snapshot and keeps cursors in range.
func (m *BoardModel) refresh() {
	m.board = m.store.Board()
	m.err = m.store.SaveError()
	m.selection.Prune(m.board)

	n := len(m.board.Columns)
	m.columnCursorPos = resize(m.columnCursorPos, n)
	m.columnScrollOffsets = resize(m.columnScrollOffsets, n)
	if m.selectedCol >= n {
		m.selectedCol = max(0, n-1)
	}
	m.clampCursors()
	logs.Logger.Debugw("board view refreshed", "columns", n, "tasks", m.board.TaskCount())
}

func resize(s []int, n int) []int {
	if len(s) == n {
		return s
	}
	out := make([]int, n)
	copy(out, s)
	return out
}

// clampCursors ensures cursor positions are valid for the visible task sets
func (m *BoardModel) clampCursors() {
	for i := range m.columnCursorPos {
		visible := len(m.visibleTasks(i))
		if m.columnCursorPos[i] >= visible {
			m.columnCursorPos[i] = max(0, visible-1)
		}
	}
	if m.selectedCol < len(m.columnCursorPos) {
		m.selectedCard = m.columnCursorPos[m.selectedCol]
	} else {
		m.selectedCard = 0
	}
	m.adjustScrollPosition()
}

func (m *BoardModel) rememberCursor() {
	if m.selectedCol < len(m.columnCursorPos) {
		m.columnCursorPos[m.selectedCol] = m.selectedCard
	}
}

func (m *BoardModel) focusColumn(col int) {
	if col < 0 || col >= len(m.board.Columns) {
		return
	}
	m.selectedCol = col
	m.selectedCard = m.columnCursorPos[col]
	visible := len(m.visibleTasks(col))
	if m.selectedCard >= visible {
		m.selectedCard = max(0, visible-1)
		m.rememberCursor()
	}
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

// focusTask moves the cursor onto a task if it is visible.
func (m *BoardModel) focusTask(taskID string) {
	for ci := range m.board.Columns {
		for row, t := range m.visibleTasks(ci) {
			if t.ID == taskID {
				m.selectedCol = ci
				m.selectedCard = row
				m.rememberCursor()
				m.adjustScrollPosition()
				m.adjustHorizontalScrollPosition()
				return
			}
		}
	}
}

// visibleTasks returns the tasks to display for a column, respecting the active filter
func (m *BoardModel) visibleTasks(col int) []models.Task {
	if col < 0 || col >= len(m.board.Columns) {
		return nil
	}
	return filter.Apply(m.board.Columns[col], m.view.filter)
}

func (m *BoardModel) currentColumn() (models.Column, bool) {
	if m.selectedCol < 0 || m.selectedCol >= len(m.board.Columns) {
		return models.Column{}, false
	}
	return m.board.Columns[m.selectedCol], true
}

func (m *BoardModel) currentTask() (models.Column, models.Task, bool) {
	col, ok := m.currentColumn()
	if !ok {
		return models.Column{}, models.Task{}, false
	}
	visible := m.visibleTasks(m.selectedCol)
	if m.selectedCard < 0 || m.selectedCard >= len(visible) {
		return models.Column{}, models.Task{}, false
	}
	return col, visible[m.selectedCard], true
}
