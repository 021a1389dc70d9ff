package kanban

import (
	"fmt"
	"strings"

	"taskboard/internal/kanban/dnd"
	"taskboard/internal/kanban/filter"
	"taskboard/internal/kanban/models"
	"taskboard/internal/tui/shared"
	"taskboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	boardHeaderLines = 3
	statusLines      = 3
	marginLines      = 2
	columnOverhead   = 6
)

func (m BoardModel) View() string {
	if m.mode == boardModeInput && m.purpose != inputSearch {
		return m.renderInputModal()
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Board: " + m.name))
	s.WriteString("  " + m.renderModeBadge())
	s.WriteString("\n")

	// Filter bar
	if m.mode == boardModeInput && m.purpose == inputSearch {
		s.WriteString("  / " + m.input.View())
	} else if !m.view.filter.IsZero() {
		s.WriteString("  " + filterIndicatorStyle.Render(m.filterSummary()))
	}
	s.WriteString("\n")

	height := m.columnHeight()

	if len(m.board.Columns) == 0 {
		s.WriteString(shared.CenterContent(emptyColumnStyle.Render("No columns yet. Press c to add one."), height))
		s.WriteString("\n")
	} else {
		startCol, endCol := m.calculateVisibleColumns()
		views := []string{}

		if startCol > 0 {
			views = append(views, m.renderScrollIndicator("◀", height))
		} else {
			views = append(views, m.renderScrollIndicator(" ", height))
		}
		for i := startCol; i < endCol; i++ {
			views = append(views, m.renderColumn(i, m.board.Columns[i], m.visibleTasks(i), height))
		}
		if endCol < len(m.board.Columns) {
			views = append(views, m.renderScrollIndicator("▶", height))
		} else {
			views = append(views, m.renderScrollIndicator(" ", height))
		}

		columns := lipgloss.JoinHorizontal(lipgloss.Top, views...)
		s.WriteString(lipgloss.Place(m.width, 0, lipgloss.Center, lipgloss.Top, columns))
		s.WriteString("\n")
	}

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n")
	} else if m.message != "" {
		s.WriteString(successStyle.Render(m.message))
		s.WriteString("\n")
	}

	s.WriteString(m.renderHelpLine())
	return s.String()
}

func (m BoardModel) renderModeBadge() string {
	switch {
	case m.mode == boardModeMove:
		return modeIndicatorStyle(theme.Warning).Render("MOVE")
	case m.mode == boardModeColumnMove:
		return modeIndicatorStyle(theme.Warning).Render("MOVE COLUMN")
	case m.selection.Active():
		return modeIndicatorStyle(theme.Accent).Render(fmt.Sprintf("SELECT (%d)", m.selection.Count()))
	}
	return ""
}

func (m BoardModel) filterSummary() string {
	parts := []string{}
	if m.view.filter.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("search: %q", m.view.filter.SearchTerm))
	}
	if m.view.filter.Mode != filter.ModeAll {
		parts = append(parts, "showing: "+m.view.filter.Mode.String())
	}
	return strings.Join(parts, " • ")
}

func (m BoardModel) renderHelpLine() string {
	switch m.mode {
	case boardModeMove:
		return helpStyle.Render("h/l: move to column • j/k: reorder • enter/esc: done")
	case boardModeColumnMove:
		return helpStyle.Render("h/l: move column • enter/esc: done")
	case boardModeInput:
		return helpStyle.Render("type to search • enter: keep • esc: clear")
	case boardModeConfirm:
		switch m.confirm {
		case confirmDeleteColumn:
			return warningStyle.Render("Delete this column and all its tasks? (y/n)")
		case confirmDeleteSelected:
			return warningStyle.Render(fmt.Sprintf("Delete %d selected tasks? (y/n)", m.selection.Count()))
		}
		return warningStyle.Render("Delete this task? (y/n)")
	}
	if m.selection.Active() {
		return helpStyle.Render("space: select • a/A: all/none in column • C/U: complete/reopen • p: move here • d: delete • v/esc: exit")
	}
	return helpStyle.Render("hjkl: navigate • n: new • enter: edit • x: toggle • m: move • M: move column • D: delete • c/r/X: column • /: search • f: filter • v: select • ?: help • q: quit")
}

func (m BoardModel) renderInputModal() string {
	titles := map[inputPurpose]string{
		inputNewTask:      "New task",
		inputEditTask:     "Edit task",
		inputNewColumn:    "New column",
		inputRenameColumn: "Rename column",
	}
	content := inputTitleStyle.Render(titles[m.purpose]) + "\n\n" +
		m.input.View() + "\n\n" +
		theme.ModalHelp.Render("enter: save • esc: cancel")
	box := inputBoxStyle.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m BoardModel) renderColumn(index int, col models.Column, tasks []models.Task, fixedHeight int) string {
	var s strings.Builder

	headerStyle := columnTitleStyle
	if index == m.selectedCol {
		headerStyle = selectedColumnTitleStyle
	}
	completed, total := filter.Counts(col)
	header := headerStyle.Render(col.Title) + " " + columnCountStyle.Render(fmt.Sprintf("%d/%d", completed, total))
	if n := m.selection.SelectedInColumn(m.board, col.ID); n > 0 {
		header += " " + cardMarkStyle.Render(fmt.Sprintf("[%d]", n))
	}
	s.WriteString(header)
	s.WriteString("\n\n")

	style := columnStyle
	switch {
	case m.coordinator.IsDragging(col.ID):
		style = draggedColumnStyle
	case m.coordinator.IsOver(dnd.ColumnTarget(col.ID)):
		style = draggedColumnStyle
	case index == m.selectedCol:
		style = selectedColumnStyle
	}

	if len(tasks) == 0 {
		if len(col.Todos) > 0 {
			s.WriteString(emptyColumnStyle.Render("(no matching tasks)"))
		} else {
			s.WriteString(emptyColumnStyle.Render("(empty)"))
		}
		return style.Height(fixedHeight).Render(s.String())
	}

	scrollOffset := 0
	if index < len(m.columnScrollOffsets) {
		scrollOffset = m.columnScrollOffsets[index]
	}

	if scrollOffset > 0 {
		s.WriteString(scrollIndicatorStyle.Render(fmt.Sprintf("▲ +%d above", scrollOffset)))
	}
	s.WriteString("\n")

	available := fixedHeight - columnOverhead
	rendered, used := 0, 0
	for i := scrollOffset; i < len(tasks); i++ {
		card := m.renderCard(index, i, tasks[i])
		h := lipgloss.Height(card)
		if rendered > 0 && used+h > available {
			break
		}
		s.WriteString(card)
		s.WriteString("\n")
		rendered++
		used += h
	}

	if below := len(tasks) - scrollOffset - rendered; below > 0 {
		s.WriteString(scrollIndicatorStyle.Render(fmt.Sprintf("▼ +%d below", below)))
	}

	return style.Height(fixedHeight).Render(s.String())
}

func (m BoardModel) renderCard(colIndex, row int, task models.Task) string {
	maxWidth := columnWidth - 2*columnPaddingHorizontal - 1 - 2*cardPaddingHorizontal

	check := "[ ] "
	textStyle := cardTextStyle
	if task.IsCompleted {
		check = "[x] "
		textStyle = cardDoneStyle
	}
	mark := ""
	if m.selection.IsSelected(task.ID) {
		mark = cardMarkStyle.Render("● ")
	}

	var line strings.Builder
	line.WriteString(mark + check)
	for _, seg := range filter.Highlight(truncate(task.Text, maxWidth-6), m.view.filter.SearchTerm) {
		if seg.Match {
			line.WriteString(cardMatchStyle.Render(seg.Text))
		} else {
			line.WriteString(textStyle.Render(seg.Text))
		}
	}

	style := cardStyle
	if colIndex == m.selectedCol && row == m.selectedCard {
		style = selectedCardStyle
		if m.coordinator.IsDragging(task.ID) {
			style = moveSelectedCardStyle
		}
	}
	return style.Render(line.String())
}

func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if width < 4 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func (m *BoardModel) columnHeight() int {
	h := m.height - boardHeaderLines - statusLines - marginLines
	if h < 10 {
		h = 10
	}
	return h
}

// adjustScrollPosition ensures the selected card is visible by adjusting scroll offset
func (m *BoardModel) adjustScrollPosition() {
	if m.selectedCol >= len(m.columnScrollOffsets) {
		return
	}
	tasks := m.visibleTasks(m.selectedCol)
	if len(tasks) == 0 {
		m.columnScrollOffsets[m.selectedCol] = 0
		return
	}

	available := m.columnHeight() - columnOverhead
	offset := m.columnScrollOffsets[m.selectedCol]

	if m.selectedCard < offset {
		offset = m.selectedCard
	} else {
		visible, used := 0, 0
		for i := offset; i < len(tasks); i++ {
			h := lipgloss.Height(m.renderCard(m.selectedCol, i, tasks[i]))
			if visible > 0 && used+h > available {
				break
			}
			used += h
			visible++
		}
		if visible < 1 {
			visible = 1
		}
		if m.selectedCard >= offset+visible {
			offset = m.selectedCard - visible + 1
		}
	}

	m.columnScrollOffsets[m.selectedCol] = max(0, min(offset, len(tasks)-1))
}

// calculateVisibleColumns determines which columns fit in terminal width
func (m *BoardModel) calculateVisibleColumns() (startCol, endCol int) {
	indicatorWidth := 3
	startCol = m.columnHorizontalOffset

	visibleCount := (m.width - 2*indicatorWidth) / columnSlotCells
	if visibleCount < 1 {
		visibleCount = 1
	}

	endCol = min(startCol+visibleCount, len(m.board.Columns))
	if endCol <= startCol && len(m.board.Columns) > 0 {
		endCol = startCol + 1
	}
	return startCol, endCol
}

// renderScrollIndicator renders ◀ and ▶ indicators for horizontal scrolling
func (m *BoardModel) renderScrollIndicator(symbol string, height int) string {
	indicator := lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render(symbol)
	return lipgloss.NewStyle().
		Width(3).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(indicator)
}

// adjustHorizontalScrollPosition ensures the selected column is visible
func (m *BoardModel) adjustHorizontalScrollPosition() {
	if len(m.board.Columns) == 0 {
		m.columnHorizontalOffset = 0
		return
	}
	if m.columnHorizontalOffset >= len(m.board.Columns) {
		m.columnHorizontalOffset = len(m.board.Columns) - 1
	}

	startCol, endCol := m.calculateVisibleColumns()
	if m.selectedCol < startCol {
		m.columnHorizontalOffset = m.selectedCol
		return
	}
	if m.selectedCol >= endCol {
		m.columnHorizontalOffset = max(0, m.selectedCol-(endCol-startCol)+1)
	}
}

// HelpSections lists the board key bindings for the help popup.
func HelpSections() []shared.HelpSection {
	return []shared.HelpSection{
		{Title: "Navigation", Binds: []shared.HelpBind{
			{Key: "h / l", Desc: "Previous / next column"},
			{Key: "j / k", Desc: "Previous / next task"},
		}},
		{Title: "Tasks", Binds: []shared.HelpBind{
			{Key: "n", Desc: "New task in column"},
			{Key: "enter / e", Desc: "Edit task"},
			{Key: "x", Desc: "Toggle complete"},
			{Key: "D", Desc: "Delete task"},
			{Key: "m / space", Desc: "Move task (h/l/j/k, esc to finish)"},
		}},
		{Title: "Columns", Binds: []shared.HelpBind{
			{Key: "c", Desc: "New column"},
			{Key: "r", Desc: "Rename column"},
			{Key: "X", Desc: "Delete column"},
			{Key: "M", Desc: "Move column (h/l, esc to finish)"},
		}},
		{Title: "Filter", Binds: []shared.HelpBind{
			{Key: "/", Desc: "Search task text"},
			{Key: "f", Desc: "Cycle all / completed / incomplete"},
			{Key: "esc", Desc: "Clear filter"},
		}},
		{Title: "Select mode", Binds: []shared.HelpBind{
			{Key: "v", Desc: "Enter / leave select mode"},
			{Key: "space", Desc: "Select task"},
			{Key: "a / A", Desc: "Select / deselect column"},
			{Key: "C / U", Desc: "Mark selected complete / incomplete"},
			{Key: "p", Desc: "Move selected to this column"},
			{Key: "d", Desc: "Delete selected"},
		}},
	}
}
