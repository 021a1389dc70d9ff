package operations

import (
	"time"

	"taskboard/internal/kanban/models"
)

// AddTask appends a new task to the end of a column
func AddTask(board models.Board, columnID, taskID, text string, now time.Time) (models.Board, bool) {
	index := board.GetColumnIndex(columnID)
	if index == -1 || taskID == "" {
		return board, false
	}
	validated, err := ValidateText(text)
	if err != nil {
		return board, false
	}
	if ci, _ := board.FindTask(taskID); ci != -1 {
		return board, false
	}

	created := now
	updated := now
	task := models.Task{
		ID:        taskID,
		Text:      validated,
		CreatedAt: &created,
		UpdatedAt: &updated,
	}

	col := board.Columns[index]
	todos := make([]models.Task, 0, len(col.Todos)+1)
	todos = append(todos, col.Todos...)
	col.Todos = append(todos, task)

	return replaceColumn(board, index, col), true
}

// EditTask replaces a task's text. Empty or unchanged text is discarded.
func EditTask(board models.Board, columnID, taskID, newText string, now time.Time) (models.Board, bool) {
	validated, err := ValidateText(newText)
	if err != nil {
		return board, false
	}
	return updateTask(board, columnID, taskID, func(t models.Task) (models.Task, bool) {
		if t.Text == validated {
			return t, false
		}
		t.Text = validated
		return t.Touch(now), true
	})
}

// ToggleComplete flips a task's completion flag in place
func ToggleComplete(board models.Board, columnID, taskID string, now time.Time) (models.Board, bool) {
	return updateTask(board, columnID, taskID, func(t models.Task) (models.Task, bool) {
		t.IsCompleted = !t.IsCompleted
		return t.Touch(now), true
	})
}

// DeleteTask removes a task from a column
func DeleteTask(board models.Board, columnID, taskID string) (models.Board, bool) {
	index := board.GetColumnIndex(columnID)
	if index == -1 {
		return board, false
	}
	col := board.Columns[index]
	ti := col.TaskIndex(taskID)
	if ti == -1 {
		return board, false
	}

	col.Todos = removeAt(col.Todos, ti)
	return replaceColumn(board, index, col), true
}

// MoveTask moves a task within a column or across columns.
//
// For a same-column move targetIndex is read after the task has been removed,
// so the task ends up at exactly targetIndex. A nil targetIndex appends.
// Missing columns or tasks leave the board unchanged.
func MoveTask(board models.Board, sourceColumnID, targetColumnID, taskID string, targetIndex *int, now time.Time) (models.Board, bool) {
	srcIdx := board.GetColumnIndex(sourceColumnID)
	if srcIdx == -1 {
		return board, false
	}
	src := board.Columns[srcIdx]
	current := src.TaskIndex(taskID)
	if current == -1 {
		return board, false
	}
	task := src.Todos[current]

	if sourceColumnID == targetColumnID {
		remaining := removeAt(src.Todos, current)
		at := len(remaining)
		if targetIndex != nil {
			at = clamp(*targetIndex, 0, len(remaining))
		}
		if at == current {
			return board, false
		}
		if targetIndex == nil {
			task = task.Touch(now)
		}
		src.Todos = insertAt(remaining, at, task)
		return replaceColumn(board, srcIdx, src), true
	}

	dstIdx := board.GetColumnIndex(targetColumnID)
	if dstIdx == -1 {
		return board, false
	}
	dst := board.Columns[dstIdx]

	at := len(dst.Todos)
	if targetIndex != nil {
		at = clamp(*targetIndex, 0, len(dst.Todos))
	}

	src.Todos = removeAt(src.Todos, current)
	dst.Todos = insertAt(dst.Todos, at, task.Touch(now))

	columns := make([]models.Column, len(board.Columns))
	copy(columns, board.Columns)
	columns[srcIdx] = src
	columns[dstIdx] = dst
	return models.Board{Columns: columns}, true
}

// SetCompleted sets the completion flag of every task whose ID is in ids.
func SetCompleted(board models.Board, ids map[string]bool, completed bool, now time.Time) (models.Board, bool) {
	changed := false
	columns := make([]models.Column, len(board.Columns))
	for ci, col := range board.Columns {
		columns[ci] = col
		touched := false
		var todos []models.Task
		for ti, t := range col.Todos {
			if !ids[t.ID] || t.IsCompleted == completed {
				continue
			}
			if !touched {
				todos = make([]models.Task, len(col.Todos))
				copy(todos, col.Todos)
				touched = true
			}
			t.IsCompleted = completed
			todos[ti] = t.Touch(now)
		}
		if touched {
			columns[ci].Todos = todos
			changed = true
		}
	}
	if !changed {
		return board, false
	}
	return models.Board{Columns: columns}, true
}

// RemoveTasks removes every task whose ID is in ids, from any column.
func RemoveTasks(board models.Board, ids map[string]bool) (models.Board, bool) {
	changed := false
	columns := make([]models.Column, len(board.Columns))
	for ci, col := range board.Columns {
		columns[ci] = col
		kept := make([]models.Task, 0, len(col.Todos))
		for _, t := range col.Todos {
			if ids[t.ID] {
				continue
			}
			kept = append(kept, t)
		}
		if len(kept) != len(col.Todos) {
			columns[ci].Todos = kept
			changed = true
		}
	}
	if !changed {
		return board, false
	}
	return models.Board{Columns: columns}, true
}

// GatherToColumn removes every task in ids that lives outside the target
// column and appends them to it, keeping board order (column, then task).
// Tasks already in the target column keep their position.
func GatherToColumn(board models.Board, ids map[string]bool, targetColumnID string, now time.Time) (models.Board, bool) {
	dstIdx := board.GetColumnIndex(targetColumnID)
	if dstIdx == -1 {
		return board, false
	}

	var moving []models.Task
	columns := make([]models.Column, len(board.Columns))
	for ci, col := range board.Columns {
		columns[ci] = col
		if ci == dstIdx {
			continue
		}
		kept := make([]models.Task, 0, len(col.Todos))
		for _, t := range col.Todos {
			if ids[t.ID] {
				moving = append(moving, t.Touch(now))
				continue
			}
			kept = append(kept, t)
		}
		if len(kept) != len(col.Todos) {
			columns[ci].Todos = kept
		}
	}
	if len(moving) == 0 {
		return board, false
	}

	dst := columns[dstIdx]
	todos := make([]models.Task, 0, len(dst.Todos)+len(moving))
	todos = append(todos, dst.Todos...)
	dst.Todos = append(todos, moving...)
	columns[dstIdx] = dst

	return models.Board{Columns: columns}, true
}

func updateTask(board models.Board, columnID, taskID string, fn func(models.Task) (models.Task, bool)) (models.Board, bool) {
	index := board.GetColumnIndex(columnID)
	if index == -1 {
		return board, false
	}
	col := board.Columns[index]
	ti := col.TaskIndex(taskID)
	if ti == -1 {
		return board, false
	}

	updated, ok := fn(col.Todos[ti])
	if !ok {
		return board, false
	}

	todos := make([]models.Task, len(col.Todos))
	copy(todos, col.Todos)
	todos[ti] = updated
	col.Todos = todos

	return replaceColumn(board, index, col), true
}

func removeAt(todos []models.Task, i int) []models.Task {
	out := make([]models.Task, 0, len(todos)-1)
	out = append(out, todos[:i]...)
	return append(out, todos[i+1:]...)
}

func insertAt(todos []models.Task, i int, t models.Task) []models.Task {
	out := make([]models.Task, 0, len(todos)+1)
	out = append(out, todos[:i]...)
	out = append(out, t)
	return append(out, todos[i:]...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
