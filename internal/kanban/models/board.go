package models

// Board is the root of all board state: an ordered list of columns
type Board struct {
	Columns []Column
}

// Column is an ordered list of tasks under a title
type Column struct {
	ID    string
	Title string
	Todos []Task
}

// GetColumn returns a pointer to the column with the given ID
func (b *Board) GetColumn(id string) *Column {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i]
		}
	}
	return nil
}

// GetColumnIndex returns the index of the column with the given ID
func (b Board) GetColumnIndex(id string) int {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return i
		}
	}
	return -1
}

// FindTask returns the column index and task index of a task anywhere on the board
func (b Board) FindTask(taskID string) (int, int) {
	for ci := range b.Columns {
		if ti := b.Columns[ci].TaskIndex(taskID); ti != -1 {
			return ci, ti
		}
	}
	return -1, -1
}

// TaskCount returns the number of tasks across all columns
func (b Board) TaskCount() int {
	n := 0
	for _, col := range b.Columns {
		n += len(col.Todos)
	}
	return n
}

// TaskIDs returns every task ID on the board in column order, then task order
func (b Board) TaskIDs() []string {
	ids := make([]string, 0, b.TaskCount())
	for _, col := range b.Columns {
		for _, t := range col.Todos {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	out := Board{Columns: make([]Column, len(b.Columns))}
	for i, col := range b.Columns {
		out.Columns[i] = col.Clone()
	}
	return out
}

// TaskIndex returns the index of the task with the given ID, or -1
func (c Column) TaskIndex(taskID string) int {
	for i := range c.Todos {
		if c.Todos[i].ID == taskID {
			return i
		}
	}
	return -1
}

// Clone returns a copy of the column with its own task slice.
func (c Column) Clone() Column {
	todos := make([]Task, len(c.Todos))
	for i, t := range c.Todos {
		todos[i] = t.Clone()
	}
	c.Todos = todos
	return c
}
