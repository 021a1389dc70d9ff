package operations

import (
	"time"

	"taskboard/internal/kanban/ids"
	"taskboard/internal/kanban/models"
)

type seedColumn struct {
	title string
	todos []seedTask
}

type seedTask struct {
	text string
	done bool
}

var seed = []seedColumn{
	{title: "Personal", todos: []seedTask{
		{text: "Buy a new phone"},
		{text: "Buy a new laptop"},
	}},
	{title: "Work", todos: []seedTask{
		{text: "Finish the project"},
		{text: "Have a meeting with the team", done: true},
	}},
	{title: "Home", todos: []seedTask{
		{text: "Buy a new fridge"},
		{text: "Buy a new TV", done: true},
	}},
}

// SeedBoard builds the board used on first run
func SeedBoard(source ids.Source, now time.Time) models.Board {
	board := models.Board{Columns: make([]models.Column, 0, len(seed))}
	for _, sc := range seed {
		col := models.Column{
			ID:    source.NewID(),
			Title: sc.title,
			Todos: make([]models.Task, 0, len(sc.todos)),
		}
		for _, st := range sc.todos {
			created := now
			updated := now
			col.Todos = append(col.Todos, models.Task{
				ID:          source.NewID(),
				Text:        st.text,
				IsCompleted: st.done,
				CreatedAt:   &created,
				UpdatedAt:   &updated,
			})
		}
		board.Columns = append(board.Columns, col)
	}
	return board
}

// CheckInvariants reports the first structural problem found on the board, if any.
// Column and task IDs must be non-empty and unique board-wide.
func CheckInvariants(board models.Board) error {
	columnIDs := make(map[string]bool, len(board.Columns))
	taskIDs := make(map[string]bool)
	for _, col := range board.Columns {
		if col.ID == "" {
			return &InvariantError{Msg: "column with empty id"}
		}
		if columnIDs[col.ID] {
			return &InvariantError{Msg: "duplicate column id " + col.ID}
		}
		columnIDs[col.ID] = true
		for _, t := range col.Todos {
			if t.ID == "" {
				return &InvariantError{Msg: "task with empty id in column " + col.ID}
			}
			if taskIDs[t.ID] {
				return &InvariantError{Msg: "duplicate task id " + t.ID}
			}
			taskIDs[t.ID] = true
		}
	}
	return nil
}

// InvariantError describes a board that breaks the uniqueness rules.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return e.Msg
}
