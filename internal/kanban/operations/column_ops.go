package operations

import (
	"errors"
	"strings"

	"taskboard/internal/kanban/models"
)

var (
	ErrEmptyTitle = errors.New("title cannot be empty")
	ErrEmptyText  = errors.New("task text cannot be empty")
)

// AddColumn appends a new empty column with the given ID
func AddColumn(board models.Board, id, title string) (models.Board, bool) {
	validated, err := ValidateTitle(title)
	if err != nil || id == "" || board.GetColumnIndex(id) != -1 {
		return board, false
	}

	columns := make([]models.Column, 0, len(board.Columns)+1)
	columns = append(columns, board.Columns...)
	columns = append(columns, models.Column{
		ID:    id,
		Title: validated,
		Todos: []models.Task{},
	})

	return models.Board{Columns: columns}, true
}

// DeleteColumn removes a column together with all of its tasks
func DeleteColumn(board models.Board, columnID string) (models.Board, bool) {
	index := board.GetColumnIndex(columnID)
	if index == -1 {
		return board, false
	}

	columns := make([]models.Column, 0, len(board.Columns)-1)
	columns = append(columns, board.Columns[:index]...)
	columns = append(columns, board.Columns[index+1:]...)

	return models.Board{Columns: columns}, true
}

// RenameColumn changes a column title. Empty or unchanged titles leave the board as is.
func RenameColumn(board models.Board, columnID, newTitle string) (models.Board, bool) {
	index := board.GetColumnIndex(columnID)
	if index == -1 {
		return board, false
	}

	validated, err := ValidateTitle(newTitle)
	if err != nil || validated == board.Columns[index].Title {
		return board, false
	}

	col := board.Columns[index]
	col.Title = validated
	return replaceColumn(board, index, col), true
}

// MoveColumn removes the column at sourceIndex and reinserts it at targetIndex
func MoveColumn(board models.Board, sourceIndex, targetIndex int) (models.Board, bool) {
	n := len(board.Columns)
	if sourceIndex < 0 || sourceIndex >= n || targetIndex < 0 || targetIndex >= n {
		return board, false
	}
	if sourceIndex == targetIndex {
		return board, false
	}

	moved := board.Columns[sourceIndex]

	rest := make([]models.Column, 0, n)
	rest = append(rest, board.Columns[:sourceIndex]...)
	rest = append(rest, board.Columns[sourceIndex+1:]...)

	columns := make([]models.Column, 0, n)
	columns = append(columns, rest[:targetIndex]...)
	columns = append(columns, moved)
	columns = append(columns, rest[targetIndex:]...)

	return models.Board{Columns: columns}, true
}

// ValidateTitle trims a column title and rejects empty ones
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}
	return trimmed, nil
}

// ValidateText trims task text and rejects empty text
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyText
	}
	return trimmed, nil
}

// replaceColumn returns a board sharing every column but index with the input.
func replaceColumn(board models.Board, index int, col models.Column) models.Board {
	columns := make([]models.Column, len(board.Columns))
	copy(columns, board.Columns)
	columns[index] = col
	return models.Board{Columns: columns}
}
