package fs

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/kanban/models"
	"taskboard/internal/kanban/operations"
)

// The stored document is a JSON array of columns, each with its tasks nested
// in canonical order. Timestamps are RFC 3339 strings.
type columnRecord struct {
	ID    string        `json:"id"`
	Title string        `json:"title"`
	Todos []*taskRecord `json:"todos"`
}

type taskRecord struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// SchemaError reports stored data that parsed but does not describe a valid board.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string {
	return "board schema: " + e.Msg
}

// DecodeBoard parses a stored board document
func DecodeBoard(data []byte) (models.Board, error) {
	var records []*columnRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return models.Board{}, err
	}
	if records == nil {
		return models.Board{}, &SchemaError{Msg: "document is not a column array"}
	}

	board := models.Board{Columns: make([]models.Column, 0, len(records))}
	for i, rec := range records {
		if rec == nil {
			return models.Board{}, &SchemaError{Msg: fmt.Sprintf("column %d is null", i)}
		}
		if strings.TrimSpace(rec.Title) == "" {
			return models.Board{}, &SchemaError{Msg: fmt.Sprintf("column %d has an empty title", i)}
		}
		if rec.Todos == nil {
			return models.Board{}, &SchemaError{Msg: fmt.Sprintf("column %d has no todos array", i)}
		}

		col := models.Column{
			ID:    rec.ID,
			Title: rec.Title,
			Todos: make([]models.Task, 0, len(rec.Todos)),
		}
		for j, tr := range rec.Todos {
			if tr == nil {
				return models.Board{}, &SchemaError{Msg: fmt.Sprintf("column %d task %d is null", i, j)}
			}
			if strings.TrimSpace(tr.Text) == "" {
				return models.Board{}, &SchemaError{Msg: fmt.Sprintf("column %d task %d has empty text", i, j)}
			}
			col.Todos = append(col.Todos, models.Task{
				ID:          tr.ID,
				Text:        tr.Text,
				IsCompleted: tr.IsCompleted,
				CreatedAt:   tr.CreatedAt,
				UpdatedAt:   tr.UpdatedAt,
			})
		}
		board.Columns = append(board.Columns, col)
	}

	if err := operations.CheckInvariants(board); err != nil {
		return models.Board{}, &SchemaError{Msg: err.Error()}
	}
	return board, nil
}
