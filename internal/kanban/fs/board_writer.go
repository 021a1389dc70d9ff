package fs

import (
	"encoding/json"
	"time"

	"taskboard/internal/kanban/models"
)

// EncodeBoard serializes a board to the stored document format
func EncodeBoard(board models.Board) ([]byte, error) {
	records := make([]columnRecord, 0, len(board.Columns))
	for _, col := range board.Columns {
		rec := columnRecord{
			ID:    col.ID,
			Title: col.Title,
			Todos: make([]*taskRecord, 0, len(col.Todos)),
		}
		for _, t := range col.Todos {
			rec.Todos = append(rec.Todos, &taskRecord{
				ID:          t.ID,
				Text:        t.Text,
				IsCompleted: t.IsCompleted,
				CreatedAt:   utc(t.CreatedAt),
				UpdatedAt:   utc(t.UpdatedAt),
			})
		}
		records = append(records, rec)
	}
	return json.Marshal(records)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
