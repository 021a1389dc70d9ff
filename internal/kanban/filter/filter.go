// Package filter derives the visible, searched subset of a column's tasks.
// Views are always recomputed from the current board and never cached.
package filter

import (
	"fmt"
	"strings"

	"taskboard/internal/kanban/models"

	"github.com/sahilm/fuzzy"
)

type Mode int

const (
	ModeAll Mode = iota
	ModeCompleted
	ModeIncomplete
)

func (m Mode) String() string {
	switch m {
	case ModeCompleted:
		return "completed"
	case ModeIncomplete:
		return "incomplete"
	default:
		return "all"
	}
}

// Next cycles all -> completed -> incomplete -> all.
func (m Mode) Next() Mode {
	return (m + 1) % 3
}

// ParseMode accepts the names printed by String, plus "done" and "todo".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ModeAll, nil
	case "completed", "done":
		return ModeCompleted, nil
	case "incomplete", "todo", "open":
		return ModeIncomplete, nil
	}
	return ModeAll, fmt.Errorf("unknown filter mode %q", s)
}

// State is the per-session search and completion filter.
type State struct {
	SearchTerm string
	Mode       Mode
}

// IsZero reports whether the state shows every task.
func (s State) IsZero() bool {
	return s.SearchTerm == "" && s.Mode == ModeAll
}

// Matches reports whether a single task is visible under the state.
func (s State) Matches(t models.Task) bool {
	switch s.Mode {
	case ModeCompleted:
		if !t.IsCompleted {
			return false
		}
	case ModeIncomplete:
		if t.IsCompleted {
			return false
		}
	}
	if s.SearchTerm == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Text), strings.ToLower(s.SearchTerm))
}

// Apply returns the visible tasks of a column in canonical order.
func Apply(column models.Column, state State) []models.Task {
	view := make([]models.Task, 0, len(column.Todos))
	for _, t := range column.Todos {
		if state.Matches(t) {
			view = append(view, t)
		}
	}
	return view
}

// Indices returns the canonical indices of the visible tasks of a column.
func Indices(column models.Column, state State) []int {
	indices := make([]int, 0, len(column.Todos))
	for i, t := range column.Todos {
		if state.Matches(t) {
			indices = append(indices, i)
		}
	}
	return indices
}

// Counts returns how many tasks of the column are completed, and the total.
func Counts(column models.Column) (completed, total int) {
	for _, t := range column.Todos {
		if t.IsCompleted {
			completed++
		}
	}
	return completed, len(column.Todos)
}

// Segment is a run of text that either matched the search term or did not.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text around every case-insensitive occurrence of term.
func Highlight(text, term string) []Segment {
	if term == "" {
		return []Segment{{Text: text}}
	}

	lowerText := strings.ToLower(text)
	lowerTerm := strings.ToLower(term)
	// lowering can change byte lengths outside ASCII; fall back to no highlight
	if len(lowerText) != len(text) || len(lowerTerm) != len(term) {
		return []Segment{{Text: text}}
	}

	var segments []Segment
	pos := 0
	for {
		i := strings.Index(lowerText[pos:], lowerTerm)
		if i < 0 {
			break
		}
		start := pos + i
		end := start + len(term)
		if start > pos {
			segments = append(segments, Segment{Text: text[pos:start]})
		}
		segments = append(segments, Segment{Text: text[start:end], Match: true})
		pos = end
	}
	if pos < len(text) {
		segments = append(segments, Segment{Text: text[pos:]})
	}
	if len(segments) == 0 {
		return []Segment{{Text: text}}
	}
	return segments
}

// FindColumn resolves a user-supplied column reference: an exact ID, then a
// case-insensitive title, then the best fuzzy title match.
func FindColumn(board models.Board, query string) (models.Column, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.Column{}, false
	}
	if col := board.GetColumn(query); col != nil {
		return *col, true
	}
	for _, col := range board.Columns {
		if strings.EqualFold(col.Title, query) {
			return col, true
		}
	}

	titles := make([]string, len(board.Columns))
	for i, col := range board.Columns {
		titles[i] = col.Title
	}
	matches := fuzzy.Find(query, titles)
	if len(matches) == 0 {
		return models.Column{}, false
	}
	return board.Columns[matches[0].Index], true
}

// FindTask resolves a task by exact ID, or by a unique ID prefix.
func FindTask(board models.Board, ref string) (columnID string, task models.Task, ok bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", models.Task{}, false
	}
	if ci, ti := board.FindTask(ref); ci != -1 {
		return board.Columns[ci].ID, board.Columns[ci].Todos[ti], true
	}

	found := 0
	for _, col := range board.Columns {
		for _, t := range col.Todos {
			if strings.HasPrefix(t.ID, ref) {
				columnID, task = col.ID, t
				found++
			}
		}
	}
	if found != 1 {
		return "", models.Task{}, false
	}
	return columnID, task, true
}
