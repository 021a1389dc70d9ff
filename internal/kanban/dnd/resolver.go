package dnd

import (
	"math"

	"taskboard/internal/kanban/filter"
	"taskboard/internal/kanban/models"
)

const (
	DefaultRowHeight       = 68
	DefaultColumnSlotWidth = 320 + 16
)

// Geometry holds the fixed sizes used to turn pointer offsets into indices.
type Geometry struct {
	RowHeight       float64
	ColumnSlotWidth float64
}

func DefaultGeometry() Geometry {
	return Geometry{RowHeight: DefaultRowHeight, ColumnSlotWidth: DefaultColumnSlotWidth}
}

func (g Geometry) rowHeight() float64 {
	if !validSize(g.RowHeight) {
		return DefaultRowHeight
	}
	return g.RowHeight
}

func (g Geometry) slotWidth() float64 {
	if !validSize(g.ColumnSlotWidth) {
		return DefaultColumnSlotWidth
	}
	return g.ColumnSlotWidth
}

func validSize(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// RawIndex floors offset/size and clamps it to [0, limit]. A size that is not
// a finite positive number resolves to 0.
func RawIndex(offset, size float64, limit int) int {
	if limit <= 0 || math.IsNaN(offset) || !validSize(size) {
		return 0
	}
	i := math.Floor(offset / size)
	if math.IsNaN(i) || i < 0 {
		return 0
	}
	if i > float64(limit) {
		return limit
	}
	return int(i)
}

// TaskMove is a resolved task drop, ready for the store.
type TaskMove struct {
	TaskID         string
	SourceColumnID string
	TargetColumnID string
	TargetIndex    int
}

// ResolveTaskDrop maps a drop at relativeY within the target column's list to
// a canonical move. It reports false when the drop would change nothing or
// refers to a task or column that is gone.
func ResolveTaskDrop(board models.Board, state filter.State, geom Geometry, drag Descriptor, targetColumnID string, relativeY float64) (TaskMove, bool) {
	if drag.Kind != KindTask {
		return TaskMove{}, false
	}
	src := board.GetColumn(drag.SourceColumnID)
	dst := board.GetColumn(targetColumnID)
	if src == nil || dst == nil {
		return TaskMove{}, false
	}
	current := src.TaskIndex(drag.TaskID)
	if current == -1 {
		return TaskMove{}, false
	}

	view := filter.Indices(*dst, state)
	raw := RawIndex(relativeY, geom.rowHeight(), len(view))
	sameColumn := drag.SourceColumnID == targetColumnID

	var target int
	switch {
	case raw < len(view):
		target = view[raw]
	case len(view) == 0:
		target = len(dst.Todos)
		if sameColumn {
			target = len(dst.Todos) - 1
		}
	default:
		// after the last visible task
		last := view[len(view)-1]
		target = last + 1
		if sameColumn && current <= last {
			target = last
		}
	}

	if sameColumn && target == current {
		return TaskMove{}, false
	}

	return TaskMove{
		TaskID:         drag.TaskID,
		SourceColumnID: drag.SourceColumnID,
		TargetColumnID: targetColumnID,
		TargetIndex:    target,
	}, true
}

// ColumnMove is a resolved column drop.
type ColumnMove struct {
	ColumnID    string
	SourceIndex int
	TargetIndex int
}

// ResolveColumnDrop maps a drop at relativeX along the board to a column
// move. The dragged column's index is looked up again by ID so a stale
// descriptor cannot move the wrong column.
func ResolveColumnDrop(board models.Board, geom Geometry, drag Descriptor, relativeX float64) (ColumnMove, bool) {
	if drag.Kind != KindColumn {
		return ColumnMove{}, false
	}
	source := board.GetColumnIndex(drag.ColumnID)
	if source == -1 {
		return ColumnMove{}, false
	}

	target := RawIndex(relativeX, geom.slotWidth(), len(board.Columns)-1)
	if target == source {
		return ColumnMove{}, false
	}
	return ColumnMove{ColumnID: drag.ColumnID, SourceIndex: source, TargetIndex: target}, true
}
