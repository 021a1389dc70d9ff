// Package dnd turns drag lifecycle messages into board moves. The
// presentation layer reports what is dragged where; the resolver maps pointer
// geometry over the filtered view back to canonical indices.
package dnd

import "fmt"

type Kind int

const (
	KindTask Kind = iota
	KindColumn
)

// Descriptor identifies what is being dragged.
type Descriptor struct {
	Kind Kind

	// task drags
	TaskID         string
	SourceColumnID string

	// column drags
	ColumnID    string
	SourceIndex int
}

func TaskDrag(taskID, sourceColumnID string) Descriptor {
	return Descriptor{Kind: KindTask, TaskID: taskID, SourceColumnID: sourceColumnID}
}

func ColumnDrag(columnID string, sourceIndex int) Descriptor {
	return Descriptor{Kind: KindColumn, ColumnID: columnID, SourceIndex: sourceIndex}
}

// ItemID is the ID of the dragged task or column.
func (d Descriptor) ItemID() string {
	if d.Kind == KindColumn {
		return d.ColumnID
	}
	return d.TaskID
}

func (d Descriptor) String() string {
	if d.Kind == KindColumn {
		return fmt.Sprintf("column %s@%d", d.ColumnID, d.SourceIndex)
	}
	return fmt.Sprintf("task %s in %s", d.TaskID, d.SourceColumnID)
}

type TargetKind int

const (
	TargetColumn TargetKind = iota
	TargetBoard
)

// Target is a drop zone: a column's task list or the board's column strip.
type Target struct {
	Kind     TargetKind
	ColumnID string
}

func ColumnTarget(columnID string) Target {
	return Target{Kind: TargetColumn, ColumnID: columnID}
}

func BoardTarget() Target {
	return Target{Kind: TargetBoard}
}

// Accepts reports whether the target takes this kind of drag. Columns accept
// tasks and the board accepts columns.
func (t Target) Accepts(d Descriptor) bool {
	switch t.Kind {
	case TargetColumn:
		return d.Kind == KindTask
	case TargetBoard:
		return d.Kind == KindColumn
	}
	return false
}

// Point is a pointer position in layout coordinates.
type Point struct {
	X, Y float64
}

type DragStartMsg struct {
	Descriptor Descriptor
}

type DragEnterMsg struct {
	Descriptor Descriptor
	Target     Target
}

type DragLeaveMsg struct {
	Descriptor Descriptor
	Target     Target
}

type DropMsg struct {
	Descriptor Descriptor
	Target     Target
	Point      Point
}

// DragCancelMsg ends a drag without a drop.
type DragCancelMsg struct{}
