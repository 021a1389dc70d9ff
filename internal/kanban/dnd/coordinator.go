package dnd

import (
	"taskboard/internal/kanban/filter"
	"taskboard/internal/kanban/models"
	"taskboard/internal/logs"
)

// Layout reports where drop zones sit in pointer coordinates.
type Layout interface {
	// ListTop is the top edge of a column's task list.
	ListTop(columnID string) float64
	// BoardLeft is the left edge of the first column slot.
	BoardLeft() float64
}

// Mover is the part of the board store a drop needs.
type Mover interface {
	Board() models.Board
	MoveTask(sourceColumnID, targetColumnID, taskID string, targetIndex *int) bool
	MoveColumn(sourceIndex, targetIndex int) bool
}

// Coordinator reacts to drag messages and keeps the transient dragging and
// dragged-over indicators.
type Coordinator struct {
	mover    Mover
	layout   Layout
	geometry Geometry
	view     func() filter.State

	dragging *Descriptor
	over     map[Target]bool
}

// NewCoordinator wires a coordinator. view returns the filter state the user
// currently sees; it may be nil for an unfiltered board.
func NewCoordinator(mover Mover, layout Layout, geometry Geometry, view func() filter.State) *Coordinator {
	if view == nil {
		view = func() filter.State { return filter.State{} }
	}
	return &Coordinator{
		mover:    mover,
		layout:   layout,
		geometry: geometry,
		view:     view,
		over:     make(map[Target]bool),
	}
}

// Handle processes one drag message and reports whether the board changed.
// Messages of other types are ignored.
func (c *Coordinator) Handle(msg any) bool {
	switch msg := msg.(type) {
	case DragStartMsg:
		d := msg.Descriptor
		c.dragging = &d
		c.over = make(map[Target]bool)
		logs.Logger.Debugw("drag start", "item", d.String())

	case DragEnterMsg:
		if msg.Target.Accepts(msg.Descriptor) {
			c.over[msg.Target] = true
		}

	case DragLeaveMsg:
		delete(c.over, msg.Target)

	case DropMsg:
		defer c.reset()
		return c.drop(msg)

	case DragCancelMsg:
		if c.dragging != nil {
			logs.Logger.Debugw("drag cancelled", "item", c.dragging.String())
		}
		c.reset()
	}
	return false
}

// Dragging returns the descriptor of the drag in progress.
func (c *Coordinator) Dragging() (Descriptor, bool) {
	if c.dragging == nil {
		return Descriptor{}, false
	}
	return *c.dragging, true
}

// IsDragging reports whether the given task or column is being dragged.
func (c *Coordinator) IsDragging(itemID string) bool {
	return c.dragging != nil && c.dragging.ItemID() == itemID
}

// IsOver reports whether the current drag hovers the target.
func (c *Coordinator) IsOver(t Target) bool {
	return c.over[t]
}

func (c *Coordinator) reset() {
	c.dragging = nil
	c.over = make(map[Target]bool)
}

func (c *Coordinator) drop(msg DropMsg) bool {
	d := msg.Descriptor
	if !msg.Target.Accepts(d) {
		logs.Logger.Debugw("drop rejected by target", "item", d.String(), "target", msg.Target.ColumnID)
		return false
	}

	board := c.mover.Board()

	switch d.Kind {
	case KindTask:
		relativeY := msg.Point.Y - c.layout.ListTop(msg.Target.ColumnID)
		move, ok := ResolveTaskDrop(board, c.view(), c.geometry, d, msg.Target.ColumnID, relativeY)
		if !ok {
			return false
		}
		index := move.TargetIndex
		return c.mover.MoveTask(move.SourceColumnID, move.TargetColumnID, move.TaskID, &index)

	case KindColumn:
		relativeX := msg.Point.X - c.layout.BoardLeft()
		move, ok := ResolveColumnDrop(board, c.geometry, d, relativeX)
		if !ok {
			return false
		}
		return c.mover.MoveColumn(move.SourceIndex, move.TargetIndex)
	}
	return false
}
