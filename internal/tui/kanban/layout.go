package kanban

import "taskboard/internal/kanban/dnd"

// boardLayout is the drop-zone geometry the keyboard drags are expressed in.
// Every task list starts at y=0 and column slots run left to right from x=0,
// so a row or slot index maps straight onto a pointer position.
type boardLayout struct{}

func (boardLayout) ListTop(string) float64 { return 0 }
func (boardLayout) BoardLeft() float64     { return 0 }

// rowPoint is the middle of a visible row of a task list.
func rowPoint(g dnd.Geometry, row int) dnd.Point {
	return dnd.Point{Y: float64(row)*g.RowHeight + g.RowHeight/2}
}

// slotPoint is the middle of a column slot.
func slotPoint(g dnd.Geometry, slot int) dnd.Point {
	return dnd.Point{X: float64(slot)*g.ColumnSlotWidth + g.ColumnSlotWidth/2}
}
