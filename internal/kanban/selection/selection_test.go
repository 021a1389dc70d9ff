package selection

import (
	"testing"
	"time"

	"taskboard/internal/kanban/ids"
	"taskboard/internal/kanban/models"
	"taskboard/internal/kanban/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store                *store.Store
	personal, work, home string
	tasks                map[string]string
}

// Personal [P], Work [A C], Home [D]
func newFixture(t *testing.T) fixture {
	t.Helper()
	s := store.New(models.Board{},
		store.WithIDs(&ids.Sequence{}),
		store.WithClock(func() time.Time { return clock }))

	f := fixture{store: s, tasks: map[string]string{}}
	f.personal, _ = s.AddColumn("Personal")
	f.work, _ = s.AddColumn("Work")
	f.home, _ = s.AddColumn("Home")
	f.tasks["P"], _ = s.AddTask(f.personal, "P")
	f.tasks["A"], _ = s.AddTask(f.work, "A")
	f.tasks["C"], _ = s.AddTask(f.work, "C")
	f.tasks["D"], _ = s.AddTask(f.home, "D")
	return f
}

func texts(col models.Column) []string {
	out := make([]string, len(col.Todos))
	for i, t := range col.Todos {
		out[i] = t.Text
	}
	return out
}

func column(t *testing.T, s *store.Store, id string) models.Column {
	t.Helper()
	board := s.Board()
	col := board.GetColumn(id)
	require.NotNil(t, col)
	return *col
}

func TestToggleAndQuery(t *testing.T) {
	f := newFixture(t)
	m := NewManager()

	m.Toggle(f.tasks["D"])
	m.Toggle(f.tasks["A"])
	m.Toggle(f.tasks["P"])
	m.Toggle(f.tasks["P"])

	assert.True(t, m.IsSelected(f.tasks["A"]))
	assert.False(t, m.IsSelected(f.tasks["P"]))
	assert.Equal(t, 2, m.Count())
	assert.True(t, m.HasSelected())

	selected := m.Selected(f.store.Board())
	require.Len(t, selected, 2)
	assert.Equal(t, "A", selected[0].Text, "board order, not toggle order")
	assert.Equal(t, "D", selected[1].Text)
}

func TestSelectAllInColumn(t *testing.T) {
	f := newFixture(t)
	m := NewManager()
	board := f.store.Board()

	m.SelectAllInColumn(board, f.work)
	assert.Equal(t, 2, m.SelectedInColumn(board, f.work))
	assert.Equal(t, 0, m.SelectedInColumn(board, f.home))

	m.DeselectAllInColumn(board, f.work)
	assert.False(t, m.HasSelected())

	m.SelectAllInColumn(board, "missing")
	assert.Equal(t, 0, m.Count())
}

func TestToggleSelectMode(t *testing.T) {
	f := newFixture(t)
	m := NewManager()
	before := f.store.Board()

	assert.True(t, m.ToggleSelectMode())
	m.Toggle(f.tasks["A"])
	assert.Equal(t, before, f.store.Board(), "entering select mode changes no data")

	assert.False(t, m.ToggleSelectMode())
	assert.False(t, m.HasSelected())
}

func TestMoveSelectedToColumn(t *testing.T) {
	f := newFixture(t)
	m := NewManager()
	m.Toggle(f.tasks["C"])

	require.True(t, m.MoveSelectedToColumn(f.store, f.home))

	assert.Equal(t, []string{"A"}, texts(column(t, f.store, f.work)))
	assert.Equal(t, []string{"D", "C"}, texts(column(t, f.store, f.home)))
	assert.False(t, m.IsSelected(f.tasks["C"]))
	assert.Equal(t, 4, f.store.Board().TaskCount())
}

func TestMoveSelectedToColumn_StableOrderAndInPlace(t *testing.T) {
	f := newFixture(t)
	m := NewManager()
	m.Toggle(f.tasks["D"])
	m.Toggle(f.tasks["C"])
	m.Toggle(f.tasks["P"])
	m.Toggle(f.tasks["A"])

	require.True(t, m.MoveSelectedToColumn(f.store, f.home))

	assert.Equal(t, []string{"D", "P", "A", "C"}, texts(column(t, f.store, f.home)))
	assert.Empty(t, column(t, f.store, f.work).Todos)
	assert.False(t, m.HasSelected())
}

func TestMoveSelectedToColumn_MissingTarget(t *testing.T) {
	f := newFixture(t)
	m := NewManager()
	m.Toggle(f.tasks["A"])
	before := f.store.Board()

	assert.False(t, m.MoveSelectedToColumn(f.store, "gone"))
	assert.Equal(t, before, f.store.Board())
	assert.True(t, m.IsSelected(f.tasks["A"]))
}

func TestDeleteSelected(t *testing.T) {
	f := newFixture(t)
	m := NewManager()
	m.Toggle(f.tasks["A"])
	m.Toggle(f.tasks["D"])

	require.True(t, m.DeleteSelected(f.store))

	board := f.store.Board()
	assert.Equal(t, 2, board.TaskCount())
	assert.Equal(t, []string{"C"}, texts(column(t, f.store, f.work)))
	assert.Empty(t, column(t, f.store, f.home).Todos)
	assert.False(t, m.HasSelected())

	assert.False(t, m.DeleteSelected(f.store), "nothing selected")
}

func TestMarkSelected(t *testing.T) {
	f := newFixture(t)
	m := NewManager()
	m.Toggle(f.tasks["A"])
	m.Toggle(f.tasks["D"])

	require.True(t, m.MarkSelectedCompleted(f.store))
	assert.False(t, m.HasSelected())

	for _, col := range f.store.Board().Columns {
		for _, task := range col.Todos {
			want := task.Text == "A" || task.Text == "D"
			assert.Equal(t, want, task.IsCompleted, task.Text)
		}
	}
	assert.Equal(t, []string{"A", "C"}, texts(column(t, f.store, f.work)), "order unchanged")

	m.Toggle(f.tasks["A"])
	require.True(t, m.MarkSelectedIncomplete(f.store))
	assert.False(t, column(t, f.store, f.work).Todos[0].IsCompleted)
}

func TestPrune(t *testing.T) {
	f := newFixture(t)
	m := NewManager()
	m.Toggle(f.tasks["A"])
	m.Toggle("stale")

	m.Prune(f.store.Board())
	assert.Equal(t, 1, m.Count())
	assert.True(t, m.IsSelected(f.tasks["A"]))
}
