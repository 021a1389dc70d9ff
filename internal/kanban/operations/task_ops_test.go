package operations

import (
	"fmt"
	"math/rand/v2"
	"reflect"
	"testing"
	"time"

	"taskboard/internal/kanban/models"
)

var (
	t0 = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Minute)
)

func intp(i int) *int { return &i }

func task(id, text string) models.Task {
	created := t0
	updated := t0
	return models.Task{ID: id, Text: text, CreatedAt: &created, UpdatedAt: &updated}
}

// two columns: A [a1 a2 a3 a4], B [b1]
func makeBoard() models.Board {
	return models.Board{Columns: []models.Column{
		{ID: "A", Title: "Todo", Todos: []models.Task{
			task("a1", "one"), task("a2", "two"), task("a3", "three"), task("a4", "four"),
		}},
		{ID: "B", Title: "Done", Todos: []models.Task{task("b1", "bee")}},
	}}
}

func columnIDs(col models.Column) []string {
	out := make([]string, len(col.Todos))
	for i, t := range col.Todos {
		out[i] = t.ID
	}
	return out
}

func TestAddTask_AppendsWithTimestamps(t *testing.T) {
	board := makeBoard()
	next, ok := AddTask(board, "B", "b2", "  new task  ", t1)
	if !ok {
		t.Fatal("expected AddTask to change the board")
	}

	col := next.Columns[1]
	if got := columnIDs(col); !reflect.DeepEqual(got, []string{"b1", "b2"}) {
		t.Fatalf("unexpected order %v", got)
	}
	added := col.Todos[1]
	if added.Text != "new task" || added.IsCompleted {
		t.Errorf("unexpected task %+v", added)
	}
	if added.CreatedAt == nil || !added.CreatedAt.Equal(t1) || !added.UpdatedAt.Equal(t1) {
		t.Errorf("timestamps not set to now")
	}
	if len(board.Columns[1].Todos) != 1 {
		t.Errorf("input board was mutated")
	}
}

func TestAddTask_Rejects(t *testing.T) {
	board := makeBoard()
	cases := map[string]struct {
		column, id, text string
	}{
		"empty text":     {"A", "x", "   "},
		"missing column": {"Z", "x", "hi"},
		"duplicate id":   {"B", "a1", "hi"},
		"empty id":       {"A", "", "hi"},
	}
	for name, c := range cases {
		if _, ok := AddTask(board, c.column, c.id, c.text, t1); ok {
			t.Errorf("%s: expected no-op", name)
		}
	}
}

func TestEditTask(t *testing.T) {
	board := makeBoard()

	next, ok := EditTask(board, "A", "a2", " second ", t1)
	if !ok {
		t.Fatal("expected edit to apply")
	}
	got := next.Columns[0].Todos[1]
	if got.Text != "second" || !got.UpdatedAt.Equal(t1) || !got.CreatedAt.Equal(t0) {
		t.Errorf("unexpected task after edit: %+v", got)
	}
	if board.Columns[0].Todos[1].Text != "two" {
		t.Errorf("input board was mutated")
	}

	if _, ok := EditTask(board, "A", "a2", "", t1); ok {
		t.Error("empty text should be discarded")
	}
	if _, ok := EditTask(board, "A", "a2", "two", t1); ok {
		t.Error("unchanged text should be a no-op")
	}
	if _, ok := EditTask(board, "B", "a2", "x", t1); ok {
		t.Error("task in another column should be a no-op")
	}
}

func TestToggleComplete_KeepsOrder(t *testing.T) {
	board := makeBoard()

	next, ok := ToggleComplete(board, "A", "a2", t1)
	if !ok {
		t.Fatal("expected toggle to apply")
	}
	if got := columnIDs(next.Columns[0]); !reflect.DeepEqual(got, []string{"a1", "a2", "a3", "a4"}) {
		t.Errorf("toggle reordered the column: %v", got)
	}
	if !next.Columns[0].Todos[1].IsCompleted {
		t.Error("expected task to be completed")
	}

	back, _ := ToggleComplete(next, "A", "a2", t1)
	if back.Columns[0].Todos[1].IsCompleted {
		t.Error("expected second toggle to restore incomplete")
	}
}

func TestDeleteTask(t *testing.T) {
	board := makeBoard()
	next, ok := DeleteTask(board, "A", "a3")
	if !ok {
		t.Fatal("expected delete to apply")
	}
	if got := columnIDs(next.Columns[0]); !reflect.DeepEqual(got, []string{"a1", "a2", "a4"}) {
		t.Errorf("unexpected order %v", got)
	}
	if next.TaskCount() != board.TaskCount()-1 {
		t.Errorf("task count not decremented")
	}
	if _, ok := DeleteTask(board, "A", "nope"); ok {
		t.Error("deleting missing task should be a no-op")
	}
}

func TestMoveTask_SameColumn(t *testing.T) {
	tests := []struct {
		name    string
		taskID  string
		target  *int
		want    []string
		changed bool
	}{
		{"down by one", "a1", intp(1), []string{"a2", "a1", "a3", "a4"}, true},
		{"to front", "a3", intp(0), []string{"a3", "a1", "a2", "a4"}, true},
		{"to last slot", "a1", intp(3), []string{"a2", "a3", "a4", "a1"}, true},
		{"clamped past end", "a2", intp(99), []string{"a1", "a3", "a4", "a2"}, true},
		{"clamped negative", "a4", intp(-5), []string{"a4", "a1", "a2", "a3"}, true},
		{"same position", "a2", intp(1), []string{"a1", "a2", "a3", "a4"}, false},
		{"nil index moves to end", "a1", nil, []string{"a2", "a3", "a4", "a1"}, true},
		{"nil index on last task", "a4", nil, []string{"a1", "a2", "a3", "a4"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := makeBoard()
			next, ok := MoveTask(board, "A", "A", tt.taskID, tt.target, t1)
			if ok != tt.changed {
				t.Fatalf("changed = %v, want %v", ok, tt.changed)
			}
			if got := columnIDs(next.Columns[0]); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got := columnIDs(board.Columns[0]); !reflect.DeepEqual(got, []string{"a1", "a2", "a3", "a4"}) {
				t.Errorf("input board was mutated: %v", got)
			}
		})
	}
}

func TestMoveTask_ReorderIsInvertible(t *testing.T) {
	board := makeBoard()
	for from := 0; from < 4; from++ {
		for to := 0; to < 4; to++ {
			id := board.Columns[0].Todos[from].ID
			moved, _ := MoveTask(board, "A", "A", id, intp(to), t1)
			if moved.Columns[0].Todos[to].ID != id {
				t.Fatalf("%s should land at %d", id, to)
			}
			back, _ := MoveTask(moved, "A", "A", id, intp(from), t1)
			if !reflect.DeepEqual(columnIDs(back.Columns[0]), columnIDs(board.Columns[0])) {
				t.Errorf("move %d->%d->%d did not restore order: %v", from, to, from, columnIDs(back.Columns[0]))
			}
		}
	}
}

func TestMoveTask_SameColumnReorderKeepsUpdatedAt(t *testing.T) {
	board := makeBoard()
	next, _ := MoveTask(board, "A", "A", "a1", intp(2), t1)
	if !next.Columns[0].Todos[2].UpdatedAt.Equal(t0) {
		t.Error("reorder within a column should not stamp UpdatedAt")
	}
}

func TestMoveTask_CrossColumn(t *testing.T) {
	tests := []struct {
		name   string
		target *int
		wantA  []string
		wantB  []string
	}{
		{"at index 0", intp(0), []string{"a1", "a3", "a4"}, []string{"a2", "b1"}},
		{"at end", intp(1), []string{"a1", "a3", "a4"}, []string{"b1", "a2"}},
		{"nil appends", nil, []string{"a1", "a3", "a4"}, []string{"b1", "a2"}},
		{"clamped", intp(10), []string{"a1", "a3", "a4"}, []string{"b1", "a2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := makeBoard()
			next, ok := MoveTask(board, "A", "B", "a2", tt.target, t1)
			if !ok {
				t.Fatal("expected move to apply")
			}
			if got := columnIDs(next.Columns[0]); !reflect.DeepEqual(got, tt.wantA) {
				t.Errorf("source: got %v, want %v", got, tt.wantA)
			}
			if got := columnIDs(next.Columns[1]); !reflect.DeepEqual(got, tt.wantB) {
				t.Errorf("target: got %v, want %v", got, tt.wantB)
			}
			if next.TaskCount() != board.TaskCount() {
				t.Errorf("task count changed: %d -> %d", board.TaskCount(), next.TaskCount())
			}
			ci, ti := next.FindTask("a2")
			if !next.Columns[ci].Todos[ti].UpdatedAt.Equal(t1) {
				t.Error("cross-column move should stamp UpdatedAt")
			}
		})
	}
}

func TestMoveTask_MissingReferences(t *testing.T) {
	board := makeBoard()
	if _, ok := MoveTask(board, "A", "Z", "a1", nil, t1); ok {
		t.Error("missing target column should be a no-op")
	}
	if _, ok := MoveTask(board, "Z", "A", "a1", nil, t1); ok {
		t.Error("missing source column should be a no-op")
	}
	if _, ok := MoveTask(board, "B", "A", "a1", nil, t1); ok {
		t.Error("task outside source column should be a no-op")
	}
}

func TestSetCompleted(t *testing.T) {
	board := makeBoard()
	board.Columns[0].Todos[0].IsCompleted = true

	next, ok := SetCompleted(board, map[string]bool{"a1": true, "a2": true, "b1": true}, true, t1)
	if !ok {
		t.Fatal("expected change")
	}
	if !next.Columns[0].Todos[1].IsCompleted || !next.Columns[1].Todos[0].IsCompleted {
		t.Error("selected tasks should be completed")
	}
	if !next.Columns[0].Todos[0].UpdatedAt.Equal(t0) {
		t.Error("already-completed task should not be touched")
	}
	if next.Columns[0].Todos[2].IsCompleted {
		t.Error("unselected task changed")
	}

	if _, ok := SetCompleted(next, map[string]bool{"a1": true}, true, t1); ok {
		t.Error("no flag change should be a no-op")
	}
}

func TestRemoveTasks(t *testing.T) {
	board := makeBoard()
	next, ok := RemoveTasks(board, map[string]bool{"a1": true, "b1": true, "missing": true})
	if !ok {
		t.Fatal("expected change")
	}
	if got := columnIDs(next.Columns[0]); !reflect.DeepEqual(got, []string{"a2", "a3", "a4"}) {
		t.Errorf("unexpected A %v", got)
	}
	if len(next.Columns[1].Todos) != 0 {
		t.Errorf("expected B empty")
	}
	if _, ok := RemoveTasks(board, map[string]bool{"missing": true}); ok {
		t.Error("no matches should be a no-op")
	}
}

func TestGatherToColumn(t *testing.T) {
	board := makeBoard()
	board.Columns = append(board.Columns, models.Column{ID: "C", Title: "Home", Todos: []models.Task{task("c1", "sea")}})

	// selected b1 (Done) and a3 (Todo) moved to Home: board order is a3, b1
	next, ok := GatherToColumn(board, map[string]bool{"b1": true, "a3": true, "c1": true}, "C", t1)
	if !ok {
		t.Fatal("expected change")
	}
	if got := columnIDs(next.Columns[2]); !reflect.DeepEqual(got, []string{"c1", "a3", "b1"}) {
		t.Errorf("got %v", got)
	}
	if next.TaskCount() != board.TaskCount() {
		t.Error("task count changed")
	}

	if _, ok := GatherToColumn(board, map[string]bool{"a1": true}, "Z", t1); ok {
		t.Error("missing target should be a no-op")
	}
	if _, ok := GatherToColumn(board, map[string]bool{"c1": true}, "C", t1); ok {
		t.Error("tasks already in target should be a no-op")
	}
}

func TestTaskOps_MixedSequenceKeepsCountAndIDs(t *testing.T) {
	for _, seed := range []uint64{1, 7, 42} {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, seed*31))
			board := makeBoard()
			want := board.TaskCount()
			added := 0

			for step := 0; step < 300; step++ {
				target := board.Columns[rng.IntN(len(board.Columns))].ID
				ids := board.TaskIDs()

				switch op := rng.IntN(3); {
				case op == 0 || len(ids) == 0:
					added++
					next, ok := AddTask(board, target, fmt.Sprintf("n%d", added), "task", t1)
					if !ok {
						t.Fatalf("step %d: add to %s failed", step, target)
					}
					board = next
					want++

				case op == 1:
					id := ids[rng.IntN(len(ids))]
					ci, _ := board.FindTask(id)
					next, ok := DeleteTask(board, board.Columns[ci].ID, id)
					if !ok {
						t.Fatalf("step %d: delete %s failed", step, id)
					}
					board = next
					want--

				default:
					id := ids[rng.IntN(len(ids))]
					ci, _ := board.FindTask(id)
					var index *int
					if rng.IntN(4) > 0 {
						index = intp(rng.IntN(len(ids)+3) - 1)
					}
					if next, ok := MoveTask(board, board.Columns[ci].ID, target, id, index, t1); ok {
						board = next
					}
				}

				if got := board.TaskCount(); got != want {
					t.Fatalf("step %d: expected %d tasks, got %d", step, want, got)
				}
				if err := CheckInvariants(board); err != nil {
					t.Fatalf("step %d: %v", step, err)
				}
			}
		})
	}
}
