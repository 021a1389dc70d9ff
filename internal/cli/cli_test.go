package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"taskboard/internal/kanban/fs"
	"taskboard/internal/kanban/models"
	"taskboard/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t   *testing.T
	dir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(home)
	return &harness{t: t, dir: filepath.Join(home, "data")}
}

// run executes one CLI invocation against the harness data dir.
func (h *harness) run(args ...string) (int, string, string) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--data-dir", h.dir}, args...)
	code := execute(full, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func (h *harness) ok(args ...string) string {
	h.t.Helper()
	code, out, errOut := h.run(args...)
	require.Equal(h.t, 0, code, "taskboard %v failed: %s", args, errOut)
	return out
}

// board reads what the last invocation saved.
func (h *harness) board() models.Board {
	h.t.Helper()
	st, err := storage.Open(context.Background(), storage.Options{Driver: "file", Dir: h.dir})
	require.NoError(h.t, err)
	defer st.Close()
	board, ok, err := fs.NewAdapter(st, fs.DefaultKey).Load(context.Background())
	require.NoError(h.t, err)
	require.True(h.t, ok, "no board saved")
	return board
}

func titles(b models.Board) []string {
	out := []string{}
	for _, c := range b.Columns {
		out = append(out, c.Title)
	}
	return out
}

func texts(c *models.Column) []string {
	out := []string{}
	for _, t := range c.Todos {
		out = append(out, t.Text)
	}
	return out
}

func columnByTitle(t *testing.T, b models.Board, title string) *models.Column {
	t.Helper()
	for i := range b.Columns {
		if b.Columns[i].Title == title {
			return &b.Columns[i]
		}
	}
	t.Fatalf("no column %q in %v", title, titles(b))
	return nil
}

func TestRun_FirstRunSeedsBoard(t *testing.T) {
	h := newHarness(t)

	out := h.ok("list")
	assert.Contains(t, out, "Personal")
	assert.Contains(t, out, "Buy a new phone")
	assert.Contains(t, out, "[x]")

	first := h.board()
	assert.Equal(t, []string{"Personal", "Work", "Home"}, titles(first))

	h.ok("list")
	assert.Equal(t, first, h.board(), "seed IDs stay stable across runs")
}

func TestRun_ListFilters(t *testing.T) {
	h := newHarness(t)

	out := h.ok("list", "--filter", "completed")
	assert.Contains(t, out, "Have a meeting with the team")
	assert.NotContains(t, out, "Buy a new phone")

	out = h.ok("list", "work", "--search", "FINISH")
	assert.Contains(t, out, "Finish the project")
	assert.NotContains(t, out, "Home")

	code, _, errOut := h.run("list", "--filter", "someday")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error:")
}

func TestRun_TaskLifecycle(t *testing.T) {
	h := newHarness(t)

	out := h.ok("add", "work", "Review", "the", "design")
	assert.Contains(t, out, "Added")
	work := columnByTitle(t, h.board(), "Work")
	require.Len(t, work.Todos, 3)
	task := work.Todos[2]
	assert.Equal(t, "Review the design", task.Text)
	assert.False(t, task.IsCompleted)

	out = h.ok("toggle", task.ID[:8])
	assert.Contains(t, out, "Completed: Review the design")
	assert.True(t, columnByTitle(t, h.board(), "Work").Todos[2].IsCompleted)

	h.ok("edit", task.ID, "Review the final design")
	assert.Equal(t, "Review the final design", columnByTitle(t, h.board(), "Work").Todos[2].Text)

	h.ok("move", task.ID, "Home", "--position", "1")
	board := h.board()
	assert.Len(t, columnByTitle(t, board, "Work").Todos, 2)
	assert.Equal(t, []string{"Review the final design", "Buy a new fridge", "Buy a new TV"}, texts(columnByTitle(t, board, "Home")))

	h.ok("delete", task.ID)
	assert.Len(t, columnByTitle(t, h.board(), "Home").Todos, 2)
}

func TestRun_ColumnCommands(t *testing.T) {
	h := newHarness(t)

	h.ok("add-column", "Someday", "maybe")
	assert.Equal(t, []string{"Personal", "Work", "Home", "Someday maybe"}, titles(h.board()))

	h.ok("rename-column", "someday maybe", "Later")
	h.ok("move-column", "Later", "1")
	assert.Equal(t, []string{"Later", "Personal", "Work", "Home"}, titles(h.board()))

	out := h.ok("delete-column", "Home")
	assert.Contains(t, out, "2 tasks")
	assert.Equal(t, []string{"Later", "Personal", "Work"}, titles(h.board()))

	code, _, errOut := h.run("move-column", "Later", "9")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "position must be between 1 and 3")
}

func TestRun_Errors(t *testing.T) {
	h := newHarness(t)
	h.ok("list")
	before := h.board()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown column", []string{"add", "zzz", "task"}, `no column matches "zzz"`},
		{"blank text", []string{"add", "work", "  "}, "task text cannot be empty"},
		{"unknown task", []string{"toggle", "nope"}, `no single task matches ID "nope"`},
		{"blank title", []string{"add-column", " "}, "title cannot be empty"},
		{"bad position", []string{"move", before.Columns[0].Todos[0].ID, "work", "--position", "0"}, "position must be 1 or more"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := h.run(tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, errOut, tt.want)
		})
	}

	assert.Equal(t, before, h.board(), "failed commands leave the board alone")
}

func TestRun_ExportImport(t *testing.T) {
	h := newHarness(t)
	h.ok("list")
	original := h.board()

	mdPath := filepath.Join(h.dir, "board.md")
	out := h.ok("export", mdPath)
	assert.Contains(t, out, "Exported 3 columns and 6 tasks")

	data, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Work")
	assert.Contains(t, string(data), "- [x] Have a meeting with the team")

	h.ok("delete-column", "Personal")
	h.ok("import", mdPath)
	imported := h.board()
	assert.Equal(t, titles(original), titles(imported))
	assert.Equal(t, texts(&original.Columns[0]), texts(&imported.Columns[0]))
	assert.True(t, columnByTitle(t, imported, "Home").Todos[1].IsCompleted)

	jsonPath := filepath.Join(h.dir, "board.json")
	h.ok("export", jsonPath)
	h.ok("add-column", "Extra")
	h.ok("import", jsonPath)
	assert.Equal(t, imported, h.board(), "JSON export round-trips exactly")
}

func TestRun_ExportToStdout(t *testing.T) {
	h := newHarness(t)
	out := h.ok("export", "--format", "json")
	assert.Contains(t, out, `"title":"Personal"`)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "12345678", shortID("1234567890"))
}
