package fs

import (
	"strings"
	"testing"

	"taskboard/internal/kanban/ids"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMarkdown_Layout(t *testing.T) {
	out, err := WriteMarkdown(testBoard(), "My Board", fixedNow)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "---\n"))
	assert.Contains(t, s, "format: taskboard")
	assert.Contains(t, s, "tasks: 3")
	assert.Contains(t, s, "# My Board\n")
	assert.Contains(t, s, "## Work\n\n- [ ] Write report\n- [x] Review PR\n")
	assert.Contains(t, s, "## Empty\n")
}

func TestMarkdown_RoundTrip(t *testing.T) {
	original := testBoard()
	out, err := WriteMarkdown(original, "", fixedNow)
	require.NoError(t, err)

	board, meta, err := ReadMarkdown(out, &ids.Sequence{Prefix: "md"}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "taskboard", meta.Format)
	assert.Equal(t, 3, meta.Columns)
	require.Len(t, board.Columns, len(original.Columns))
	for i, col := range original.Columns {
		got := board.Columns[i]
		assert.Equal(t, col.Title, got.Title)
		require.Len(t, got.Todos, len(col.Todos), "column %s", col.Title)
		for j, task := range col.Todos {
			assert.Equal(t, task.Text, got.Todos[j].Text)
			assert.Equal(t, task.IsCompleted, got.Todos[j].IsCompleted)
			assert.NotEmpty(t, got.Todos[j].ID)
		}
	}
}

func TestReadMarkdown_CheckboxNotInText(t *testing.T) {
	board := testBoard()
	for range 3 {
		out, err := WriteMarkdown(board, "", fixedNow)
		require.NoError(t, err)
		board, _, err = ReadMarkdown(out, &ids.Sequence{Prefix: "md"}, fixedNow)
		require.NoError(t, err)
	}

	work := board.Columns[0]
	require.Len(t, work.Todos, 2)
	assert.Equal(t, "Write report", work.Todos[0].Text)
	assert.False(t, work.Todos[0].IsCompleted)
	assert.Equal(t, "Review PR", work.Todos[1].Text)
	assert.True(t, work.Todos[1].IsCompleted)
}

func TestReadMarkdown_InlineMarkupAndWrapping(t *testing.T) {
	doc := "## Work\n\n- [ ] Ship *the* `v2` release\n  today\n"
	board, _, err := ReadMarkdown([]byte(doc), &ids.Sequence{}, fixedNow)
	require.NoError(t, err)

	require.Len(t, board.Columns, 1)
	require.Len(t, board.Columns[0].Todos, 1)
	assert.Equal(t, "Ship the v2 release today", board.Columns[0].Todos[0].Text)
}

func TestReadMarkdown_WithoutFrontmatter(t *testing.T) {
	doc := `# Groceries

Some intro text.

## Shop

- milk
- [x] eggs
  - nested detail

## Later

* [ ] bread
`
	board, meta, err := ReadMarkdown([]byte(doc), &ids.Sequence{}, fixedNow)
	require.NoError(t, err)
	assert.Empty(t, meta.Format)

	require.Len(t, board.Columns, 2)
	shop := board.Columns[0]
	assert.Equal(t, "Shop", shop.Title)
	require.Len(t, shop.Todos, 2)
	assert.Equal(t, "milk", shop.Todos[0].Text)
	assert.False(t, shop.Todos[0].IsCompleted)
	assert.Equal(t, "eggs", shop.Todos[1].Text)
	assert.True(t, shop.Todos[1].IsCompleted)

	require.Len(t, board.Columns[1].Todos, 1)
	assert.Equal(t, "bread", board.Columns[1].Todos[0].Text)
}

func TestReadMarkdown_ItemsBeforeFirstColumnIgnored(t *testing.T) {
	doc := "- orphan\n\n## Col\n\n- kept\n"
	board, _, err := ReadMarkdown([]byte(doc), &ids.Sequence{}, fixedNow)
	require.NoError(t, err)
	require.Len(t, board.Columns, 1)
	require.Len(t, board.Columns[0].Todos, 1)
	assert.Equal(t, "kept", board.Columns[0].Todos[0].Text)
}

func TestReadMarkdown_BadFrontmatter(t *testing.T) {
	doc := "---\nformat: [unclosed\n---\n\n## Col\n"
	_, _, err := ReadMarkdown([]byte(doc), &ids.Sequence{}, fixedNow)
	assert.Error(t, err)
}
