package fs

import (
	"bytes"
	"strings"
	"time"

	"taskboard/internal/kanban/ids"
	"taskboard/internal/kanban/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// ReadMarkdown parses a markdown board. Every H2 starts a column and every
// list item under it becomes a task; "- [x]" items are completed. All
// columns and tasks get fresh IDs from source.
func ReadMarkdown(content []byte, source ids.Source, now time.Time) (models.Board, MarkdownMeta, error) {
	body, meta, err := stripFrontmatter(content)
	if err != nil {
		return models.Board{}, MarkdownMeta{}, err
	}

	board := models.Board{Columns: []models.Column{}}

	md := goldmark.New(goldmark.WithExtensions(extension.TaskList))
	doc := md.Parser().Parse(text.NewReader(body))

	var currentColumn *models.Column

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level != 2 {
				return ast.WalkSkipChildren, nil
			}
			if currentColumn != nil {
				board.Columns = append(board.Columns, *currentColumn)
			}
			title := strings.TrimSpace(string(node.Text(body)))
			if title == "" {
				title = "Untitled"
			}
			currentColumn = &models.Column{
				ID:    source.NewID(),
				Title: title,
				Todos: []models.Task{},
			}
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			if currentColumn == nil {
				return ast.WalkSkipChildren, nil
			}
			itemText, done := listItemTask(node, body)
			if itemText != "" {
				created := now
				updated := now
				currentColumn.Todos = append(currentColumn.Todos, models.Task{
					ID:          source.NewID(),
					Text:        itemText,
					IsCompleted: done,
					CreatedAt:   &created,
					UpdatedAt:   &updated,
				})
			}
			// nested lists are not tasks of their own
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	if currentColumn != nil {
		board.Columns = append(board.Columns, *currentColumn)
	}

	return board, meta, nil
}

func listItemTask(item *ast.ListItem, source []byte) (string, bool) {
	block := item.FirstChild()
	if block == nil {
		return "", false
	}

	done := false
	var sb strings.Builder
	for c := block.FirstChild(); c != nil; c = c.NextSibling() {
		if cb, ok := c.(*east.TaskCheckBox); ok {
			done = cb.IsChecked
			continue
		}
		sb.Write(c.Text(source))
		if t, ok := c.(*ast.Text); ok && (t.SoftLineBreak() || t.HardLineBreak()) {
			sb.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(sb.String()), " "), done
}

// stripFrontmatter splits optional YAML frontmatter from the markdown body.
func stripFrontmatter(content []byte) ([]byte, MarkdownMeta, error) {
	var meta MarkdownMeta

	lines := bytes.Split(content, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content, meta, nil
	}

	var frontmatterEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontmatterEnd = i
			break
		}
	}
	if frontmatterEnd == 0 {
		return content, meta, nil
	}

	frontmatterBytes := bytes.Join(lines[1:frontmatterEnd], []byte("\n"))
	if err := yaml.Unmarshal(frontmatterBytes, &meta); err != nil {
		return nil, MarkdownMeta{}, err
	}

	body := bytes.TrimLeft(bytes.Join(lines[frontmatterEnd+1:], []byte("\n")), "\n")
	return body, meta, nil
}
