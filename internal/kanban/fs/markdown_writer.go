package fs

import (
	"bytes"
	"strings"
	"time"

	"taskboard/internal/kanban/models"

	"gopkg.in/yaml.v3"
)

// MarkdownMeta is the YAML frontmatter of an exported board.
type MarkdownMeta struct {
	Format     string `yaml:"format"`
	Version    int    `yaml:"version"`
	ExportedAt string `yaml:"exported_at,omitempty"`
	Columns    int    `yaml:"columns"`
	Tasks      int    `yaml:"tasks"`
}

const markdownFormat = "taskboard"

// WriteMarkdown renders a board as a markdown document: one H2 per column and
// a GitHub task list item per task.
func WriteMarkdown(board models.Board, name string, exportedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer

	meta := MarkdownMeta{
		Format:     markdownFormat,
		Version:    1,
		ExportedAt: exportedAt.UTC().Format(time.RFC3339),
		Columns:    len(board.Columns),
		Tasks:      board.TaskCount(),
	}
	yamlBytes, err := yaml.Marshal(meta)
	if err != nil {
		return nil, err
	}
	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n\n")

	if name == "" {
		name = "Board"
	}
	buf.WriteString("# ")
	buf.WriteString(singleLine(name))
	buf.WriteString("\n\n")

	for _, column := range board.Columns {
		buf.WriteString("## ")
		buf.WriteString(singleLine(column.Title))
		buf.WriteString("\n\n")

		for _, t := range column.Todos {
			if t.IsCompleted {
				buf.WriteString("- [x] ")
			} else {
				buf.WriteString("- [ ] ")
			}
			buf.WriteString(singleLine(t.Text))
			buf.WriteString("\n")
		}
		if len(column.Todos) > 0 {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
