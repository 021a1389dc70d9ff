package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"taskboard/internal/kanban/filter"
	"taskboard/internal/kanban/fs"
	"taskboard/internal/kanban/ids"
	"taskboard/internal/kanban/models"
	"taskboard/internal/kanban/operations"

	"github.com/spf13/cobra"
)

func (a *app) column(ref string) (models.Column, error) {
	col, ok := filter.FindColumn(a.store.Board(), ref)
	if !ok {
		return models.Column{}, fmt.Errorf("no column matches %q", ref)
	}
	return col, nil
}

func newListCmd(a *app) *cobra.Command {
	var mode, search string

	cmd := &cobra.Command{
		Use:     "list [column]",
		Aliases: []string{"ls", "l"},
		Short:   "Print the board or one column",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := filter.State{SearchTerm: search, Mode: a.cfg.FilterMode()}
			if cmd.Flags().Changed("filter") {
				m, err := filter.ParseMode(mode)
				if err != nil {
					return err
				}
				state.Mode = m
			}

			columns := a.store.Board().Columns
			if len(args) == 1 {
				col, err := a.column(args[0])
				if err != nil {
					return err
				}
				columns = []models.Column{col}
			}

			printColumns(cmd.OutOrStdout(), columns, state)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "filter", "f", "", "all, completed or incomplete")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only tasks containing this text")
	return cmd
}

func printColumns(out io.Writer, columns []models.Column, state filter.State) {
	if len(columns) == 0 {
		fmt.Fprintln(out, "No columns.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, col := range columns {
		if i > 0 {
			fmt.Fprintln(w)
		}
		completed, total := filter.Counts(col)
		fmt.Fprintf(w, "%s (%s)\t%d/%d\n", col.Title, shortID(col.ID), completed, total)

		tasks := filter.Apply(col, state)
		if len(tasks) == 0 {
			fmt.Fprintln(w, "  (no tasks)")
			continue
		}
		for _, t := range tasks {
			status := " "
			if t.IsCompleted {
				status = "x"
			}
			fmt.Fprintf(w, "  [%s] %s\t%s\n", status, shortID(t.ID), t.Text)
		}
	}
	w.Flush()
}

func newAddColumnCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-column <title>",
		Short: "Append a column",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := operations.ValidateTitle(strings.Join(args, " "))
			if err != nil {
				return err
			}
			id, ok := a.store.AddColumn(title)
			if !ok {
				return fmt.Errorf("could not add column %q", title)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added column %s: %s\n", shortID(id), title)
			return nil
		},
	}
}

func newRenameColumnCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename-column <column> <title>",
		Short: "Change a column title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := a.column(args[0])
			if err != nil {
				return err
			}
			title, err := operations.ValidateTitle(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if !a.store.RenameColumn(col.ID, title) {
				fmt.Fprintf(cmd.OutOrStdout(), "Column already named %s\n", title)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed column %s to %s\n", col.Title, title)
			return nil
		},
	}
}

func newDeleteColumnCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete-column <column>",
		Aliases: []string{"rm-column"},
		Short:   "Remove a column and all of its tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := a.column(args[0])
			if err != nil {
				return err
			}
			a.store.DeleteColumn(col.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted column %s (%d tasks)\n", col.Title, len(col.Todos))
			return nil
		},
	}
}

func newMoveColumnCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move-column <column> <position>",
		Short: "Move a column to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			board := a.store.Board()
			col, err := a.column(args[0])
			if err != nil {
				return err
			}
			pos, err := strconv.Atoi(args[1])
			if err != nil || pos < 1 || pos > len(board.Columns) {
				return fmt.Errorf("position must be between 1 and %d", len(board.Columns))
			}
			if !a.store.MoveColumn(board.GetColumnIndex(col.ID), pos-1) {
				fmt.Fprintf(cmd.OutOrStdout(), "Column %s is already at position %d\n", col.Title, pos)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved column %s to position %d\n", col.Title, pos)
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the board as markdown or JSON",
		Long: `Write the board as a markdown task list (the default) or as the stored JSON.

Without a file the board is written to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && !cmd.Flags().Changed("format") {
				format = formatFor(args[0])
			}

			board := a.store.Board()
			var data []byte
			var err error
			switch format {
			case "markdown", "md":
				data, err = fs.WriteMarkdown(board, a.cfg.Storage.Key, a.store.Now())
			case "json":
				data, err = fs.EncodeBoard(board)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			if err != nil {
				return err
			}

			if len(args) == 0 {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d columns and %d tasks to %s\n", len(board.Columns), board.TaskCount(), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "markdown", "markdown or json")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the board with an exported one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = formatFor(args[0])
			}
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var board models.Board
			switch format {
			case "markdown", "md":
				board, _, err = fs.ReadMarkdown(content, ids.UUIDSource{}, a.store.Now())
			case "json":
				board, err = fs.DecodeBoard(content)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			if err := a.store.Replace(board); err != nil {
				return fmt.Errorf("invalid board in %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d columns and %d tasks\n", len(board.Columns), board.TaskCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "markdown", "markdown or json")
	return cmd
}

func formatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "json"
	}
	return "markdown"
}
