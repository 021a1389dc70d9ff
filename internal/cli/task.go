package cli

import (
	"fmt"
	"strings"

	"taskboard/internal/kanban/filter"
	"taskboard/internal/kanban/models"
	"taskboard/internal/kanban/operations"

	"github.com/spf13/cobra"
)

// task resolves a task by ID or unique ID prefix.
func (a *app) task(ref string) (string, models.Task, error) {
	columnID, task, ok := filter.FindTask(a.store.Board(), ref)
	if !ok {
		return "", models.Task{}, fmt.Errorf("no single task matches ID %q", ref)
	}
	return columnID, task, nil
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add <column> <text>",
		Aliases: []string{"a"},
		Short:   "Append a task to a column",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := a.column(args[0])
			if err != nil {
				return err
			}
			text, err := operations.ValidateText(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			id, ok := a.store.AddTask(col.ID, text)
			if !ok {
				return fmt.Errorf("could not add task to %s", col.Title)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s: %s\n", shortID(id), col.Title, text)
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <task> <text>",
		Short: "Replace a task's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			columnID, task, err := a.task(args[0])
			if err != nil {
				return err
			}
			text, err := operations.ValidateText(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if !a.store.EditTask(columnID, task.ID, text) {
				fmt.Fprintf(cmd.OutOrStdout(), "Unchanged: %s\n", task.Text)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s\n", shortID(task.ID), text)
			return nil
		},
	}
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <task>",
		Aliases: []string{"done", "do"},
		Short:   "Flip a task between complete and incomplete",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			columnID, task, err := a.task(args[0])
			if err != nil {
				return err
			}
			a.store.ToggleComplete(columnID, task.ID)
			if task.IsCompleted {
				fmt.Fprintf(cmd.OutOrStdout(), "Reopened: %s\n", task.Text)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Completed: %s\n", task.Text)
			}
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <task>",
		Aliases: []string{"rm", "del"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			columnID, task, err := a.task(args[0])
			if err != nil {
				return err
			}
			a.store.DeleteTask(columnID, task.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", task.Text)
			return nil
		},
	}
}

func newMoveCmd(a *app) *cobra.Command {
	var position int

	cmd := &cobra.Command{
		Use:     "move <task> <column>",
		Aliases: []string{"mv"},
		Short:   "Move a task to a column, at the end or a 1-based position",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceID, task, err := a.task(args[0])
			if err != nil {
				return err
			}
			col, err := a.column(args[1])
			if err != nil {
				return err
			}

			var index *int
			if cmd.Flags().Changed("position") {
				if position < 1 {
					return fmt.Errorf("position must be 1 or more")
				}
				i := position - 1
				index = &i
			}

			if !a.store.MoveTask(sourceID, col.ID, task.ID, index) {
				fmt.Fprintf(cmd.OutOrStdout(), "Already there: %s\n", task.Text)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", task.Text, col.Title)
			return nil
		},
	}

	cmd.Flags().IntVarP(&position, "position", "p", 0, "1-based position in the target column (default: end)")
	return cmd
}
