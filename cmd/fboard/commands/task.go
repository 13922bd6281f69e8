package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fboard/internal/application/dto"
)

// dueDateLayouts are tried in order; the first two are read in local time
var dueDateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
}

// taskCmd represents the task command
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage card checklists",
	Long: `Manage the checklist of a card. Every task has a description and a due
date, and is classified as ok, near, very near, overdue or completed.

Tasks are addressed by id. Any unique prefix of the id works, so the short
id shown by "fboard task list" is enough.

Examples:
  # Add a task due on a date (end of day) or at a time
  fboard task add "todo/Fix login" "Write regression test" --due 2024-06-14
  fboard task add "todo/Fix login" "Deploy" --due "2024-06-14 17:00"

  # Show the checklist
  fboard task list "todo/Fix login"

  # Mark a task done, or undone again
  fboard task toggle "todo/Fix login" 3f2a91c0`,
}

// taskListCmd lists tasks of a card
var taskListCmd = &cobra.Command{
	Use:     "list [stage/card]",
	Aliases: []string{"ls"},
	Short:   "List the tasks of a card",
	Long: `List the checklist of a card ordered by due date.

Examples:
  fboard task list "todo/Fix login"
  fboard task list "todo/Fix login" -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		args, err := resolveArgs(args, 1)
		if err != nil {
			return err
		}
		ref, err := parseCardRef(args[0])
		if err != nil {
			return err
		}

		tasks, err := container.ListTasksUseCase.Execute(ctx, ref)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(tasks)
		}
		if len(tasks) == 0 {
			printer.Info("No tasks. Add one with: fboard task add %q <description> --due <date>", args[0])
			return nil
		}
		printTasks(tasks)
		return nil
	},
}

// taskAddCmd adds a task
var taskAddCmd = &cobra.Command{
	Use:   "add <stage/card> <description...>",
	Short: "Add a task to a card",
	Long: `Add a task to the checklist of a card. --due is required and accepts
"2006-01-02" (end of that day), "2006-01-02 15:04" or RFC 3339.

Examples:
  fboard task add "todo/Fix login" Write regression test --due 2024-06-14
  fboard task add "todo/Fix login" "Ship it" --due 2024-06-14T17:00:00Z`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		due, _ := cmd.Flags().GetString("due")
		ref, err := parseCardRef(args[0])
		if err != nil {
			return err
		}
		dueAt, err := parseDueDate(due)
		if err != nil {
			return err
		}

		task, err := container.AddTaskUseCase.Execute(ctx, dto.AddTaskRequest{
			Card:        ref,
			Description: strings.Join(args[1:], " "),
			DueAt:       dueAt,
		})
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(task)
		}
		printer.Success("Added task %s to %s (due %s)", task.ShortID, args[0], formatDue(task.DueAt))
		return nil
	},
}

// taskToggleCmd flips completion
var taskToggleCmd = &cobra.Command{
	Use:     "toggle <stage/card> <task-id>",
	Aliases: []string{"done"},
	Short:   "Toggle a task between open and completed",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		ref, err := parseCardRef(args[0])
		if err != nil {
			return err
		}

		task, err := container.ToggleTaskUseCase.Execute(ctx, ref, args[1])
		if err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(task)
		}
		if task.IsCompleted {
			printer.Success("Completed %s: %s", task.ShortID, task.Description)
		} else {
			printer.Success("Reopened %s: %s", task.ShortID, task.Description)
		}
		return nil
	},
}

// taskRemoveCmd deletes a task
var taskRemoveCmd = &cobra.Command{
	Use:     "remove <stage/card> <task-id>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a task from a card",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		ref, err := parseCardRef(args[0])
		if err != nil {
			return err
		}

		if err := container.RemoveTaskUseCase.Execute(ctx, ref, args[1]); err != nil {
			return fmt.Errorf("failed to remove task: %w", err)
		}
		printer.Success("Removed task %s from %s", args[1], args[0])
		return nil
	},
}

// parseDueDate reads --due. A bare date means the end of that local day.
func parseDueDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("--due is required")
	}
	for _, layout := range dueDateLayouts {
		t, err := time.ParseInLocation(layout, value, time.Local)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" {
			t = t.Add(24*time.Hour - time.Minute)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid due date %q: use YYYY-MM-DD, \"YYYY-MM-DD HH:MM\" or RFC 3339", value)
}

func formatDue(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func printTasks(tasks []dto.TaskDTO) {
	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		check := "[ ]"
		if task.IsCompleted {
			check = "[x]"
		}
		rows = append(rows, []string{
			task.ShortID,
			check,
			task.Description,
			formatDue(task.DueAt),
			strings.ReplaceAll(task.Status, "_", " "),
		})
	}
	printer.Table([]string{"ID", "", "Task", "Due", "Status"}, rows)
}

func init() {
	taskAddCmd.Flags().String("due", "", "Due date: YYYY-MM-DD, \"YYYY-MM-DD HH:MM\" or RFC 3339")
	_ = taskAddCmd.MarkFlagRequired("due")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskToggleCmd)
	taskCmd.AddCommand(taskRemoveCmd)

	rootCmd.AddCommand(taskCmd)
}
