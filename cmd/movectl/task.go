package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"moving-progress/internal/dashboard"
	"moving-progress/internal/model"
)

var (
	taskCategory    string
	taskSection     int
	taskSource      string
	taskAll         bool
	taskDescription string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "List tasks and manage custom tasks",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Example: `  movectl task list --section 2
  movectl task list --category pre-move --all`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := load(ctx); err != nil {
			return err
		}

		filter := dashboard.TaskFilter{
			Category:         model.ParseCategory(taskCategory),
			Source:           model.Source(taskSource),
			IncludeCompleted: taskAll,
		}
		if cmd.Flags().Changed("section") {
			filter.SectionID = model.IntPtr(taskSection)
		}

		tasks, err := dash.UseCase.ListTasks(ctx, filter)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No tasks."))
			return nil
		}
		for _, t := range tasks {
			fmt.Fprintln(cmd.OutOrStdout(), taskLine(t))
		}
		return nil
	},
}

var taskCreateCmd = &cobra.Command{
	Use:   "create <section-id> <title>",
	Short: "Create a custom task in a section",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, err := parseSection(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := load(ctx); err != nil {
			return err
		}
		t, err := dash.UseCase.CreateCustomTask(ctx, dashboard.CreateCustomTaskInput{
			SectionID:   section,
			Title:       args[1],
			Description: taskDescription,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), taskLine(t))
		return nil
	},
}

var taskToggleCmd = &cobra.Command{
	Use:   "toggle <section-id> <task-id>",
	Short: "Flip the completion state of a custom task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, err := parseSection(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := load(ctx); err != nil {
			return err
		}
		t, err := dash.UseCase.ToggleCustomTask(ctx, section, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), taskLine(t))
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <section-id> <task-id>",
	Short: "Delete a custom task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, err := parseSection(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := load(ctx); err != nil {
			return err
		}
		if err := dash.UseCase.DeleteCustomTask(ctx, section, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[1])
		return nil
	},
}

func parseSection(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid section id %q", s)
	}
	return id, nil
}

func init() {
	taskListCmd.Flags().StringVar(&taskCategory, "category", "", "pre-move, in-move or post-move")
	taskListCmd.Flags().IntVarP(&taskSection, "section", "s", 0, "Section ID (1-9)")
	taskListCmd.Flags().StringVar(&taskSource, "source", "", "custom, lesson or cta")
	taskListCmd.Flags().BoolVarP(&taskAll, "all", "a", false, "Include completed tasks")
	taskCreateCmd.Flags().StringVarP(&taskDescription, "description", "d", "", "Task description")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskToggleCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}
