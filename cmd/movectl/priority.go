package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"moving-progress/internal/dashboard"
)

var completeYes bool

var priorityCmd = &cobra.Command{
	Use:   "priority",
	Short: "Manage the priority task list",
}

var priorityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List priority tasks in insertion order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := load(ctx); err != nil {
			return err
		}
		items, err := dash.UseCase.ListPriority(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No priority tasks."))
			return nil
		}
		for _, p := range items {
			fmt.Fprintln(cmd.OutOrStdout(), taskLine(p.Task))
		}
		return nil
	},
}

var priorityAddCmd = &cobra.Command{
	Use:   "add <task-id>...",
	Short: "Add tasks to the priority list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := load(ctx); err != nil {
			return err
		}
		out, err := dash.UseCase.AddManyToPriority(ctx, args)
		if err != nil {
			return err
		}
		printAddResult(cmd.OutOrStdout(), out)
		return nil
	},
}

func printAddResult(w io.Writer, out dashboard.AddManyToPriorityOutput) {
	for _, p := range out.Added {
		fmt.Fprintf(w, "%s %s\n", doneStyle.Render("added"), p.Task.Title)
	}
	for _, s := range out.Skipped {
		fmt.Fprintf(w, "%s %s: %s\n", warnStyle.Render("skipped"), s.TaskID, s.Reason)
	}
}

var priorityRemoveCmd = &cobra.Command{
	Use:   "remove <task-id>",
	Short: "Remove a task from the priority list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := load(ctx); err != nil {
			return err
		}
		if err := dash.UseCase.RemoveFromPriority(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
		return nil
	},
}

var priorityCompleteCmd = &cobra.Command{
	Use:   "complete <task-id>",
	Short: "Complete a priority task after confirmation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := load(ctx); err != nil {
			return err
		}

		confirm := dashboard.Confirmed
		if !completeYes {
			confirm = promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
		}

		err := dash.UseCase.CompletePriorityTask(ctx, args[0], confirm)
		if errors.Is(err, dashboard.ErrNotConfirmed) {
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Cancelled."))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", doneStyle.Render("completed"), args[0])
		return nil
	},
}

func init() {
	priorityCompleteCmd.Flags().BoolVarP(&completeYes, "yes", "y", false, "Skip confirmation prompt")

	priorityCmd.AddCommand(priorityListCmd)
	priorityCmd.AddCommand(priorityAddCmd)
	priorityCmd.AddCommand(priorityRemoveCmd)
	priorityCmd.AddCommand(priorityCompleteCmd)
}
