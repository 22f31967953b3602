package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show progress per moving stage",
	Long: `Display completion for each of the nine moving stages and the overall
progress, followed by the current priority list.`,
	RunE: runProgress,
}

func runProgress(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := load(ctx); err != nil {
		return err
	}

	snap, err := dash.UseCase.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Overall %d%%", snap.Overall)))
	b.WriteString("\n\n")
	for _, s := range snap.Sections {
		label := fmt.Sprintf("%d. %s", s.Section.ID, s.Section.ShortLabel)
		b.WriteString(progressLine(label, s.Progress))
		b.WriteString("\n")
	}
	fmt.Fprintln(cmd.OutOrStdout(), boxStyle.Render(strings.TrimRight(b.String(), "\n")))

	if len(snap.Priority) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No priority tasks."))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("Priority"))
	for _, p := range snap.Priority {
		fmt.Fprintln(cmd.OutOrStdout(), "  "+taskLine(p.Task))
	}
	return nil
}
