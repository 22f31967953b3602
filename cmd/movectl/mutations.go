package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"moving-progress/internal/dashboard"
)

var (
	mutationsLimit int
	mutationsState string
)

var mutationsCmd = &cobra.Command{
	Use:   "mutations",
	Short: "Show recent optimistic mutations from the journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := dash.UseCase.ListMutations(cmd.Context(), dashboard.MutationFilter{
			Limit: mutationsLimit,
			State: mutationsState,
		})
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No mutations recorded."))
			return nil
		}
		for _, e := range entries {
			state := e.State
			switch state {
			case "committed":
				state = doneStyle.Render(state)
			case "rolled_back", "aborted":
				state = warnStyle.Render(state)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-11s %-22s %-28s %5dms %s\n",
				e.StartedAt.Local().Format("2006-01-02 15:04:05"),
				state,
				e.Name,
				e.Key,
				e.DurationMS,
				mutedStyle.Render(e.Error),
			)
		}
		return nil
	},
}

func init() {
	mutationsCmd.Flags().IntVarP(&mutationsLimit, "limit", "n", 20, "Max entries")
	mutationsCmd.Flags().StringVar(&mutationsState, "state", "", "committed, rolled_back or aborted")
}
