package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var detailsCmd = &cobra.Command{
	Use:   "details",
	Short: "Show or update personal move details",
}

var detailsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored move details",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := load(ctx); err != nil {
			return err
		}
		snap, err := dash.UseCase.Snapshot(ctx)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(snap.MoveDetails))
		for k := range snap.MoveDetails {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %v\n", k, snap.MoveDetails[k])
		}
		return nil
	},
}

var detailsSetCmd = &cobra.Command{
	Use:     "set <key=value>...",
	Short:   "Update move detail fields",
	Example: `  movectl details set moving_date=2025-07-01 new_postcode="SW1A 1AA"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parseFields(args)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := load(ctx); err != nil {
			return err
		}
		if _, err := dash.UseCase.UpdateMoveDetails(ctx, fields); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated %d field(s)\n", len(fields))
		return nil
	},
}

// parseFields turns key=value pairs into a field map. Values that parse as
// JSON (numbers, booleans, null, quoted strings) keep their JSON type.
func parseFields(args []string) (map[string]any, error) {
	fields := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		var decoded any
		if err := json.Unmarshal([]byte(value), &decoded); err == nil {
			fields[key] = decoded
			continue
		}
		fields[key] = value
	}
	return fields, nil
}

func init() {
	detailsCmd.AddCommand(detailsShowCmd)
	detailsCmd.AddCommand(detailsSetCmd)
}
