package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/notekeeper/internal/query"
)

func init() {
	cmd := &cobra.Command{
		Use:       "query items|schedules [keyword]",
		Short:     "List stored items or schedules",
		Long:      "Filter stored records by keyword and creation date. Items match on place category or location; schedules on task, location or place category.",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: []string{string(query.Items), string(query.Schedules)},
		RunE:      runQuery,
	}

	cmd.Flags().Bool("today", false, "Only records created today")

	RootCmd.AddCommand(cmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	today, _ := cmd.Flags().GetBool("today")
	filter := query.Filter{
		Keyword:   strings.TrimSpace(strings.Join(args[1:], " ")),
		TodayOnly: today,
	}

	s, err := openStore(newLogger())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	svc := query.NewService(s, nil)

	var results any
	switch query.Collection(args[0]) {
	case query.Items:
		seq, err := svc.Items(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("query items: %w", err)
		}
		results = query.Collect(seq)
	case query.Schedules:
		seq, err := svc.Schedules(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("query schedules: %w", err)
		}
		results = query.Collect(seq)
	default:
		return fmt.Errorf("unknown collection %q, want items or schedules", args[0])
	}

	b, _ := json.MarshalIndent(results, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
