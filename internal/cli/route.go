package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "route [text]",
		Short: "Route one utterance and print the outcome",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRoute,
	})
}

func runRoute(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	outcome, err := a.router.Route(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("route: %w", err)
	}

	b, _ := json.MarshalIndent(outcome, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
