package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List captured attribution records, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := a.journal.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list attribution history: %w", err)
			}

			return a.writeRecords(cmd.OutOrStdout(), "History", records, nil, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output records as JSON")

	return cmd
}
