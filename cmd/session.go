package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or reset first-session state",
	}

	cmd.AddCommand(newSessionStatusCmd(a), newSessionClearCmd(a))
	return cmd
}

func newSessionStatusCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the next attribution is a first session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.newSession()
			if err != nil {
				return err
			}

			first, err := sess.engine.FirstSession(cmd.Context())
			if closeErr := sess.finish(); closeErr != nil {
				err = errors.Join(err, fmt.Errorf("close secure store: %w", closeErr))
			}
			if err != nil {
				return fmt.Errorf("read first session state: %w", err)
			}

			if asJSON {
				payload, err := json.MarshalIndent(struct {
					FirstSession bool   `json:"firstSession"`
					Backend      string `json:"backend"`
					Group        string `json:"group"`
				}{first, string(a.cfg.Backend), a.cfg.StorageGroup}, "", "  ")
				if err != nil {
					return fmt.Errorf("encode session status: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "first session pending: %t\nbackend: %s\ngroup: %s\n",
				first, a.cfg.Backend, a.cfg.StorageGroup)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output status as JSON")

	return cmd
}

func newSessionClearCmd(a *app) *cobra.Command {
	var history bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget first-session state so the next attribution is a first session again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.newSession()
			if err != nil {
				return err
			}

			err = sess.engine.Clear(cmd.Context())
			if closeErr := sess.finish(); closeErr != nil {
				err = errors.Join(err, fmt.Errorf("close secure store: %w", closeErr))
			}
			if err != nil {
				return err
			}

			if history {
				if err := a.journal.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("clear attribution history: %w", err)
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "first session state cleared")
			return err
		},
	}

	cmd.Flags().BoolVar(&history, "history", false, "Also clear the attribution history journal")

	return cmd
}
