package cmd

import (
	"errors"
	"fmt"

	"github.com/deeponelabs/deepone-go/internal/application"
	"github.com/spf13/cobra"
)

func newTrackCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		dev    bool
	)

	cmd := &cobra.Command{
		Use:   "track <url>...",
		Short: "Record attribution for URLs the app received",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.newSession()
			if err != nil {
				return err
			}

			var collected outcomes
			ctx := cmd.Context()
			err = sess.engine.Configure(ctx, application.ConfigureOptions{
				DevelopmentMode:    dev || a.cfg.DevelopmentMode,
				Handler:            collected.handler(),
				SkipDeferredLookup: true,
			})
			if err != nil {
				return errors.Join(fmt.Errorf("configure attribution engine: %w", err), sess.finish())
			}

			for _, raw := range args {
				tracked, err := sess.engine.Track(ctx, raw)
				if err != nil {
					return errors.Join(fmt.Errorf("track %q: %w", raw, err), sess.finish())
				}
				if !tracked {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %q is not a usable url\n", raw)
				}
			}

			if err := sess.finish(); err != nil {
				return fmt.Errorf("close secure store: %w", err)
			}

			records, failures := collected.snapshot()
			if err := a.writeRecords(cmd.OutOrStdout(), "Tracked", records, nil, asJSON); err != nil {
				return err
			}

			return failures
		},
	}

	cmd.Flags().BoolVar(&dev, "dev", false, "Run the engine in development mode")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output records as JSON")

	return cmd
}
