package cmd

import (
	"errors"
	"fmt"

	"github.com/deeponelabs/deepone-go/internal/application"
	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var launchSignalCycle = []domain.LaunchSignalKind{
	domain.LaunchSignalCreate,
	domain.LaunchSignalStart,
	domain.LaunchSignalResume,
}

func newLaunchCmd(a *app) *cobra.Command {
	var (
		token      string
		signals    int
		dev        bool
		noDeferred bool
		device     domain.DeviceContext
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "launch [url]",
		Short: "Simulate an app launch, optionally opened by a deep link",
		Long: "launch configures the attribution engine the way an app does on start. " +
			"With a URL the launch is treated as a direct deep link; without one the " +
			"attribution service is asked for a deferred match. --signals replays " +
			"lifecycle callbacks for the same launch to show they are not re-captured.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if signals < 0 {
				return errors.New("--signals must not be negative")
			}
			if token == "" {
				token = uuid.NewString()
			}

			payload := domain.LaunchPayload{Token: domain.LaunchToken(token)}
			if len(args) == 1 {
				payload.URL = args[0]
			}

			sess, err := a.newSession()
			if err != nil {
				return err
			}

			var collected outcomes
			ctx := cmd.Context()
			err = sess.engine.Configure(ctx, application.ConfigureOptions{
				Device:             device,
				Launch:             payload,
				DevelopmentMode:    dev || a.cfg.DevelopmentMode,
				Handler:            collected.handler(),
				SkipDeferredLookup: noDeferred,
			})
			if err != nil {
				return errors.Join(fmt.Errorf("configure attribution engine: %w", err), sess.finish())
			}

			if signals > 0 {
				queue := make(chan domain.LaunchSignal, signals)
				for i := range signals {
					queue <- domain.LaunchSignal{
						Kind:    launchSignalCycle[i%len(launchSignalCycle)],
						Payload: payload,
					}
				}
				close(queue)
				sess.engine.ListenForLaunches(ctx, queue)
			}

			if err := sess.finish(); err != nil {
				return fmt.Errorf("close secure store: %w", err)
			}

			records, failures := collected.snapshot()
			if err := a.writeRecords(cmd.OutOrStdout(), "Launch", records, nil, asJSON); err != nil {
				return err
			}

			return failures
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Launch token (defaults to a random UUID)")
	cmd.Flags().IntVar(&signals, "signals", 0, "Number of lifecycle signals to replay for this launch")
	cmd.Flags().BoolVar(&dev, "dev", false, "Use the test API key")
	cmd.Flags().BoolVar(&noDeferred, "no-deferred", false, "Skip the deferred attribution lookup")
	cmd.Flags().StringVar(&device.OS, "os", "", "Device operating system reported to the service")
	cmd.Flags().StringVar(&device.Model, "model", "", "Device model reported to the service")
	cmd.Flags().StringVar(&device.DeviceID, "device-id", "", "Device identifier reported to the service")
	cmd.Flags().StringVar(&device.Locale, "locale", "", "Device locale reported to the service")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output records as JSON")

	return cmd
}
