package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "deepone",
		Short:         "DeepOne attribution CLI: capture launches, track links, create short links",
		Long:          "deepone drives the DeepOne attribution engine from the terminal: it replays app launches and deep links, tracks first-session state, creates trackable links and lists captured attribution records.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log engine activity to stderr")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		app.setLogOutput(cmd.ErrOrStderr(), verbose)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLaunchCmd(app),
		newTrackCmd(app),
		newLinkCmd(app),
		newSessionCmd(app),
		newHistoryCmd(app),
	)

	return rootCmd
}
