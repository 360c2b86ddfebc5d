package cmd

import (
	"github.com/bnema/yamcl/internal/logging"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "yamcl",
		Short:         "yamcl: yet another Minecraft launcher",
		Long:          "yamcl discovers Minecraft instances under a configured directory, keeps a list of Java runtimes matched to release ranges, and launches instances with the right runtime.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	v := newConfig()
	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error, off)")
	_ = v.BindPFlag(keyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))

	app, err := wireApp(v)
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		cfg := logging.DefaultConfig()
		cfg.Level = v.GetString(keyLogLevel)
		cfg.Format = v.GetString(keyLogFormat)
		cfg.Output = cmd.ErrOrStderr()
		logger := logging.Configure(cfg)

		cmd.SetContext(logging.WithLogger(cmd.Context(), &logger))
		app.setNotificationOutput(cmd.ErrOrStderr())
	}
	rootCmd.AddCommand(
		newVersionCmd(),
		newSettingsCmd(app),
		newInstancesCmd(app),
		newVersionsCmd(app),
		newRuntimeCmd(app),
		newLaunchCmd(app),
	)
	closeAfterRun(rootCmd, app.close)

	return rootCmd
}

// closeAfterRun wraps every RunE in the tree so the app is closed on both
// success and failure.
func closeAfterRun(cmd *cobra.Command, closeFn func()) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			defer closeFn()
			return run(c, args)
		}
	}

	for _, child := range cmd.Commands() {
		closeAfterRun(child, closeFn)
	}
}
