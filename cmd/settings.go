package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSettingsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change launcher settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetRootCmd(app),
		newSettingsSetIconsCmd(app),
		newSettingsSetSizeCmd(app),
	)

	return cmd
}

func newSettingsShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settings.Get(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "settings file:  %s\n", app.settingsRepo.Path())
			_, _ = fmt.Fprintf(out, "instance root:  %s\n", orUnset(settings.TargetRootPath))
			_, _ = fmt.Fprintf(out, "icon root:      %s\n", orUnset(settings.IconRootPath))
			_, _ = fmt.Fprintf(out, "instance size:  %d\n", settings.InstanceSize)
			_, err = fmt.Fprintf(out, "runtimes:       %d\n", len(settings.Runtimes))
			return err
		},
	}
}

func newSettingsSetRootCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-root PATH",
		Short: "Set the directory that holds instances (empty clears it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.settings.SetTargetRoot(cmd.Context(), args[0]); err != nil {
				return err
			}
			settings, err := app.settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			return printSetting(cmd, "instance root", settings.TargetRootPath)
		},
	}
}

func newSettingsSetIconsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-icons PATH",
		Short: "Set the directory that holds instance icons (empty clears it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.settings.SetIconRoot(cmd.Context(), args[0]); err != nil {
				return err
			}
			settings, err := app.settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			return printSetting(cmd, "icon root", settings.IconRootPath)
		},
	}
}

func newSettingsSetSizeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-size N",
		Short: "Set the instance card size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid size %q: %w", args[0], err)
			}
			if err := app.settings.SetInstanceSize(cmd.Context(), size); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Set instance size to %d\n", size)
			return err
		},
	}
}

func printSetting(cmd *cobra.Command, name, value string) error {
	if value == "" {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", name)
		return err
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", name, value)
	return err
}

func orUnset(value string) string {
	if value == "" {
		return "(unset)"
	}
	return value
}
